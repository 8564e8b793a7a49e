package types

// Profile carries default contact and license values applied to newly
// created documents. Profile values never overwrite a field already
// present in an existing document.
type Profile struct {
	Contact ContactSchema `yaml:"contact"`
	License LicenseSchema `yaml:"license"`
}

// Merge returns a profile where empty fields of p are filled in from
// other. Non-empty fields of p always win.
func (p Profile) Merge(other Profile) Profile {
	merged := p
	if merged.Contact.Email == "" {
		merged.Contact.Email = other.Contact.Email
	}
	if merged.Contact.Organization == "" {
		merged.Contact.Organization = other.Contact.Organization
	}
	if merged.Contact.IndividualName == "" {
		merged.Contact.IndividualName = other.Contact.IndividualName
	}
	if merged.Contact.PositionName == "" {
		merged.Contact.PositionName = other.Contact.PositionName
	}
	if merged.License.Title == "" {
		merged.License.Title = other.License.Title
	}
	if merged.License.Path == "" {
		merged.License.Path = other.License.Path
	}
	return merged
}
