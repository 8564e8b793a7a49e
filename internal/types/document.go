package types

// ResourceDocument is the sidecar metadata document for a single data file.
// Field order here dictates key order in the written YAML, so reordering
// fields changes on-disk output for every document.
//
// Two categories of fields coexist:
//   - derived fields are recomputed from the source bytes on every describe
//     and are always overwritten during a merge;
//   - user-authored fields (title, description, keywords, contact, license,
//     and per-field/per-band text) are preserved across re-describes.
type ResourceDocument struct {
	// Kind discriminates resource documents from collection documents.
	Kind DocumentKind `yaml:"kind" validate:"required"`

	// MetadataVersion marks the document format version so legacy shapes
	// can be detected and migrated.
	MetadataVersion string `yaml:"metadata_version" validate:"required"`

	// Path is the data file this document describes, as given to describe.
	Path string `yaml:"path" validate:"required"`

	Type         ResourceType `yaml:"type" validate:"required"`
	Format       string       `yaml:"format,omitempty"`
	Bytes        int64        `yaml:"bytes"`
	LastModified string       `yaml:"last_modified,omitempty"`

	// UID is a checksum-style identifier of the source bytes, of the form
	// "sizetimestamp:<sha256>".
	UID string `yaml:"uid,omitempty"`

	// Sources lists the files which comprise the resource. A shapefile,
	// for example, spans several sibling files.
	Sources []string `yaml:"sources,omitempty"`

	// Compression is set for archive resources only.
	Compression string `yaml:"compression,omitempty"`

	// NFeatures is set for vector resources only.
	NFeatures int64 `yaml:"n_features,omitempty"`

	Spatial   *SpatialSchema `yaml:"spatial,omitempty"`
	DataModel *DataModel     `yaml:"data_model,omitempty"`

	// DriverMetadata carries format-specific key/value pairs copied from
	// the underlying driver.
	DriverMetadata map[string]string `yaml:"driver_metadata,omitempty"`

	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Citation    string   `yaml:"citation,omitempty"`
	DOI         string   `yaml:"doi,omitempty"`
	Edition     string   `yaml:"edition,omitempty"`
	Keywords    []string `yaml:"keywords,omitempty"`
	Lineage     string   `yaml:"lineage,omitempty"`
	Placenames  []string `yaml:"placenames,omitempty"`
	Purpose     string   `yaml:"purpose,omitempty"`
	URL         string   `yaml:"url,omitempty"`

	Contact ContactSchema `yaml:"contact"`
	License LicenseSchema `yaml:"license"`
}

// DataModel describes the internal structure of a resource: table fields
// for tabular and vector data, bands for rasters. Exactly one of Fields
// or Bands is populated, depending on the resource type.
type DataModel struct {
	Fields []FieldSchema `yaml:"fields,omitempty" validate:"dive"`
	Bands  []BandSchema  `yaml:"bands,omitempty" validate:"dive"`

	MissingValues []string `yaml:"missing_values,omitempty"`
	PrimaryKey    []string `yaml:"primary_key,omitempty"`

	// PixelSize and RasterSize are raster-only.
	PixelSize  []float64   `yaml:"pixel_size,omitempty"`
	RasterSize *RasterSize `yaml:"raster_size,omitempty"`
}

type RasterSize struct {
	Width  int64 `yaml:"width"`
	Height int64 `yaml:"height"`
}

// FieldSchema describes one column of a table or vector attribute layer.
// Name and Type are derived; Title, Description and Units are user-authored.
type FieldSchema struct {
	Name        string `yaml:"name" validate:"required"`
	Type        string `yaml:"type" validate:"required"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Units       string `yaml:"units"`
}

// BandSchema describes one band of a raster. Index starts at 1, matching
// GDAL convention. Title, Description and Units are user-authored.
type BandSchema struct {
	Index       int      `yaml:"index" validate:"required,min=1"`
	DataType    string   `yaml:"data_type" validate:"required"`
	NoData      *float64 `yaml:"nodata"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Units       string   `yaml:"units"`
}

type BoundingBox struct {
	XMin float64 `yaml:"xmin"`
	YMin float64 `yaml:"ymin"`
	XMax float64 `yaml:"xmax"`
	YMax float64 `yaml:"ymax"`
}

type SpatialSchema struct {
	BoundingBox BoundingBox `yaml:"bounding_box"`
	CRS         string      `yaml:"crs"`
	CRSUnits    string      `yaml:"crs_units,omitempty"`
}

type ContactSchema struct {
	Email          string `yaml:"email"`
	Organization   string `yaml:"organization"`
	IndividualName string `yaml:"individual_name"`
	PositionName   string `yaml:"position_name"`
}

// Empty reports whether no contact information has been provided.
func (c ContactSchema) Empty() bool {
	return c == ContactSchema{}
}

// LicenseSchema loosely follows the Data Package resource license shape:
// a title naming the license and a URL describing it.
type LicenseSchema struct {
	Path  string `yaml:"path"`
	Title string `yaml:"title"`
}

// Empty reports whether no license information has been provided.
func (l LicenseSchema) Empty() bool {
	return l == LicenseSchema{}
}

func (d *ResourceDocument) SetTitle(title string)         { d.Title = title }
func (d *ResourceDocument) GetTitle() string              { return d.Title }
func (d *ResourceDocument) SetDescription(text string)    { d.Description = text }
func (d *ResourceDocument) GetDescription() string        { return d.Description }
func (d *ResourceDocument) SetCitation(citation string)   { d.Citation = citation }
func (d *ResourceDocument) GetCitation() string           { return d.Citation }
func (d *ResourceDocument) SetDOI(doi string)             { d.DOI = doi }
func (d *ResourceDocument) GetDOI() string                { return d.DOI }
func (d *ResourceDocument) SetEdition(edition string)     { d.Edition = edition }
func (d *ResourceDocument) GetEdition() string            { return d.Edition }
func (d *ResourceDocument) SetKeywords(keywords []string) { d.Keywords = keywords }
func (d *ResourceDocument) GetKeywords() []string         { return d.Keywords }
func (d *ResourceDocument) SetLineage(statement string)   { d.Lineage = statement }
func (d *ResourceDocument) GetLineage() string            { return d.Lineage }
func (d *ResourceDocument) SetPlacenames(names []string)  { d.Placenames = names }
func (d *ResourceDocument) GetPlacenames() []string       { return d.Placenames }
func (d *ResourceDocument) SetPurpose(purpose string)     { d.Purpose = purpose }
func (d *ResourceDocument) GetPurpose() string            { return d.Purpose }
func (d *ResourceDocument) SetURL(url string)             { d.URL = url }
func (d *ResourceDocument) GetURL() string                { return d.URL }

func (d *ResourceDocument) SetContact(contact ContactSchema) { d.Contact = contact }
func (d *ResourceDocument) GetContact() ContactSchema        { return d.Contact }
func (d *ResourceDocument) SetLicense(license LicenseSchema) { d.License = license }
func (d *ResourceDocument) GetLicense() LicenseSchema        { return d.License }

// GetFieldDescription returns the descriptor for a named field, or false
// if the document has no data model or no field with that name.
func (d *ResourceDocument) GetFieldDescription(name string) (FieldSchema, bool) {
	if d.DataModel == nil {
		return FieldSchema{}, false
	}
	for _, field := range d.DataModel.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldSchema{}, false
}

// SetFieldDescription stores user text on a named field descriptor. Empty
// arguments leave the corresponding attribute untouched. Returns false if
// no field with that name exists.
func (d *ResourceDocument) SetFieldDescription(name, title, description, units string) bool {
	if d.DataModel == nil {
		return false
	}
	for i := range d.DataModel.Fields {
		if d.DataModel.Fields[i].Name != name {
			continue
		}
		if title != "" {
			d.DataModel.Fields[i].Title = title
		}
		if description != "" {
			d.DataModel.Fields[i].Description = description
		}
		if units != "" {
			d.DataModel.Fields[i].Units = units
		}
		return true
	}
	return false
}

// GetBandDescription returns the descriptor for a band index (1-based),
// or false if the document has no band with that index.
func (d *ResourceDocument) GetBandDescription(index int) (BandSchema, bool) {
	if d.DataModel == nil {
		return BandSchema{}, false
	}
	for _, band := range d.DataModel.Bands {
		if band.Index == index {
			return band, true
		}
	}
	return BandSchema{}, false
}

// SetBandDescription stores user text on a band descriptor (1-based index).
// Empty arguments leave the corresponding attribute untouched. Returns
// false if no band with that index exists.
func (d *ResourceDocument) SetBandDescription(index int, title, description, units string) bool {
	if d.DataModel == nil {
		return false
	}
	for i := range d.DataModel.Bands {
		if d.DataModel.Bands[i].Index != index {
			continue
		}
		if title != "" {
			d.DataModel.Bands[i].Title = title
		}
		if description != "" {
			d.DataModel.Bands[i].Description = description
		}
		if units != "" {
			d.DataModel.Bands[i].Units = units
		}
		return true
	}
	return false
}
