package types

// CollectionDocument is the sidecar metadata document for a directory.
// Items always reflect the directory listing at aggregation time; the
// collection-level user-authored fields survive re-aggregation.
type CollectionDocument struct {
	Kind            DocumentKind `yaml:"kind" validate:"required"`
	MetadataVersion string       `yaml:"metadata_version" validate:"required"`

	// Path is the directory this document describes.
	Path string `yaml:"path" validate:"required"`

	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Keywords    []string `yaml:"keywords,omitempty"`

	Contact ContactSchema `yaml:"contact"`
	License LicenseSchema `yaml:"license"`

	Items []CollectionItem `yaml:"items" validate:"dive"`
}

// CollectionItem summarizes one entry of a collection: a described data
// file or a nested collection, referenced by path relative to the
// collection directory.
type CollectionItem struct {
	Path string `yaml:"path" validate:"required"`

	// Type is a ResourceType for data files, or "collection" for a
	// nested directory.
	Type string `yaml:"type" validate:"required"`

	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// CollectionItemTypeCollection marks nested directory entries.
const CollectionItemTypeCollection = "collection"
