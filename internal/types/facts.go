package types

// Facts is the bag of attributes extracted from a live data source. It is
// a pure function of the file's current bytes: everything here is derived
// and overwrites the matching document fields during a merge. Extractors
// leave the user-text attributes of descriptors empty.
type Facts struct {
	Path         string
	Type         ResourceType
	Format       string
	Bytes        int64
	LastModified string
	UID          string
	Sources      []string

	// Compression is populated for archives only.
	Compression string

	// NFeatures is populated for vectors only.
	NFeatures int64

	Spatial   *SpatialSchema
	DataModel *DataModel

	// Metadata holds driver-specific key/value pairs.
	Metadata map[string]string
}
