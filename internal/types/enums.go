package types

type ResourceType string

const (
	ResourceTypeRaster  ResourceType = "raster"
	ResourceTypeVector  ResourceType = "vector"
	ResourceTypeTable   ResourceType = "table"
	ResourceTypeArchive ResourceType = "archive"
)

type DocumentKind string

const (
	DocumentKindResource   DocumentKind = "resource"
	DocumentKindCollection DocumentKind = "collection"
)

// VectorDriver identifies the on-disk container of a vector resource.
type VectorDriver string

const (
	VectorDriverShapefile  VectorDriver = "ESRI Shapefile"
	VectorDriverGeoPackage VectorDriver = "GPKG"
	VectorDriverGeoJSON    VectorDriver = "GeoJSON"
)
