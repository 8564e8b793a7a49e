package adapters

import (
	"encoding/json"
	"sort"

	"github.com/spf13/afero"

	"geometa/internal/types"
)

type geoJSONDocument struct {
	Type     string           `json:"type"`
	Name     string           `json:"name"`
	BBox     []float64        `json:"bbox"`
	Features []geoJSONFeature `json:"features"`
}

type geoJSONFeature struct {
	Geometry struct {
		Type string `json:"type"`
	} `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// extractGeoJSON derives vector facts from a GeoJSON FeatureCollection.
// Fields are the union of feature property keys; per the GeoJSON
// specification the coordinate reference system is always WGS 84.
func (a ExtractorAdapter) extractGeoJSON(facts *types.Facts) error {
	data, err := afero.ReadFile(a.Fs, facts.Path)
	if err != nil {
		return extractionError("failed to read vector source", err)
	}
	var doc geoJSONDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return extractionError("failed to parse geojson source", err)
	}
	if doc.Type != "FeatureCollection" {
		return extractionError("geojson source is not a FeatureCollection", nil)
	}

	fieldTypes := map[string]string{}
	geometryType := ""
	for _, feature := range doc.Features {
		if geometryType == "" {
			geometryType = feature.Geometry.Type
		}
		for name, value := range feature.Properties {
			if _, seen := fieldTypes[name]; !seen {
				fieldTypes[name] = jsonValueType(value)
			}
		}
	}
	names := make([]string, 0, len(fieldTypes))
	for name := range fieldTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	fields := make([]types.FieldSchema, 0, len(names))
	for _, name := range names {
		fields = append(fields, types.FieldSchema{Name: name, Type: fieldTypes[name]})
	}

	spatial := &types.SpatialSchema{CRS: "EPSG:4326", CRSUnits: "degree"}
	if len(doc.BBox) >= 4 {
		spatial.BoundingBox = types.BoundingBox{
			XMin: doc.BBox[0],
			YMin: doc.BBox[1],
			XMax: doc.BBox[2],
			YMax: doc.BBox[3],
		}
	}

	facts.Type = types.ResourceTypeVector
	facts.NFeatures = int64(len(doc.Features))
	facts.DataModel = &types.DataModel{Fields: fields}
	facts.Spatial = spatial
	facts.Metadata = map[string]string{
		"driver":        string(types.VectorDriverGeoJSON),
		"geometry_type": geometryType,
	}
	return nil
}

func jsonValueType(value any) string {
	switch value.(type) {
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	default:
		return "any"
	}
}
