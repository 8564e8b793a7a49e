package adapters

import (
	"fmt"
	"strings"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"geometa/internal/types"
)

// extractGeoPackage derives vector facts from a GeoPackage by querying
// its registry tables. The first feature layer (by table name) is the
// one described; GeoPackages carrying several layers record the layer
// count in the driver metadata.
func (a ExtractorAdapter) extractGeoPackage(facts *types.Facts) error {
	conn, err := sqlite.OpenConn(facts.Path, sqlite.OpenReadOnly)
	if err != nil {
		return extractionError("failed to open geopackage source", err)
	}
	defer conn.Close()

	type layerInfo struct {
		table       string
		identifier  string
		description string
		bbox        types.BoundingBox
		srsID       int64
	}
	var layer layerInfo
	var layerCount int64
	err = sqlitex.ExecuteTransient(conn, `
		SELECT table_name, identifier, description, min_x, min_y, max_x, max_y, srs_id
		FROM gpkg_contents WHERE data_type = 'features' ORDER BY table_name`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				layerCount++
				if layerCount > 1 {
					return nil
				}
				layer = layerInfo{
					table:       stmt.ColumnText(0),
					identifier:  stmt.ColumnText(1),
					description: stmt.ColumnText(2),
					bbox: types.BoundingBox{
						XMin: stmt.ColumnFloat(3),
						YMin: stmt.ColumnFloat(4),
						XMax: stmt.ColumnFloat(5),
						YMax: stmt.ColumnFloat(6),
					},
					srsID: stmt.ColumnInt64(7),
				}
				return nil
			},
		})
	if err != nil {
		return extractionError("failed to read geopackage contents registry", err)
	}
	if layerCount == 0 {
		return extractionError("geopackage source has no feature layers", nil)
	}

	crs := crsUnknown
	err = sqlitex.ExecuteTransient(conn, `
		SELECT organization, organization_coordsys_id
		FROM gpkg_spatial_ref_sys WHERE srs_id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{layer.srsID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				crs = fmt.Sprintf("%s:%d", strings.ToUpper(stmt.ColumnText(0)), stmt.ColumnInt64(1))
				return nil
			},
		})
	if err != nil {
		return extractionError("failed to read geopackage spatial reference", err)
	}

	geometryColumn, geometryType := "", ""
	err = sqlitex.ExecuteTransient(conn, `
		SELECT column_name, geometry_type_name
		FROM gpkg_geometry_columns WHERE table_name = ?`,
		&sqlitex.ExecOptions{
			Args: []any{layer.table},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				geometryColumn = stmt.ColumnText(0)
				geometryType = stmt.ColumnText(1)
				return nil
			},
		})
	if err != nil {
		return extractionError("failed to read geopackage geometry registry", err)
	}

	quoted := `"` + strings.ReplaceAll(layer.table, `"`, `""`) + `"`

	var fields []types.FieldSchema
	err = sqlitex.ExecuteTransient(conn, "PRAGMA table_info("+quoted+")",
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				name := stmt.ColumnText(1)
				if name == geometryColumn {
					return nil
				}
				fields = append(fields, types.FieldSchema{
					Name: name,
					Type: sqliteFieldType(stmt.ColumnText(2)),
				})
				return nil
			},
		})
	if err != nil {
		return extractionError("failed to read geopackage layer columns", err)
	}

	var features int64
	err = sqlitex.ExecuteTransient(conn, "SELECT COUNT(*) FROM "+quoted,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				features = stmt.ColumnInt64(0)
				return nil
			},
		})
	if err != nil {
		return extractionError("failed to count geopackage features", err)
	}

	facts.Type = types.ResourceTypeVector
	facts.NFeatures = features
	facts.DataModel = &types.DataModel{Fields: fields}
	facts.Spatial = &types.SpatialSchema{BoundingBox: layer.bbox, CRS: crs}
	facts.Metadata = map[string]string{
		"driver":        string(types.VectorDriverGeoPackage),
		"layer":         layer.table,
		"layer_count":   fmt.Sprintf("%d", layerCount),
		"geometry_type": geometryType,
	}
	if layer.identifier != "" {
		facts.Metadata["identifier"] = layer.identifier
	}
	if layer.description != "" {
		facts.Metadata["description"] = layer.description
	}
	return nil
}

// sqliteFieldType maps declared SQLite column types onto the
// frictionless type vocabulary shared with table resources.
func sqliteFieldType(declared string) string {
	normalized := strings.ToUpper(declared)
	switch {
	case strings.Contains(normalized, "INT"):
		return "integer"
	case strings.Contains(normalized, "REAL"),
		strings.Contains(normalized, "FLOA"),
		strings.Contains(normalized, "DOUB"):
		return "number"
	case strings.Contains(normalized, "BOOL"):
		return "boolean"
	case strings.Contains(normalized, "DATE"):
		return "date"
	default:
		return "string"
	}
}
