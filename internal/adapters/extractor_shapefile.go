package adapters

import (
	"encoding/binary"
	"math"
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"geometa/internal/shared"
	"geometa/internal/types"
)

// extractShapefile derives vector facts from an ESRI Shapefile: the
// bounding box and geometry type from the .shp header, attribute fields
// and the feature count from the sibling .dbf, and the spatial
// reference from the sibling .prj when one exists.
func (a ExtractorAdapter) extractShapefile(facts *types.Facts) error {
	header := make([]byte, 100)
	file, err := a.Fs.Open(facts.Path)
	if err != nil {
		return extractionError("failed to read vector source", err)
	}
	n, _ := file.Read(header)
	file.Close()
	if n < 100 || binary.BigEndian.Uint32(header[0:4]) != 9994 {
		return extractionError("not a valid shapefile header", nil)
	}

	shapeType := binary.LittleEndian.Uint32(header[32:36])
	bbox := types.BoundingBox{
		XMin: float64FromLE(header[36:44]),
		YMin: float64FromLE(header[44:52]),
		XMax: float64FromLE(header[52:60]),
		YMax: float64FromLE(header[60:68]),
	}

	stem := strings.TrimSuffix(facts.Path, ".shp")
	fields, records, err := a.readDBF(stem + ".dbf")
	if err != nil {
		return err
	}

	crs, units := crsUnknown, ""
	if wkt, readErr := afero.ReadFile(a.Fs, stem+".prj"); readErr == nil {
		crs, units = wktCRS(string(wkt))
	}

	facts.Type = types.ResourceTypeVector
	facts.NFeatures = records
	facts.DataModel = &types.DataModel{Fields: fields}
	facts.Spatial = &types.SpatialSchema{BoundingBox: bbox, CRS: crs, CRSUnits: units}
	facts.Sources = a.siblingSources(stem)
	facts.Metadata = map[string]string{
		"driver":        string(types.VectorDriverShapefile),
		"geometry_type": shapeTypeName(shapeType),
	}
	return nil
}

// readDBF parses the field descriptor array and record count of a dBASE
// attribute table.
func (a ExtractorAdapter) readDBF(path string) ([]types.FieldSchema, int64, error) {
	data, err := afero.ReadFile(a.Fs, path)
	if err != nil {
		return nil, 0, extractionError("shapefile has no readable .dbf attribute table", err)
	}
	if len(data) < 32 {
		return nil, 0, extractionError("not a valid .dbf attribute table", nil)
	}
	records := int64(binary.LittleEndian.Uint32(data[4:8]))

	var fields []types.FieldSchema
	for offset := 32; offset+32 <= len(data) && data[offset] != 0x0d; offset += 32 {
		descriptor := data[offset : offset+32]
		name := strings.TrimRight(string(descriptor[:11]), "\x00")
		fields = append(fields, types.FieldSchema{
			Name: name,
			Type: dbfFieldType(descriptor[11], descriptor[17]),
		})
	}
	return fields, records, nil
}

// dbfFieldType maps dBASE type codes onto the frictionless type
// vocabulary shared with table resources.
func dbfFieldType(code byte, decimals byte) string {
	switch code {
	case 'N':
		if decimals > 0 {
			return "number"
		}
		return "integer"
	case 'F':
		return "number"
	case 'D':
		return "date"
	case 'L':
		return "boolean"
	default:
		return "string"
	}
}

func shapeTypeName(shapeType uint32) string {
	switch shapeType % 10 {
	case 1, 8:
		return "point"
	case 3:
		return "polyline"
	case 5:
		return "polygon"
	default:
		return "unknown"
	}
}

// siblingSources lists the companion files that comprise the shapefile.
func (a ExtractorAdapter) siblingSources(stem string) []string {
	var sources []string
	for _, ext := range []string{".shp", ".shx", ".dbf", ".prj", ".cpg"} {
		path := stem + ext
		if exists, _ := afero.Exists(a.Fs, path); exists {
			sources = append(sources, shared.NormalizePath(path))
		}
	}
	return sources
}

var (
	wktAuthorityPattern = regexp.MustCompile(`AUTHORITY\["([A-Za-z]+)","(\d+)"\]`)
	wktUnitPattern      = regexp.MustCompile(`UNIT\["([^"]+)"`)
)

// wktCRS renders a WKT spatial reference as "<authority>:<code>". The
// last AUTHORITY and UNIT nodes in the text are the ones describing the
// CRS as a whole; earlier ones belong to nested datum or geographic
// definitions.
func wktCRS(wkt string) (string, string) {
	crs := crsUnknown
	if matches := wktAuthorityPattern.FindAllStringSubmatch(wkt, -1); len(matches) > 0 {
		last := matches[len(matches)-1]
		crs = strings.ToUpper(last[1]) + ":" + last[2]
	}
	units := ""
	if matches := wktUnitPattern.FindAllStringSubmatch(wkt, -1); len(matches) > 0 {
		units = matches[len(matches)-1][1]
	}
	return crs, units
}

func float64FromLE(data []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(data))
}
