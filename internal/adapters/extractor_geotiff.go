package adapters

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"geometa/internal/types"
)

// extractGeoTIFF derives raster facts from a GeoTIFF by walking the
// first TIFF image file directory. Only header structures are read;
// pixel data is never touched.
func (a ExtractorAdapter) extractGeoTIFF(facts *types.Facts) error {
	data, err := afero.ReadFile(a.Fs, facts.Path)
	if err != nil {
		return extractionError("failed to read raster source", err)
	}
	ifd, err := parseTIFF(data)
	if err != nil {
		return extractionError("failed to parse raster source", err)
	}

	width := ifd.firstInt(tagImageWidth)
	height := ifd.firstInt(tagImageLength)
	if width == 0 || height == 0 {
		return extractionError("raster source has no image dimensions", nil)
	}

	samples := ifd.firstInt(tagSamplesPerPixel)
	if samples == 0 {
		samples = 1
	}
	bits := ifd.ints(tagBitsPerSample)
	formats := ifd.ints(tagSampleFormat)

	var nodata *float64
	if raw := strings.TrimRight(ifd.ascii(tagGDALNoData), "\x00 "); raw != "" {
		if value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			nodata = &value
		}
	}

	bands := make([]types.BandSchema, 0, samples)
	for i := int64(0); i < samples; i++ {
		bands = append(bands, types.BandSchema{
			Index:    int(i) + 1,
			DataType: sampleDataType(intAt(bits, i, 8), intAt(formats, i, sampleFormatUint)),
			NoData:   nodata,
		})
	}

	model := &types.DataModel{
		Bands:      bands,
		RasterSize: &types.RasterSize{Width: width, Height: height},
	}

	scale := ifd.doubles(tagModelPixelScale)
	tiepoint := ifd.doubles(tagModelTiepoint)
	var spatial *types.SpatialSchema
	if len(scale) >= 2 && len(tiepoint) >= 6 {
		model.PixelSize = []float64{scale[0], scale[1]}
		originX := tiepoint[3] - tiepoint[0]*scale[0]
		originY := tiepoint[4] + tiepoint[1]*scale[1]
		spatial = &types.SpatialSchema{
			BoundingBox: types.BoundingBox{
				XMin: originX,
				YMin: originY - float64(height)*scale[1],
				XMax: originX + float64(width)*scale[0],
				YMax: originY,
			},
		}
	}
	crs, units := geoKeysCRS(ifd.ints(tagGeoKeyDirectory))
	if spatial == nil && crs != crsUnknown {
		spatial = &types.SpatialSchema{}
	}
	if spatial != nil {
		spatial.CRS = crs
		spatial.CRSUnits = units
	}

	facts.Type = types.ResourceTypeRaster
	facts.DataModel = model
	facts.Spatial = spatial
	facts.Metadata = map[string]string{"driver": "GTiff"}
	return nil
}

const (
	tagImageWidth      = 256
	tagImageLength     = 257
	tagBitsPerSample   = 258
	tagSamplesPerPixel = 277
	tagSampleFormat    = 339
	tagModelPixelScale = 33550
	tagModelTiepoint   = 33922
	tagGeoKeyDirectory = 34735
	tagGDALNoData      = 42113

	sampleFormatUint  = 1
	sampleFormatInt   = 2
	sampleFormatFloat = 3

	crsUnknown = "unknown"
)

// sampleDataType maps TIFF bits-per-sample and sample-format to the
// data type vocabulary used in band descriptors.
func sampleDataType(bits, format int64) string {
	switch format {
	case sampleFormatInt:
		return fmt.Sprintf("int%d", bits)
	case sampleFormatFloat:
		return fmt.Sprintf("float%d", bits)
	default:
		return fmt.Sprintf("uint%d", bits)
	}
}

func intAt(values []int64, i int64, fallback int64) int64 {
	if i < int64(len(values)) {
		return values[i]
	}
	if len(values) > 0 {
		return values[0]
	}
	return fallback
}

// geoKeysCRS resolves the EPSG code and coordinate units from a GeoKey
// directory. Geographic and projected CRS keys are the only enumerated
// sources of an EPSG code; anything else reports "unknown", mirroring
// how an uninterpretable spatial reference is rendered.
func geoKeysCRS(directory []int64) (string, string) {
	if len(directory) < 4 {
		return crsUnknown, ""
	}
	const (
		keyGeographicType  = 2048
		keyGeogAngularUnit = 2054
		keyProjectedCSType = 3072
		keyProjLinearUnit  = 3076
	)
	keys := map[int64]int64{}
	numKeys := directory[3]
	for i := int64(0); i < numKeys; i++ {
		entry := directory[4+i*4 : 4+i*4+4]
		// Only inline values (location 0) matter for the keys we read.
		if entry[1] == 0 {
			keys[entry[0]] = entry[3]
		}
	}
	if code, ok := keys[keyProjectedCSType]; ok {
		return fmt.Sprintf("EPSG:%d", code), linearUnitName(keys[keyProjLinearUnit])
	}
	if code, ok := keys[keyGeographicType]; ok {
		units := "degree"
		if keys[keyGeogAngularUnit] == 9101 {
			units = "radian"
		}
		return fmt.Sprintf("EPSG:%d", code), units
	}
	return crsUnknown, ""
}

func linearUnitName(code int64) string {
	switch code {
	case 9002:
		return "foot"
	case 9003:
		return "US survey foot"
	default:
		return "metre"
	}
}

// tiffIFD holds the entries of the first image file directory.
type tiffIFD struct {
	order   binary.ByteOrder
	entries map[uint16]tiffEntry
}

type tiffEntry struct {
	fieldType uint16
	count     uint32
	value     []byte
}

var errMalformedTIFF = errors.New("malformed tiff structure")

func parseTIFF(data []byte) (tiffIFD, error) {
	if len(data) < 8 {
		return tiffIFD{}, errMalformedTIFF
	}
	var order binary.ByteOrder
	switch string(data[:2]) {
	case "II":
		order = binary.LittleEndian
	case "MM":
		order = binary.BigEndian
	default:
		return tiffIFD{}, errMalformedTIFF
	}
	if order.Uint16(data[2:4]) != 42 {
		return tiffIFD{}, errMalformedTIFF
	}
	offset := int64(order.Uint32(data[4:8]))
	if offset+2 > int64(len(data)) {
		return tiffIFD{}, errMalformedTIFF
	}

	count := int64(order.Uint16(data[offset : offset+2]))
	ifd := tiffIFD{order: order, entries: make(map[uint16]tiffEntry, count)}
	for i := int64(0); i < count; i++ {
		base := offset + 2 + i*12
		if base+12 > int64(len(data)) {
			return tiffIFD{}, errMalformedTIFF
		}
		tag := order.Uint16(data[base : base+2])
		fieldType := order.Uint16(data[base+2 : base+4])
		valueCount := order.Uint32(data[base+4 : base+8])
		size := int64(tiffTypeSize(fieldType)) * int64(valueCount)
		if size == 0 {
			continue
		}
		var value []byte
		if size <= 4 {
			value = data[base+8 : base+8+size]
		} else {
			at := int64(order.Uint32(data[base+8 : base+12]))
			if at+size > int64(len(data)) {
				return tiffIFD{}, errMalformedTIFF
			}
			value = data[at : at+size]
		}
		ifd.entries[tag] = tiffEntry{fieldType: fieldType, count: valueCount, value: value}
	}
	return ifd, nil
}

func tiffTypeSize(fieldType uint16) int {
	switch fieldType {
	case 1, 2, 6, 7: // BYTE, ASCII, SBYTE, UNDEFINED
		return 1
	case 3, 8: // SHORT, SSHORT
		return 2
	case 4, 9, 11: // LONG, SLONG, FLOAT
		return 4
	case 5, 10, 12: // RATIONAL, SRATIONAL, DOUBLE
		return 8
	default:
		return 0
	}
}

// ints decodes SHORT and LONG values; other field types yield nil.
func (ifd tiffIFD) ints(tag uint16) []int64 {
	entry, ok := ifd.entries[tag]
	if !ok {
		return nil
	}
	values := make([]int64, 0, entry.count)
	switch entry.fieldType {
	case 3:
		for i := uint32(0); i < entry.count; i++ {
			values = append(values, int64(ifd.order.Uint16(entry.value[i*2:i*2+2])))
		}
	case 4:
		for i := uint32(0); i < entry.count; i++ {
			values = append(values, int64(ifd.order.Uint32(entry.value[i*4:i*4+4])))
		}
	default:
		return nil
	}
	return values
}

func (ifd tiffIFD) firstInt(tag uint16) int64 {
	values := ifd.ints(tag)
	if len(values) == 0 {
		return 0
	}
	return values[0]
}

func (ifd tiffIFD) doubles(tag uint16) []float64 {
	entry, ok := ifd.entries[tag]
	if !ok || entry.fieldType != 12 {
		return nil
	}
	values := make([]float64, 0, entry.count)
	for i := uint32(0); i < entry.count; i++ {
		bits := ifd.order.Uint64(entry.value[i*8 : i*8+8])
		values = append(values, math.Float64frombits(bits))
	}
	return values
}

func (ifd tiffIFD) ascii(tag uint16) string {
	entry, ok := ifd.entries[tag]
	if !ok || entry.fieldType != 2 {
		return ""
	}
	return string(entry.value)
}
