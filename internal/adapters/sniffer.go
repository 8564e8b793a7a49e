package adapters

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
)

// sourceKind is the closed set of data source variants the extractor
// dispatches over. The kind is resolved once, at entry, by sniffing the
// source; nothing downstream re-inspects the file type.
type sourceKind int

const (
	kindUnknown sourceKind = iota
	kindGeoTIFF
	kindShapefile
	kindGeoPackage
	kindGeoJSON
	kindTable
	kindArchive
)

var sqliteMagic = []byte("SQLite format 3\x00")

// sniffSource classifies a data source by extension first, then by
// content. Extensions are authoritative for the geospatial formats,
// where content detection libraries see only a container (TIFF, SQLite,
// JSON). CSV is checked before any GIS interpretation because several
// GIS stacks will happily read a CSV as an attribute-only vector.
func sniffSource(fs afero.Fs, path string) (sourceKind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		return kindGeoTIFF, nil
	case ".shp":
		return kindShapefile, nil
	case ".gpkg":
		return kindGeoPackage, nil
	case ".geojson":
		return kindGeoJSON, nil
	case ".csv", ".tsv":
		return kindTable, nil
	case ".zip":
		return kindArchive, nil
	case ".json":
		if ok, err := looksLikeGeoJSON(fs, path); err != nil {
			return kindUnknown, err
		} else if ok {
			return kindGeoJSON, nil
		}
		return kindUnknown, unsupportedSourceError(path)
	}

	file, err := fs.Open(path)
	if err != nil {
		return kindUnknown, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to open data source").
			WithCause(err)
	}
	defer file.Close()
	detected, err := mimetype.DetectReader(file)
	if err != nil {
		return kindUnknown, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to sniff data source").
			WithCause(err)
	}
	switch {
	case detected.Is("application/zip"):
		return kindArchive, nil
	case detected.Is("image/tiff"):
		return kindGeoTIFF, nil
	case detected.Is("application/vnd.sqlite3"), detected.Is("application/x-sqlite3"):
		return kindGeoPackage, nil
	case detected.Is("text/csv"), detected.Is("text/tab-separated-values"):
		return kindTable, nil
	}
	return kindUnknown, unsupportedSourceError(path)
}

// looksLikeGeoJSON peeks at the head of a .json file for the
// FeatureCollection marker without parsing the whole document.
func looksLikeGeoJSON(fs afero.Fs, path string) (bool, error) {
	file, err := fs.Open(path)
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to open data source").
			WithCause(err)
	}
	defer file.Close()
	head := make([]byte, 512)
	n, _ := file.Read(head)
	return bytes.Contains(head[:n], []byte("FeatureCollection")), nil
}

func unsupportedSourceError(path string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("data source does not appear to be one of (archive, table, raster, vector): " + path)
}
