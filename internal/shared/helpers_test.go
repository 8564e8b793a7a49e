package shared

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSidecarPath(t *testing.T) {
	assert.Equal(t, "data/raster.tif.yml", SidecarPath("data/raster.tif"))
	assert.Equal(t, "größe.csv.yml", SidecarPath("größe.csv"))
}

func TestCollectionSidecarPath(t *testing.T) {
	// Trailing separators must not change the document name.
	assert.Equal(t, "data-metadata.yml", CollectionSidecarPath("data"))
	assert.Equal(t, "data-metadata.yml", CollectionSidecarPath("data/"))
	assert.Equal(t, "data-metadata.yml", CollectionSidecarPath("data\\"))
}

func TestBackupPath(t *testing.T) {
	assert.Equal(t, "raster.tif.yml.bak", BackupPath("raster.tif.yml"))
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "a/b/c.tif", NormalizePath(`a\b\c.tif`))
	assert.Equal(t, "a/b/c.tif", NormalizePath("a/b/c.tif"))
	assert.Equal(t, "daten/größe.csv", NormalizePath(`daten\größe.csv`))
}

func TestSizeTimestampUID(t *testing.T) {
	modified := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	uid := SizeTimestampUID(1024, modified, "data/raster.tif")
	assert.True(t, strings.HasPrefix(uid, "sizetimestamp:"))
	assert.Len(t, uid, len("sizetimestamp:")+64)

	// Deterministic for identical inputs, including separator variants.
	assert.Equal(t, uid, SizeTimestampUID(1024, modified, "data/raster.tif"))
	assert.Equal(t, uid, SizeTimestampUID(1024, modified, `data\raster.tif`))

	// Any input change yields a different identifier.
	assert.NotEqual(t, uid, SizeTimestampUID(1025, modified, "data/raster.tif"))
	assert.NotEqual(t, uid, SizeTimestampUID(1024, modified.Add(time.Second), "data/raster.tif"))
	assert.NotEqual(t, uid, SizeTimestampUID(1024, modified, "data/other.tif"))
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, "tif", FormatFromPath("data/raster.TIF"))
	assert.Equal(t, "geojson", FormatFromPath("sites.geojson"))
	assert.Equal(t, "", FormatFromPath("README"))
}
