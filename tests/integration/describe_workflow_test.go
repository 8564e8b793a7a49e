package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geometa/internal/adapters"
	"geometa/internal/app"
	"geometa/internal/core"
	"geometa/internal/types"
)

// TestDescribeEditValidateFlow exercises the authoring loop end to end:
//
//	describe -> edit user fields by hand -> describe again -> validate
//
// across a mixed directory of raster, vector, tabular and archive
// sources, using the real adapters against a temporary directory.
func TestDescribeEditValidateFlow(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"observations.csv",
		"lulc.tif",
		"sites.geojson",
		"archive.zip",
		"watershed.shp",
		"watershed.dbf",
		"watershed.prj",
		"basins.gpkg",
	} {
		data, err := os.ReadFile(filepath.Join("../../fixtures", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
	}

	fs := afero.NewOsFs()
	service := app.Service{
		Fs:            fs,
		Extractor:     adapters.NewExtractorAdapter(),
		Store:         adapters.NewDocumentStoreAdapter(fs),
		ProfileSource: adapters.ProfileSourceAdapter{Fs: fs, Path: filepath.Join(dir, ".profile.yml")},
		Walker:        adapters.NewWalkerAdapter(),
		Merger:        core.NewMerger(),
		Validator:     core.NewDocumentValidator(),
	}
	ctx := context.Background()

	// Step 1: aggregate the whole directory. Five standalone sources;
	// the shapefile siblings fold into one resource.
	collection, err := service.DescribeCollection(ctx, app.DescribeCollectionRequest{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, 5, collection.Described)
	assert.Empty(t, collection.Skipped)
	require.Len(t, collection.Document.Items, 5)

	expectedTypes := map[string]string{
		"archive.zip":      "archive",
		"basins.gpkg":      "vector",
		"lulc.tif":         "raster",
		"observations.csv": "table",
		"sites.geojson":    "vector",
	}
	for _, item := range collection.Document.Items {
		assert.Equal(t, expectedTypes[item.Path], item.Type, item.Path)
	}

	// Step 2: author metadata on the raster document.
	rasterSidecar := filepath.Join(dir, "lulc.tif.yml")
	load, err := service.Store.LoadResource(rasterSidecar)
	require.NoError(t, err)
	require.NotNil(t, load.Document)

	edited := *load.Document
	edited.Title = "Land cover 2024"
	edited.Keywords = []string{"landcover", "classification"}
	require.True(t, edited.SetBandDescription(1, "Class", "Land cover class code", ""))
	require.NoError(t, service.Store.SaveResource(rasterSidecar, edited))

	// Step 3: re-describe; derived facts refresh, authored text stays.
	redescribed, err := service.Describe(ctx, app.DescribeRequest{Path: filepath.Join(dir, "lulc.tif")})
	require.NoError(t, err)
	assert.Equal(t, "Land cover 2024", redescribed.Document.Title)
	band, ok := redescribed.Document.GetBandDescription(1)
	require.True(t, ok)
	assert.Equal(t, "Class", band.Title)
	assert.Equal(t, "uint8", band.DataType)
	assert.Equal(t, types.ResourceTypeRaster, redescribed.Document.Type)

	// Step 4: every document written along the way validates clean.
	report, err := service.ValidateDir(ctx, app.ValidateDirRequest{Dir: dir})
	require.NoError(t, err)
	require.NotEmpty(t, report.Documents)
	for _, doc := range report.Documents {
		assert.Empty(t, doc.Findings, doc.SidecarPath)
	}
}

// TestCorruptSidecarRecoveryFlow verifies that a hand-damaged document
// never blocks describing and is kept as a backup for the author.
func TestCorruptSidecarRecoveryFlow(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile("../../fixtures/observations.csv")
	require.NoError(t, err)
	dataPath := filepath.Join(dir, "observations.csv")
	require.NoError(t, os.WriteFile(dataPath, data, 0644))
	require.NoError(t, os.WriteFile(dataPath+".yml", []byte("{{ not yaml"), 0644))

	fs := afero.NewOsFs()
	service := app.Service{
		Fs:            fs,
		Extractor:     adapters.NewExtractorAdapter(),
		Store:         adapters.NewDocumentStoreAdapter(fs),
		ProfileSource: adapters.ProfileSourceAdapter{Fs: fs, Path: filepath.Join(dir, ".profile.yml")},
		Walker:        adapters.NewWalkerAdapter(),
		Merger:        core.NewMerger(),
		Validator:     core.NewDocumentValidator(),
	}

	result, err := service.Describe(context.Background(), app.DescribeRequest{Path: dataPath})
	require.NoError(t, err)
	assert.True(t, result.BackedUp)

	backup, err := os.ReadFile(dataPath + ".yml.bak")
	require.NoError(t, err)
	assert.Equal(t, "{{ not yaml", string(backup))

	check, err := service.Validate(context.Background(), app.ValidateRequest{Path: result.SidecarPath})
	require.NoError(t, err)
	assert.Empty(t, check.Findings)
}
