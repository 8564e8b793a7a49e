package adapters

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geometa/internal/core"
	"geometa/internal/types"
)

func storeOnMemFs(t *testing.T) (DocumentStoreAdapter, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("data", 0755))
	return NewDocumentStoreAdapter(fs), fs
}

func sampleResource() types.ResourceDocument {
	return types.ResourceDocument{
		Kind:            types.DocumentKindResource,
		MetadataVersion: core.CurrentMetadataVersion,
		Path:            "data/observations.csv",
		Type:            types.ResourceTypeTable,
		Title:           "Field observations",
		DataModel: &types.DataModel{
			Fields: []types.FieldSchema{
				{Name: "site_id", Type: "integer", Title: "Site"},
			},
		},
	}
}

func TestDocumentStoreResourceRoundTrip(t *testing.T) {
	store, _ := storeOnMemFs(t)
	doc := sampleResource()

	require.NoError(t, store.SaveResource("data/observations.csv.yml", doc))

	load, err := store.LoadResource("data/observations.csv.yml")
	require.NoError(t, err)
	assert.False(t, load.Incompatible)
	require.NotNil(t, load.Document)
	assert.Equal(t, doc.Title, load.Document.Title)
	assert.Equal(t, doc.Path, load.Document.Path)
	require.NotNil(t, load.Document.DataModel)
	assert.Equal(t, "Site", load.Document.DataModel.Fields[0].Title)
}

func TestDocumentStoreMissingSidecar(t *testing.T) {
	store, _ := storeOnMemFs(t)

	load, err := store.LoadResource("data/absent.csv.yml")
	require.NoError(t, err)
	assert.False(t, load.Incompatible)
	assert.Nil(t, load.Document)
}

func TestDocumentStoreCorruptSidecarIsIncompatible(t *testing.T) {
	store, fs := storeOnMemFs(t)
	require.NoError(t, afero.WriteFile(fs, "data/bad.csv.yml",
		[]byte("kind: [resource\n  not yaml"), 0644))

	load, err := store.LoadResource("data/bad.csv.yml")
	require.NoError(t, err)
	assert.True(t, load.Incompatible)
	assert.Contains(t, load.Cause, "not parseable")
	assert.Nil(t, load.Document)
}

func TestDocumentStoreLegacySidecarIsIncompatible(t *testing.T) {
	store, fs := storeOnMemFs(t)
	// A pre-1.0 document: parseable, but failing current-schema checks.
	require.NoError(t, afero.WriteFile(fs, "data/old.csv.yml",
		[]byte("kind: resource\nmetadata_version: 0.9.0\npath: data/old.csv\ntype: table\n"), 0644))

	load, err := store.LoadResource("data/old.csv.yml")
	require.NoError(t, err)
	assert.True(t, load.Incompatible)
	assert.Contains(t, load.Cause, "validation")
}

func TestDocumentStoreToleratesUnknownKeys(t *testing.T) {
	store, fs := storeOnMemFs(t)
	require.NoError(t, afero.WriteFile(fs, "data/extra.csv.yml",
		[]byte("kind: resource\nmetadata_version: 1.1.0\npath: data/extra.csv\ntype: table\nfuture_field: kept elsewhere\n"), 0644))

	load, err := store.LoadResource("data/extra.csv.yml")
	require.NoError(t, err)
	assert.False(t, load.Incompatible)
	require.NotNil(t, load.Document)
	assert.Equal(t, "data/extra.csv", load.Document.Path)
}

func TestDocumentStoreSaveOverwrites(t *testing.T) {
	store, _ := storeOnMemFs(t)
	doc := sampleResource()
	require.NoError(t, store.SaveResource("data/observations.csv.yml", doc))

	doc.Title = "Revised title"
	require.NoError(t, store.SaveResource("data/observations.csv.yml", doc))

	load, err := store.LoadResource("data/observations.csv.yml")
	require.NoError(t, err)
	require.NotNil(t, load.Document)
	assert.Equal(t, "Revised title", load.Document.Title)
}

func TestDocumentStoreSaveLeavesNoTempFiles(t *testing.T) {
	store, fs := storeOnMemFs(t)
	require.NoError(t, store.SaveResource("data/observations.csv.yml", sampleResource()))

	infos, err := afero.ReadDir(fs, "data")
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "observations.csv.yml", infos[0].Name())
}

func TestDocumentStoreNonASCIIPaths(t *testing.T) {
	store, _ := storeOnMemFs(t)
	doc := sampleResource()
	doc.Path = "data/größe.csv"

	require.NoError(t, store.SaveResource("data/größe.csv.yml", doc))

	load, err := store.LoadResource("data/größe.csv.yml")
	require.NoError(t, err)
	require.NotNil(t, load.Document)
	assert.Equal(t, "data/größe.csv", load.Document.Path)
}

func TestDocumentStoreBackup(t *testing.T) {
	store, fs := storeOnMemFs(t)
	require.NoError(t, afero.WriteFile(fs, "data/bad.csv.yml", []byte("garbage"), 0644))

	require.NoError(t, store.Backup("data/bad.csv.yml"))

	exists, _ := afero.Exists(fs, "data/bad.csv.yml")
	assert.False(t, exists)
	content, err := afero.ReadFile(fs, "data/bad.csv.yml.bak")
	require.NoError(t, err)
	assert.Equal(t, "garbage", string(content))
}

func TestDocumentStoreBackupOverwritesPrior(t *testing.T) {
	store, fs := storeOnMemFs(t)
	require.NoError(t, afero.WriteFile(fs, "data/bad.csv.yml.bak", []byte("first"), 0644))
	require.NoError(t, afero.WriteFile(fs, "data/bad.csv.yml", []byte("second"), 0644))

	require.NoError(t, store.Backup("data/bad.csv.yml"))

	content, err := afero.ReadFile(fs, "data/bad.csv.yml.bak")
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))
}

func TestDocumentStoreCollectionRoundTrip(t *testing.T) {
	store, _ := storeOnMemFs(t)
	doc := types.CollectionDocument{
		Kind:            types.DocumentKindCollection,
		MetadataVersion: core.CurrentMetadataVersion,
		Path:            "data",
		Title:           "Survey bundle",
		Items: []types.CollectionItem{
			{Path: "observations.csv", Type: "table"},
		},
	}
	require.NoError(t, store.SaveCollection("data-metadata.yml", doc))

	load, err := store.LoadCollection("data-metadata.yml")
	require.NoError(t, err)
	assert.False(t, load.Incompatible)
	require.NotNil(t, load.Document)
	assert.Equal(t, "Survey bundle", load.Document.Title)
	require.Len(t, load.Document.Items, 1)
	assert.Equal(t, "observations.csv", load.Document.Items[0].Path)
}
