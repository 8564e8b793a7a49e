package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFieldDescriptionAccessors(t *testing.T) {
	doc := ResourceDocument{
		DataModel: &DataModel{
			Fields: []FieldSchema{
				{Name: "site_id", Type: "integer"},
				{Name: "species", Type: "string"},
			},
		},
	}

	assert.True(t, doc.SetFieldDescription("species", "Species", "Common name", ""))
	field, ok := doc.GetFieldDescription("species")
	require.True(t, ok)
	assert.Equal(t, "Species", field.Title)
	assert.Equal(t, "Common name", field.Description)

	// Empty arguments leave existing text alone.
	assert.True(t, doc.SetFieldDescription("species", "", "", "individuals"))
	field, _ = doc.GetFieldDescription("species")
	assert.Equal(t, "Species", field.Title)
	assert.Equal(t, "individuals", field.Units)

	assert.False(t, doc.SetFieldDescription("absent", "x", "", ""))
	_, ok = doc.GetFieldDescription("absent")
	assert.False(t, ok)
}

func TestBandDescriptionAccessors(t *testing.T) {
	doc := ResourceDocument{
		DataModel: &DataModel{
			Bands: []BandSchema{
				{Index: 1, DataType: "uint8"},
				{Index: 2, DataType: "uint8"},
			},
		},
	}

	assert.True(t, doc.SetBandDescription(2, "Classified", "", "class"))
	band, ok := doc.GetBandDescription(2)
	require.True(t, ok)
	assert.Equal(t, "Classified", band.Title)
	assert.Equal(t, "class", band.Units)

	assert.False(t, doc.SetBandDescription(3, "x", "", ""))
}

func TestAccessorsWithoutDataModel(t *testing.T) {
	doc := ResourceDocument{}
	assert.False(t, doc.SetFieldDescription("a", "x", "", ""))
	assert.False(t, doc.SetBandDescription(1, "x", "", ""))
	_, ok := doc.GetFieldDescription("a")
	assert.False(t, ok)
	_, ok = doc.GetBandDescription(1)
	assert.False(t, ok)
}

func TestResourceDocumentYamlKeyOrder(t *testing.T) {
	doc := ResourceDocument{
		Kind:            DocumentKindResource,
		MetadataVersion: "1.1.0",
		Path:            "data/observations.csv",
		Type:            ResourceTypeTable,
		Title:           "Field observations",
	}
	data, err := yaml.Marshal(doc)
	require.NoError(t, err)

	text := string(data)
	kind := strings.Index(text, "kind:")
	version := strings.Index(text, "metadata_version:")
	path := strings.Index(text, "path:")
	title := strings.Index(text, "title:")
	require.NotEqual(t, -1, kind)
	require.NotEqual(t, -1, title)

	// Structural keys lead, user-authored text follows.
	assert.Less(t, kind, version)
	assert.Less(t, version, path)
	assert.Less(t, path, title)
}

func TestProfileMerge(t *testing.T) {
	base := Profile{Contact: ContactSchema{Email: "gis@example.org"}}
	other := Profile{
		Contact: ContactSchema{Email: "ignored@example.org", Organization: "Example"},
		License: LicenseSchema{Title: "CC-BY-4.0"},
	}

	merged := base.Merge(other)
	assert.Equal(t, "gis@example.org", merged.Contact.Email)
	assert.Equal(t, "Example", merged.Contact.Organization)
	assert.Equal(t, "CC-BY-4.0", merged.License.Title)
}
