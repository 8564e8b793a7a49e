package app

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geometa/internal/adapters"
	"geometa/internal/types"
)

func configService() Service {
	return Service{
		ProfileSource: adapters.ProfileSourceAdapter{
			Fs:   afero.NewMemMapFs(),
			Path: "config/geometa/profile.yml",
		},
	}
}

func TestConfigureShowsEmptyProfile(t *testing.T) {
	service := configService()
	result, err := service.Configure(context.Background(), ConfigureRequest{})
	require.NoError(t, err)
	assert.True(t, result.Profile.Contact.Empty())
	assert.True(t, result.Profile.License.Empty())
}

func TestConfigureStoresContactAndLicense(t *testing.T) {
	service := configService()
	ctx := context.Background()

	_, err := service.Configure(ctx, ConfigureRequest{
		Contact: &types.ContactSchema{Email: "gis@example.org"},
	})
	require.NoError(t, err)

	// License set in a later call must not clobber the stored contact.
	result, err := service.Configure(ctx, ConfigureRequest{
		License: &types.LicenseSchema{Title: "CC-BY-4.0"},
	})
	require.NoError(t, err)
	assert.Equal(t, "gis@example.org", result.Profile.Contact.Email)
	assert.Equal(t, "CC-BY-4.0", result.Profile.License.Title)

	// And the merged profile is what a fresh read reports.
	shown, err := service.Configure(ctx, ConfigureRequest{})
	require.NoError(t, err)
	assert.Equal(t, result.Profile, shown.Profile)
}
