package ports

import "geometa/internal/types"

type ProfileSourcePort interface {
	// CurrentProfile returns the stored default profile, or nil when
	// none has been configured.
	CurrentProfile() (*types.Profile, error)

	// LoadProfile reads a profile from an explicit path.
	LoadProfile(path string) (types.Profile, error)

	// SaveProfile persists a profile as the stored default.
	SaveProfile(profile types.Profile) error
}
