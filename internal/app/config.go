package app

import (
	"context"

	"geometa/internal/types"
)

// Configure reads the stored default profile, applies any requested
// changes, and persists the result. Called with an empty request it
// just reports the current profile.
func (s Service) Configure(ctx context.Context, req ConfigureRequest) (ConfigureResult, error) {
	profile := types.Profile{}
	if current, err := s.ProfileSource.CurrentProfile(); err != nil {
		return ConfigureResult{}, err
	} else if current != nil {
		profile = *current
	}

	changed := false
	if req.Contact != nil {
		profile.Contact = *req.Contact
		changed = true
	}
	if req.License != nil {
		profile.License = *req.License
		changed = true
	}
	if changed {
		if err := s.ProfileSource.SaveProfile(profile); err != nil {
			return ConfigureResult{}, err
		}
	}
	return ConfigureResult{Profile: profile}, nil
}
