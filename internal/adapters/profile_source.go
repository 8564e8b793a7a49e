package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"geometa/internal/ports"
	"geometa/internal/types"
)

// DefaultProfileName is the profile file kept in the user config
// directory, under a "geometa" subdirectory.
const DefaultProfileName = "profile.yml"

// ProfileSourceAdapter stores the process-wide default profile as a
// small YAML file. A missing profile is not an error: describe simply
// proceeds without defaults.
type ProfileSourceAdapter struct {
	Fs   afero.Fs
	Path string
}

func NewProfileSourceAdapter(path string) ProfileSourceAdapter {
	if path == "" {
		if configDir, err := os.UserConfigDir(); err == nil {
			path = filepath.Join(configDir, "geometa", DefaultProfileName)
		}
	}
	return ProfileSourceAdapter{Fs: afero.NewOsFs(), Path: path}
}

func (a ProfileSourceAdapter) CurrentProfile() (*types.Profile, error) {
	if a.Path == "" {
		return nil, nil
	}
	exists, err := afero.Exists(a.Fs, a.Path)
	if err != nil || !exists {
		return nil, nil
	}
	profile, err := a.LoadProfile(a.Path)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (a ProfileSourceAdapter) LoadProfile(path string) (types.Profile, error) {
	data, err := afero.ReadFile(a.Fs, path)
	if err != nil {
		return types.Profile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("profile file not found").
			WithCause(err)
	}
	var profile types.Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return types.Profile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse profile yaml").
			WithCause(err)
	}
	return profile, nil
}

func (a ProfileSourceAdapter) SaveProfile(profile types.Profile) error {
	if a.Path == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("no profile path is configured")
	}
	data, err := yaml.Marshal(profile)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode profile").
			WithCause(err)
	}
	if err := a.Fs.MkdirAll(filepath.Dir(a.Path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create profile directory").
			WithCause(err)
	}
	if err := afero.WriteFile(a.Fs, a.Path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write profile file").
			WithCause(err)
	}
	return nil
}

var _ ports.ProfileSourcePort = ProfileSourceAdapter{}
