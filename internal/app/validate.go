package app

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"geometa/internal/shared"
	"geometa/internal/types"
)

// Validate checks one metadata document against the current schema and
// returns findings as data. The document kind is read from the file's
// own discriminator; a file that is not parseable YAML yields a single
// finding rather than an error.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("document path is required")
	}
	data, err := afero.ReadFile(s.Fs, path)
	if err != nil {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("document not found: " + path).
			WithCause(err)
	}
	return ValidateResult{Findings: s.validateBytes(data)}, nil
}

// ValidateDir validates every sidecar document under a directory,
// sorted by path for reproducible output.
func (s Service) ValidateDir(ctx context.Context, req ValidateDirRequest) (ValidateDirResult, error) {
	dir := strings.TrimSpace(req.Dir)
	if dir == "" {
		return ValidateDirResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("directory path is required")
	}
	sidecars, err := collectSidecars(s.Fs, dir, req.Recursive)
	if err != nil {
		return ValidateDirResult{}, err
	}
	sort.Strings(sidecars)

	result := ValidateDirResult{}
	for _, sidecar := range sidecars {
		data, readErr := afero.ReadFile(s.Fs, sidecar)
		if readErr != nil {
			result.Documents = append(result.Documents, ValidatedDocument{
				SidecarPath: sidecar,
				Findings: []types.ValidationError{
					{Message: "unreadable document: " + readErr.Error()},
				},
			})
			continue
		}
		result.Documents = append(result.Documents, ValidatedDocument{
			SidecarPath: sidecar,
			Findings:    s.validateBytes(data),
		})
	}
	return result, nil
}

// validateBytes parses a document of unknown kind and dispatches on the
// discriminator.
func (s Service) validateBytes(data []byte) []types.ValidationError {
	var probe struct {
		Kind types.DocumentKind `yaml:"kind"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return []types.ValidationError{
			{Message: "not parseable as a metadata document: " + err.Error()},
		}
	}
	switch probe.Kind {
	case types.DocumentKindCollection:
		var doc types.CollectionDocument
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return []types.ValidationError{
				{Message: "not parseable as a collection document: " + err.Error()},
			}
		}
		return s.Validator.ValidateCollection(doc)
	default:
		var doc types.ResourceDocument
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return []types.ValidationError{
				{Message: "not parseable as a resource document: " + err.Error()},
			}
		}
		return s.Validator.ValidateResource(doc)
	}
}

func collectSidecars(fs afero.Fs, dir string, recursive bool) ([]string, error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to list directory").
			WithCause(err)
	}
	var sidecars []string
	for _, info := range infos {
		if strings.HasPrefix(info.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, info.Name())
		if info.IsDir() {
			if recursive {
				nested, err := collectSidecars(fs, path, true)
				if err != nil {
					return nil, err
				}
				sidecars = append(sidecars, nested...)
			}
			continue
		}
		if strings.HasSuffix(info.Name(), shared.SidecarSuffix) &&
			!strings.HasSuffix(info.Name(), shared.BackupSuffix) {
			sidecars = append(sidecars, path)
		}
	}
	return sidecars, nil
}
