package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"geometa/internal/shared"
	"geometa/internal/types"
)

// DescribeCollection describes every eligible file in a directory and
// builds a collection document enumerating the results. Files that fail
// to describe are recorded as skips; partial success is the expected
// outcome for a heterogeneous directory tree. Subdirectories are
// aggregated recursively while the depth bound allows and appear as
// nested collection entries.
func (s Service) DescribeCollection(ctx context.Context, req DescribeCollectionRequest) (DescribeCollectionResult, error) {
	dir := strings.TrimSpace(req.Dir)
	if dir == "" {
		return DescribeCollectionResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("collection directory is required")
	}

	profile, err := s.resolveProfile(req.ProfilePath)
	if err != nil {
		return DescribeCollectionResult{}, err
	}
	return s.describeCollection(ctx, dir, req.Depth, req.ProfilePath, profile)
}

func (s Service) describeCollection(ctx context.Context, dir string, depth int, profilePath string, profile *types.Profile) (DescribeCollectionResult, error) {
	entries, err := s.Walker.ListEntries(dir)
	if err != nil {
		return DescribeCollectionResult{}, err
	}

	result := DescribeCollectionResult{
		SidecarPath: shared.CollectionSidecarPath(dir),
	}
	var items []types.CollectionItem
	for _, entry := range entries {
		rel, relErr := filepath.Rel(dir, entry.Path)
		if relErr != nil {
			rel = entry.Path
		}
		rel = shared.NormalizePath(rel)

		if entry.IsDir {
			if depth == 0 {
				continue
			}
			nextDepth := depth - 1
			if depth < 0 {
				nextDepth = depth
			}
			nested, nestedErr := s.describeCollection(ctx, entry.Path, nextDepth, profilePath, profile)
			if nestedErr != nil {
				result.Skipped = append(result.Skipped, SkippedItem{
					Path:   entry.Path,
					Reason: nestedErr.Error(),
				})
				continue
			}
			result.Described += nested.Described
			result.Skipped = append(result.Skipped, nested.Skipped...)
			items = append(items, types.CollectionItem{
				Path:        rel,
				Type:        types.CollectionItemTypeCollection,
				Title:       nested.Document.Title,
				Description: nested.Document.Description,
			})
			continue
		}

		described, descErr := s.Describe(ctx, DescribeRequest{
			Path:        entry.Path,
			ProfilePath: profilePath,
		})
		if descErr != nil {
			log.Ctx(ctx).Warn().
				Str("path", entry.Path).
				Err(descErr).
				Msg("skipping undescribable file")
			result.Skipped = append(result.Skipped, SkippedItem{
				Path:   entry.Path,
				Reason: descErr.Error(),
			})
			continue
		}
		result.Described++
		items = append(items, types.CollectionItem{
			Path:        rel,
			Type:        string(described.Document.Type),
			Title:       described.Document.Title,
			Description: described.Document.Description,
		})
	}

	fresh := types.CollectionDocument{
		Path:  shared.NormalizePath(dir),
		Items: items,
	}
	load, err := s.Store.LoadCollection(result.SidecarPath)
	if err != nil {
		return DescribeCollectionResult{}, err
	}
	if load.Incompatible {
		if backupErr := s.Store.Backup(result.SidecarPath); backupErr != nil {
			log.Ctx(ctx).Warn().
				Str("sidecar", result.SidecarPath).
				Err(backupErr).
				Msg("could not back up incompatible collection sidecar")
		}
		log.Ctx(ctx).Warn().
			Str("sidecar", result.SidecarPath).
			Str("cause", load.Cause).
			Msg("replacing incompatible collection document")
	}

	result.Document = s.Merger.MergeCollection(ctx, fresh, load.Document, profile)
	if err := s.Store.SaveCollection(result.SidecarPath, result.Document); err != nil {
		return DescribeCollectionResult{}, err
	}
	return result, nil
}
