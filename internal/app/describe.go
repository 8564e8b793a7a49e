package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"geometa/internal/shared"
	"geometa/internal/types"
)

// Describe extracts facts from a data source, reconciles them with any
// existing sidecar document under the merge policy, and writes the
// result back beside the data. An incompatible prior sidecar is backed
// up, never silently discarded and never fatal; only extraction and the
// final write can fail.
func (s Service) Describe(ctx context.Context, req DescribeRequest) (DescribeResult, error) {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		return DescribeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("data source path is required")
	}

	facts, err := s.Extractor.Extract(ctx, path)
	if err != nil {
		return DescribeResult{}, err
	}

	profile, err := s.resolveProfile(req.ProfilePath)
	if err != nil {
		return DescribeResult{}, err
	}

	sidecar := shared.SidecarPath(path)
	load, err := s.Store.LoadResource(sidecar)
	if err != nil {
		return DescribeResult{}, err
	}

	result := DescribeResult{SidecarPath: sidecar}
	if load.Incompatible {
		// Backup is best-effort: a failed rename is reported but must
		// not abort the describe.
		if backupErr := s.Store.Backup(sidecar); backupErr != nil {
			log.Ctx(ctx).Warn().
				Str("sidecar", sidecar).
				Err(backupErr).
				Msg("could not back up incompatible sidecar")
		} else {
			result.BackedUp = true
			result.BackupPath = shared.BackupPath(sidecar)
		}
		log.Ctx(ctx).Warn().
			Str("sidecar", sidecar).
			Str("cause", load.Cause).
			Msg("replacing incompatible sidecar document")
	}

	result.Document = s.Merger.MergeResource(ctx, facts, load.Document, profile)
	if err := s.Store.SaveResource(sidecar, result.Document); err != nil {
		return DescribeResult{}, err
	}
	return result, nil
}

// resolveProfile combines an explicit profile with the stored default.
// Explicit values win per field; stored defaults fill the gaps. With no
// explicit path the stored default is used alone, and a missing default
// is not an error.
func (s Service) resolveProfile(explicit string) (*types.Profile, error) {
	stored, err := s.ProfileSource.CurrentProfile()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(explicit) == "" {
		return stored, nil
	}
	profile, err := s.ProfileSource.LoadProfile(explicit)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		profile = profile.Merge(*stored)
	}
	return &profile, nil
}
