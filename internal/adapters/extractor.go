package adapters

import (
	"context"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"geometa/internal/ports"
	"geometa/internal/shared"
	"geometa/internal/types"
)

// ExtractorAdapter inspects a data source and derives the facts a
// document is built from. The GeoPackage path goes through the SQLite
// driver and therefore needs a real filesystem; everything else reads
// through afero.
type ExtractorAdapter struct {
	Fs afero.Fs
}

func NewExtractorAdapter() ExtractorAdapter {
	return ExtractorAdapter{Fs: afero.NewOsFs()}
}

func (a ExtractorAdapter) Extract(ctx context.Context, path string) (types.Facts, error) {
	info, err := a.Fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.Facts{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("data source does not exist: " + path)
		}
		return types.Facts{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to stat data source").
			WithCause(err)
	}
	if info.IsDir() {
		return types.Facts{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("data source is a directory, not a file: " + path)
	}

	kind, err := sniffSource(a.Fs, path)
	if err != nil {
		return types.Facts{}, err
	}

	facts := a.fileFacts(path, info)
	switch kind {
	case kindGeoTIFF:
		err = a.extractGeoTIFF(&facts)
	case kindShapefile:
		err = a.extractShapefile(&facts)
	case kindGeoPackage:
		err = a.extractGeoPackage(&facts)
	case kindGeoJSON:
		err = a.extractGeoJSON(&facts)
	case kindTable:
		err = a.extractTable(&facts)
	case kindArchive:
		err = a.extractArchive(&facts)
	default:
		err = unsupportedSourceError(path)
	}
	if err != nil {
		return types.Facts{}, err
	}
	log.Ctx(ctx).Debug().
		Str("path", path).
		Str("type", string(facts.Type)).
		Msg("extracted source facts")
	return facts, nil
}

// fileFacts fills in the attributes common to every source kind.
func (a ExtractorAdapter) fileFacts(path string, info os.FileInfo) types.Facts {
	normalized := shared.NormalizePath(path)
	return types.Facts{
		Path:         normalized,
		Format:       shared.FormatFromPath(path),
		Bytes:        info.Size(),
		LastModified: info.ModTime().UTC().Format(shared.TimestampFormat),
		UID:          shared.SizeTimestampUID(info.Size(), info.ModTime(), path),
		Sources:      []string{normalized},
	}
}

func extractionError(msg string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msg).
		WithCause(cause)
}

var _ ports.ExtractorPort = ExtractorAdapter{}
