package ports

import (
	"context"

	"geometa/internal/types"
)

type ExtractorPort interface {
	// Extract inspects the data source at path and returns its derived
	// attributes. It fails with a coded error when the source is missing
	// or not one of the supported formats.
	Extract(ctx context.Context, path string) (types.Facts, error)
}
