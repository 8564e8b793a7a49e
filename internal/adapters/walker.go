package adapters

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"

	"geometa/internal/ports"
	"geometa/internal/shared"
)

// supportedExtensions are the data file extensions eligible for
// aggregation into a collection.
var supportedExtensions = map[string]struct{}{
	".tif":     {},
	".tiff":    {},
	".shp":     {},
	".gpkg":    {},
	".geojson": {},
	".json":    {},
	".csv":     {},
	".tsv":     {},
	".zip":     {},
}

// WalkerAdapter enumerates the eligible members of a directory in
// lexicographic order, so collection entries are reproducible across
// runs.
type WalkerAdapter struct {
	Fs afero.Fs
}

func NewWalkerAdapter() WalkerAdapter {
	return WalkerAdapter{Fs: afero.NewOsFs()}
}

func (a WalkerAdapter) ListEntries(dir string) ([]ports.DirEntry, error) {
	infos, err := afero.ReadDir(a.Fs, dir)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to list directory").
			WithCause(err)
	}
	var entries []ports.DirEntry
	for _, info := range infos {
		name := info.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if info.IsDir() {
			entries = append(entries, ports.DirEntry{
				Path:  filepath.Join(dir, name),
				IsDir: true,
			})
			continue
		}
		if !eligibleDataFile(name) {
			continue
		}
		entries = append(entries, ports.DirEntry{Path: filepath.Join(dir, name)})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}

// eligibleDataFile reports whether a file name is a candidate data
// source. Sidecar documents and their backups are never candidates.
func eligibleDataFile(name string) bool {
	if strings.HasSuffix(name, shared.SidecarSuffix) ||
		strings.HasSuffix(name, shared.BackupSuffix) {
		return false
	}
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

var _ ports.WalkerPort = WalkerAdapter{}
