package adapters

import (
	"archive/zip"
	"bytes"
	"sort"
	"strconv"

	"github.com/spf13/afero"

	"geometa/internal/types"
)

// extractArchive lists the members of a zip archive. The member list
// replaces the default single-entry sources list so the document shows
// everything the archive contains.
func (a ExtractorAdapter) extractArchive(facts *types.Facts) error {
	data, err := afero.ReadFile(a.Fs, facts.Path)
	if err != nil {
		return extractionError("failed to read archive source", err)
	}
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return extractionError("failed to open archive source", err)
	}

	var members []string
	for _, member := range reader.File {
		if member.FileInfo().IsDir() {
			continue
		}
		members = append(members, member.Name)
	}
	sort.Strings(members)

	facts.Type = types.ResourceTypeArchive
	facts.Compression = "zip"
	facts.Sources = members
	facts.Metadata = map[string]string{"members": formatInt(int64(len(members)))}
	return nil
}

func formatInt(value int64) string {
	return strconv.FormatInt(value, 10)
}
