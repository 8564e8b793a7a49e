// Package shared provides common helpers used across multiple packages
// in the geometa codebase.
package shared

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	// SidecarSuffix is appended to a data path to name its metadata
	// document, e.g. "myraster.tif" -> "myraster.tif.yml".
	SidecarSuffix = ".yml"

	// CollectionSuffix is appended to a directory path to name its
	// collection document.
	CollectionSuffix = "-metadata.yml"

	// BackupSuffix is appended to an incompatible sidecar when it is
	// moved aside. A prior backup at that name is overwritten.
	BackupSuffix = ".bak"
)

// TimestampFormat renders file modification times in documents.
const TimestampFormat = "2006-01-02 15:04:05"

// SidecarPath returns the metadata document path for a data file.
func SidecarPath(dataPath string) string {
	return dataPath + SidecarSuffix
}

// CollectionSidecarPath returns the collection document path for a
// directory. The trailing separator is stripped first so "data/" and
// "data" name the same document.
func CollectionSidecarPath(dirPath string) string {
	return strings.TrimRight(dirPath, "/\\") + CollectionSuffix
}

// BackupPath returns the backup name for an incompatible sidecar.
func BackupPath(sidecarPath string) string {
	return sidecarPath + BackupSuffix
}

// NormalizePath rewrites Windows separators to forward slashes so
// documents are portable across platforms. Paths are treated as opaque
// byte strings otherwise; non-ASCII characters pass through untouched.
func NormalizePath(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}

// SizeTimestampUID derives the resource identifier from file size,
// modification time and path. The scheme prefix distinguishes it from
// content hashes should those ever be supported.
func SizeTimestampUID(bytes int64, modified time.Time, path string) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%d%s%s",
		bytes, modified.UTC().Format(TimestampFormat), NormalizePath(path)))
	return fmt.Sprintf("sizetimestamp:%x", sum)
}

// FormatFromPath reports the lowercase extension without the dot, used
// as the document's format label when the driver has nothing better.
func FormatFromPath(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
