package ports

// DirEntry is one eligible member of a directory: a data file with a
// supported extension, or a subdirectory.
type DirEntry struct {
	Path  string
	IsDir bool
}

type WalkerPort interface {
	// ListEntries returns the eligible entries of one directory in
	// lexicographic order by name. Sidecar and backup files are never
	// eligible.
	ListEntries(dir string) ([]DirEntry, error)
}
