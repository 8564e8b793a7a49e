package ports

import "geometa/internal/types"

// ResourceLoad is the result of reading a resource sidecar. A missing
// file yields the zero value. A file that cannot be parsed, or that
// fails current-schema validation, sets Incompatible with a
// human-readable cause; neither case is an error to the describe flow.
type ResourceLoad struct {
	Document     *types.ResourceDocument
	Incompatible bool
	Cause        string
}

// CollectionLoad mirrors ResourceLoad for collection sidecars.
type CollectionLoad struct {
	Document     *types.CollectionDocument
	Incompatible bool
	Cause        string
}

type DocumentStorePort interface {
	LoadResource(sidecarPath string) (ResourceLoad, error)
	LoadCollection(sidecarPath string) (CollectionLoad, error)

	// SaveResource and SaveCollection write deterministically ordered
	// UTF-8 YAML, atomically from the caller's point of view.
	SaveResource(sidecarPath string, doc types.ResourceDocument) error
	SaveCollection(sidecarPath string, doc types.CollectionDocument) error

	// Backup renames an incompatible sidecar aside, overwriting any
	// prior backup.
	Backup(sidecarPath string) error
}
