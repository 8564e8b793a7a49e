package adapters

import (
	"fmt"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"geometa/internal/core"
	"geometa/internal/ports"
	"geometa/internal/shared"
	"geometa/internal/types"
)

// DocumentStoreAdapter reads and writes sidecar documents on an afero
// filesystem. Loads fail softly: a missing sidecar is "no document", and
// a sidecar that cannot be parsed or fails current-schema validation is
// reported as incompatible rather than as an error, leaving the
// backup-and-replace decision to the describe flow.
type DocumentStoreAdapter struct {
	Fs        afero.Fs
	Validator core.DocumentValidator
}

func NewDocumentStoreAdapter(fs afero.Fs) DocumentStoreAdapter {
	return DocumentStoreAdapter{
		Fs:        fs,
		Validator: core.NewDocumentValidator(),
	}
}

func (a DocumentStoreAdapter) LoadResource(sidecarPath string) (ports.ResourceLoad, error) {
	data, found, err := a.read(sidecarPath)
	if err != nil || !found {
		return ports.ResourceLoad{}, err
	}
	var doc types.ResourceDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return ports.ResourceLoad{
			Incompatible: true,
			Cause:        fmt.Sprintf("not parseable as a metadata document: %v", err),
		}, nil
	}
	if findings := a.Validator.ValidateResource(doc); len(findings) > 0 {
		return ports.ResourceLoad{
			Incompatible: true,
			Cause:        fmt.Sprintf("fails current-schema validation: %s", findings[0]),
		}, nil
	}
	return ports.ResourceLoad{Document: &doc}, nil
}

func (a DocumentStoreAdapter) LoadCollection(sidecarPath string) (ports.CollectionLoad, error) {
	data, found, err := a.read(sidecarPath)
	if err != nil || !found {
		return ports.CollectionLoad{}, err
	}
	var doc types.CollectionDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return ports.CollectionLoad{
			Incompatible: true,
			Cause:        fmt.Sprintf("not parseable as a metadata document: %v", err),
		}, nil
	}
	if findings := a.Validator.ValidateCollection(doc); len(findings) > 0 {
		return ports.CollectionLoad{
			Incompatible: true,
			Cause:        fmt.Sprintf("fails current-schema validation: %s", findings[0]),
		}, nil
	}
	return ports.CollectionLoad{Document: &doc}, nil
}

func (a DocumentStoreAdapter) SaveResource(sidecarPath string, doc types.ResourceDocument) error {
	return a.write(sidecarPath, doc)
}

func (a DocumentStoreAdapter) SaveCollection(sidecarPath string, doc types.CollectionDocument) error {
	return a.write(sidecarPath, doc)
}

// Backup moves an incompatible sidecar aside. A prior backup at the
// target name is overwritten: last incompatible wins.
func (a DocumentStoreAdapter) Backup(sidecarPath string) error {
	backupPath := shared.BackupPath(sidecarPath)
	if exists, _ := afero.Exists(a.Fs, backupPath); exists {
		if err := a.Fs.Remove(backupPath); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to remove prior sidecar backup").
				WithCause(err)
		}
	}
	if err := a.Fs.Rename(sidecarPath, backupPath); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to back up incompatible sidecar").
			WithCause(err)
	}
	return nil
}

// read returns the sidecar bytes, with found=false for a missing file.
func (a DocumentStoreAdapter) read(sidecarPath string) ([]byte, bool, error) {
	exists, err := afero.Exists(a.Fs, sidecarPath)
	if err != nil {
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to stat sidecar file").
			WithCause(err)
	}
	if !exists {
		return nil, false, nil
	}
	data, err := afero.ReadFile(a.Fs, sidecarPath)
	if err != nil {
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read sidecar file").
			WithCause(err)
	}
	return data, true, nil
}

// write marshals the document and replaces the sidecar through a
// temporary file in the same directory, so a failed write leaves any
// prior sidecar untouched.
func (a DocumentStoreAdapter) write(sidecarPath string, doc any) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode metadata document").
			WithCause(err)
	}
	dir := filepath.Dir(sidecarPath)
	tmp, err := afero.TempFile(a.Fs, dir, ".geometa-*")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create temporary sidecar file").
			WithCause(err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		a.Fs.Remove(tmpPath)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write sidecar file").
			WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		a.Fs.Remove(tmpPath)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write sidecar file").
			WithCause(err)
	}
	if err := a.Fs.Rename(tmpPath, sidecarPath); err != nil {
		a.Fs.Remove(tmpPath)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to replace sidecar file").
			WithCause(err)
	}
	return nil
}

var _ ports.DocumentStorePort = DocumentStoreAdapter{}
