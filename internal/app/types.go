package app

import "geometa/internal/types"

type DescribeRequest struct {
	Path string

	// ProfilePath optionally overrides the stored default profile.
	ProfilePath string
}

type DescribeResult struct {
	Document    types.ResourceDocument
	SidecarPath string

	// BackedUp is set when an incompatible prior sidecar was moved
	// aside before the new document was written.
	BackedUp   bool
	BackupPath string
}

type DescribeCollectionRequest struct {
	Dir string

	// Depth bounds recursion into subdirectories. 0 describes only the
	// files directly inside Dir; a negative depth recurses without bound.
	Depth int

	ProfilePath string
}

type SkippedItem struct {
	Path   string
	Reason string
}

type DescribeCollectionResult struct {
	Document    types.CollectionDocument
	SidecarPath string
	Described   int
	Skipped     []SkippedItem
}

type ValidateRequest struct {
	Path string
}

type ValidateResult struct {
	Findings []types.ValidationError
}

type ValidateDirRequest struct {
	Dir       string
	Recursive bool
}

type ValidatedDocument struct {
	SidecarPath string
	Findings    []types.ValidationError
}

type ValidateDirResult struct {
	Documents []ValidatedDocument
}

type ConfigureRequest struct {
	Contact *types.ContactSchema
	License *types.LicenseSchema
}

type ConfigureResult struct {
	Profile types.Profile
}
