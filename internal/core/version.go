package core

import (
	pep440 "github.com/aquasecurity/go-pep440-version"
)

// CurrentMetadataVersion is stamped on every document this build writes.
const CurrentMetadataVersion = "1.1.0"

// minimumCompatibleVersion is the oldest document version the merge
// engine knows how to migrate. 1.0.0 documents predate the
// driver_metadata and crs_units sections; those are adopted from fresh
// facts during a merge. Anything older than 1.0.0, newer than the
// current version, or unparseable is treated as incompatible and
// backed up rather than guessed at.
const minimumCompatibleVersion = "1.0.0"

// CompatibleVersion reports whether a document version marker belongs
// to the current schema or an enumerated prior version that can be
// migrated in place.
func CompatibleVersion(marker string) bool {
	version, err := pep440.Parse(marker)
	if err != nil {
		return false
	}
	minimum, err := pep440.Parse(minimumCompatibleVersion)
	if err != nil {
		return false
	}
	current, err := pep440.Parse(CurrentMetadataVersion)
	if err != nil {
		return false
	}
	return version.GreaterThanOrEqual(minimum) && version.LessThanOrEqual(current)
}
