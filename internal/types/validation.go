package types

import "fmt"

// ValidationError reports one schema violation in a document. Validation
// findings are returned as data, never raised.
type ValidationError struct {
	// Path locates the offending field, e.g. "data_model.fields[2].name".
	// Empty when the finding applies to the document as a whole.
	Path string

	Message string
}

func (e ValidationError) String() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}
