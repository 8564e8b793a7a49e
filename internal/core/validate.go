package core

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"geometa/internal/types"
)

// DocumentValidator checks documents against the current schema and
// reports findings as data. It never mutates its input and never fails:
// an unvalidatable document is simply one with findings.
type DocumentValidator struct {
	validate *validator.Validate
}

func NewDocumentValidator() DocumentValidator {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		tag := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return field.Name
		}
		return tag
	})
	return DocumentValidator{validate: validate}
}

var validResourceTypes = map[types.ResourceType]struct{}{
	types.ResourceTypeRaster:  {},
	types.ResourceTypeVector:  {},
	types.ResourceTypeTable:   {},
	types.ResourceTypeArchive: {},
}

// ValidateResource checks a resource document. Unrecognized extra YAML
// fields are not findings; only missing required fields and malformed
// known sections are.
func (v DocumentValidator) ValidateResource(doc types.ResourceDocument) []types.ValidationError {
	var errs []types.ValidationError
	if doc.Kind != types.DocumentKindResource {
		errs = append(errs, types.ValidationError{
			Path:    "kind",
			Message: fmt.Sprintf("must be %q, got %q", types.DocumentKindResource, doc.Kind),
		})
	}
	if doc.MetadataVersion == "" {
		errs = append(errs, types.ValidationError{
			Path:    "metadata_version",
			Message: "required field is missing",
		})
	} else if !CompatibleVersion(doc.MetadataVersion) {
		errs = append(errs, types.ValidationError{
			Path:    "metadata_version",
			Message: fmt.Sprintf("%q is not a recognized document version", doc.MetadataVersion),
		})
	}
	if doc.Type != "" {
		if _, ok := validResourceTypes[doc.Type]; !ok {
			errs = append(errs, types.ValidationError{
				Path:    "type",
				Message: fmt.Sprintf("%q is not one of (raster, vector, table, archive)", doc.Type),
			})
		}
	}
	errs = append(errs, v.structFindings(doc)...)
	errs = append(errs, descriptorFindings(doc.DataModel)...)
	return errs
}

// ValidateCollection checks a collection document.
func (v DocumentValidator) ValidateCollection(doc types.CollectionDocument) []types.ValidationError {
	var errs []types.ValidationError
	if doc.Kind != types.DocumentKindCollection {
		errs = append(errs, types.ValidationError{
			Path:    "kind",
			Message: fmt.Sprintf("must be %q, got %q", types.DocumentKindCollection, doc.Kind),
		})
	}
	if doc.MetadataVersion == "" {
		errs = append(errs, types.ValidationError{
			Path:    "metadata_version",
			Message: "required field is missing",
		})
	} else if !CompatibleVersion(doc.MetadataVersion) {
		errs = append(errs, types.ValidationError{
			Path:    "metadata_version",
			Message: fmt.Sprintf("%q is not a recognized document version", doc.MetadataVersion),
		})
	}
	errs = append(errs, v.structFindings(doc)...)
	return errs
}

// structFindings runs tag-based validation and converts the result to
// document-relative findings.
func (v DocumentValidator) structFindings(doc any) []types.ValidationError {
	err := v.validate.Struct(doc)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []types.ValidationError{{Message: err.Error()}}
	}
	var errs []types.ValidationError
	for _, fieldErr := range fieldErrs {
		path := fieldErr.Namespace()
		if dot := strings.Index(path, "."); dot != -1 {
			path = path[dot+1:]
		}
		errs = append(errs, types.ValidationError{
			Path:    path,
			Message: fmt.Sprintf("failed %q validation", fieldErr.Tag()),
		})
	}
	return errs
}

// descriptorFindings flags malformed field and band descriptor lists
// beyond what struct tags express: duplicate names and indexes.
func descriptorFindings(model *types.DataModel) []types.ValidationError {
	if model == nil {
		return nil
	}
	var errs []types.ValidationError
	names := map[string]struct{}{}
	for i, field := range model.Fields {
		if _, dup := names[field.Name]; dup {
			errs = append(errs, types.ValidationError{
				Path:    fmt.Sprintf("data_model.fields[%d].name", i),
				Message: fmt.Sprintf("duplicate field name %q", field.Name),
			})
		}
		names[field.Name] = struct{}{}
	}
	indexes := map[int]struct{}{}
	for i, band := range model.Bands {
		if _, dup := indexes[band.Index]; dup {
			errs = append(errs, types.ValidationError{
				Path:    fmt.Sprintf("data_model.bands[%d].index", i),
				Message: fmt.Sprintf("duplicate band index %d", band.Index),
			})
		}
		indexes[band.Index] = struct{}{}
	}
	return errs
}
