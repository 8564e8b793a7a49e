package core

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"geometa/internal/types"
)

// Merger reconciles freshly extracted facts with a possibly pre-existing
// document. It performs no I/O: deciding what to persist is separated
// from reading and writing sidecars.
type Merger struct{}

func NewMerger() Merger {
	return Merger{}
}

// NewResource builds a document from fresh facts alone, applying profile
// defaults to the contact and license sections. Used when no prior
// document exists, or when the prior document was incompatible.
func (m Merger) NewResource(ctx context.Context, fresh types.Facts, profile *types.Profile) types.ResourceDocument {
	assert.NotEmpty(ctx, fresh.Path, "facts path must be set")
	assert.NotEmpty(ctx, string(fresh.Type), "facts type must be set")

	doc := types.ResourceDocument{
		Kind:            types.DocumentKindResource,
		MetadataVersion: CurrentMetadataVersion,
	}
	applyDerived(&doc, fresh)
	if profile != nil {
		if doc.Contact.Empty() {
			doc.Contact = profile.Contact
		}
		if doc.License.Empty() {
			doc.License = profile.License
		}
	}
	return doc
}

// MergeResource layers fresh derived facts under the user-authored
// content of an existing document. Every derived field is replaced
// wholesale from fresh; every user-authored field is carried over from
// existing. Structural sections absent from the existing document's
// version are adopted from fresh as empty scaffolds.
//
// Descriptors are matched by field name for tables and vectors, and by
// band index for rasters. A matched descriptor keeps its user text; a
// descriptor gone from the source is dropped; a new descriptor gets
// empty placeholders.
func (m Merger) MergeResource(ctx context.Context, fresh types.Facts, existing *types.ResourceDocument, profile *types.Profile) types.ResourceDocument {
	if existing == nil {
		return m.NewResource(ctx, fresh, profile)
	}

	doc := *existing
	doc.Kind = types.DocumentKindResource
	doc.MetadataVersion = CurrentMetadataVersion
	applyDerived(&doc, fresh)
	if doc.DataModel != nil && existing.DataModel != nil {
		doc.DataModel.Fields = mergeFields(doc.DataModel.Fields, existing.DataModel.Fields)
		doc.DataModel.Bands = mergeBands(doc.DataModel.Bands, existing.DataModel.Bands)
	}
	log.Ctx(ctx).Debug().
		Str("path", fresh.Path).
		Str("from_version", existing.MetadataVersion).
		Msg("merged existing document")
	return doc
}

// MergeCollection recomputes the entry list from fresh while preserving
// collection-level user-authored fields from existing.
func (m Merger) MergeCollection(ctx context.Context, fresh types.CollectionDocument, existing *types.CollectionDocument, profile *types.Profile) types.CollectionDocument {
	doc := fresh
	doc.Kind = types.DocumentKindCollection
	doc.MetadataVersion = CurrentMetadataVersion
	if existing == nil {
		if profile != nil {
			if doc.Contact.Empty() {
				doc.Contact = profile.Contact
			}
			if doc.License.Empty() {
				doc.License = profile.License
			}
		}
		return doc
	}
	doc.Title = existing.Title
	doc.Description = existing.Description
	doc.Keywords = existing.Keywords
	doc.Contact = existing.Contact
	doc.License = existing.License
	log.Ctx(ctx).Debug().
		Str("path", fresh.Path).
		Int("items", len(doc.Items)).
		Msg("merged existing collection document")
	return doc
}

// applyDerived overwrites every derived field of doc from fresh. The
// fresh data model and spatial sections are copied so later descriptor
// merging cannot reach back into the caller's facts.
func applyDerived(doc *types.ResourceDocument, fresh types.Facts) {
	doc.Path = fresh.Path
	doc.Type = fresh.Type
	doc.Format = fresh.Format
	doc.Bytes = fresh.Bytes
	doc.LastModified = fresh.LastModified
	doc.UID = fresh.UID
	doc.Sources = append([]string(nil), fresh.Sources...)
	doc.Compression = fresh.Compression
	doc.NFeatures = fresh.NFeatures
	doc.DriverMetadata = fresh.Metadata
	if fresh.Spatial != nil {
		spatial := *fresh.Spatial
		doc.Spatial = &spatial
	} else {
		doc.Spatial = nil
	}
	if fresh.DataModel != nil {
		model := *fresh.DataModel
		model.Fields = append([]types.FieldSchema(nil), fresh.DataModel.Fields...)
		model.Bands = append([]types.BandSchema(nil), fresh.DataModel.Bands...)
		doc.DataModel = &model
	} else {
		doc.DataModel = nil
	}
}

func mergeFields(fresh []types.FieldSchema, existing []types.FieldSchema) []types.FieldSchema {
	byName := make(map[string]types.FieldSchema, len(existing))
	for _, field := range existing {
		byName[field.Name] = field
	}
	for i := range fresh {
		prior, ok := byName[fresh[i].Name]
		if !ok {
			continue
		}
		fresh[i].Title = prior.Title
		fresh[i].Description = prior.Description
		fresh[i].Units = prior.Units
	}
	return fresh
}

func mergeBands(fresh []types.BandSchema, existing []types.BandSchema) []types.BandSchema {
	byIndex := make(map[int]types.BandSchema, len(existing))
	for _, band := range existing {
		byIndex[band.Index] = band
	}
	for i := range fresh {
		prior, ok := byIndex[fresh[i].Index]
		if !ok {
			continue
		}
		fresh[i].Title = prior.Title
		fresh[i].Description = prior.Description
		fresh[i].Units = prior.Units
	}
	return fresh
}
