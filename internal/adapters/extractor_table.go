package adapters

import (
	"path/filepath"
	"strings"

	"github.com/frictionlessdata/tableschema-go/csv"
	"github.com/frictionlessdata/tableschema-go/schema"

	"geometa/internal/types"
)

// extractTable infers a frictionless-style table schema from a CSV or
// TSV source and counts its data rows.
func (a ExtractorAdapter) extractTable(facts *types.Facts) error {
	opts := []csv.CreationOpts{csv.LoadHeaders()}
	if strings.EqualFold(filepath.Ext(facts.Path), ".tsv") {
		opts = append(opts, csv.Delimiter('\t'))
	}
	table, err := csv.NewTable(csv.FromFile(facts.Path), opts...)
	if err != nil {
		return extractionError("failed to read table source", err)
	}
	inferred, err := schema.Infer(table)
	if err != nil {
		return extractionError("failed to infer table schema", err)
	}

	fields := make([]types.FieldSchema, 0, len(inferred.Fields))
	for _, field := range inferred.Fields {
		fields = append(fields, types.FieldSchema{
			Name: field.Name,
			Type: string(field.Type),
		})
	}

	iter, err := table.Iter()
	if err != nil {
		return extractionError("failed to iterate table source", err)
	}
	defer iter.Close()
	var rows int64
	for iter.Next() {
		rows++
	}
	if err := iter.Err(); err != nil {
		return extractionError("failed to iterate table source", err)
	}

	facts.Type = types.ResourceTypeTable
	facts.DataModel = &types.DataModel{Fields: fields}
	facts.Metadata = map[string]string{"rows": formatInt(rows)}
	return nil
}
