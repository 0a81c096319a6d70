package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/nlquery/internal/core/domain"
)

// overflowNote is appended to the description of a facet field whose
// values were truncated.
const overflowNote = "There are more enum values for this field"

// enumSeparator joins facet values inside the Enum Values cell.
const enumSeparator = "; "

// fieldPartition splits collection fields for the schema description.
// Every input field lands in exactly one of the three slices.
type fieldPartition struct {
	// plain fields are rendered immediately.
	plain []domain.FieldDescriptor

	// facetable fields wait for their facet values.
	facetable []domain.FieldDescriptor

	// skipped fields are not indexed and are never shown to the model.
	skipped []domain.FieldDescriptor
}

// partitionFields attaches metadata descriptions and partitions fields
// on HasFacet alone, preserving declaration order.
func partitionFields(schema *domain.CollectionSchema) fieldPartition {
	var p fieldPartition
	if schema == nil {
		return p
	}
	for _, f := range schema.Fields {
		if f.Description == "" {
			f.Description = schema.Metadata[f.Name]
		}
		switch {
		case !f.Describable():
			p.skipped = append(p.skipped, f)
		case f.HasFacet:
			p.facetable = append(p.facetable, f)
		default:
			p.plain = append(p.plain, f)
		}
	}
	return p
}

// plainRows renders the plain fields.
func (p fieldPartition) plainRows() []string {
	rows := make([]string, 0, len(p.plain))
	for _, f := range p.plain {
		rows = append(rows, renderPlainRow(f))
	}
	return rows
}

// renderPlainRow formats a field without enumerated values.
func renderPlainRow(f domain.FieldDescriptor) string {
	return renderRow(f, "", f.Description)
}

// renderFacetRow formats a facetable field with its resolved values.
// An overflowing field keeps its capped list and gains overflowNote in
// the description cell.
func renderFacetRow(f domain.FieldDescriptor, summary domain.FacetSummary) string {
	desc := f.Description
	if summary.Overflow {
		desc = strings.TrimSpace(desc + " " + overflowNote)
	}
	return renderRow(f, strings.Join(summary.Values, enumSeparator), desc)
}

// renderRow always renders Filter as Yes: only filterable fields reach it.
func renderRow(f domain.FieldDescriptor, enums, description string) string {
	return fmt.Sprintf("|%s|%s|Yes|%s|%s|%s|",
		escapeCell(f.Name),
		escapeCell(f.DataType),
		yesNo(f.IsSortable),
		escapeCell(enums),
		escapeCell(description),
	)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// escapeCell keeps a value inside its table cell.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
