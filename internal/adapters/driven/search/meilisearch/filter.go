package meilisearch

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/tssearch/internal/core/domain"
)

// renderFilter converts compiled clauses to Meilisearch filter expressions.
// The engine ANDs the elements of the returned slice. Nil means no filter.
func renderFilter(clauses []domain.Clause) []string {
	var out []string
	for _, c := range clauses {
		switch c := c.(type) {
		case domain.IDIn:
			out = append(out, inList(domain.AttrVideoID, c.IDs))
		case domain.TagIn:
			out = append(out, inList(domain.AttrVideoTags, c.Tags))
		case domain.DateExact:
			out = append(out, fmt.Sprintf("%s >= %d AND %s < %d",
				domain.AttrPublishedOrLiveAt, c.Start, domain.AttrPublishedOrLiveAt, c.End))
		case domain.DateRange:
			if c.From != nil {
				out = append(out, fmt.Sprintf("%s >= %d", domain.AttrPublishedOrLiveAt, *c.From))
			}
			if c.Before != nil {
				out = append(out, fmt.Sprintf("%s < %d", domain.AttrPublishedOrLiveAt, *c.Before))
			}
		}
	}
	return out
}

func inList(attr string, values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quote(v)
	}
	return fmt.Sprintf("%s IN [%s]", attr, strings.Join(quoted, ", "))
}

var filterEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// quote wraps v in double quotes for a filter expression. Only backslash
// and double quote are escaped; other bytes are taken literally.
func quote(v string) string {
	return `"` + filterEscaper.Replace(v) + `"`
}

// renderSort converts sort fields to "attr:asc" / "attr:desc".
func renderSort(fields []domain.SortField) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		dir := "asc"
		if f.Descending {
			dir = "desc"
		}
		out[i] = f.Attribute + ":" + dir
	}
	return out
}
