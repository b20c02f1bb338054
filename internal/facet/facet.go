// Package facet derives the selectable values of filterable columns.
package facet

import (
	"sort"

	"paperview/internal/dataset"
)

// Filter describes one selector control: the column it constrains, the
// control id and the label of its "no constraint" option.
type Filter struct {
	Column   string
	ID       string
	AllLabel string
}

// Values returns the distinct non-empty values of column across ds,
// sorted by plain string order.
func Values(ds *dataset.Dataset, column string) []string {
	if ds == nil {
		return []string{}
	}
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, rec := range ds.Records {
		v := rec.Get(column)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Index holds the facet values of every filterable column. It is built
// once from the full dataset and never narrows as filters are applied.
type Index struct {
	filters []Filter
	values  map[string][]string
}

// Build computes the facet values for filters.
func Build(ds *dataset.Dataset, filters []Filter) *Index {
	idx := &Index{
		filters: append([]Filter(nil), filters...),
		values:  make(map[string][]string, len(filters)),
	}
	for _, f := range filters {
		if _, done := idx.values[f.Column]; done {
			continue
		}
		idx.values[f.Column] = Values(ds, f.Column)
	}
	return idx
}

// Filters returns the filter definitions in display order.
func (idx *Index) Filters() []Filter {
	return append([]Filter(nil), idx.filters...)
}

// Values returns the facet values of column, nil if column is not indexed.
func (idx *Index) Values(column string) []string {
	return idx.values[column]
}

// Indexed reports whether column is a filterable column.
func (idx *Index) Indexed(column string) bool {
	_, ok := idx.values[column]
	return ok
}

// Contains reports whether value is one of column's facet values.
func (idx *Index) Contains(column, value string) bool {
	vals := idx.values[column]
	i := sort.SearchStrings(vals, value)
	return i < len(vals) && vals[i] == value
}
