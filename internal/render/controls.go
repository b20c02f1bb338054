package render

import (
	"paperview/internal/facet"
	"paperview/internal/filter"
)

const (
	SearchID          = "search-all"
	SearchLabel       = "Search All"
	SearchPlaceholder = "Type to search..."
	ClearID           = "clear-filters"
	ClearLabel        = "Clear All Filters"
)

// Option is one entry of a selector. The first option of every Select has
// an empty Value and means "no constraint".
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Select is a selector control for one filterable column.
type Select struct {
	ID      string
	Column  string
	Label   string
	Options []Option
}

// Selected returns the value of the selected option.
func (s Select) Selected() string {
	for _, o := range s.Options {
		if o.Selected {
			return o.Value
		}
	}
	return ""
}

// SearchField is the free-text search input.
type SearchField struct {
	ID          string
	Label       string
	Placeholder string
	Value       string
}

// Controls is the filter panel: search field, selectors, clear action.
type Controls struct {
	Search     SearchField
	Selects    []Select
	ClearID    string
	ClearLabel string
}

// BuildControls builds the filter panel from the facet index. The options
// always list every facet value of the full dataset.
func BuildControls(idx *facet.Index, c filter.Criteria) Controls {
	ctl := Controls{
		Search: SearchField{
			ID:          SearchID,
			Label:       SearchLabel,
			Placeholder: SearchPlaceholder,
			Value:       c.Search,
		},
		ClearID:    ClearID,
		ClearLabel: ClearLabel,
	}
	if idx == nil {
		return ctl
	}

	for _, f := range idx.Filters() {
		current := c.Selection(f.Column)
		allLabel := f.AllLabel
		if allLabel == "" {
			allLabel = "All"
		}

		values := idx.Values(f.Column)
		sel := Select{
			ID:      f.ID,
			Column:  f.Column,
			Label:   DisplayName(f.Column),
			Options: make([]Option, 0, len(values)+1),
		}
		sel.Options = append(sel.Options, Option{Value: "", Label: allLabel, Selected: current == ""})
		for _, v := range values {
			sel.Options = append(sel.Options, Option{Value: v, Label: v, Selected: v == current})
		}
		ctl.Selects = append(ctl.Selects, sel)
	}
	return ctl
}
