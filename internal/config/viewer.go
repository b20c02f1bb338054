package config

import (
	"fmt"
	"time"
)

// DefaultSearchDebounce is the idle delay applied to free-text search input.
const DefaultSearchDebounce = 300 * time.Millisecond

// ViewerConfig holds table and filter configuration.
type ViewerConfig struct {
	// Title shown above the table
	Title string `yaml:"title"`

	// Columns is the ordered column visibility set
	Columns []string `yaml:"columns"`

	// Filters lists the columns offered as selectors, in display order
	Filters []FilterConfig `yaml:"filters"`

	// DocumentsDir is the folder prefix for derived PDF links
	DocumentsDir string `yaml:"documents_dir"`

	// SearchDebounce is the idle delay before a search runs (e.g. "300ms")
	SearchDebounce string `yaml:"search_debounce"`
}

// FilterConfig describes one selector control.
type FilterConfig struct {
	Column   string `yaml:"column"`
	ID       string `yaml:"id"`
	AllLabel string `yaml:"all_label"`
}

// DefaultViewerConfig returns the literature review layout.
func DefaultViewerConfig() ViewerConfig {
	return ViewerConfig{
		Title: "Papers",
		Columns: []string{
			"Paper ID",
			"Paper Title",
			"Citation",
			"Year",
			"Publication Type",
			"Source",
			"Motivation",
			"Technology",
			"Domain",
			"Methods",
			"Target Groups",
			"Values",
			"Future Direction",
			"Download",
		},
		Filters: []FilterConfig{
			{Column: "Paper ID", ID: "filter-paper", AllLabel: "All Papers"},
			{Column: "Year", ID: "filter-year", AllLabel: "All Years"},
			{Column: "Publication Type", ID: "filter-pubtype", AllLabel: "All Publication Types"},
			{Column: "Source", ID: "filter-source", AllLabel: "All Sources"},
			{Column: "Motivation", ID: "filter-motivation", AllLabel: "All Motivations"},
			{Column: "Technology", ID: "filter-technology", AllLabel: "All Technologies"},
			{Column: "Domain", ID: "filter-domain", AllLabel: "All Domains"},
			{Column: "Methods", ID: "filter-methods", AllLabel: "All Methods"},
			{Column: "Target Groups", ID: "filter-targetgroups", AllLabel: "All Target Groups"},
			{Column: "Values", ID: "filter-values", AllLabel: "All Values"},
			{Column: "Future Direction", ID: "filter-futuredirection", AllLabel: "All Future Directions"},
		},
		DocumentsDir:   "papers",
		SearchDebounce: DefaultSearchDebounce.String(),
	}
}

// Validate checks the viewer layout.
func (v *ViewerConfig) Validate() error {
	if len(v.Columns) == 0 {
		return fmt.Errorf("viewer.columns must list at least one column")
	}
	seen := make(map[string]bool, len(v.Columns))
	for _, col := range v.Columns {
		if col == "" {
			return fmt.Errorf("viewer.columns contains an empty column name")
		}
		if seen[col] {
			return fmt.Errorf("viewer.columns lists %q twice", col)
		}
		seen[col] = true
	}

	ids := make(map[string]bool, len(v.Filters))
	for i, f := range v.Filters {
		if f.Column == "" {
			return fmt.Errorf("viewer.filters[%d]: column is required", i)
		}
		if f.ID != "" {
			if ids[f.ID] {
				return fmt.Errorf("viewer.filters[%d]: duplicate id %q", i, f.ID)
			}
			ids[f.ID] = true
		}
	}
	return nil
}
