// Package filter computes the filtered view of a dataset.
//
// A record passes when the free-text search term occurs (case-insensitively)
// in its joined field values and every active column selection matches
// exactly. Evaluation is stateless and always scans the whole dataset.
package filter

import (
	"strings"
	"time"

	"paperview/internal/dataset"
	"paperview/internal/logging"
)

// Criteria is the set of active constraints. An empty Search and empty
// or absent selections impose nothing.
type Criteria struct {
	Search     string
	Selections map[string]string
}

// Set records value as the selection for column; "" removes it.
func (c *Criteria) Set(column, value string) {
	if value == "" {
		delete(c.Selections, column)
		return
	}
	if c.Selections == nil {
		c.Selections = make(map[string]string)
	}
	c.Selections[column] = value
}

// Selection returns the active selection for column, "" if none.
func (c Criteria) Selection(column string) string {
	return c.Selections[column]
}

// IsZero reports whether the criteria constrain nothing.
func (c Criteria) IsZero() bool {
	if c.Search != "" {
		return false
	}
	for _, v := range c.Selections {
		if v != "" {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (c Criteria) Clone() Criteria {
	out := Criteria{Search: c.Search}
	if len(c.Selections) > 0 {
		out.Selections = make(map[string]string, len(c.Selections))
		for k, v := range c.Selections {
			out.Selections[k] = v
		}
	}
	return out
}

// Matcher evaluates one Criteria against records of a dataset. Building
// it once per Apply keeps the lower-cased term out of the row loop.
type Matcher struct {
	columns    []string
	term       string
	selections map[string]string
}

// NewMatcher prepares criteria for the given header column order.
func NewMatcher(columns []string, c Criteria) *Matcher {
	m := &Matcher{
		columns: columns,
		term:    strings.ToLower(c.Search),
	}
	for col, v := range c.Selections {
		if v == "" {
			continue
		}
		if m.selections == nil {
			m.selections = make(map[string]string)
		}
		m.selections[col] = v
	}
	return m
}

// SearchText returns the lower-cased space-joined field values of rec in
// header order. Missing values join as empty strings.
func SearchText(columns []string, rec dataset.Record) string {
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = rec.Get(col)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Match reports whether rec passes the search and every selection.
func (m *Matcher) Match(rec dataset.Record) bool {
	if m.term != "" && !strings.Contains(SearchText(m.columns, rec), m.term) {
		return false
	}
	for col, want := range m.selections {
		if rec.Get(col) != want {
			return false
		}
	}
	return true
}

// Apply returns the records of ds that satisfy c, in dataset order.
func Apply(ds *dataset.Dataset, c Criteria) []dataset.Record {
	if ds == nil || len(ds.Records) == 0 {
		return []dataset.Record{}
	}
	started := time.Now()
	m := NewMatcher(ds.Columns, c)
	out := make([]dataset.Record, 0, len(ds.Records))
	for _, rec := range ds.Records {
		if m.Match(rec) {
			out = append(out, rec)
		}
	}
	if logging.IsCategoryEnabled(logging.CategoryFilter) {
		logging.Get(logging.CategoryFilter).Debug("matched %d of %d records (search %q, %d selections) in %s",
			len(out), len(ds.Records), c.Search, len(m.selections), time.Since(started))
	}
	return out
}
