package viewer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperview/internal/config"
	"paperview/internal/dataset"
	"paperview/internal/facet"
	"paperview/internal/render"
)

func twoPapers() *dataset.Dataset {
	return &dataset.Dataset{
		Columns: []string{"Paper ID", "Year", "Source"},
		Records: []dataset.Record{
			{"Paper ID": "P1", "Year": "2020", "Source": "ACM"},
			{"Paper ID": "P2", "Year": "2021", "Source": "IEEE"},
		},
	}
}

func testOptions() Options {
	return Options{
		Title:   "Papers",
		Columns: []string{"Paper ID", "Year", "Source", "Download"},
		Filters: []facet.Filter{
			{Column: "Year", ID: "filter-year", AllLabel: "All Years"},
			{Column: "Source", ID: "filter-source", AllLabel: "All Sources"},
		},
		DocumentsDir: "papers",
	}
}

func viewIDs(c *Controller) []string {
	out := []string{}
	for _, r := range c.State().View {
		out = append(out, r.Get("Paper ID"))
	}
	return out
}

func TestNew_StartsUnfiltered(t *testing.T) {
	c := New(twoPapers(), testOptions())

	assert.Equal(t, []string{"P1", "P2"}, viewIDs(c))
	assert.Equal(t, config.DefaultSearchDebounce, c.Debounce())

	snap := c.Snapshot()
	assert.Equal(t, "Papers", snap.Title)
	assert.Equal(t, "(2 of 2 papers)", snap.Table.Count)
	require.Len(t, snap.Controls.Selects, 2)
	assert.Len(t, snap.Controls.Selects[0].Options, 3)
}

func TestSelect_Year(t *testing.T) {
	c := New(twoPapers(), testOptions())

	up := c.Select("Year", "2020")
	assert.Equal(t, "(1 of 2 papers)", up.Count)
	assert.Equal(t, []string{"P1"}, viewIDs(c))
	require.Len(t, up.Table.Rows, 1)
	assert.Equal(t, "P1", up.Table.Rows[0].Cells[0].Text)
}

func TestSelect_ConjunctionWithoutMatch(t *testing.T) {
	c := New(twoPapers(), testOptions())

	c.Select("Year", "2020")
	up := c.Select("Source", "IEEE")

	assert.Empty(t, viewIDs(c))
	assert.Empty(t, up.Table.Rows)
	require.NotNil(t, up.Table.Placeholder)
	assert.Equal(t, 4, up.Table.Placeholder.Span)
	assert.Equal(t, "(0 of 2 papers)", up.Count)
}

func TestSelect_FacetsNeverNarrow(t *testing.T) {
	c := New(twoPapers(), testOptions())
	c.Select("Year", "2020")

	ctl := c.Snapshot().Controls
	assert.Len(t, ctl.Selects[1].Options, 3, "Source selector still offers every source")
	assert.Equal(t, "2020", ctl.Selects[0].Selected())
}

func TestSearch_Debounced_LatestWins(t *testing.T) {
	c := New(twoPapers(), testOptions())

	first := c.QueueSearch("acm")
	second := c.QueueSearch("ieee")

	_, ok := c.CommitSearch(first)
	assert.False(t, ok, "superseded request must be dropped")
	assert.Equal(t, []string{"P1", "P2"}, viewIDs(c), "nothing filtered before commit")

	up, ok := c.CommitSearch(second)
	require.True(t, ok)
	assert.Equal(t, "(1 of 2 papers)", up.Count)
	assert.Equal(t, []string{"P2"}, viewIDs(c))

	_, ok = c.CommitSearch(second)
	assert.False(t, ok, "a request commits once")
}

func TestSelect_AppliesPendingSearch(t *testing.T) {
	c := New(twoPapers(), testOptions())

	seq := c.QueueSearch("ieee")
	up := c.Select("Year", "2021")

	assert.Equal(t, "(1 of 2 papers)", up.Count)
	assert.Equal(t, []string{"P2"}, viewIDs(c))
	assert.Equal(t, "ieee", c.Criteria().Search)

	_, applied := c.CommitSearch(seq)
	assert.False(t, applied)

	up = c.Select("Year", "2020")
	assert.Equal(t, "(0 of 2 papers)", up.Count)
}

func TestSearch_Immediate(t *testing.T) {
	c := New(twoPapers(), testOptions())

	seq := c.QueueSearch("acm")
	c.Search("IEEE")
	_, ok := c.CommitSearch(seq)
	assert.False(t, ok)
	assert.Equal(t, []string{"P2"}, viewIDs(c))
	assert.Equal(t, "IEEE", c.Criteria().Search)
}

func TestClearAll_RestoresDataset(t *testing.T) {
	ds := twoPapers()
	c := New(ds, testOptions())

	c.Select("Year", "2021")
	c.Search("zzz")
	pending := c.QueueSearch("acm")

	up := c.ClearAll()
	assert.Equal(t, ds.Records, c.State().View)
	assert.Equal(t, "(2 of 2 papers)", up.Count)
	assert.True(t, c.Criteria().IsZero())

	_, ok := c.CommitSearch(pending)
	assert.False(t, ok, "clear discards a queued search")

	for _, sel := range c.Snapshot().Controls.Selects {
		assert.Equal(t, "", sel.Selected())
	}
	assert.Equal(t, "", c.Snapshot().Controls.Search.Value)
}

func TestEmptyDataset(t *testing.T) {
	c := New(dataset.Empty(), testOptions())

	snap := c.Snapshot()
	assert.Equal(t, "(0 of 0 papers)", snap.Table.Count)
	require.NotNil(t, snap.Table.Placeholder)
	assert.Empty(t, snap.Table.Rows)

	up := c.Select("Year", "2020")
	assert.Equal(t, "(0 of 0 papers)", up.Count)

	c2 := New(nil, testOptions())
	assert.Equal(t, 0, c2.State().Total())
}

func TestCriteria_ReturnsCopy(t *testing.T) {
	c := New(twoPapers(), testOptions())
	c.Select("Year", "2020")

	crit := c.Criteria()
	crit.Set("Year", "2021")
	assert.Equal(t, "2020", c.Criteria().Selection("Year"))
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Viewer.SearchDebounce = "150ms"

	opts := OptionsFromConfig(cfg)
	assert.Equal(t, "Papers", opts.Title)
	assert.Equal(t, cfg.Viewer.Columns, opts.Columns)
	require.Len(t, opts.Filters, len(cfg.Viewer.Filters))
	assert.Equal(t, facet.Filter{Column: "Paper ID", ID: "filter-paper", AllLabel: "All Papers"}, opts.Filters[0])
	assert.Equal(t, "papers", opts.DocumentsDir)
	assert.Equal(t, 150*time.Millisecond, opts.SearchDebounce)
}

func TestSnapshot_Page(t *testing.T) {
	c := New(twoPapers(), testOptions())
	page := c.Snapshot().Page()
	assert.Equal(t, "Papers", page.Title)
	assert.Equal(t, render.SearchID, page.Controls.Search.ID)
	assert.Len(t, page.Table.Rows, 2)
}
