package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperview/internal/dataset"
	"paperview/internal/facet"
	"paperview/internal/filter"
)

func TestBuildControls(t *testing.T) {
	ds := &dataset.Dataset{Columns: []string{"Paper ID", "Year", "Moral"}, Records: twoPapers()}
	ds.Records = append(ds.Records, dataset.Record{"Paper ID": "P3", "Year": "2020", "Moral": "Care"})

	idx := facet.Build(ds, []facet.Filter{
		{Column: "Year", ID: "filter-year", AllLabel: "All Years"},
		{Column: "Moral", ID: "filter-moral"},
	})

	c := filter.Criteria{Search: "care"}
	c.Set("Year", "2021")
	ctl := BuildControls(idx, c)

	assert.Equal(t, SearchID, ctl.Search.ID)
	assert.Equal(t, "care", ctl.Search.Value)
	assert.Equal(t, ClearID, ctl.ClearID)
	require.Len(t, ctl.Selects, 2)

	year := ctl.Selects[0]
	assert.Equal(t, "filter-year", year.ID)
	assert.Equal(t, "Year", year.Label)
	assert.Equal(t, []Option{
		{Value: "", Label: "All Years"},
		{Value: "2020", Label: "2020"},
		{Value: "2021", Label: "2021", Selected: true},
	}, year.Options)
	assert.Equal(t, "2021", year.Selected())

	moral := ctl.Selects[1]
	assert.Equal(t, "Moral Values", moral.Label)
	assert.Equal(t, "All", moral.Options[0].Label)
	assert.True(t, moral.Options[0].Selected)
	assert.Equal(t, "", moral.Selected())
}

func TestBuildControls_NilIndex(t *testing.T) {
	ctl := BuildControls(nil, filter.Criteria{})
	assert.Empty(t, ctl.Selects)
	assert.Equal(t, SearchPlaceholder, ctl.Search.Placeholder)
}
