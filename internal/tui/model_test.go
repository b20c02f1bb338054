package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperview/internal/dataset"
	"paperview/internal/facet"
	"paperview/internal/render"
	"paperview/internal/viewer"
)

func testController() *viewer.Controller {
	ds := &dataset.Dataset{
		Columns: []string{"Paper ID", "Paper Title", "Year", "Source"},
		Records: []dataset.Record{
			{"Paper ID": "P1", "Paper Title": "Care robots", "Year": "2020", "Source": "ACM"},
			{"Paper ID": "P2", "Paper Title": "Smart homes", "Year": "2021", "Source": "IEEE"},
			{"Paper ID": "P3", "Paper Title": "Voice agents", "Year": "2021", "Source": "ACM"},
		},
	}
	return viewer.New(ds, viewer.Options{
		Title:   "Papers",
		Columns: []string{"Paper ID", "Paper Title", "Year", "Source", "Download"},
		Filters: []facet.Filter{
			{Column: "Year", ID: "filter-year", AllLabel: "All Years"},
			{Column: "Source", ID: "filter-source", AllLabel: "All Sources"},
		},
		DocumentsDir: "papers",
	})
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func firstColumn(m Model) []string {
	var out []string
	for _, r := range m.Rows() {
		out = append(out, r[0])
	}
	return out
}

func TestNew_ShowsEverything(t *testing.T) {
	m := New(testController(), DefaultStyles())

	assert.Equal(t, "(3 of 3 papers)", m.Count())
	assert.Equal(t, []string{"P1", "P2", "P3"}, firstColumn(m))
	assert.Equal(t, 0, m.Focus())
	assert.Equal(t, "", m.Selection("Year"))
	assert.Contains(t, m.View(), "Papers")
}

func TestView_ReportsEmptySource(t *testing.T) {
	ctrl := viewer.New(dataset.Empty(), viewer.Options{Title: "Papers", Columns: []string{"Paper ID"}})
	m := New(ctrl, DefaultStyles())

	view := m.View()
	assert.Contains(t, view, "(0 of 0 papers)")
	assert.Contains(t, view, NoDataText)

	m = New(testController(), DefaultStyles())
	assert.NotContains(t, m.View(), NoDataText)
}

func TestSearch_StaleTickIgnored(t *testing.T) {
	m := New(testController(), DefaultStyles())

	m, cmd := send(t, m, runes("a"))
	require.NotNil(t, cmd)
	m, _ = send(t, m, runes("c"))
	assert.Equal(t, "ac", m.SearchValue())

	// The tick for "a" arrives after "ac" was queued.
	m, _ = send(t, m, searchTickMsg{seq: 1})
	assert.Equal(t, "(3 of 3 papers)", m.Count())

	m, _ = send(t, m, searchTickMsg{seq: 2})
	assert.Equal(t, "(2 of 3 papers)", m.Count())
	assert.Equal(t, []string{"P1", "P3"}, firstColumn(m))
}

func TestSelector_CyclesValues(t *testing.T) {
	m := New(testController(), DefaultStyles())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.Focus())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "2020", m.Selection("Year"))
	assert.Equal(t, "(1 of 3 papers)", m.Count())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "2021", m.Selection("Year"))
	assert.Equal(t, []string{"P2", "P3"}, firstColumn(m))

	// Already at the last value.
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "2021", m.Selection("Year"))

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "", m.Selection("Year"))
	assert.Equal(t, "(3 of 3 papers)", m.Count())
}

func TestSelector_NoMatchShowsPlaceholder(t *testing.T) {
	m := New(testController(), DefaultStyles())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight}) // Year 2020
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight}) // Source ACM
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight}) // Source IEEE

	assert.Equal(t, "(0 of 3 papers)", m.Count())
	require.Len(t, m.Rows(), 1)
	assert.Equal(t, render.NoResultsText, m.Rows()[0][0])

	// Nothing to open on the placeholder row.
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.InDetail())
}

func TestClearAll_ResetsControls(t *testing.T) {
	m := New(testController(), DefaultStyles())

	m, _ = send(t, m, runes("smart"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	// The selection also applies the search typed so far.
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, "(0 of 3 papers)", m.Count())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, "", m.SearchValue())
	assert.Equal(t, "", m.Selection("Year"))
	assert.Equal(t, "(3 of 3 papers)", m.Count())

	// The pending search was dropped by the clear.
	m, _ = send(t, m, searchTickMsg{seq: 1})
	assert.Equal(t, "(3 of 3 papers)", m.Count())
}

func TestFocus_Wraps(t *testing.T) {
	m := New(testController(), DefaultStyles())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 3, m.Focus())
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.Focus())
}

func TestDetail_OpenAndClose(t *testing.T) {
	m := New(testController(), DefaultStyles())
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.InDetail())
	assert.Contains(t, m.View(), "Care robots")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.InDetail())
}

func TestQuit(t *testing.T) {
	m := New(testController(), DefaultStyles())

	// "q" types into the search field.
	m, _ = send(t, m, runes("q"))
	assert.Equal(t, "q", m.SearchValue())

	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestFitColumns(t *testing.T) {
	m := New(testController(), DefaultStyles())
	cols := fitColumns(m.table.Columns(), []int{30, 30, 30, 30, 30}, 60)
	for _, c := range cols {
		assert.GreaterOrEqual(t, c.Width, minColumnWidth)
		assert.LessOrEqual(t, c.Width, 12)
	}
}
