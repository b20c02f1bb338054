package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"paperview/internal/logging"
	"paperview/internal/render"
	"paperview/internal/viewer"
)

const (
	minColumnWidth = 4
	maxColumnWidth = 30
	// chromeHeight is the space taken by everything but the table body.
	chromeHeight = 9
)

// searchTickMsg fires when the debounce delay of search request seq ends.
type searchTickMsg struct {
	seq uint64
}

type selector struct {
	sel   render.Select
	index int
}

func (s selector) value() string {
	if s.index < 0 || s.index >= len(s.sel.Options) {
		return ""
	}
	return s.sel.Options[s.index].Value
}

func (s selector) label() string {
	if s.index < 0 || s.index >= len(s.sel.Options) {
		return ""
	}
	return s.sel.Options[s.index].Label
}

// Model is the bubbletea model driving a viewer.Controller. Focus moves
// between the search field (0), the selectors (1..n) and the table (n+1).
type Model struct {
	ctrl   *viewer.Controller
	title  string
	styles Styles
	keys   keyMap
	help   help.Model

	search    textinput.Model
	selectors []selector
	focus     int

	table   table.Model
	natural []int
	count   string
	empty   bool

	detail   bool
	viewport viewport.Model
	renderer *glamour.TermRenderer

	width  int
	height int

	log *logging.Logger
}

// New builds the model from the controller's initial snapshot.
func New(ctrl *viewer.Controller, styles Styles) Model {
	snap := ctrl.Snapshot()

	ti := textinput.New()
	ti.Placeholder = snap.Controls.Search.Placeholder
	ti.Prompt = snap.Controls.Search.Label + ": "
	ti.CharLimit = 200
	ti.Width = 40
	ti.SetValue(snap.Controls.Search.Value)
	ti.Focus()

	selectors := make([]selector, len(snap.Controls.Selects))
	for i, sel := range snap.Controls.Selects {
		selectors[i] = selector{sel: sel}
		for j, opt := range sel.Options {
			if opt.Selected {
				selectors[i].index = j
			}
		}
	}

	natural := naturalWidths(snap.Table)
	t := table.New(
		table.WithColumns(columnsFor(snap.Table, natural)),
		table.WithHeight(15),
		table.WithStyles(styles.TableStyles()),
	)

	m := Model{
		ctrl:      ctrl,
		title:     snap.Title,
		styles:    styles,
		keys:      defaultKeyMap(),
		help:      help.New(),
		search:    ti,
		selectors: selectors,
		table:     t,
		natural:   natural,
		count:     snap.Table.Count,
		log:       logging.Get(logging.CategoryTUI),
	}
	m.applyTable(snap.Table)
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case searchTickMsg:
		if up, ok := m.ctrl.CommitSearch(msg.seq); ok {
			m.apply(up)
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.detail {
			return m.updateDetail(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Clear):
			m.clearAll()
			return m, nil
		case key.Matches(msg, m.keys.NextFocus):
			return m, m.setFocus(m.focus + 1)
		case key.Matches(msg, m.keys.PrevFocus):
			return m, m.setFocus(m.focus - 1)
		}

		switch {
		case m.focus == 0:
			return m.updateSearch(msg)
		case m.focus <= len(m.selectors):
			return m.updateSelector(msg)
		default:
			return m.updateTable(msg)
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.search.Value()

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	term := m.search.Value()
	if term == before {
		return m, cmd
	}

	seq := m.ctrl.QueueSearch(term)
	tick := tea.Tick(m.ctrl.Debounce(), func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq}
	})
	return m, tea.Batch(cmd, tick)
}

func (m Model) updateSelector(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.selectors[m.focus-1]
	next := s.index

	switch {
	case key.Matches(msg, m.keys.PrevValue):
		next--
	case key.Matches(msg, m.keys.NextValue):
		next++
	default:
		return m, nil
	}

	if next < 0 || next >= len(s.sel.Options) || next == s.index {
		return m, nil
	}
	s.index = next
	m.apply(m.ctrl.Select(s.sel.Column, s.value()))
	return m, nil
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Open):
		m.openDetail()
		return m, nil
	case msg.String() == "q":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Close) || key.Matches(msg, m.keys.Open) || msg.String() == "q" {
		m.detail = false
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	n := len(m.selectors) + 2
	m.focus = ((i % n) + n) % n

	var cmd tea.Cmd
	if m.focus == 0 {
		cmd = m.search.Focus()
	} else {
		m.search.Blur()
	}
	if m.focus == n-1 {
		m.table.Focus()
	} else {
		m.table.Blur()
	}
	return cmd
}

// clearAll resets every control and restores the full dataset.
func (m *Model) clearAll() {
	up := m.ctrl.ClearAll()
	m.search.SetValue("")
	for i := range m.selectors {
		m.selectors[i].index = 0
	}
	m.apply(up)
}

func (m *Model) apply(up viewer.Update) {
	m.count = up.Count
	m.applyTable(up.Table)
}

func (m *Model) applyTable(tbl render.Table) {
	m.empty = tbl.Placeholder != nil
	m.table.SetRows(rowsFor(tbl))
	m.table.SetCursor(0)
}

func (m *Model) openDetail() {
	if m.empty {
		return
	}
	view := m.ctrl.State().View
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(view) {
		return
	}

	opts := m.ctrl.Options()
	md := render.Markdown(view[cursor], opts.Columns, opts.DocumentsDir)
	content := md
	if r := m.markdownRenderer(); r != nil {
		out, err := r.Render(md)
		if err != nil {
			m.log.Warn("markdown render failed: %v", err)
		} else {
			content = out
		}
	}

	w, h := m.width-4, m.height-4
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 20
	}
	m.viewport = viewport.New(w, h)
	m.viewport.SetContent(content)
	m.detail = true
}

func (m *Model) markdownRenderer() *glamour.TermRenderer {
	if m.renderer != nil {
		return m.renderer
	}
	wrap := 80
	if m.width > 8 {
		wrap = m.width - 8
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		// Fall back to a fixed style
		r, err = glamour.NewTermRenderer(
			glamour.WithStylePath("light"),
			glamour.WithWordWrap(wrap),
		)
	}
	if err != nil {
		m.log.Warn("markdown renderer unavailable: %v", err)
		return nil
	}
	m.renderer = r
	return r
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.renderer = nil

	m.table.SetColumns(fitColumns(m.table.Columns(), m.natural, width))
	m.table.SetWidth(width)

	bodyHeight := height - chromeHeight - m.selectorLines()
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	m.table.SetHeight(bodyHeight)

	if m.detail {
		m.viewport.Width = width - 4
		m.viewport.Height = height - 4
	}
}

// View renders the page.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render(m.title))
	sb.WriteString(" ")
	sb.WriteString(m.styles.Count.Render(m.count))
	sb.WriteString("\n")
	if m.ctrl.State().Total() == 0 {
		sb.WriteString(m.styles.Error.Render(NoDataText))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if m.detail {
		sb.WriteString(m.styles.Detail.Render(m.viewport.View()))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Muted.Render("esc back • ↑/↓ scroll"))
		return sb.String()
	}

	sb.WriteString(m.search.View())
	sb.WriteString("\n")
	sb.WriteString(m.selectorsView())
	sb.WriteString("\n\n")
	sb.WriteString(m.table.View())
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m Model) selectorsView() string {
	parts := make([]string, len(m.selectors))
	for i, s := range m.selectors {
		labelStyle := m.styles.Label
		valueStyle := m.styles.Selector
		if s.index > 0 {
			valueStyle = m.styles.Active
		}
		if m.focus == i+1 {
			labelStyle = m.styles.Focused
			valueStyle = m.styles.Focused
		}
		parts[i] = labelStyle.Render(s.sel.Label+":") + " " + valueStyle.Render("‹"+s.label()+"›")
	}
	line := strings.Join(parts, "  ")
	if m.width > 0 {
		return lipgloss.NewStyle().Width(m.width).Render(line)
	}
	return line
}

func (m Model) selectorLines() int {
	return lipgloss.Height(m.selectorsView())
}

// Count returns the current count label.
func (m Model) Count() string { return m.count }

// Rows returns the rows shown by the table widget.
func (m Model) Rows() []table.Row { return m.table.Rows() }

// SearchValue returns the search field contents.
func (m Model) SearchValue() string { return m.search.Value() }

// Selection returns the selected value of column's selector.
func (m Model) Selection(column string) string {
	for _, s := range m.selectors {
		if s.sel.Column == column {
			return s.value()
		}
	}
	return ""
}

// Focus returns the focused control index.
func (m Model) Focus() int { return m.focus }

// InDetail reports whether the record detail pane is open.
func (m Model) InDetail() bool { return m.detail }

func rowsFor(tbl render.Table) []table.Row {
	if tbl.Placeholder != nil {
		row := make(table.Row, len(tbl.Columns))
		if len(row) > 0 {
			row[0] = tbl.Placeholder.Text
		}
		return []table.Row{row}
	}
	rows := make([]table.Row, len(tbl.Rows))
	for i, r := range tbl.Rows {
		row := make(table.Row, len(r.Cells))
		for j, c := range r.Cells {
			row[j] = cellText(c)
		}
		rows[i] = row
	}
	return rows
}

func naturalWidths(tbl render.Table) []int {
	widths := make([]int, len(tbl.Columns))
	for i, h := range tbl.Columns {
		widths[i] = lipgloss.Width(h.Label)
	}
	for _, r := range tbl.Rows {
		for i, c := range r.Cells {
			if i >= len(widths) {
				break
			}
			if w := lipgloss.Width(cellText(c)); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		widths[i] = clamp(widths[i], minColumnWidth, maxColumnWidth)
	}
	return widths
}

func columnsFor(tbl render.Table, widths []int) []table.Column {
	cols := make([]table.Column, len(tbl.Columns))
	for i, h := range tbl.Columns {
		cols[i] = table.Column{Title: h.Label, Width: widths[i]}
	}
	return cols
}

// fitColumns shrinks the natural widths proportionally when they exceed
// the terminal width.
func fitColumns(cols []table.Column, natural []int, width int) []table.Column {
	out := make([]table.Column, len(cols))
	copy(out, cols)

	sum := 0
	for _, w := range natural {
		sum += w + 2 // cell padding
	}
	for i := range out {
		if i >= len(natural) {
			break
		}
		w := natural[i]
		if width > 0 && sum > width {
			w = natural[i] * width / sum
		}
		out[i].Width = clamp(w, minColumnWidth, maxColumnWidth)
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Run starts the interactive viewer and blocks until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, ctrl *viewer.Controller, styles Styles) error {
	p := tea.NewProgram(New(ctrl, styles), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
