package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"paperview/internal/render"
)

// maxCellWidth truncates long cells in the static text table.
const maxCellWidth = 40

// NoDataText is shown when the source produced no records at all.
const NoDataText = "No papers loaded. Check the source location and the log."

// cellText is what a terminal shows for a cell: document links as their
// path, markup stripped from everything else.
func cellText(c render.Cell) string {
	if c.Link != nil {
		return c.Link.Href
	}
	return render.PlainText(c.Text)
}

func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

// RenderText draws the table model as a bordered, striped text table.
// width <= 0 leaves the width to the content.
func RenderText(title string, tbl render.Table, styles Styles, width int) string {
	headers := make([]string, len(tbl.Columns))
	for i, h := range tbl.Columns {
		headers[i] = h.Label
	}

	var rows [][]string
	classes := make([]string, 0, len(tbl.Rows))
	if tbl.Placeholder != nil {
		row := make([]string, len(headers))
		if len(row) > 0 {
			row[0] = tbl.Placeholder.Text
		}
		rows = append(rows, row)
		classes = append(classes, render.NoResultsClass)
	}
	for _, r := range tbl.Rows {
		row := make([]string, len(r.Cells))
		for i, c := range r.Cells {
			row[i] = truncate(cellText(c), maxCellWidth)
		}
		rows = append(rows, row)
		classes = append(classes, r.Class)
	}

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return styles.Header
			}
			if row < 0 || row >= len(classes) {
				return styles.RowEven
			}
			switch classes[row] {
			case render.RowOddClass:
				return styles.RowOdd
			case render.NoResultsClass:
				return styles.Placeholder.Padding(0, 1)
			default:
				return styles.RowEven
			}
		})
	if width > 0 {
		t = t.Width(width)
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(title) + " " + styles.Count.Render(tbl.Count) + "\n")
	if tbl.Total == 0 {
		sb.WriteString(styles.Error.Render(NoDataText) + "\n")
	}
	sb.WriteString(t.String())
	sb.WriteString("\n")
	return sb.String()
}
