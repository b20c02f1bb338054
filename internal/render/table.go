// Package render turns a filtered view into a table model.
//
// The model (Table, Row, Cell) carries no markup; adapters such as the
// HTML writer in this package or the terminal UI materialize it.
package render

import (
	"fmt"
	"strings"

	"paperview/internal/dataset"
)

const (
	// NoResultsText fills the placeholder row of an empty view.
	NoResultsText = "No papers found matching filters..."
	// MissingLink stands in for a download link without a Paper ID.
	MissingLink = "—"
	// DownloadText is the anchor text of a document link.
	DownloadText = "PDF"

	RowEvenClass   = "row-even"
	RowOddClass    = "row-odd"
	NoResultsClass = "no-results"
)

// displayNames maps column keys to header labels. Columns not listed use
// their key.
var displayNames = map[string]string{
	"Moral":      "Moral Values",
	"Individual": "Individual Values",
	"Social":     "Social Values",
}

// tooltipColumns carry their raw value as a hover title.
var tooltipColumns = map[string]bool{
	dataset.ColumnCitation: true,
	dataset.ColumnSource:   true,
}

// DisplayName returns the header label for column.
func DisplayName(column string) string {
	if name, ok := displayNames[column]; ok {
		return name
	}
	return column
}

// HeaderCell is one column header.
type HeaderCell struct {
	Key   string
	Label string
}

// Link is a derived document link.
type Link struct {
	Href     string
	Text     string
	Download bool
}

// Cell is one table cell. Title is set only for tooltip columns
// (HasTitle), Link only for the synthesized download column.
type Cell struct {
	Column   string
	Text     string
	Title    string
	HasTitle bool
	Link     *Link
}

// Row is one body row.
type Row struct {
	Class string
	Cells []Cell
}

// Placeholder replaces the body of an empty view.
type Placeholder struct {
	Text  string
	Span  int
	Class string
}

// Table is the complete render output: header, body and count label.
type Table struct {
	Columns     []HeaderCell
	Rows        []Row
	Placeholder *Placeholder
	Count       string
	Filtered    int
	Total       int
}

// Options controls table construction.
type Options struct {
	// Columns is the ordered column visibility set.
	Columns []string
	// DocumentsDir prefixes derived document links.
	DocumentsDir string
}

// CountLabel formats the "(filtered of total papers)" label.
func CountLabel(filtered, total int) string {
	return fmt.Sprintf("(%d of %d papers)", filtered, total)
}

// DocumentHref derives the document location of a paper.
func DocumentHref(dir, paperID string) string {
	dir = strings.TrimRight(dir, "/")
	if dir == "" {
		return paperID + ".pdf"
	}
	return dir + "/" + paperID + ".pdf"
}

// Header builds the header row for the visible columns.
func Header(columns []string) []HeaderCell {
	out := make([]HeaderCell, len(columns))
	for i, col := range columns {
		out[i] = HeaderCell{Key: col, Label: DisplayName(col)}
	}
	return out
}

// Build renders view against the visible columns. total is the size of
// the full dataset and only feeds the count label.
func Build(view []dataset.Record, total int, opts Options) Table {
	t := Table{
		Columns:  Header(opts.Columns),
		Count:    CountLabel(len(view), total),
		Filtered: len(view),
		Total:    total,
	}

	if len(view) == 0 {
		t.Placeholder = &Placeholder{
			Text:  NoResultsText,
			Span:  len(opts.Columns),
			Class: NoResultsClass,
		}
		return t
	}

	t.Rows = make([]Row, len(view))
	for i, rec := range view {
		t.Rows[i] = buildRow(i, rec, opts)
	}
	return t
}

func buildRow(index int, rec dataset.Record, opts Options) Row {
	row := Row{Class: RowEvenClass, Cells: make([]Cell, len(opts.Columns))}
	if index%2 != 0 {
		row.Class = RowOddClass
	}
	for i, col := range opts.Columns {
		row.Cells[i] = buildCell(col, rec, opts)
	}
	return row
}

func buildCell(column string, rec dataset.Record, opts Options) Cell {
	if column == dataset.ColumnDownload {
		id := rec.Get(dataset.ColumnPaperID)
		if id == "" {
			return Cell{Column: column, Text: MissingLink}
		}
		return Cell{
			Column: column,
			Text:   DownloadText,
			Link: &Link{
				Href:     DocumentHref(opts.DocumentsDir, id),
				Text:     DownloadText,
				Download: true,
			},
		}
	}

	value := rec.Get(column)
	cell := Cell{Column: column, Text: value}
	if tooltipColumns[column] {
		cell.Title = value
		cell.HasTitle = true
	}
	return cell
}
