package render

import (
	"fmt"
	"html/template"
	"io"

	"paperview/internal/logging"
)

// Page is everything the HTML document needs. The page is static: its
// controls are rendered disabled and show the criteria it was built with.
type Page struct {
	Title    string
	Controls Controls
	Table    Table
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<div id="papers-container">
<div class="table-header">
<h2>{{.Title}} <span class="paper-count">{{.Table.Count}}</span></h2>
<div class="filters">
<div class="filter-grid">
<div class="filter-item">
<label for="{{.Controls.Search.ID}}">{{.Controls.Search.Label}}</label>
<input type="text" id="{{.Controls.Search.ID}}" placeholder="{{.Controls.Search.Placeholder}}" value="{{.Controls.Search.Value}}" disabled>
</div>
{{- range .Controls.Selects}}
<div class="filter-item">
<label for="{{.ID}}">{{.Label}}</label>
<select id="{{.ID}}" name="{{.Column}}" disabled>
{{- range .Options}}
<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
{{- end}}
</select>
</div>
{{- end}}
</div>
<div class="filter-actions">
<button id="{{.Controls.ClearID}}" class="btn btn-danger" disabled>{{.Controls.ClearLabel}}</button>
</div>
</div>
</div>
<div class="table-wrapper">
<table>
<thead>
<tr>{{range .Table.Columns}}<th>{{.Label}}</th>{{end}}</tr>
</thead>
<tbody id="table-body">
{{template "rows" .Table}}
</tbody>
</table>
</div>
</div>
</body>
</html>
`

const rowsTemplate = `{{define "rows"}}
{{- with .Placeholder}}<tr><td colspan="{{.Span}}" class="{{.Class}}">{{.Text}}</td></tr>
{{- else}}
{{- range .Rows}}
<tr class="{{.Class}}">{{range .Cells}}{{template "cell" .}}{{end}}</tr>
{{- end}}
{{- end}}
{{- end}}
{{define "cell"}}
{{- if .Link}}<td><a href="{{.Link.Href}}"{{if .Link.Download}} download{{end}} class="download-link">{{.Link.Text}}</a></td>
{{- else if .HasTitle}}<td title="{{.Title}}">{{.Text}}</td>
{{- else}}<td>{{.Text}}</td>
{{- end}}
{{- end}}`

var templates = template.Must(template.Must(template.New("page").Parse(pageTemplate)).Parse(rowsTemplate))

// WritePage writes the full HTML document.
func WritePage(w io.Writer, p Page) error {
	if err := templates.ExecuteTemplate(w, "page", p); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	logging.Get(logging.CategoryRender).Debug("rendered page %q: %d rows, %d selectors", p.Title, len(p.Table.Rows), len(p.Controls.Selects))
	return nil
}

// WriteBody writes only the table body rows, for embedding in a page
// that supplies its own table.
func WriteBody(w io.Writer, t Table) error {
	if err := templates.ExecuteTemplate(w, "rows", t); err != nil {
		return fmt.Errorf("render rows: %w", err)
	}
	logging.Get(logging.CategoryRender).Debug("rendered %d rows", len(t.Rows))
	return nil
}
