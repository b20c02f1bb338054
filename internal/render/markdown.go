package render

import (
	"strings"

	"paperview/internal/dataset"
)

// Markdown describes one record as a markdown document: the title as a
// heading followed by every non-empty field in header order.
func Markdown(rec dataset.Record, columns []string, documentsDir string) string {
	var sb strings.Builder

	title := PlainText(rec.Get("Paper Title"))
	if title == "" {
		title = rec.Get(dataset.ColumnPaperID)
	}
	if title == "" {
		title = "Untitled paper"
	}
	sb.WriteString("# " + escapeMarkdown(title) + "\n\n")

	for _, col := range columns {
		if col == dataset.ColumnDownload {
			continue
		}
		v := PlainText(rec.Get(col))
		if v == "" {
			continue
		}
		sb.WriteString("- **" + escapeMarkdown(DisplayName(col)) + "**: " + escapeMarkdown(v) + "\n")
	}

	if id := rec.Get(dataset.ColumnPaperID); id != "" {
		sb.WriteString("\n" + DownloadText + ": `" + DocumentHref(documentsDir, id) + "`\n")
	}
	return sb.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"#", `\#`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
