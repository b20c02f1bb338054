package render

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// PlainText strips markup from a cell value so it can be shown outside a
// browser. Entities are decoded and whitespace runs collapse to a space.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}

	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return strings.Join(strings.Fields(sb.String()), " ")
			}
			return strings.Join(strings.Fields(s), " ")
		case html.TextToken:
			sb.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if string(name) == "br" {
				sb.WriteByte(' ')
			}
		}
	}
}
