package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain value", "plain value"},
		{"  spaced\n out  ", "spaced out"},
		{"<i>Nature</i> 2020", "Nature 2020"},
		{"Smith &amp; Jones", "Smith & Jones"},
		{"line<br>break", "line break"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PlainText(tt.in), "PlainText(%q)", tt.in)
	}
}
