package lintdoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/takumakei/docgen-go/lintdoc"
)

func TestParseBlockAttrs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want lintdoc.BlockAttrs
	}{
		{name: "empty", in: "", want: lintdoc.BlockAttrs{Foreign: true}},
		{name: "js maps to jsx", in: "js", want: lintdoc.BlockAttrs{Lang: "jsx"}},
		{name: "mjs maps to jsx", in: "mjs", want: lintdoc.BlockAttrs{Lang: "jsx"}},
		{name: "cjs maps to js", in: "cjs", want: lintdoc.BlockAttrs{Lang: "js"}},
		{name: "ts", in: "ts", want: lintdoc.BlockAttrs{Lang: "ts"}},
		{name: "tsx", in: "tsx", want: lintdoc.BlockAttrs{Lang: "tsx"}},
		{name: "json", in: "json", want: lintdoc.BlockAttrs{Lang: "json"}},
		{name: "css", in: "css", want: lintdoc.BlockAttrs{Lang: "css"}},
		{
			name: "comma separated options",
			in:   "ts,expect_diagnostic",
			want: lintdoc.BlockAttrs{Lang: "ts", ExpectDiagnostic: true},
		},
		{
			name: "space separated options",
			in:   "ts expect_diagnostic ignore",
			want: lintdoc.BlockAttrs{Lang: "ts", ExpectDiagnostic: true, Ignore: true},
		},
		{
			name: "unknown token is foreign and ignored",
			in:   "sh",
			want: lintdoc.BlockAttrs{Lang: "sh", Foreign: true, Ignore: true},
		},
		{
			name: "last language wins",
			in:   "js,ts",
			want: lintdoc.BlockAttrs{Lang: "ts"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lintdoc.ParseBlockAttrs(tt.in))
		})
	}
}
