package ingest

import (
	"strings"
	"testing"
)

func TestStripHTML(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"plain text passthrough", "no markup here", []string{"no", "markup", "here"}},
		{"tags become spaces", "<b>bold</b>text<br/>next", []string{"bold", "text", "next"}},
		{"entities decoded", "fish &amp; chips", []string{"fish", "&", "chips"}},
		{"style dropped", "<style>.x{color:red}</style>visible", []string{"visible"}},
		{"comment dropped", "before<!-- note -->after", []string{"before", "after"}},
	}
	for _, tc := range cases {
		got := strings.Fields(StripHTML(tc.in))
		if strings.Join(got, "|") != strings.Join(tc.want, "|") {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
