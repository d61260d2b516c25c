package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTML(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "heading gets an id",
			input:    "# My Project\n",
			contains: []string{`<h1 id="my-project">My Project</h1>`},
		},
		{
			name:     "links open in a new tab",
			input:    "See [docs](https://example.com).\n",
			contains: []string{`href="https://example.com"`, `target="_blank"`},
		},
		{
			name:     "fenced code block",
			input:    "```go\nfmt.Println(1)\n```\n",
			contains: []string{`<code class="language-go">`, "fmt.Println(1)"},
		},
		{
			name:     "raw html is dropped",
			input:    "<img src=x onerror=\"alert(document.cookie)\">\n\n<script>alert(1)</script>\n\nSome text.\n",
			contains: []string{"Some text."},
			excludes: []string{"<script", "onerror=", "<img", "alert("},
		},
		{
			name:     "inline html is dropped",
			input:    "Click <a href=\"javascript:alert(1)\" onclick=\"steal()\">here</a> now.\n",
			contains: []string{"Click", "now."},
			excludes: []string{"onclick=", "javascript:"},
		},
		{
			name:     "javascript links are not rendered as links",
			input:    "[click](javascript:alert(1))\n",
			excludes: []string{`href="javascript:`},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := ToHTML(tc.input)
			for _, want := range tc.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tc.excludes {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestToHTML_Empty(t *testing.T) {
	assert.Equal(t, "", ToHTML(""))
}
