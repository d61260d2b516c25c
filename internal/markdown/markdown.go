// Package markdown renders generated README drafts for preview.
package markdown

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// ToHTML converts markdown text to HTML. Links open in a new tab.
// Raw HTML in the source is dropped and links with unsafe schemes are not rendered,
// since drafts are written by a model reading untrusted repository files.
func ToHTML(md string) string {
	if md == "" {
		return ""
	}
	// A parser holds state, so each call needs a fresh one.
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock)
	doc := p.Parse([]byte(md))

	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank | html.SkipHTML | html.Safelink})
	return string(markdown.Render(doc, renderer))
}
