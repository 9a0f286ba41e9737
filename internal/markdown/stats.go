package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Stats summarises the block structure of a Markdown document.
type Stats struct {
	Lines       int `json:"lines" yaml:"lines"`
	Headings    int `json:"headings" yaml:"headings"`
	Lists       int `json:"lists" yaml:"lists"`
	ListItems   int `json:"list_items" yaml:"list_items"`
	CodeBlocks  int `json:"code_blocks" yaml:"code_blocks"`
	Blockquotes int `json:"blockquotes" yaml:"blockquotes"`
	Paragraphs  int `json:"paragraphs" yaml:"paragraphs"`
}

// Analyze parses source with goldmark and counts its block nodes.
func Analyze(source string) Stats {
	stats := Stats{}
	if source == "" {
		return stats
	}
	stats.Lines = strings.Count(source, "\n") + 1

	src := []byte(source)
	doc := newEngine().Parser().Parse(text.NewReader(src))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			stats.Headings++
		case ast.KindList:
			stats.Lists++
		case ast.KindListItem:
			stats.ListItems++
		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			stats.CodeBlocks++
			return ast.WalkSkipChildren, nil
		case ast.KindBlockquote:
			stats.Blockquotes++
		case ast.KindParagraph:
			stats.Paragraphs++
		}
		return ast.WalkContinue, nil
	})
	return stats
}

func newEngine() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)
}
