package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// DefaultWrap is the terminal word wrap width used when none is given.
const DefaultWrap = 80

// RenderHTML renders Markdown to an HTML fragment. Raw HTML in the source
// is escaped.
func RenderHTML(source string) (string, error) {
	engine := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	var buf bytes.Buffer
	if err := engine.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

// TerminalOptions configures glamour rendering.
type TerminalOptions struct {
	// Style is a glamour standard style name (dark, light, notty, ...) or
	// "auto" to detect from the terminal.
	Style string
	Width int
}

// RenderTerminal renders Markdown for display in a terminal.
func RenderTerminal(source string, opts TerminalOptions) (string, error) {
	width := opts.Width
	if width <= 0 {
		width = DefaultWrap
	}

	options := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	switch style := strings.ToLower(strings.TrimSpace(opts.Style)); style {
	case "", "auto":
		options = append(options, glamour.WithAutoStyle())
	default:
		options = append(options, glamour.WithStandardStyle(style))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return "", fmt.Errorf("create terminal renderer: %w", err)
	}
	out, err := renderer.Render(source)
	if err != nil {
		return "", fmt.Errorf("render terminal: %w", err)
	}
	return out, nil
}
