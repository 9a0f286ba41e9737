package convert

import (
	"strings"
	"unicode"
)

// Fence is the delimiter that opens and closes a code block.
const Fence = "```"

// LineKind is the classification of a single input line outside a code block.
type LineKind int

const (
	// Plain is prose that gets folded into a list item.
	Plain LineKind = iota
	// Blank is a line with no visible content.
	Blank
	// MarkdownLine is a line that is already valid Markdown and passes through.
	MarkdownLine
	// FenceDelimiter opens or closes a code block.
	FenceDelimiter
)

// String returns the name of the kind.
func (k LineKind) String() string {
	switch k {
	case Blank:
		return "blank"
	case MarkdownLine:
		return "markdown"
	case FenceDelimiter:
		return "fence"
	default:
		return "plain"
	}
}

// markdownPrefixes are the line openers treated as existing Markdown.
// Headings are matched separately since they need no trailing space.
var markdownPrefixes = []string{
	Fence,
	"> ",
	"- ",
	"+ ",
	"* ",
	"- [",
	"- [ ",
}

// Classify returns the kind of line. It does not know about fence state:
// callers inside a code block only care whether the line is a FenceDelimiter.
func Classify(line string) LineKind {
	left := trimLeft(line)
	if strings.HasPrefix(left, Fence) {
		return FenceDelimiter
	}
	if strings.TrimSpace(line) == "" {
		return Blank
	}
	if IsMarkdown(left) {
		return MarkdownLine
	}
	return Plain
}

// IsMarkdown reports whether a left-trimmed line opens a Markdown construct.
func IsMarkdown(left string) bool {
	if strings.HasPrefix(left, "#") {
		return true
	}
	for _, prefix := range markdownPrefixes {
		if strings.HasPrefix(left, prefix) {
			return true
		}
	}
	return IsOrderedListMarker(left)
}

// IsOrderedListMarker reports whether s starts with one or more ASCII digits
// followed by '.' or ')' and then a space or the end of the string.
func IsOrderedListMarker(s string) bool {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i == len(s) {
		return false
	}
	if s[i] != '.' && s[i] != ')' {
		return false
	}
	i++
	return i == len(s) || s[i] == ' '
}

func trimLeft(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}
