package convert

import (
	"strings"
)

// Options controls how multi-line paragraphs are rendered.
type Options struct {
	// PlainText renders continuation lines verbatim after a blank separator
	// instead of as nested list items. A one-line paragraph has no
	// continuations and gets no separator, only its list item.
	PlainText bool
}

// converter holds the state of a single conversion. It is never shared.
type converter struct {
	opts   Options
	inCode bool
	buf    []string
	out    []string
}

// Convert rewrites text as Markdown. Existing Markdown lines and fenced code
// blocks pass through unchanged; runs of plain lines become list items.
func Convert(input string, opts Options) string {
	if input == "" {
		return ""
	}
	c := &converter{opts: opts}
	for _, line := range SplitLines(input) {
		c.feed(line)
	}
	c.flush()
	c.trimTrailingBlanks()
	return strings.Join(c.out, "\n")
}

// SplitLines splits text on line boundaries, dropping the terminators.
func SplitLines(input string) []string {
	lines := strings.Split(input, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func (c *converter) feed(line string) {
	kind := Classify(line)
	if kind == FenceDelimiter {
		c.flush()
		c.inCode = !c.inCode
		c.out = append(c.out, line)
		return
	}
	if c.inCode {
		c.out = append(c.out, line)
		return
	}

	switch kind {
	case Blank:
		c.flush()
	case MarkdownLine:
		c.flush()
		c.out = append(c.out, line)
	default:
		c.buf = append(c.buf, line)
	}
}

// flush turns the buffered paragraph into a list item and its continuations.
func (c *converter) flush() {
	if len(c.buf) == 0 {
		return
	}

	if head := strings.TrimSpace(c.buf[0]); head != "" {
		if c.followsHeading() {
			c.out = append(c.out, "")
		}
		c.out = append(c.out, "- "+head)
	}

	rest := c.buf[1:]
	if c.opts.PlainText {
		if len(rest) > 0 {
			c.out = append(c.out, "")
			c.out = append(c.out, rest...)
		}
	} else {
		for _, line := range rest {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				c.out = append(c.out, "  - "+trimmed)
			}
		}
	}

	c.buf = c.buf[:0]
}

// followsHeading reports whether the nearest non-empty output line is a heading.
func (c *converter) followsHeading() bool {
	for i := len(c.out) - 1; i >= 0; i-- {
		if strings.TrimSpace(c.out[i]) == "" {
			continue
		}
		return strings.HasPrefix(trimLeft(c.out[i]), "#")
	}
	return false
}

func (c *converter) trimTrailingBlanks() {
	for len(c.out) > 0 && c.out[len(c.out)-1] == "" {
		c.out = c.out[:len(c.out)-1]
	}
}
