package markdown

import (
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// yamlFormat restricts detection to "---" delimited YAML. TOML and JSON
// openers are ordinary text for a notes file.
var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// FrontMatter is a leading metadata block kept apart from the converted body.
type FrontMatter struct {
	// Raw is the block exactly as it appeared, delimiters included.
	Raw string
	// Title is the "title" field when present.
	Title  string
	Fields map[string]any
}

// Empty reports whether no front matter was found.
func (f FrontMatter) Empty() bool {
	return f.Raw == ""
}

// SplitFrontMatter separates a leading YAML front matter block from the body.
// Sources without front matter come back unchanged as the body.
func SplitFrontMatter(source string) (FrontMatter, string, error) {
	if !strings.HasPrefix(source, "---") {
		return FrontMatter{}, source, nil
	}

	fields := map[string]any{}
	body, err := frontmatter.Parse(strings.NewReader(source), &fields, yamlFormat)
	if err != nil {
		return FrontMatter{}, "", fmt.Errorf("parse front matter: %w", err)
	}
	rest := string(body)
	if len(rest) == len(source) {
		return FrontMatter{}, source, nil
	}

	var raw string
	if strings.HasSuffix(source, rest) {
		raw = source[:len(source)-len(rest)]
	} else {
		encoded, err := yaml.Marshal(fields)
		if err != nil {
			return FrontMatter{}, "", fmt.Errorf("encode front matter: %w", err)
		}
		raw = "---\n" + string(encoded) + "---\n"
	}

	fm := FrontMatter{Raw: raw, Fields: fields}
	if title, ok := fields["title"].(string); ok {
		fm.Title = strings.TrimSpace(title)
	}
	return fm, rest, nil
}

// JoinFrontMatter puts a front matter block back in front of a body.
func JoinFrontMatter(fm FrontMatter, body string) string {
	if fm.Empty() {
		return body
	}
	head := strings.TrimRight(fm.Raw, "\r\n")
	if body == "" {
		return head
	}
	return head + "\n" + body
}
