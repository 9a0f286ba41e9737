package convert

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		line string
		want LineKind
	}{
		{"```", FenceDelimiter},
		{"```go", FenceDelimiter},
		{"   ```", FenceDelimiter},
		{"", Blank},
		{"   ", Blank},
		{"\t", Blank},
		{"# Title", MarkdownLine},
		{"###no space", MarkdownLine},
		{"  ## indented", MarkdownLine},
		{"> quote", MarkdownLine},
		{"- item", MarkdownLine},
		{"+ item", MarkdownLine},
		{"* item", MarkdownLine},
		{"- [ ] task", MarkdownLine},
		{"- [x] done", MarkdownLine},
		{"1. item", MarkdownLine},
		{"12) item", MarkdownLine},
		{"3.", MarkdownLine},
		{"1x item", Plain},
		{"plain prose", Plain},
		{">quote without space", Plain},
		{"-dash", Plain},
		{"*emphasis*", Plain},
		{"`inline`", Plain},
		{"``", Plain},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := Classify(tt.line); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestIsOrderedListMarker(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1. foo", true},
		{"12) bar", true},
		{"3.", true},
		{"7)", true},
		{"100. hundred", true},
		{"1.foo", false},
		{"1x foo", false},
		{"1", false},
		{"12", false},
		{". foo", false},
		{") foo", false},
		{"a1. foo", false},
		{"", false},
		{"1.\tfoo", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsOrderedListMarker(tt.in); got != tt.want {
				t.Errorf("IsOrderedListMarker(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLineKindString(t *testing.T) {
	if Plain.String() != "plain" || Blank.String() != "blank" ||
		MarkdownLine.String() != "markdown" || FenceDelimiter.String() != "fence" {
		t.Fatalf("unexpected kind names: %v %v %v %v", Plain, Blank, MarkdownLine, FenceDelimiter)
	}
}
