package convert

import (
	"fmt"
	"reflect"
	"sync"
	"testing"
)

func TestConvertNested(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "whitespace only",
			in:   "  \n \n\t\n",
			want: "",
		},
		{
			name: "continuation lines nest",
			in:   "first\nsecond\nthird\n",
			want: "- first\n  - second\n  - third",
		},
		{
			name: "heading separated from item",
			in:   "# Title\nplain line",
			want: "# Title\n\n- plain line",
		},
		{
			name: "blank between heading and prose is not doubled",
			in:   "# Title\n\n\nplain line",
			want: "# Title\n\n- plain line",
		},
		{
			name: "markdown after heading gets no separator",
			in:   "# Title\n- item",
			want: "# Title\n- item",
		},
		{
			name: "only the nearest non-empty line counts",
			in:   "# Title\n> quote\nplain",
			want: "# Title\n> quote\n- plain",
		},
		{
			name: "paragraphs split on blank lines",
			in:   "a\nb\n\nc",
			want: "- a\n  - b\n- c",
		},
		{
			name: "markdown line flushes the paragraph",
			in:   "a\nb\n## H\nc",
			want: "- a\n  - b\n## H\n\n- c",
		},
		{
			name: "lines are trimmed",
			in:   "  first  \n\t second \t",
			want: "- first\n  - second",
		},
		{
			name: "ordered list markers pass through",
			in:   "1. item\n12) item\n3.\n1x item",
			want: "1. item\n12) item\n3.\n- 1x item",
		},
		{
			name: "crlf line endings",
			in:   "first\r\nsecond\r\n",
			want: "- first\n  - second",
		},
		{
			name: "fence flushes the paragraph",
			in:   "a\n```\nx\n```",
			want: "- a\n```\nx\n```",
		},
		{
			name: "trailing blanks trimmed",
			in:   "# H\nplain\n\n\n\n",
			want: "# H\n\n- plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Convert(tt.in, Options{})
			if got != tt.want {
				t.Errorf("Convert(%q) =\n%q\nwant\n%q", tt.in, got, tt.want)
			}
		})
	}
}

func TestConvertPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "continuation lines verbatim after blank",
			in:   "first\nsecond\nthird\n",
			want: "- first\n\nsecond\nthird",
		},
		{
			name: "continuation indentation kept",
			in:   "first\n   second  ",
			want: "- first\n\n   second  ",
		},
		{
			name: "single line paragraph has no separator",
			in:   "a\n\nb",
			want: "- a\n- b",
		},
		{
			name: "heading separation",
			in:   "# H\na\nb",
			want: "# H\n\n- a\n\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Convert(tt.in, Options{PlainText: true})
			if got != tt.want {
				t.Errorf("Convert(%q) =\n%q\nwant\n%q", tt.in, got, tt.want)
			}
		})
	}
}

func TestConvertPreservesFencedBlocks(t *testing.T) {
	in := "intro\n```go\n# not a heading\n\n- not an item\nplain inside\n  indented\n```\nafter"
	want := "- intro\n```go\n# not a heading\n\n- not an item\nplain inside\n  indented\n```\n- after"

	for _, plain := range []bool{false, true} {
		got := Convert(in, Options{PlainText: plain})
		if got != want {
			t.Errorf("plain=%v: got\n%q\nwant\n%q", plain, got, want)
		}
	}
}

func TestConvertUnterminatedFence(t *testing.T) {
	in := "intro\n```\nplain one\n\nplain two\n# heading"
	want := "- intro\n```\nplain one\n\nplain two\n# heading"

	if got := Convert(in, Options{}); got != want {
		t.Fatalf("got\n%q\nwant\n%q", got, want)
	}
}

func TestConvertIndentedFenceKeptVerbatim(t *testing.T) {
	in := "  ```sh\necho hi\n  ```"
	if got := Convert(in, Options{}); got != in {
		t.Fatalf("got %q, want %q", got, in)
	}
}

func TestConvertMarkdownUnchanged(t *testing.T) {
	in := "# Title\n## Sub\n- a\n+ b\n* c\n- [ ] task\n> quote\n1. one\n2) two\n```\ncode\n```"
	if got := Convert(in, Options{}); got != in {
		t.Fatalf("got\n%q\nwant\n%q", got, in)
	}
	if got := Convert(in+"\n\n\n", Options{}); got != in {
		t.Fatalf("trailing blanks: got\n%q\nwant\n%q", got, in)
	}
}

func TestFlushWithBlankHead(t *testing.T) {
	c := &converter{}
	c.buf = []string{"   ", "second", "  "}
	c.flush()
	if want := []string{"  - second"}; !reflect.DeepEqual(c.out, want) {
		t.Fatalf("nested: got %q, want %q", c.out, want)
	}
	if len(c.buf) != 0 {
		t.Fatalf("expected empty buffer after flush, got %q", c.buf)
	}

	c = &converter{opts: Options{PlainText: true}}
	c.buf = []string{"", "second"}
	c.flush()
	if want := []string{"", "second"}; !reflect.DeepEqual(c.out, want) {
		t.Fatalf("plain: got %q, want %q", c.out, want)
	}
}

func TestFlushEmptyBufferIsNoop(t *testing.T) {
	c := &converter{out: []string{"# H"}}
	c.flush()
	if want := []string{"# H"}; !reflect.DeepEqual(c.out, want) {
		t.Fatalf("got %q, want %q", c.out, want)
	}
}

func TestFollowsHeading(t *testing.T) {
	tests := []struct {
		out  []string
		want bool
	}{
		{nil, false},
		{[]string{"", "  "}, false},
		{[]string{"# H"}, true},
		{[]string{"# H", "", "   "}, true},
		{[]string{"# H", "- a"}, false},
		{[]string{"   ### indented"}, true},
	}
	for i, tt := range tests {
		c := &converter{out: tt.out}
		if got := c.followsHeading(); got != tt.want {
			t.Errorf("case %d: followsHeading(%q) = %v, want %v", i, tt.out, got, tt.want)
		}
	}
}

func TestConvertIndependentCalls(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := fmt.Sprintf("# Doc %d\nline %d\nmore %d", i, i, i)
			want := fmt.Sprintf("# Doc %d\n\n- line %d\n  - more %d", i, i, i)
			if got := Convert(in, Options{}); got != want {
				errs <- fmt.Errorf("doc %d: got %q, want %q", i, got, want)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
