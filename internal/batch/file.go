package batch

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/salmonumbrella/txt2md/internal/convert"
	"github.com/salmonumbrella/txt2md/internal/markdown"
)

// Options configures how a single document is converted.
type Options struct {
	Convert convert.Options
	// FrontMatter keeps a leading YAML front matter block untouched and
	// converts only the body after it.
	FrontMatter bool
	// DryRun converts without writing output files.
	DryRun bool
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Document is the result of converting one text source.
type Document struct {
	Markdown    string
	FrontMatter markdown.FrontMatter
	Stats       markdown.Stats
	LinesIn     int
}

// Transform converts source text into a Document.
func Transform(source string, opts Options) (Document, error) {
	doc := Document{}
	if source != "" {
		doc.LinesIn = len(convert.SplitLines(strings.TrimSuffix(source, "\n")))
	}

	body := source
	if opts.FrontMatter {
		fm, rest, err := markdown.SplitFrontMatter(source)
		if err != nil {
			return Document{}, err
		}
		doc.FrontMatter = fm
		body = rest
	}

	doc.Markdown = markdown.JoinFrontMatter(doc.FrontMatter, convert.Convert(body, opts.Convert))
	doc.Stats = markdown.Analyze(doc.Markdown)
	return doc, nil
}

// Status is the outcome of converting one file.
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Result reports one file conversion.
type Result struct {
	Input      string `json:"input" yaml:"input"`
	Output     string `json:"output,omitempty" yaml:"output,omitempty"`
	Status     Status `json:"status" yaml:"status"`
	LinesIn    int    `json:"lines_in" yaml:"lines_in"`
	LinesOut   int    `json:"lines_out" yaml:"lines_out"`
	Headings   int    `json:"headings" yaml:"headings"`
	ListItems  int    `json:"list_items" yaml:"list_items"`
	CodeBlocks int    `json:"code_blocks" yaml:"code_blocks"`
	Title      string `json:"title,omitempty" yaml:"title,omitempty"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewResult fills a Result from a converted document.
func NewResult(input, output string, doc Document) Result {
	return Result{
		Input:      input,
		Output:     output,
		Status:     StatusOK,
		LinesIn:    doc.LinesIn,
		LinesOut:   doc.Stats.Lines,
		Headings:   doc.Stats.Headings,
		ListItems:  doc.Stats.ListItems,
		CodeBlocks: doc.Stats.CodeBlocks,
		Title:      doc.FrontMatter.Title,
	}
}

// ConvertFile reads job.Input, converts it and writes job.Output. Failures
// are reported in the Result, never returned, so one bad file does not stop
// its siblings.
func ConvertFile(job Job, opts Options) Result {
	log := opts.logger().With("input", job.Input, "output", job.Output)

	if samePath(job.Input, job.Output) {
		log.Warn("skipping file, output would overwrite input")
		return Result{Input: job.Input, Output: job.Output, Status: StatusSkipped, Error: "output would overwrite input"}
	}

	data, err := os.ReadFile(job.Input)
	if err != nil {
		log.Error("read input failed", "path", job.Input, "error", err)
		return failed(job, fmt.Errorf("read %s: %w", job.Input, err))
	}

	log.Info("converting", "plain_text", opts.Convert.PlainText)
	doc, err := Transform(string(data), opts)
	if err != nil {
		log.Error("convert failed", "path", job.Input, "error", err)
		return failed(job, fmt.Errorf("convert %s: %w", job.Input, err))
	}

	if !opts.DryRun {
		if err := WriteMarkdown(job.Output, doc.Markdown); err != nil {
			log.Error("write output failed", "path", job.Output, "error", err)
			return failed(job, err)
		}
	}
	return NewResult(job.Input, job.Output, doc)
}

// WriteMarkdown writes converted Markdown to path, creating parent directories.
// Non-empty content gets a terminating newline.
func WriteMarkdown(path, content string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if content != "" {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func failed(job Job, err error) Result {
	return Result{Input: job.Input, Output: job.Output, Status: StatusFailed, Error: err.Error()}
}

func samePath(a, b string) bool {
	return pathKey(a) == pathKey(b)
}

// pathKey is the absolute form of path, or its cleaned form when the
// working directory is unknown.
func pathKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
