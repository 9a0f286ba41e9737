package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/salmonumbrella/txt2md/internal/batch"
	"github.com/salmonumbrella/txt2md/internal/output"
)

func structuredOutputRequested(ctx context.Context) bool {
	return output.IsStructured(output.FormatFromContext(ctx))
}

func printStructured(ctx context.Context, data interface{}) error {
	printer := output.NewPrinter(stdoutFromContext(ctx), output.FormatFromContext(ctx))
	return printer.Print(ctx, data)
}

// printMarkdown writes converted Markdown followed by a newline.
func printMarkdown(w io.Writer, markdown string) error {
	if markdown == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, markdown)
	return err
}

type statusStyles struct {
	ok      lipgloss.Style
	failed  lipgloss.Style
	skipped lipgloss.Style
	dim     lipgloss.Style
}

// newStatusStyles colours status labels for w. Writers that are not a
// terminal get plain text.
func newStatusStyles(w io.Writer) statusStyles {
	r := lipgloss.NewRenderer(w)
	return statusStyles{
		ok:      r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		failed:  r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		skipped: r.NewStyle().Foreground(lipgloss.Color("3")),
		dim:     r.NewStyle().Faint(true),
	}
}

func (s statusStyles) status(st batch.Status) string {
	label := fmt.Sprintf("%-7s", st)
	switch st {
	case batch.StatusOK:
		return s.ok.Render(label)
	case batch.StatusFailed:
		return s.failed.Render(label)
	default:
		return s.skipped.Render(label)
	}
}

// printBatchSummary writes one line per result and a closing count line.
func printBatchSummary(w io.Writer, results []batch.Result, dryRun bool) error {
	styles := newStatusStyles(w)
	for _, r := range results {
		var detail string
		switch r.Status {
		case batch.StatusOK:
			detail = fmt.Sprintf("%s -> %s", r.Input, r.Output)
		default:
			detail = fmt.Sprintf("%s: %s", r.Input, r.Error)
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", styles.status(r.Status), detail); err != nil {
			return err
		}
	}

	failed := batch.Failed(results)
	skipped := countStatus(results, batch.StatusSkipped)
	summary := fmt.Sprintf("%d converted, %d failed", len(results)-failed-skipped, failed)
	if skipped > 0 {
		summary += fmt.Sprintf(", %d skipped", skipped)
	}
	if dryRun {
		summary += " (dry run, nothing written)"
	}
	_, err := fmt.Fprintln(w, styles.dim.Render(summary))
	return err
}

func countStatus(results []batch.Result, status batch.Status) int {
	n := 0
	for _, r := range results {
		if r.Status == status {
			n++
		}
	}
	return n
}
