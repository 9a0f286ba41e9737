package cmd

import (
	"fmt"

	"github.com/salmonumbrella/txt2md/internal/batch"
	"github.com/salmonumbrella/txt2md/internal/markdown"
	"github.com/spf13/cobra"
)

var previewFlags struct {
	source sourceFlags
	html   bool
	style  string
	width  int
}

var previewCmd = &cobra.Command{
	Use:   "preview [text...]",
	Short: "Convert text and show the rendered result",
	Long: `Convert text and render the resulting Markdown.

By default the Markdown is rendered for the terminal. With --html it is
rendered to an HTML fragment instead. Nothing is written to disk.

Examples:
  txt2md preview -i notes.txt
  txt2md preview -i notes.txt --html > notes.html
  txt2md preview -i notes.txt --style light --width 100`,
	RunE: runPreview,
}

func init() {
	bindSourceFlags(previewCmd, &previewFlags.source)
	previewCmd.Flags().BoolVar(&previewFlags.html, "html", false, "Render HTML instead of terminal output")
	previewCmd.Flags().StringVar(&previewFlags.style, "style", "", "Terminal style (auto|dark|light|notty)")
	previewCmd.Flags().IntVar(&previewFlags.width, "width", markdown.DefaultWrap, "Word wrap width for terminal output")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	doc, err := convertSource(cmd, previewFlags.source, args)
	if err != nil {
		return err
	}

	var rendered string
	if previewFlags.html {
		rendered, err = markdown.RenderHTML(doc.Markdown)
	} else {
		style := previewFlags.style
		if style == "" {
			style = configFromContext(ctx).RenderStyle
		}
		rendered, err = markdown.RenderTerminal(doc.Markdown, markdown.TerminalOptions{Style: style, Width: previewFlags.width})
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(stdoutFromContext(ctx), rendered)
	return err
}

// convertSource reads the command's input and converts it in memory.
func convertSource(cmd *cobra.Command, f sourceFlags, args []string) (batch.Document, error) {
	ctx := cmd.Context()
	text, origin, err := readSource(ctx, f.input, args)
	if err != nil {
		return batch.Document{}, err
	}
	opts, err := conversionOptions(cmd, f)
	if err != nil {
		return batch.Document{}, err
	}

	loggerFromContext(ctx).Info("converting", "input", origin, "output", "memory", "plain_text", opts.Convert.PlainText)
	doc, err := batch.Transform(text, opts)
	if err != nil {
		return batch.Document{}, &InputError{Path: origin, Err: err}
	}
	return doc, nil
}
