package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/salmonumbrella/txt2md/internal/batch"
	"github.com/salmonumbrella/txt2md/internal/markdown"
	"github.com/salmonumbrella/txt2md/internal/output"
	"github.com/spf13/cobra"
)

var convertFlags struct {
	source sourceFlags
	output string
	stdout bool
	render bool
	style  string
}

var convertCmd = &cobra.Command{
	Use:     "convert [text...]",
	Aliases: []string{"c"},
	Short:   "Convert text to Markdown",
	Long: `Convert text to Markdown.

The text comes from the arguments, from --input (a file, or - for stdin), or
from piped stdin. Text from a file is written to --output (default
output.md, or output_file from the config); inline and piped text is
printed unless --output is given.

Examples:
  txt2md convert -i notes.txt
  txt2md convert -i notes.txt -o notes.md --plain-text
  cat notes.txt | txt2md convert
  txt2md convert "# Title" --stdout --render`,
	RunE: runConvert,
}

func init() {
	bindSourceFlags(convertCmd, &convertFlags.source)
	convertCmd.Flags().StringVarP(&convertFlags.output, "output", "o", "", "Output file (default: output.md)")
	convertCmd.Flags().BoolVar(&convertFlags.stdout, "stdout", false, "Print the Markdown instead of writing a file")
	convertCmd.Flags().BoolVar(&convertFlags.render, "render", false, "Render the Markdown for the terminal when printing")
	convertCmd.Flags().StringVar(&convertFlags.style, "style", "", "Render style (auto|dark|light|notty)")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := configFromContext(ctx)
	log := loggerFromContext(ctx)

	if convertFlags.stdout && flagChanged(cmd, "output") {
		return usageErrorf("use only one of --output or --stdout")
	}

	text, origin, err := readSource(ctx, convertFlags.source.input, args)
	if err != nil {
		var inErr *InputError
		if errors.As(err, &inErr) && inErr.Path != "" {
			log.Error("read input failed", "path", inErr.Path, "error", inErr.Err)
		}
		return err
	}

	opts, err := conversionOptions(cmd, convertFlags.source)
	if err != nil {
		return err
	}

	dest := ""
	switch {
	case convertFlags.stdout:
	case flagChanged(cmd, "output"):
		dest = strings.TrimSpace(convertFlags.output)
		if dest == "" {
			return usageErrorf("--output must not be empty")
		}
	case isFileOrigin(origin):
		dest = cfg.OutputPath()
	}

	log.Info("converting", "input", origin, "output", destLabel(dest), "plain_text", opts.Convert.PlainText)
	doc, err := batch.Transform(text, opts)
	if err != nil {
		return &InputError{Path: origin, Err: err}
	}

	if dest == "" {
		stdout := stdoutFromContext(ctx)
		// Rendering only applies on a terminal; pipes get plain Markdown.
		if convertFlags.render && isTerminalFunc(stdout) {
			style := convertFlags.style
			if style == "" {
				style = cfg.RenderStyle
			}
			rendered, err := markdown.RenderTerminal(doc.Markdown, markdown.TerminalOptions{Style: style})
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(stdout, rendered)
			return err
		}
		return printMarkdown(stdout, doc.Markdown)
	}

	if err := batch.WriteMarkdown(dest, doc.Markdown); err != nil {
		log.Error("write output failed", "path", dest, "error", err)
		return &OutputError{Path: dest, Err: err}
	}

	result := batch.NewResult(origin, dest, doc)
	if structuredOutputRequested(ctx) {
		return printStructured(ctx, result)
	}
	if output.QuietFromContext(ctx) {
		return nil
	}
	_, err = fmt.Fprintf(stdoutFromContext(ctx), "Wrote %s (%d lines, %d list items)\n", dest, result.LinesOut, result.ListItems)
	return err
}

func destLabel(dest string) string {
	if dest == "" {
		return "stdout"
	}
	return dest
}
