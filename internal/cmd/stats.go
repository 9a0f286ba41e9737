package cmd

import (
	"github.com/salmonumbrella/txt2md/internal/markdown"
	"github.com/salmonumbrella/txt2md/internal/output"
	"github.com/spf13/cobra"
)

var statsFlags sourceFlags

var statsCmd = &cobra.Command{
	Use:   "stats [text...]",
	Short: "Show the Markdown structure a conversion produces",
	Long: `Convert text in memory and report the structure of the result:
lines, headings, lists, list items, code blocks, blockquotes and paragraphs.

Examples:
  txt2md stats -i notes.txt
  txt2md stats -i notes.txt --format table
  txt2md stats -i notes.txt --format json --query .list_items`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		doc, err := convertSource(cmd, statsFlags, args)
		if err != nil {
			return err
		}
		if output.FormatFromContext(ctx) == output.FormatTable {
			return printStructured(ctx, statsTable(doc.Stats))
		}
		return printStructured(ctx, doc.Stats)
	},
}

func init() {
	bindSourceFlags(statsCmd, &statsFlags)
	rootCmd.AddCommand(statsCmd)
}

// statsTable lays the counts out one metric per row.
func statsTable(s markdown.Stats) *output.Table {
	t := output.NewTable("metric", "count")
	t.AddRow("lines", s.Lines)
	t.AddRow("headings", s.Headings)
	t.AddRow("lists", s.Lists)
	t.AddRow("list_items", s.ListItems)
	t.AddRow("code_blocks", s.CodeBlocks)
	t.AddRow("blockquotes", s.Blockquotes)
	t.AddRow("paragraphs", s.Paragraphs)
	return t
}
