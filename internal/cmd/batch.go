package cmd

import (
	"fmt"

	"github.com/salmonumbrella/txt2md/internal/batch"
	"github.com/salmonumbrella/txt2md/internal/output"
	"github.com/spf13/cobra"
)

// BatchError reports that some files in a batch failed to convert. The
// per-file errors are in the printed results.
type BatchError struct {
	Failed int
	Total  int
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%d of %d files failed to convert", e.Failed, e.Total)
}

var batchFlags struct {
	source  sourceFlags
	outDir  string
	exclude []string
	workers int
	dryRun  bool
}

var batchCmd = &cobra.Command{
	Use:   "batch PATTERN...",
	Short: "Convert many text files in parallel",
	Long: `Convert every file matching the given patterns.

Patterns use doublestar syntax, so "**" matches any number of directories.
Each file is written next to its input with a .md extension, or under
--out-dir keeping its path relative to the pattern's base directory.
Files are converted in parallel; a file that fails does not stop the
others, and the command exits non-zero if any file failed.

Examples:
  # Convert every .txt file below notes/
  txt2md batch 'notes/**/*.txt'

  # Mirror the tree into site/, skipping drafts
  txt2md batch 'notes/**/*.txt' --out-dir site --exclude 'draft-*'

  # See what would happen
  txt2md batch '*.txt' --dry-run --format table`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().BoolVar(&batchFlags.source.plainText, "plain-text", false, "Keep the second and later lines of a paragraph as plain text")
	batchCmd.Flags().BoolVar(&batchFlags.source.plainText, "is-plane-text", false, "Alias for --plain-text")
	batchCmd.Flags().BoolVar(&batchFlags.source.frontMatter, "front-matter", false, "Keep a leading YAML front matter block unchanged")
	_ = batchCmd.Flags().MarkHidden("is-plane-text")
	batchCmd.Flags().StringVar(&batchFlags.outDir, "out-dir", "", "Directory for converted files (default: next to each input)")
	batchCmd.Flags().StringSliceVar(&batchFlags.exclude, "exclude", nil, "Skip files matching these patterns (repeatable)")
	batchCmd.Flags().IntVar(&batchFlags.workers, "workers", 0, "Files converted in parallel (default: number of CPUs)")
	batchCmd.Flags().BoolVar(&batchFlags.dryRun, "dry-run", false, "Convert without writing any files")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := configFromContext(ctx)
	log := loggerFromContext(ctx)

	if batchFlags.workers < 0 {
		return usageErrorf("--workers must not be negative")
	}

	jobs, err := batch.Expand(args, batchFlags.exclude)
	if err != nil {
		return &InputError{Err: err}
	}
	if len(jobs) == 0 {
		return &InputError{Err: fmt.Errorf("no files matched %v", args)}
	}
	for i := range jobs {
		jobs[i].Output = batch.OutputPath(jobs[i], batchFlags.outDir)
	}

	opts, err := conversionOptions(cmd, batchFlags.source)
	if err != nil {
		return err
	}
	opts.DryRun = batchFlags.dryRun

	workers := cfg.Workers
	if flagChanged(cmd, "workers") {
		workers = batchFlags.workers
	}

	log.Debug("starting batch", "files", len(jobs), "workers", workers, "dry_run", opts.DryRun)
	results, err := batch.Run(ctx, jobs, workers, opts)
	if err != nil {
		return err
	}

	if output.FormatFromContext(ctx) != output.FormatText {
		if err := printStructured(ctx, results); err != nil {
			return err
		}
	} else if err := printBatchSummary(stdoutFromContext(ctx), results, opts.DryRun); err != nil {
		return err
	}

	if failed := batch.Failed(results); failed > 0 {
		return &BatchError{Failed: failed, Total: len(results)}
	}
	return nil
}
