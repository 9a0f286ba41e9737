package cmd

import (
	"fmt"
	"strings"

	"github.com/salmonumbrella/txt2md/internal/config"
	"github.com/salmonumbrella/txt2md/internal/output"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time
	version = "dev"
	// Commit is set at build time
	commit = "none"
	// Date is set at build time
	date = "unknown"
)

// SetVersionInfo sets the version information from build flags
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = v
	rootCmd.SetVersionTemplate(versionTemplate())
}

// Global flags
var (
	configFile  string
	reportFmt   string
	reportType  output.Format
	queryExpr   string
	queryFile   string
	errorFmt    string
	logLevel    string
	debug       bool
	quietFlag   bool
	resultLimit int
	resultSort  string
	resultDesc  bool
)

var rootCmd = &cobra.Command{
	Use:   "txt2md",
	Short: "Convert plain text notes to Markdown",
	Long: `txt2md turns plain text into Markdown.

Lines that are already Markdown (headings, quotes, list items, ordered list
items) and fenced code blocks are kept as they are. Runs of plain lines
become list items: the first line is the item, the following lines become
nested items, or plain text with --plain-text.

Environment Variables:
  TXT2MD_PLAIN_TEXT  Default for --plain-text (true/false)
  TXT2MD_LOG_LEVEL   Default for --log-level`,
	Version:       version,
	SilenceUsage:  false,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceErrors = true

		var cfg *config.Config
		if isConfigCommand(cmd) {
			cfg = &config.Config{}
		} else {
			loaded, err := loadConfigFromFlag()
			if err != nil {
				return formatConfigLoadError(err)
			}
			cfg = loaded
		}

		// Report format selection: --format > config > json when piped > text
		formatStr := reportFmt
		if !flagChanged(cmd, "format") {
			switch {
			case strings.TrimSpace(cfg.OutputFormat) != "":
				formatStr = strings.TrimSpace(cfg.OutputFormat)
			case !isTerminalFunc(cmd.OutOrStdout()):
				formatStr = string(output.FormatJSON)
			}
		}
		format, err := output.ParseFormat(formatStr)
		if err != nil {
			return usageErrorf("%s", err.Error())
		}
		reportType = format

		if queryExpr != "" && queryFile != "" {
			return usageErrorf("use only one of --query or --query-file")
		}
		if strings.TrimSpace(queryFile) == "-" && readsTextFromStdin(cmd, args) {
			return usageErrorf("--query-file - cannot share stdin with the text to convert (use --input or inline text)")
		}
		if queryFile != "" {
			loaded, err := readInputSource(queryFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			queryExpr = strings.TrimSpace(loaded)
		}

		// Default quiet mode for non-interactive structured output
		if !flagChanged(cmd, "quiet") && !isTerminalFunc(cmd.OutOrStdout()) && output.IsStructured(reportType) {
			quietFlag = true
		}

		level, err := parseLogLevel(resolveLogLevel(cmd, cfg))
		if err != nil {
			return usageErrorf("%s", err.Error())
		}

		ctx := cmd.Context()
		ctx = withIO(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		ctx = output.WithFormat(ctx, reportType)
		ctx = output.WithQuery(ctx, queryExpr)
		ctx = output.WithLimit(ctx, resultLimit)
		ctx = output.WithSort(ctx, resultSort, resultDesc)
		ctx = output.WithQuiet(ctx, quietFlag)
		ctx = WithErrorFormat(ctx, errorFmt)
		ctx = withConfig(ctx, cfg)
		ctx = withLogger(ctx, newLogger(cmd.ErrOrStderr(), level))
		cmd.SetContext(ctx)

		if err := validateErrorFormat(errorFmt); err != nil {
			return err
		}
		if effectiveErrorFormat(ctx) != "text" {
			cmd.SilenceUsage = true
		}
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		ctx := rootCmd.Context()
		if cmd != nil && cmd.Context() != nil {
			ctx = cmd.Context()
		}
		printCommandError(ctx, err)
		return err
	}
	return nil
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == configCmd {
			return true
		}
	}
	return false
}

func versionTemplate() string {
	return fmt.Sprintf("txt2md version %s (commit: %s, built: %s)\n", version, commit, date)
}

func init() {
	rootCmd.SetVersionTemplate(versionTemplate())

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ~/.config/txt2md/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&reportFmt, "format", "f", "text", "Report format (text|json|ndjson|table|yaml)")
	rootCmd.PersistentFlags().StringVar(&queryExpr, "query", "", "jq expression to filter JSON reports")
	rootCmd.PersistentFlags().StringVar(&queryFile, "query-file", "", "Read jq expression from file (use - for stdin)")
	rootCmd.PersistentFlags().StringVar(&errorFmt, "error-format", "auto", "Error output format (auto|text|json|yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (error|warn|info|debug)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Shorthand for --log-level debug")
	rootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().IntVar(&resultLimit, "result-limit", 0, "Limit number of results in reports (0 = unlimited)")
	rootCmd.PersistentFlags().StringVar(&resultSort, "result-sort-by", "", "Sort report results by field")
	rootCmd.PersistentFlags().BoolVar(&resultDesc, "result-desc", false, "Sort report results in descending order")
}
