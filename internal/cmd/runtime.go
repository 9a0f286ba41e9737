package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/salmonumbrella/txt2md/internal/batch"
	"github.com/salmonumbrella/txt2md/internal/config"
	"github.com/salmonumbrella/txt2md/internal/convert"
	"github.com/spf13/cobra"
)

// loadConfigFromFlag loads config from --config if provided, otherwise from default path.
func loadConfigFromFlag() (*config.Config, error) {
	if strings.TrimSpace(configFile) != "" {
		return config.Load(configFile)
	}
	return config.ReadConfig()
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil {
		return false
	}
	if cmd.Flags().Changed(name) {
		return true
	}
	return cmd.InheritedFlags().Changed(name)
}

// sourceFlags are the conversion flags shared by convert, preview and stats.
type sourceFlags struct {
	input       string
	plainText   bool
	frontMatter bool
}

func bindSourceFlags(cmd *cobra.Command, f *sourceFlags) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "Path to the input text (use - for stdin)")
	cmd.Flags().BoolVar(&f.plainText, "plain-text", false, "Keep the second and later lines of a paragraph as plain text instead of nested items")
	cmd.Flags().BoolVar(&f.plainText, "is-plane-text", false, "Alias for --plain-text")
	cmd.Flags().BoolVar(&f.frontMatter, "front-matter", false, "Keep a leading YAML front matter block unchanged")
	_ = cmd.Flags().MarkHidden("is-plane-text")
}

// readsTextFromStdin reports whether cmd will take its text from stdin:
// it has an --input flag that is unset or "-", and no inline text.
func readsTextFromStdin(cmd *cobra.Command, args []string) bool {
	f := cmd.Flags().Lookup("input")
	if f == nil || len(args) > 0 {
		return false
	}
	input := strings.TrimSpace(f.Value.String())
	return input == "" || input == "-"
}

// resolvePlainText applies flags > TXT2MD_PLAIN_TEXT > config.
func resolvePlainText(cmd *cobra.Command, flagValue bool, cfg *config.Config) (bool, error) {
	if flagChanged(cmd, "plain-text") || flagChanged(cmd, "is-plane-text") {
		return flagValue, nil
	}
	if v := strings.TrimSpace(envGet("TXT2MD_PLAIN_TEXT")); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return false, usageErrorf("invalid TXT2MD_PLAIN_TEXT %q: expected a boolean", v)
		}
		return parsed, nil
	}
	return cfg.PlainText, nil
}

// conversionOptions builds batch options from the shared source flags.
func conversionOptions(cmd *cobra.Command, f sourceFlags) (batch.Options, error) {
	ctx := cmd.Context()
	cfg := configFromContext(ctx)

	plain, err := resolvePlainText(cmd, f.plainText, cfg)
	if err != nil {
		return batch.Options{}, err
	}
	frontMatter := cfg.FrontMatter
	if flagChanged(cmd, "front-matter") {
		frontMatter = f.frontMatter
	}

	return batch.Options{
		Convert:     convert.Options{PlainText: plain},
		FrontMatter: frontMatter,
		Logger:      loggerFromContext(ctx),
	}, nil
}

// resolveLogLevel applies --debug > --log-level > TXT2MD_LOG_LEVEL > config.
func resolveLogLevel(cmd *cobra.Command, cfg *config.Config) string {
	if debug {
		return "debug"
	}
	if flagChanged(cmd, "log-level") {
		return logLevel
	}
	if v := strings.TrimSpace(envGet("TXT2MD_LOG_LEVEL")); v != "" {
		return v
	}
	if cfg != nil && strings.TrimSpace(cfg.LogLevel) != "" {
		return cfg.LogLevel
	}
	return logLevel
}

func formatConfigLoadError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("load config: %w", err)
}
