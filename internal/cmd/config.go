package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/salmonumbrella/txt2md/internal/config"
	"github.com/salmonumbrella/txt2md/internal/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long: `Manage CLI configuration stored in ~/.config/txt2md/config.yaml.

You can view, set, or unset config keys such as plain_text, output_file,
output_format, log_level, front_matter, workers, and render_style.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfigFromFlag()
		if err != nil {
			return formatConfigLoadError(err)
		}
		if structuredOutputRequested(ctx) {
			return printStructured(ctx, configOutput(cfg))
		}

		w := stdoutFromContext(ctx)
		values := configOutput(cfg)
		fmt.Fprintln(w, "Config:")
		for _, key := range supportedConfigKeys() {
			fmt.Fprintf(w, "  %s: %v\n", key, values[key])
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Unset a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List supported configuration keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		keys := supportedConfigKeys()
		sort.Strings(keys)

		if structuredOutputRequested(ctx) {
			return printStructured(ctx, keys)
		}

		w := stdoutFromContext(ctx)
		fmt.Fprintln(w, "Supported keys:")
		for _, key := range keys {
			fmt.Fprintf(w, "  %s\n", key)
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path, err := configPath()
		if err != nil {
			return err
		}
		if structuredOutputRequested(ctx) {
			return printStructured(ctx, map[string]string{"path": path})
		}
		_, err = fmt.Fprintln(stdoutFromContext(ctx), path)
		return err
	},
}

func configPath() (string, error) {
	if strings.TrimSpace(configFile) != "" {
		return configFile, nil
	}
	return config.DefaultConfigPath()
}

func supportedConfigKeys() []string {
	return []string{
		"plain_text",
		"output_file",
		"output_format",
		"log_level",
		"front_matter",
		"workers",
		"render_style",
	}
}

func applyConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "plain_text", "front_matter":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return usageErrorf("invalid value for %s: %q (expected true or false)", key, value)
		}
		if key == "plain_text" {
			cfg.PlainText = b
		} else {
			cfg.FrontMatter = b
		}
	case "output_file":
		if value == "" {
			return usageErrorf("output_file must not be empty")
		}
		cfg.OutputFile = value
	case "output_format":
		format, err := output.ParseFormat(value)
		if err != nil {
			return usageErrorf("%s", err.Error())
		}
		cfg.OutputFormat = string(format)
	case "log_level":
		if _, err := parseLogLevel(value); err != nil {
			return usageErrorf("%s", err.Error())
		}
		cfg.LogLevel = strings.ToLower(value)
	case "workers":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return usageErrorf("invalid value for workers: %q (expected a non-negative integer)", value)
		}
		cfg.Workers = n
	case "render_style":
		cfg.RenderStyle = value
	default:
		return usageErrorf("unknown config key: %s", key)
	}
	return nil
}

func clearConfigValue(cfg *config.Config, key string) error {
	switch key {
	case "plain_text":
		cfg.PlainText = false
	case "output_file":
		cfg.OutputFile = ""
	case "output_format":
		cfg.OutputFormat = ""
	case "log_level":
		cfg.LogLevel = ""
	case "front_matter":
		cfg.FrontMatter = false
	case "workers":
		cfg.Workers = 0
	case "render_style":
		cfg.RenderStyle = ""
	default:
		return usageErrorf("unknown config key: %s", key)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	key := strings.ToLower(strings.TrimSpace(args[0]))
	value := strings.TrimSpace(args[1])

	cfg, err := loadConfigFromFlag()
	if err != nil {
		return formatConfigLoadError(err)
	}

	if err := applyConfigValue(cfg, key, value); err != nil {
		return err
	}

	path, err := configPath()
	if err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return &OutputError{Path: path, Err: err}
	}

	if structuredOutputRequested(ctx) {
		return printStructured(ctx, map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	}

	_, err = fmt.Fprintf(stdoutFromContext(ctx), "Updated %s\n", key)
	return err
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	key := strings.ToLower(strings.TrimSpace(args[0]))

	cfg, err := loadConfigFromFlag()
	if err != nil {
		return formatConfigLoadError(err)
	}

	if err := clearConfigValue(cfg, key); err != nil {
		return err
	}

	path, err := configPath()
	if err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return &OutputError{Path: path, Err: err}
	}

	if structuredOutputRequested(ctx) {
		return printStructured(ctx, map[string]string{
			"status": "unset",
			"key":    key,
		})
	}

	_, err = fmt.Fprintf(stdoutFromContext(ctx), "Unset %s\n", key)
	return err
}

func configOutput(cfg *config.Config) map[string]interface{} {
	return map[string]interface{}{
		"plain_text":    cfg.PlainText,
		"output_file":   cfg.OutputPath(),
		"output_format": cfg.OutputFormat,
		"log_level":     cfg.LogLevel,
		"front_matter":  cfg.FrontMatter,
		"workers":       cfg.Workers,
		"render_style":  cfg.RenderStyle,
	}
}
