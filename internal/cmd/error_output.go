package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/salmonumbrella/txt2md/internal/output"
)

var errEmptySource = errors.New("empty input source")

// InputError is a missing or unreadable input. The converter is not run.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// OutputError is a failure to write converted Markdown. Err already names
// the path.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string { return e.Err.Error() }

func (e *OutputError) Unwrap() error { return e.Err }

// UsageError is an invalid combination of flags or arguments.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }

func usageErrorf(format string, args ...any) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

func validateErrorFormat(format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "auto", "text", "json", "yaml":
		return nil
	default:
		return usageErrorf("invalid --error-format %q (expected auto|text|json|yaml)", format)
	}
}

func effectiveErrorFormat(ctx context.Context) string {
	format := strings.ToLower(strings.TrimSpace(ErrorFormatFromContext(ctx)))
	if format == "" || format == "auto" {
		if ctx == nil {
			return "text"
		}
		switch output.FormatFromContext(ctx) {
		case output.FormatJSON, output.FormatNDJSON:
			return "json"
		case output.FormatYAML:
			return "yaml"
		default:
			return "text"
		}
	}
	return format
}

func printCommandError(ctx context.Context, err error) {
	if err == nil {
		return
	}

	switch effectiveErrorFormat(ctx) {
	case "json":
		enc := json.NewEncoder(stderrFromContext(ctx))
		enc.SetEscapeHTML(false)
		_ = enc.Encode(buildErrorEnvelope(err))
		return
	case "yaml":
		enc := yaml.NewEncoder(stderrFromContext(ctx))
		enc.SetIndent(2)
		_ = enc.Encode(buildErrorEnvelope(err))
		_ = enc.Close()
		return
	}

	_, _ = fmt.Fprintln(stderrFromContext(ctx), err)
}

func buildErrorEnvelope(err error) map[string]interface{} {
	errMap := map[string]interface{}{
		"message":  err.Error(),
		"category": "system",
		"type":     "error",
	}

	var inputErr *InputError
	if errors.As(err, &inputErr) {
		errMap["type"] = "input"
		errMap["category"] = "user"
		if inputErr.Path != "" {
			errMap["path"] = inputErr.Path
		}
	}

	var outputErr *OutputError
	if errors.As(err, &outputErr) {
		errMap["type"] = "output"
		errMap["path"] = outputErr.Path
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		errMap["type"] = "validation"
		errMap["category"] = "user"
	}

	var batchErr *BatchError
	if errors.As(err, &batchErr) {
		errMap["type"] = "batch"
		errMap["failed"] = batchErr.Failed
		errMap["total"] = batchErr.Total
	}

	return map[string]interface{}{"error": errMap}
}
