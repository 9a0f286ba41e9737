package cmd

import (
	"context"
	"io"
	"os"
	"strings"
)

const (
	originInline = "inline"
	originStdin  = "stdin"
)

// readInputSource reads content from a file path or stdin when source is "-".
// The content is returned untouched: leading indentation and trailing
// newlines matter to the converter.
func readInputSource(source string, stdin io.Reader) (string, error) {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return "", &InputError{Err: errEmptySource}
	}

	var r io.Reader
	if trimmed == "-" {
		if stdin != nil {
			r = stdin
		} else {
			r = os.Stdin
		}
	} else {
		file, err := os.Open(trimmed)
		if err != nil {
			return "", &InputError{Path: trimmed, Err: err}
		}
		defer file.Close()
		r = file
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", &InputError{Path: trimmed, Err: err}
	}

	return string(data), nil
}

func inputHasData(r io.Reader) bool {
	if r == nil {
		r = os.Stdin
	}
	if file, ok := r.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) == 0
	}
	return true
}

// readSource picks the text to convert from inline arguments, --input, or
// piped stdin, in that order. origin names where it came from: a file path,
// "stdin" or "inline".
func readSource(ctx context.Context, input string, args []string) (text, origin string, err error) {
	stdin := stdinFromContext(ctx)

	if strings.TrimSpace(input) != "" && len(args) > 0 {
		return "", "", usageErrorf("use only one of --input or inline text")
	}

	if len(args) > 0 {
		return strings.Join(args, " "), originInline, nil
	}

	if strings.TrimSpace(input) != "" {
		text, err := readInputSource(input, stdin)
		if err != nil {
			return "", "", err
		}
		origin = strings.TrimSpace(input)
		if origin == "-" {
			origin = originStdin
		}
		return text, origin, nil
	}

	if inputHasData(stdin) {
		text, err := readInputSource("-", stdin)
		if err != nil {
			return "", "", err
		}
		return text, originStdin, nil
	}

	return "", "", usageErrorf("input required (use text arguments, --input, or stdin)")
}

func isFileOrigin(origin string) bool {
	return origin != originInline && origin != originStdin
}
