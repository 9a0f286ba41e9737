package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/salmonumbrella/txt2md/internal/output"
)

func TestValidateErrorFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"", false},
		{"auto", false},
		{"text", false},
		{"json", false},
		{"yaml", false},
		{"AUTO", false},
		{" json ", false},
		{"xml", true},
		{"ndjson", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := validateErrorFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateErrorFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestEffectiveErrorFormat(t *testing.T) {
	tests := []struct {
		name         string
		errorFormat  string
		outputFormat output.Format
		want         string
	}{
		{"empty defaults to text", "", output.FormatText, "text"},
		{"auto with json report", "auto", output.FormatJSON, "json"},
		{"auto with ndjson report", "auto", output.FormatNDJSON, "json"},
		{"auto with yaml report", "auto", output.FormatYAML, "yaml"},
		{"auto with table report", "auto", output.FormatTable, "text"},
		{"explicit wins", "yaml", output.FormatJSON, "yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := output.WithFormat(context.Background(), tt.outputFormat)
			ctx = WithErrorFormat(ctx, tt.errorFormat)
			if got := effectiveErrorFormat(ctx); got != tt.want {
				t.Errorf("effectiveErrorFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEffectiveErrorFormat_NilContext(t *testing.T) {
	if got := effectiveErrorFormat(nil); got != "text" { //nolint:staticcheck // testing nil context behavior
		t.Errorf("effectiveErrorFormat(nil) = %q, want text", got)
	}
}

func TestBuildErrorEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType string
		wantCat  string
		wantPath string
	}{
		{"plain", errors.New("boom"), "error", "system", ""},
		{"input", &InputError{Path: "a.txt", Err: errors.New("missing")}, "input", "user", "a.txt"},
		{"output", &OutputError{Path: "out.md", Err: errors.New("denied")}, "output", "system", "out.md"},
		{"usage", usageErrorf("bad flag"), "validation", "user", ""},
		{"batch", &BatchError{Failed: 1, Total: 3}, "batch", "system", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := buildErrorEnvelope(tt.err)
			inner, ok := env["error"].(map[string]interface{})
			if !ok {
				t.Fatalf("missing error object: %v", env)
			}
			if inner["type"] != tt.wantType || inner["category"] != tt.wantCat {
				t.Fatalf("type/category = %v/%v, want %s/%s", inner["type"], inner["category"], tt.wantType, tt.wantCat)
			}
			if tt.wantPath != "" && inner["path"] != tt.wantPath {
				t.Fatalf("path = %v, want %s", inner["path"], tt.wantPath)
			}
			if inner["message"] != tt.err.Error() {
				t.Fatalf("message = %v", inner["message"])
			}
		})
	}
}

func TestBuildErrorEnvelope_BatchCounts(t *testing.T) {
	env := buildErrorEnvelope(&BatchError{Failed: 2, Total: 5})
	inner := env["error"].(map[string]interface{})
	if inner["failed"] != 2 || inner["total"] != 5 {
		t.Fatalf("unexpected counts: %v", inner)
	}
}

func TestPrintCommandError(t *testing.T) {
	tests := []struct {
		name   string
		format string
		check  func(t *testing.T, s string)
	}{
		{
			name:   "text",
			format: "text",
			check: func(t *testing.T, s string) {
				if s != "failed to read a.txt: missing\n" {
					t.Fatalf("stderr = %q", s)
				}
			},
		},
		{
			name:   "json",
			format: "json",
			check: func(t *testing.T, s string) {
				var env map[string]map[string]interface{}
				if err := json.Unmarshal([]byte(s), &env); err != nil {
					t.Fatalf("parse %q: %v", s, err)
				}
				if env["error"]["type"] != "input" {
					t.Fatalf("unexpected envelope: %v", env)
				}
			},
		},
		{
			name:   "yaml",
			format: "yaml",
			check: func(t *testing.T, s string) {
				var env map[string]map[string]interface{}
				if err := yaml.Unmarshal([]byte(s), &env); err != nil {
					t.Fatalf("parse %q: %v", s, err)
				}
				if env["error"]["path"] != "a.txt" {
					t.Fatalf("unexpected envelope: %v", env)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errBuf := &bytes.Buffer{}
			ctx := withIO(context.Background(), nil, nil, errBuf)
			ctx = WithErrorFormat(ctx, tt.format)
			printCommandError(ctx, &InputError{Path: "a.txt", Err: errors.New("missing")})
			tt.check(t, errBuf.String())
		})
	}
}

func TestInputErrorMessage(t *testing.T) {
	err := &InputError{Err: errEmptySource}
	if err.Error() != "empty input source" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !errors.Is(err, errEmptySource) {
		t.Fatal("expected InputError to unwrap")
	}
	withPath := &InputError{Path: "notes.txt", Err: errors.New("denied")}
	if !strings.HasPrefix(withPath.Error(), "failed to read notes.txt") {
		t.Fatalf("Error() = %q", withPath.Error())
	}
}
