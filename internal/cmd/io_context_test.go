package cmd

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
)

func TestWithIO(t *testing.T) {
	in := strings.NewReader("input")
	out := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}

	ctx := withIO(context.Background(), in, out, errBuf)

	if stdinFromContext(ctx) != in {
		t.Errorf("expected stdin to be the provided reader")
	}
	if stdoutFromContext(ctx) != out {
		t.Errorf("expected stdout to be the provided buffer")
	}
	if stderrFromContext(ctx) != errBuf {
		t.Errorf("expected stderr to be the provided buffer")
	}
}

func TestIOFromContext_Fallbacks(t *testing.T) {
	ctx := context.Background()
	if stdinFromContext(ctx) != os.Stdin {
		t.Errorf("expected os.Stdin")
	}
	if stdoutFromContext(ctx) != os.Stdout {
		t.Errorf("expected os.Stdout")
	}
	if stderrFromContext(nil) != os.Stderr { //nolint:staticcheck // testing nil context behavior
		t.Errorf("expected os.Stderr")
	}
}

func TestIOFromContext_PartialState(t *testing.T) {
	out := &bytes.Buffer{}
	ctx := withIO(context.Background(), nil, out, nil)
	if stdoutFromContext(ctx) != out {
		t.Errorf("expected stdout to be the provided buffer")
	}
	if stdinFromContext(ctx) != os.Stdin || stderrFromContext(ctx) != os.Stderr {
		t.Errorf("expected nil streams to fall back to the process streams")
	}
}
