package cmd

import (
	"context"
	"io"
	"os"
)

type ioKey struct{}

type ioState struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func withIO(ctx context.Context, in io.Reader, out, err io.Writer) context.Context {
	return context.WithValue(ctx, ioKey{}, ioState{in: in, out: out, err: err})
}

func ioFromContext(ctx context.Context) (ioState, bool) {
	if ctx == nil {
		return ioState{}, false
	}
	v, ok := ctx.Value(ioKey{}).(ioState)
	return v, ok
}

func stdinFromContext(ctx context.Context) io.Reader {
	if v, ok := ioFromContext(ctx); ok && v.in != nil {
		return v.in
	}
	return os.Stdin
}

func stdoutFromContext(ctx context.Context) io.Writer {
	if v, ok := ioFromContext(ctx); ok && v.out != nil {
		return v.out
	}
	return os.Stdout
}

func stderrFromContext(ctx context.Context) io.Writer {
	if v, ok := ioFromContext(ctx); ok && v.err != nil {
		return v.err
	}
	return os.Stderr
}
