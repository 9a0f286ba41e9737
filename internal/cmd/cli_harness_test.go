package cmd

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// cliHarness drives rootCmd in-process with captured stdio.
type cliHarness struct {
	t       *testing.T
	stdin   string
	tty     bool
	env     map[string]string
	cfgPath string
}

func newHarness(t *testing.T) *cliHarness {
	t.Helper()
	return &cliHarness{
		t:       t,
		tty:     true,
		env:     map[string]string{},
		cfgPath: filepath.Join(t.TempDir(), "config.yaml"),
	}
}

func (h *cliHarness) run(args ...string) (string, string, error) {
	h.t.Helper()
	restore := snapshotCLIState()
	defer restore()

	out := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	in := strings.NewReader(h.stdin)

	rootCmd.SetOut(out)
	rootCmd.SetErr(errBuf)
	rootCmd.SetIn(in)
	setContextAll(rootCmd, withIO(context.Background(), in, out, errBuf))

	envGet = func(key string) string { return h.env[key] }
	tty := h.tty
	isTerminalFunc = func(io.Writer) bool { return tty }

	rootCmd.SetArgs(append([]string{"--config", h.cfgPath}, args...))
	err := Execute()
	return out.String(), errBuf.String(), err
}

func snapshotCLIState() func() {
	prevConfig := configFile
	prevReportFmt := reportFmt
	prevReportType := reportType
	prevQueryExpr := queryExpr
	prevQueryFile := queryFile
	prevErrorFmt := errorFmt
	prevLogLevel := logLevel
	prevDebug := debug
	prevQuiet := quietFlag
	prevResultLimit := resultLimit
	prevResultSort := resultSort
	prevResultDesc := resultDesc

	prevConvert := convertFlags
	prevBatch := batchFlags
	prevPreview := previewFlags
	prevStats := statsFlags

	prevEnvGet := envGet
	prevIsTerminal := isTerminalFunc

	prevOut := rootCmd.OutOrStdout()
	prevErr := rootCmd.ErrOrStderr()
	prevIn := rootCmd.InOrStdin()
	prevCtx := rootCmd.Context()

	return func() {
		configFile = prevConfig
		reportFmt = prevReportFmt
		reportType = prevReportType
		queryExpr = prevQueryExpr
		queryFile = prevQueryFile
		errorFmt = prevErrorFmt
		logLevel = prevLogLevel
		debug = prevDebug
		quietFlag = prevQuiet
		resultLimit = prevResultLimit
		resultSort = prevResultSort
		resultDesc = prevResultDesc

		convertFlags = prevConvert
		batchFlags = prevBatch
		previewFlags = prevPreview
		statsFlags = prevStats

		envGet = prevEnvGet
		isTerminalFunc = prevIsTerminal

		rootCmd.SetOut(prevOut)
		rootCmd.SetErr(prevErr)
		rootCmd.SetIn(prevIn)
		rootCmd.SetContext(prevCtx)
		rootCmd.SetArgs(nil)
		resetFlagChanges(rootCmd)
	}
}

func resetFlagChanges(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) { f.Changed = false }
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlagChanges(sub)
	}
}

// setContextAll replaces the context left on subcommands by earlier runs.
func setContextAll(cmd *cobra.Command, ctx context.Context) {
	cmd.SetContext(ctx)
	for _, sub := range cmd.Commands() {
		setContextAll(sub, ctx)
	}
}
