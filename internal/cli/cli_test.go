package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/yaklabco/chatmark/internal/cli"
	"github.com/yaklabco/chatmark/pkg/runner"
)

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}

	cmd := cli.NewRootCommand(info)

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "chatmark" {
		t.Errorf("expected Use to be 'chatmark', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	expectedSubcommands := []string{"parse", "version"}

	for _, name := range expectedSubcommands {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestParseCommandFlags(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)
	parseCmd, _, err := cmd.Find([]string{"parse"})
	if err != nil {
		t.Fatalf("parse command not found: %v", err)
	}

	expectedFlags := []string{
		"format",
		"jobs",
		"strict",
		"detect-lang",
		"max-size",
		"compact",
	}

	for _, flagName := range expectedFlags {
		flag := parseCmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("expected flag %q to exist on parse command", flagName)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	expectedFlags := []string{"debug", "color"}

	for _, flagName := range expectedFlags {
		flag := cmd.PersistentFlags().Lookup(flagName)
		if flag == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2024-01-01",
	}

	cmd := cli.NewRootCommand(info)
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	// Text mode writes through charmbracelet/log directly to stdout, so only
	// the error path is observable here.
}

func TestParseCommandAcceptsArbitraryArgs(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)
	parseCmd, _, err := cmd.Find([]string{"parse"})
	if err != nil {
		t.Fatalf("parse command not found: %v", err)
	}

	err = parseCmd.Args(parseCmd, []string{"file1.md", "file2.md", "msgs/"})
	if err != nil {
		t.Errorf("parse command should accept arbitrary args, got error: %v", err)
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result *runner.Result
		strict bool
		want   int
	}{
		{
			name:   "nil result",
			result: nil,
			want:   cli.ExitSuccess,
		},
		{
			name:   "clean run",
			result: &runner.Result{Stats: runner.Stats{FilesParsed: 2}},
			want:   cli.ExitSuccess,
		},
		{
			name:   "error nodes without strict",
			result: &runner.Result{Stats: runner.Stats{FilesParsed: 1, ErrorNodes: 3}},
			want:   cli.ExitSuccess,
		},
		{
			name:   "error nodes with strict",
			result: &runner.Result{Stats: runner.Stats{FilesParsed: 1, ErrorNodes: 3}},
			strict: true,
			want:   cli.ExitParseErrors,
		},
		{
			name:   "read errors outrank strict",
			result: &runner.Result{Stats: runner.Stats{FilesErrored: 1, ErrorNodes: 3}},
			strict: true,
			want:   cli.ExitIOError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := cli.ExitCodeFromResult(tt.result, tt.strict)
			if got != tt.want {
				t.Errorf("ExitCodeFromResult() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error", err: nil, want: cli.ExitSuccess},
		{name: "parse errors sentinel", err: cli.ErrParseErrorsFound, want: cli.ExitParseErrors},
		{name: "wrapped parse errors sentinel", err: fmt.Errorf("run: %w", cli.ErrParseErrorsFound), want: cli.ExitParseErrors},
		{name: "unreadable inputs sentinel", err: cli.ErrUnreadableInputs, want: cli.ExitIOError},
		{name: "unknown command", err: errors.New(`unknown command "bogus" for "chatmark"`), want: cli.ExitInvalidUsage},
		{name: "anything else", err: errors.New("boom"), want: cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := cli.ExitCode(tt.err)
			if got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestSilentError(t *testing.T) {
	t.Parallel()

	if !cli.SilentError(cli.ErrParseErrorsFound) {
		t.Error("ErrParseErrorsFound should be silent")
	}
	if !cli.SilentError(cli.ErrUnreadableInputs) {
		t.Error("ErrUnreadableInputs should be silent")
	}
	if cli.SilentError(errors.New("boom")) {
		t.Error("ordinary errors should not be silent")
	}
}
