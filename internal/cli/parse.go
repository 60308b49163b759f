package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/chatmark/internal/logging"
	"github.com/yaklabco/chatmark/internal/render"
	"github.com/yaklabco/chatmark/pkg/runner"
)

// stdinName is the display path used for trees parsed from standard input.
const stdinName = "<stdin>"

type parseFlags struct {
	format     string
	jobs       int
	strict     bool
	detectLang bool
	maxSize    int64
	compact    bool
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [paths...]",
		Short: "Parse message files and print their syntax trees",
		Long:  parseLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "tree", "output format: tree, json, text")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit nonzero when any tree contains an error node")
	cmd.Flags().BoolVar(&flags.detectLang, "detect-lang", false, "annotate code blocks with detected languages")
	cmd.Flags().Int64Var(&flags.maxSize, "max-size", 0, "per-input read cap in bytes (0 = unlimited)")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "single-line JSON output")

	return cmd
}

const parseLongDescription = `Parse chat message Markdown into position-annotated syntax trees.

With no arguments (or a single "-"), reads one message from standard input.
Paths may name files or directories; directories are walked for .md and
.markdown files. Malformed constructs never abort a parse, they appear in
the tree as error nodes.

Examples:
  cat msg.md | chatmark parse          # Parse stdin
  chatmark parse messages/             # Parse a directory
  chatmark parse msg.md --format json  # Machine-readable AST
  chatmark parse --format text msg.md  # Plain outline, no styling
  chatmark parse --strict fixtures/    # Fail CI on any error node
  chatmark parse --detect-lang msg.md  # Annotate code block languages`

func runParse(cmd *cobra.Command, args []string, flags *parseFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if flags.maxSize < 0 {
		return &usageError{err: fmt.Errorf("--max-size must not be negative, got %d", flags.maxSize)}
	}

	format, err := render.ParseFormat(flags.format)
	if err != nil {
		return &usageError{err: err}
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	var result *runner.Result
	if readsStdin(args) {
		logger.Debug("parsing standard input", logging.FieldMaxSize, flags.maxSize)
		result, err = runner.RunReader(ctx, stdinName, cmd.InOrStdin(), flags.maxSize)
	} else {
		runOpts := runner.Options{
			Paths:       args,
			WorkingDir:  workDir,
			Extensions:  runner.DefaultExtensions(),
			Jobs:        flags.jobs,
			MaxFileSize: flags.maxSize,
		}

		logger.Debug("starting parse run",
			logging.FieldPaths, runOpts.Paths,
			logging.FieldWorkingDir, runOpts.WorkingDir,
			logging.FieldJobs, runOpts.Jobs,
			logging.FieldFormat, flags.format,
			logging.FieldStrict, flags.strict,
		)

		result, err = runner.Run(ctx, runOpts)
	}
	if err != nil {
		// Missing or unreadable paths fail discovery before any parsing.
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			logger.Error("cannot read inputs", logging.FieldError, err)
			return ErrUnreadableInputs
		}
		return fmt.Errorf("parse run: %w", err)
	}

	logger.Debug("parse run complete",
		logging.FieldFilesParsed, result.Stats.FilesParsed,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldBlocks, result.Stats.Blocks,
		logging.FieldInlines, result.Stats.Inlines,
		logging.FieldErrorNodes, result.Stats.ErrorNodes,
	)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto" // Default to auto if flag retrieval fails
	}

	rend, err := render.New(render.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode,
		Compact:     flags.compact,
		DetectLang:  flags.detectLang,
		ShowSummary: true,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	if err := rend.Render(ctx, result); err != nil {
		logger.Error("render failed", logging.FieldError, err)
		return fmt.Errorf("render results: %w", err)
	}

	switch ExitCodeFromResult(result, flags.strict) {
	case ExitIOError:
		return ErrUnreadableInputs
	case ExitParseErrors:
		return ErrParseErrorsFound
	}

	return nil
}

// readsStdin reports whether the argument list selects standard input.
func readsStdin(args []string) bool {
	if len(args) == 0 {
		return true
	}
	return len(args) == 1 && args[0] == "-"
}
