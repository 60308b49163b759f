package cli

import (
	"errors"
	"strings"

	"github.com/yaklabco/chatmark/pkg/runner"
)

// Exit codes for chatmark.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitParseErrors indicates strict mode found error nodes in a tree.
	ExitParseErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrParseErrorsFound is returned when strict mode finds error nodes. The
// renderer already showed them, so the error itself carries no message worth
// logging.
var ErrParseErrorsFound = errors.New("parse errors found")

// ErrUnreadableInputs is returned when one or more inputs could not be read.
// Like ErrParseErrorsFound, it only signals the exit code.
var ErrUnreadableInputs = errors.New("unreadable inputs")

// usageError marks command-line mistakes so main exits with ExitInvalidUsage.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

// ExitCodeFromResult determines the exit code for a completed run. Unreadable
// inputs outrank strict-mode error nodes: the run never saw the whole input.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasReadErrors() {
		return ExitIOError
	}

	if strict && result.HasErrorNodes() {
		return ExitParseErrors
	}

	return ExitSuccess
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usage *usageError
	if errors.As(err, &usage) {
		return ExitInvalidUsage
	}
	// Cobra reports unknown subcommands as plain errors.
	if strings.HasPrefix(err.Error(), "unknown command") {
		return ExitInvalidUsage
	}

	if errors.Is(err, ErrParseErrorsFound) {
		return ExitParseErrors
	}
	if errors.Is(err, ErrUnreadableInputs) {
		return ExitIOError
	}

	return ExitInternalError
}

// SilentError reports whether err only signals an exit code and should not
// be logged by main.
func SilentError(err error) bool {
	return errors.Is(err, ErrParseErrorsFound) || errors.Is(err, ErrUnreadableInputs)
}
