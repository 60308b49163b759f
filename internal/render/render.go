// Package render formats parsed message trees for CLI output.
package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/chatmark/pkg/runner"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Renderer formats a runner result for output.
// Renderers are stateless and only handle presentation logic.
type Renderer interface {
	// Render writes the formatted result to the configured output.
	Render(ctx context.Context, result *runner.Result) error
}

// Options configures renderer behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output for the tree format.
	// Values: "auto" (default), "always", "never"
	Color string

	// Compact uses minified output where applicable (JSON).
	Compact bool

	// DetectLang annotates code blocks with language guesses.
	DetectLang bool

	// ShowSummary appends aggregate statistics after the per-file output.
	ShowSummary bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are shown as-is.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatTree,
		Color:       "auto",
		ShowSummary: true,
	}
}

// New creates a Renderer for the specified options.
func New(opts Options) (Renderer, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatTree
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatJSON:
		return NewJSONRenderer(opts), nil
	case FormatText:
		return NewTextRenderer(opts), nil
	case FormatTree:
		return NewTreeRenderer(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// displayPath relativizes paths under the working directory for output.
func displayPath(path, workingDir string) string {
	if workingDir == "" {
		return path
	}
	rel, err := filepath.Rel(workingDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
