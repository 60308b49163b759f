package render

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/chatmark/pkg/msgast"
	"github.com/yaklabco/chatmark/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string      `json:"version"`
	Files   []JSONFile  `json:"files"`
	Summary JSONSummary `json:"summary"`
}

// JSONFile represents a single file's parse result. Content carries the
// full tree; it is omitted when the file could not be read.
type JSONFile struct {
	Path        string                 `json:"path"`
	Size        int64                  `json:"size,omitempty"`
	Blocks      int                    `json:"blocks"`
	Inlines     int                    `json:"inlines"`
	ParseErrors int                    `json:"parseErrors"`
	Error       string                 `json:"error,omitempty"`
	Content     *msgast.MessageContent `json:"content,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int `json:"filesDiscovered"`
	FilesParsed     int `json:"filesParsed"`
	FilesErrored    int `json:"filesErrored"`
	Blocks          int `json:"blocks"`
	Inlines         int `json:"inlines"`
	ParseErrors     int `json:"parseErrors"`
}

// JSONRenderer formats results as JSON.
type JSONRenderer struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONRenderer creates a new JSON renderer.
func NewJSONRenderer(opts Options) *JSONRenderer {
	return &JSONRenderer{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Render implements Renderer.
func (r *JSONRenderer) Render(_ context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	return nil
}

func (r *JSONRenderer) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFile, 0),
	}

	if result == nil {
		return output
	}

	// Pre-allocate if we have files
	if len(result.Files) > 0 {
		output.Files = make([]JSONFile, 0, len(result.Files))
	}

	for _, file := range result.Files {
		entry := JSONFile{
			Path: displayPath(file.Path, r.opts.WorkingDir),
			Size: file.Size,
		}

		if file.Error != nil {
			entry.Error = file.Error.Error()
		} else {
			entry.Blocks = file.Stats.Blocks
			entry.Inlines = file.Stats.Inlines
			entry.ParseErrors = file.Stats.Errors
			content := file.Content
			entry.Content = &content
		}

		output.Files = append(output.Files, entry)
	}

	output.Summary = JSONSummary{
		FilesDiscovered: result.Stats.FilesDiscovered,
		FilesParsed:     result.Stats.FilesParsed,
		FilesErrored:    result.Stats.FilesErrored,
		Blocks:          result.Stats.Blocks,
		Inlines:         result.Stats.Inlines,
		ParseErrors:     result.Stats.ErrorNodes,
	}

	return output
}
