package runner

import "github.com/yaklabco/chatmark/pkg/msgast"

// FileOutcome is the result of parsing one message file.
type FileOutcome struct {
	// Path is the file path that was parsed.
	Path string

	// Size is the number of bytes read from the file.
	Size int64

	// Content is the parsed message tree. Zero-valued when Error is set.
	Content msgast.MessageContent

	// Stats counts the nodes in Content.
	Stats msgast.Stats

	// Error is set if the file could not be read. Parsing itself never
	// fails; malformed input surfaces as ParseError nodes in Content.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesParsed is the number of files successfully read and parsed.
	FilesParsed int

	// FilesErrored is the number of files that could not be read.
	FilesErrored int

	// Blocks is the total block-element count across all parsed files.
	Blocks int

	// Inlines is the total inline-element count across all parsed files.
	Inlines int

	// ErrorNodes is the total ParseError count across all parsed files.
	ErrorNodes int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrorNodes reports whether any parsed tree contains a ParseError.
func (r *Result) HasErrorNodes() bool {
	if r == nil {
		return false
	}
	return r.Stats.ErrorNodes > 0
}

// HasReadErrors reports whether any file could not be read.
func (r *Result) HasReadErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesParsed++
	r.Stats.Blocks += outcome.Stats.Blocks
	r.Stats.Inlines += outcome.Stats.Inlines
	r.Stats.ErrorNodes += outcome.Stats.Errors
}
