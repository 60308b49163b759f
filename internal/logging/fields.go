package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"

	// Run configuration fields.
	FieldFormat     = "format"
	FieldJobs       = "jobs"
	FieldStrict     = "strict"
	FieldMaxSize    = "max_size"
	FieldDetectLang = "detect_lang"

	// Parse statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesParsed     = "files_parsed"
	FieldFilesErrored    = "files_errored"
	FieldBlocks          = "blocks"
	FieldInlines         = "inlines"
	FieldErrorNodes      = "error_nodes"
	FieldBytes           = "bytes"

	// Version fields.
	FieldVersion   = "version"
	FieldCommit    = "commit"
	FieldBuilt     = "built"
	FieldGoVersion = "go"
	FieldPlatform  = "platform"
)
