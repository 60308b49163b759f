// Package runner orchestrates parsing many message files at once.
package runner

// Options controls discovery and parallelism for a run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to parse.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// picked up when walking directories. Defaults to [".md", ".markdown"]
	// via DefaultExtensions(). Explicitly named files are always accepted.
	Extensions []string

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// MaxFileSize caps how many bytes a single file may hold before it is
	// refused instead of parsed. 0 means no cap.
	MaxFileSize int64
}

// DefaultExtensions returns the default set of message file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
