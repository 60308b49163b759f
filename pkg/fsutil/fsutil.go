// Package fsutil reads message files with guard rails. The parser holds an
// entire message in memory, so reads enforce an up-front size cap and map
// OS failures onto sentinel errors the CLI can categorize.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// Sentinel errors for categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrTooLarge indicates the input exceeds the configured size cap.
	ErrTooLarge = errors.New("input exceeds size limit")
)

// FileInfo captures the state of a message file at read time.
type FileInfo struct {
	// Path is the path the file was read from.
	Path string

	// Size is the file size in bytes.
	Size int64

	// ModTime is the file's modification time.
	ModTime time.Time
}

// ReadFile reads one message file and returns its content along with
// metadata. Files larger than maxSize bytes are refused with ErrTooLarge
// before any content is read; a maxSize of zero disables the cap.
func ReadFile(ctx context.Context, path string, maxSize int64) ([]byte, *FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
		}
		if os.IsPermission(err) {
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
		}
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	if maxSize > 0 && stat.Size() > maxSize {
		return nil, nil, fmt.Errorf("%w: %s: %d bytes (limit %d)", ErrTooLarge, path, stat.Size(), maxSize)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
		}
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	info := &FileInfo{
		Path:    path,
		Size:    stat.Size(),
		ModTime: stat.ModTime(),
	}

	return content, info, nil
}

// ReadAll drains r, refusing to read past maxSize bytes. It serves message
// input on stdin, where no stat-based pre-check is possible. A maxSize of
// zero disables the cap.
func ReadAll(ctx context.Context, r io.Reader, maxSize int64) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("read input: %w", ctx.Err())
	default:
	}

	if maxSize <= 0 {
		content, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return content, nil
	}

	// Read one byte past the cap so overflow is distinguishable from an
	// input that is exactly maxSize long.
	content, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if int64(len(content)) > maxSize {
		return nil, fmt.Errorf("%w: input over %d bytes", ErrTooLarge, maxSize)
	}
	return content, nil
}
