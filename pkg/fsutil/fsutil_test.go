package fsutil_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/chatmark/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and metadata", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "message.md")
		content := []byte("# Hi\n\nhello world\n")

		if err := os.WriteFile(path, content, 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		ctx := context.Background()
		got, info, err := fsutil.ReadFile(ctx, path, 0)

		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		if !bytes.Equal(got, content) {
			t.Errorf("content = %q, want %q", got, content)
		}

		if info.Path != path {
			t.Errorf("Path = %q, want %q", info.Path, path)
		}

		if info.Size != int64(len(content)) {
			t.Errorf("Size = %d, want %d", info.Size, len(content))
		}

		if info.ModTime.IsZero() {
			t.Error("ModTime should be set")
		}
	})

	t.Run("refuses file over the cap", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "big.md")

		if err := os.WriteFile(path, []byte(strings.Repeat("x", 100)), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		ctx := context.Background()
		_, _, err := fsutil.ReadFile(ctx, path, 99)

		if !errors.Is(err, fsutil.ErrTooLarge) {
			t.Fatalf("ReadFile() error = %v, want ErrTooLarge", err)
		}
	})

	t.Run("accepts file exactly at the cap", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "fit.md")

		if err := os.WriteFile(path, []byte(strings.Repeat("x", 100)), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		ctx := context.Background()
		got, _, err := fsutil.ReadFile(ctx, path, 100)

		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if len(got) != 100 {
			t.Errorf("len(content) = %d, want 100", len(got))
		}
	})

	t.Run("maps missing file to ErrNotFound", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		_, _, err := fsutil.ReadFile(ctx, "/nonexistent/path/message.md", 0)

		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Fatalf("ReadFile() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("maps directory to ErrIsDirectory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		ctx := context.Background()
		_, _, err := fsutil.ReadFile(ctx, dir, 0)

		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Fatalf("ReadFile() error = %v, want ErrIsDirectory", err)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, "anypath", 0)

		if err == nil {
			t.Fatal("expected error for cancelled context")
		}
	})
}

func TestReadAll(t *testing.T) {
	t.Parallel()

	t.Run("reads input under the cap", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		got, err := fsutil.ReadAll(ctx, strings.NewReader("hello"), 10)

		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if string(got) != "hello" {
			t.Errorf("content = %q, want %q", got, "hello")
		}
	})

	t.Run("accepts input exactly at the cap", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		got, err := fsutil.ReadAll(ctx, strings.NewReader("12345"), 5)

		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if string(got) != "12345" {
			t.Errorf("content = %q, want %q", got, "12345")
		}
	})

	t.Run("refuses input over the cap", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		_, err := fsutil.ReadAll(ctx, strings.NewReader("123456"), 5)

		if !errors.Is(err, fsutil.ErrTooLarge) {
			t.Fatalf("ReadAll() error = %v, want ErrTooLarge", err)
		}
	})

	t.Run("zero cap reads everything", func(t *testing.T) {
		t.Parallel()

		big := strings.Repeat("line\n", 10000)
		ctx := context.Background()
		got, err := fsutil.ReadAll(ctx, strings.NewReader(big), 0)

		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if len(got) != len(big) {
			t.Errorf("len(content) = %d, want %d", len(got), len(big))
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fsutil.ReadAll(ctx, strings.NewReader("x"), 0)

		if err == nil {
			t.Fatal("expected error for cancelled context")
		}
	})
}
