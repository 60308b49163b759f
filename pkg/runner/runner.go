package runner

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/yaklabco/chatmark/pkg/fsutil"
	"github.com/yaklabco/chatmark/pkg/parser"
)

// Run discovers message files under opts.Paths and parses them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate
// stats.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Parses files concurrently using a worker pool
//   - Aggregates outcomes into a single Result ordered by path
//   - Respects context cancellation
//
// Parsing is pure, so workers share nothing but the channels.
func Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	// Don't use more workers than files.
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, workCh, outCh, opts.MaxFileSize)
		}()
	}

	// Feed work in a separate goroutine.
	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	// Close outCh when all workers are done.
	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers complete out of order; reassemble by discovery order.
	outcomes := make(map[string]FileOutcome, len(files))

	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// RunReader parses a single stream, such as stdin, into a one-entry Result.
// The path is used for display only; read failures become the outcome's
// Error just as they do for files.
func RunReader(ctx context.Context, path string, input io.Reader, maxSize int64) (*Result, error) {
	outcome := FileOutcome{Path: path}

	content, err := fsutil.ReadAll(ctx, input, maxSize)
	if err != nil {
		outcome.Error = err
	} else {
		outcome.Size = int64(len(content))
		outcome.Content = parser.ParseBytes(content)
		outcome.Stats = outcome.Content.Count()
	}

	result := &Result{}
	result.Stats.FilesDiscovered = 1
	result.accumulate(outcome)

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker parses files from workCh and sends outcomes to outCh.
func worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, maxSize int64) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := parseFile(ctx, path, maxSize)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// parseFile reads and parses one message file.
func parseFile(ctx context.Context, path string, maxSize int64) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, info, err := fsutil.ReadFile(ctx, path, maxSize)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	outcome.Size = info.Size
	outcome.Content = parser.ParseBytes(content)
	outcome.Stats = outcome.Content.Count()

	return outcome
}
