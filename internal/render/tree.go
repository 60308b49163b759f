package render

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/chatmark/internal/ui/pretty"
	"github.com/yaklabco/chatmark/pkg/langdetect"
	"github.com/yaklabco/chatmark/pkg/runner"
)

// TreeRenderer formats results as styled terminal trees.
type TreeRenderer struct {
	opts    Options
	styles  *pretty.Styles
	printer *pretty.TreePrinter
	bw      *bufio.Writer
}

// NewTreeRenderer creates a new tree renderer.
func NewTreeRenderer(opts Options) *TreeRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	// Width probing must see the raw writer, not the bufio wrapper.
	printer := pretty.NewTreePrinter(styles, opts.Writer)
	if opts.DetectLang {
		printer.DetectLang = langdetect.DetectLines
	}

	return &TreeRenderer{
		opts:    opts,
		styles:  styles,
		printer: printer,
		bw:      bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Render implements Renderer.
func (r *TreeRenderer) Render(_ context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("no files to parse"))
		}
		return nil
	}

	for idx, file := range result.Files {
		if idx > 0 {
			fmt.Fprintln(r.bw)
		}

		path := displayPath(file.Path, r.opts.WorkingDir)
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Failure.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		fmt.Fprint(r.bw, r.printer.FormatFileHeader(path, file.Stats))
		fmt.Fprint(r.bw, r.printer.Format(file.Content))
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return nil
}
