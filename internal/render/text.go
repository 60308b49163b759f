package render

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/chatmark/internal/ui/pretty"
	"github.com/yaklabco/chatmark/pkg/langdetect"
	"github.com/yaklabco/chatmark/pkg/msgast"
	"github.com/yaklabco/chatmark/pkg/runner"
)

// TextRenderer writes plain outlines, one node per line with two-space
// indents. The output never carries ANSI codes, so it is safe to diff
// or feed to other tools.
type TextRenderer struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextRenderer creates a new text renderer.
func NewTextRenderer(opts Options) *TextRenderer {
	return &TextRenderer{
		opts:   opts,
		styles: pretty.NewStyles(false),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Render implements Renderer.
func (r *TextRenderer) Render(_ context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, "no files to parse")
		}
		return nil
	}

	for idx, file := range result.Files {
		if idx > 0 {
			fmt.Fprintln(r.bw)
		}

		path := displayPath(file.Path, r.opts.WorkingDir)
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: error: %v\n", path, file.Error)
			continue
		}

		fmt.Fprintf(r.bw, "%s:\n", path)
		for _, blk := range file.Content.Content {
			r.writeBlock(blk, 1)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return nil
}

func (r *TextRenderer) writeBlock(el msgast.RangedBlockElement, depth int) {
	indent := strings.Repeat("  ", depth)
	switch e := el.Element.(type) {
	case msgast.Paragraph:
		fmt.Fprintf(r.bw, "%sparagraph [%d,%d)\n", indent, el.Start, el.End)
		for _, c := range e.Children {
			r.writeInline(c, depth+1)
		}
	case msgast.Heading:
		fmt.Fprintf(r.bw, "%sheading [%d,%d)\n", indent, el.Start, el.End)
		for _, c := range e.Children {
			r.writeInline(c, depth+1)
		}
	case msgast.Quote:
		fmt.Fprintf(r.bw, "%squote [%d,%d)\n", indent, el.Start, el.End)
		for _, c := range e.Children {
			r.writeBlock(c, depth+1)
		}
	case msgast.UnorderedList:
		fmt.Fprintf(r.bw, "%sulist [%d,%d)\n", indent, el.Start, el.End)
		for _, item := range e.Items {
			fmt.Fprintf(r.bw, "%s  item\n", indent)
			for _, c := range item {
				r.writeBlock(c, depth+2)
			}
		}
	case msgast.OrderedList:
		fmt.Fprintf(r.bw, "%solist start=%s [%d,%d)\n", indent, e.Start, el.Start, el.End)
		for _, item := range e.Items {
			fmt.Fprintf(r.bw, "%s  item\n", indent)
			for _, c := range item {
				r.writeBlock(c, depth+2)
			}
		}
	case msgast.Table:
		fmt.Fprintf(r.bw, "%stable [%d,%d)\n", indent, el.Start, el.End)
		fmt.Fprintf(r.bw, "%s  head\n", indent)
		for _, cell := range e.Head {
			r.writeCell(cell, depth+2)
		}
		for _, row := range e.Rows {
			fmt.Fprintf(r.bw, "%s  row\n", indent)
			for _, cell := range row {
				r.writeCell(cell, depth+2)
			}
		}
	case msgast.HorizontalRule:
		fmt.Fprintf(r.bw, "%srule [%d,%d)\n", indent, el.Start, el.End)
	case msgast.CodeBlock:
		label := "code"
		if r.opts.DetectLang {
			label += " lang=" + langdetect.DetectLines(e.LineTexts())
		}
		fmt.Fprintf(r.bw, "%s%s [%d,%d)\n", indent, label, el.Start, el.End)
		for _, ln := range e.Lines {
			fmt.Fprintf(r.bw, "%s  line [%d,%d) %q\n", indent, ln.Start, ln.End, ln.Text)
		}
	case msgast.ParseError:
		fmt.Fprintf(r.bw, "%serror [%d,%d) %q\n", indent, el.Start, el.End, e.Message)
	}
}

func (r *TextRenderer) writeCell(cell msgast.TableCell, depth int) {
	fmt.Fprintf(r.bw, "%scell\n", strings.Repeat("  ", depth))
	for _, c := range cell {
		r.writeBlock(c, depth+1)
	}
}

func (r *TextRenderer) writeInline(el msgast.RangedInlineElement, depth int) {
	indent := strings.Repeat("  ", depth)
	switch e := el.Element.(type) {
	case msgast.Text:
		fmt.Fprintf(r.bw, "%stext [%d,%d) %q\n", indent, el.Start, el.End, e.Text)
	case msgast.Code:
		fmt.Fprintf(r.bw, "%scode-span [%d,%d) %q\n", indent, el.Start, el.End, e.Text)
	case msgast.Link:
		fmt.Fprintf(r.bw, "%slink [%d,%d) dest=%q\n", indent, el.Start, el.End, e.DestURL)
		for _, c := range e.Children {
			r.writeInline(c, depth+1)
		}
	case msgast.Bold:
		fmt.Fprintf(r.bw, "%sbold [%d,%d)\n", indent, el.Start, el.End)
		for _, c := range e.Children {
			r.writeInline(c, depth+1)
		}
	case msgast.Italic:
		fmt.Fprintf(r.bw, "%sitalic [%d,%d)\n", indent, el.Start, el.End)
		for _, c := range e.Children {
			r.writeInline(c, depth+1)
		}
	case msgast.Strikethrough:
		fmt.Fprintf(r.bw, "%sstrike [%d,%d)\n", indent, el.Start, el.End)
		for _, c := range e.Children {
			r.writeInline(c, depth+1)
		}
	case msgast.Spoiler:
		fmt.Fprintf(r.bw, "%sspoiler [%d,%d)\n", indent, el.Start, el.End)
		for _, c := range e.Children {
			r.writeInline(c, depth+1)
		}
	case msgast.Image:
		fmt.Fprintf(r.bw, "%simage [%d,%d) url=%q\n", indent, el.Start, el.End, e.URL)
	case msgast.TaskListMarker:
		fmt.Fprintf(r.bw, "%stask [%d,%d) checked=%t\n", indent, el.Start, el.End, e.Checked)
	}
}
