package pretty

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/chatmark/pkg/msgast"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// Preview length bounds, applied after the terminal width is accounted for.
const (
	minPreviewLen = 10
	maxPreviewLen = 60
)

// TreePrinter renders parsed messages as indented node trees, one node per
// line with its byte range and, for leaves, a truncated text preview.
type TreePrinter struct {
	styles *Styles
	width  int

	// DetectLang, when non-nil, is called with a code block's lines and
	// its result shown as the block's language tag.
	DetectLang func(lines []string) string
}

// NewTreePrinter creates a tree printer sized to the writer's terminal,
// falling back to a fixed width for pipes and files.
func NewTreePrinter(styles *Styles, writer io.Writer) *TreePrinter {
	return &TreePrinter{styles: styles, width: terminalWidth(writer)}
}

// terminalWidth attempts to get the terminal width from the writer.
func terminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}

// FormatFileHeader renders the line introducing one file's tree.
func (p *TreePrinter) FormatFileHeader(path string, stats msgast.Stats) string {
	counts := fmt.Sprintf(" (%d blocks, %d inlines", stats.Blocks, stats.Inlines)
	if stats.Errors > 0 {
		counts += fmt.Sprintf(", %d parse errors", stats.Errors)
	}
	counts += ")"
	return p.styles.FilePath.Render(path) + p.styles.Dim.Render(counts) + "\n"
}

// Format renders the whole message tree.
func (p *TreePrinter) Format(content msgast.MessageContent) string {
	var b strings.Builder
	b.WriteString(p.styles.Bold.Render("message"))
	b.WriteString("\n")
	p.writeBlocks(&b, content.Content, "")
	return b.String()
}

// branchGlyphs returns the connector for a node and the prefix its
// children continue with.
func branchGlyphs(prefix string, last bool) (connector, childPrefix string) {
	if last {
		return prefix + "└─ ", prefix + "   "
	}
	return prefix + "├─ ", prefix + "│  "
}

func (p *TreePrinter) writeBlocks(b *strings.Builder, blocks []msgast.RangedBlockElement, prefix string) {
	for idx, block := range blocks {
		p.writeBlock(b, block, prefix, idx == len(blocks)-1)
	}
}

func (p *TreePrinter) writeBlock(b *strings.Builder, block msgast.RangedBlockElement, prefix string, last bool) {
	connector, childPrefix := branchGlyphs(prefix, last)
	rng := p.rangeTag(block.Start, block.End)

	line := func(label string) {
		b.WriteString(p.styles.Branch.Render(connector))
		b.WriteString(label)
		b.WriteString("\n")
	}

	switch el := block.Element.(type) {
	case msgast.Paragraph:
		line(p.styles.BlockKind.Render("paragraph") + rng)
		p.writeInlines(b, el.Children, childPrefix)
	case msgast.Heading:
		line(p.styles.BlockKind.Render("heading") + rng)
		p.writeInlines(b, el.Children, childPrefix)
	case msgast.Quote:
		line(p.styles.BlockKind.Render("quote") + rng)
		p.writeBlocks(b, el.Children, childPrefix)
	case msgast.UnorderedList:
		line(p.styles.BlockKind.Render("ulist") + rng)
		p.writeItems(b, el.Items, childPrefix)
	case msgast.OrderedList:
		line(p.styles.BlockKind.Render("olist") +
			p.styles.Detail.Render(" start="+el.Start.String()) + rng)
		p.writeItems(b, el.Items, childPrefix)
	case msgast.Table:
		line(p.styles.BlockKind.Render("table") + rng)
		p.writeTable(b, el, childPrefix)
	case msgast.HorizontalRule:
		line(p.styles.BlockKind.Render("rule") + rng)
	case msgast.CodeBlock:
		label := p.styles.BlockKind.Render("code")
		if p.DetectLang != nil {
			label += p.styles.Detail.Render(" lang=" + p.DetectLang(el.LineTexts()))
		}
		line(label + rng)
		p.writeCodeLines(b, el.Lines, childPrefix)
	case msgast.ParseError:
		line(p.styles.ErrorNode.Render("error") + rng + " " +
			p.styles.Preview.Render(p.preview(el.Message, connector)))
	}
}

func (p *TreePrinter) writeItems(b *strings.Builder, items []msgast.ListItem, prefix string) {
	for idx, item := range items {
		connector, childPrefix := branchGlyphs(prefix, idx == len(items)-1)
		b.WriteString(p.styles.Branch.Render(connector))
		b.WriteString(p.styles.BlockKind.Render("item"))
		b.WriteString("\n")
		p.writeBlocks(b, item, childPrefix)
	}
}

func (p *TreePrinter) writeTable(b *strings.Builder, table msgast.Table, prefix string) {
	writeRow := func(label string, cells []msgast.TableCell, last bool) {
		connector, childPrefix := branchGlyphs(prefix, last)
		b.WriteString(p.styles.Branch.Render(connector))
		b.WriteString(p.styles.BlockKind.Render(label))
		b.WriteString("\n")
		for cellIdx, cell := range cells {
			cellConnector, cellPrefix := branchGlyphs(childPrefix, cellIdx == len(cells)-1)
			b.WriteString(p.styles.Branch.Render(cellConnector))
			b.WriteString(p.styles.BlockKind.Render("cell"))
			b.WriteString("\n")
			p.writeBlocks(b, cell, cellPrefix)
		}
	}

	writeRow("head", table.Head, len(table.Rows) == 0)
	for rowIdx, row := range table.Rows {
		writeRow("row", row, rowIdx == len(table.Rows)-1)
	}
}

func (p *TreePrinter) writeCodeLines(b *strings.Builder, lines []msgast.CodeLine, prefix string) {
	for idx, ln := range lines {
		connector, _ := branchGlyphs(prefix, idx == len(lines)-1)
		b.WriteString(p.styles.Branch.Render(connector))
		b.WriteString(p.styles.InlineKind.Render("line"))
		b.WriteString(" " + p.styles.Range.Render(fmt.Sprintf("[%d,%d)", ln.Start, ln.End)))
		b.WriteString(" " + p.styles.Preview.Render(p.preview(ln.Text, connector)))
		b.WriteString("\n")
	}
}

func (p *TreePrinter) writeInlines(b *strings.Builder, inlines []msgast.RangedInlineElement, prefix string) {
	for idx, inline := range inlines {
		p.writeInline(b, inline, prefix, idx == len(inlines)-1)
	}
}

func (p *TreePrinter) writeInline(b *strings.Builder, inline msgast.RangedInlineElement, prefix string, last bool) {
	connector, childPrefix := branchGlyphs(prefix, last)
	rng := p.rangeTag(inline.Start, inline.End)

	line := func(label string) {
		b.WriteString(p.styles.Branch.Render(connector))
		b.WriteString(label)
		b.WriteString("\n")
	}

	switch el := inline.Element.(type) {
	case msgast.Text:
		line(p.styles.InlineKind.Render("text") + rng + " " +
			p.styles.Preview.Render(p.preview(el.Text, connector)))
	case msgast.Code:
		line(p.styles.InlineKind.Render("code-span") + rng + " " +
			p.styles.Preview.Render(p.preview(el.Text, connector)))
	case msgast.Link:
		line(p.styles.InlineKind.Render("link") +
			p.styles.Detail.Render(" dest="+strconv.Quote(el.DestURL)) + rng)
		p.writeInlines(b, el.Children, childPrefix)
	case msgast.Bold:
		line(p.styles.InlineKind.Render("bold") + rng)
		p.writeInlines(b, el.Children, childPrefix)
	case msgast.Italic:
		line(p.styles.InlineKind.Render("italic") + rng)
		p.writeInlines(b, el.Children, childPrefix)
	case msgast.Strikethrough:
		line(p.styles.InlineKind.Render("strike") + rng)
		p.writeInlines(b, el.Children, childPrefix)
	case msgast.Spoiler:
		line(p.styles.InlineKind.Render("spoiler") + rng)
		p.writeInlines(b, el.Children, childPrefix)
	case msgast.Image:
		line(p.styles.InlineKind.Render("image") +
			p.styles.Detail.Render(" url="+strconv.Quote(el.URL)) + rng)
	case msgast.TaskListMarker:
		line(p.styles.InlineKind.Render("task") +
			p.styles.Detail.Render(fmt.Sprintf(" checked=%t", el.Checked)) + rng)
	}
}

func (p *TreePrinter) rangeTag(start, end int) string {
	return " " + p.styles.Range.Render(fmt.Sprintf("[%d,%d)", start, end))
}

// preview quotes a value, truncated to the width remaining after the tree
// prefix so deep nodes still fit on one terminal line.
func (p *TreePrinter) preview(value, prefix string) string {
	budget := p.width - len([]rune(prefix)) - 24
	if budget < minPreviewLen {
		budget = minPreviewLen
	}
	if budget > maxPreviewLen {
		budget = maxPreviewLen
	}
	runes := []rune(value)
	if len(runes) > budget {
		value = string(runes[:budget-1]) + "…"
	}
	return strconv.Quote(value)
}
