package msgast

import "math/big"

// BlockElement is the closed set of block-level node types.
// Consumers dispatch on the concrete type:
//
//	switch el := ranged.Element.(type) {
//	case msgast.Paragraph:
//		...
//	}
type BlockElement interface {
	blockElement()
}

// ListItem is the block sequence making up one list item.
type ListItem []RangedBlockElement

// TableCell is the block sequence making up one table cell.
// Cells produced by the parser hold at most one Paragraph.
type TableCell []RangedBlockElement

// CodeLine is one ranged text segment of a code block.
// Indented code blocks carry one CodeLine per physical source line; fenced
// code blocks carry a single CodeLine covering the whole body.
type CodeLine struct {
	// Start is the byte offset of the first content byte.
	Start int

	// End is the byte offset just past the last content byte.
	End int

	// Text is the literal code text. Line terminators inside a fenced body
	// are preserved; the terminator after the final line is not.
	Text string
}

// Paragraph is a run of inline content.
type Paragraph struct {
	Children []RangedInlineElement
}

// Heading is a heading's inline content. The heading level is not retained.
type Heading struct {
	Children []RangedInlineElement
}

// Quote is a block quotation containing nested block content.
type Quote struct {
	Children []RangedBlockElement
}

// UnorderedList is a bulleted list.
type UnorderedList struct {
	Items []ListItem
}

// OrderedList is a numbered list. Start is the literal number of the first
// item, kept at arbitrary precision. It is never mutated after construction.
type OrderedList struct {
	Start *big.Int
	Items []ListItem
}

// Table is a pipe table. Head holds the header cells; Rows holds the body
// rows. Every row has exactly len(Head) cells. The delimiter row that
// introduced the table is consumed during parsing and never appears here.
type Table struct {
	Head []TableCell
	Rows [][]TableCell
}

// HorizontalRule is a thematic break.
type HorizontalRule struct{}

// CodeBlock is a fenced or indented code block.
type CodeBlock struct {
	Lines []CodeLine
}

// LineTexts returns the text of each code line in order.
func (c CodeBlock) LineTexts() []string {
	texts := make([]string, len(c.Lines))
	for idx, ln := range c.Lines {
		texts[idx] = ln.Text
	}
	return texts
}

// ParseError is an in-tree marker for a span the parser could not make
// structural sense of. It replaces only the offending content; parsing
// always continues after it.
type ParseError struct {
	Message string
}

func (Paragraph) blockElement()      {}
func (Heading) blockElement()        {}
func (Quote) blockElement()          {}
func (UnorderedList) blockElement()  {}
func (OrderedList) blockElement()    {}
func (Table) blockElement()          {}
func (HorizontalRule) blockElement() {}
func (CodeBlock) blockElement()      {}
func (ParseError) blockElement()     {}
