package msgast

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
)

// Variant tags for the fingerprint encoding. Values are part of the
// fingerprint's stability contract: reordering them changes every hash.
const (
	fpParagraph uint8 = iota + 1
	fpHeading
	fpQuote
	fpUnorderedList
	fpOrderedList
	fpTable
	fpHorizontalRule
	fpCodeBlock
	fpParseError
	fpText
	fpCode
	fpLink
	fpBold
	fpItalic
	fpStrikethrough
	fpSpoiler
	fpImage
	fpTaskListMarker
	fpEnd
)

// Fingerprint returns a stable 64-bit digest of the message tree.
// Structurally Equal messages always produce the same fingerprint, so it can
// key caches of derived renderings. It is not cryptographic.
func (m MessageContent) Fingerprint() uint64 {
	h := fnv.New64a()
	fpBlocks(h, m.Content)
	return h.Sum64()
}

func fpBlocks(h hash.Hash64, blocks []RangedBlockElement) {
	fpInt(h, len(blocks))
	for _, b := range blocks {
		fpInt(h, b.Start)
		fpInt(h, b.End)
		fpBlockElement(h, b.Element)
	}
}

func fpBlockElement(h hash.Hash64, el BlockElement) {
	switch e := el.(type) {
	case Paragraph:
		fpTag(h, fpParagraph)
		fpInlines(h, e.Children)
	case Heading:
		fpTag(h, fpHeading)
		fpInlines(h, e.Children)
	case Quote:
		fpTag(h, fpQuote)
		fpBlocks(h, e.Children)
	case UnorderedList:
		fpTag(h, fpUnorderedList)
		fpInt(h, len(e.Items))
		for _, item := range e.Items {
			fpBlocks(h, item)
		}
	case OrderedList:
		fpTag(h, fpOrderedList)
		if e.Start != nil {
			fpInt(h, e.Start.Sign())
			fpBytes(h, e.Start.Bytes())
		} else {
			fpInt(h, 0)
			fpBytes(h, nil)
		}
		fpInt(h, len(e.Items))
		for _, item := range e.Items {
			fpBlocks(h, item)
		}
	case Table:
		fpTag(h, fpTable)
		fpCells(h, e.Head)
		fpInt(h, len(e.Rows))
		for _, row := range e.Rows {
			fpCells(h, row)
		}
	case HorizontalRule:
		fpTag(h, fpHorizontalRule)
	case CodeBlock:
		fpTag(h, fpCodeBlock)
		fpInt(h, len(e.Lines))
		for _, line := range e.Lines {
			fpInt(h, line.Start)
			fpInt(h, line.End)
			fpString(h, line.Text)
		}
	case ParseError:
		fpTag(h, fpParseError)
		fpString(h, e.Message)
	}
	fpTag(h, fpEnd)
}

func fpCells(h hash.Hash64, cells []TableCell) {
	fpInt(h, len(cells))
	for _, cell := range cells {
		fpBlocks(h, cell)
	}
}

func fpInlines(h hash.Hash64, inlines []RangedInlineElement) {
	fpInt(h, len(inlines))
	for _, in := range inlines {
		fpInt(h, in.Start)
		fpInt(h, in.End)
		fpInlineElement(h, in.Element)
	}
}

func fpInlineElement(h hash.Hash64, el InlineElement) {
	switch e := el.(type) {
	case Text:
		fpTag(h, fpText)
		fpString(h, e.Text)
	case Code:
		fpTag(h, fpCode)
		fpString(h, e.Text)
	case Link:
		fpTag(h, fpLink)
		fpString(h, e.DestURL)
		fpInlines(h, e.Children)
	case Bold:
		fpTag(h, fpBold)
		fpInlines(h, e.Children)
	case Italic:
		fpTag(h, fpItalic)
		fpInlines(h, e.Children)
	case Strikethrough:
		fpTag(h, fpStrikethrough)
		fpInlines(h, e.Children)
	case Spoiler:
		fpTag(h, fpSpoiler)
		fpInlines(h, e.Children)
	case Image:
		fpTag(h, fpImage)
		fpString(h, e.URL)
	case TaskListMarker:
		fpTag(h, fpTaskListMarker)
		if e.Checked {
			fpTag(h, 1)
		} else {
			fpTag(h, 0)
		}
	}
	fpTag(h, fpEnd)
}

func fpTag(h hash.Hash64, tag uint8) {
	h.Write([]byte{tag})
}

func fpInt(h hash.Hash64, v int) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
	h.Write(buf[:])
}

func fpString(h hash.Hash64, s string) {
	fpInt(h, len(s))
	h.Write([]byte(s))
}

func fpBytes(h hash.Hash64, b []byte) {
	fpInt(h, len(b))
	h.Write(b)
}
