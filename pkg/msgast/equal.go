package msgast

import "math/big"

// Equal reports whether two messages are structurally identical: the same
// tree shape, the same element values, and the same byte ranges. Parsing the
// same input twice always yields Equal results.
func (m MessageContent) Equal(other MessageContent) bool {
	return equalBlocks(m.Content, other.Content)
}

func equalBlocks(a, b []RangedBlockElement) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Start != b[i].Start || a[i].End != b[i].End {
			return false
		}
		if !equalBlockElement(a[i].Element, b[i].Element) {
			return false
		}
	}
	return true
}

func equalBlockElement(a, b BlockElement) bool {
	switch ae := a.(type) {
	case Paragraph:
		be, ok := b.(Paragraph)
		return ok && equalInlines(ae.Children, be.Children)
	case Heading:
		be, ok := b.(Heading)
		return ok && equalInlines(ae.Children, be.Children)
	case Quote:
		be, ok := b.(Quote)
		return ok && equalBlocks(ae.Children, be.Children)
	case UnorderedList:
		be, ok := b.(UnorderedList)
		return ok && equalItems(ae.Items, be.Items)
	case OrderedList:
		be, ok := b.(OrderedList)
		return ok && equalStart(ae.Start, be.Start) && equalItems(ae.Items, be.Items)
	case Table:
		be, ok := b.(Table)
		if !ok || !equalCells(ae.Head, be.Head) || len(ae.Rows) != len(be.Rows) {
			return false
		}
		for i := range ae.Rows {
			if !equalCells(ae.Rows[i], be.Rows[i]) {
				return false
			}
		}
		return true
	case HorizontalRule:
		_, ok := b.(HorizontalRule)
		return ok
	case CodeBlock:
		be, ok := b.(CodeBlock)
		if !ok || len(ae.Lines) != len(be.Lines) {
			return false
		}
		for i := range ae.Lines {
			if ae.Lines[i] != be.Lines[i] {
				return false
			}
		}
		return true
	case ParseError:
		be, ok := b.(ParseError)
		return ok && ae.Message == be.Message
	default:
		return false
	}
}

func equalItems(a, b []ListItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalBlocks(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalCells(a, b []TableCell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalBlocks(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalStart(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}

func equalInlines(a, b []RangedInlineElement) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Start != b[i].Start || a[i].End != b[i].End {
			return false
		}
		if !equalInlineElement(a[i].Element, b[i].Element) {
			return false
		}
	}
	return true
}

func equalInlineElement(a, b InlineElement) bool {
	switch ae := a.(type) {
	case Text:
		be, ok := b.(Text)
		return ok && ae.Text == be.Text
	case Code:
		be, ok := b.(Code)
		return ok && ae.Text == be.Text
	case Link:
		be, ok := b.(Link)
		return ok && ae.DestURL == be.DestURL && equalInlines(ae.Children, be.Children)
	case Bold:
		be, ok := b.(Bold)
		return ok && equalInlines(ae.Children, be.Children)
	case Italic:
		be, ok := b.(Italic)
		return ok && equalInlines(ae.Children, be.Children)
	case Strikethrough:
		be, ok := b.(Strikethrough)
		return ok && equalInlines(ae.Children, be.Children)
	case Spoiler:
		be, ok := b.(Spoiler)
		return ok && equalInlines(ae.Children, be.Children)
	case Image:
		be, ok := b.(Image)
		return ok && ae.URL == be.URL
	case TaskListMarker:
		be, ok := b.(TaskListMarker)
		return ok && ae.Checked == be.Checked
	default:
		return false
	}
}
