// Package msgast defines the AST for parsed chat-message Markdown.
// It provides an immutable, range-annotated view of a message including:
// - MessageContent: the document root holding top-level blocks
// - Block elements: paragraphs, headings, quotes, lists, tables, code, rules
// - Inline elements: text, emphasis, code spans, links, images, task markers
//
// Every node records the half-open byte range [Start, End) of the source it
// was parsed from, so consumers can map any node back to the exact message
// bytes. Nodes are never mutated after construction.
package msgast

// RangedBlockElement pairs a block element with its source byte range.
type RangedBlockElement struct {
	// Start is the byte offset of the first byte covered by the element.
	Start int

	// End is the byte offset just past the last covered byte.
	End int

	// Element is the block element itself.
	Element BlockElement
}

// Text returns the raw source bytes covered by the element.
func (r RangedBlockElement) Text(content []byte) string {
	return string(content[r.Start:r.End])
}

// RangedInlineElement pairs an inline element with its source byte range.
type RangedInlineElement struct {
	// Start is the byte offset of the first byte covered by the element.
	Start int

	// End is the byte offset just past the last covered byte.
	End int

	// Element is the inline element itself.
	Element InlineElement
}

// Text returns the raw source bytes covered by the element.
func (r RangedInlineElement) Text(content []byte) string {
	return string(content[r.Start:r.End])
}

// MessageContent is the root of a parsed message.
// The zero value is the empty message.
type MessageContent struct {
	// Content holds the top-level block elements in source order.
	Content []RangedBlockElement `json:"content"`
}

// IsEmpty reports whether the message contains no blocks.
func (m MessageContent) IsEmpty() bool {
	return len(m.Content) == 0
}

// ErrorContent builds a message consisting of a single ParseError block.
// The block's range covers the message string itself, since there is no
// meaningful source span to point at.
func ErrorContent(message string) MessageContent {
	return MessageContent{
		Content: []RangedBlockElement{
			{
				Start:   0,
				End:     len(message),
				Element: ParseError{Message: message},
			},
		},
	}
}
