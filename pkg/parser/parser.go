// Package parser converts chat-message Markdown into ranged block trees.
//
// The pipeline has three stages: a line splitter producing logical lines
// with absolute offsets, a block scanner classifying and grouping those
// lines, and an inline resolver handling emphasis, code spans, and links
// inside leaf blocks. Parsing is total: malformed constructs fall back to
// literal text, and internal failures surface as ParseError blocks rather
// than errors or panics.
package parser

import (
	"fmt"
	"unicode/utf8"

	"github.com/yaklabco/chatmark/pkg/msgast"
)

// Parse converts one chat message into its block tree.
//
// The function:
//  1. Splits the message into logical lines (LF and CRLF both end lines).
//  2. Scans the lines into block elements, recursing through quotes and
//     list items up to the nesting limit.
//  3. Resolves inline content inside paragraphs, headings, and table cells.
//
// Parse never fails. The empty message parses to the zero MessageContent,
// and an unexpected panic in the scanner is converted into a message
// holding a single ParseError block.
func Parse(message string) msgast.MessageContent {
	return parse([]byte(message))
}

// ParseBytes is Parse for raw bytes. Content that is not valid UTF-8 is
// rejected with a ParseError message, preserving the guarantee that every
// Text value in the tree is a well-formed string.
func ParseBytes(content []byte) msgast.MessageContent {
	if !utf8.Valid(content) {
		return msgast.ErrorContent("message is not valid UTF-8")
	}
	return parse(content)
}

func parse(src []byte) (content msgast.MessageContent) {
	defer func() {
		if r := recover(); r != nil {
			content = msgast.ErrorContent(fmt.Sprintf("invalid message: %v", r))
		}
	}()

	s := &blockScanner{src: src}
	return msgast.MessageContent{Content: s.scan(splitLines(src), 0)}
}
