package parser_test

import (
	"testing"
	"unicode/utf8"

	"github.com/yaklabco/chatmark/pkg/msgast"
	"github.com/yaklabco/chatmark/pkg/parser"
)

func FuzzParse(f *testing.F) {
	// Add seed corpus.
	f.Add("")
	f.Add("hello world")
	f.Add("# h\n\npara **b** *i* _u_")
	f.Add("- [x] a\n- [ ] b\n  - nested\n\n1. c")
	f.Add("```go\ncode\n```\n\n    indented")
	f.Add("| a | b |\n| - | - |\n| 1 |")
	f.Add("> > deep\n> shallow")
	f.Add("***em*** **un*balanced*")
	f.Add("[l](u) ![i](v) <a:b> [broken](")
	f.Add("~~s~~ ||sp|| ~x~ |y|")
	f.Add("\\*esc\\* \\\\ \\")
	f.Add("a\r\nb\r\n\r\nc")
	f.Add("5. x\n6. y\n99999999999999999999999999. z")
	f.Add("a  \nhard\\\nbreaks")
	f.Add("`````\n``\n`````")
	f.Add("Title\n=====\n\n---")

	f.Fuzz(func(t *testing.T, msg string) {
		// Parse must be total: no panic on any input.
		content := parser.Parse(msg)

		checkTreeInvariants(t, msg, content)

		// Parsing is deterministic.
		again := parser.Parse(msg)
		if !content.Equal(again) {
			t.Error("repeated parse differs")
		}
		if content.Fingerprint() != again.Fingerprint() {
			t.Error("fingerprint unstable across parses")
		}

		// ParseBytes agrees on valid UTF-8 and degrades to an error block
		// otherwise.
		fromBytes := parser.ParseBytes([]byte(msg))
		if utf8.ValidString(msg) {
			if !content.Equal(fromBytes) {
				t.Error("ParseBytes disagrees with Parse")
			}
		} else {
			if len(fromBytes.Content) != 1 {
				t.Fatalf("invalid UTF-8: blocks = %d, want 1", len(fromBytes.Content))
			}
			if _, ok := fromBytes.Content[0].Element.(msgast.ParseError); !ok {
				t.Errorf("invalid UTF-8: element = %T, want ParseError", fromBytes.Content[0].Element)
			}
		}
	})
}
