package parser

import "testing"

func TestSplitLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []line
	}{
		{
			name:    "empty input",
			content: "",
			want:    nil,
		},
		{
			name:    "single line without terminator",
			content: "abc",
			want:    []line{{start: 0, end: 3}},
		},
		{
			name:    "single line with terminator",
			content: "abc\n",
			want:    []line{{start: 0, end: 3}},
		},
		{
			name:    "two lines",
			content: "ab\ncd",
			want:    []line{{start: 0, end: 2}, {start: 3, end: 5}},
		},
		{
			name:    "crlf terminator excluded",
			content: "ab\r\ncd",
			want:    []line{{start: 0, end: 2}, {start: 4, end: 6}},
		},
		{
			name:    "blank lines keep positions",
			content: "a\n\nb",
			want:    []line{{start: 0, end: 1}, {start: 2, end: 2}, {start: 3, end: 4}},
		},
		{
			name:    "only newlines",
			content: "\n\n",
			want:    []line{{start: 0, end: 0}, {start: 1, end: 1}},
		},
		{
			name:    "lone carriage return stays in content",
			content: "a\rb",
			want:    []line{{start: 0, end: 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := splitLines([]byte(tt.content))
			if len(got) != len(tt.want) {
				t.Fatalf("splitLines(%q) = %v, want %v", tt.content, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestIndentColumns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{name: "no indent", content: "x", want: 0},
		{name: "spaces", content: "   x", want: 3},
		{name: "tab counts four", content: "\tx", want: 4},
		{name: "space then tab", content: " \tx", want: 5},
		{name: "blank line counts all", content: "  ", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := []byte(tt.content)
			ln := line{start: 0, end: len(src)}
			if got := ln.indentColumns(src); got != tt.want {
				t.Errorf("indentColumns(%q) = %d, want %d", tt.content, got, tt.want)
			}
		})
	}
}

func TestDedent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		cols    int
		want    string
	}{
		{name: "strip exact spaces", content: "    code", cols: 4, want: "code"},
		{name: "strip partial indent", content: "  x", cols: 4, want: "x"},
		{name: "tab consumed whole", content: "\tcode", cols: 2, want: "code"},
		{name: "keeps extra indent", content: "      x", cols: 4, want: "  x"},
		{name: "zero columns", content: "  x", cols: 0, want: "  x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := []byte(tt.content)
			ln := line{start: 0, end: len(src)}
			got := ln.dedent(src, tt.cols)
			if string(got.text(src)) != tt.want {
				t.Errorf("dedent(%q, %d) = %q, want %q", tt.content, tt.cols, got.text(src), tt.want)
			}
		})
	}
}

func TestIsBlankAndFirstNonSpace(t *testing.T) {
	t.Parallel()

	src := []byte("  \t x")
	ln := line{start: 0, end: len(src)}
	if ln.isBlank(src) {
		t.Error("isBlank = true for line with content")
	}
	if got := ln.firstNonSpace(src); got != 4 {
		t.Errorf("firstNonSpace = %d, want 4", got)
	}

	blank := []byte(" \t ")
	bl := line{start: 0, end: len(blank)}
	if !bl.isBlank(blank) {
		t.Error("isBlank = false for whitespace-only line")
	}
	if got := bl.firstNonSpace(blank); got != bl.end {
		t.Errorf("firstNonSpace on blank line = %d, want line end %d", got, bl.end)
	}
}
