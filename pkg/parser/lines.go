package parser

// line is one logical line of the source: the half-open byte range of its
// content, excluding the trailing LF or CRLF terminator. Container blocks
// strip their markers by narrowing start, so offsets stay absolute no
// matter how deep the nesting goes.
type line struct {
	start int
	end   int
}

// splitLines cuts src into logical lines. LF and CRLF both terminate a
// line; the final line needs no terminator. Empty input yields no lines.
func splitLines(src []byte) []line {
	var lines []line
	start := 0
	for i := 0; i < len(src); i++ {
		if src[i] != '\n' {
			continue
		}
		end := i
		if end > start && src[end-1] == '\r' {
			end--
		}
		lines = append(lines, line{start: start, end: end})
		start = i + 1
	}
	if start < len(src) {
		lines = append(lines, line{start: start, end: len(src)})
	}
	return lines
}

func (l line) text(src []byte) []byte {
	return src[l.start:l.end]
}

// isBlank reports whether the line holds only spaces and tabs.
func (l line) isBlank(src []byte) bool {
	for i := l.start; i < l.end; i++ {
		if !isSpaceOrTab(src[i]) {
			return false
		}
	}
	return true
}

// firstNonSpace returns the offset of the first byte that is not a space
// or tab, or the line end when the line is blank.
func (l line) firstNonSpace(src []byte) int {
	i := l.start
	for i < l.end && isSpaceOrTab(src[i]) {
		i++
	}
	return i
}

// indentColumns measures the leading whitespace in columns, counting a
// tab as tabWidth.
func (l line) indentColumns(src []byte) int {
	cols := 0
	for i := l.start; i < l.end; i++ {
		switch src[i] {
		case ' ':
			cols++
		case '\t':
			cols += tabWidth
		default:
			return cols
		}
	}
	return cols
}

// dedent strips up to cols columns of leading whitespace, returning the
// narrowed line. A tab straddling the boundary is consumed whole.
func (l line) dedent(src []byte, cols int) line {
	i := l.start
	remaining := cols
	for i < l.end && remaining > 0 {
		switch src[i] {
		case ' ':
			remaining--
		case '\t':
			remaining -= tabWidth
		default:
			return line{start: i, end: l.end}
		}
		i++
	}
	return line{start: i, end: l.end}
}
