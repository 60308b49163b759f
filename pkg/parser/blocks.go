package parser

import (
	"math/big"
	"strings"

	"github.com/yaklabco/chatmark/pkg/msgast"
)

// Structural limits. maxDepth bounds quote/list nesting; hitting it turns
// the offending span into a ParseError block rather than failing the parse.
const (
	maxDepth          = 50
	tabWidth          = 4
	codeIndentColumns = 4
	maxMarkerIndent   = 3
	minFenceLength    = 3
	minRuleLength     = 3
	maxHeadingLevel   = 6
)

// lineClass is the block construct a line starts. Classification order
// follows the scanner's precedence: code first, paragraph last, with
// horizontal rules checked before list markers so that "- - -" stays a rule.
type lineClass uint8

const (
	classBlank lineClass = iota
	classIndentedCode
	classFence
	classHeading
	classQuote
	classRule
	classBullet
	classOrdered
	classTable
	classParagraph
)

// blockScanner turns logical lines into ranged block elements. Container
// constructs strip their markers from each line and recurse over the
// remainder, so offsets always stay absolute into src.
type blockScanner struct {
	src []byte
}

func (s *blockScanner) scan(region []line, depth int) []msgast.RangedBlockElement {
	if depth >= maxDepth {
		return s.depthError(region)
	}

	var blocks []msgast.RangedBlockElement
	i := 0
	for i < len(region) {
		var block msgast.RangedBlockElement

		switch s.classify(region, i) {
		case classBlank:
			i++
			continue
		case classIndentedCode:
			block, i = s.scanIndentedCode(region, i)
		case classFence:
			block, i = s.scanFence(region, i)
		case classHeading:
			block, i = s.scanHeading(region, i)
		case classQuote:
			block, i = s.scanQuote(region, i, depth)
		case classRule:
			block, i = s.scanRule(region, i)
		case classBullet:
			block, i = s.scanList(region, i, depth, false)
		case classOrdered:
			block, i = s.scanList(region, i, depth, true)
		case classTable:
			block, i = s.scanTable(region, i)
		default:
			block, i = s.scanParagraph(region, i)
		}

		blocks = append(blocks, block)
	}
	return blocks
}

// depthError replaces a region that nests too deep with a single error
// block covering its non-blank extent.
func (s *blockScanner) depthError(region []line) []msgast.RangedBlockElement {
	start, end := -1, -1
	for _, ln := range region {
		if ln.isBlank(s.src) {
			continue
		}
		if start < 0 {
			start = ln.firstNonSpace(s.src)
		}
		end = ln.end
	}
	if start < 0 {
		return nil
	}
	return []msgast.RangedBlockElement{{
		Start:   start,
		End:     end,
		Element: msgast.ParseError{Message: "message nesting too deep"},
	}}
}

func (s *blockScanner) classify(region []line, i int) lineClass {
	ln := region[i]
	switch {
	case ln.isBlank(s.src):
		return classBlank
	case ln.indentColumns(s.src) >= codeIndentColumns:
		return classIndentedCode
	}
	if _, ok := s.tryFenceOpen(ln); ok {
		return classFence
	}
	if _, ok := s.tryHeadingMarker(ln); ok {
		return classHeading
	}
	if s.isQuoteLine(ln) {
		return classQuote
	}
	if s.isRuleLine(ln) {
		return classRule
	}
	if _, ok := s.tryBulletMarker(ln); ok {
		return classBullet
	}
	if _, ok := s.tryOrderedMarker(ln); ok {
		return classOrdered
	}
	if s.isTableStart(region, i) {
		return classTable
	}
	return classParagraph
}

// --- code blocks ---

// fenceMarker describes an opening code fence.
type fenceMarker struct {
	char   byte
	length int
	start  int // offset of the first fence character
}

func (s *blockScanner) tryFenceOpen(ln line) (fenceMarker, bool) {
	if ln.indentColumns(s.src) > maxMarkerIndent {
		return fenceMarker{}, false
	}
	pos := ln.firstNonSpace(s.src)
	if pos >= ln.end {
		return fenceMarker{}, false
	}
	char := s.src[pos]
	if char != '`' && char != '~' {
		return fenceMarker{}, false
	}
	length := runLength(s.src, pos, ln.end, char)
	if length < minFenceLength {
		return fenceMarker{}, false
	}
	// A backtick fence's info string may not contain backticks; that form
	// is an inline code span instead.
	if char == '`' {
		for i := pos + length; i < ln.end; i++ {
			if s.src[i] == '`' {
				return fenceMarker{}, false
			}
		}
	}
	return fenceMarker{char: char, length: length, start: pos}, true
}

func (s *blockScanner) isFenceClose(ln line, f fenceMarker) bool {
	if ln.indentColumns(s.src) > maxMarkerIndent {
		return false
	}
	pos := ln.firstNonSpace(s.src)
	if pos >= ln.end || s.src[pos] != f.char {
		return false
	}
	length := runLength(s.src, pos, ln.end, f.char)
	if length < f.length {
		return false
	}
	for i := pos + length; i < ln.end; i++ {
		if !isSpaceOrTab(s.src[i]) {
			return false
		}
	}
	return true
}

func (s *blockScanner) scanFence(region []line, i int) (msgast.RangedBlockElement, int) {
	f, _ := s.tryFenceOpen(region[i])

	body := region[i+1:]
	next := len(region)
	blockEnd := region[len(region)-1].end
	for j := i + 1; j < len(region); j++ {
		if s.isFenceClose(region[j], f) {
			body = region[i+1 : j]
			next = j + 1
			blockEnd = region[j].end
			break
		}
	}
	if next == len(region) && len(body) == 0 {
		// Fence opened on the final line; the block is just the fence.
		blockEnd = region[i].end
	}

	var lines []msgast.CodeLine
	if len(body) > 0 {
		var text strings.Builder
		for li, ln := range body {
			if li > 0 {
				text.WriteByte('\n')
			}
			text.Write(ln.text(s.src))
		}
		lines = []msgast.CodeLine{{
			Start: body[0].start,
			End:   body[len(body)-1].end,
			Text:  text.String(),
		}}
	}

	return msgast.RangedBlockElement{
		Start:   f.start,
		End:     blockEnd,
		Element: msgast.CodeBlock{Lines: lines},
	}, next
}

func (s *blockScanner) scanIndentedCode(region []line, i int) (msgast.RangedBlockElement, int) {
	var entries []msgast.CodeLine
	appendLine := func(ln line) {
		d := ln.dedent(s.src, codeIndentColumns)
		entries = append(entries, msgast.CodeLine{
			Start: d.start,
			End:   d.end,
			Text:  string(s.src[d.start:d.end]),
		})
	}

	j := i
	for j < len(region) {
		ln := region[j]
		if !ln.isBlank(s.src) {
			if ln.indentColumns(s.src) < codeIndentColumns {
				break
			}
			appendLine(ln)
			j++
			continue
		}

		// Blank lines stay inside the block only when more indented code
		// follows; trailing blanks belong to whatever comes next.
		k := j
		for k < len(region) && region[k].isBlank(s.src) {
			k++
		}
		if k >= len(region) || region[k].indentColumns(s.src) < codeIndentColumns {
			break
		}
		for ; j < k; j++ {
			appendLine(region[j])
		}
	}

	return msgast.RangedBlockElement{
		Start:   entries[0].Start,
		End:     entries[len(entries)-1].End,
		Element: msgast.CodeBlock{Lines: entries},
	}, j
}

// --- headings ---

// headingMarker describes a matched ATX heading prefix.
type headingMarker struct {
	hashStart    int
	level        int
	contentStart int
}

func (s *blockScanner) tryHeadingMarker(ln line) (headingMarker, bool) {
	if ln.indentColumns(s.src) > maxMarkerIndent {
		return headingMarker{}, false
	}
	pos := ln.firstNonSpace(s.src)
	if pos >= ln.end || s.src[pos] != '#' {
		return headingMarker{}, false
	}
	level := runLength(s.src, pos, ln.end, '#')
	if level > maxHeadingLevel {
		return headingMarker{}, false
	}
	after := pos + level
	switch {
	case after == ln.end:
		return headingMarker{hashStart: pos, level: level, contentStart: ln.end}, true
	case isSpaceOrTab(s.src[after]):
		return headingMarker{hashStart: pos, level: level, contentStart: after + 1}, true
	default:
		return headingMarker{}, false
	}
}

func (s *blockScanner) scanHeading(region []line, i int) (msgast.RangedBlockElement, int) {
	ln := region[i]
	h, _ := s.tryHeadingMarker(ln)

	cstart := h.contentStart
	cend := trimTrailingWS(s.src, cstart, ln.end)

	// Strip a closing hash run when a space separates it from the content.
	hashes := cend
	for hashes > cstart && s.src[hashes-1] == '#' {
		hashes--
	}
	if hashes < cend && (hashes == cstart || isSpaceOrTab(s.src[hashes-1])) {
		cend = trimTrailingWS(s.src, cstart, hashes)
	}

	var children []msgast.RangedInlineElement
	if cstart < cend {
		children = resolveInline(s.src, []line{{start: cstart, end: cend}})
	}

	return msgast.RangedBlockElement{
		Start:   h.hashStart,
		End:     ln.end,
		Element: msgast.Heading{Children: children},
	}, i + 1
}

// --- quotes ---

func (s *blockScanner) isQuoteLine(ln line) bool {
	if ln.indentColumns(s.src) > maxMarkerIndent {
		return false
	}
	pos := ln.firstNonSpace(s.src)
	return pos < ln.end && s.src[pos] == '>'
}

func (s *blockScanner) scanQuote(region []line, i, depth int) (msgast.RangedBlockElement, int) {
	start := region[i].firstNonSpace(s.src)

	var inner []line
	j := i
	for j < len(region) && s.isQuoteLine(region[j]) {
		ln := region[j]
		cstart := ln.firstNonSpace(s.src) + 1
		if cstart < ln.end && isSpaceOrTab(s.src[cstart]) {
			cstart++
		}
		inner = append(inner, line{start: cstart, end: ln.end})
		j++
	}

	return msgast.RangedBlockElement{
		Start:   start,
		End:     region[j-1].end,
		Element: msgast.Quote{Children: s.scan(inner, depth+1)},
	}, j
}

// --- horizontal rules and setext underlines ---

func (s *blockScanner) isRuleLine(ln line) bool {
	if ln.indentColumns(s.src) > maxMarkerIndent {
		return false
	}
	pos := ln.firstNonSpace(s.src)
	if pos >= ln.end {
		return false
	}
	char := s.src[pos]
	if char != '-' && char != '*' && char != '_' {
		return false
	}
	count := 0
	for i := pos; i < ln.end; i++ {
		switch s.src[i] {
		case char:
			count++
		case ' ', '\t':
		default:
			return false
		}
	}
	return count >= minRuleLength
}

// isSetextUnderline reports whether the line is a pure run of '-' or '='
// that can promote the preceding paragraph line to a heading.
func (s *blockScanner) isSetextUnderline(ln line) bool {
	if ln.indentColumns(s.src) > maxMarkerIndent {
		return false
	}
	pos := ln.firstNonSpace(s.src)
	if pos >= ln.end {
		return false
	}
	char := s.src[pos]
	if char != '-' && char != '=' {
		return false
	}
	i := pos
	for i < ln.end && s.src[i] == char {
		i++
	}
	for ; i < ln.end; i++ {
		if !isSpaceOrTab(s.src[i]) {
			return false
		}
	}
	return true
}

func (s *blockScanner) scanRule(region []line, i int) (msgast.RangedBlockElement, int) {
	ln := region[i]
	return msgast.RangedBlockElement{
		Start:   ln.firstNonSpace(s.src),
		End:     ln.end,
		Element: msgast.HorizontalRule{},
	}, i + 1
}

// --- lists ---

// listMarker describes a matched list marker.
type listMarker struct {
	markerStart  int
	contentStart int
	contentCol   int
	digits       string // ordered lists only
}

func (s *blockScanner) tryBulletMarker(ln line) (listMarker, bool) {
	indent := ln.indentColumns(s.src)
	if indent > maxMarkerIndent {
		return listMarker{}, false
	}
	pos := ln.firstNonSpace(s.src)
	if pos >= ln.end {
		return listMarker{}, false
	}
	char := s.src[pos]
	if char != '-' && char != '*' && char != '+' {
		return listMarker{}, false
	}
	sep := pos + 1
	if sep >= ln.end || !isSpaceOrTab(s.src[sep]) {
		return listMarker{}, false
	}
	return listMarker{
		markerStart:  pos,
		contentStart: sep + 1,
		contentCol:   indent + 1 + sepColumns(s.src[sep]),
	}, true
}

func (s *blockScanner) tryOrderedMarker(ln line) (listMarker, bool) {
	indent := ln.indentColumns(s.src)
	if indent > maxMarkerIndent {
		return listMarker{}, false
	}
	pos := ln.firstNonSpace(s.src)
	digitEnd := pos
	for digitEnd < ln.end && isDigit(s.src[digitEnd]) {
		digitEnd++
	}
	if digitEnd == pos {
		return listMarker{}, false
	}
	if digitEnd >= ln.end || (s.src[digitEnd] != '.' && s.src[digitEnd] != ')') {
		return listMarker{}, false
	}
	sep := digitEnd + 1
	if sep >= ln.end || !isSpaceOrTab(s.src[sep]) {
		return listMarker{}, false
	}
	return listMarker{
		markerStart:  pos,
		contentStart: sep + 1,
		contentCol:   indent + (digitEnd - pos) + 1 + sepColumns(s.src[sep]),
		digits:       string(s.src[pos:digitEnd]),
	}, true
}

func (s *blockScanner) tryListMarker(ln line, ordered bool) (listMarker, bool) {
	if ordered {
		return s.tryOrderedMarker(ln)
	}
	return s.tryBulletMarker(ln)
}

func (s *blockScanner) scanList(region []line, i, depth int, ordered bool) (msgast.RangedBlockElement, int) {
	var (
		items      []msgast.ListItem
		itemInner  []line
		start      *big.Int
		listStart  int
		lastEnd    int
		contentCol int
	)

	flush := func() {
		if itemInner != nil {
			items = append(items, s.scanItem(itemInner, depth))
			itemInner = nil
		}
	}

	j := i
	for j < len(region) {
		ln := region[j]

		if ln.isBlank(s.src) {
			k := j
			for k < len(region) && region[k].isBlank(s.src) {
				k++
			}
			if k >= len(region) {
				break
			}
			next := region[k]
			if next.indentColumns(s.src) >= contentCol {
				// Loose continuation: the blanks separate blocks inside
				// the current item.
				for ; j < k; j++ {
					d := region[j].dedent(s.src, contentCol)
					itemInner = append(itemInner, d)
				}
				continue
			}
			if _, ok := s.tryListMarker(next, ordered); ok {
				// Blanks between items.
				j = k
				continue
			}
			break
		}

		if itemInner != nil && ln.indentColumns(s.src) >= contentCol {
			itemInner = append(itemInner, ln.dedent(s.src, contentCol))
			lastEnd = ln.end
			j++
			continue
		}

		if m, ok := s.tryListMarker(ln, ordered); ok {
			flush()
			if items == nil && itemInner == nil {
				listStart = m.markerStart
				if ordered {
					start, _ = new(big.Int).SetString(m.digits, 10)
				}
			}
			contentCol = m.contentCol
			itemInner = []line{{start: m.contentStart, end: ln.end}}
			lastEnd = ln.end
			j++
			continue
		}

		if s.classify(region, j) != classParagraph {
			break
		}

		// Lazy continuation of the item's trailing paragraph.
		itemInner = append(itemInner, line{start: ln.firstNonSpace(s.src), end: ln.end})
		lastEnd = ln.end
		j++
	}
	flush()

	var element msgast.BlockElement
	if ordered {
		element = msgast.OrderedList{Start: start, Items: items}
	} else {
		element = msgast.UnorderedList{Items: items}
	}
	return msgast.RangedBlockElement{Start: listStart, End: lastEnd, Element: element}, j
}

// scanItem parses one list item's stripped lines and lifts a leading task
// marker out of its first paragraph.
func (s *blockScanner) scanItem(inner []line, depth int) msgast.ListItem {
	blocks := s.scan(inner, depth+1)
	return s.liftTaskMarker(blocks, inner)
}

// liftTaskMarker turns a literal "[ ]", "[x]", or "[X]" at the very start
// of an item's first paragraph into a TaskListMarker element.
func (s *blockScanner) liftTaskMarker(blocks []msgast.RangedBlockElement, inner []line) msgast.ListItem {
	if len(blocks) == 0 || len(inner) == 0 {
		return blocks
	}
	contentStart := inner[0].start

	checked, ok := s.taskMarkerAt(contentStart, inner[0].end)
	if !ok {
		return blocks
	}

	para, ok := blocks[0].Element.(msgast.Paragraph)
	if !ok || blocks[0].Start != contentStart || len(para.Children) == 0 {
		return blocks
	}
	first := para.Children[0]
	text, ok := first.Element.(msgast.Text)
	if !ok || first.Start != contentStart || len(text.Text) < 3 {
		return blocks
	}

	marker := msgast.RangedInlineElement{
		Start:   contentStart,
		End:     contentStart + 3,
		Element: msgast.TaskListMarker{Checked: checked},
	}

	rest := text.Text[3:]
	restStart := contentStart + 3
	if len(rest) > 0 && isSpaceOrTab(rest[0]) {
		rest = rest[1:]
		restStart++
	}

	children := []msgast.RangedInlineElement{marker}
	if rest != "" {
		children = append(children, msgast.RangedInlineElement{
			Start:   restStart,
			End:     first.End,
			Element: msgast.Text{Text: rest},
		})
	}
	children = append(children, para.Children[1:]...)

	rebuilt := make(msgast.ListItem, len(blocks))
	copy(rebuilt, blocks)
	rebuilt[0] = msgast.RangedBlockElement{
		Start:   blocks[0].Start,
		End:     blocks[0].End,
		Element: msgast.Paragraph{Children: children},
	}
	return rebuilt
}

// taskMarkerAt matches "[ ]", "[x]", or "[X]" at pos followed by
// whitespace or the end of the line.
func (s *blockScanner) taskMarkerAt(pos, end int) (checked, ok bool) {
	if pos+3 > end {
		return false, false
	}
	if s.src[pos] != '[' || s.src[pos+2] != ']' {
		return false, false
	}
	switch s.src[pos+1] {
	case ' ':
		checked = false
	case 'x', 'X':
		checked = true
	default:
		return false, false
	}
	if pos+3 < end && !isSpaceOrTab(s.src[pos+3]) {
		return false, false
	}
	return checked, true
}

// --- tables ---

// span is a trimmed byte window on one line.
type span struct {
	start int
	end   int
}

func (s *blockScanner) isTableStart(region []line, i int) bool {
	if !s.hasUnescapedPipe(region[i]) || i+1 >= len(region) {
		return false
	}
	cols := s.tableDelimiterColumns(region[i+1])
	return cols > 0 && cols == len(s.splitTableCells(region[i]))
}

// tableDelimiterColumns validates a delimiter row ("| --- | :-: |") and
// returns its column count, or 0 when the line is not a delimiter row.
func (s *blockScanner) tableDelimiterColumns(ln line) int {
	sawPipe := false
	for i := ln.start; i < ln.end; i++ {
		switch s.src[i] {
		case '|':
			sawPipe = true
		case '-', ':', ' ', '\t':
		default:
			return 0
		}
	}
	if !sawPipe {
		return 0
	}

	cells := s.splitTableCells(ln)
	for _, cell := range cells {
		if !isDelimiterCell(s.src[cell.start:cell.end]) {
			return 0
		}
	}
	return len(cells)
}

// splitTableCells splits a row into trimmed cell spans. Outer pipes are
// dropped; "\|" does not split.
func (s *blockScanner) splitTableCells(ln line) []span {
	pos := ln.firstNonSpace(s.src)
	end := trimTrailingWS(s.src, pos, ln.end)
	if pos < end && s.src[pos] == '|' {
		pos++
	}

	var cells []span
	cellStart := pos
	for i := pos; i < end; i++ {
		switch s.src[i] {
		case '\\':
			i++
		case '|':
			cells = append(cells, trimSpan(s.src, cellStart, i))
			cellStart = i + 1
		}
	}
	cells = append(cells, trimSpan(s.src, cellStart, end))

	// A trailing outer pipe leaves one empty cell behind; drop it.
	if len(cells) > 1 && end > pos && s.src[end-1] == '|' {
		last := cells[len(cells)-1]
		if last.start >= last.end {
			cells = cells[:len(cells)-1]
		}
	}
	return cells
}

func (s *blockScanner) hasUnescapedPipe(ln line) bool {
	for i := ln.start; i < ln.end; i++ {
		switch s.src[i] {
		case '\\':
			i++
		case '|':
			return true
		}
	}
	return false
}

func (s *blockScanner) scanTable(region []line, i int) (msgast.RangedBlockElement, int) {
	header := region[i]
	headSpans := s.splitTableCells(header)
	cols := len(headSpans)

	head := make([]msgast.TableCell, 0, cols)
	for _, sp := range headSpans {
		head = append(head, s.tableCell(sp))
	}

	var rows [][]msgast.TableCell
	j := i + 2
	for j < len(region) {
		ln := region[j]
		if ln.isBlank(s.src) || !s.hasUnescapedPipe(ln) {
			break
		}
		spans := s.splitTableCells(ln)
		row := make([]msgast.TableCell, 0, cols)
		for c := range cols {
			if c < len(spans) {
				row = append(row, s.tableCell(spans[c]))
			} else {
				row = append(row, nil)
			}
		}
		rows = append(rows, row)
		j++
	}

	return msgast.RangedBlockElement{
		Start:   header.firstNonSpace(s.src),
		End:     region[j-1].end,
		Element: msgast.Table{Head: head, Rows: rows},
	}, j
}

// tableCell wraps one cell's inline content in a paragraph. Empty cells
// hold no blocks.
func (s *blockScanner) tableCell(sp span) msgast.TableCell {
	if sp.start >= sp.end {
		return nil
	}
	children := resolveInline(s.src, []line{{start: sp.start, end: sp.end}})
	return msgast.TableCell{{
		Start:   sp.start,
		End:     sp.end,
		Element: msgast.Paragraph{Children: children},
	}}
}

// --- paragraphs ---

func (s *blockScanner) scanParagraph(region []line, i int) (msgast.RangedBlockElement, int) {
	j := i + 1
	for j < len(region) {
		ln := region[j]
		if ln.isBlank(s.src) {
			break
		}
		if j == i+1 && s.isSetextUnderline(ln) {
			// A lone underline directly after a single text line promotes
			// that line to a heading absorbing both.
			first := region[i]
			cstart := first.firstNonSpace(s.src)
			cend := trimTrailingWS(s.src, cstart, first.end)
			var children []msgast.RangedInlineElement
			if cstart < cend {
				children = resolveInline(s.src, []line{{start: cstart, end: cend}})
			}
			return msgast.RangedBlockElement{
				Start:   cstart,
				End:     ln.end,
				Element: msgast.Heading{Children: children},
			}, j + 1
		}
		if s.classify(region, j) != classParagraph {
			break
		}
		j++
	}

	inlineRegion := make([]line, 0, j-i)
	for _, ln := range region[i:j] {
		inlineRegion = append(inlineRegion, line{start: ln.firstNonSpace(s.src), end: ln.end})
	}

	return msgast.RangedBlockElement{
		Start:   inlineRegion[0].start,
		End:     region[j-1].end,
		Element: msgast.Paragraph{Children: resolveInline(s.src, inlineRegion)},
	}, j
}

// --- byte helpers ---

func isSpaceOrTab(c byte) bool {
	return c == ' ' || c == '\t'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func runLength(src []byte, pos, end int, char byte) int {
	n := 0
	for pos+n < end && src[pos+n] == char {
		n++
	}
	return n
}

func sepColumns(c byte) int {
	if c == '\t' {
		return tabWidth
	}
	return 1
}

func trimTrailingWS(src []byte, start, end int) int {
	for end > start && isSpaceOrTab(src[end-1]) {
		end--
	}
	return end
}

func trimSpan(src []byte, start, end int) span {
	for start < end && isSpaceOrTab(src[start]) {
		start++
	}
	for end > start && isSpaceOrTab(src[end-1]) {
		end--
	}
	return span{start: start, end: end}
}

// isDelimiterCell matches the ":---:" shape of one delimiter row cell.
func isDelimiterCell(cell []byte) bool {
	if len(cell) == 0 {
		return false
	}
	i := 0
	if cell[i] == ':' {
		i++
	}
	dashes := 0
	for i < len(cell) && cell[i] == '-' {
		i++
		dashes++
	}
	if dashes == 0 {
		return false
	}
	if i < len(cell) && cell[i] == ':' {
		i++
	}
	return i == len(cell)
}
