package parser

import (
	"strings"

	"github.com/yaklabco/chatmark/pkg/msgast"
)

// resolveInline parses the inline content of one block. The region's lines
// have markers and leading indentation already stripped; offsets in the
// result point into src.
func resolveInline(src []byte, region []line) []msgast.RangedInlineElement {
	t := flattenLines(src, region)
	return t.resolve(0, len(t.buf), inlineOpts{})
}

type inlineOpts struct {
	noLinks bool // inside link text, brackets never open another link
	depth   int
}

// inlineText is a block's content flattened to one buffer. Line joins
// become '\n' bytes so breaks and cross-line constructs fall out of the
// ordinary walk; starts and ends map every buffer byte back to src.
type inlineText struct {
	buf    []byte
	starts []int
	ends   []int
}

func flattenLines(src []byte, region []line) *inlineText {
	t := &inlineText{}
	for li, ln := range region {
		end := trimTrailingWS(src, ln.start, ln.end)
		for p := ln.start; p < end; p++ {
			t.buf = append(t.buf, src[p])
			t.starts = append(t.starts, p)
			t.ends = append(t.ends, p+1)
		}
		if li < len(region)-1 {
			t.buf = append(t.buf, '\n')
			t.starts = append(t.starts, end)
			t.ends = append(t.ends, ln.end)
		}
	}
	return t
}

func (t *inlineText) resolve(lo, hi int, opts inlineOpts) []msgast.RangedInlineElement {
	return finalizeItems(resolveEmphasis(t.scanItems(lo, hi, opts)))
}

// spanItem is one resolved element or a still-unmatched delimiter run.
type spanItem struct {
	start int
	end   int
	elem  msgast.InlineElement
	delim *delimRun
}

type delimRun struct {
	char     byte
	length   int
	canOpen  bool
	canClose bool
}

// scanItems is the first pass: a left-to-right walk emitting literal text,
// code spans, links, images, and autolinks eagerly while leaving emphasis
// delimiters unresolved.
func (t *inlineText) scanItems(lo, hi int, opts inlineOpts) []spanItem {
	var items []spanItem
	var lit strings.Builder
	litStart, litEnd := 0, 0

	add := func(val []byte, from, to int) {
		if lit.Len() == 0 {
			litStart = t.starts[from]
		}
		lit.Write(val)
		litEnd = t.ends[to]
	}
	flush := func() {
		if lit.Len() > 0 {
			items = append(items, spanItem{
				start: litStart,
				end:   litEnd,
				elem:  msgast.Text{Text: lit.String()},
			})
			lit.Reset()
		}
	}

	i := lo
	for i < hi {
		c := t.buf[i]
		switch {
		case c == '\\' && i+1 < hi && (isEscapable(t.buf[i+1]) || t.buf[i+1] == '\n'):
			// Escaped punctuation, or a backslash hard break at a join.
			add(t.buf[i+1:i+2], i, i+1)
			i += 2

		case c == '`':
			n := runLength(t.buf, i, hi, '`')
			if q := t.findCodeClose(i+n, hi, n); q >= 0 {
				flush()
				items = append(items, t.codeSpan(i, n, q))
				i = q + n
			} else {
				add(t.buf[i:i+n], i, i+n-1)
				i += n
			}

		case c == '[' && !opts.noLinks && opts.depth < maxDepth:
			if item, next, ok := t.tryLink(i, hi, opts); ok {
				flush()
				items = append(items, item)
				i = next
			} else {
				add(t.buf[i:i+1], i, i)
				i++
			}

		case c == '!' && i+1 < hi && t.buf[i+1] == '[':
			if item, next, ok := t.tryImage(i, hi); ok {
				flush()
				items = append(items, item)
				i = next
			} else {
				add(t.buf[i:i+1], i, i)
				i++
			}

		case c == '<':
			if item, next, ok := t.tryAutolink(i, hi); ok {
				flush()
				items = append(items, item)
				i = next
			} else {
				add(t.buf[i:i+1], i, i)
				i++
			}

		case c == '*' || c == '_' || c == '~' || c == '|':
			n := runLength(t.buf, i, hi, c)
			if d := t.delimiterAt(i, n); d != nil {
				flush()
				items = append(items, spanItem{
					start: t.starts[i],
					end:   t.ends[i+n-1],
					delim: d,
				})
			} else {
				add(t.buf[i:i+n], i, i+n-1)
			}
			i += n

		default:
			add(t.buf[i:i+1], i, i)
			i++
		}
	}
	flush()
	return items
}

// findCodeClose locates a backtick run of exactly n characters. Escapes do
// not apply inside code spans, so the scan is raw.
func (t *inlineText) findCodeClose(from, hi, n int) int {
	j := from
	for j < hi {
		if t.buf[j] != '`' {
			j++
			continue
		}
		m := runLength(t.buf, j, hi, '`')
		if m == n {
			return j
		}
		j += m
	}
	return -1
}

func (t *inlineText) codeSpan(open, n, close int) spanItem {
	val := make([]byte, close-open-n)
	for k, c := range t.buf[open+n : close] {
		if c == '\n' {
			c = ' '
		}
		val[k] = c
	}
	// One space is stripped from each end when both ends are spaces and
	// something other than spaces sits between them.
	if len(val) >= 2 && val[0] == ' ' && val[len(val)-1] == ' ' {
		for _, c := range val {
			if c != ' ' {
				val = val[1 : len(val)-1]
				break
			}
		}
	}
	return spanItem{
		start: t.starts[open],
		end:   t.ends[close+n-1],
		elem:  msgast.Code{Text: string(val)},
	}
}

// --- links, images, autolinks ---

func (t *inlineText) tryLink(i, hi int, opts inlineOpts) (spanItem, int, bool) {
	textEnd := t.findBracketClose(i+1, hi)
	if textEnd < 0 || textEnd+1 >= hi || t.buf[textEnd+1] != '(' {
		return spanItem{}, 0, false
	}
	dest, after, ok := t.parseLinkTarget(textEnd+2, hi)
	if !ok {
		return spanItem{}, 0, false
	}
	children := t.resolve(i+1, textEnd, inlineOpts{noLinks: true, depth: opts.depth + 1})
	return spanItem{
		start: t.starts[i],
		end:   t.ends[after-1],
		elem:  msgast.Link{DestURL: dest, Children: children},
	}, after, true
}

// tryImage matches "![alt](url)". The alt text is dropped; only the URL
// is kept.
func (t *inlineText) tryImage(i, hi int) (spanItem, int, bool) {
	textEnd := t.findBracketClose(i+2, hi)
	if textEnd < 0 || textEnd+1 >= hi || t.buf[textEnd+1] != '(' {
		return spanItem{}, 0, false
	}
	dest, after, ok := t.parseLinkTarget(textEnd+2, hi)
	if !ok {
		return spanItem{}, 0, false
	}
	return spanItem{
		start: t.starts[i],
		end:   t.ends[after-1],
		elem:  msgast.Image{URL: dest},
	}, after, true
}

// findBracketClose finds the bracket closing the text of a link or image,
// honoring escapes, nested bracket pairs, and closed code spans.
func (t *inlineText) findBracketClose(from, hi int) int {
	depth := 0
	j := from
	for j < hi {
		switch t.buf[j] {
		case '\\':
			j += 2
			continue
		case '`':
			n := runLength(t.buf, j, hi, '`')
			if q := t.findCodeClose(j+n, hi, n); q >= 0 {
				j = q + n
			} else {
				j += n
			}
			continue
		case '[':
			depth++
		case ']':
			if depth == 0 {
				return j
			}
			depth--
		}
		j++
	}
	return -1
}

// parseLinkTarget parses "url" or "<url>" plus an optional quoted title
// after the opening paren, returning the unescaped destination and the
// index just past the closing paren. Titles are validated and discarded.
func (t *inlineText) parseLinkTarget(from, hi int) (string, int, bool) {
	j := t.skipLinkSpace(from, hi)

	var dest []byte
	if j < hi && t.buf[j] == '<' {
		k := j + 1
		for k < hi && t.buf[k] != '>' && t.buf[k] != '<' && t.buf[k] != '\n' {
			if t.buf[k] == '\\' {
				k++
			}
			k++
		}
		if k >= hi || t.buf[k] != '>' {
			return "", 0, false
		}
		dest = unescape(t.buf[j+1 : k])
		j = k + 1
	} else {
		parens := 0
		k := j
		for k < hi {
			c := t.buf[k]
			if c == '\\' {
				k += 2
				continue
			}
			if isInlineSpace(c) {
				break
			}
			if c == '(' {
				parens++
			}
			if c == ')' {
				if parens == 0 {
					break
				}
				parens--
			}
			k++
		}
		if k > hi {
			k = hi
		}
		dest = unescape(t.buf[j:k])
		j = k
	}

	j = t.skipLinkSpace(j, hi)
	if j < hi && (t.buf[j] == '"' || t.buf[j] == '\'' || t.buf[j] == '(') {
		closer := t.buf[j]
		if closer == '(' {
			closer = ')'
		}
		k := j + 1
		for k < hi && t.buf[k] != closer {
			if t.buf[k] == '\\' {
				k++
			}
			k++
		}
		if k >= hi {
			return "", 0, false
		}
		j = t.skipLinkSpace(k+1, hi)
	}

	if j >= hi || t.buf[j] != ')' {
		return "", 0, false
	}
	return string(dest), j + 1, true
}

// tryAutolink matches "<scheme:target>" with no whitespace inside.
func (t *inlineText) tryAutolink(i, hi int) (spanItem, int, bool) {
	j := i + 1
	k := j
	for k < hi && isSchemeByte(t.buf[k]) {
		k++
	}
	if k-j < 2 || k-j > 32 || !isAlpha(t.buf[j]) {
		return spanItem{}, 0, false
	}
	if k >= hi || t.buf[k] != ':' {
		return spanItem{}, 0, false
	}
	for m := k + 1; m < hi; m++ {
		c := t.buf[m]
		if c == '>' {
			dest := string(t.buf[j:m])
			children := []msgast.RangedInlineElement{{
				Start:   t.starts[j],
				End:     t.ends[m-1],
				Element: msgast.Text{Text: dest},
			}}
			return spanItem{
				start: t.starts[i],
				end:   t.ends[m],
				elem:  msgast.Link{DestURL: dest, Children: children},
			}, m + 1, true
		}
		if isInlineSpace(c) || c == '<' {
			return spanItem{}, 0, false
		}
	}
	return spanItem{}, 0, false
}

func (t *inlineText) skipLinkSpace(j, hi int) int {
	for j < hi && isInlineSpace(t.buf[j]) {
		j++
	}
	return j
}

// delimiterAt decides whether a run can participate in emphasis. Tildes
// and pipes only pair up as exact doubles; underscores do not open or
// close inside a word.
func (t *inlineText) delimiterAt(i, n int) *delimRun {
	c := t.buf[i]
	if (c == '~' || c == '|') && n != 2 {
		return nil
	}

	prev := byte('\n')
	if i > 0 {
		prev = t.buf[i-1]
	}
	next := byte('\n')
	if i+n < len(t.buf) {
		next = t.buf[i+n]
	}

	canOpen := !isInlineSpace(next)
	canClose := !isInlineSpace(prev)
	if c == '_' {
		canOpen = canOpen && !isWordByte(prev)
		canClose = canClose && !isWordByte(next)
	}
	if !canOpen && !canClose {
		return nil
	}
	return &delimRun{char: c, length: n, canOpen: canOpen, canClose: canClose}
}

// resolveEmphasis is the second pass: closers pair with the nearest
// compatible opener on a stack. Doubles bind before singles, so "***a***"
// comes out as italic around bold.
func resolveEmphasis(items []spanItem) []spanItem {
	var out []spanItem
	var openers []int

	for _, it := range items {
		if it.delim == nil {
			out = append(out, it)
			continue
		}
		cur := it
		d := *it.delim

		for d.canClose && d.length > 0 {
			oi := -1
			for x := len(openers) - 1; x >= 0; x-- {
				if out[openers[x]].delim.char == d.char {
					oi = x
					break
				}
			}
			if oi < 0 {
				break
			}
			idx := openers[oi]
			opener := out[idx].delim

			take := 1
			if opener.length >= 2 && d.length >= 2 {
				take = 2
			}

			children := finalizeItems(out[idx+1:])
			wrapStart := out[idx].end - take
			wrapEnd := cur.start + take

			var elem msgast.InlineElement
			switch {
			case d.char == '~':
				elem = msgast.Strikethrough{Children: children}
			case d.char == '|':
				elem = msgast.Spoiler{Children: children}
			case take == 2:
				elem = msgast.Bold{Children: children}
			default:
				elem = msgast.Italic{Children: children}
			}

			opener.length -= take
			out[idx].end -= take
			if opener.length == 0 {
				out = out[:idx]
				openers = openers[:oi]
			} else {
				out = out[:idx+1]
				openers = openers[:oi+1]
			}
			out = append(out, spanItem{start: wrapStart, end: wrapEnd, elem: elem})

			cur.start += take
			d.length -= take
		}

		if d.length == 0 {
			continue
		}
		if d.canOpen {
			cur.delim = &delimRun{char: d.char, length: d.length, canOpen: d.canOpen, canClose: d.canClose}
			openers = append(openers, len(out))
			out = append(out, cur)
		} else {
			cur.delim = nil
			cur.elem = msgast.Text{Text: strings.Repeat(string(rune(d.char)), d.length)}
			out = append(out, cur)
		}
	}
	return out
}

// finalizeItems demotes leftover delimiters to text and merges adjacent
// text runs, so siblings never hold two Text elements in a row.
func finalizeItems(items []spanItem) []msgast.RangedInlineElement {
	var res []msgast.RangedInlineElement
	for _, it := range items {
		elem := it.elem
		if it.delim != nil {
			elem = msgast.Text{Text: strings.Repeat(string(rune(it.delim.char)), it.delim.length)}
		}
		if txt, ok := elem.(msgast.Text); ok && len(res) > 0 {
			if prev, ok := res[len(res)-1].Element.(msgast.Text); ok {
				res[len(res)-1] = msgast.RangedInlineElement{
					Start:   res[len(res)-1].Start,
					End:     it.end,
					Element: msgast.Text{Text: prev.Text + txt.Text},
				}
				continue
			}
		}
		res = append(res, msgast.RangedInlineElement{Start: it.start, End: it.end, Element: elem})
	}
	return res
}

// --- byte classes ---

func isInlineSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordByte(c byte) bool {
	return isAlpha(c) || isDigit(c) || c >= 0x80
}

func isSchemeByte(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '+' || c == '.' || c == '-'
}

// isEscapable reports whether a backslash escapes c (ASCII punctuation).
func isEscapable(c byte) bool {
	switch {
	case c >= '!' && c <= '/':
		return true
	case c >= ':' && c <= '@':
		return true
	case c >= '[' && c <= '`':
		return true
	case c >= '{' && c <= '~':
		return true
	}
	return false
}

func unescape(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] == '\\' && i+1 < len(b) && isEscapable(b[i+1]) {
			i++
		}
		out = append(out, b[i])
	}
	return out
}
