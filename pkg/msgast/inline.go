package msgast

// InlineElement is the closed set of inline-level node types.
type InlineElement interface {
	inlineElement()
}

// Text is a literal text run. Backslash escapes are resolved and line
// breaks inside the run are normalized to "\n"; the range still covers the
// raw source bytes including the escape characters.
type Text struct {
	Text string
}

// Code is an inline code span. The text is the literal interior of the
// span; code spans never nest and contain no child elements.
type Code struct {
	Text string
}

// Link is a hyperlink with inline children as its visible content.
// Links never contain other links.
type Link struct {
	DestURL  string
	Children []RangedInlineElement
}

// Bold is strongly-emphasized content.
type Bold struct {
	Children []RangedInlineElement
}

// Italic is emphasized content.
type Italic struct {
	Children []RangedInlineElement
}

// Strikethrough is struck-through content.
type Strikethrough struct {
	Children []RangedInlineElement
}

// Spoiler is content hidden until revealed by the reader.
type Spoiler struct {
	Children []RangedInlineElement
}

// Image is an image reference. Alt text is parsed for well-formedness but
// not retained.
type Image struct {
	URL string
}

// TaskListMarker is a checkbox at the start of a list item.
type TaskListMarker struct {
	Checked bool
}

func (Text) inlineElement()           {}
func (Code) inlineElement()           {}
func (Link) inlineElement()           {}
func (Bold) inlineElement()           {}
func (Italic) inlineElement()         {}
func (Strikethrough) inlineElement()  {}
func (Spoiler) inlineElement()        {}
func (Image) inlineElement()          {}
func (TaskListMarker) inlineElement() {}
