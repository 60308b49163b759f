package msgast

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// JSON type tags for block elements.
const (
	jsonParagraph      = "paragraph"
	jsonHeading        = "heading"
	jsonQuote          = "quote"
	jsonUnorderedList  = "unordered_list"
	jsonOrderedList    = "ordered_list"
	jsonTable          = "table"
	jsonHorizontalRule = "horizontal_rule"
	jsonCodeBlock      = "code_block"
	jsonError          = "error"
)

// JSON type tags for inline elements.
const (
	jsonText           = "text"
	jsonCode           = "code"
	jsonLink           = "link"
	jsonBold           = "bold"
	jsonItalic         = "italic"
	jsonStrikethrough  = "strikethrough"
	jsonSpoiler        = "spoiler"
	jsonImage          = "image"
	jsonTaskListMarker = "task_list_marker"
)

// blockJSON is the wire shape for a ranged block element.
type blockJSON struct {
	Start     int                   `json:"start"`
	End       int                   `json:"end"`
	Type      string                `json:"type"`
	Children  []RangedBlockElement  `json:"children,omitempty"`
	Inlines   []RangedInlineElement `json:"inlines,omitempty"`
	Items     []ListItem            `json:"items,omitempty"`
	ListStart *big.Int              `json:"list_start,omitempty"`
	Head      []TableCell           `json:"head,omitempty"`
	Rows      [][]TableCell         `json:"rows,omitempty"`
	Lines     []codeLineJSON        `json:"lines,omitempty"`
	Message   string                `json:"message,omitempty"`
}

// inlineJSON is the wire shape for a ranged inline element.
type inlineJSON struct {
	Start    int                   `json:"start"`
	End      int                   `json:"end"`
	Type     string                `json:"type"`
	Text     string                `json:"text,omitempty"`
	DestURL  string                `json:"dest_url,omitempty"`
	URL      string                `json:"url,omitempty"`
	Children []RangedInlineElement `json:"children,omitempty"`
	Checked  *bool                 `json:"checked,omitempty"`
}

// codeLineJSON is the wire shape for one code block line.
type codeLineJSON struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// MarshalJSON encodes the element as a tagged object. Encoding is one-way:
// trees come from the parser, never from JSON.
func (r RangedBlockElement) MarshalJSON() ([]byte, error) {
	out := blockJSON{Start: r.Start, End: r.End}

	switch el := r.Element.(type) {
	case Paragraph:
		out.Type = jsonParagraph
		out.Inlines = el.Children
	case Heading:
		out.Type = jsonHeading
		out.Inlines = el.Children
	case Quote:
		out.Type = jsonQuote
		out.Children = el.Children
	case UnorderedList:
		out.Type = jsonUnorderedList
		out.Items = el.Items
	case OrderedList:
		out.Type = jsonOrderedList
		out.ListStart = el.Start
		out.Items = el.Items
	case Table:
		out.Type = jsonTable
		out.Head = el.Head
		out.Rows = el.Rows
	case HorizontalRule:
		out.Type = jsonHorizontalRule
	case CodeBlock:
		out.Type = jsonCodeBlock
		out.Lines = make([]codeLineJSON, 0, len(el.Lines))
		for _, line := range el.Lines {
			out.Lines = append(out.Lines, codeLineJSON{Start: line.Start, End: line.End, Text: line.Text})
		}
	case ParseError:
		out.Type = jsonError
		out.Message = el.Message
	default:
		return nil, fmt.Errorf("unknown block element %T", r.Element)
	}

	return json.Marshal(out)
}

// MarshalJSON encodes the element as a tagged object.
func (r RangedInlineElement) MarshalJSON() ([]byte, error) {
	out := inlineJSON{Start: r.Start, End: r.End}

	switch el := r.Element.(type) {
	case Text:
		out.Type = jsonText
		out.Text = el.Text
	case Code:
		out.Type = jsonCode
		out.Text = el.Text
	case Link:
		out.Type = jsonLink
		out.DestURL = el.DestURL
		out.Children = el.Children
	case Bold:
		out.Type = jsonBold
		out.Children = el.Children
	case Italic:
		out.Type = jsonItalic
		out.Children = el.Children
	case Strikethrough:
		out.Type = jsonStrikethrough
		out.Children = el.Children
	case Spoiler:
		out.Type = jsonSpoiler
		out.Children = el.Children
	case Image:
		out.Type = jsonImage
		out.URL = el.URL
	case TaskListMarker:
		out.Type = jsonTaskListMarker
		checked := el.Checked
		out.Checked = &checked
	default:
		return nil, fmt.Errorf("unknown inline element %T", r.Element)
	}

	return json.Marshal(out)
}
