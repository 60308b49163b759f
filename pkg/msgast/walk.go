package msgast

// BlockWalkFunc is the callback signature for WalkBlocks.
// Return a non-nil error to stop the walk.
type BlockWalkFunc func(el RangedBlockElement) error

// InlineWalkFunc is the callback signature for WalkInlines.
// Return a non-nil error to stop the walk.
type InlineWalkFunc func(el RangedInlineElement) error

// WalkBlocks performs a pre-order traversal of every block element in the
// message, descending into quotes, list items, and table cells. If fn
// returns a non-nil error the walk stops immediately and returns that error.
func (m MessageContent) WalkBlocks(fn BlockWalkFunc) error {
	return walkBlocks(m.Content, fn)
}

// WalkInlines visits every inline element in the message in source order,
// descending into the children of emphasis, spoilers, and links.
func (m MessageContent) WalkInlines(fn InlineWalkFunc) error {
	return m.WalkBlocks(func(el RangedBlockElement) error {
		switch b := el.Element.(type) {
		case Paragraph:
			return walkInlines(b.Children, fn)
		case Heading:
			return walkInlines(b.Children, fn)
		default:
			return nil
		}
	})
}

func walkBlocks(blocks []RangedBlockElement, fn BlockWalkFunc) error {
	for _, el := range blocks {
		if err := fn(el); err != nil {
			return err
		}

		switch b := el.Element.(type) {
		case Quote:
			if err := walkBlocks(b.Children, fn); err != nil {
				return err
			}
		case UnorderedList:
			for _, item := range b.Items {
				if err := walkBlocks(item, fn); err != nil {
					return err
				}
			}
		case OrderedList:
			for _, item := range b.Items {
				if err := walkBlocks(item, fn); err != nil {
					return err
				}
			}
		case Table:
			for _, cell := range b.Head {
				if err := walkBlocks(cell, fn); err != nil {
					return err
				}
			}
			for _, row := range b.Rows {
				for _, cell := range row {
					if err := walkBlocks(cell, fn); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func walkInlines(inlines []RangedInlineElement, fn InlineWalkFunc) error {
	for _, el := range inlines {
		if err := fn(el); err != nil {
			return err
		}

		var children []RangedInlineElement
		switch in := el.Element.(type) {
		case Link:
			children = in.Children
		case Bold:
			children = in.Children
		case Italic:
			children = in.Children
		case Strikethrough:
			children = in.Children
		case Spoiler:
			children = in.Children
		}
		if len(children) > 0 {
			if err := walkInlines(children, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// FindBlocks returns all block elements matching the predicate, in
// pre-order.
func (m MessageContent) FindBlocks(predicate func(el RangedBlockElement) bool) []RangedBlockElement {
	var result []RangedBlockElement

	//nolint:errcheck // the callback only returns nil
	m.WalkBlocks(func(el RangedBlockElement) error {
		if predicate(el) {
			result = append(result, el)
		}
		return nil
	})

	return result
}

// CodeBlocks returns every code block in the message, in source order.
func (m MessageContent) CodeBlocks() []RangedBlockElement {
	return m.FindBlocks(func(el RangedBlockElement) bool {
		_, ok := el.Element.(CodeBlock)
		return ok
	})
}

// Stats summarizes a message tree.
type Stats struct {
	// Blocks is the total number of block elements, nested ones included.
	Blocks int

	// Inlines is the total number of inline elements, nested ones included.
	Inlines int

	// Errors is the number of ParseError blocks.
	Errors int
}

// Count walks the message and tallies node counts.
func (m MessageContent) Count() Stats {
	var stats Stats

	//nolint:errcheck // the callbacks only return nil
	m.WalkBlocks(func(el RangedBlockElement) error {
		stats.Blocks++
		if _, ok := el.Element.(ParseError); ok {
			stats.Errors++
		}
		return nil
	})

	//nolint:errcheck // the callbacks only return nil
	m.WalkInlines(func(el RangedInlineElement) error {
		stats.Inlines++
		return nil
	})

	return stats
}
