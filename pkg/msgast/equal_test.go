package msgast_test

import (
	"math/big"
	"testing"

	"github.com/yaklabco/chatmark/pkg/msgast"
)

func TestEqualIdenticalTrees(t *testing.T) {
	t.Parallel()

	a := buildTestMessage()
	b := buildTestMessage()

	if !a.Equal(b) {
		t.Error("identical trees should be Equal")
	}
	if !b.Equal(a) {
		t.Error("Equal should be symmetric")
	}
}

func TestEqualDetectsDifferences(t *testing.T) {
	t.Parallel()

	base := buildTestMessage()

	tests := []struct {
		name   string
		mutate func(m *msgast.MessageContent)
	}{
		{
			name: "different range",
			mutate: func(m *msgast.MessageContent) {
				m.Content[0].End = 99
			},
		},
		{
			name: "different element type",
			mutate: func(m *msgast.MessageContent) {
				m.Content[0].Element = msgast.HorizontalRule{}
			},
		},
		{
			name: "different text",
			mutate: func(m *msgast.MessageContent) {
				para := m.Content[0].Element.(msgast.Paragraph)
				children := make([]msgast.RangedInlineElement, len(para.Children))
				copy(children, para.Children)
				children[0].Element = msgast.Text{Text: "other "}
				m.Content[0].Element = msgast.Paragraph{Children: children}
			},
		},
		{
			name: "missing block",
			mutate: func(m *msgast.MessageContent) {
				m.Content = m.Content[:1]
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			other := buildTestMessage()
			tt.mutate(&other)

			if base.Equal(other) {
				t.Error("mutated tree should not be Equal")
			}
		})
	}
}

func TestEqualOrderedListStart(t *testing.T) {
	t.Parallel()

	a := msgast.MessageContent{Content: []msgast.RangedBlockElement{
		{Start: 0, End: 4, Element: msgast.OrderedList{Start: big.NewInt(5)}},
	}}
	b := msgast.MessageContent{Content: []msgast.RangedBlockElement{
		{Start: 0, End: 4, Element: msgast.OrderedList{Start: big.NewInt(5)}},
	}}
	c := msgast.MessageContent{Content: []msgast.RangedBlockElement{
		{Start: 0, End: 4, Element: msgast.OrderedList{Start: big.NewInt(6)}},
	}}

	if !a.Equal(b) {
		t.Error("same start value behind distinct pointers should be Equal")
	}
	if a.Equal(c) {
		t.Error("different start values should not be Equal")
	}
}

func TestFingerprintStable(t *testing.T) {
	t.Parallel()

	a := buildTestMessage()
	b := buildTestMessage()

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("Equal trees must share a fingerprint")
	}
}

func TestFingerprintDiffers(t *testing.T) {
	t.Parallel()

	a := buildTestMessage()

	b := buildTestMessage()
	b.Content[0].End = 99

	c := msgast.MessageContent{}

	if a.Fingerprint() == b.Fingerprint() {
		t.Error("range change should change the fingerprint")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("empty message should not collide with a populated one")
	}
}

func TestFingerprintDistinguishesVariants(t *testing.T) {
	t.Parallel()

	// Same children, different wrapper variant.
	children := []msgast.RangedInlineElement{
		{Start: 2, End: 6, Element: msgast.Text{Text: "text"}},
	}

	bold := msgast.MessageContent{Content: []msgast.RangedBlockElement{
		{Start: 0, End: 8, Element: msgast.Paragraph{Children: []msgast.RangedInlineElement{
			{Start: 0, End: 8, Element: msgast.Bold{Children: children}},
		}}},
	}}
	spoiler := msgast.MessageContent{Content: []msgast.RangedBlockElement{
		{Start: 0, End: 8, Element: msgast.Paragraph{Children: []msgast.RangedInlineElement{
			{Start: 0, End: 8, Element: msgast.Spoiler{Children: children}},
		}}},
	}}

	if bold.Fingerprint() == spoiler.Fingerprint() {
		t.Error("bold and spoiler wrappers should fingerprint differently")
	}
}
