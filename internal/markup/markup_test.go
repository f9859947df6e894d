package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderPlainText(t *testing.T) {
	got := Render("hello there")

	assert.Len(t, got, 1)
	assert.Equal(t, Paragraph{{Kind: KindPlain, Text: "hello there"}}, got[0])
}

func TestRenderBoldAndItalic(t *testing.T) {
	got := Render("she *whispers* a **very** loud hello")

	assert.Len(t, got, 1)
	assert.Equal(t, Paragraph{
		{Kind: KindPlain, Text: "she "},
		{Kind: KindItalic, Text: "whispers"},
		{Kind: KindPlain, Text: " a "},
		{Kind: KindBold, Text: "very"},
		{Kind: KindPlain, Text: " loud hello"},
	}, got[0])
}

func TestRenderNewlinesSplitParagraphs(t *testing.T) {
	got := Render("first line\nsecond *line*")

	assert.Len(t, got, 2)
	assert.Equal(t, Paragraph{{Kind: KindPlain, Text: "first line"}}, got[0])
	assert.Equal(t, Paragraph{
		{Kind: KindPlain, Text: "second "},
		{Kind: KindItalic, Text: "line"},
	}, got[1])
}

func TestRenderEmptyLineYieldsEmptyParagraph(t *testing.T) {
	got := Render("above\n\nbelow")

	assert.Len(t, got, 3)
	assert.Empty(t, got[1])
}

func TestRenderNoNesting(t *testing.T) {
	// Mixed delimiters do not form a nested tree; the single-star token
	// wins at the earliest position it can match.
	got := Render("**a*b**")

	assert.Len(t, got, 1)
	assert.Equal(t, Paragraph{
		{Kind: KindItalic, Text: ""},
		{Kind: KindItalic, Text: "a"},
		{Kind: KindPlain, Text: "b**"},
	}, got[0])
}

func TestRenderUnterminatedDelimiterStaysPlain(t *testing.T) {
	got := Render("wait **for it")

	assert.Equal(t, Paragraph{{Kind: KindPlain, Text: "wait **for it"}}, got[0])
}

func TestRenderDelimitersOnly(t *testing.T) {
	got := Render("**bold** *ital*")

	assert.Equal(t, Paragraph{
		{Kind: KindBold, Text: "bold"},
		{Kind: KindPlain, Text: " "},
		{Kind: KindItalic, Text: "ital"},
	}, got[0])
}
