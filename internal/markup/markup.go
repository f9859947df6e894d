// Package markup renders the chat transcript's inline markup convention:
// `**text**` is emphasized, `*text*` is muted, literal newlines delimit
// paragraphs. The parser is deliberately non-recursive with no nesting or
// escaping; splitting follows the combined token pattern exactly, so an
// input like `**a*b**` falls apart into stray delimiters rather than a
// nested emphasis tree.
package markup

import (
	"regexp"
	"strings"
)

// Kind classifies a rendered span
type Kind string

// Span kinds
const (
	KindPlain  Kind = "plain"
	KindBold   Kind = "bold"
	KindItalic Kind = "italic"
)

// Span is a run of text with one rendering treatment
type Span struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Paragraph is one newline-delimited block of spans
type Paragraph []Span

// Alternation order matters: the single-star token is tried first at each
// position. Reordering the alternatives changes how mixed delimiters split.
var tokenPattern = regexp.MustCompile(`\*[^*]+\*|\*\*[^*]+\*\*`)

// Render splits content into paragraphs of classified spans
func Render(content string) []Paragraph {
	lines := strings.Split(content, "\n")
	paragraphs := make([]Paragraph, 0, len(lines))

	for _, line := range lines {
		paragraphs = append(paragraphs, renderLine(line))
	}

	return paragraphs
}

func renderLine(line string) Paragraph {
	paragraph := Paragraph{}

	pos := 0
	for _, loc := range tokenPattern.FindAllStringIndex(line, -1) {
		if loc[0] > pos {
			paragraph = appendSpan(paragraph, line[pos:loc[0]])
		}
		paragraph = appendSpan(paragraph, line[loc[0]:loc[1]])
		pos = loc[1]
	}
	if pos < len(line) {
		paragraph = appendSpan(paragraph, line[pos:])
	}

	return paragraph
}

// appendSpan classifies a part the way the transcript view does: the
// double-star check runs before the single-star check, delimiters are
// stripped, everything else passes through as plain text.
func appendSpan(p Paragraph, part string) Paragraph {
	if part == "" {
		return p
	}

	switch {
	case strings.HasPrefix(part, "**") && strings.HasSuffix(part, "**"):
		return append(p, Span{Kind: KindBold, Text: sliceDelims(part, 2)})
	case strings.HasPrefix(part, "*") && strings.HasSuffix(part, "*"):
		return append(p, Span{Kind: KindItalic, Text: sliceDelims(part, 1)})
	default:
		return append(p, Span{Kind: KindPlain, Text: part})
	}
}

func sliceDelims(s string, width int) string {
	if len(s) <= 2*width {
		return ""
	}
	return s[width : len(s)-width]
}
