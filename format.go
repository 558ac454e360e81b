package medichat

import (
	"regexp"
	"strings"
)

// Segment is a sealed interface for a block-level piece of formatted text.
// The unexported marker method prevents external implementations.
type Segment interface {
	segment()
}

// Span is a run of inline text, optionally emphasized.
type Span struct {
	Text string
	Bold bool
}

// Paragraph is a single non-list line.
type Paragraph struct {
	Spans []Span
}

func (Paragraph) segment() {}

// List is a run of numbered-list lines. Each item keeps its "N. " marker.
type List struct {
	Items [][]Span
}

func (List) segment() {}

// Interface compliance checks.
var (
	_ Segment = Paragraph{}
	_ Segment = List{}
)

var (
	listItemPattern = regexp.MustCompile(`^\d+\.\s`)
	boldPattern     = regexp.MustCompile(`\*\*[^*]+\*\*`)
)

// Format splits raw bot text into paragraph and list segments with bold spans
// resolved. Blank lines never produce a segment and do not close a list; only
// a non-blank, non-list line does. Empty input yields nil.
func Format(text string) []Segment {
	if text == "" {
		return nil
	}
	var (
		out   []Segment
		items [][]Span
	)
	for _, line := range strings.Split(text, "\n") {
		if listItemPattern.MatchString(line) {
			items = append(items, ParseBold(line))
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(items) > 0 {
			out = append(out, List{Items: items})
			items = nil
		}
		out = append(out, Paragraph{Spans: ParseBold(line)})
	}
	if len(items) > 0 {
		out = append(out, List{Items: items})
	}
	return out
}

// ParseBold resolves **bold** runs in line. Unterminated or empty markers are
// kept literally. Empty literal runs are omitted.
func ParseBold(line string) []Span {
	var spans []Span
	last := 0
	for _, loc := range boldPattern.FindAllStringIndex(line, -1) {
		if loc[0] > last {
			spans = append(spans, Span{Text: line[last:loc[0]]})
		}
		spans = append(spans, Span{Text: line[loc[0]+2 : loc[1]-2], Bold: true})
		last = loc[1]
	}
	if last < len(line) {
		spans = append(spans, Span{Text: line[last:]})
	}
	return spans
}

// PlainText joins spans without emphasis markers.
func PlainText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
