package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/medichat/medichat"
)

var _ MessageBlock = (*BotMessageBlock)(nil)

// BotMessageBlock renders a bot answer: formatted paragraphs and numbered
// lists with bold spans, followed by its reference links and time. Messages
// never change once appended, so the output is cached per width.
type BotMessageBlock struct {
	msg      medichat.Message
	segments []medichat.Segment
	styles   Styles
	byWidth  map[int]string
}

// NewBotMessageBlock creates a BotMessageBlock.
func NewBotMessageBlock(msg medichat.Message, styles Styles) *BotMessageBlock {
	return &BotMessageBlock{
		msg:      msg,
		segments: medichat.Format(msg.Text),
		styles:   styles,
		byWidth:  make(map[int]string),
	}
}

func (b *BotMessageBlock) View(width int) string {
	if cached, ok := b.byWidth[width]; ok {
		return cached
	}
	inner := max(bubbleWidth(width)-2, 1)
	wrap := lipgloss.NewStyle().Width(inner)

	var parts []string
	for _, seg := range b.segments {
		switch s := seg.(type) {
		case medichat.Paragraph:
			parts = append(parts, wrap.Render(b.spans(s.Spans)))
		case medichat.List:
			items := make([]string, len(s.Items))
			for i, item := range s.Items {
				items[i] = wrap.Render(b.spans(item))
			}
			parts = append(parts, strings.Join(items, "\n"))
		}
	}
	if refs := b.references(); refs != "" {
		parts = append(parts, refs)
	}
	parts = append(parts, b.styles.Muted.Render(b.msg.Time))

	out := b.styles.BotBubble.Render(strings.Join(parts, "\n"))
	b.byWidth[width] = out
	return out
}

func (b *BotMessageBlock) spans(spans []medichat.Span) string {
	var sb strings.Builder
	for _, sp := range spans {
		if sp.Bold {
			sb.WriteString(b.styles.Bold.Render(sp.Text))
			continue
		}
		sb.WriteString(sp.Text)
	}
	return sb.String()
}

func (b *BotMessageBlock) references() string {
	if len(b.msg.URLs) == 0 {
		return ""
	}
	lines := []string{b.styles.Muted.Render("Referensi:")}
	for i, u := range b.msg.URLs {
		lines = append(lines, fmt.Sprintf("%s %s",
			b.styles.Link.Render(fmt.Sprintf("🔗 Sumber %d", i+1)),
			b.styles.Muted.Render(u)))
	}
	return strings.Join(lines, "\n")
}
