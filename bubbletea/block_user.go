package bubbletea

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/medichat/medichat"
)

var _ MessageBlock = (*UserMessageBlock)(nil)

// UserMessageBlock renders a user message right-aligned with its time.
type UserMessageBlock struct {
	msg    medichat.Message
	styles Styles
}

// NewUserMessageBlock creates a UserMessageBlock.
func NewUserMessageBlock(msg medichat.Message, styles Styles) *UserMessageBlock {
	return &UserMessageBlock{msg: msg, styles: styles}
}

func (b *UserMessageBlock) View(width int) string {
	inner := bubbleWidth(width) - 2
	text := lipgloss.NewStyle().Width(inner).Align(lipgloss.Right).Render(b.msg.Text)
	stamp := lipgloss.NewStyle().Width(inner).Align(lipgloss.Right).Render(b.styles.Muted.Render(b.msg.Time))
	bubble := b.styles.UserBubble.Render(lipgloss.JoinVertical(lipgloss.Right, text, stamp))
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble)
}
