package bubbletea

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/medichat/medichat"
)

var _ MessageBlock = (*SystemMessageBlock)(nil)

// SystemMessageBlock renders an informational line centred and muted.
type SystemMessageBlock struct {
	msg    medichat.Message
	styles Styles
}

// NewSystemMessageBlock creates a SystemMessageBlock.
func NewSystemMessageBlock(msg medichat.Message, styles Styles) *SystemMessageBlock {
	return &SystemMessageBlock{msg: msg, styles: styles}
}

func (b *SystemMessageBlock) View(width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(b.styles.Muted.Render(b.msg.Text))
}
