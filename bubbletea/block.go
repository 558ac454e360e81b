package bubbletea

import "github.com/medichat/medichat"

// MessageBlock is a renderable element in the conversation. View takes a
// width parameter so the chat screen controls layout and blocks are testable
// in isolation.
type MessageBlock interface {
	View(width int) string
}

// bubbleWidth is the widest a message bubble may grow within width.
func bubbleWidth(width int) int {
	return max(width*3/4, min(width, 20))
}

// NewMessageBlock returns the block for msg according to its sender.
func NewMessageBlock(msg medichat.Message, styles Styles) MessageBlock {
	switch msg.Sender {
	case medichat.SenderUser:
		return NewUserMessageBlock(msg, styles)
	case medichat.SenderBot:
		return NewBotMessageBlock(msg, styles)
	default:
		return NewSystemMessageBlock(msg, styles)
	}
}
