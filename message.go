package medichat

import "time"

// Fixed bot texts.
const (
	GreetingText   = "Halo! Saya Asisten Medis AI. Ada keluhan kesehatan apa hari ini?"
	FallbackText   = "Maaf, saya tidak mengerti."
	ConnectionText = "Gagal terhubung ke server. Mohon periksa koneksi Anda."
)

// TimeLayout formats Message.Time as hour:minute.
const TimeLayout = "15:04"

// Message is one entry of a chat conversation.
type Message struct {
	ID     int
	Text   string
	Sender Sender
	Time   string
	URLs   []string // reference links, bot messages only
}

// Conversation is the transient, append-only message list of one chat
// session. It is never persisted.
type Conversation struct {
	messages []Message
	now      func() time.Time
}

// NewConversation creates a conversation seeded with the greeting. A nil now
// uses time.Now.
func NewConversation(now func() time.Time) *Conversation {
	if now == nil {
		now = time.Now
	}
	c := &Conversation{now: now}
	c.Reset()
	return c
}

// Messages returns a copy of the message sequence.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int { return len(c.messages) }

// AppendUser appends a user message and returns it.
func (c *Conversation) AppendUser(text string) Message {
	return c.append(Message{Text: text, Sender: SenderUser})
}

// AppendBot appends a bot message. A nil urls slice is stored as empty.
func (c *Conversation) AppendBot(text string, urls []string) Message {
	if urls == nil {
		urls = []string{}
	}
	return c.append(Message{Text: text, Sender: SenderBot, URLs: urls})
}

// Reset replaces the whole sequence with a single fresh greeting.
func (c *Conversation) Reset() {
	c.messages = nil
	c.AppendBot(GreetingText, nil)
}

func (c *Conversation) append(m Message) Message {
	m.ID = len(c.messages) + 1
	m.Time = c.now().Format(TimeLayout)
	c.messages = append(c.messages, m)
	return m
}
