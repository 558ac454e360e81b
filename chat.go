package medichat

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ChatState is the state of a ChatController.
type ChatState int

const (
	ChatIdle     ChatState = iota // Accepting input.
	ChatAwaiting                  // One request in flight; input disabled.
)

func (s ChatState) String() string {
	switch s {
	case ChatIdle:
		return "idle"
	case ChatAwaiting:
		return "awaiting-response"
	default:
		return fmt.Sprintf("ChatState(%d)", int(s))
	}
}

// Outcome reports what Resolve did with a response.
type Outcome int

const (
	// OutcomeAnswered appended the server's answer.
	OutcomeAnswered Outcome = iota
	// OutcomeFailed appended the connection-error message.
	OutcomeFailed
	// OutcomeLoginRequired appended nothing; the caller must clear the token
	// and navigate to login.
	OutcomeLoginRequired
	// OutcomeStale discarded a response that belongs to a reset session.
	OutcomeStale
)

// Turn identifies one submitted chat turn. Generation ties the eventual
// response to the session it was sent from.
type Turn struct {
	Generation uint64
	Request    ChatRequest
}

// ChatController owns the message list of one chat session and its
// idle/awaiting state machine. It performs no I/O: callers send
// Turn.Request and hand the result back to Resolve.
type ChatController struct {
	conv       *Conversation
	state      ChatState
	generation uint64
}

// NewChatController creates a controller whose conversation holds only the
// greeting. A nil now uses time.Now.
func NewChatController(now func() time.Time) *ChatController {
	return &ChatController{conv: NewConversation(now)}
}

// State returns the current state.
func (c *ChatController) State() ChatState { return c.state }

// Messages returns a copy of the current message sequence.
func (c *ChatController) Messages() []Message { return c.conv.Messages() }

// Generation returns the current session generation. It changes on Reset.
func (c *ChatController) Generation() uint64 { return c.generation }

// Submit appends text as a user message and moves to ChatAwaiting. Blank
// text returns ErrValidation and a pending turn returns ErrBusy; neither
// changes state. The history is derived after the append.
func (c *ChatController) Submit(text string) (Turn, error) {
	if c.state == ChatAwaiting {
		return Turn{}, ErrBusy
	}
	if strings.TrimSpace(text) == "" {
		return Turn{}, fmt.Errorf("empty message: %w", ErrValidation)
	}
	c.conv.AppendUser(text)
	c.state = ChatAwaiting
	return Turn{
		Generation: c.generation,
		Request: ChatRequest{
			Message: text,
			History: History(c.conv.messages),
		},
	}, nil
}

// Resolve completes turn with the chat endpoint's result. Responses from a
// generation older than the current one are discarded.
func (c *ChatController) Resolve(turn Turn, resp ChatResponse, err error) Outcome {
	if turn.Generation != c.generation || c.state != ChatAwaiting {
		return OutcomeStale
	}
	c.state = ChatIdle
	switch {
	case err == nil:
		text := resp.Response
		if text == "" {
			text = FallbackText
		}
		c.conv.AppendBot(text, resp.URLs)
		return OutcomeAnswered
	case errors.Is(err, ErrUnauthorized):
		return OutcomeLoginRequired
	default:
		c.conv.AppendBot(ConnectionText, nil)
		return OutcomeFailed
	}
}

// Reset starts a new session: the sequence becomes a single greeting, the
// state returns to idle and any pending turn becomes stale.
func (c *ChatController) Reset() {
	c.generation++
	c.state = ChatIdle
	c.conv.Reset()
}
