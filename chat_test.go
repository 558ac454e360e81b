package medichat_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/medichat/medichat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatController_Submit(t *testing.T) {
	t.Parallel()

	t.Run("appends user message optimistically", func(t *testing.T) {
		t.Parallel()
		c := medichat.NewChatController(fixedClock)
		turn, err := c.Submit("Saya demam")
		require.NoError(t, err)

		assert.Equal(t, medichat.ChatAwaiting, c.State())
		msgs := c.Messages()
		require.Len(t, msgs, 2)
		assert.Equal(t, medichat.SenderUser, msgs[1].Sender)
		assert.Equal(t, "Saya demam", turn.Request.Message)
		assert.Equal(t, []medichat.HistoryEntry{
			{Role: medichat.HistoryAssistant, Content: medichat.GreetingText},
			{Role: medichat.HistoryUser, Content: "Saya demam"},
		}, turn.Request.History)
	})

	t.Run("rejects blank text", func(t *testing.T) {
		t.Parallel()
		c := medichat.NewChatController(fixedClock)
		_, err := c.Submit("   \t")
		assert.ErrorIs(t, err, medichat.ErrValidation)
		assert.Equal(t, medichat.ChatIdle, c.State())
		assert.Len(t, c.Messages(), 1)
	})

	t.Run("rejects submit while awaiting", func(t *testing.T) {
		t.Parallel()
		c := medichat.NewChatController(fixedClock)
		_, err := c.Submit("satu")
		require.NoError(t, err)
		_, err = c.Submit("dua")
		assert.ErrorIs(t, err, medichat.ErrBusy)
		assert.Len(t, c.Messages(), 2)
	})
}

func TestChatController_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("success appends bot answer with urls", func(t *testing.T) {
		t.Parallel()
		c := medichat.NewChatController(fixedClock)
		turn, err := c.Submit("Saya demam")
		require.NoError(t, err)

		out := c.Resolve(turn, medichat.ChatResponse{Response: "Coba istirahat", URLs: []string{"http://x"}}, nil)

		assert.Equal(t, medichat.OutcomeAnswered, out)
		assert.Equal(t, medichat.ChatIdle, c.State())
		msgs := c.Messages()
		require.Len(t, msgs, 3)
		assert.Equal(t, medichat.SenderBot, msgs[2].Sender)
		assert.Equal(t, "Coba istirahat", msgs[2].Text)
		assert.Equal(t, []string{"http://x"}, msgs[2].URLs)
	})

	t.Run("missing response text uses fallback", func(t *testing.T) {
		t.Parallel()
		c := medichat.NewChatController(fixedClock)
		turn, _ := c.Submit("halo")
		c.Resolve(turn, medichat.ChatResponse{}, nil)
		msgs := c.Messages()
		assert.Equal(t, medichat.FallbackText, msgs[2].Text)
		assert.Equal(t, []string{}, msgs[2].URLs)
	})

	t.Run("unauthorized appends nothing", func(t *testing.T) {
		t.Parallel()
		c := medichat.NewChatController(fixedClock)
		turn, _ := c.Submit("halo")
		out := c.Resolve(turn, medichat.ChatResponse{}, fmt.Errorf("chat: %w", medichat.ErrUnauthorized))
		assert.Equal(t, medichat.OutcomeLoginRequired, out)
		assert.Len(t, c.Messages(), 2)
		assert.Equal(t, medichat.ChatIdle, c.State())
	})

	t.Run("other failure appends connection error", func(t *testing.T) {
		t.Parallel()
		c := medichat.NewChatController(fixedClock)
		turn, _ := c.Submit("halo")
		out := c.Resolve(turn, medichat.ChatResponse{}, errors.New("dial tcp: refused"))
		assert.Equal(t, medichat.OutcomeFailed, out)
		msgs := c.Messages()
		require.Len(t, msgs, 3)
		assert.Equal(t, medichat.ConnectionText, msgs[2].Text)
		assert.Empty(t, msgs[2].URLs)
	})

	t.Run("response after reset is discarded", func(t *testing.T) {
		t.Parallel()
		c := medichat.NewChatController(fixedClock)
		turn, _ := c.Submit("halo")
		c.Reset()

		out := c.Resolve(turn, medichat.ChatResponse{Response: "basi"}, nil)

		assert.Equal(t, medichat.OutcomeStale, out)
		msgs := c.Messages()
		require.Len(t, msgs, 1)
		assert.Equal(t, medichat.GreetingText, msgs[0].Text)
		assert.Equal(t, medichat.ChatIdle, c.State())
	})

	t.Run("second resolve of same turn is stale", func(t *testing.T) {
		t.Parallel()
		c := medichat.NewChatController(fixedClock)
		turn, _ := c.Submit("halo")
		c.Resolve(turn, medichat.ChatResponse{Response: "ok"}, nil)
		assert.Equal(t, medichat.OutcomeStale, c.Resolve(turn, medichat.ChatResponse{Response: "ok"}, nil))
		assert.Len(t, c.Messages(), 3)
	})
}

func TestChatController_Reset(t *testing.T) {
	t.Parallel()

	c := medichat.NewChatController(fixedClock)
	gen := c.Generation()
	_, err := c.Submit("halo")
	require.NoError(t, err)

	c.Reset()

	assert.Equal(t, medichat.ChatIdle, c.State())
	assert.NotEqual(t, gen, c.Generation())
	assert.Len(t, c.Messages(), 1)
}

func TestChatState_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "idle", medichat.ChatIdle.String())
	assert.Equal(t, "awaiting-response", medichat.ChatAwaiting.String())
}
