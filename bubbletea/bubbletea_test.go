package bubbletea_test

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/medichat/medichat"
	bt "github.com/medichat/medichat/bubbletea"
	"github.com/medichat/medichat/mock"
	"github.com/stretchr/testify/require"
)

var (
	anonymous = medichat.Identity{}
	patient   = medichat.Identity{Token: "tok", Name: "Budi Santoso", Role: medichat.RoleUser, Email: "budi@example.id"}
	admin     = medichat.Identity{Token: "adm", Name: "Super Admin", Role: medichat.RoleAdmin, Email: "admin@medichat.com"}
)

func fixedClock() time.Time {
	return time.Date(2026, 10, 16, 9, 5, 0, 0, time.UTC)
}

func newSession(t *testing.T, id medichat.Identity) *medichat.AuthSession {
	t.Helper()
	sess, err := medichat.NewAuthSession(&mock.MemoryStore{Identity: id})
	require.NoError(t, err)
	return sess
}

// newApp creates an App for id and sends a WindowSizeMsg so it renders.
func newApp(t *testing.T, sess *medichat.AuthSession, svc bt.Services, opts ...bt.Option) bt.App {
	t.Helper()
	opts = append([]bt.Option{bt.WithClock(fixedClock)}, opts...)
	app := bt.New(sess, svc, opts...)
	app, _ = updateApp(t, app, tea.WindowSizeMsg{Width: 100, Height: 30})
	return app
}

// updateApp sends a message and returns the updated App.
func updateApp(t *testing.T, app bt.App, msg tea.Msg) (bt.App, tea.Cmd) {
	t.Helper()
	updated, cmd := app.Update(msg)
	model, ok := updated.(bt.App)
	require.True(t, ok)
	return model, cmd
}

// goTo navigates app to p through the route guard.
func goTo(t *testing.T, app bt.App, p medichat.Page) bt.App {
	t.Helper()
	app, _ = updateApp(t, app, bt.NavigateMsg{Page: p})
	return app
}

// collect runs cmd and returns the messages it produces, flattening batches.
// Commands that do not finish promptly, such as cursor blink timers, are
// skipped.
func collect(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(t, c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(200 * time.Millisecond):
		return nil
	}
}

// feed sends every message produced by cmd back into app, one level deep.
func feed(t *testing.T, app bt.App, cmd tea.Cmd) bt.App {
	t.Helper()
	for _, msg := range collect(t, cmd) {
		app, _ = updateApp(t, app, msg)
	}
	return app
}

func typeText(t *testing.T, app bt.App, s string) bt.App {
	t.Helper()
	app, _ = updateApp(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return app
}

func press(t *testing.T, app bt.App, k tea.KeyType) (bt.App, tea.Cmd) {
	t.Helper()
	return updateApp(t, app, tea.KeyMsg{Type: k})
}

func key(t *testing.T, app bt.App, r rune) (bt.App, tea.Cmd) {
	t.Helper()
	return updateApp(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func chatReply(text string, urls ...string) *mock.ChatService {
	return &mock.ChatService{
		ChatFn: func(context.Context, medichat.ChatRequest) (medichat.ChatResponse, error) {
			return medichat.ChatResponse{Response: text, URLs: urls}, nil
		},
	}
}

// drain feeds the messages produced by cmd back into app, following the
// commands they return until nothing is left.
func drain(t *testing.T, app bt.App, cmd tea.Cmd) bt.App {
	t.Helper()
	for depth := 0; cmd != nil && depth < 10; depth++ {
		var next []tea.Cmd
		for _, msg := range collect(t, cmd) {
			var c tea.Cmd
			app, c = updateApp(t, app, msg)
			next = append(next, c)
		}
		cmd = tea.Batch(next...)
	}
	return app
}

func usersService(users []medichat.User) *mock.UserService {
	return &mock.UserService{
		ListUsersFn: func(context.Context) ([]medichat.User, error) {
			return users, nil
		},
	}
}
