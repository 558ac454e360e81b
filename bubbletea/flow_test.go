package bubbletea_test

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/medichat/medichat"
	bt "github.com/medichat/medichat/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, tm *teatest.TestModel, text string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte(text))
	}, teatest.WithDuration(5*time.Second))
}

func TestFlow(t *testing.T) {
	t.Parallel()

	t.Run("login and consult", func(t *testing.T) {
		t.Parallel()

		res := medichat.LoginResult{AccessToken: "tok", FullName: "Budi Santoso", Role: medichat.RoleUser, Email: "budi@example.id"}
		svc := bt.Services{
			Auth: loginService(res, nil, nil),
			Chat: chatReply("Perbanyak minum air.", "https://sehat.example/demam"),
		}
		sess := newSession(t, anonymous)
		m := bt.New(sess, svc, bt.WithClock(fixedClock))

		tm := teatest.NewTestModel(t, m,
			teatest.WithInitialTermSize(100, 30),
		)

		waitFor(t, tm, "Selamat Datang di MediChat")
		tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
		waitFor(t, tm, "Selamat Datang Kembali")

		tm.Type("budi")
		tm.Send(tea.KeyMsg{Type: tea.KeyTab})
		tm.Type("rahasia")
		tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
		waitFor(t, tm, "Asisten Medis AI")

		tm.Type("Saya demam")
		tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
		waitFor(t, tm, "Sumber 1")

		tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

		fm := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
		final, ok := fm.(bt.App)
		require.True(t, ok)
		assert.Equal(t, medichat.PageDiagnosis, final.Page())
		msgs := final.Messages()
		require.Len(t, msgs, 3)
		assert.Equal(t, "Saya demam", msgs[1].Text)
		assert.Equal(t, "Perbanyak minum air.", msgs[2].Text)
		assert.Equal(t, "tok", sess.Token())
	})

	t.Run("admin dashboard on start", func(t *testing.T) {
		t.Parallel()

		var rec userRecorder
		m := bt.New(newSession(t, admin), bt.Services{Users: rec.service()},
			bt.WithClock(fixedClock),
			bt.WithStartPage(medichat.PageAdmin),
		)

		tm := teatest.NewTestModel(t, m,
			teatest.WithInitialTermSize(100, 30),
		)

		waitFor(t, tm, "Budi Santoso")
		tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

		fm := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
		final, ok := fm.(bt.App)
		require.True(t, ok)
		assert.Equal(t, medichat.PageAdmin, final.Page())
	})

	t.Run("guarded start redirects to login", func(t *testing.T) {
		t.Parallel()

		m := bt.New(newSession(t, anonymous), bt.Services{},
			bt.WithStartPage(medichat.PageDiagnosis),
		)
		tm := teatest.NewTestModel(t, m,
			teatest.WithInitialTermSize(100, 30),
		)

		waitFor(t, tm, "Silakan masuk untuk membuka Diagnosa.")
		tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

		fm := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
		final, ok := fm.(bt.App)
		require.True(t, ok)
		assert.Equal(t, medichat.PageLogin, final.Page())
	})
}
