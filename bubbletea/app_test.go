package bubbletea_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/medichat/medichat"
	bt "github.com/medichat/medichat/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	app := bt.New(newSession(t, anonymous), bt.Services{})

	assert.Equal(t, medichat.PageHome, app.Page())
	assert.False(t, app.ProfileOpen())
	assert.Equal(t, "Memuat...", app.View())
	require.Len(t, app.Messages(), 1)
	assert.Equal(t, medichat.GreetingText, app.Messages()[0].Text)
}

func TestApp_Init(t *testing.T) {
	t.Parallel()

	app := bt.New(newSession(t, patient), bt.Services{}, bt.WithStartPage(medichat.PageAdmin))
	msgs := collect(t, app.Init())
	assert.Contains(t, msgs, bt.NavigateMsg{Page: medichat.PageAdmin})
}

func TestApp_NavigateAppliesGuard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		id     medichat.Identity
		target medichat.Page
		want   medichat.Page
	}{
		{"anonymous diagnosis goes to login", anonymous, medichat.PageDiagnosis, medichat.PageLogin},
		{"anonymous admin goes to login", anonymous, medichat.PageAdmin, medichat.PageLogin},
		{"anonymous register is public", anonymous, medichat.PageRegister, medichat.PageRegister},
		{"patient diagnosis is allowed", patient, medichat.PageDiagnosis, medichat.PageDiagnosis},
		{"patient admin goes to diagnosis", patient, medichat.PageAdmin, medichat.PageDiagnosis},
		{"admin diagnosis goes to admin", admin, medichat.PageDiagnosis, medichat.PageAdmin},
		{"unknown page goes home", patient, medichat.Page(42), medichat.PageHome},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := bt.Services{Users: usersService(nil)}
			app := newApp(t, newSession(t, tt.id), svc)
			app = goTo(t, app, tt.target)
			assert.Equal(t, tt.want, app.Page())
		})
	}
}

func TestApp_FunctionKeys(t *testing.T) {
	t.Parallel()

	t.Run("f2 for anonymous lands on login", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, newSession(t, anonymous), bt.Services{})
		app, _ = press(t, app, tea.KeyF2)
		assert.Equal(t, medichat.PageLogin, app.Page())
	})

	t.Run("f2 for admin opens the dashboard", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, newSession(t, admin), bt.Services{Users: usersService(nil)})
		app, _ = press(t, app, tea.KeyF2)
		assert.Equal(t, medichat.PageAdmin, app.Page())
	})

	t.Run("f3 for anonymous opens login", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, newSession(t, anonymous), bt.Services{})
		app, _ = press(t, app, tea.KeyF3)
		assert.Equal(t, medichat.PageLogin, app.Page())
		assert.False(t, app.ProfileOpen())
	})

	t.Run("f3 when logged in toggles the profile", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, newSession(t, patient), bt.Services{})
		app, _ = press(t, app, tea.KeyF3)
		assert.True(t, app.ProfileOpen())
		app, _ = press(t, app, tea.KeyF3)
		assert.False(t, app.ProfileOpen())
	})

	t.Run("f1 returns home", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, newSession(t, patient), bt.Services{})
		app = goTo(t, app, medichat.PageDiagnosis)
		app, _ = press(t, app, tea.KeyF1)
		assert.Equal(t, medichat.PageHome, app.Page())
	})

	t.Run("ctrl+c quits", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, newSession(t, patient), bt.Services{})
		_, cmd := press(t, app, tea.KeyCtrlC)
		require.NotNil(t, cmd)
		_, isQuit := cmd().(tea.QuitMsg)
		assert.True(t, isQuit)
	})
}

func TestApp_Header(t *testing.T) {
	t.Parallel()

	t.Run("anonymous sees login entry", func(t *testing.T) {
		t.Parallel()
		view := newApp(t, newSession(t, anonymous), bt.Services{}).View()
		assert.Contains(t, view, "MediChat")
		assert.Contains(t, view, "F2 Diagnosa")
		assert.Contains(t, view, "F3 Masuk")
	})

	t.Run("patient sees initial and first name", func(t *testing.T) {
		t.Parallel()
		view := newApp(t, newSession(t, patient), bt.Services{}).View()
		assert.Contains(t, view, "(B) Budi")
		assert.NotContains(t, view, "F3 Masuk")
	})

	t.Run("admin sees dashboard entry", func(t *testing.T) {
		t.Parallel()
		view := newApp(t, newSession(t, admin), bt.Services{}).View()
		assert.Contains(t, view, "F2 Dashboard Admin")
	})
}

func TestApp_Notice(t *testing.T) {
	t.Parallel()

	app := newApp(t, newSession(t, anonymous), bt.Services{})
	app, _ = updateApp(t, app, bt.NoticeMsg{Text: "Gagal", Err: true})
	assert.Equal(t, bt.NoticeMsg{Text: "Gagal", Err: true}, app.Notice())
	assert.Contains(t, app.View(), "Gagal")

	app, _ = press(t, app, tea.KeyDown)
	assert.Equal(t, bt.NoticeMsg{}, app.Notice())
}

func TestApp_HomeEnter(t *testing.T) {
	t.Parallel()

	t.Run("anonymous is sent to login", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, newSession(t, anonymous), bt.Services{})
		assert.Contains(t, app.View(), "Selamat Datang di MediChat")
		_, cmd := press(t, app, tea.KeyEnter)
		assert.Equal(t, []tea.Msg{bt.NavigateMsg{Page: medichat.PageLogin}}, collect(t, cmd))
	})

	t.Run("admin is sent to the dashboard", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, newSession(t, admin), bt.Services{})
		_, cmd := press(t, app, tea.KeyEnter)
		assert.Equal(t, []tea.Msg{bt.NavigateMsg{Page: medichat.PageAdmin}}, collect(t, cmd))
	})
}
