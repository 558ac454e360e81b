package bubbletea

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/medichat/medichat"
)

type loginResultMsg struct {
	res medichat.LoginResult
	err error
}

// loginScreen is the username/password form.
type loginScreen struct {
	env     *env
	form    form
	from    medichat.Page
	loading bool
	err     string
	width   int
}

func newLoginScreen(e *env) loginScreen {
	return loginScreen{
		env: e,
		form: newForm(
			field{label: "Username", placeholder: "Masukkan username Anda"},
			field{label: "Password", placeholder: "Masukkan password", secret: true},
		),
	}
}

func (s loginScreen) setSize(w, _ int) loginScreen {
	s.width = w
	s.form = s.form.setWidth(min(w, 60))
	return s
}

// enter clears the form. from is the guarded page that sent the user here,
// if any.
func (s loginScreen) enter(from medichat.Page) (loginScreen, tea.Cmd) {
	s.form = s.form.reset()
	s.from = from
	s.loading = false
	s.err = ""
	return s, nil
}

func (s loginScreen) update(msg tea.Msg) (loginScreen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		return s.handleResult(msg)

	case tea.KeyMsg:
		if s.loading {
			return s, nil
		}
		switch msg.String() {
		case "enter":
			return s.submit()
		case "ctrl+r":
			return s, navigate(medichat.PageRegister)
		}
	}
	var cmd tea.Cmd
	s.form, cmd = s.form.update(msg)
	return s, cmd
}

func (s loginScreen) submit() (loginScreen, tea.Cmd) {
	creds := medichat.Credentials{
		Username: strings.TrimSpace(s.form.value(0)),
		Password: s.form.value(1),
	}
	if err := creds.Validate(); err != nil {
		s.err = errorText(err, err.Error())
		return s, nil
	}
	s.err = ""
	s.loading = true
	auth := s.env.services.Auth
	return s, func() tea.Msg {
		res, err := auth.Login(context.Background(), creds)
		return loginResultMsg{res: res, err: err}
	}
}

func (s loginScreen) handleResult(msg loginResultMsg) (loginScreen, tea.Cmd) {
	s.loading = false
	if msg.err != nil {
		s.env.logger.Warn("login failed", "error", msg.err)
		if serverRejected(msg.err) {
			s.err = medichat.ErrorDetail(msg.err, msgLoginRejected)
		} else {
			s.err = msgLoginOffline
		}
		return s, nil
	}
	id, err := s.env.session.Login(msg.res)
	if err != nil {
		s.env.logger.Error("store identity", "error", err)
		s.err = msgLoginOffline
		return s, nil
	}
	s.form = s.form.reset()
	return s, tea.Batch(
		notify("Halo, "+id.FirstName()+"!"),
		navigate(medichat.EntryPage(id)),
	)
}

func (s loginScreen) view() string {
	styles := s.env.styles
	parts := []string{
		styles.Accent.Render("Selamat Datang Kembali"),
		styles.Muted.Render("Masuk untuk konsultasi kesehatan Anda"),
		"",
		s.form.view(styles),
		"",
	}
	switch {
	case s.loading:
		parts = append(parts, styles.Muted.Render("Memproses..."))
	case s.err != "":
		parts = append(parts, styles.Error.Render(s.err))
	case s.from != medichat.PageHome:
		parts = append(parts, styles.Muted.Render("Silakan masuk untuk membuka "+pageTitle(s.from)+"."))
	}
	parts = append(parts, "", styles.Muted.Render("Belum punya akun? Tekan Ctrl+R untuk daftar sekarang."))
	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (s loginScreen) hints() string { return "Tab pindah kolom · Enter masuk" }
