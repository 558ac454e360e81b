package bubbletea

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/medichat/medichat"
)

type registerResultMsg struct {
	err error
}

// Register form field order.
const (
	regFullName = iota
	regEmail
	regUsername
	regPassword
	regConfirm
)

// registerScreen is the sign-up form.
type registerScreen struct {
	env     *env
	form    form
	loading bool
	err     string
}

func newRegisterScreen(e *env) registerScreen {
	return registerScreen{
		env: e,
		form: newForm(
			field{label: "Nama Lengkap", placeholder: "Nama Lengkap Anda"},
			field{label: "Email", placeholder: "nama@email.com"},
			field{label: "Username", placeholder: "Buat username unik"},
			field{label: "Password", placeholder: "Minimal 6 karakter", secret: true},
			field{label: "Konfirmasi Password", placeholder: "Ulangi password", secret: true},
		),
	}
}

func (s registerScreen) setSize(w, _ int) registerScreen {
	s.form = s.form.setWidth(min(w, 60))
	return s
}

func (s registerScreen) enter() (registerScreen, tea.Cmd) {
	s.form = s.form.reset()
	s.loading = false
	s.err = ""
	return s, nil
}

func (s registerScreen) update(msg tea.Msg) (registerScreen, tea.Cmd) {
	switch msg := msg.(type) {
	case registerResultMsg:
		s.loading = false
		if msg.err != nil {
			s.env.logger.Warn("register failed", "error", msg.err)
			if serverRejected(msg.err) {
				s.err = medichat.ErrorDetail(msg.err, msgRegisterFailed)
			} else {
				s.err = msgOffline
			}
			return s, nil
		}
		s.form = s.form.reset()
		return s, tea.Batch(navigate(medichat.PageLogin), notify(msgRegistered))

	case tea.KeyMsg:
		if s.loading {
			return s, nil
		}
		switch msg.String() {
		case "enter":
			return s.submit()
		case "ctrl+l":
			return s, navigate(medichat.PageLogin)
		}
	}
	var cmd tea.Cmd
	s.form, cmd = s.form.update(msg)
	return s, cmd
}

func (s registerScreen) submit() (registerScreen, tea.Cmd) {
	reg := medichat.Registration{
		FullName:        strings.TrimSpace(s.form.value(regFullName)),
		Email:           strings.TrimSpace(s.form.value(regEmail)),
		Username:        strings.TrimSpace(s.form.value(regUsername)),
		Password:        s.form.value(regPassword),
		ConfirmPassword: s.form.value(regConfirm),
	}
	if err := reg.Validate(); err != nil {
		s.err = errorText(err, err.Error())
		return s, nil
	}
	s.err = ""
	s.loading = true
	auth := s.env.services.Auth
	return s, func() tea.Msg {
		return registerResultMsg{err: auth.Register(context.Background(), reg)}
	}
}

func (s registerScreen) view() string {
	styles := s.env.styles
	parts := []string{
		styles.Accent.Render("Buat Akun Baru"),
		styles.Muted.Render("Daftar untuk mulai konsultasi"),
		"",
		s.form.view(styles),
		"",
	}
	switch {
	case s.loading:
		parts = append(parts, styles.Muted.Render("Memproses..."))
	case s.err != "":
		parts = append(parts, styles.Error.Render(s.err))
	}
	parts = append(parts, "", styles.Muted.Render("Sudah punya akun? Tekan Ctrl+L untuk masuk disini."))
	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (s registerScreen) hints() string { return "Tab pindah kolom · Enter daftar" }
