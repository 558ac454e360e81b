package bubbletea

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/medichat/medichat"
)

type profileUpdatedMsg struct {
	err error
}

// profileModal shows the logged-in identity and edits the name or password.
// A successful change or a confirmed logout clears the session.
type profileModal struct {
	env    *env
	open   bool
	editor medichat.ProfileEditor
	form   form

	confirmLogout bool
	saving        bool
	err           string
	width         int
}

func newProfileModal(e *env) profileModal {
	return profileModal{env: e}
}

func (m profileModal) setSize(w, _ int) profileModal {
	m.width = w
	m.form = m.form.setWidth(min(w, 50))
	return m
}

func (m profileModal) show() profileModal {
	m.open = true
	m.editor = medichat.NewProfileEditor(m.env.session.Current())
	m.confirmLogout = false
	m.saving = false
	m.err = ""
	return m
}

func (m profileModal) close() profileModal {
	m.open = false
	m.editor.Cancel()
	return m
}

func (m profileModal) update(msg tea.Msg) (profileModal, tea.Cmd) {
	switch msg := msg.(type) {
	case profileUpdatedMsg:
		return m.handleResult(msg)
	case tea.KeyMsg:
		if m.saving {
			return m, nil
		}
		if m.confirmLogout {
			return m.updateConfirm(msg)
		}
		if m.editor.Mode == medichat.Viewing {
			return m.updateViewing(msg)
		}
		return m.updateEditing(msg)
	}
	if m.open && m.editor.Mode != medichat.Viewing {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m profileModal) updateViewing(msg tea.KeyMsg) (profileModal, tea.Cmd) {
	switch msg.String() {
	case "esc", "f3":
		return m.close(), nil
	case "n":
		if m.editor.EditName() {
			m.err = ""
			m.form = newForm(field{label: "Nama Lengkap", placeholder: "Nama Lengkap"}).
				withValue(0, m.editor.Name).
				setWidth(min(m.width, 50))
		}
	case "p":
		if m.editor.EditPassword() {
			m.err = ""
			m.form = newForm(
				field{label: "Password Baru", placeholder: "Password Baru", secret: true},
				field{label: "Konfirmasi Password", placeholder: "Konfirmasi Password", secret: true},
			).setWidth(min(m.width, 50))
		}
	case "l":
		m.confirmLogout = true
	}
	return m, nil
}

func (m profileModal) updateEditing(msg tea.KeyMsg) (profileModal, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editor.Cancel()
		m.err = ""
		return m, nil
	case "enter":
		switch m.editor.Mode {
		case medichat.EditingName:
			m.editor.Name = m.form.value(0)
		case medichat.EditingPassword:
			m.editor.NewPassword = m.form.value(0)
			m.editor.ConfirmPassword = m.form.value(1)
		}
		upd, err := m.editor.Submit()
		if err != nil {
			m.err = errorText(err, msgProfileFailed)
			return m, nil
		}
		m.err = ""
		m.saving = true
		svc := m.env.services.Profile
		return m, func() tea.Msg {
			return profileUpdatedMsg{err: svc.UpdateProfile(context.Background(), upd)}
		}
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m profileModal) updateConfirm(msg tea.KeyMsg) (profileModal, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m.logout(notify(msgLoggedOut))
	case "n", "N", "esc":
		m.confirmLogout = false
	}
	return m, nil
}

func (m profileModal) handleResult(msg profileUpdatedMsg) (profileModal, tea.Cmd) {
	m.saving = false
	if msg.err != nil {
		m.env.logger.Warn("update profile failed", "error", msg.err)
		if errors.Is(msg.err, medichat.ErrUnauthorized) {
			m = m.close()
			return m, sessionExpired(m.env)
		}
		if serverRejected(msg.err) {
			m.err = msgProfileFailed
		} else {
			m.err = msgOffline
		}
		return m, nil
	}
	return m.logout(notify(msgProfileUpdated))
}

// logout clears the whole identity and returns to the home page.
func (m profileModal) logout(then tea.Cmd) (profileModal, tea.Cmd) {
	if err := m.env.session.Logout(); err != nil {
		m.env.logger.Error("logout", "error", err)
		m.err = err.Error()
		return m, nil
	}
	m = m.close()
	return m, tea.Batch(navigate(medichat.PageHome), then)
}

func (m profileModal) view() string {
	styles := m.env.styles
	id := m.env.session.Current()

	role := styles.Muted.Render("Pasien")
	if id.IsAdmin() {
		role = styles.Admin.Render("Admin")
	}
	email := id.Email
	if email == "" {
		email = "-"
	}
	parts := []string{
		styles.Avatar.Render("("+id.Initial()+")") + " " + styles.Bold.Render(id.DisplayName()),
		styles.Muted.Render(email) + " · " + role,
		"",
	}

	switch {
	case m.confirmLogout:
		parts = append(parts,
			styles.Accent.Render("Konfirmasi Keluar"),
			"Apakah Anda yakin ingin keluar dari sesi ini? (y/n)")
	case m.editor.Mode == medichat.Viewing:
		parts = append(parts,
			"[n] Ubah nama",
			"[p] Ganti password",
			styles.Error.Render("[l] Keluar"))
	default:
		parts = append(parts, m.form.view(styles))
		if m.saving {
			parts = append(parts, "", styles.Muted.Render("Menyimpan..."))
		}
	}
	if m.err != "" {
		parts = append(parts, "", styles.Error.Render(m.err))
	}

	box := styles.Modal.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box)
}

func (m profileModal) hints() string {
	switch {
	case m.confirmLogout:
		return "y keluar · n batal"
	case m.editor.Mode != medichat.Viewing:
		return fmt.Sprintf("Enter simpan perubahan · Esc batal (%s)", m.editor.Mode)
	}
	return "n nama · p password · l keluar · Esc tutup"
}
