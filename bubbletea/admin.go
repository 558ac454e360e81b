package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/medichat/medichat"
)

type usersLoadedMsg struct {
	users []medichat.User
	err   error
}

type userUpdatedMsg struct {
	username string
	err      error
}

type userDeletedMsg struct {
	username string
	err      error
}

type adminMode int

const (
	adminBrowsing adminMode = iota
	adminEditing
	adminConfirmDelete
)

// adminScreen lists every user and lets the admin edit or delete
// non-admin accounts.
type adminScreen struct {
	env     *env
	table   table.Model
	users   []medichat.User
	loading bool
	err     string

	mode   adminMode
	target medichat.User
	edit   form

	width, height int
}

// Column headers and their share of the table width.
var adminColumns = []struct {
	title  string
	weight int
}{
	{"Username", 3},
	{"Email", 4},
	{"Nama Lengkap", 4},
	{"Role", 2},
	{"Aksi", 3},
}

func newAdminScreen(e *env) adminScreen {
	t := table.New(table.WithFocused(true))
	st := table.DefaultStyles()
	st.Selected = st.Selected.Foreground(ansiColor(e.theme.Accent)).Bold(true)
	t.SetStyles(st)
	return adminScreen{env: e, table: t}
}

func newUserEditForm(u medichat.User) form {
	return newForm(
		field{label: "Nama Lengkap", placeholder: "Nama Lengkap"},
		field{label: "Password Baru (Opsional)", placeholder: "Isi jika ingin ganti password", secret: true},
	).withValue(0, u.FullName)
}

const adminChromeHeight = 4 // title, blank, footer line, blank

func (s adminScreen) setSize(w, h int) adminScreen {
	s.width, s.height = w, h
	s.table.SetHeight(max(h-adminChromeHeight, 3))
	s.table.SetColumns(s.columns())
	s = s.setRows()
	s.edit = s.edit.setWidth(min(w, 60))
	return s
}

// setRows refreshes the table rows and keeps the cursor on a row. The table
// moves its cursor to -1 when given no rows.
func (s adminScreen) setRows() adminScreen {
	s.table.SetRows(s.rows())
	s.table.SetCursor(min(max(s.table.Cursor(), 0), max(len(s.users)-1, 0)))
	return s
}

func (s adminScreen) columns() []table.Column {
	total := 0
	for _, c := range adminColumns {
		total += c.weight
	}
	// Each cell carries two columns of padding.
	avail := max(s.width-2*len(adminColumns), len(adminColumns)*4)
	cols := make([]table.Column, len(adminColumns))
	for i, c := range adminColumns {
		cols[i] = table.Column{Title: c.title, Width: max(avail*c.weight/total, 4)}
	}
	return cols
}

func (s adminScreen) rows() []table.Row {
	cols := s.columns()
	rows := make([]table.Row, len(s.users))
	for i, u := range s.users {
		action := "-"
		if u.Manageable() {
			action = "[e] Edit [d] Hapus"
		}
		cells := []string{u.Username, u.EmailOrDash(), u.FullName, strings.ToUpper(string(u.Role)), action}
		for j := range cells {
			cells[j] = runewidth.Truncate(cells[j], cols[j].Width, "…")
		}
		rows[i] = table.Row(cells)
	}
	return rows
}

func (s adminScreen) enter() (adminScreen, tea.Cmd) {
	s.mode = adminBrowsing
	s.err = ""
	return s.reload()
}

func (s adminScreen) reload() (adminScreen, tea.Cmd) {
	s.loading = true
	svc := s.env.services.Users
	return s, func() tea.Msg {
		users, err := svc.ListUsers(context.Background())
		return usersLoadedMsg{users: users, err: err}
	}
}

func (s adminScreen) selected() (medichat.User, bool) {
	i := s.table.Cursor()
	if i < 0 || i >= len(s.users) {
		return medichat.User{}, false
	}
	return s.users[i], true
}

func (s adminScreen) update(msg tea.Msg) (adminScreen, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		s.loading = false
		if msg.err != nil {
			return s.failed(msg.err, msgUsersLoadFailed)
		}
		s.users = msg.users
		return s.setRows(), nil

	case userUpdatedMsg:
		if msg.err != nil {
			return s.failed(msg.err, msgUserUpdateFailed)
		}
		s.mode = adminBrowsing
		var cmd tea.Cmd
		s, cmd = s.reload()
		return s, tea.Batch(notify(msgUserUpdated), cmd)

	case userDeletedMsg:
		s.mode = adminBrowsing
		if msg.err != nil {
			return s.failed(msg.err, msgUserDeleteFailed)
		}
		var cmd tea.Cmd
		s, cmd = s.reload()
		return s, tea.Batch(notify(msgUserDeleted), cmd)

	case tea.KeyMsg:
		switch s.mode {
		case adminEditing:
			return s.updateEditing(msg)
		case adminConfirmDelete:
			return s.updateConfirm(msg)
		}
		return s.updateBrowsing(msg)
	}

	if s.mode == adminEditing {
		var cmd tea.Cmd
		s.edit, cmd = s.edit.update(msg)
		return s, cmd
	}
	return s, nil
}

// failed maps an admin request error: 401 ends the session, 403 leaves the
// dashboard, anything else shows fallback.
func (s adminScreen) failed(err error, fallback string) (adminScreen, tea.Cmd) {
	s.env.logger.Warn("admin request failed", "error", err)
	switch {
	case errors.Is(err, medichat.ErrUnauthorized):
		return s, sessionExpired(s.env)
	case errors.Is(err, medichat.ErrForbidden):
		return s, tea.Batch(navigate(medichat.PageDiagnosis), notifyErr(msgAccessDenied))
	}
	if s.mode == adminEditing {
		s.err = fallback
		return s, nil
	}
	return s, notifyErr(fallback)
}

func (s adminScreen) updateBrowsing(msg tea.KeyMsg) (adminScreen, tea.Cmd) {
	switch msg.String() {
	case "r":
		return s.reload()
	case "e":
		u, ok := s.selected()
		if !ok || !u.Manageable() {
			return s, nil
		}
		s.mode = adminEditing
		s.target = u
		s.err = ""
		s.edit = newUserEditForm(u).setWidth(min(s.width, 60))
		return s, nil
	case "d", "delete":
		u, ok := s.selected()
		if !ok || !u.Manageable() {
			return s, nil
		}
		s.mode = adminConfirmDelete
		s.target = u
		return s, nil
	}
	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return s, cmd
}

func (s adminScreen) updateEditing(msg tea.KeyMsg) (adminScreen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.mode = adminBrowsing
		s.err = ""
		return s, nil
	case "enter":
		upd := medichat.UserUpdate{
			FullName: strings.TrimSpace(s.edit.value(0)),
			Password: s.edit.value(1),
		}
		if err := upd.Validate(s.target); err != nil {
			s.err = errorText(err, msgUserUpdateFailed)
			return s, nil
		}
		s.err = ""
		svc, username := s.env.services.Users, s.target.Username
		return s, func() tea.Msg {
			return userUpdatedMsg{username: username, err: svc.UpdateUser(context.Background(), username, upd)}
		}
	}
	var cmd tea.Cmd
	s.edit, cmd = s.edit.update(msg)
	return s, cmd
}

func (s adminScreen) updateConfirm(msg tea.KeyMsg) (adminScreen, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		svc, username := s.env.services.Users, s.target.Username
		return s, func() tea.Msg {
			return userDeletedMsg{username: username, err: svc.DeleteUser(context.Background(), username)}
		}
	case "n", "N", "esc":
		s.mode = adminBrowsing
	}
	return s, nil
}

func (s adminScreen) view() string {
	styles := s.env.styles
	title := styles.Admin.Render("Dashboard Admin") + styles.Muted.Render(fmt.Sprintf("  %d user", len(s.users)))

	var body string
	switch {
	case s.loading && len(s.users) == 0:
		body = styles.Muted.Render("Memuat data...")
	case s.mode == adminEditing:
		parts := []string{
			styles.Accent.Render("Edit User: " + s.target.Username),
			"",
			s.edit.view(styles),
		}
		if s.err != "" {
			parts = append(parts, "", styles.Error.Render(s.err))
		}
		body = styles.Modal.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	default:
		body = s.table.View()
	}

	footer := ""
	if s.mode == adminConfirmDelete {
		footer = styles.Error.Render(fmt.Sprintf("Yakin ingin menghapus user %s? (y/n)", s.target.Username))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", footer)
}

func (s adminScreen) hints() string {
	switch s.mode {
	case adminEditing:
		return "Tab pindah kolom · Enter simpan · Esc batal"
	case adminConfirmDelete:
		return "y hapus · n batal"
	}
	return "↑/↓ pilih · e edit · d hapus · r muat ulang"
}
