package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/medichat/medichat"
)

// pageTitle is the navigation label of p.
func pageTitle(p medichat.Page) string {
	switch p {
	case medichat.PageLogin:
		return "Masuk"
	case medichat.PageRegister:
		return "Daftar"
	case medichat.PageDiagnosis:
		return "Diagnosa"
	case medichat.PageAdmin:
		return "Dashboard Admin"
	default:
		return "Home"
	}
}

// renderHeader draws the navigation bar: brand, Home, the main page for the
// identity's role and either the profile entry or the login entry.
func renderHeader(e *env, page medichat.Page, width int) string {
	styles := e.styles
	id := e.session.Current()

	main := medichat.PageDiagnosis
	if id.LoggedIn() && id.IsAdmin() {
		main = medichat.PageAdmin
	}
	item := func(key string, p medichat.Page, active bool) string {
		label := key + " " + pageTitle(p)
		if active {
			return styles.NavActive.Render(label)
		}
		return lipgloss.NewStyle().Padding(0, 1).Render(label)
	}

	left := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Accent.Render("MediChat")+"  ",
		item("F1", medichat.PageHome, page == medichat.PageHome),
		item("F2", main, page == main),
	)

	var right string
	if id.LoggedIn() {
		right = styles.Avatar.Render("("+id.Initial()+")") + " " + id.FirstName() + styles.Muted.Render(" F3")
	} else {
		right = item("F3", medichat.PageLogin, page == medichat.PageLogin || page == medichat.PageRegister)
	}

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return bar + "\n" + styles.Muted.Render(strings.Repeat("─", max(width, 1)))
}
