// Package bubbletea provides the MediChat terminal UI built on Bubble Tea.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/medichat/medichat"
)

// Services are the backends the screens talk to.
type Services struct {
	Auth    medichat.AuthService
	Chat    medichat.ChatService
	Profile medichat.ProfileService
	Users   medichat.UserService
}

// Run creates and runs the Bubble Tea program. It blocks until the program
// exits. Cancelling ctx quits the program.
func Run(ctx context.Context, app App) error {
	p := tea.NewProgram(app, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// NavigateMsg asks the app to show Page. The route guard decides where the
// app actually lands.
type NavigateMsg struct {
	Page medichat.Page
}

// NoticeMsg replaces the status-line notice.
type NoticeMsg struct {
	Text string
	Err  bool
}

func navigate(p medichat.Page) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Page: p} }
}

func notify(text string) tea.Cmd {
	return func() tea.Msg { return NoticeMsg{Text: text} }
}

func notifyErr(text string) tea.Cmd {
	return func() tea.Msg { return NoticeMsg{Text: text, Err: true} }
}
