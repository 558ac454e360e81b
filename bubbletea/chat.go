package bubbletea

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/medichat/medichat"
)

type chatResultMsg struct {
	turn medichat.Turn
	resp medichat.ChatResponse
	err  error
}

// chatScreen is the diagnosis page: the conversation, a typing indicator
// while a turn is pending, and the input line.
type chatScreen struct {
	env  *env
	ctrl *medichat.ChatController

	// Input is disabled while a turn is pending.
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	cancel   context.CancelFunc

	// blocks mirrors ctrl.Messages(); bot blocks cache their rendering.
	blocks []MessageBlock
	width  int
}

func newChatScreen(e *env) chatScreen {
	ti := textinput.New()
	ti.Placeholder = "Tulis keluhan Anda di sini..."
	ti.Prompt = "› "
	ti.CharLimit = 0

	s := chatScreen{
		env:      e,
		ctrl:     medichat.NewChatController(e.now),
		input:    ti,
		viewport: viewport.New(0, 0),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	return s.syncBlocks()
}

const chatChromeHeight = 3 // title, blank line, input

func (s chatScreen) setSize(w, h int) chatScreen {
	s.width = w
	s.viewport.Width = w
	s.viewport.Height = max(h-chatChromeHeight, 1)
	s.input.Width = max(w-4, 10)
	return s.refresh()
}

func (s chatScreen) enter() (chatScreen, tea.Cmd) {
	if s.ctrl.State() == medichat.ChatAwaiting {
		return s, nil
	}
	return s, s.input.Focus()
}

// reset starts a new session. A pending turn is cancelled and its response
// will be discarded.
func (s chatScreen) reset() chatScreen {
	s = s.cancelPending()
	s.ctrl.Reset()
	s.input.Reset()
	s.input.Focus()
	s.blocks = nil
	return s.syncBlocks()
}

func (s chatScreen) cancelPending() chatScreen {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	return s
}

func (s chatScreen) update(msg tea.Msg) (chatScreen, tea.Cmd) {
	switch msg := msg.(type) {
	case chatResultMsg:
		return s.resolve(msg)

	case spinner.TickMsg:
		if s.ctrl.State() != medichat.ChatAwaiting {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s.refresh(), cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+n":
			s = s.reset()
			return s, notify("Sesi baru dimulai.")
		case "enter":
			return s.submit()
		case "pgup", "pgdown", "up", "down":
			var cmd tea.Cmd
			s.viewport, cmd = s.viewport.Update(msg)
			return s, cmd
		}
		if s.ctrl.State() == medichat.ChatAwaiting {
			return s, nil
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	cmds = append(cmds, cmd)
	if _, ok := msg.(tea.MouseMsg); ok {
		s.viewport, cmd = s.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return s, tea.Batch(cmds...)
}

func (s chatScreen) submit() (chatScreen, tea.Cmd) {
	turn, err := s.ctrl.Submit(s.input.Value())
	if err != nil {
		// Busy or blank input: nothing is sent.
		return s, nil
	}
	s.input.Reset()
	s.input.Blur()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s = s.syncBlocks()
	return s, tea.Batch(sendChat(ctx, s.env.services.Chat, turn), s.spinner.Tick)
}

func sendChat(ctx context.Context, svc medichat.ChatService, turn medichat.Turn) tea.Cmd {
	return func() tea.Msg {
		resp, err := svc.Chat(ctx, turn.Request)
		return chatResultMsg{turn: turn, resp: resp, err: err}
	}
}

func (s chatScreen) resolve(msg chatResultMsg) (chatScreen, tea.Cmd) {
	outcome := s.ctrl.Resolve(msg.turn, msg.resp, msg.err)
	if outcome == medichat.OutcomeStale {
		s.env.logger.Debug("discard stale chat response", "generation", msg.turn.Generation)
		return s, nil
	}
	s.cancel = nil
	switch outcome {
	case medichat.OutcomeLoginRequired:
		s = s.syncBlocks()
		return s, sessionExpired(s.env)
	case medichat.OutcomeFailed:
		s.env.logger.Warn("chat failed", "error", msg.err)
	}
	s = s.syncBlocks()
	return s, s.input.Focus()
}

// syncBlocks appends blocks for messages added since the last call and
// re-renders the viewport.
func (s chatScreen) syncBlocks() chatScreen {
	msgs := s.ctrl.Messages()
	if len(s.blocks) > len(msgs) {
		s.blocks = nil
	}
	blocks := append([]MessageBlock(nil), s.blocks...)
	for _, m := range msgs[len(blocks):] {
		blocks = append(blocks, NewMessageBlock(m, s.env.styles))
	}
	s.blocks = blocks
	s = s.refresh()
	s.viewport.GotoBottom()
	return s
}

func (s chatScreen) refresh() chatScreen {
	if s.width <= 0 {
		return s
	}
	var b strings.Builder
	for i, block := range s.blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(block.View(s.width))
	}
	if s.ctrl.State() == medichat.ChatAwaiting {
		b.WriteString("\n\n")
		b.WriteString(s.env.styles.BotBubble.Render(s.spinner.View() + " " + s.env.styles.Muted.Render(msgTyping)))
	}
	atBottom := s.viewport.AtBottom()
	s.viewport.SetContent(b.String())
	if atBottom {
		s.viewport.GotoBottom()
	}
	return s
}

func (s chatScreen) view() string {
	styles := s.env.styles
	title := styles.Accent.Render("Konsultasi Medis") + " " + styles.Success.Render("● Online")
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		s.viewport.View(),
		"",
		s.input.View(),
	)
}

func (s chatScreen) hints() string {
	if s.ctrl.State() == medichat.ChatAwaiting {
		return "Menunggu jawaban · Ctrl+N chat baru"
	}
	return "Enter kirim · Ctrl+N chat baru · PgUp/PgDn gulir"
}
