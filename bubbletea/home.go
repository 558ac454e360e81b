package bubbletea

import (
	_ "embed"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/medichat/medichat"
	"github.com/medichat/medichat/goldmark"
)

var (
	//go:embed content/home.md
	homeMarkdown string
	//go:embed content/footer.md
	footerMarkdown string
)

// homeScreen shows the landing page. Enter starts a diagnosis, which means
// the login form for anonymous users.
type homeScreen struct {
	env      *env
	renderer *goldmark.Renderer
	viewport viewport.Model
}

func newHomeScreen(e *env) homeScreen {
	return homeScreen{
		env:      e,
		renderer: goldmark.NewRenderer(e.theme),
		viewport: viewport.New(0, 0),
	}
}

func (s homeScreen) source() string {
	footer := strings.ReplaceAll(footerMarkdown, "{year}", strconv.Itoa(s.env.now().Year()))
	return homeMarkdown + "\n" + footer
}

func (s homeScreen) setSize(w, h int) homeScreen {
	s.viewport.Width, s.viewport.Height = w, h
	s.viewport.SetContent(s.renderer.Render(s.source(), w))
	return s
}

func (s homeScreen) enter() (homeScreen, tea.Cmd) {
	s.viewport.GotoTop()
	return s, nil
}

func (s homeScreen) update(msg tea.Msg) (homeScreen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		return s, navigate(medichat.EntryPage(s.env.session.Current()))
	}
	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

func (s homeScreen) view() string { return s.viewport.View() }

func (s homeScreen) hints() string { return "Enter mulai diagnosis · ↑/↓ gulir" }
