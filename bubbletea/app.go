package bubbletea

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/medichat/medichat"
)

var _ tea.Model = App{}

// env is shared by every screen of one App.
type env struct {
	session  *medichat.AuthSession
	services Services
	theme    medichat.Theme
	styles   Styles
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures an [App].
type Option func(*App)

// WithTheme sets the color theme.
func WithTheme(t medichat.Theme) Option {
	return func(a *App) {
		a.env.theme = t
		a.env.styles = NewStyles(t)
	}
}

// WithClock overrides the time source for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.env.now = now }
}

// WithLogger sets the logger for navigation and request failures.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.env.logger = l }
}

// WithStartPage sets the page requested on start. It still passes the
// route guard.
func WithStartPage(p medichat.Page) Option {
	return func(a *App) { a.start = p }
}

// App is the root Bubble Tea model: a header, the active page, an optional
// profile modal and a status line.
type App struct {
	env   *env
	start medichat.Page
	page  medichat.Page

	width, height int
	ready         bool
	notice        NoticeMsg

	home     homeScreen
	login    loginScreen
	register registerScreen
	chat     chatScreen
	admin    adminScreen
	profile  profileModal
}

// New creates the App. The session is the single source of identity for
// guards, the header and the bearer token.
func New(session *medichat.AuthSession, services Services, opts ...Option) App {
	theme := medichat.DefaultTheme()
	a := App{
		env: &env{
			session:  session,
			services: services,
			theme:    theme,
			styles:   NewStyles(theme),
			now:      time.Now,
			logger:   slog.New(slog.DiscardHandler),
		},
		start: medichat.PageHome,
		page:  medichat.PageHome,
	}
	for _, o := range opts {
		o(&a)
	}
	a.home = newHomeScreen(a.env)
	a.login = newLoginScreen(a.env)
	a.register = newRegisterScreen(a.env)
	a.chat = newChatScreen(a.env)
	a.admin = newAdminScreen(a.env)
	a.profile = newProfileModal(a.env)
	return a
}

// Page returns the page currently shown.
func (a App) Page() medichat.Page { return a.page }

// Notice returns the current status-line notice.
func (a App) Notice() NoticeMsg { return a.notice }

// ProfileOpen reports whether the profile modal is shown.
func (a App) ProfileOpen() bool { return a.profile.open }

// Messages returns the chat messages of the current diagnosis session.
func (a App) Messages() []medichat.Message { return a.chat.ctrl.Messages() }

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, navigate(a.start))
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.ready = true
		return a.resize(), nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case NavigateMsg:
		return a.navigate(msg.Page)

	case NoticeMsg:
		a.notice = msg
		return a, nil

	case loginResultMsg:
		a.login, cmd = a.login.update(msg)
		return a, cmd

	case registerResultMsg:
		a.register, cmd = a.register.update(msg)
		return a, cmd

	case chatResultMsg, spinner.TickMsg:
		a.chat, cmd = a.chat.update(msg)
		return a, cmd

	case usersLoadedMsg, userUpdatedMsg, userDeletedMsg:
		a.admin, cmd = a.admin.update(msg)
		return a, cmd

	case profileUpdatedMsg:
		a.profile, cmd = a.profile.update(msg)
		return a, cmd
	}

	// Cursor blinks and other component messages.
	if a.profile.open {
		a.profile, cmd = a.profile.update(msg)
		return a, cmd
	}
	return a.updatePage(msg)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		a.chat = a.chat.cancelPending()
		return a, tea.Quit
	}
	if a.profile.open {
		var cmd tea.Cmd
		a.profile, cmd = a.profile.update(msg)
		return a, cmd
	}

	id := a.env.session.Current()
	switch msg.String() {
	case "f1":
		return a.navigate(medichat.PageHome)
	case "f2":
		if id.IsAdmin() {
			return a.navigate(medichat.PageAdmin)
		}
		return a.navigate(medichat.PageDiagnosis)
	case "f3":
		if !id.LoggedIn() {
			return a.navigate(medichat.PageLogin)
		}
		a.profile = a.profile.show()
		a.notice = NoticeMsg{}
		return a, nil
	}

	// Any keystroke on a page dismisses the previous notice.
	a.notice = NoticeMsg{}
	return a.updatePage(msg)
}

// navigate applies the route guard for target and enters the resulting page.
func (a App) navigate(target medichat.Page) (tea.Model, tea.Cmd) {
	d := medichat.Guard(a.env.session.Current(), target)
	a.env.logger.Debug("navigate",
		"from", a.page.String(),
		"target", target.String(),
		"page", d.Page.String(),
		"redirected", d.Redirected)

	// A redirect back to the shown page would re-enter it and repeat the
	// request that caused the redirect.
	if d.Redirected && d.Page == a.page {
		return a, nil
	}
	if d.Page == medichat.PageDiagnosis && a.page != medichat.PageDiagnosis {
		a.chat = a.chat.reset()
	}
	a.page = d.Page

	var cmd tea.Cmd
	switch d.Page {
	case medichat.PageHome:
		a.home, cmd = a.home.enter()
	case medichat.PageLogin:
		a.login, cmd = a.login.enter(d.From)
	case medichat.PageRegister:
		a.register, cmd = a.register.enter()
	case medichat.PageDiagnosis:
		a.chat, cmd = a.chat.enter()
	case medichat.PageAdmin:
		a.admin, cmd = a.admin.enter()
	}
	return a, cmd
}

func (a App) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.page {
	case medichat.PageHome:
		a.home, cmd = a.home.update(msg)
	case medichat.PageLogin:
		a.login, cmd = a.login.update(msg)
	case medichat.PageRegister:
		a.register, cmd = a.register.update(msg)
	case medichat.PageDiagnosis:
		a.chat, cmd = a.chat.update(msg)
	case medichat.PageAdmin:
		a.admin, cmd = a.admin.update(msg)
	}
	return a, cmd
}

const (
	headerHeight = 2
	statusHeight = 1
)

func (a App) resize() App {
	h := max(a.height-headerHeight-statusHeight-1, 1)
	a.home = a.home.setSize(a.width, h)
	a.login = a.login.setSize(a.width, h)
	a.register = a.register.setSize(a.width, h)
	a.chat = a.chat.setSize(a.width, h)
	a.admin = a.admin.setSize(a.width, h)
	a.profile = a.profile.setSize(a.width, h)
	return a
}

// View implements tea.Model.
func (a App) View() string {
	if !a.ready {
		return "Memuat..."
	}

	var b strings.Builder
	b.WriteString(renderHeader(a.env, a.page, a.width))
	b.WriteString("\n")
	if a.profile.open {
		b.WriteString(a.profile.view())
	} else {
		b.WriteString(a.pageView())
	}
	b.WriteString("\n")
	b.WriteString(a.statusLine())
	return b.String()
}

func (a App) pageView() string {
	switch a.page {
	case medichat.PageLogin:
		return a.login.view()
	case medichat.PageRegister:
		return a.register.view()
	case medichat.PageDiagnosis:
		return a.chat.view()
	case medichat.PageAdmin:
		return a.admin.view()
	default:
		return a.home.view()
	}
}

func (a App) statusLine() string {
	styles := a.env.styles
	if a.notice.Text != "" {
		if a.notice.Err {
			return styles.Error.Render(a.notice.Text)
		}
		return styles.Success.Render(a.notice.Text)
	}
	var hints string
	switch {
	case a.profile.open:
		hints = a.profile.hints()
	case a.page == medichat.PageLogin:
		hints = a.login.hints()
	case a.page == medichat.PageRegister:
		hints = a.register.hints()
	case a.page == medichat.PageDiagnosis:
		hints = a.chat.hints()
	case a.page == medichat.PageAdmin:
		hints = a.admin.hints()
	default:
		hints = a.home.hints()
	}
	return styles.Muted.Render(hints + " · Ctrl+C keluar")
}

// sessionExpired drops the rejected token and sends the user to login.
func sessionExpired(e *env) tea.Cmd {
	if err := e.session.ClearToken(); err != nil {
		e.logger.Error("clear token", "error", err)
	}
	return tea.Batch(notifyErr(msgSessionExpired), navigate(medichat.PageLogin))
}

// errorText returns the user-facing message of a validation error, or
// fallback for anything else.
func errorText(err error, fallback string) string {
	var ve *medichat.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return fallback
}

// serverRejected reports whether err is a response from the server rather
// than a transport failure.
func serverRejected(err error) bool {
	var apiErr *medichat.Error
	return errors.As(err, &apiErr)
}
