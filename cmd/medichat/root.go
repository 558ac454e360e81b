package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/medichat/medichat"
	bt "github.com/medichat/medichat/bubbletea"
	medijson "github.com/medichat/medichat/json"
	"github.com/medichat/medichat/rest"
	mviper "github.com/medichat/medichat/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app holds what every command needs once configuration is loaded.
type app struct {
	v   *viper.Viper
	con *console

	cfg     mviper.Config
	logger  *slog.Logger
	logFile *os.File
	session *medichat.AuthSession
	client  *rest.Client

	// httpClient overrides the client built from the configured timeout.
	httpClient *http.Client
}

func newApp(home string, con *console) *app {
	return &app{
		v:      mviper.New(home),
		con:    con,
		logger: slog.New(slog.DiscardHandler),
	}
}

func (a *app) rootCmd() *cobra.Command {
	var start string
	root := &cobra.Command{
		Use:           "medichat",
		Short:         "MediChat medical consultation client",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd, start)
		},
	}
	flags := root.PersistentFlags()
	flags.String("server", "", "API base URL (default http://localhost:8000)")
	flags.Bool("debug", false, "write debug logs to log.path")
	_ = a.v.BindPFlag(mviper.KeyServerURL, flags.Lookup("server"))
	_ = a.v.BindPFlag(mviper.KeyDebug, flags.Lookup("debug"))

	root.Flags().StringVar(&start, "start", "home", "page to open: home, login, register, diagnosis, admin")

	tui := &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd, start)
		},
	}
	tui.Flags().StringVar(&start, "start", "home", "page to open: home, login, register, diagnosis, admin")

	root.AddCommand(
		tui,
		a.loginCmd(),
		a.logoutCmd(),
		a.registerCmd(),
		a.statusCmd(),
		a.chatCmd(),
		a.profileCmd(),
		a.adminCmd(),
	)
	return root
}

// setup loads the configuration and builds the session and API client.
func (a *app) setup() error {
	cfg, err := mviper.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if cfg.Debug {
		f, err := tea.LogToFile(cfg.LogPath, "medichat")
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		a.logFile = f
		a.logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	store := medijson.NewStore(cfg.StorePath)
	session, err := medichat.NewAuthSession(store)
	if err != nil {
		return err
	}
	a.session = session

	hc := a.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	a.client = rest.New(
		rest.WithBaseURL(cfg.ServerURL),
		rest.WithHTTPClient(hc),
		rest.WithToken(session.Token),
		rest.WithLogger(a.logger),
	)
	a.logger.Debug("configured",
		"server", cfg.ServerURL,
		"timeout", cfg.Timeout,
		"store", store.Path(),
		"logged_in", session.Current().LoggedIn())
	return nil
}

func (a *app) close() {
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

func (a *app) runTUI(cmd *cobra.Command, start string) error {
	page, err := medichat.ParsePage(start)
	if err != nil {
		return err
	}
	services := bt.Services{
		Auth:    a.client,
		Chat:    a.client,
		Profile: a.client,
		Users:   a.client,
	}
	tui := bt.New(a.session, services,
		bt.WithLogger(a.logger),
		bt.WithStartPage(page),
	)
	if err := bt.Run(cmd.Context(), tui); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}

// require checks the route guard for page against the stored session, the
// same way the TUI does before showing it.
func (a *app) require(page medichat.Page) error {
	d := medichat.Guard(a.session.Current(), page)
	if !d.Redirected {
		return nil
	}
	switch d.Page {
	case medichat.PageLogin:
		return fmt.Errorf("%w: jalankan 'medichat login' terlebih dahulu", medichat.ErrNotLoggedIn)
	case medichat.PageAdmin:
		return errors.New("akun admin tidak dapat berkonsultasi, gunakan 'medichat admin'")
	default:
		return fmt.Errorf("%w: Akses Ditolak! Anda bukan Admin.", medichat.ErrForbidden)
	}
}

// apiError turns a failed request into the error shown to the user. A
// rejected token is dropped from the store.
func (a *app) apiError(err error, fallback string) error {
	switch {
	case errors.Is(err, medichat.ErrUnauthorized):
		if cerr := a.session.ClearToken(); cerr != nil {
			a.logger.Error("clear token", "error", cerr)
		}
		return fmt.Errorf("%w: sesi Anda telah berakhir, silakan masuk kembali", medichat.ErrUnauthorized)
	case errors.Is(err, medichat.ErrValidation):
		return err
	}
	var apiErr *medichat.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s (%d)", medichat.ErrorDetail(err, fallback), apiErr.Status)
	}
	return fmt.Errorf("gagal terhubung ke server: %w", err)
}
