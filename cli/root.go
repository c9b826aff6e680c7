// Package cli wires configuration, the account store and runner, and the
// dialog into the pioauth command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/njyeung/pioauth/account"
	"github.com/njyeung/pioauth/auth"
	"github.com/njyeung/pioauth/config"
	"github.com/njyeung/pioauth/logging"
	"github.com/njyeung/pioauth/tui"
)

// ErrCancelled is returned when the dialog is closed with ctrl+c
var ErrCancelled = errors.New("cancelled")

type options struct {
	configDir string
	pioPath   string
	logLevel  string
	mode      string
}

// app is what every command needs, built once flags are parsed
type app struct {
	fs     afero.Fs
	cfg    config.Config
	level  slog.Level
	store  *account.FileStore
	runner *account.CLIRunner
}

func (a *app) load(cmd *cobra.Command, opts *options) error {
	dir := opts.configDir
	if dir == "" {
		d, err := config.Dir()
		if err != nil {
			return err
		}
		dir = d
	}

	cfg, err := config.Load(a.fs, dir)
	if err != nil {
		return err
	}
	if opts.pioPath != "" {
		cfg.PIOPath = opts.pioPath
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if cmd.Flags().Changed("mode") {
		cfg.Mode = opts.mode
	}

	a.cfg = cfg
	a.level = logging.ParseLevel(cfg.LogLevel)
	logging.Setup(a.level, cmd.ErrOrStderr())

	store, err := account.NewFileStore(a.fs, cfg.StateFile)
	if err != nil {
		return err
	}
	a.store = store
	a.runner = account.NewCLIRunner(cfg.PIOPath)

	logging.L.Debug("configuration loaded", "dir", dir, "pio", cfg.PIOPath, "state", cfg.StateFile)
	return nil
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	opts := &options{}
	a := &app{fs: fs}

	root := &cobra.Command{
		Use:   "pioauth",
		Short: "Log in to your PlatformIO account",
		Long: `pioauth opens a terminal dialog to log in to PlatformIO, create a free
PIO Account, or request a password reset. Account operations are run by the
PlatformIO CLI (pio account).

Without a subcommand the interactive dialog opens. The login, register and
forgot subcommands do the same without a dialog.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd, opts)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDialog(cmd)
		},
	}

	root.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", "directory holding config.toml and the account state (default: user config dir)")
	root.PersistentFlags().StringVar(&opts.pioPath, "pio", "", "PlatformIO executable (default: pio from PATH)")
	root.PersistentFlags().StringVarP(&opts.logLevel, "log-level", "l", "info", "log level (debug, info, warn, error)")
	root.Flags().StringVarP(&opts.mode, "mode", "m", "login", "form to open: login, register or forgot")

	root.AddCommand(
		newSubmitCmd(a, auth.ModeLogin),
		newSubmitCmd(a, auth.ModeRegister),
		newSubmitCmd(a, auth.ModeForgot),
		newStatusCmd(a),
		newLogoutCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) runDialog(cmd *cobra.Command) error {
	mode, err := auth.ParseMode(a.cfg.Mode)
	if err != nil {
		return err
	}

	// the dialog owns the terminal, so logs go to a file or nowhere
	var logOut io.Writer = io.Discard
	if a.level <= slog.LevelDebug {
		f, err := openLogFile(a.fs, a.cfg.LogPath())
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	logging.Setup(a.level, logOut)

	m := tui.NewModel(cmd.Context(), a.runner, a.store, tui.Config{Mode: mode})
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("dialog failed: %w", err)
	}

	fm, ok := final.(tui.Model)
	if !ok {
		return nil
	}
	switch fm.Result() {
	case tui.ResultRejected:
		return ErrCancelled
	case tui.ResultResolved:
		if fm.LoggedIn() {
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", a.store.Username())
		}
	}
	return nil
}

func openLogFile(fs afero.Fs, path string) (afero.File, error) {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}
	return f, nil
}

// Execute runs the pioauth command and exits non-zero on failure
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(afero.NewOsFs()).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
