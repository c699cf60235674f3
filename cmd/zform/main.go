package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zapp"
	"github.com/zarlcorp/zform/internal/cli"
	"github.com/zarlcorp/zform/internal/config"
	"github.com/zarlcorp/zform/internal/logging"
	"github.com/zarlcorp/zform/internal/tui"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := zapp.New(zapp.WithName("zform"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	err := run(ctx)
	if cerr := app.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "zform: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logging.NewOrNop(cfg.LogFile(), cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	root := cli.NewRootCmd(cli.Options{
		Version: version,
		Config:  cfg,
		Log:     log,
		RunTUI: func(sess *cli.Session) error {
			return runTUI(ctx, sess, log)
		},
	})

	return root.ExecuteContext(ctx)
}

func runTUI(ctx context.Context, sess *cli.Session, log *zap.Logger) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal: use a subcommand, see zform --help")
	}

	var notice string
	if sess.Degraded != nil {
		notice = "vault unavailable, changes will not be saved: " + sess.Degraded.Error()
	}

	m := tui.New(tui.Options{
		Version:  version,
		Store:    sess.Store,
		Registry: sess.Registry,
		Log:      log,
		Notice:   notice,
	})

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}

	log.Info("session end", zap.Int("visits", sess.Store.Stats().TotalVisits))
	return nil
}
