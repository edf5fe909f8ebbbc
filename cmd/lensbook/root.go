package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lensbook/lensbook/internal/clipboard"
	"github.com/lensbook/lensbook/internal/config"
	"github.com/lensbook/lensbook/internal/events"
	"github.com/lensbook/lensbook/internal/logger"
	"github.com/lensbook/lensbook/internal/prefs"
	"github.com/lensbook/lensbook/internal/settings"
	"github.com/lensbook/lensbook/internal/tui"
	"github.com/lensbook/lensbook/internal/watch"
)

type rootFlags struct {
	logLevel   string
	logFile    string
	noWatch    bool
	pollScroll bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "lensbook <book.yaml>",
		Short:         "Lensbook renders an interactive brand book in the terminal",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(args[0], flags)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "Append logs to this file instead of discarding them")
	cmd.Flags().BoolVar(&flags.noWatch, "no-watch", false, "Disable live reload on document changes")
	cmd.Flags().BoolVar(&flags.pollScroll, "poll-scroll", false, "Use the polling scroll tracker instead of intersection observation")

	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func runViewer(docPath string, flags *rootFlags) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("lensbook requires an interactive terminal")
	}

	log, err := newLogger(flags)
	if err != nil {
		return err
	}

	doc, err := config.ParseDocument(docPath)
	if err != nil {
		return err
	}

	store := prefs.NewStore(prefs.DefaultPath(), log)
	bus := events.NewBus(log)
	controller := settings.NewController(store, bus, log)
	copier := clipboard.New(os.Stdout, log)

	m := tui.NewModel(doc, controller, bus, copier, log, tui.Options{
		PollScroll: flags.pollScroll,
		DocPath:    docPath,
	})

	if !flags.noWatch {
		watcher, err := watch.New(docPath, log)
		if err != nil {
			log.WithFields(map[string]any{"error": err.Error()}).Warn("live reload unavailable")
		} else {
			defer watcher.Close()
			m.SetWatcher(watcher)
		}
	}

	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run viewer: %w", err)
	}
	return nil
}

// newLogger builds the application logger. Output goes to the log file
// when one is requested; otherwise it is discarded, because the viewer
// owns the terminal.
func newLogger(flags *rootFlags) (*logger.Logger, error) {
	opts := logger.Options{Level: flags.logLevel}
	if flags.logFile != "" {
		f, err := os.OpenFile(flags.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		opts.Writer = f
	}
	return logger.New(opts)
}
