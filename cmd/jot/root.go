// ABOUTME: Root command, global flags and per-invocation setup.
// ABOUTME: Loads config, builds the logger and opens the configured store.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/harper/jot/internal/app"
	"github.com/harper/jot/internal/config"
	"github.com/harper/jot/internal/logging"
	"github.com/harper/jot/internal/persist"
	"github.com/harper/jot/internal/storage"
	"github.com/harper/jot/internal/ui"
)

// logToFile marks commands that own the terminal; their logs go to the log file.
const logToFile = "log-to-file"

// env is the state shared by one invocation's commands.
type env struct {
	configPath string
	backend    string
	dataDir    string
	logLevel   string

	cfg    *config.Config
	logger *log.Logger
	store  storage.Store
	notes  *persist.Adapter

	now     func() time.Time
	closers []io.Closer
}

func newRootCmd() *cobra.Command {
	e := &env{now: time.Now}

	root := &cobra.Command{
		Use:   "jot",
		Short: "A small note keeper",
		Long: `jot keeps short notes with a title and a body.

Notes live in one collection shared by every open view: edits made in one
terminal show up in the others as soon as they are saved.

Run without a command to open the interactive view.`,
		Version:           fmt.Sprintf("%s (%s, %s)", version, commit, date),
		SilenceUsage:      true,
		SilenceErrors:     true,
		Annotations:       map[string]string{logToFile: "true"},
		PersistentPreRunE: e.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return e.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, e, app.ListLocation, false)
		},
	}

	root.PersistentFlags().StringVar(&e.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/jot/config.json)")
	root.PersistentFlags().StringVar(&e.backend, "backend", "", "storage backend: file, badger, charm, memory")
	root.PersistentFlags().StringVar(&e.dataDir, "data-dir", "", "data directory for the file and badger backends")
	root.PersistentFlags().StringVar(&e.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newUICmd(e),
		newListCmd(e),
		newAddCmd(e),
		newEditCmd(e),
		newRmCmd(e),
		newShowCmd(e),
		newWatchCmd(e),
		newExportCmd(e),
		newImportCmd(e),
		newMCPCmd(e),
		newSyncCmd(e),
	)
	return root
}

// Execute runs the root command with signal-aware context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
	}
	return err
}

func (e *env) setup(cmd *cobra.Command, args []string) error {
	path := e.configPath
	if path == "" {
		path = config.ConfigPath()
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if e.backend != "" {
		cfg.Backend = e.backend
	}
	if e.dataDir != "" {
		cfg.DataDir = e.dataDir
	}
	if e.logLevel != "" {
		cfg.LogLevel = e.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.cfg = cfg

	if cmd.Annotations[logToFile] == "true" {
		logger, closer, err := logging.ToFile(cfg.ResolvedLogFile(), cfg.LogLevel)
		if err != nil {
			logger = logging.Discard()
		} else {
			e.closers = append(e.closers, closer)
		}
		e.logger = logger
	} else {
		e.logger = logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	}

	opts := cfg.StorageOptions()
	opts.Logger = e.logger
	store, err := storage.Open(opts)
	if errors.Is(err, storage.ErrLocked) {
		return fmt.Errorf("open %s store: %w (close the other jot or use 'jot ui --split')", cfg.Backend, err)
	}
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}
	e.store = store
	e.notes = persist.New(store, e.logger)
	e.logger.Debug("store opened", "backend", cfg.Backend, "dir", cfg.ResolvedDataDir())
	return nil
}

func (e *env) teardown() error {
	var firstErr error
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			firstErr = err
		}
		e.store = nil
	}
	for _, c := range e.closers {
		_ = c.Close()
	}
	e.closers = nil
	return firstErr
}

// deps returns controller dependencies for a one-shot command.
func (e *env) deps() app.Deps {
	return app.Deps{
		Store:  e.notes,
		Now:    e.now,
		Logger: e.logger,
	}
}

// confirm asks a yes/no question on the command's input.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	reader := bufio.NewReader(cmd.InOrStdin())
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
