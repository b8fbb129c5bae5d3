package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"fragments/internal/adapters/clipboard"
	"fragments/internal/adapters/editor"
	"fragments/internal/adapters/highlight"
	"fragments/internal/adapters/jsonfile"
	"fragments/internal/adapters/tui"
	"fragments/internal/adapters/watcher"
	"fragments/internal/config"
	"fragments/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dbFlag := flag.String("db", "", "path to the fragments file (default $FRAGMENTS_DB, config data_path, or the user config dir)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	dataPath := cfg.DataFile(*dbFlag)

	// stderr would corrupt the alternate screen, so the TUI always logs to a file
	logger := logging.NewOrNop(logging.Options{
		Level:       cfg.LogLevel,
		File:        cfg.LogPath(dataPath),
		Development: cfg.Development(),
	})
	defer func() { _ = logger.Sync() }()

	// Initialize adapters
	store, err := jsonfile.Open(dataPath,
		jsonfile.WithLogger(logger),
		jsonfile.WithStrictUpdates(),
	)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changes <-chan struct{}
	if w, err := startWatcher(ctx, store.Path(), logger); err != nil {
		logger.Warn("auto-reload disabled", zap.Error(err))
	} else {
		changes = w.Changes()
		defer func() { _ = w.Stop() }()
	}

	app := tui.NewApp(store, tui.Options{
		Clipboard: clipboard.NewSystem(),
		Editor:    editor.NewOpener(),
		Renderer:  highlight.New(cfg.HighlightStyle),
		Changes:   changes,
		DataPath:  store.Path(),
		Logger:    logger,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func startWatcher(ctx context.Context, path string, logger *zap.Logger) (*watcher.Watcher, error) {
	w, err := watcher.New(path, watcher.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		_ = w.Stop()
		return nil, err
	}
	return w, nil
}
