package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/dayblocks/internal/config"
	"github.com/xvierd/dayblocks/internal/domain"
	"github.com/xvierd/dayblocks/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config     *config.Config
	configPath string
	planner    *services.Planner
	logger     *slog.Logger
	logFile    io.Closer
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	// Resolve config location: --config flag > default
	var err error
	app.configPath = configPath
	if app.configPath == "" {
		app.configPath, err = config.GetConfigPath()
		if err != nil {
			return err
		}
	}

	// Load configuration
	app.config, err = config.LoadFrom(app.configPath)
	if err != nil {
		// If config loading fails, use defaults
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		app.config = config.DefaultConfig()
	}

	app.logger, app.logFile, err = newLogger(app.config.Log)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	// Resolve the window start: --view-start flag > config
	viewStart := app.config.ViewStart
	if viewStartFlag != "" {
		viewStart, err = domain.ParseTimeString(viewStartFlag)
		if err != nil {
			return fmt.Errorf("invalid --view-start: %w", err)
		}
	}

	app.planner = services.NewPlanner(app.config.SeedBlocks(), viewStart, app.logger)
	nb := app.config.NewBlockDefaults()
	app.planner.SetNewBlockDefaults(services.NewBlockSpec{
		Name:  nb.Name,
		Left:  nb.Left,
		Width: nb.Width,
	})

	app.logger.Debug("services initialized",
		"config", app.configPath,
		"blocks", len(app.config.Blocks),
		"view_start", domain.FormatTime(viewStart))
	return nil
}

// newLogger returns a logger writing to the configured file, or one that
// discards everything when no file is set. The terminal belongs to the TUI.
func newLogger(cfg config.LogConfig) (*slog.Logger, io.Closer, error) {
	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil, nil
	}
	f, err := tea.LogToFile(cfg.File, "dayblocks")
	if err != nil {
		return nil, nil, err
	}
	level := (&config.Config{Log: cfg}).LogLevel()
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.logFile != nil {
		err := app.logFile.Close()
		app.logFile = nil
		return err
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}
