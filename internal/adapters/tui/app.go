package tui

import (
	"context"
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/dayblocks/internal/projector"
)

// App runs the interactive timeline as a Bubbletea program.
type App struct {
	planner Planner
	opts    Options
	program *tea.Program
	mu      sync.RWMutex
	wg      sync.WaitGroup
}

// NewApp creates a new TUI timeline adapter.
func NewApp(planner Planner, opts Options) *App {
	return &App{planner: planner, opts: opts}
}

// Run starts the timeline and blocks until the user quits or ctx ends.
func (a *App) Run(ctx context.Context) error {
	model := NewModel(a.planner, a.opts)

	ctx, cancel := context.WithCancel(ctx)
	a.mu.Lock()
	a.program = tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	a.mu.Unlock()
	defer cancel()

	// Handle context cancellation
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()
		a.mu.RLock()
		program := a.program
		a.mu.RUnlock()
		if program != nil {
			program.Quit()
		}
	}()

	_, err := a.program.Run()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	// Signal cancellation and wait for goroutines
	cancel()
	a.wg.Wait()

	return nil
}

// ShowPlan prints the plan without starting interactive mode.
func ShowPlan(w io.Writer, title string, view projector.View) error {
	fmt.Fprintf(w, "%s  (%s)\n", title, view.WindowDisplay())
	if view.Empty() {
		fmt.Fprintf(w, "   %s\n", projector.EmptyHint)
	}
	for _, b := range view.Blocks {
		fmt.Fprintf(w, "%3d. %s - %s  %-20s %6s\n",
			b.Index+1, b.StartDisplay, b.EndDisplay, truncate(b.Name, 20), b.DurationDisplay())
	}
	fmt.Fprintf(w, "\nPlanned: %s\n", view.TotalDisplay())
	return nil
}

// ShowError writes a failed command's error the way every command reports it.
func ShowError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}
