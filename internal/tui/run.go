package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// RunOptions configures RunList.
type RunOptions struct {
	Input     io.Reader
	Output    io.Writer
	AltScreen bool
}

// RunList runs a list screen until the user quits. A fetch error that ended
// the screen is returned.
func RunList[T any](ctx context.Context, cfg ScreenConfig[T], opts RunOptions) error {
	screen := NewListScreen(ctx, cfg)

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}

	if _, err := tea.NewProgram(screen, programOpts...).Run(); err != nil {
		return fmt.Errorf("running %s list: %w", cfg.Kind, err)
	}
	return screen.Err()
}
