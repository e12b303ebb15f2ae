package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/fakefy/internal/shared"
	"github.com/desertthunder/fakefy/internal/ui"
	"github.com/urfave/cli/v3"
)

const defaultTUILog = "./tmp/fakefy-tui.log"

// TUI launches the interactive playlist manager.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	path := r.config.Log.File
	if path == "" {
		path = defaultTUILog
	}
	fileLogger, err := shared.NewFileLogger(path)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Log.Level))
	r.SetLogger(fileLogger)

	a, err := r.application()
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, a, ui.Options{
		Logger:       shared.WithLogger(fileLogger, "component", "ui"),
		ExportDir:    cmd.String("export-dir"),
		ExportFormat: cmd.String("export-format"),
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
