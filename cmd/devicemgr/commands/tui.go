package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rusenback/devicemgr/internal/config"
	"github.com/rusenback/devicemgr/internal/tui"
)

// runTUI starts the interactive device manager. The screen belongs to the
// TUI, so diagnostics only go to --log-file.
func runTUI(ctx context.Context, cfg config.Config) error {
	a, err := buildApp(cfg, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	m := tui.NewModel(tui.Deps{
		Devices: a.client,
		Sink:    a.sink,
		History: a.journal,
		Config:  cfg,
		Log:     a.log,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	a.sink.Close()
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
