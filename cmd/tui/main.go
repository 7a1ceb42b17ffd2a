package main

import (
	"antarctica_live/internal/config"
	"antarctica_live/internal/logger"
	"antarctica_live/internal/readings"
	"antarctica_live/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	// load configs/config.yml + ANTARCTICA_* env
	cfg, err := config.Load("configs")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger; nothing logs while the alt screen is up
	log := logger.Get(cfg.Log.Level)

	m, err := newModel(cfg.Dashboard)
	if err != nil {
		log.Fatalw("failed to build readings store", "err", err)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalw("terminal dashboard failed", "err", err)
	}
	_ = log.Sync()
}

// newModel builds the terminal dashboard around its own store.
func newModel(d config.Dashboard) (tui.Model, error) {
	store, err := readings.New(d.Readings())
	if err != nil {
		return tui.Model{}, err
	}
	return tui.New(store, tui.Options{
		Title:    d.Title,
		Interval: d.UpdateInterval,
		LowC:     d.LowC,
		HighC:    d.HighC,
	}), nil
}
