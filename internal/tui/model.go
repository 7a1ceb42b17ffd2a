// Package tui is a terminal rendition of the live dashboard. It owns one
// rolling store and ticks it from bubbletea's own timer.
package tui

import (
	"time"

	"antarctica_live/internal/models"
	"antarctica_live/internal/readings"

	tea "github.com/charmbracelet/bubbletea"
)

type tickMsg time.Time

// Options are the static texts and scales of the terminal dashboard.
type Options struct {
	Title    string
	Interval time.Duration
	LowC     float64
	HighC    float64
}

// Model is the bubbletea model of the terminal dashboard.
type Model struct {
	store  *readings.Store
	opts   Options
	views  models.Views
	err    error
	ticks  int
	paused bool
	width  int
	height int
}

// New returns a model that takes its first reading on start.
func New(store *readings.Store, opts Options) Model {
	return Model{
		store:  store,
		opts:   opts,
		views:  store.CurrentViews(),
		width:  80,
		height: 24,
	}
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return tickMsg(time.Now()) }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		if m.paused {
			return m, tickCmd(m.opts.Interval)
		}
		if _, err := m.store.OnTick(); err != nil {
			m.err = err
		} else {
			m.err = nil
			m.ticks++
		}
		m.views = m.store.CurrentViews()
		return m, tickCmd(m.opts.Interval)
	}

	return m, nil
}

// Views exposes what the model currently renders.
func (m Model) Views() models.Views { return m.views }
