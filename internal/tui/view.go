package tui

import (
	"fmt"
	"strings"

	"antarctica_live/internal/models"

	"github.com/charmbracelet/lipgloss"
)

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleBg  = lipgloss.Color("17")
	colorTitleFg  = lipgloss.Color("51")
	colorBorder   = lipgloss.Color("62")
	colorLabel    = lipgloss.Color("252")
	colorDim      = lipgloss.Color("240")
	colorValue    = lipgloss.Color("75")
	colorFooterBg = lipgloss.Color("235")
	colorErr      = lipgloss.Color("196")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorTitleFg).Background(colorTitleBg).Padding(0, 1)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 2)
	labelStyle = lipgloss.NewStyle().Foreground(colorLabel)
	valueStyle = lipgloss.NewStyle().Bold(true).Foreground(colorValue)
	dimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	errStyle   = lipgloss.NewStyle().Foreground(colorErr)
	footer     = lipgloss.NewStyle().Foreground(colorDim).Background(colorFooterBg).Padding(0, 1)
)

const noValue = "-"

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(m.opts.Title))
	sb.WriteString("\n\n")
	sb.WriteString(m.renderValueBoxes())
	sb.WriteString("\n")
	sb.WriteString(renderTable(m.views.Table))
	sb.WriteString("\n")

	chartH := m.height - 20
	if chartH < 5 {
		chartH = 5
	}
	sb.WriteString(labelStyle.Render("Real time temperature readings"))
	sb.WriteString("\n")
	sb.WriteString(RenderScatter(m.views.Snapshot, m.width-2, chartH, m.opts.LowC, m.opts.HighC))
	sb.WriteString("\n\n")

	if m.err != nil {
		sb.WriteString(errStyle.Render("last tick failed: " + m.err.Error()))
		sb.WriteString("\n")
	}

	status := fmt.Sprintf("every %s  ticks %d", m.opts.Interval, m.ticks)
	if m.paused {
		status += "  PAUSED"
	}
	sb.WriteString(footer.Render(status + "  p pause  q quit"))
	return sb.String()
}

func (m Model) renderValueBoxes() string {
	temp, stamp := noValue, noValue
	if m.views.Latest != nil {
		temp = m.views.Latest.Display()
		stamp = m.views.Latest.Timestamp
	}
	tempBox := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("Current Temperature"),
		valueStyle.Render(temp),
		dimStyle.Render("warmer than usual"),
	))
	timeBox := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("Current Date and Time"),
		valueStyle.Render(stamp),
		"",
	))
	return lipgloss.JoinHorizontal(lipgloss.Top, tempBox, " ", timeBox)
}

func renderTable(t models.Table) string {
	var sb strings.Builder
	sb.WriteString(labelStyle.Render("Recent Readings of temperature with timestamps"))
	sb.WriteString("\n")
	header := fmt.Sprintf("%-8s %s", models.ColumnTemp, models.ColumnTimestamp)
	if len(t.Columns) == 2 {
		header = fmt.Sprintf("%-8s %s", t.Columns[0], t.Columns[1])
	}
	sb.WriteString(dimStyle.Render(header))
	sb.WriteString("\n")
	if len(t.Rows) == 0 {
		sb.WriteString(dimStyle.Render(noValue))
		sb.WriteString("\n")
	}
	for _, r := range t.Rows {
		sb.WriteString(fmt.Sprintf("%-8.1f %s\n", r.TemperatureC, r.Timestamp))
	}
	return sb.String()
}
