package tui

import (
	"fmt"
	"math"
	"strings"

	"antarctica_live/internal/models"

	"github.com/charmbracelet/lipgloss"
)

const (
	yAxisWidth = 8 // "-17.0 C " label column
	dotRune    = '●'
	emptyChart = "waiting for the first reading"
)

var (
	dotStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	axisStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// RenderScatter plots readings with time on the x axis and temperature on
// the y axis, scaled to [lowC, highC].
func RenderScatter(points []models.Reading, width, height int, lowC, highC float64) string {
	plotW := width - yAxisWidth
	if plotW < 2 || height < 2 {
		return ""
	}
	if len(points) == 0 {
		return axisStyle.Render(emptyChart)
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", plotW))
	}

	t0 := points[0].CapturedAt
	span := points[len(points)-1].CapturedAt.Sub(t0).Seconds()
	tempSpan := highC - lowC
	if tempSpan <= 0 {
		tempSpan = 1
	}

	for i, p := range points {
		var xNorm float64
		switch {
		case span > 0:
			xNorm = p.CapturedAt.Sub(t0).Seconds() / span
		case len(points) > 1:
			xNorm = float64(i) / float64(len(points)-1)
		}
		col := int(math.Round(clamp01(xNorm) * float64(plotW-1)))

		yNorm := clamp01((p.TemperatureC - lowC) / tempSpan)
		row := height - 1 - int(math.Round(yNorm*float64(height-1)))

		grid[row][col] = dotRune
	}

	var sb strings.Builder
	for r, line := range grid {
		sb.WriteString(axisStyle.Render(yLabel(r, height, lowC, highC)))
		sb.WriteString(axisStyle.Render("│"))
		for _, ch := range line {
			if ch == dotRune {
				sb.WriteString(dotStyle.Render(string(ch)))
			} else {
				sb.WriteRune(ch)
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(axisStyle.Render(strings.Repeat(" ", yAxisWidth-1) + "└" + strings.Repeat("─", plotW)))
	sb.WriteByte('\n')
	sb.WriteString(axisStyle.Render(timeline(points, plotW)))
	return sb.String()
}

// yLabel labels the top, middle and bottom rows.
func yLabel(row, height int, lowC, highC float64) string {
	var v float64
	switch row {
	case 0:
		v = highC
	case height - 1:
		v = lowC
	case (height - 1) / 2:
		v = highC - (highC-lowC)*float64(row)/float64(height-1)
	default:
		return strings.Repeat(" ", yAxisWidth-1)
	}
	return fmt.Sprintf("%5.1f C", v)
}

// timeline prints the first and last capture times under the plot.
func timeline(points []models.Reading, plotW int) string {
	first := points[0].CapturedAt.Format("15:04:05")
	pad := strings.Repeat(" ", yAxisWidth)
	if len(points) == 1 || plotW < 2*len(first)+1 {
		return pad + first
	}
	last := points[len(points)-1].CapturedAt.Format("15:04:05")
	gap := plotW - len(first) - len(last)
	return pad + first + strings.Repeat(" ", gap) + last
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
