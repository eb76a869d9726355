// Package terminal prints a dashboard view to a terminal.
package terminal

import (
	"fmt"
	"io"
	"math"
	"strings"

	"StockDashboard/internal/presenter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
)

const width = 80

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Background(lipgloss.Color("#1F2937")).
			Padding(0, 1).
			MarginBottom(1)

	subheaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	chartStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#10B981")).
			Padding(0, 1).
			Width(width)

	metricStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 2).
			Width(width/3 - 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	up   = color.New(color.FgGreen).SprintFunc()
	down = color.New(color.FgRed).SprintFunc()
)

// Render writes v to w.
func Render(w io.Writer, v presenter.View) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📈 Real-Time Stock Market Dashboard"))
	b.WriteString("\n")

	if v.Failed() {
		b.WriteString(errorStyle.Render(v.Error))
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString(subheaderStyle.Render("📌 " + v.Title))
	if v.Cached {
		b.WriteString(dimStyle.Render("  (cached)"))
	}
	b.WriteString("\n")

	if v.Chart != nil && len(v.Chart.Series) > 0 {
		b.WriteString(chartStyle.Render(chartBlock(v.Chart)))
		b.WriteString("\n")
	}
	if v.Notice != "" {
		b.WriteString(noticeStyle.Render(v.Notice))
		b.WriteString("\n")
	}
	if len(v.Metrics) > 0 {
		boxes := make([]string, len(v.Metrics))
		for i, m := range v.Metrics {
			boxes[i] = metricStyle.Render(metricText(m))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
		b.WriteString("\n")
	}
	if v.Table != nil {
		b.WriteString(subheaderStyle.Render("📄 Raw Stock Data"))
		b.WriteString("\n")
		b.WriteString(dataTable(v.Table))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func metricText(m presenter.Metric) string {
	s := dimStyle.Render(m.Label) + "\n" + lipgloss.NewStyle().Bold(true).Render(m.Value)
	if m.Delta == "" {
		return s
	}
	switch m.Direction {
	case presenter.Up:
		return s + "\n" + up("↑ "+m.Delta)
	case presenter.Down:
		return s + "\n" + down("↓ "+m.Delta)
	default:
		return s + "\n" + m.Delta
	}
}

func dataTable(d *presenter.DataTable) string {
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6")).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers(d.Columns...).
		Rows(d.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col > 0 {
				return cell.Align(lipgloss.Right)
			}
			return cell
		}).
		String()
}

func chartBlock(c *presenter.ChartSpec) string {
	s := c.Series[0]
	lo, hi := bounds(s.Y)
	line := Sparkline(s.Y, width-4)
	head := fmt.Sprintf("%s  %s  low %s  high %s", s.Name, dimStyle.Render(c.YAxisTitle),
		presenter.FormatPrice(lo), presenter.FormatPrice(hi))
	if len(s.X) == 0 {
		return head + "\n" + line
	}
	span := fmt.Sprintf("%s → %s", s.X[0].Format("2006-01-02 15:04"), s.X[len(s.X)-1].Format("2006-01-02 15:04"))
	return head + "\n" + line + "\n" + dimStyle.Render(span)
}

var sparks = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws values as one row of block characters, at most cells wide.
// Longer series are downsampled by bucket mean.
func Sparkline(values []float64, cells int) string {
	if len(values) == 0 || cells <= 0 {
		return ""
	}
	values = downsample(values, cells)
	lo, hi := bounds(values)
	out := make([]rune, len(values))
	for i, v := range values {
		idx := 0
		if hi > lo {
			idx = int(math.Round((v - lo) / (hi - lo) * float64(len(sparks)-1)))
		}
		out[i] = sparks[idx]
	}
	return string(out)
}

func downsample(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	out := make([]float64, n)
	for i := range out {
		start := i * len(values) / n
		end := (i + 1) * len(values) / n
		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

func bounds(values []float64) (lo, hi float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
