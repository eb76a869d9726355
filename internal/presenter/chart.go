package presenter

import (
	"time"

	"StockDashboard/internal/model"
)

// Series is one plotted line.
type Series struct {
	Name string      `json:"name"`
	Mode string      `json:"mode"`
	X    []time.Time `json:"x"`
	Y    []float64   `json:"y"`
}

// ChartSpec describes a line chart independently of the charting engine.
type ChartSpec struct {
	Series     []Series `json:"series"`
	XAxisTitle string   `json:"x_axis_title"`
	YAxisTitle string   `json:"y_axis_title"`
	Template   string   `json:"template"`
}

const darkTemplate = "plotly_dark"

// closeChart plots the close price over time.
func closeChart(t model.Table) *ChartSpec {
	return &ChartSpec{
		Series: []Series{{
			Name: "Close Price",
			Mode: "lines",
			X:    t.Times(),
			Y:    t.Closes(),
		}},
		XAxisTitle: "Time",
		YAxisTitle: "Price (USD)",
		Template:   darkTemplate,
	}
}

// Plotly converts the spec into a plotly.js figure. plotly.js has no named
// templates, so the dark theme is spelled out in the layout.
func (c *ChartSpec) Plotly() map[string]any {
	data := make([]map[string]any, 0, len(c.Series))
	for _, s := range c.Series {
		data = append(data, map[string]any{
			"type": "scatter",
			"mode": s.Mode,
			"name": s.Name,
			"x":    s.X,
			"y":    s.Y,
		})
	}

	axis := func(title string) map[string]any {
		a := map[string]any{"title": map[string]any{"text": title}}
		if c.Template == darkTemplate {
			a["gridcolor"] = "#283442"
			a["zerolinecolor"] = "#283442"
		}
		return a
	}
	layout := map[string]any{
		"xaxis":      axis(c.XAxisTitle),
		"yaxis":      axis(c.YAxisTitle),
		"showlegend": true,
		"margin":     map[string]any{"t": 30},
	}
	if c.Template == darkTemplate {
		layout["paper_bgcolor"] = "rgb(17,17,17)"
		layout["plot_bgcolor"] = "rgb(17,17,17)"
		layout["font"] = map[string]any{"color": "#f2f5fa"}
	}
	return map[string]any{"data": data, "layout": layout}
}
