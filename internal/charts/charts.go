package charts

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ramonehamilton/PokePoke-Tracker/internal/storage/models"
)

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Title      string   // Chart title
	Subtitle   string   // Chart subtitle
	YAxisLabel string   // Y-axis label
	XAxisLabel string   // X-axis label
	Width      string   // Chart width (e.g., "900px")
	Height     string   // Chart height (e.g., "500px")
	Theme      string   // Chart theme
	ShowLegend bool     // Show legend
	Colors     []string // Custom colors
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:      "900px",
		Height:     "500px",
		Theme:      "light",
		ShowLegend: true,
		Colors:     []string{"#5470C6", "#91CC75", "#FAC858", "#EE6666", "#73C0DE"},
	}
}

// DataPoint represents a single data point in a chart.
type DataPoint struct {
	Label string
	Value float64
}

// RenderBarChart writes an interactive bar chart page to w.
func RenderBarChart(w io.Writer, data []DataPoint, config ChartConfig) error {
	bar := charts.NewBar()

	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(config.ShowLegend),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: config.XAxisLabel,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: config.YAxisLabel,
			Min:  0,
			Max:  100,
		}),
	}
	if len(config.Colors) > 0 {
		global = append(global, charts.WithColorsOpts(opts.Colors{config.Colors[0]}))
	}
	bar.SetGlobalOptions(global...)

	xLabels := make([]string, len(data))
	yData := make([]opts.BarData, len(data))
	for i, point := range data {
		xLabels[i] = point.Label
		yData[i] = opts.BarData{Value: point.Value}
	}

	bar.SetXAxis(xLabels).
		AddSeries("Win Rate", yData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Position:  "top",
				Formatter: "{c}%",
			}),
		)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	return nil
}

// OpponentWinRatePoints turns a deck's opponent breakdown into chart points,
// one bar per opponent deck labelled with its name and match count.
func OpponentWinRatePoints(st *models.DeckStats) []DataPoint {
	points := make([]DataPoint, 0, len(st.Opponents))
	for _, o := range st.Opponents {
		points = append(points, DataPoint{
			Label: fmt.Sprintf("%s (%d)", o.OpponentName, o.TotalMatches),
			Value: math.Round(o.WinRate*10) / 10,
		})
	}
	return points
}

// RenderOpponentWinRates writes a bar chart of the deck's win rate against
// each opponent deck.
func RenderOpponentWinRates(w io.Writer, st *models.DeckStats, config ChartConfig) error {
	if st == nil {
		return fmt.Errorf("stats cannot be nil")
	}

	if config.Title == "" {
		config.Title = fmt.Sprintf("%s win rate by opponent", st.DeckName)
	}
	if config.Subtitle == "" {
		config.Subtitle = fmt.Sprintf("%d matches, %.1f%% overall", st.TotalMatches, st.OverallWinRate)
	}
	if config.YAxisLabel == "" {
		config.YAxisLabel = "Win %"
	}

	return RenderBarChart(w, OpponentWinRatePoints(st), config)
}
