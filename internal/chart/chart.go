// Package chart renders the analysis table as a three-panel HTML chart:
// candlesticks with moving-average overlays, RSI with threshold lines, and
// MACD with its signal line and histogram.
package chart

import (
	"fmt"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/aravindkannappan/Market-Trend-Analyzer/internal/model"
	"github.com/aravindkannappan/Market-Trend-Analyzer/internal/trend"
)

// Render writes the chart for the given rows to an HTML file at path.
func Render(path, title string, rows []model.AnalysisRow) error {
	if len(rows) == 0 {
		return fmt.Errorf("render chart: no rows")
	}

	dates := make([]string, len(rows))
	for i, r := range rows {
		dates[i] = r.Bar.Time.UTC().Format("2006-01-02 15:04")
	}

	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(
		priceChart(title, dates, rows),
		rsiChart(dates, rows),
		macdChart(dates, rows),
	)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := page.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("render chart: %w", err)
	}
	return f.Close()
}

func priceChart(title string, dates []string, rows []model.AnalysisRow) *charts.Kline {
	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "500px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
	)

	klineData := make([]opts.KlineData, len(rows))
	for i, r := range rows {
		// echarts kline order: open, close, low, high
		klineData[i] = opts.KlineData{Value: [4]float64{r.Bar.Open, r.Bar.Close, r.Bar.Low, r.Bar.High}}
	}
	kline.SetXAxis(dates).AddSeries("Price", klineData)

	kline.Overlap(overlayLine("SMA20", dates, rows, func(r model.AnalysisRow) float64 { return r.SMA20 }))
	kline.Overlap(overlayLine("SMA50", dates, rows, func(r model.AnalysisRow) float64 { return r.SMA50 }))
	kline.Overlap(overlayLine("EMA20", dates, rows, func(r model.AnalysisRow) float64 { return r.EMA20 }))
	return kline
}

func rsiChart(dates []string, rows []model.AnalysisRow) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "RSI(14)"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "250px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
	)
	line.SetXAxis(dates).AddSeries("RSI", lineData(rows, func(r model.AnalysisRow) float64 { return r.RSI14 }))
	line.SetSeriesOptions(
		charts.WithMarkLineNameYAxisItemOpts(
			opts.MarkLineNameYAxisItem{Name: "overbought", YAxis: trend.Overbought},
			opts.MarkLineNameYAxisItem{Name: "oversold", YAxis: trend.Oversold},
		),
	)
	return line
}

func macdChart(dates []string, rows []model.AnalysisRow) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "MACD(12,26,9)"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "250px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
	)
	line.SetXAxis(dates).
		AddSeries("MACD", lineData(rows, func(r model.AnalysisRow) float64 { return r.MACD })).
		AddSeries("Signal", lineData(rows, func(r model.AnalysisRow) float64 { return r.Signal }))

	hist := charts.NewBar()
	histData := make([]opts.BarData, len(rows))
	for i, r := range rows {
		if math.IsNaN(r.Histogram) {
			histData[i] = opts.BarData{Value: "-"}
		} else {
			histData[i] = opts.BarData{Value: r.Histogram}
		}
	}
	hist.SetXAxis(dates).AddSeries("Histogram", histData)
	line.Overlap(hist)
	return line
}

func overlayLine(name string, dates []string, rows []model.AnalysisRow, pick func(model.AnalysisRow) float64) *charts.Line {
	line := charts.NewLine()
	line.SetXAxis(dates).AddSeries(name, lineData(rows, pick))
	return line
}

// lineData maps undefined (warm-up) values to the echarts missing-value marker.
func lineData(rows []model.AnalysisRow, pick func(model.AnalysisRow) float64) []opts.LineData {
	data := make([]opts.LineData, len(rows))
	for i, r := range rows {
		v := pick(r)
		if math.IsNaN(v) {
			data[i] = opts.LineData{Value: "-"}
		} else {
			data[i] = opts.LineData{Value: v}
		}
	}
	return data
}
