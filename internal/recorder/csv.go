package recorder

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/aravindkannappan/Market-Trend-Analyzer/internal/model"
)

var csvHeader = []string{
	"timestamp", "open", "high", "low", "close", "volume",
	"sma20", "sma50", "ema20", "rsi14", "macd", "macd_signal", "macd_hist", "trend",
}

// CSVRecorder writes the analysis table as a comma-delimited file, one row per
// bar in input order. Undefined indicator values become empty cells, so
// re-running on identical input produces a byte-identical file.
type CSVRecorder struct {
	Path string
}

// NewCSVRecorder creates a CSV recorder writing to the given path.
func NewCSVRecorder(path string) *CSVRecorder {
	return &CSVRecorder{Path: path}
}

func (r *CSVRecorder) RecordRun(_ *RunSummary, rows []model.AnalysisRow) error {
	f, err := os.Create(r.Path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	w := csv.NewWriter(f)

	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Bar.Time.UTC().Format(time.RFC3339),
			formatValue(row.Bar.Open),
			formatValue(row.Bar.High),
			formatValue(row.Bar.Low),
			formatValue(row.Bar.Close),
			formatValue(row.Bar.Volume),
			formatValue(row.SMA20),
			formatValue(row.SMA50),
			formatValue(row.EMA20),
			formatValue(row.RSI14),
			formatValue(row.MACD),
			formatValue(row.Signal),
			formatValue(row.Histogram),
			string(row.Trend),
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}

func (r *CSVRecorder) Close() error { return nil }

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
