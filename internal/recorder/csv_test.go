package recorder

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aravindkannappan/Market-Trend-Analyzer/internal/analysis"
	"github.com/aravindkannappan/Market-Trend-Analyzer/internal/model"
	"github.com/aravindkannappan/Market-Trend-Analyzer/internal/series"
)

func analysisRows(t *testing.T) []model.AnalysisRow {
	t.Helper()
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, 60)
	for i := range bars {
		bars[i] = model.Bar{
			Time:   base.AddDate(0, 0, i),
			Open:   100,
			High:   100,
			Low:    100,
			Close:  100,
			Volume: 1000,
		}
	}
	s, err := series.New(bars)
	if err != nil {
		t.Fatalf("build series: %v", err)
	}
	res, err := analysis.Run(s)
	if err != nil {
		t.Fatalf("run analysis: %v", err)
	}
	return res.Rows
}

func TestCSVRecorder_WritesTable(t *testing.T) {
	rows := analysisRows(t)
	path := filepath.Join(t.TempDir(), "analysis.csv")

	rec := NewCSVRecorder(path)
	if err := rec.RecordRun(nil, rows); err != nil {
		t.Fatalf("record: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 61 {
		t.Fatalf("expected header + 60 rows, got %d lines", len(lines))
	}
	if lines[0] != strings.Join(csvHeader, ",") {
		t.Errorf("unexpected header: %s", lines[0])
	}

	// Warm-up indicator cells are empty, bar fields are not.
	first := strings.Split(lines[1], ",")
	if first[1] != "100" || first[4] != "100" {
		t.Errorf("bar fields missing in first row: %v", first)
	}
	for _, col := range []int{6, 7, 8, 9, 10, 11, 12} {
		if first[col] != "" {
			t.Errorf("column %d of warm-up row should be empty, got %q", col, first[col])
		}
	}
	if first[13] != string(model.TrendNeutral) {
		t.Errorf("warm-up trend should be Neutral, got %q", first[13])
	}

	// Fully warmed-up row has every indicator populated.
	last := strings.Split(lines[60], ",")
	if last[6] != "100" || last[7] != "100" {
		t.Errorf("sma cells should read 100 in final row: %v", last)
	}
	if last[9] != "50" {
		t.Errorf("rsi cell should read 50 in final row, got %q", last[9])
	}
}

func TestCSVRecorder_RerunIsByteIdentical(t *testing.T) {
	rows := analysisRows(t)
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")

	if err := NewCSVRecorder(a).RecordRun(nil, rows); err != nil {
		t.Fatalf("record a: %v", err)
	}
	if err := NewCSVRecorder(b).RecordRun(nil, rows); err != nil {
		t.Fatalf("record b: %v", err)
	}

	da, err := os.ReadFile(a)
	if err != nil {
		t.Fatal(err)
	}
	db, err := os.ReadFile(b)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(da, db) {
		t.Error("identical input should produce byte-identical output tables")
	}
}

func TestSummarize_Tallies(t *testing.T) {
	rows := []model.AnalysisRow{
		{Trend: model.TrendNeutral},
		{Trend: model.TrendBullish},
		{Trend: model.TrendBullish},
		{Trend: model.TrendBearish},
	}
	sum := Summarize("run-1", "AAPL", "stock", "1d", rows)
	if sum.Bars != 4 || sum.Bullish != 2 || sum.Bearish != 1 || sum.Neutral != 1 {
		t.Errorf("unexpected tallies: %+v", sum)
	}
}
