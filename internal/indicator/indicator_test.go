package indicator

import (
	"math"
	"testing"
)

const eps = 1e-9

func constSeries(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func risingSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + float64(i)
	}
	return out
}

func wavySeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + 10*math.Sin(float64(i)/3)
	}
	return out
}

func definedCount(vals []float64) int {
	count := 0
	for _, v := range vals {
		if Defined(v) {
			count++
		}
	}
	return count
}

func TestSMA_WarmupCounts(t *testing.T) {
	closes := wavySeries(60)
	tests := []struct {
		window  int
		defined int
	}{
		{20, 41}, // n - 19
		{50, 11}, // n - 49
	}
	for _, tt := range tests {
		out, err := SMA(closes, tt.window)
		if err != nil {
			t.Fatalf("SMA(%d): %v", tt.window, err)
		}
		if len(out) != len(closes) {
			t.Fatalf("SMA(%d): length %d, want %d", tt.window, len(out), len(closes))
		}
		if got := definedCount(out); got != tt.defined {
			t.Errorf("SMA(%d): %d defined values, want %d", tt.window, got, tt.defined)
		}
		for i := 0; i < tt.window-1; i++ {
			if Defined(out[i]) {
				t.Fatalf("SMA(%d): index %d should be undefined", tt.window, i)
			}
		}
	}
}

func TestSMA_Values(t *testing.T) {
	out, err := SMA([]float64{1, 2, 3, 4, 5}, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{math.NaN(), math.NaN(), 2, 3, 4}
	for i := range want {
		if Defined(want[i]) != Defined(out[i]) {
			t.Fatalf("index %d: defined mismatch", i)
		}
		if Defined(want[i]) && math.Abs(out[i]-want[i]) > eps {
			t.Errorf("index %d: got %v, want %v", i, out[i], want[i])
		}
	}
}

func TestSMA_InvalidWindow(t *testing.T) {
	if _, err := SMA([]float64{1, 2, 3}, 0); err == nil {
		t.Error("expected error for zero window")
	}
	if _, err := SMA([]float64{1, 2, 3}, -5); err == nil {
		t.Error("expected error for negative window")
	}
}

func TestEMA_ConstantSeries(t *testing.T) {
	out, err := EMA(constSeries(40, 100), 20)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out {
		if i < 19 {
			if Defined(v) {
				t.Fatalf("index %d should be undefined", i)
			}
			continue
		}
		if math.Abs(v-100) > eps {
			t.Errorf("index %d: EMA of constant series should be 100, got %v", i, v)
		}
	}
}

func TestEMA_SeedEqualsSMA(t *testing.T) {
	closes := wavySeries(30)
	ema, err := EMA(closes, 20)
	if err != nil {
		t.Fatal(err)
	}
	sma, err := SMA(closes, 20)
	if err != nil {
		t.Fatal(err)
	}
	if ema[19] != sma[19] {
		t.Errorf("EMA seed %v should equal SMA %v at index 19", ema[19], sma[19])
	}
}

func TestEMA_ShortSeries(t *testing.T) {
	out, err := EMA(wavySeries(10), 20)
	if err != nil {
		t.Fatal(err)
	}
	if definedCount(out) != 0 {
		t.Error("series shorter than the window should be fully undefined")
	}
}

func TestRSI_Bounds(t *testing.T) {
	out, err := RSI(wavySeries(120), 14)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out {
		if i < 14 {
			if Defined(v) {
				t.Fatalf("index %d should be undefined", i)
			}
			continue
		}
		if !Defined(v) {
			t.Fatalf("index %d should be defined", i)
		}
		if v < 0 || v > 100 {
			t.Errorf("index %d: RSI %v out of [0,100]", i, v)
		}
	}
}

func TestRSI_MonotonicRises_PinnedAt100(t *testing.T) {
	out, err := RSI(risingSeries(60), 14)
	if err != nil {
		t.Fatal(err)
	}
	for i := 14; i < len(out); i++ {
		if out[i] != 100 {
			t.Errorf("index %d: RSI should stay at 100 with zero average loss, got %v", i, out[i])
		}
	}
}

func TestRSI_FlatSeries(t *testing.T) {
	out, err := RSI(constSeries(60, 100), 14)
	if err != nil {
		t.Fatal(err)
	}
	for i := 14; i < len(out); i++ {
		if out[i] != 50 {
			t.Errorf("index %d: flat series should read RSI 50, got %v", i, out[i])
		}
	}
}

func TestRSI_InsufficientData(t *testing.T) {
	out, err := RSI(wavySeries(14), 14)
	if err != nil {
		t.Fatal(err)
	}
	if definedCount(out) != 0 {
		t.Error("14 bars cannot define RSI(14)")
	}
}

func TestMACD_Warmup(t *testing.T) {
	res, err := MACD(wavySeries(60), 12, 26, 9)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 25; i++ {
		if Defined(res.Line[i]) {
			t.Fatalf("MACD line index %d should be undefined", i)
		}
	}
	if !Defined(res.Line[25]) {
		t.Error("MACD line should be defined from index 25")
	}
	for i := 0; i < 33; i++ {
		if Defined(res.Signal[i]) {
			t.Fatalf("signal index %d should be undefined", i)
		}
		if Defined(res.Histogram[i]) {
			t.Fatalf("histogram index %d should be undefined", i)
		}
	}
	if !Defined(res.Signal[33]) || !Defined(res.Histogram[33]) {
		t.Error("signal and histogram should be defined from index 33")
	}
}

func TestMACD_HistogramIdentity(t *testing.T) {
	res, err := MACD(wavySeries(120), 12, 26, 9)
	if err != nil {
		t.Fatal(err)
	}
	for i := range res.Histogram {
		if !Defined(res.Histogram[i]) {
			continue
		}
		if res.Histogram[i] != res.Line[i]-res.Signal[i] {
			t.Errorf("index %d: histogram %v != line-signal %v", i, res.Histogram[i], res.Line[i]-res.Signal[i])
		}
	}
}

func TestMACD_ComposesEMA(t *testing.T) {
	closes := wavySeries(80)
	res, err := MACD(closes, 12, 26, 9)
	if err != nil {
		t.Fatal(err)
	}
	fast, _ := EMA(closes, 12)
	slow, _ := EMA(closes, 26)
	for i := 25; i < len(closes); i++ {
		if res.Line[i] != fast[i]-slow[i] {
			t.Errorf("index %d: line %v != EMA12-EMA26 %v", i, res.Line[i], fast[i]-slow[i])
		}
	}
}

func TestMACD_InvalidWindows(t *testing.T) {
	closes := wavySeries(60)
	if _, err := MACD(closes, 26, 12, 9); err == nil {
		t.Error("expected error when fast >= slow")
	}
	if _, err := MACD(closes, 0, 26, 9); err == nil {
		t.Error("expected error for zero fast window")
	}
	if _, err := MACD(closes, 12, 26, 0); err == nil {
		t.Error("expected error for zero signal window")
	}
}
