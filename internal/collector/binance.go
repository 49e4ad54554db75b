package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aravindkannappan/Market-Trend-Analyzer/internal/model"
)

const binanceKlineLimit = 1000

// BinanceFetcher retrieves crypto bars from the Binance public klines API.
// Pair symbols may use the "BTC/USDT" form; the slash is stripped.
type BinanceFetcher struct {
	Client  *http.Client
	BaseURL string
}

// NewBinanceFetcher creates a new Binance klines fetcher.
func NewBinanceFetcher(proxyURL string) *BinanceFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &BinanceFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL: "https://api.binance.com",
	}
}

func (f *BinanceFetcher) Name() string { return "binance" }

func binanceInterval(timeframe string) (string, error) {
	switch timeframe {
	case "1h":
		return "1h", nil
	case "1d":
		return "1d", nil
	case "1w", "1wk":
		return "1w", nil
	default:
		return "", fmt.Errorf("unsupported timeframe: %s", timeframe)
	}
}

// FetchBars retrieves klines for the pair over [start, end], paginating past
// the per-request limit.
func (f *BinanceFetcher) FetchBars(symbol, timeframe string, start, end time.Time) ([]model.Bar, error) {
	interval, err := binanceInterval(timeframe)
	if err != nil {
		return nil, err
	}
	pair := strings.ToUpper(strings.ReplaceAll(symbol, "/", ""))

	var bars []model.Bar
	startMs := start.UnixMilli()
	endMs := end.UnixMilli()

	for startMs < endMs {
		batch, err := f.fetchKlines(pair, interval, startMs, endMs)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		bars = append(bars, batch...)
		if len(batch) < binanceKlineLimit {
			break
		}
		startMs = batch[len(batch)-1].Time.UnixMilli() + 1
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("binance: no data returned for %s", pair)
	}
	return bars, nil
}

func (f *BinanceFetcher) fetchKlines(pair, interval string, startMs, endMs int64) ([]model.Bar, error) {
	u := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=%s&startTime=%d&endTime=%d&limit=%d",
		f.BaseURL, url.QueryEscape(pair), interval, startMs, endMs, binanceKlineLimit)

	resp, err := f.Client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("binance fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("binance read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("binance: status %d, body: %s", resp.StatusCode, string(body))
	}

	// Each kline is an array: [openTime, open, high, low, close, volume, ...]
	// with prices and volume as decimal strings.
	var raw [][]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("binance decode: %w", err)
	}

	bars := make([]model.Bar, 0, len(raw))
	for _, k := range raw {
		if len(k) < 6 {
			return nil, fmt.Errorf("binance: malformed kline with %d fields", len(k))
		}
		var openTime int64
		if err := json.Unmarshal(k[0], &openTime); err != nil {
			return nil, fmt.Errorf("binance decode open time: %w", err)
		}
		vals := make([]float64, 5)
		for i := 1; i <= 5; i++ {
			var s string
			if err := json.Unmarshal(k[i], &s); err != nil {
				return nil, fmt.Errorf("binance decode kline field %d: %w", i, err)
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("binance parse kline field %d: %w", i, err)
			}
			vals[i-1] = v
		}
		bars = append(bars, model.Bar{
			Time:   time.UnixMilli(openTime).UTC(),
			Open:   vals[0],
			High:   vals[1],
			Low:    vals[2],
			Close:  vals[3],
			Volume: vals[4],
		})
	}
	return bars, nil
}
