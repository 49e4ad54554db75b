package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/aravindkannappan/Market-Trend-Analyzer/internal/analysis"
	"github.com/aravindkannappan/Market-Trend-Analyzer/internal/chart"
	"github.com/aravindkannappan/Market-Trend-Analyzer/internal/collector"
	"github.com/aravindkannappan/Market-Trend-Analyzer/internal/config"
	"github.com/aravindkannappan/Market-Trend-Analyzer/internal/recorder"
	"github.com/aravindkannappan/Market-Trend-Analyzer/internal/scheduler"
	"github.com/aravindkannappan/Market-Trend-Analyzer/internal/series"
)

const dateLayout = "2006-01-02"

var (
	cfgPath     string
	symbol      string
	market      string
	timeframe   string
	startDate   string
	endDate     string
	outputCSV   string
	outputChart string
	sqlitePath  string
	cronSpec    string
	mockData    bool
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	rootCmd := &cobra.Command{
		Use:   "analyzer",
		Short: "Analyze market trends for a stock or crypto symbol",
		Long: `analyzer fetches historical price bars for one symbol, computes
SMA/EMA/RSI/MACD, classifies each bar as Bullish, Bearish or Neutral, and
writes the joined table to CSV (and optionally SQLite) plus an HTML chart.`,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "configs/config.yaml", "Config file path")
	rootCmd.Flags().StringVarP(&symbol, "symbol", "s", "", "Market symbol (e.g. AAPL, BTC/USDT)")
	rootCmd.Flags().StringVarP(&market, "market", "m", "", "Market type: stock or crypto")
	rootCmd.Flags().StringVarP(&timeframe, "timeframe", "t", "", "Bar timeframe: 1h, 1d or 1w")
	rootCmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, default lookback window)")
	rootCmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, default today)")
	rootCmd.Flags().StringVar(&outputCSV, "output-csv", "", "Output CSV file path")
	rootCmd.Flags().StringVar(&outputChart, "output-chart", "", "Output HTML chart path")
	rootCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "SQLite database path (optional)")
	rootCmd.Flags().StringVar(&cronSpec, "cron", "", "Cron spec for periodic re-analysis (watch mode)")
	rootCmd.Flags().BoolVar(&mockData, "mock", false, "Use generated mock data instead of a live source")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	if v := os.Getenv("CONFIG_PATH"); v != "" && !cmd.Flags().Changed("config") {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// CLI flags override config.
	if symbol != "" {
		cfg.Analysis.Symbol = symbol
	}
	if market != "" {
		cfg.Analysis.Market = market
	}
	if timeframe != "" {
		cfg.Analysis.Timeframe = timeframe
	}
	if outputCSV != "" {
		cfg.Output.CSVPath = outputCSV
	}
	if outputChart != "" {
		cfg.Output.ChartPath = outputChart
	}
	if sqlitePath != "" {
		cfg.Output.SQLitePath = sqlitePath
	}
	if cronSpec != "" {
		cfg.Schedule.AnalyzeCron = cronSpec
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	var fetcher collector.Fetcher
	switch {
	case mockData:
		fetcher = &collector.MockFetcher{}
	case cfg.Analysis.Market == "crypto":
		fetcher = collector.NewBinanceFetcher(cfg.Proxy)
	default:
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	recorders := []recorder.Recorder{recorder.NewCSVRecorder(cfg.Output.CSVPath)}
	if cfg.Output.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Output.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, skipping: %v", err)
		} else {
			recorders = append(recorders, sr)
			defer sr.Close()
		}
	}

	if cfg.Schedule.AnalyzeCron == "" {
		return runAnalysis(cfg, fetcher, recorders)
	}

	// Watch mode: run once now, then on schedule until interrupted.
	if err := runAnalysis(cfg, fetcher, recorders); err != nil {
		log.Printf("[ERROR] analysis: %v", err)
	}
	sched := scheduler.New(func() {
		if err := runAnalysis(cfg, fetcher, recorders); err != nil {
			log.Printf("[ERROR] scheduled analysis: %v", err)
		}
	})
	if err := sched.Register(cfg.Schedule.AnalyzeCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	log.Println("[INFO] watch mode running. Press Ctrl+C to stop.")
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Println("[INFO] shutdown signal received, stopping...")
	return nil
}

func runAnalysis(cfg *config.Config, fetcher collector.Fetcher, recorders []recorder.Recorder) error {
	start, end, err := dateRange(cfg.Analysis.LookbackDays)
	if err != nil {
		return err
	}

	log.Printf("[INFO] fetching %s (%s, %s) from %s to %s",
		cfg.Analysis.Symbol, cfg.Analysis.Market, cfg.Analysis.Timeframe,
		start.Format(dateLayout), end.Format(dateLayout))
	bars, err := fetcher.FetchBars(cfg.Analysis.Symbol, cfg.Analysis.Timeframe, start, end)
	if err != nil {
		return fmt.Errorf("fetch bars: %w", err)
	}
	log.Printf("[INFO] fetched %d bars", len(bars))

	s, err := series.New(bars)
	if err != nil {
		return fmt.Errorf("validate series: %w", err)
	}

	res, err := analysis.Run(s)
	if err != nil {
		return fmt.Errorf("run analysis: %w", err)
	}

	sum := recorder.Summarize(uuid.NewString(), cfg.Analysis.Symbol, cfg.Analysis.Market,
		cfg.Analysis.Timeframe, res.Rows)
	for _, rec := range recorders {
		if err := rec.RecordRun(sum, res.Rows); err != nil {
			return fmt.Errorf("record run: %w", err)
		}
	}
	log.Printf("[INFO] analysis saved to %s", cfg.Output.CSVPath)

	title := fmt.Sprintf("%s (%s)", cfg.Analysis.Symbol, cfg.Analysis.Timeframe)
	if err := chart.Render(cfg.Output.ChartPath, title, res.Rows); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	log.Printf("[INFO] chart saved to %s", cfg.Output.ChartPath)

	log.Printf("[INFO] run %s: %d bars, bullish=%d bearish=%d neutral=%d",
		sum.ID, sum.Bars, sum.Bullish, sum.Bearish, sum.Neutral)
	return nil
}

// dateRange resolves the analysis window from the --start/--end flags, falling
// back to the trailing lookback window ending today.
func dateRange(lookbackDays int) (time.Time, time.Time, error) {
	end := time.Now().UTC().Truncate(24 * time.Hour)
	if endDate != "" {
		var err error
		end, err = time.Parse(dateLayout, endDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse --end: %w", err)
		}
	}
	start := end.AddDate(0, 0, -lookbackDays)
	if startDate != "" {
		var err error
		start, err = time.Parse(dateLayout, startDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse --start: %w", err)
		}
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start date %s is not before end date %s",
			start.Format(dateLayout), end.Format(dateLayout))
	}
	return start, end, nil
}
