// Command signal-engine is the daily driver: for every configured symbol
// it fetches OHLCV history, computes the indicator frame, classifies the
// current signal, optionally runs the DCA trade simulator, and sends a
// per-symbol alert on signal change plus a daily cross-asset digest.
// Grounded in the teacher's cmd/bot and cmd/portfolio-launcher: the same
// flag-driven single-process runner, godotenv bootstrap and per-asset
// failure isolation, retargeted from a live trading loop to a batch
// classification run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bvantuan/dca-signal-engine/internal/config"
	"github.com/bvantuan/dca-signal-engine/internal/datasource"
	"github.com/bvantuan/dca-signal-engine/internal/indicators"
	"github.com/bvantuan/dca-signal-engine/internal/logger"
	"github.com/bvantuan/dca-signal-engine/internal/monitoring"
	"github.com/bvantuan/dca-signal-engine/internal/notifications"
	"github.com/bvantuan/dca-signal-engine/internal/portfolio"
	"github.com/bvantuan/dca-signal-engine/internal/scorer"
	"github.com/bvantuan/dca-signal-engine/internal/sentiment"
	"github.com/bvantuan/dca-signal-engine/internal/signalstore"
	"github.com/bvantuan/dca-signal-engine/internal/simulator"
	"github.com/bvantuan/dca-signal-engine/pkg/reporting"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	var (
		forceReport = flag.Bool("force-report", false, "Send the daily digest even if one was already sent today")
		simulate    = flag.Bool("simulate", false, "Run the trade simulator and write a per-symbol report workbook")
		cryptoList  = flag.String("crypto", "", "Comma-separated symbol override (defaults to CRYPTO_SYMBOLS)")
		days        = flag.Int("days", 0, "Days of history to fetch (0 = use FETCH_DAYS, default 365)")
	)
	flag.Parse()

	cfg := config.Load()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("=== DCA Signal Engine (%s) ===", cfg.Environment)

	symbols := cfg.DataSource.Symbols
	if *cryptoList != "" {
		symbols = splitSymbols(*cryptoList)
	}
	fetchDays := cfg.DataSource.Days
	if *days > 0 {
		fetchDays = *days
	}

	bybitClient := datasource.NewBybitClient(cfg.DataSource.BybitAPIKey, cfg.DataSource.BybitSecret, cfg.DataSource.BybitBaseURL)
	source, err := datasource.NewSource(bybitClient, cfg.DataSource.CacheDir)
	if err != nil {
		log.Fatalf("failed to initialize data source: %v", err)
	}

	sentimentClient := sentiment.NewRapidAPIClient(cfg.Sentiment.RapidAPIKey)

	store, err := signalstore.Open(cfg.SignalStorePath)
	if err != nil {
		log.Fatalf("failed to open signal store: %v", err)
	}

	notifier := notifications.NewTelegramNotifier(cfg.Notifications.TelegramToken, cfg.Notifications.TelegramChatID)

	go serveMonitoring(cfg)

	ctx := context.Background()

	fgi := sentiment.DefaultValue
	if snap, err := sentimentClient.CurrentIndex(ctx); err != nil {
		log.Printf("sentiment fetch failed, using default: %v", err)
	} else {
		fgi = sentiment.ValueOrDefault(snap)
	}

	health := monitoring.NewHealthChecker()
	go serveHealth(cfg, health)

	run := &engineRun{
		cfg:       cfg,
		source:    source,
		store:     store,
		notifier:  notifier,
		fgi:       fgi,
		frames:    make(map[string]*indicators.IndicatorFrame),
		simulated: make(map[string]simulator.Summary),
	}

	exitCode := 0
	for _, symbol := range symbols {
		if err := run.processSymbol(ctx, symbol, fetchDays, *simulate); err != nil {
			log.Printf("symbol %s: %v", symbol, err)
			health.AddError(fmt.Sprintf("%s: %v", symbol, err))
			exitCode = 1
		}
	}

	if err := run.maybeSendDigest(symbols, *forceReport); err != nil {
		log.Printf("digest: %v", err)
		health.AddError(fmt.Sprintf("digest: %v", err))
		exitCode = 1
	}

	health.RecordRun(exitCode == 0)
	os.Exit(exitCode)
}

type engineRun struct {
	cfg       *config.Config
	source    *datasource.Source
	store     *signalstore.Store
	notifier  notifications.Notifier
	fgi       int
	frames    map[string]*indicators.IndicatorFrame
	simulated map[string]simulator.Summary
}

func (r *engineRun) processSymbol(ctx context.Context, symbol string, days int, simulate bool) error {
	symLog, err := logger.NewLogger(symbol)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer symLog.Close()

	series, err := r.source.Fetch(ctx, symbol, days)
	if err != nil {
		monitoring.RecordRunError(symbol, "fetch")
		symLog.LogError("fetch", err)
		return fmt.Errorf("fetch: %w", err)
	}

	frame := indicators.NewEngine().Compute(series)
	r.frames[symbol] = frame
	if frame.Len() == 0 {
		return fmt.Errorf("empty indicator frame")
	}

	row := frame.Row(frame.Len() - 1)
	eval := scorer.Evaluate(row, r.fgi)

	// The live classification surface is stateless: it has no open
	// position to weigh DCA buy/sell scoring against, so those terms
	// never fire here. Position-aware scoring only happens inside the
	// historical walk below, under -simulate.
	signal := scorer.ComposeSignal(eval, false, false)

	monitoring.RecordSignal(symbol, signal.String())
	monitoring.RecordIndicators(symbol, map[string]float64{
		"price": row.Price, "rsi": row.RSI, "ma25": row.MA25, "ma50": row.MA50,
		"macd": row.MACD, "atr14": row.ATR14,
	})
	symLog.LogSignal(symbol, signal.String(), row.Price, eval.BuyScore, eval.SellScore)

	if err := r.recordSignalChange(symbol, signal, row.Price, row.Datetime); err != nil {
		symLog.LogError("notify", err)
		return fmt.Errorf("notify: %w", err)
	}

	if simulate {
		summary := simulator.Run(frame, r.fgi, r.cfg.SimulatorParams())
		r.simulated[symbol] = summary
		monitoring.SimulatedROI.WithLabelValues(symbol).Set(summary.ROI)
		symLog.LogDigest(1, summary.ROI)

		if err := r.writeWorkbook(symbol, summary); err != nil {
			symLog.LogError("report", err)
			return fmt.Errorf("report: %w", err)
		}
	}

	return nil
}

func (r *engineRun) recordSignalChange(symbol string, signal scorer.Signal, price float64, datetimeMillis int64) error {
	newAction := signalstore.Action(signal.String())
	prevAction, _ := r.store.Get(symbol)

	if prevAction != signalstore.ActionAny && prevAction != newAction {
		alert := notifications.SignalAlert{
			Symbol:         symbol,
			PreviousAction: string(prevAction),
			NewAction:      string(newAction),
			Price:          price,
			Timestamp:      time.UnixMilli(datetimeMillis).UTC(),
		}
		if err := notifications.Notify(r.notifier, alert); err != nil {
			return err
		}
	}

	return r.store.Set(symbol, newAction, false)
}

func (r *engineRun) writeWorkbook(symbol string, summary simulator.Summary) error {
	reportDate := time.Now().UTC().Format("2006-01-02")
	dir := reporting.DefaultOutputDir(symbol, reportDate)
	path := filepath.Join(dir, fmt.Sprintf("%s.xlsx", symbol))
	return reporting.WriteWorkbookXLSX(reporting.WorkbookData{Symbol: symbol, Summary: summary}, path)
}

func (r *engineRun) maybeSendDigest(symbols []string, force bool) error {
	lastReportDate, sentToday := r.store.ReportState()
	today := time.Now().UTC().Format("2006-01-02")
	if !force && sentToday && lastReportDate == today {
		return nil
	}

	priceSeries := make([][]float64, 0, len(symbols))
	frameOrder := make([]string, 0, len(symbols))
	signals := make(map[string]string, len(symbols))
	for _, symbol := range symbols {
		frame, ok := r.frames[symbol]
		if !ok {
			continue
		}
		frameOrder = append(frameOrder, symbol)
		priceSeries = append(priceSeries, frame.Price)
		if action, _ := r.store.Get(symbol); action != signalstore.ActionAny {
			signals[symbol] = string(action)
		}
	}
	if len(frameOrder) == 0 {
		return nil
	}

	correlation := portfolio.CorrelationMatrix(priceSeries)
	ranking := portfolio.CompareAssetsPerformance(r.frames, frameOrder)

	performance := make([]notifications.PerformanceRow, 0, len(ranking))
	for _, a := range ranking {
		row := notifications.PerformanceRow{Symbol: a.Symbol, ROI: a.ROI, FinalValue: a.FinalValue, NumTrades: a.NumTrades}
		// A -simulate run already walked this symbol's own trailing window
		// under the live sentiment reading; prefer it over the neutral-
		// sentiment comparison run CompareAssetsPerformance used.
		if sim, ok := r.simulated[a.Symbol]; ok {
			row.ROI, row.FinalValue, row.NumTrades = sim.ROI, sim.FinalPortfolioValue, sim.NumTrades
		}
		performance = append(performance, row)
	}

	report := notifications.DigestReport{
		Date:           today,
		Signals:        signals,
		Symbols:        frameOrder,
		Correlation:    correlation,
		Performance:    performance,
		SentimentValue: r.fgi,
		SentimentLabel: string(sentiment.Classify(r.fgi)),
	}

	if err := notifications.NotifyDigest(r.notifier, report); err != nil {
		return err
	}

	recordCorrelationExtremes(frameOrder, correlation)
	return r.store.SetReportState(today, true)
}

func recordCorrelationExtremes(symbols []string, correlation [][]float64) {
	for i := range symbols {
		for j := i + 1; j < len(symbols); j++ {
			monitoring.RecordCorrelationExtreme(symbols[i], symbols[j], correlation[i][j])
		}
	}
}

func splitSymbols(csv string) []string {
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func serveMonitoring(cfg *config.Config) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%d", cfg.Monitoring.PrometheusPort)
	log.Printf("Starting Prometheus server on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("monitoring server error: %v", err)
	}
}

func serveHealth(cfg *config.Config, health *monitoring.HealthChecker) {
	mux := http.NewServeMux()
	mux.Handle("/healthz", health)
	addr := fmt.Sprintf(":%d", cfg.Monitoring.HealthPort)
	log.Printf("Starting health server on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("health server error: %v", err)
	}
}
