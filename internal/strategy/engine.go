// Package strategy computes per-instrument tactical signals and price levels,
// gated by the composite macro score.
package strategy

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mas6446/ai-adjutant-system/internal/calculator"
	"github.com/mas6446/ai-adjutant-system/internal/collector"
	"github.com/mas6446/ai-adjutant-system/internal/model"
)

// ErrNoData marks an instrument whose price history is missing or too short
// for any analysis.
var ErrNoData = errors.New("insufficient price history")

// Config tunes the engine. Zero values take the documented defaults.
type Config struct {
	VetoCutoff int // macro score below this forces STAY_AWAY
	MinBars    int // minimum daily bars before analysis runs
	FetchDays  int // trailing window requested from the data source
}

func (c Config) withDefaults() Config {
	if c.VetoCutoff == 0 {
		c.VetoCutoff = 40
	}
	if c.MinBars == 0 {
		c.MinBars = 60
	}
	if c.FetchDays == 0 {
		c.FetchDays = 365
	}
	return c
}

// Engine runs the technical pipeline for a batch of tickers.
type Engine struct {
	fetcher collector.Fetcher
	cfg     Config
	rules   []Rule
}

// NewEngine creates an engine over the given market data source.
func NewEngine(fetcher collector.Fetcher, cfg Config) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		fetcher: fetcher,
		cfg:     cfg,
		rules:   Ladder(cfg.VetoCutoff),
	}
}

// BatchItem is one instrument's outcome within a batch. Err is set when that
// instrument's analysis failed; other instruments are unaffected.
type BatchItem struct {
	Ticker string                `json:"ticker"`
	Result *model.TacticalResult `json:"result,omitempty"`
	Err    string                `json:"error,omitempty"`
}

// AnalyzeBatch processes tickers sequentially, isolating failures per item.
func (e *Engine) AnalyzeBatch(ctx context.Context, tickers []string, macroScore int) []BatchItem {
	items := make([]BatchItem, 0, len(tickers))
	for _, ticker := range tickers {
		res, err := e.Analyze(ctx, ticker, macroScore)
		item := BatchItem{Ticker: ticker, Result: res}
		if err != nil {
			item.Err = err.Error()
			log.Warn().Str("ticker", ticker).Err(err).Msg("analysis failed")
		}
		items = append(items, item)
	}
	return items
}

// Analyze fetches the instrument's history and runs the full pipeline.
func (e *Engine) Analyze(ctx context.Context, ticker string, macroScore int) (*model.TacticalResult, error) {
	bars, err := e.fetcher.FetchDailyBars(ctx, ticker, e.cfg.FetchDays)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ticker, err)
	}

	res, err := e.Compute(ticker, bars, macroScore)
	if err != nil {
		return nil, err
	}

	// Name lookup is decorative; a failure never fails the analysis.
	if name, err := e.fetcher.LookupName(ctx, ticker); err == nil {
		res.Name = name
	}
	return res, nil
}

// Compute runs the indicator pipeline over an already-fetched daily series.
// It is a pure function of its inputs.
func (e *Engine) Compute(ticker string, daily []model.PriceBar, macroScore int) (*model.TacticalResult, error) {
	if len(daily) < e.cfg.MinBars {
		return nil, fmt.Errorf("%w: %s has %d bars, need %d", ErrNoData, ticker, len(daily), e.cfg.MinBars)
	}

	latest := daily[len(daily)-1]
	prev := daily[len(daily)-2]
	price := latest.Close

	weekly := calculator.ResampleWeekly(daily)
	macd, err := calculator.CalculateMACD(calculator.ExtractCloses(weekly), 12, 26, 9)
	if err != nil {
		return nil, fmt.Errorf("weekly MACD %s: %w", ticker, err)
	}

	k, d, err := calculator.CalculateStochastic(daily, 9, 3, 3)
	if err != nil {
		return nil, fmt.Errorf("stochastic %s: %w", ticker, err)
	}
	if len(k) < 2 {
		return nil, fmt.Errorf("%w: %s stochastic series too short", ErrNoData, ticker)
	}

	atr, err := calculator.CalculateATR(daily, 14)
	if err != nil {
		return nil, fmt.Errorf("ATR %s: %w", ticker, err)
	}

	pivots := calculator.CalculateCDP(latest)
	riskAdj := riskAdjustment(macroScore)
	entryLo, entryHi := entryZone(price, atr, pivots)
	t1, t2 := targets(price, atr, riskAdj)

	snap := Snapshot{
		MacroScore: macroScore,
		WeeklyHist: macd.Histogram,
		K:          k[len(k)-1],
		D:          d[len(d)-1],
		PrevK:      k[len(k)-2],
		PrevD:      d[len(d)-2],
		Price:      price,
		EntryLow:   entryLo,
		EntryHigh:  entryHi,
	}
	signal := Classify(e.rules, snap)

	changePct := 0.0
	if prev.Close > 0 {
		changePct = (price/prev.Close - 1) * 100
	}

	return &model.TacticalResult{
		Ticker:     ticker,
		Price:      price,
		ChangePct:  changePct,
		Signal:     signal,
		Color:      signal.Color(),
		EntryLow:   entryLo,
		EntryHigh:  entryHi,
		StopLoss:   stopLoss(price, atr, riskAdj, latest, prev),
		Target1:    t1,
		Target2:    t2,
		K:          snap.K,
		D:          snap.D,
		WeeklyHist: macd.Histogram,
		ATR:        atr,
		Pivots:     pivots,
	}, nil
}
