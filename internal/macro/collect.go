package macro

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mas6446/ai-adjutant-system/internal/calculator"
	"github.com/mas6446/ai-adjutant-system/internal/collector"
	"github.com/mas6446/ai-adjutant-system/internal/model"
)

// Overrides carries the dashboard's manual adjustments: raw numeric values for
// the value-judged indicators and direct verdicts for the qualitative ones.
// An override always wins over the fetched value for that indicator.
type Overrides struct {
	Values   map[string]float64 `json:"values,omitempty"`
	Verdicts map[string]bool    `json:"verdicts,omitempty"`
}

// Collector fetches every indicator in the configured roster and combines the
// verdicts into a MacroSnapshot. Fetch and parse failures never block the
// snapshot: the failing indicator is marked unknown and the aggregator
// substitutes its configured default.
type Collector struct {
	Market   collector.Fetcher
	Fred     *FredClient // nil when no API key is configured
	Climate  *ClimateScraper
	Flow     *FlowClient
	Version  SetVersion
	Defaults map[string]bool // per-indicator fail-open defaults
}

// Collect runs one full refresh cycle. It never returns an error; individual
// source failures degrade to unknown indicators.
func (c *Collector) Collect(ctx context.Context, ov *Overrides) model.MacroSnapshot {
	defs := Definitions(c.Version)
	indicators := make([]model.MacroIndicator, 0, len(defs))
	for _, def := range defs {
		ind := c.evaluate(ctx, def, ov)
		if !ind.Known {
			log.Warn().Str("indicator", def.Name).Str("source", def.Source).
				Str("detail", ind.Detail).Msg("macro indicator unavailable, will use default")
		}
		indicators = append(indicators, ind)
	}

	return model.MacroSnapshot{
		Indicators: indicators,
		Score:      Aggregate(indicators, c.Defaults),
		FetchedAt:  time.Now().UTC(),
	}
}

func (c *Collector) evaluate(ctx context.Context, def Definition, ov *Overrides) model.MacroIndicator {
	ind := model.MacroIndicator{Name: def.Name, Label: def.Label, Source: def.Source}

	// Direct verdict override short-circuits any fetch.
	if ov != nil {
		if v, ok := ov.Verdicts[def.Name]; ok {
			ind.Verdict, ind.Known, ind.Source = v, true, "manual"
			ind.Detail = "手動設定"
			return ind
		}
	}

	switch def.Name {
	case "twd_strong":
		c.trendVerdict(ctx, &ind, "TWD=X", false) // TWD strong when USD/TWD falls
	case "sox_up":
		c.trendVerdict(ctx, &ind, "^SOX", true)
	case "climate_pos":
		if c.Climate == nil {
			ind.Detail = "未設定"
			return ind
		}
		text, positive, err := c.Climate.FetchSignal(ctx)
		if err != nil {
			ind.Detail = "掃描失敗"
			return ind
		}
		ind.Verdict, ind.Known, ind.Detail = positive, true, text
	case "cpi_ok":
		c.fredTrendVerdict(ctx, &ind, SeriesCPI)
	case "rate_low":
		c.fredTrendVerdict(ctx, &ind, SeriesDiscountRate)
	case "foreign_net_buy":
		fetch := func() (float64, error) {
			if c.Flow == nil {
				return 0, fmt.Errorf("flow client not configured")
			}
			return c.Flow.ForeignNet(ctx)
		}
		c.valueVerdict(&ind, ov, fetch, func(v float64) bool { return v > 0 }, "%.1f 億")
	case "us10y_low":
		c.valueVerdict(&ind, ov, func() (float64, error) {
			latest, _, err := c.fredPair(ctx, SeriesUS10Y)
			return latest, err
		}, func(v float64) bool { return v < thresholdUS10Y }, "%.2f%%")
	case "dxy_low":
		c.valueVerdict(&ind, ov, func() (float64, error) {
			return c.Market.FetchQuote(ctx, "DX-Y.NYB")
		}, func(v float64) bool { return v < thresholdDXY }, "%.1f")
	case "vix_low":
		c.valueVerdict(&ind, ov, func() (float64, error) {
			latest, _, err := c.fredPair(ctx, SeriesVIX)
			return latest, err
		}, func(v float64) bool { return v < thresholdVIX }, "%.1f")
	case "pmi_expansion":
		c.valueVerdict(&ind, ov, nil, func(v float64) bool { return v > thresholdPMI }, "%.1f")
	case "export_orders_up":
		c.valueVerdict(&ind, ov, nil, func(v float64) bool { return v > 0 }, "%.1f%%")
	case "spx_bullish":
		c.bullAlignmentVerdict(ctx, &ind, "^GSPC")
	default:
		// Qualitative indicators have no data source; without an override
		// they stay unknown and the aggregator applies the default.
		ind.Detail = "未設定"
	}
	return ind
}

// trendVerdict compares the latest close of roughly one month of bars against
// the first. wantUp selects which direction counts as positive.
func (c *Collector) trendVerdict(ctx context.Context, ind *model.MacroIndicator, symbol string, wantUp bool) {
	bars, err := c.Market.FetchDailyBars(ctx, symbol, 22)
	if err != nil || len(bars) < 2 {
		ind.Detail = "無法取得數據"
		return
	}
	first, latest := bars[0].Close, bars[len(bars)-1].Close
	ind.Raw = latest
	ind.Known = true
	if wantUp {
		ind.Verdict = latest > first
	} else {
		ind.Verdict = latest < first
	}
	ind.Detail = fmt.Sprintf("%.2f → %.2f", first, latest)
}

func (c *Collector) fredPair(ctx context.Context, series string) (float64, float64, error) {
	if c.Fred == nil {
		return 0, 0, fmt.Errorf("fred client not configured")
	}
	return c.Fred.LatestPair(ctx, series)
}

// fredTrendVerdict is positive when the latest observation did not rise above
// the previous one.
func (c *Collector) fredTrendVerdict(ctx context.Context, ind *model.MacroIndicator, series string) {
	latest, previous, err := c.fredPair(ctx, series)
	if err != nil {
		ind.Detail = "無法取得數據"
		return
	}
	ind.Raw = latest
	ind.Known = true
	ind.Verdict = latest <= previous
	ind.Detail = fmt.Sprintf("%.2f (前期 %.2f)", latest, previous)
}

// valueVerdict resolves a numeric indicator: an override value wins, otherwise
// the fetch runs (when one exists), and the threshold judge derives the verdict.
func (c *Collector) valueVerdict(ind *model.MacroIndicator, ov *Overrides, fetch func() (float64, error), judge func(float64) bool, format string) {
	if ov != nil {
		if v, ok := ov.Values[ind.Name]; ok {
			ind.Raw, ind.Known, ind.Source = v, true, "manual"
			ind.Verdict = judge(v)
			ind.Detail = fmt.Sprintf(format, v)
			return
		}
	}
	if fetch == nil {
		ind.Detail = "未設定"
		return
	}
	v, err := fetch()
	if err != nil {
		ind.Detail = "無法取得數據"
		return
	}
	ind.Raw, ind.Known = v, true
	ind.Verdict = judge(v)
	ind.Detail = fmt.Sprintf(format, v)
}

// bullAlignmentVerdict checks the index for a bull alignment: price above the
// 50-day average and the 50-day above the 200-day.
func (c *Collector) bullAlignmentVerdict(ctx context.Context, ind *model.MacroIndicator, symbol string) {
	bars, err := c.Market.FetchDailyBars(ctx, symbol, 300)
	if err != nil {
		ind.Detail = "無法取得數據"
		return
	}
	closes := calculator.ExtractCloses(bars)
	ma50, err50 := calculator.CalculateSMA(closes, 50)
	ma200, err200 := calculator.CalculateSMA(closes, 200)
	if err50 != nil || err200 != nil {
		ind.Detail = "數據不足"
		return
	}
	price := closes[len(closes)-1]
	ind.Raw = price
	ind.Known = true
	ind.Verdict = price > ma50 && ma50 > ma200
	ind.Detail = fmt.Sprintf("%.0f / MA50 %.0f / MA200 %.0f", price, ma50, ma200)
}
