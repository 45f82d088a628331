package strategy

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/mas6446/ai-adjutant-system/internal/collector"
	"github.com/mas6446/ai-adjutant-system/internal/model"
)

// routingFetcher serves per-ticker canned data so batch isolation can be tested.
type routingFetcher struct {
	bars map[string][]model.PriceBar
	errs map[string]error
}

func (r *routingFetcher) Name() string { return "routing" }

func (r *routingFetcher) FetchDailyBars(_ context.Context, symbol string, _ int) ([]model.PriceBar, error) {
	if err, ok := r.errs[symbol]; ok {
		return nil, err
	}
	return r.bars[symbol], nil
}

func (r *routingFetcher) FetchQuote(_ context.Context, symbol string) (float64, error) {
	bars := r.bars[symbol]
	if len(bars) == 0 {
		return 0, collector.ErrNoData
	}
	return bars[len(bars)-1].Close, nil
}

func (r *routingFetcher) LookupName(_ context.Context, symbol string) (string, error) {
	return symbol + " Corp", nil
}

func TestCompute_TooShortHistory(t *testing.T) {
	e := NewEngine(&collector.MockFetcher{}, Config{})
	_, err := e.Compute("2330.TW", collector.GenerateMockBars(600, 30), 70)
	if err == nil {
		t.Fatal("expected error for short history")
	}
	if !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestCompute_ValidSeries(t *testing.T) {
	e := NewEngine(&collector.MockFetcher{}, Config{})
	bars := collector.GenerateMockBars(600, 300)

	res, err := e.Compute("2330.TW", bars, 70)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for name, v := range map[string]float64{
		"price": res.Price, "stop": res.StopLoss, "target1": res.Target1,
		"target2": res.Target2, "atr": res.ATR, "k": res.K, "d": res.D,
		"entry_low": res.EntryLow, "entry_high": res.EntryHigh,
		"pivot": res.Pivots.Pivot, "hist": res.WeeklyHist,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s is not finite: %v", name, v)
		}
	}

	if !(res.StopLoss < res.Price && res.Price < res.Target1 && res.Target1 < res.Target2) {
		t.Errorf("levels out of order: stop=%v price=%v t1=%v t2=%v",
			res.StopLoss, res.Price, res.Target1, res.Target2)
	}
	if res.EntryLow > res.EntryHigh || res.EntryHigh != res.Price {
		t.Errorf("entry zone malformed: %v-%v at price %v", res.EntryLow, res.EntryHigh, res.Price)
	}
	if res.Signal == "" || res.Color == "" {
		t.Error("expected a classified signal")
	}
}

func TestCompute_MacroVetoDominates(t *testing.T) {
	e := NewEngine(&collector.MockFetcher{}, Config{VetoCutoff: 40})
	bars := collector.GenerateMockBars(600, 300)

	res, err := e.Compute("2330.TW", bars, 35)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Signal != model.SignalStayAway {
		t.Errorf("expected STAY_AWAY under macro veto, got %s", res.Signal)
	}
	if res.Color != "red" {
		t.Errorf("expected red, got %s", res.Color)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	e := NewEngine(&collector.MockFetcher{}, Config{})
	bars := collector.GenerateMockBars(600, 300)

	r1, err := e.Compute("2330.TW", bars, 70)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := e.Compute("2330.TW", bars, 70)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *r1 != *r2 {
		t.Errorf("pipeline not idempotent:\n%+v\n%+v", r1, r2)
	}
}

func TestAnalyzeBatch_IsolatesFailures(t *testing.T) {
	f := &routingFetcher{
		bars: map[string][]model.PriceBar{
			"2330.TW": collector.GenerateMockBars(600, 300),
			"SHORT":   collector.GenerateMockBars(50, 10),
		},
		errs: map[string]error{"9999": errors.New("fetch timeout")},
	}
	e := NewEngine(f, Config{})

	items := e.AnalyzeBatch(context.Background(), []string{"2330.TW", "9999", "SHORT"}, 70)
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	ok := items[0]
	if ok.Err != "" || ok.Result == nil {
		t.Fatalf("expected first ticker to succeed: %+v", ok)
	}
	if ok.Result.Name != "2330.TW Corp" {
		t.Errorf("expected name lookup to decorate result, got %q", ok.Result.Name)
	}

	if items[1].Err == "" || items[1].Result != nil {
		t.Errorf("expected fetch failure surfaced for second ticker: %+v", items[1])
	}
	if items[2].Err == "" {
		t.Errorf("expected short-history failure surfaced for third ticker: %+v", items[2])
	}
}
