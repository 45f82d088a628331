package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/mas6446/ai-adjutant-system/internal/model"
)

func makeBars(closes []float64, start time.Time) []model.PriceBar {
	bars := make([]model.PriceBar, len(closes))
	d := start
	for i, c := range closes {
		bars[i] = model.PriceBar{
			Date:  d,
			Open:  c * 0.998,
			High:  c * 1.01,
			Low:   c * 0.99,
			Close: c,
		}
		d = d.AddDate(0, 0, 1)
		// skip weekends so resampling sees realistic trading days
		for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			d = d.AddDate(0, 0, 1)
		}
	}
	return bars
}

func trendingCloses(n int, base, step float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = base + float64(i)*step
	}
	return closes
}

func TestCalculateSMA(t *testing.T) {
	sma, err := CalculateSMA([]float64{1, 2, 3, 4, 5}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sma != 4 {
		t.Errorf("expected SMA 4, got %v", sma)
	}
	if _, err := CalculateSMA([]float64{1, 2}, 3); err == nil {
		t.Error("expected error for insufficient data")
	}
}

func TestEMASeries_SeedAndLength(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6}
	ema, err := EMASeries(values, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ema) != len(values) {
		t.Fatalf("expected aligned series, got len %d", len(ema))
	}
	if ema[2] != 2 {
		t.Errorf("expected seed SMA 2 at index 2, got %v", ema[2])
	}
	if ema[5] <= ema[2] {
		t.Errorf("EMA should rise on a rising series: %v", ema)
	}
}

func TestCalculateMACD_TrendSign(t *testing.T) {
	up, err := CalculateMACD(trendingCloses(80, 100, 1), 12, 26, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if up.MACD <= 0 {
		t.Errorf("expected positive MACD line on an uptrend, got %v", up.MACD)
	}

	down, err := CalculateMACD(trendingCloses(80, 200, -1), 12, 26, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if down.MACD >= 0 {
		t.Errorf("expected negative MACD line on a downtrend, got %v", down.MACD)
	}

	if _, err := CalculateMACD(trendingCloses(20, 100, 1), 12, 26, 9); err == nil {
		t.Error("expected error for insufficient data")
	}
}

func TestCalculateStochastic_Bounds(t *testing.T) {
	bars := makeBars(trendingCloses(60, 100, 0.7), time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC))
	k, d, err := CalculateStochastic(bars, 9, 3, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(k) != len(d) {
		t.Fatalf("expected aligned series, got %d vs %d", len(k), len(d))
	}
	for i := range k {
		if k[i] < 0 || k[i] > 100 || d[i] < 0 || d[i] > 100 {
			t.Fatalf("oscillator out of bounds at %d: k=%v d=%v", i, k[i], d[i])
		}
	}
	// rising closes keep the close near the top of its range
	if k[len(k)-1] < 50 {
		t.Errorf("expected high %%K on an uptrend, got %v", k[len(k)-1])
	}
}

func TestCalculateStochastic_FlatRange(t *testing.T) {
	bars := make([]model.PriceBar, 20)
	for i := range bars {
		bars[i] = model.PriceBar{Date: time.Now().AddDate(0, 0, i-20), Open: 100, High: 100, Low: 100, Close: 100}
	}
	k, _, err := CalculateStochastic(bars, 9, 3, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k[len(k)-1] != 50 {
		t.Errorf("expected neutral 50 for a degenerate range, got %v", k[len(k)-1])
	}
}

func TestCalculateATR(t *testing.T) {
	bars := makeBars(trendingCloses(40, 100, 0.5), time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC))
	atr, err := CalculateATR(bars, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atr <= 0 {
		t.Errorf("expected positive ATR, got %v", atr)
	}

	flat := make([]model.PriceBar, 20)
	for i := range flat {
		flat[i] = model.PriceBar{Open: 100, High: 100, Low: 100, Close: 100}
	}
	atr, err = CalculateATR(flat, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atr != 0 {
		t.Errorf("expected zero ATR for a flat series, got %v", atr)
	}

	if _, err := CalculateATR(flat[:10], 14); err == nil {
		t.Error("expected error for insufficient data")
	}
}

func TestCalculateCDP(t *testing.T) {
	bar := model.PriceBar{High: 110, Low: 90, Close: 100}
	p := CalculateCDP(bar)
	if p.Pivot != 100 {
		t.Errorf("expected pivot 100, got %v", p.Pivot)
	}
	if p.ResistHigh != 120 || p.SupportLow != 80 {
		t.Errorf("expected outer levels 120/80, got %v/%v", p.ResistHigh, p.SupportLow)
	}
	if p.ResistNear != 110 || p.SupportNear != 90 {
		t.Errorf("expected near levels 110/90, got %v/%v", p.ResistNear, p.SupportNear)
	}
	if !(p.SupportLow < p.SupportNear && p.SupportNear < p.Pivot && p.Pivot < p.ResistNear && p.ResistNear < p.ResistHigh) {
		t.Errorf("expected ordered levels, got %+v", p)
	}
}

func TestResampleWeekly(t *testing.T) {
	// Two ISO weeks: Mon-Fri then Mon-Wed.
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC) // a Monday
	bars := makeBars([]float64{100, 102, 101, 105, 104, 106, 108, 107}, start)
	weekly := ResampleWeekly(bars)
	if len(weekly) != 2 {
		t.Fatalf("expected 2 weekly bars, got %d", len(weekly))
	}
	w0 := weekly[0]
	if w0.Open != bars[0].Open {
		t.Errorf("weekly open should be first daily open, got %v", w0.Open)
	}
	if w0.Close != 104 {
		t.Errorf("weekly close should be Friday close, got %v", w0.Close)
	}
	if w0.High != 105*1.01 {
		t.Errorf("weekly high should be max daily high, got %v", w0.High)
	}
	if w0.Low != 100*0.99 {
		t.Errorf("weekly low should be min daily low, got %v", w0.Low)
	}
	if weekly[1].Close != 107 {
		t.Errorf("partial week close should be latest close, got %v", weekly[1].Close)
	}
}

func TestIndicatorDeterminism(t *testing.T) {
	bars := makeBars(trendingCloses(260, 100, 0.3), time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC))
	closes := ExtractCloses(ResampleWeekly(bars))

	m1, err1 := CalculateMACD(closes, 12, 26, 9)
	m2, err2 := CalculateMACD(closes, 12, 26, 9)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v %v", err1, err2)
	}
	if m1 != m2 {
		t.Errorf("MACD not deterministic: %+v vs %+v", m1, m2)
	}

	a1, _ := CalculateATR(bars, 14)
	a2, _ := CalculateATR(bars, 14)
	if math.Abs(a1-a2) != 0 {
		t.Errorf("ATR not deterministic: %v vs %v", a1, a2)
	}

	k1, d1, _ := CalculateStochastic(bars, 9, 3, 3)
	k2, d2, _ := CalculateStochastic(bars, 9, 3, 3)
	if k1[len(k1)-1] != k2[len(k2)-1] || d1[len(d1)-1] != d2[len(d2)-1] {
		t.Error("Stochastic not deterministic")
	}
}
