package calculator

import (
	"errors"
	"math"

	"github.com/mas6446/ai-adjutant-system/internal/model"
)

// CalculateATR computes the Wilder-smoothed Average True Range over the given
// period. Requires at least period+1 bars (true range needs a prior close).
func CalculateATR(bars []model.PriceBar, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(bars) < period+1 {
		return 0, errors.New("not enough data for ATR calculation")
	}

	trs := make([]float64, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		hl := bars[i].High - bars[i].Low
		hc := math.Abs(bars[i].High - bars[i-1].Close)
		lc := math.Abs(bars[i].Low - bars[i-1].Close)
		trs = append(trs, math.Max(hl, math.Max(hc, lc)))
	}

	// Seed with the SMA of the first `period` true ranges, then apply
	// Wilder smoothing over the remainder.
	atr := 0.0
	for i := 0; i < period; i++ {
		atr += trs[i]
	}
	atr /= float64(period)
	for i := period; i < len(trs); i++ {
		atr = (atr*float64(period-1) + trs[i]) / float64(period)
	}
	return atr, nil
}
