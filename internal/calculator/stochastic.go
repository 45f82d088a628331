package calculator

import (
	"errors"

	"github.com/mas6446/ai-adjutant-system/internal/model"
)

// CalculateStochastic computes the slow Stochastic oscillator over daily bars:
// raw %K over kPeriod highs/lows, smoothed by `smooth`, with %D as a dPeriod
// SMA of the smoothed %K. The returned slices are equal-length, chronological,
// and end at the latest bar; callers typically read the last two entries for
// crossover detection.
func CalculateStochastic(bars []model.PriceBar, kPeriod, dPeriod, smooth int) (k, d []float64, err error) {
	if kPeriod <= 0 || dPeriod <= 0 || smooth <= 0 {
		return nil, nil, errors.New("periods must be positive")
	}
	minBars := kPeriod + smooth + dPeriod - 2
	if len(bars) < minBars {
		return nil, nil, errors.New("not enough data for Stochastic calculation")
	}

	// Raw %K: position of the close within the kPeriod high/low range.
	raw := make([]float64, 0, len(bars)-kPeriod+1)
	for i := kPeriod - 1; i < len(bars); i++ {
		hi, lo := bars[i-kPeriod+1].High, bars[i-kPeriod+1].Low
		for j := i - kPeriod + 2; j <= i; j++ {
			if bars[j].High > hi {
				hi = bars[j].High
			}
			if bars[j].Low < lo {
				lo = bars[j].Low
			}
		}
		if hi == lo {
			raw = append(raw, 50)
			continue
		}
		raw = append(raw, (bars[i].Close-lo)/(hi-lo)*100)
	}

	k = rollingSMA(raw, smooth)
	d = rollingSMA(k, dPeriod)
	// Trim %K so both series end-align at the latest bar.
	k = k[len(k)-len(d):]
	return k, d, nil
}

func rollingSMA(values []float64, period int) []float64 {
	out := make([]float64, 0, len(values)-period+1)
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out = append(out, sum/float64(period))
		}
	}
	return out
}
