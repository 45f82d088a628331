package calculator

import (
	"errors"

	"github.com/mas6446/ai-adjutant-system/internal/model"
)

// CalculateSMA computes the simple moving average of the last `period` prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// EMASeries computes an exponential moving average over the full input.
// The result is aligned with the input: entries before index period-1 are
// zero, entry period-1 holds the seeding SMA, and later entries apply the
// standard 2/(period+1) smoothing.
func EMASeries(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(values) < period {
		return nil, errors.New("not enough data for EMA calculation")
	}
	out := make([]float64, len(values))
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	out[period-1] = sum / float64(period)
	k := 2.0 / float64(period+1)
	for i := period; i < len(values); i++ {
		out[i] = (values[i]-out[i-1])*k + out[i-1]
	}
	return out, nil
}

// ExtractCloses returns the close prices of the given bars in order.
func ExtractCloses(bars []model.PriceBar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
