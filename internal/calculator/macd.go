package calculator

import "errors"

// MACDResult holds the latest MACD line, signal line, and histogram values.
type MACDResult struct {
	MACD      float64
	Signal    float64
	Histogram float64
}

// CalculateMACD computes MACD(fast, slow, signal) over the given closes and
// returns the most recent values. Requires at least slow+signal-1 closes so
// the signal EMA has a full seeding window.
func CalculateMACD(closes []float64, fast, slow, signal int) (MACDResult, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return MACDResult{}, errors.New("periods must be positive")
	}
	if fast >= slow {
		return MACDResult{}, errors.New("fast period must be shorter than slow period")
	}
	if len(closes) < slow+signal-1 {
		return MACDResult{}, errors.New("not enough data for MACD calculation")
	}

	fastEMA, err := EMASeries(closes, fast)
	if err != nil {
		return MACDResult{}, err
	}
	slowEMA, err := EMASeries(closes, slow)
	if err != nil {
		return MACDResult{}, err
	}

	// MACD line is defined from index slow-1 onward.
	macdLine := make([]float64, 0, len(closes)-slow+1)
	for i := slow - 1; i < len(closes); i++ {
		macdLine = append(macdLine, fastEMA[i]-slowEMA[i])
	}

	signalEMA, err := EMASeries(macdLine, signal)
	if err != nil {
		return MACDResult{}, err
	}

	latest := MACDResult{
		MACD:   macdLine[len(macdLine)-1],
		Signal: signalEMA[len(signalEMA)-1],
	}
	latest.Histogram = latest.MACD - latest.Signal
	return latest, nil
}
