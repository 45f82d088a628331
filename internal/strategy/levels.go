package strategy

import "github.com/mas6446/ai-adjutant-system/internal/model"

// Level multipliers for the volatility-based stop and take-profit targets.
const (
	stopATRMult      = 2.0
	target1ATRMult   = 1.5
	target2ATRMult   = 3.5
	entryZoneATRFrac = 0.5
	structuralFloor  = 0.995 // fraction of the latest low backing the stop
	gapDownPct       = 0.03
)

// stopLoss applies the documented stop policy: a volatility stop of
// 2*ATR*riskAdj below price, raised to 99.5% of the latest low when that
// structural level sits higher, and raised again to the day's open after an
// opening gap-down of more than 3%.
func stopLoss(price, atr, riskAdj float64, latest, prev model.PriceBar) float64 {
	stop := price - atr*stopATRMult*riskAdj

	if structural := latest.Low * structuralFloor; structural > stop {
		stop = structural
	}
	if prev.Close > 0 && latest.Open < prev.Close*(1-gapDownPct) &&
		latest.Open > stop && latest.Open < price {
		stop = latest.Open
	}
	return stop
}

// targets returns the two ATR-scaled take-profit levels.
func targets(price, atr, riskAdj float64) (t1, t2 float64) {
	return price + atr*target1ATRMult*riskAdj, price + atr*target2ATRMult*riskAdj
}

// entryZone spans from half an ATR below price up to price; the lower bound
// is lifted to the CDP near support when that level sits inside the zone.
func entryZone(price, atr float64, piv model.PivotLevels) (lo, hi float64) {
	lo, hi = price-atr*entryZoneATRFrac, price
	if piv.SupportNear > lo && piv.SupportNear < hi {
		lo = piv.SupportNear
	}
	return lo, hi
}

// riskAdjustment is the step function gating level width on the macro score.
func riskAdjustment(macroScore int) float64 {
	if macroScore < 50 {
		return 0.8
	}
	return 1.0
}
