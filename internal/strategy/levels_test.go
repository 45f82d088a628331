package strategy

import (
	"testing"

	"github.com/mas6446/ai-adjutant-system/internal/model"
)

func TestStopLoss_VolatilityStop(t *testing.T) {
	latest := model.PriceBar{Open: 99, High: 101, Low: 90, Close: 100}
	prev := model.PriceBar{Close: 99.5}

	stop := stopLoss(100, 2.0, 1.0, latest, prev)
	// structural floor 0.995*90 = 89.55 sits below the 96.0 volatility stop
	if stop != 96.0 {
		t.Errorf("expected plain volatility stop 96.0, got %v", stop)
	}
}

func TestStopLoss_RiskAdjustmentTightens(t *testing.T) {
	latest := model.PriceBar{Open: 99, High: 101, Low: 90, Close: 100}
	prev := model.PriceBar{Close: 99.5}

	weak := stopLoss(100, 2.0, 0.8, latest, prev)
	if weak != 100-2.0*2.0*0.8 {
		t.Errorf("expected tightened stop %.2f, got %v", 100-2.0*2.0*0.8, weak)
	}
}

func TestStopLoss_StructuralFloor(t *testing.T) {
	// Latest low close under price: 99.5% of the low beats the wide ATR stop.
	latest := model.PriceBar{Open: 99, High: 101, Low: 98, Close: 100}
	prev := model.PriceBar{Close: 99.5}

	stop := stopLoss(100, 5.0, 1.0, latest, prev)
	want := 98 * 0.995
	if stop != want {
		t.Errorf("expected structural floor %v, got %v", want, stop)
	}
}

func TestStopLoss_GapDownUsesOpen(t *testing.T) {
	// Open 3.6%% under the prior close and above the computed stop.
	latest := model.PriceBar{Open: 96.4, High: 98, Low: 93, Close: 97}
	prev := model.PriceBar{Close: 100}

	stop := stopLoss(97, 2.0, 1.0, latest, prev)
	if stop != 96.4 {
		t.Errorf("expected gap-down stop at the open 96.4, got %v", stop)
	}
}

func TestStopLoss_SmallGapIgnored(t *testing.T) {
	latest := model.PriceBar{Open: 98.5, High: 99.5, Low: 90, Close: 99}
	prev := model.PriceBar{Close: 100}

	stop := stopLoss(99, 2.0, 1.0, latest, prev)
	if stop != 99-4.0 {
		t.Errorf("a 1.5%% gap should keep the volatility stop, got %v", stop)
	}
}

func TestTargets(t *testing.T) {
	t1, t2 := targets(100, 2.0, 1.0)
	if t1 != 103 || t2 != 107 {
		t.Errorf("expected 103/107, got %v/%v", t1, t2)
	}
	t1, t2 = targets(100, 2.0, 0.8)
	if t1 != 102.4 || t2 != 105.6 {
		t.Errorf("expected risk-adjusted 102.4/105.6, got %v/%v", t1, t2)
	}
}

func TestEntryZone(t *testing.T) {
	// No pivot inside the band: plain ATR fraction.
	lo, hi := entryZone(100, 4.0, model.PivotLevels{SupportNear: 90})
	if lo != 98 || hi != 100 {
		t.Errorf("expected 98-100, got %v-%v", lo, hi)
	}

	// Near support inside the band lifts the lower bound.
	lo, hi = entryZone(100, 4.0, model.PivotLevels{SupportNear: 99})
	if lo != 99 || hi != 100 {
		t.Errorf("expected support-lifted 99-100, got %v-%v", lo, hi)
	}
}

func TestRiskAdjustment_StepFunction(t *testing.T) {
	if riskAdjustment(49) != 0.8 {
		t.Error("score below 50 should tighten to 0.8")
	}
	if riskAdjustment(50) != 1.0 {
		t.Error("score 50 should keep 1.0")
	}
	if riskAdjustment(100) != 1.0 {
		t.Error("score 100 should keep 1.0")
	}
}
