// Package sizing derives a recommended order quantity from capital, risk
// tolerance, and the entry/stop prices produced by the strategy engine.
package sizing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LotPolicy models the market convention where instruments priced below a
// threshold trade only in whole round lots, while higher-priced instruments
// may be bought as odd lots.
type LotPolicy struct {
	RoundLotSize      int64   // shares per lot, 1000 on the Taiwan market
	OddLotPriceFloor  float64 // entry prices at or above this allow odd-lot quantities
}

// DefaultLotPolicy reflects TWSE round-lot conventions.
func DefaultLotPolicy() LotPolicy {
	return LotPolicy{RoundLotSize: 1000, OddLotPriceFloor: 600}
}

// Params are the sizing inputs. All prices are in the instrument's currency.
type Params struct {
	Capital float64 // total capital, > 0
	RiskPct float64 // percent of capital risked per trade, 0-100
	Entry   float64
	Stop    float64
}

// Plan is the sizing output. A zero plan is the defined degenerate result
// when the stop sits at or above the entry.
type Plan struct {
	Quantity      int64   `json:"quantity"`
	LotDesc       string  `json:"lot_desc"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// Calculate sizes a long position: quantity is the floor of the smaller of
// risk-budget sizing and full-cash sizing, rounded down to whole lots when the
// lot policy requires it.
func Calculate(p Params, policy LotPolicy) Plan {
	if p.Entry <= p.Stop || p.Entry <= 0 {
		return Plan{LotDesc: "無法定義 (停損高於或等於進場價)"}
	}

	capital := decimal.NewFromFloat(p.Capital)
	entry := decimal.NewFromFloat(p.Entry)
	perUnitRisk := entry.Sub(decimal.NewFromFloat(p.Stop))
	riskAmount := capital.Mul(decimal.NewFromFloat(p.RiskPct)).Div(decimal.NewFromInt(100))

	qtyByRisk := riskAmount.Div(perUnitRisk)
	qtyByCash := capital.Div(entry)
	qty := decimal.Min(qtyByRisk, qtyByCash).Floor().IntPart()
	if qty <= 0 {
		return Plan{LotDesc: "資金不足一股"}
	}

	var desc string
	if policy.RoundLotSize > 0 && p.Entry < policy.OddLotPriceFloor {
		lots := qty / policy.RoundLotSize
		qty = lots * policy.RoundLotSize
		if lots == 0 {
			return Plan{LotDesc: "資金不足一張整股"}
		}
		desc = fmt.Sprintf("%d 張 (整股 %d 股)", lots, qty)
	} else {
		desc = fmt.Sprintf("%d 股 (零股)", qty)
	}

	cost, _ := decimal.NewFromInt(qty).Mul(entry).Float64()
	return Plan{Quantity: qty, LotDesc: desc, EstimatedCost: cost}
}
