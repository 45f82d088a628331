// Package macro fetches macroeconomic indicators from public data sources and
// aggregates them into the composite 0-100 strategy score that gates all
// tactical signals.
package macro

// SetVersion selects which indicator roster an evaluation cycle uses.
type SetVersion string

const (
	SetV12 SetVersion = "v12" // legacy roster without the qualitative block
	SetV16 SetVersion = "v16" // current roster
)

// Definition describes one indicator: its stable key, display label, data
// source, and the fail-open verdict assumed when the source is unavailable
// and no per-indicator default is configured.
type Definition struct {
	Name    string
	Label   string
	Source  string
	Default bool
}

var definitionsV16 = []Definition{
	{Name: "twd_strong", Label: "匯率 (台幣走強)", Source: "yahoo", Default: true},
	{Name: "sox_up", Label: "費半走揚", Source: "yahoo", Default: true},
	{Name: "climate_pos", Label: "景氣對策信號", Source: "ndc", Default: true},
	{Name: "cpi_ok", Label: "CPI 受控", Source: "fred", Default: true},
	{Name: "rate_low", Label: "重貼現率未升", Source: "fred", Default: true},
	{Name: "foreign_net_buy", Label: "外資買賣超", Source: "twse", Default: true},
	{Name: "us10y_low", Label: "10Y美債殖利率", Source: "fred", Default: true},
	{Name: "dxy_low", Label: "美元指數 DXY", Source: "yahoo", Default: true},
	{Name: "vix_low", Label: "VIX 恐慌指數", Source: "fred", Default: true},
	{Name: "pmi_expansion", Label: "製造業 PMI", Source: "manual", Default: true},
	{Name: "export_orders_up", Label: "出口訂單年增", Source: "manual", Default: true},
	{Name: "margin_stable", Label: "融資餘額穩定", Source: "manual", Default: true},
	{Name: "leading_index_up", Label: "台股領先指標上揚", Source: "manual", Default: true},
	{Name: "spx_bullish", Label: "S&P 500 多頭排列", Source: "yahoo", Default: true},
	{Name: "geopolitics_stable", Label: "地緣政治穩定", Source: "manual", Default: true},
	{Name: "policy_support", Label: "產業政策利多", Source: "manual", Default: true},
}

// Definitions returns the indicator roster for a set version. The legacy v12
// roster is the v16 roster without the last four qualitative entries.
func Definitions(v SetVersion) []Definition {
	if v == SetV12 {
		return definitionsV16[:12]
	}
	return definitionsV16
}

// Thresholds used by the value-judged indicators. Values above/below these
// fixed references decide the boolean verdict.
const (
	thresholdUS10Y = 4.5
	thresholdDXY   = 105.0
	thresholdVIX   = 20.0
	thresholdPMI   = 50.0
)
