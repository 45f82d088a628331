package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/die-net/lrucache"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/mas6446/ai-adjutant-system/internal/model"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using the Yahoo Finance public chart API.
type YahooFetcher struct {
	BaseURL string
	Client  *http.Client

	// names caches LookupName results for 24 hours; quote pages rename
	// rarely and the lookup is on the per-request hot path.
	names *lrucache.LruCache
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		BaseURL: defaultYahooBaseURL,
		Client: &http.Client{
			Timeout:   20 * time.Second,
			Transport: transport,
		},
		names: lrucache.New(1<<20, int64((24 * time.Hour).Seconds())),
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// symbolCandidates applies the listing-market normalization policy: a bare
// numeric code is tried with the main-board suffix first, then the OTC suffix.
func symbolCandidates(symbol string) []string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil
	}
	if isNumericCode(symbol) {
		return []string{symbol + ".TW", symbol + ".TWO"}
	}
	return []string{symbol}
}

func isNumericCode(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				ShortName          string  `json:"shortName"`
				LongName           string  `json:"longName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []interface{} `json:"open"`
					High  []interface{} `json:"high"`
					Low   []interface{} `json:"low"`
					Close []interface{} `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol, interval, rng string) (*yahooChart, []model.PriceBar, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		f.BaseURL, url.PathEscape(symbol), interval, rng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		if chart.Chart.Error.Code == "Not Found" {
			return nil, nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
		}
		return nil, nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return &chart, nil, nil
	}
	quote := result.Indicators.Quote[0]
	bars := make([]model.PriceBar, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) {
			break
		}
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, model.PriceBar{
			Date:  time.Unix(ts, 0).UTC(),
			Open:  o,
			High:  h,
			Low:   l,
			Close: c,
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return &chart, bars, nil
}

// resolve walks the candidate symbols and returns the first chart that answers.
func (f *YahooFetcher) resolve(ctx context.Context, symbol, interval, rng string) (*yahooChart, []model.PriceBar, error) {
	candidates := symbolCandidates(symbol)
	if len(candidates) == 0 {
		return nil, nil, fmt.Errorf("%w: empty symbol", ErrSymbolNotFound)
	}
	var lastErr error
	for _, cand := range candidates {
		chart, bars, err := f.fetchChart(ctx, cand, interval, rng)
		if err == nil {
			return chart, bars, nil
		}
		lastErr = err
		log.Debug().Str("candidate", cand).Err(err).Msg("symbol candidate failed")
	}
	return nil, nil, lastErr
}

func rangeForDays(days int) string {
	switch {
	case days <= 5:
		return "5d"
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	case days <= 365:
		return "1y"
	default:
		return "2y"
	}
}

func (f *YahooFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.PriceBar, error) {
	_, bars, err := f.resolve(ctx, symbol, "1d", rangeForDays(days))
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

func (f *YahooFetcher) FetchQuote(ctx context.Context, symbol string) (float64, error) {
	chart, bars, err := f.resolve(ctx, symbol, "1d", "5d")
	if err != nil {
		return 0, err
	}
	if p := chart.Chart.Result[0].Meta.RegularMarketPrice; p > 0 {
		return p, nil
	}
	if len(bars) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}
	return bars[len(bars)-1].Close, nil
}

func (f *YahooFetcher) LookupName(ctx context.Context, symbol string) (string, error) {
	key := strings.ToUpper(strings.TrimSpace(symbol))
	if cached, ok := f.names.Get(key); ok {
		return string(cached), nil
	}

	chart, _, err := f.resolve(ctx, symbol, "1d", "1d")
	if err != nil {
		return "", err
	}
	meta := chart.Chart.Result[0].Meta
	name := meta.ShortName
	if name == "" {
		name = meta.LongName
	}
	if name == "" {
		name = meta.Symbol
	}
	f.names.Set(key, []byte(name))
	return name, nil
}
