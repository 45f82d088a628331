package macro

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// FRED series identifiers for the economic time series the roster tracks.
const (
	SeriesCPI          = "TWNCPIALLMINMEI" // Taiwan CPI, all items
	SeriesDiscountRate = "INTDSRTWM193N"   // CBC discount rate
	SeriesVIX          = "VIXCLS"          // CBOE volatility index
	SeriesUS10Y        = "DGS10"           // 10-year treasury yield
)

const defaultFredBaseURL = "https://api.stlouisfed.org"

// FredClient queries the St. Louis Fed FRED API for named economic series.
type FredClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewFredClient creates a FRED client with optional proxy support.
func NewFredClient(apiKey, proxyURL string) *FredClient {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &FredClient{
		BaseURL: defaultFredBaseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

type fredObservations struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
	ErrorMessage string `json:"error_message"`
}

// LatestPair returns the two most recent observations of a series, newest
// first, for latest-vs-previous trend comparison. Missing observations
// (FRED reports them as ".") are skipped.
func (c *FredClient) LatestPair(ctx context.Context, seriesID string) (latest, previous float64, err error) {
	u := fmt.Sprintf("%s/fred/series/observations?series_id=%s&api_key=%s&file_type=json&sort_order=desc&limit=10",
		c.BaseURL, url.QueryEscape(seriesID), url.QueryEscape(c.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, 0, err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("fred fetch %s: %w", seriesID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, 0, fmt.Errorf("fred read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("fred %s: status %d", seriesID, resp.StatusCode)
	}

	var obs fredObservations
	if err := json.Unmarshal(body, &obs); err != nil {
		return 0, 0, fmt.Errorf("fred decode: %w", err)
	}
	if obs.ErrorMessage != "" {
		return 0, 0, fmt.Errorf("fred %s: %s", seriesID, obs.ErrorMessage)
	}

	values := make([]float64, 0, 2)
	for _, o := range obs.Observations {
		if o.Value == "." || o.Value == "" {
			continue
		}
		v, err := strconv.ParseFloat(o.Value, 64)
		if err != nil {
			continue
		}
		values = append(values, v)
		if len(values) == 2 {
			break
		}
	}
	if len(values) < 2 {
		return 0, 0, fmt.Errorf("fred %s: fewer than two observations", seriesID)
	}
	return values[0], values[1], nil
}
