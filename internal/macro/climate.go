package macro

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const defaultClimateURL = "https://www.ndc.gov.tw/nc_7_400"

// climateLabel is the stable cell label identifying the composite score field
// on the business-climate page.
const climateLabel = "景氣對策信號綜合分數"

// positiveClimateSignals are the signal lights read as a positive verdict:
// green, yellow-red, and red. Blue and yellow-blue classify as negative.
var positiveClimateSignals = []string{"綠", "黃紅", "紅"}

// ClimateScraper reads the National Development Council business-climate
// monitor page and classifies the current signal light.
type ClimateScraper struct {
	URL    string
	Client *http.Client
}

// NewClimateScraper creates a scraper with optional proxy support.
func NewClimateScraper(proxyURL string) *ClimateScraper {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &ClimateScraper{
		URL: defaultClimateURL,
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

// FetchSignal returns the signal text next to the labeled cell and whether it
// classifies as positive.
func (s *ClimateScraper) FetchSignal(ctx context.Context) (text string, positive bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return "", false, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("climate fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("climate: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", false, fmt.Errorf("climate parse: %w", err)
	}
	return classifyClimate(doc)
}

// classifyClimate locates the labeled cell and classifies the adjacent value.
func classifyClimate(doc *goquery.Document) (text string, positive bool, err error) {
	cell := doc.Find(fmt.Sprintf("td[data-title='%s']", climateLabel)).First()
	if cell.Length() == 0 {
		return "", false, fmt.Errorf("climate: label %q not found", climateLabel)
	}
	text = strings.TrimSpace(cell.Next().Text())
	if text == "" {
		return "", false, fmt.Errorf("climate: empty signal cell")
	}
	for _, s := range positiveClimateSignals {
		if strings.Contains(text, s) {
			return text, true, nil
		}
	}
	return text, false, nil
}
