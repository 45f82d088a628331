package macro

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const defaultFlowURL = "https://www.twse.com.tw/rwd/zh/fund/BFI82U?response=json"

// flowLabel identifies the foreign-investor line item in the TWSE
// institutional trading summary.
const flowLabel = "外資"

// FlowClient reads the exchange's daily institutional buy/sell summary and
// extracts the foreign-investor net amount.
type FlowClient struct {
	URL    string
	Client *http.Client
}

// NewFlowClient creates a flow client with optional proxy support.
func NewFlowClient(proxyURL string) *FlowClient {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &FlowClient{
		URL: defaultFlowURL,
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

type flowResponse struct {
	Stat   string     `json:"stat"`
	Fields []string   `json:"fields"`
	Data   [][]string `json:"data"`
}

// ForeignNet returns the foreign-investor net buy/sell amount in 億 TWD
// (positive means net buying).
func (c *FlowClient) ForeignNet(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("twse flow fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("twse flow read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("twse flow: status %d", resp.StatusCode)
	}

	var fr flowResponse
	if err := json.Unmarshal(body, &fr); err != nil {
		return 0, fmt.Errorf("twse flow decode: %w", err)
	}
	return parseForeignNet(&fr)
}

// parseForeignNet locates the foreign-investor row and reads the net amount
// from its last column, normalized from TWD to 億 TWD.
func parseForeignNet(fr *flowResponse) (float64, error) {
	if fr.Stat != "" && fr.Stat != "OK" {
		return 0, fmt.Errorf("twse flow: stat %q", fr.Stat)
	}
	for _, row := range fr.Data {
		if len(row) < 2 || !strings.Contains(row[0], flowLabel) {
			continue
		}
		raw := strings.ReplaceAll(strings.TrimSpace(row[len(row)-1]), ",", "")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, fmt.Errorf("twse flow: parse %q: %w", raw, err)
		}
		return v / 1e8, nil
	}
	return 0, fmt.Errorf("twse flow: label %q not found", flowLabel)
}
