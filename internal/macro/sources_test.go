package macro

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const climatePage = `<html><body><table>
<tr><td data-title="月份">114年6月</td><td>114年6月</td></tr>
<tr><td data-title="景氣對策信號綜合分數">景氣對策信號綜合分數</td><td> %s </td></tr>
</table></body></html>`

func climateDoc(t *testing.T, signal string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fmt.Sprintf(climatePage, signal)))
	require.NoError(t, err)
	return doc
}

func TestClassifyClimate(t *testing.T) {
	tests := []struct {
		signal   string
		positive bool
	}{
		{"綠燈 28分", true},
		{"黃紅燈 33分", true},
		{"紅燈 40分", true},
		{"黃藍燈 19分", false},
		{"藍燈 12分", false},
	}
	for _, tt := range tests {
		text, positive, err := classifyClimate(climateDoc(t, tt.signal))
		require.NoError(t, err, tt.signal)
		assert.Equal(t, tt.positive, positive, tt.signal)
		assert.Contains(t, text, strings.Fields(tt.signal)[0])
	}
}

func TestClassifyClimate_LabelMissing(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body><table><tr><td>x</td></tr></table></body></html>"))
	require.NoError(t, err)
	_, _, err = classifyClimate(doc)
	assert.Error(t, err)
}

func TestClimateScraper_FetchSignal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, climatePage, "綠燈 29分")
	}))
	defer srv.Close()

	s := NewClimateScraper("")
	s.URL = srv.URL
	text, positive, err := s.FetchSignal(context.Background())
	require.NoError(t, err)
	assert.True(t, positive)
	assert.Contains(t, text, "綠燈")
}

func TestParseForeignNet(t *testing.T) {
	fr := &flowResponse{
		Stat:   "OK",
		Fields: []string{"單位名稱", "買進金額", "賣出金額", "買賣差額"},
		Data: [][]string{
			{"自營商(自行買賣)", "1,000", "2,000", "-1,000"},
			{"投信", "3,000", "1,000", "2,000"},
			{"外資及陸資(不含外資自營商)", "100,000,000,000", "87,700,000,000", "12,300,000,000"},
		},
	}
	net, err := parseForeignNet(fr)
	require.NoError(t, err)
	assert.InDelta(t, 123.0, net, 1e-9)
}

func TestParseForeignNet_NetSell(t *testing.T) {
	fr := &flowResponse{
		Data: [][]string{{"外資及陸資(不含外資自營商)", "1,000", "6,500,000,000", "-6,499,999,000"}},
	}
	net, err := parseForeignNet(fr)
	require.NoError(t, err)
	assert.Less(t, net, 0.0)
}

func TestParseForeignNet_LabelMissing(t *testing.T) {
	_, err := parseForeignNet(&flowResponse{Data: [][]string{{"投信", "1", "2", "-1"}}})
	assert.Error(t, err)
}

func TestFlowClient_ForeignNet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"stat":"OK","fields":["單位名稱","買進金額","賣出金額","買賣差額"],
			"data":[["外資及陸資(不含外資自營商)","1","2","5,000,000,000"]]}`)
	}))
	defer srv.Close()

	c := NewFlowClient("")
	c.URL = srv.URL
	net, err := c.ForeignNet(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 50.0, net, 1e-9)
}

func TestFredLatestPair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DGS10", r.URL.Query().Get("series_id"))
		fmt.Fprint(w, `{"observations":[
			{"date":"2026-08-28","value":"."},
			{"date":"2026-08-27","value":"4.21"},
			{"date":"2026-08-26","value":"4.30"}]}`)
	}))
	defer srv.Close()

	c := NewFredClient("test-key", "")
	c.BaseURL = srv.URL
	latest, previous, err := c.LatestPair(context.Background(), SeriesUS10Y)
	require.NoError(t, err)
	assert.Equal(t, 4.21, latest)
	assert.Equal(t, 4.30, previous)
}

func TestFredLatestPair_TooFewObservations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"observations":[{"date":"2026-08-27","value":"4.21"}]}`)
	}))
	defer srv.Close()

	c := NewFredClient("test-key", "")
	c.BaseURL = srv.URL
	_, _, err := c.LatestPair(context.Background(), SeriesCPI)
	assert.Error(t, err)
}
