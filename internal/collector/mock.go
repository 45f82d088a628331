package collector

import (
	"context"
	"time"

	"github.com/mas6446/ai-adjutant-system/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	DailyData []model.PriceBar
	Names     map[string]string
	Err       error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, _ string, days int) ([]model.PriceBar, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	return GenerateMockBars(m.Price, days), nil
}

func (m *MockFetcher) FetchQuote(_ context.Context, _ string) (float64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	if len(m.DailyData) > 0 {
		return m.DailyData[len(m.DailyData)-1].Close, nil
	}
	return m.Price, nil
}

func (m *MockFetcher) LookupName(_ context.Context, symbol string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if name, ok := m.Names[symbol]; ok {
		return name, nil
	}
	return symbol, nil
}

// GenerateMockBars builds a gently drifting daily series around basePrice.
func GenerateMockBars(basePrice float64, count int) []model.PriceBar {
	bars := make([]model.PriceBar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.PriceBar{
			Date:  time.Now().UTC().AddDate(0, 0, -(count - i)),
			Open:  p * 0.999,
			High:  p * 1.005,
			Low:   p * 0.995,
			Close: p,
		}
	}
	return bars
}
