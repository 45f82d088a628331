package collector

import (
	"context"
	"errors"

	"github.com/mas6446/ai-adjutant-system/internal/model"
)

// ErrSymbolNotFound is returned when a symbol resolves on no listing market.
var ErrSymbolNotFound = errors.New("symbol not found")

// ErrNoData is returned when a provider answers with an empty series.
var ErrNoData = errors.New("no price data")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchDailyBars returns up to `days` chronological daily bars.
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.PriceBar, error)
	// FetchQuote returns the latest traded price.
	FetchQuote(ctx context.Context, symbol string) (float64, error)
	// LookupName returns the instrument's display name.
	LookupName(ctx context.Context, symbol string) (string, error)
	Name() string
}
