package collector

import (
	"context"

	"StockDashboard/internal/model"
)

// Fetcher retrieves a time-indexed table of observations from a market data
// provider. An empty table with a nil error means the provider knows of no
// data for the query. Implementations must honour ctx cancellation.
type Fetcher interface {
	Fetch(ctx context.Context, q model.Query) (model.Table, error)
	Name() string
}
