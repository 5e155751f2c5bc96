package market

import (
	"context"
	"errors"
)

// ErrQuoteNotFound is returned when the backend has no data for a symbol.
var ErrQuoteNotFound = errors.New("no quote data for symbol")

// Provider defines the contract for any market data backend.
type Provider interface {
	// GetQuote returns the current snapshot for a symbol, or
	// ErrQuoteNotFound when the backend knows nothing about it.
	GetQuote(ctx context.Context, symbol string) (*Quote, error)

	// GetPortfolioPerformance values a holdings map (symbol -> quantity),
	// skipping symbols without quotes.
	GetPortfolioPerformance(ctx context.Context, holdings map[string]float64) (*PortfolioPerformance, error)

	// GetMarketTrends returns snapshots of the major indices; indices
	// that cannot be fetched are skipped, so the list may be empty.
	GetMarketTrends(ctx context.Context) ([]Trend, error)
}
