package service

import (
	"context"

	"ai-finance-assistant-be/internal/dto"
	"ai-finance-assistant-be/pkg/market"
)

// IMarketService defines the market data service interface
type IMarketService interface {
	GetQuote(ctx context.Context, symbol string) (*dto.QuoteResponse, error)
	GetTrends(ctx context.Context) ([]*dto.TrendResponse, error)
}

type marketService struct {
	provider market.Provider
}

func NewMarketService(provider market.Provider) IMarketService {
	return &marketService{
		provider: provider,
	}
}

func (s *marketService) GetQuote(ctx context.Context, symbol string) (*dto.QuoteResponse, error) {
	quote, err := s.provider.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	return &dto.QuoteResponse{
		Symbol:        quote.Symbol,
		Price:         quote.Price,
		Currency:      quote.Currency,
		Change:        quote.Change,
		ChangePercent: quote.ChangePercent,
		High52W:       quote.High52W,
		Low52W:        quote.Low52W,
		Timestamp:     quote.Timestamp,
	}, nil
}

func (s *marketService) GetTrends(ctx context.Context) ([]*dto.TrendResponse, error) {
	trends, err := s.provider.GetMarketTrends(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.TrendResponse, 0, len(trends))
	for _, trend := range trends {
		out = append(out, &dto.TrendResponse{
			Index:         trend.Index,
			Value:         trend.Value,
			ChangePercent: trend.ChangePercent,
			Timestamp:     trend.Timestamp,
		})
	}
	return out, nil
}
