package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"ai-finance-assistant-be/internal/pkg/logger"
	"ai-finance-assistant-be/pkg/cache"
)

// Major indices reported by GetMarketTrends.
var trendIndices = map[string]string{
	"^GSPC": "S&P 500",
	"^IXIC": "NASDAQ",
	"^DJI":  "Dow Jones",
}

// HTTPProvider fetches quotes from a Yahoo-style quote endpoint and
// caches each snapshot for the configured TTL, so repeated lookups for
// the same symbol inside the TTL window never hit the network.
type HTTPProvider struct {
	BaseURL string
	Client  *http.Client
	cache   *cache.Cache
	logger  logger.ILogger
}

var _ Provider = &HTTPProvider{}

func NewHTTPProvider(baseURL string, cacheTTL time.Duration, log logger.ILogger) *HTTPProvider {
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com"
	}
	return &HTTPProvider{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 15 * time.Second,
		},
		cache:  cache.New(cacheTTL),
		logger: log,
	}
}

// --- Wire structs ---

type quoteResponse struct {
	QuoteResponse struct {
		Result []quoteResult `json:"result"`
	} `json:"quoteResponse"`
}

type quoteResult struct {
	Symbol                 string  `json:"symbol"`
	RegularMarketPrice     float64 `json:"regularMarketPrice"`
	Currency               string  `json:"currency"`
	RegularMarketChange    float64 `json:"regularMarketChange"`
	RegularMarketChangePct float64 `json:"regularMarketChangePercent"`
	FiftyTwoWeekHigh       float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow        float64 `json:"fiftyTwoWeekLow"`
}

func (p *HTTPProvider) GetQuote(ctx context.Context, symbol string) (*Quote, error) {
	cacheKey := "quote_" + symbol
	if cached, ok := p.cache.Get(cacheKey); ok {
		return cached.(*Quote), nil
	}

	endpoint := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", p.BaseURL, url.QueryEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote backend error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed quoteResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(parsed.QuoteResponse.Result) == 0 {
		p.logger.Warn("market", "No data found for symbol", map[string]interface{}{
			"symbol": symbol,
		})
		return nil, ErrQuoteNotFound
	}

	raw := parsed.QuoteResponse.Result[0]
	currency := raw.Currency
	if currency == "" {
		currency = "USD"
	}

	quote := &Quote{
		Symbol:        symbol,
		Price:         raw.RegularMarketPrice,
		Currency:      currency,
		Timestamp:     time.Now(),
		Change:        raw.RegularMarketChange,
		ChangePercent: raw.RegularMarketChangePct,
		High52W:       raw.FiftyTwoWeekHigh,
		Low52W:        raw.FiftyTwoWeekLow,
	}

	p.cache.Set(cacheKey, quote)
	return quote, nil
}

func (p *HTTPProvider) GetPortfolioPerformance(ctx context.Context, holdings map[string]float64) (*PortfolioPerformance, error) {
	perf := &PortfolioPerformance{
		Holdings:  []HoldingPerformance{},
		Timestamp: time.Now(),
	}

	// Stable iteration keeps responses deterministic.
	symbols := make([]string, 0, len(holdings))
	for symbol := range holdings {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	for _, symbol := range symbols {
		quote, err := p.GetQuote(ctx, symbol)
		if err != nil {
			p.logger.Warn("market", "Skipping holding without quote", map[string]interface{}{
				"symbol": symbol,
				"error":  err.Error(),
			})
			continue
		}

		quantity := holdings[symbol]
		value := quote.Price * quantity
		perf.TotalValue += value
		perf.Holdings = append(perf.Holdings, HoldingPerformance{
			Symbol:        symbol,
			Quantity:      quantity,
			Price:         quote.Price,
			Value:         value,
			ChangePercent: quote.ChangePercent,
		})
	}

	return perf, nil
}

func (p *HTTPProvider) GetMarketTrends(ctx context.Context) ([]Trend, error) {
	symbols := make([]string, 0, len(trendIndices))
	for symbol := range trendIndices {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	trends := []Trend{}
	for _, symbol := range symbols {
		quote, err := p.GetQuote(ctx, symbol)
		if err != nil {
			p.logger.Warn("market", "Could not fetch index", map[string]interface{}{
				"index": trendIndices[symbol],
				"error": err.Error(),
			})
			continue
		}
		trends = append(trends, Trend{
			Index:         trendIndices[symbol],
			Value:         quote.Price,
			ChangePercent: quote.ChangePercent,
			Timestamp:     time.Now(),
		})
	}

	return trends, nil
}
