package market

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"ai-finance-assistant-be/internal/pkg/logger"
)

func quoteServer(t *testing.T, hits *int64, prices map[string]float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		symbol := r.URL.Query().Get("symbols")
		price, ok := prices[symbol]
		if !ok {
			fmt.Fprint(w, `{"quoteResponse":{"result":[]}}`)
			return
		}
		fmt.Fprintf(w, `{"quoteResponse":{"result":[{"symbol":%q,"regularMarketPrice":%f,"currency":"USD","regularMarketChange":1.5,"regularMarketChangePercent":0.8}]}}`, symbol, price)
	}))
}

func TestGetQuote(t *testing.T) {
	var hits int64
	srv := quoteServer(t, &hits, map[string]float64{"AAPL": 190.5})
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, time.Hour, logger.NewNopLogger())

	quote, err := p.GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("GetQuote: %v", err)
	}
	if quote.Price != 190.5 || quote.Symbol != "AAPL" || quote.Currency != "USD" {
		t.Errorf("unexpected quote: %+v", quote)
	}
}

func TestGetQuoteUsesCache(t *testing.T) {
	var hits int64
	srv := quoteServer(t, &hits, map[string]float64{"MSFT": 410})
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, time.Hour, logger.NewNopLogger())

	for i := 0; i < 3; i++ {
		if _, err := p.GetQuote(context.Background(), "MSFT"); err != nil {
			t.Fatal(err)
		}
	}
	if got := atomic.LoadInt64(&hits); got != 1 {
		t.Errorf("backend hit %d times, want 1 (cached)", got)
	}
}

func TestGetQuoteNotFound(t *testing.T) {
	var hits int64
	srv := quoteServer(t, &hits, nil)
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, time.Hour, logger.NewNopLogger())

	_, err := p.GetQuote(context.Background(), "NOPE")
	if err != ErrQuoteNotFound {
		t.Errorf("err = %v, want ErrQuoteNotFound", err)
	}
}

func TestGetPortfolioPerformance(t *testing.T) {
	var hits int64
	srv := quoteServer(t, &hits, map[string]float64{"AAPL": 100, "MSFT": 200})
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, time.Hour, logger.NewNopLogger())

	perf, err := p.GetPortfolioPerformance(context.Background(), map[string]float64{
		"AAPL": 10,
		"MSFT": 5,
		"GONE": 2, // no quote, skipped
	})
	if err != nil {
		t.Fatalf("GetPortfolioPerformance: %v", err)
	}

	if perf.TotalValue != 100*10+200*5 {
		t.Errorf("TotalValue = %v, want 2000", perf.TotalValue)
	}
	if len(perf.Holdings) != 2 {
		t.Errorf("got %d holdings, want 2 (missing quote skipped)", len(perf.Holdings))
	}
}

func TestGetMarketTrends(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		symbol := r.URL.Query().Get("symbols")
		if strings.HasPrefix(symbol, "^") {
			fmt.Fprintf(w, `{"quoteResponse":{"result":[{"symbol":%q,"regularMarketPrice":5000,"currency":"USD","regularMarketChangePercent":1.2}]}}`, symbol)
			return
		}
		fmt.Fprint(w, `{"quoteResponse":{"result":[]}}`)
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, time.Hour, logger.NewNopLogger())

	trends, err := p.GetMarketTrends(context.Background())
	if err != nil {
		t.Fatalf("GetMarketTrends: %v", err)
	}
	if len(trends) != 3 {
		t.Fatalf("got %d trends, want 3", len(trends))
	}
	names := map[string]bool{}
	for _, tr := range trends {
		names[tr.Index] = true
	}
	for _, want := range []string{"S&P 500", "NASDAQ", "Dow Jones"} {
		if !names[want] {
			t.Errorf("missing index %q", want)
		}
	}
}
