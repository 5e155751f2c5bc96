package market

import "time"

// Quote is a point-in-time snapshot for one symbol.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Currency      string    `json:"currency"`
	Timestamp     time.Time `json:"timestamp"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	High52W       float64   `json:"high_52w,omitempty"`
	Low52W        float64   `json:"low_52w,omitempty"`
}

// Trend is a snapshot of one major market index.
type Trend struct {
	Index         string    `json:"index"`
	Value         float64   `json:"value"`
	ChangePercent float64   `json:"change_percent"`
	Timestamp     time.Time `json:"timestamp"`
}

// HoldingPerformance is the valued position for one symbol.
type HoldingPerformance struct {
	Symbol        string  `json:"symbol"`
	Quantity      float64 `json:"quantity"`
	Price         float64 `json:"price"`
	Value         float64 `json:"value"`
	ChangePercent float64 `json:"change_percent"`
}

// PortfolioPerformance aggregates valued positions. Symbols whose quote
// is unavailable are simply absent from Holdings.
type PortfolioPerformance struct {
	TotalValue float64              `json:"total_value"`
	Holdings   []HoldingPerformance `json:"holdings"`
	Timestamp  time.Time            `json:"timestamp"`
}
