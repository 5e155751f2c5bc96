package dto

import "time"

type QuoteResponse struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Currency      string    `json:"currency"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	High52W       float64   `json:"high_52w,omitempty"`
	Low52W        float64   `json:"low_52w,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

type TrendResponse struct {
	Index         string    `json:"index"`
	Value         float64   `json:"value"`
	ChangePercent float64   `json:"change_percent"`
	Timestamp     time.Time `json:"timestamp"`
}
