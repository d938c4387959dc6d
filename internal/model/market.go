package model

import (
	"fmt"
	"sort"
	"time"
)

// Quote represents the latest traded state of a symbol.
type Quote struct {
	Symbol        string    `json:"symbol"`
	CompanyName   string    `json:"company_name"`
	Price         float64   `json:"price"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	PrevClose     float64   `json:"prev_close"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	Volume        int64     `json:"volume"`
	Timestamp     time.Time `json:"timestamp"`
}

// Validate checks basic quote sanity.
func (q *Quote) Validate() error {
	if q.Symbol == "" {
		return fmt.Errorf("quote: empty symbol")
	}
	if q.Price < 0 {
		return fmt.Errorf("quote %s: negative price %.2f", q.Symbol, q.Price)
	}
	return nil
}

// OHLCV represents a single daily candlestick bar.
type OHLCV struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// HistoricalSeries holds daily bars for a symbol in chronological order.
type HistoricalSeries struct {
	Symbol string  `json:"symbol"`
	Bars   []OHLCV `json:"bars"`
}

// Sort orders the bars chronologically.
func (s *HistoricalSeries) Sort() {
	sort.Slice(s.Bars, func(i, j int) bool { return s.Bars[i].Time.Before(s.Bars[j].Time) })
}

// Closes extracts the close prices in order.
func (s *HistoricalSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Fundamentals holds the slow-moving company facts shown alongside a quote.
type Fundamentals struct {
	MarketCap     int64   `json:"market_cap"`
	PERatio       float64 `json:"pe_ratio"`
	DividendYield float64 `json:"dividend_yield"`
	Week52High    float64 `json:"week_52_high"`
	Week52Low     float64 `json:"week_52_low"`
	Sector        string  `json:"sector"`
	Industry      string  `json:"industry"`
}

// Source tags carried by MarketData.
const (
	SourceYahoo     = "yahoo"
	SourceNSE       = "nse"
	SourceSynthetic = "synthetic"
	SourceStatic    = "static"
)

// MarketData is the unit the acquisition chain produces: a quote, its
// historical series, and whatever fundamentals the source knew.
type MarketData struct {
	Quote        Quote            `json:"quote"`
	Series       HistoricalSeries `json:"series"`
	Fundamentals Fundamentals     `json:"fundamentals"`
	Source       string           `json:"source"`
	FetchedAt    time.Time        `json:"fetched_at"`
}

// IsDemo reports whether the data came from a non-live tier.
func (m *MarketData) IsDemo() bool {
	return m.Source == SourceSynthetic || m.Source == SourceStatic
}
