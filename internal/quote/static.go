package quote

import (
	"context"
	"strings"
	"time"

	"github.com/pavansydney/moneysavyy/internal/model"
)

// staticEntry is one row of the last-resort mock table.
type staticEntry struct {
	Name          string
	Price         float64
	Open          float64
	High          float64
	Low           float64
	Volume        int64
	Change        float64
	ChangePercent float64
}

// staticTable mirrors the fixed demo table served when every live and
// synthetic tier is unavailable.
var staticTable = map[string]staticEntry{
	"TCS.NS":       {"Tata Consultancy Services", 3500.00, 3480.00, 3520.00, 3475.00, 1234567, 20.00, 0.57},
	"RELIANCE.NS":  {"Reliance Industries", 2400.00, 2390.00, 2415.00, 2385.00, 2345678, 10.00, 0.42},
	"INFY.NS":      {"Infosys Limited", 1600.00, 1595.00, 1605.00, 1590.00, 1876543, 5.00, 0.31},
	"ICICIBANK.NS": {"ICICI Bank Limited", 950.00, 945.00, 955.00, 940.00, 3456789, 5.00, 0.53},
	"HDFCBANK.NS":  {"HDFC Bank Limited", 1650.00, 1645.00, 1660.00, 1640.00, 2987654, 5.00, 0.30},
	"SBIN.NS":      {"State Bank of India", 750.00, 748.00, 755.00, 745.00, 4567890, 2.00, 0.27},
}

// StaticSource is the final acquisition tier: a fixed mock table with a
// generic default row. It never fails, which makes the chain infallible.
type StaticSource struct{}

// NewStaticSource creates the static tier.
func NewStaticSource() *StaticSource { return &StaticSource{} }

func (s *StaticSource) Name() string { return model.SourceStatic }

// staticBars builds a deterministic gently-sloped series around the base
// price, long enough for every indicator and the regression fit.
func staticBars(basePrice float64, volume int64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: float64(volume),
		}
	}
	return bars
}

// Fetch returns the table row for the symbol, or the generic default row.
func (s *StaticSource) Fetch(_ context.Context, symbol string) (*model.MarketData, error) {
	key := strings.ToUpper(symbol)
	if !strings.HasSuffix(key, ".NS") {
		key += ".NS"
	}

	entry, ok := staticTable[key]
	if !ok {
		entry = staticEntry{
			Name:          strings.TrimSuffix(key, ".NS"),
			Price:         1000.00,
			Open:          995.00,
			High:          1010.00,
			Low:           990.00,
			Volume:        1000000,
			Change:        5.00,
			ChangePercent: 0.50,
		}
	}

	bars := staticBars(entry.Price, entry.Volume, 90)
	quote := model.Quote{
		Symbol:        symbol,
		CompanyName:   entry.Name,
		Price:         entry.Price,
		Open:          entry.Open,
		High:          entry.High,
		Low:           entry.Low,
		PrevClose:     entry.Price - entry.Change,
		Change:        entry.Change,
		ChangePercent: entry.ChangePercent,
		Volume:        entry.Volume,
		Timestamp:     time.Now(),
	}

	return &model.MarketData{
		Quote:  quote,
		Series: model.HistoricalSeries{Symbol: symbol, Bars: bars},
		Fundamentals: model.Fundamentals{
			MarketCap:     int64(entry.Price * 1e9),
			PERatio:       25.5,
			DividendYield: 0.02,
			Week52High:    entry.Price * 1.2,
			Week52Low:     entry.Price * 0.8,
			Sector:        "Technology",
			Industry:      "Software Services",
		},
		Source: model.SourceStatic,
	}, nil
}
