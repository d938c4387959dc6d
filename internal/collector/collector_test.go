package collector

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/pavansydney/moneysavyy/internal/cache"
	"github.com/pavansydney/moneysavyy/internal/model"
	"github.com/pavansydney/moneysavyy/internal/quote"
)

func testCollector() *Collector {
	log := zap.NewNop().Sugar()
	chain := quote.NewChain(cache.NewMemoryStore(), time.Minute, nil, log)
	chain.AddTier(quote.NewStaticSource(), false, false)
	return New(chain, log)
}

func TestCollect_FullPipeline(t *testing.T) {
	col := testCollector()
	data, ind, pred, err := col.Collect(context.Background(), "TCS.NS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if data.Quote.Price != 3500.00 {
		t.Errorf("expected static table price, got %f", data.Quote.Price)
	}
	if ind.RSI < 0 || ind.RSI > 100 {
		t.Errorf("RSI %f out of range", ind.RSI)
	}
	if ind.SMA20 <= 0 || ind.SMA50 <= 0 {
		t.Errorf("SMAs should be computed from the 90-bar series: %f / %f", ind.SMA20, ind.SMA50)
	}
	if ind.High52w <= ind.Low52w {
		t.Errorf("invalid 52-week range %f/%f", ind.High52w, ind.Low52w)
	}
	if ind.Position52w < 0 || ind.Position52w > 1 {
		t.Errorf("52-week position %f out of range", ind.Position52w)
	}

	// 90 bars is enough for the regression fit
	if pred == nil {
		t.Fatal("expected a prediction for a 90-bar series")
	}
	if pred.Model == "" || len(pred.Points) != 30 {
		t.Errorf("incomplete prediction: %+v", pred)
	}
	if pred.CurrentPrice != data.Quote.Price {
		t.Errorf("prediction anchored at %f, want %f", pred.CurrentPrice, data.Quote.Price)
	}
}

func TestCollect_BackfillsFundamentalsRange(t *testing.T) {
	log := zap.NewNop().Sugar()
	chain := quote.NewChain(cache.NewMemoryStore(), time.Minute, nil, log)
	chain.AddTier(quote.NewSyntheticSource(11), false, false)
	col := New(chain, log)

	data, ind, _, err := col.Collect(context.Background(), "INFY.NS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Synthetic data carries no fundamentals; the computed range fills in
	if data.Fundamentals.Week52High != ind.High52w {
		t.Errorf("expected 52w high backfill, got %f want %f", data.Fundamentals.Week52High, ind.High52w)
	}
	if data.Fundamentals.Week52Low != ind.Low52w {
		t.Errorf("expected 52w low backfill, got %f want %f", data.Fundamentals.Week52Low, ind.Low52w)
	}
}

func TestCollect_ShortSeriesDegrades(t *testing.T) {
	log := zap.NewNop().Sugar()
	chain := quote.NewChain(cache.NewMemoryStore(), time.Minute, nil, log)
	chain.AddTier(&shortSource{}, false, false)
	col := New(chain, log)

	_, ind, pred, err := col.Collect(context.Background(), "ANY.NS")
	if err != nil {
		t.Fatalf("short series must not fail the analysis: %v", err)
	}
	if ind.RSI != 50 {
		t.Errorf("expected neutral RSI default, got %f", ind.RSI)
	}
	if ind.SMA20 != 100 || ind.SMA50 != 100 {
		t.Errorf("expected SMAs defaulted to price, got %f / %f", ind.SMA20, ind.SMA50)
	}
	if pred != nil {
		t.Error("expected nil prediction for a short series")
	}
}

// shortSource serves a valid quote with only three bars of history.
type shortSource struct{}

func (s *shortSource) Name() string { return "short" }

func (s *shortSource) Fetch(_ context.Context, symbol string) (*model.MarketData, error) {
	now := time.Now()
	return &model.MarketData{
		Quote: model.Quote{Symbol: symbol, Price: 100},
		Series: model.HistoricalSeries{
			Symbol: symbol,
			Bars: []model.OHLCV{
				{Time: now.AddDate(0, 0, -3), Open: 99, High: 101, Low: 98, Close: 99, Volume: 1000},
				{Time: now.AddDate(0, 0, -2), Open: 99, High: 101, Low: 98, Close: 101, Volume: 1000},
				{Time: now.AddDate(0, 0, -1), Open: 99, High: 101, Low: 98, Close: 100, Volume: 1000},
			},
		},
		Source: "short",
	}, nil
}
