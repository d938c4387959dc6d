package quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/pavansydney/moneysavyy/internal/cache"
	"github.com/pavansydney/moneysavyy/internal/model"
)

// stubSource fails n times or serves a canned result.
type stubSource struct {
	name   string
	data   *model.MarketData
	err    error
	called int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(_ context.Context, symbol string) (*model.MarketData, error) {
	s.called++
	if s.err != nil {
		return nil, s.err
	}
	d := *s.data
	d.Quote.Symbol = symbol
	return &d, nil
}

func testData(source string, price float64) *model.MarketData {
	return &model.MarketData{
		Quote: model.Quote{
			Symbol: "TCS.NS",
			Price:  price,
		},
		Series: model.HistoricalSeries{
			Symbol: "TCS.NS",
			Bars: []model.OHLCV{
				{Time: time.Now().AddDate(0, 0, -2), Close: price * 0.99},
				{Time: time.Now().AddDate(0, 0, -1), Close: price},
			},
		},
		Source: source,
	}
}

func testChain(tiers ...tier) *Chain {
	c := NewChain(cache.NewMemoryStore(), time.Minute, nil, zap.NewNop().Sugar())
	for _, t := range tiers {
		c.AddTier(t.source, t.limited, t.cacheable)
	}
	return c
}

func TestChain_FirstTierServes(t *testing.T) {
	primary := &stubSource{name: "primary", data: testData("yahoo", 100)}
	fallback := &stubSource{name: "fallback", data: testData("synthetic", 50)}
	c := testChain(tier{source: primary, cacheable: true}, tier{source: fallback})

	data, err := c.Get(context.Background(), "TCS.NS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Source != "yahoo" {
		t.Errorf("expected yahoo source, got %s", data.Source)
	}
	if fallback.called != 0 {
		t.Error("fallback should not be consulted when primary serves")
	}
	if data.FetchedAt.IsZero() {
		t.Error("FetchedAt should be stamped")
	}
}

func TestChain_FallsThroughOnError(t *testing.T) {
	primary := &stubSource{name: "primary", err: errors.New("host down")}
	fallback := &stubSource{name: "fallback", data: testData("synthetic", 50)}
	c := testChain(tier{source: primary, cacheable: true}, tier{source: fallback})

	data, err := c.Get(context.Background(), "TCS.NS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Source != "synthetic" {
		t.Errorf("expected fallback source, got %s", data.Source)
	}
	if primary.called != 1 {
		t.Errorf("primary should be tried once, got %d", primary.called)
	}
}

func TestChain_RejectsInvalidQuote(t *testing.T) {
	bad := testData("yahoo", -5)
	primary := &stubSource{name: "primary", data: bad}
	fallback := &stubSource{name: "fallback", data: testData("synthetic", 50)}
	c := testChain(tier{source: primary}, tier{source: fallback})

	data, err := c.Get(context.Background(), "TCS.NS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Source != "synthetic" {
		t.Errorf("invalid quote should fall through, got source %s", data.Source)
	}
}

func TestChain_AllTiersFail(t *testing.T) {
	a := &stubSource{name: "a", err: errors.New("a down")}
	b := &stubSource{name: "b", err: errors.New("b down")}
	c := testChain(tier{source: a}, tier{source: b})

	if _, err := c.Get(context.Background(), "TCS.NS"); err == nil {
		t.Fatal("expected error when every tier fails")
	} else if !errors.Is(err, b.err) {
		t.Errorf("expected the last tier error wrapped, got %v", err)
	}
}

func TestChain_CacheHitSkipsSources(t *testing.T) {
	primary := &stubSource{name: "primary", data: testData("yahoo", 100)}
	c := testChain(tier{source: primary, cacheable: true})

	if _, err := c.Get(context.Background(), "TCS.NS"); err != nil {
		t.Fatalf("first get: %v", err)
	}
	data, err := c.Get(context.Background(), "TCS.NS")
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if primary.called != 1 {
		t.Errorf("second get should hit the cache, source called %d times", primary.called)
	}
	if data.Source != "yahoo" {
		t.Errorf("cache hit should keep the original source tag, got %s", data.Source)
	}
}

func TestChain_NonCacheableTierNotCached(t *testing.T) {
	primary := &stubSource{name: "primary", data: testData("synthetic", 100)}
	c := testChain(tier{source: primary, cacheable: false})

	for i := 0; i < 2; i++ {
		if _, err := c.Get(context.Background(), "TCS.NS"); err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
	}
	if primary.called != 2 {
		t.Errorf("non-cacheable tier should be consulted every time, called %d", primary.called)
	}
}

func TestChain_CorruptCacheEntryDiscarded(t *testing.T) {
	store := cache.NewMemoryStore()
	primary := &stubSource{name: "primary", data: testData("yahoo", 100)}
	c := NewChain(store, time.Minute, nil, zap.NewNop().Sugar())
	c.AddTier(primary, false, true)

	ctx := context.Background()
	if err := store.Set(ctx, cacheKey("TCS.NS"), []byte("{not json"), time.Minute); err != nil {
		t.Fatalf("seed corrupt entry: %v", err)
	}

	data, err := c.Get(ctx, "TCS.NS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Source != "yahoo" || primary.called != 1 {
		t.Errorf("corrupt cache should fall through to the source")
	}
}

func TestChain_Invalidate(t *testing.T) {
	primary := &stubSource{name: "primary", data: testData("yahoo", 100)}
	c := testChain(tier{source: primary, cacheable: true})
	ctx := context.Background()

	if _, err := c.Get(ctx, "TCS.NS"); err != nil {
		t.Fatalf("first get: %v", err)
	}
	c.Invalidate(ctx, "TCS.NS")
	if _, err := c.Get(ctx, "TCS.NS"); err != nil {
		t.Fatalf("get after invalidate: %v", err)
	}
	if primary.called != 2 {
		t.Errorf("invalidate should force a refetch, called %d", primary.called)
	}
}

func TestChain_LimitedTierWaits(t *testing.T) {
	limiter := NewRateLimiter(1, time.Hour)
	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("drain limiter: %v", err)
	}

	primary := &stubSource{name: "primary", data: testData("yahoo", 100)}
	c := NewChain(cache.NewMemoryStore(), time.Minute, limiter, zap.NewNop().Sugar())
	c.AddTier(primary, true, false)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if _, err := c.Get(ctx, "TCS.NS"); err == nil {
		t.Error("expected limiter to block the limited tier until context deadline")
	}
	if primary.called != 0 {
		t.Error("source must not be called while the limiter blocks")
	}
}

func TestStaticSource_KnownAndDefaultRows(t *testing.T) {
	s := NewStaticSource()
	ctx := context.Background()

	data, err := s.Fetch(ctx, "TCS.NS")
	if err != nil {
		t.Fatalf("static source must not fail: %v", err)
	}
	if data.Quote.Price != 3500.00 {
		t.Errorf("expected table price 3500.00, got %f", data.Quote.Price)
	}
	if data.Quote.CompanyName != "Tata Consultancy Services" {
		t.Errorf("unexpected company name %q", data.Quote.CompanyName)
	}
	if len(data.Series.Bars) != 90 {
		t.Errorf("expected 90 bars, got %d", len(data.Series.Bars))
	}
	if !data.IsDemo() {
		t.Error("static data must report demo mode")
	}

	// Unknown symbols get the generic row, with the .NS suffix implied
	generic, err := s.Fetch(ctx, "whatever")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if generic.Quote.Price != 1000.00 {
		t.Errorf("expected default price 1000.00, got %f", generic.Quote.Price)
	}
	if generic.Fundamentals.Week52High != 1200.00 {
		t.Errorf("expected 52w high at 120%% of price, got %f", generic.Fundamentals.Week52High)
	}
}
