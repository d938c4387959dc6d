package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pavansydney/moneysavyy/internal/cache"
	"github.com/pavansydney/moneysavyy/internal/model"
)

// tier is one rung of the fallback ladder.
type tier struct {
	source    Source
	limited   bool // outbound calls pass the rate limiter
	cacheable bool // successful results are written back to the cache
}

// Chain resolves market data through the tiered fallback:
// cache -> primary fetch -> secondary fetch -> synthetic -> static.
type Chain struct {
	store   cache.Store
	ttl     time.Duration
	limiter *RateLimiter
	tiers   []tier
	log     *zap.SugaredLogger
}

// NewChain creates an empty chain. Tiers are consulted in the order added.
func NewChain(store cache.Store, ttl time.Duration, limiter *RateLimiter, log *zap.SugaredLogger) *Chain {
	return &Chain{
		store:   store,
		ttl:     ttl,
		limiter: limiter,
		log:     log,
	}
}

// AddTier appends a source. limited routes its calls through the rate
// limiter; cacheable writes its results back to the cache.
func (c *Chain) AddTier(src Source, limited, cacheable bool) {
	c.tiers = append(c.tiers, tier{source: src, limited: limited, cacheable: cacheable})
}

func cacheKey(symbol string) string {
	return fmt.Sprintf("quote:%s", symbol)
}

// Get returns market data for the symbol from the first tier that can serve
// it. Cache hits keep the original source tag of the data that was cached.
func (c *Chain) Get(ctx context.Context, symbol string) (*model.MarketData, error) {
	key := cacheKey(symbol)

	if raw, err := c.store.Get(ctx, key); err == nil {
		var data model.MarketData
		if err := json.Unmarshal(raw, &data); err == nil {
			c.log.Debugf("cache hit for %s (source=%s)", symbol, data.Source)
			return &data, nil
		}
		// corrupt entry: drop it and fall through to the sources
		c.log.Warnf("discarding corrupt cache entry for %s", symbol)
		_ = c.store.Delete(ctx, key)
	} else if err != cache.ErrMiss {
		c.log.Warnf("cache lookup for %s failed: %v", symbol, err)
	}

	var lastErr error
	for _, t := range c.tiers {
		if t.limited && c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		data, err := t.source.Fetch(ctx, symbol)
		if err != nil {
			c.log.Warnf("source %s failed for %s: %v", t.source.Name(), symbol, err)
			lastErr = err
			continue
		}
		if err := data.Quote.Validate(); err != nil {
			c.log.Warnf("source %s returned invalid quote for %s: %v", t.source.Name(), symbol, err)
			lastErr = err
			continue
		}

		data.Series.Sort()
		data.FetchedAt = time.Now()
		c.log.Infof("resolved %s via %s", symbol, t.source.Name())

		if t.cacheable {
			if raw, err := json.Marshal(data); err == nil {
				if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
					c.log.Warnf("cache write for %s failed: %v", symbol, err)
				}
			}
		}
		return data, nil
	}

	return nil, fmt.Errorf("all data sources failed for %s: %w", symbol, lastErr)
}

// Invalidate drops the cached entry for a symbol.
func (c *Chain) Invalidate(ctx context.Context, symbol string) {
	if err := c.store.Delete(ctx, cacheKey(symbol)); err != nil {
		c.log.Warnf("cache invalidate for %s failed: %v", symbol, err)
	}
}
