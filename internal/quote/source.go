package quote

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pavansydney/moneysavyy/internal/model"
)

// Source produces market data for a symbol. Implementations are one tier of
// the acquisition chain.
type Source interface {
	Fetch(ctx context.Context, symbol string) (*model.MarketData, error)
	Name() string
}

// retryDo runs fn with exponential backoff until it succeeds, the attempts are
// exhausted, or the context is cancelled.
func retryDo(ctx context.Context, log *zap.SugaredLogger, maxRetries int, fn func() error) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := fn(); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Warnf("fetch attempt %d/%d failed: %v, retrying in %v", i+1, maxRetries+1, err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d attempts exhausted: %w", maxRetries+1, lastErr)
}
