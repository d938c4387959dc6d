package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/pavansydney/moneysavyy/internal/cache"
	"github.com/pavansydney/moneysavyy/internal/quote"
	"github.com/pavansydney/moneysavyy/internal/recorder"
	"github.com/pavansydney/moneysavyy/internal/registry"
)

// Scheduler manages all cron tasks: popular-symbol prewarm, memory-cache
// cleanup, and snapshot retention trimming.
type Scheduler struct {
	Cron     *cron.Cron
	Chain    *quote.Chain
	Registry *registry.Registry
	Memory   *cache.MemoryStore
	Recorder recorder.Recorder
	Ctx      context.Context

	retention time.Duration
	log       *zap.SugaredLogger
}

// NewScheduler creates a new Scheduler. Memory may be nil when a Redis store
// backs the chain; the cleanup job is then skipped.
func NewScheduler(ctx context.Context, chain *quote.Chain, reg *registry.Registry, mem *cache.MemoryStore, rec recorder.Recorder, retentionDays int, log *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Chain:     chain,
		Registry:  reg,
		Memory:    mem,
		Recorder:  rec,
		Ctx:       ctx,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		log:       log,
	}
}

// RegisterAll registers the prewarm, cleanup, and trim tasks.
func (s *Scheduler) RegisterAll(prewarmCron, cleanupCron, trimCron string) error {
	if _, err := s.Cron.AddFunc(prewarmCron, s.prewarmTask); err != nil {
		return fmt.Errorf("register prewarm task: %w", err)
	}
	if s.Memory != nil {
		if _, err := s.Cron.AddFunc(cleanupCron, s.cleanupTask); err != nil {
			return fmt.Errorf("register cleanup task: %w", err)
		}
	}
	if _, err := s.Cron.AddFunc(trimCron, s.trimTask); err != nil {
		return fmt.Errorf("register trim task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.log.Info("scheduler stopped")
}

// prewarmTask refreshes the cache for the popular symbols so the first
// request after a TTL expiry does not pay the upstream latency.
func (s *Scheduler) prewarmTask() {
	s.log.Info("running cache prewarm")
	for _, entry := range s.Registry.Popular() {
		ctx, cancel := context.WithTimeout(s.Ctx, 30*time.Second)
		if _, err := s.Chain.Get(ctx, entry.Symbol); err != nil {
			s.log.Warnw("prewarm fetch failed", "symbol", entry.Symbol, "error", err)
		}
		cancel()
	}
}

// cleanupTask sweeps expired entries out of the in-memory cache.
func (s *Scheduler) cleanupTask() {
	if n := s.Memory.Cleanup(); n > 0 {
		s.log.Infow("memory cache cleanup", "removed", n)
	}
}

// trimTask deletes analysis snapshots older than the retention window.
func (s *Scheduler) trimTask() {
	cutoff := time.Now().Add(-s.retention)
	n, err := s.Recorder.TrimBefore(cutoff)
	if err != nil {
		s.log.Errorw("trim snapshots", "error", err)
		return
	}
	s.log.Infow("trimmed old snapshots", "removed", n, "cutoff", cutoff)
}
