package scheduler

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/pavansydney/moneysavyy/internal/cache"
	"github.com/pavansydney/moneysavyy/internal/quote"
	"github.com/pavansydney/moneysavyy/internal/recorder"
	"github.com/pavansydney/moneysavyy/internal/registry"
)

func newTestScheduler(t *testing.T) (*Scheduler, *cache.MemoryStore) {
	t.Helper()
	log := zap.NewNop().Sugar()
	mem := cache.NewMemoryStore()
	chain := quote.NewChain(mem, time.Minute, nil, log)
	chain.AddTier(quote.NewStaticSource(), false, true)
	s := NewScheduler(context.Background(), chain, registry.New(), mem, recorder.NewNoopRecorder(), 90, log)
	return s, mem
}

func TestRegisterAll_ValidSpecs(t *testing.T) {
	s, _ := newTestScheduler(t)
	if err := s.RegisterAll("0 */10 * * * *", "0 */5 * * * *", "0 0 3 * * *"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if got := len(s.Cron.Entries()); got != 3 {
		t.Errorf("expected 3 registered tasks, got %d", got)
	}
}

func TestRegisterAll_InvalidSpec(t *testing.T) {
	s, _ := newTestScheduler(t)
	if err := s.RegisterAll("not a cron spec", "0 */5 * * * *", "0 0 3 * * *"); err == nil {
		t.Error("expected error for invalid cron spec")
	}
}

func TestRegisterAll_SkipsCleanupWithoutMemoryStore(t *testing.T) {
	log := zap.NewNop().Sugar()
	chain := quote.NewChain(cache.NewMemoryStore(), time.Minute, nil, log)
	chain.AddTier(quote.NewStaticSource(), false, false)
	s := NewScheduler(context.Background(), chain, registry.New(), nil, recorder.NewNoopRecorder(), 90, log)

	if err := s.RegisterAll("0 */10 * * * *", "0 */5 * * * *", "0 0 3 * * *"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if got := len(s.Cron.Entries()); got != 2 {
		t.Errorf("expected 2 tasks without a memory store, got %d", got)
	}
}

func TestPrewarm_PopulatesCache(t *testing.T) {
	s, mem := newTestScheduler(t)
	s.prewarmTask()

	hits := 0
	for _, e := range s.Registry.Popular() {
		if _, err := mem.Get(context.Background(), "quote:"+e.Symbol); err == nil {
			hits++
		}
	}
	if hits != len(s.Registry.Popular()) {
		t.Errorf("expected every popular symbol cached, got %d", hits)
	}
}

func TestCleanupTask_RemovesExpired(t *testing.T) {
	s, mem := newTestScheduler(t)
	ctx := context.Background()

	mem.Set(ctx, "dead", []byte("v"), 5*time.Millisecond)
	mem.Set(ctx, "live", []byte("v"), time.Minute)
	time.Sleep(10 * time.Millisecond)

	s.cleanupTask()
	if _, err := mem.Get(ctx, "live"); err != nil {
		t.Errorf("live entry should survive cleanup: %v", err)
	}
}
