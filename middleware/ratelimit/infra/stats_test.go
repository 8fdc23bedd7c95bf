package infra

import (
	"context"
	"errors"
	"testing"

	"greeting-service/middleware/ratelimit/domain"
)

func TestMemoryStatsStore_CountsTotalsAndRoutes(t *testing.T) {
	s := NewMemoryStatsStore()

	_ = s.Record(context.Background(), domain.StatsEvent{Key: "k", Allowed: true, Method: "GET", Path: "/"})
	_ = s.Record(context.Background(), domain.StatsEvent{Key: "k", Allowed: true, Method: "GET", Path: "/evening"})
	_ = s.Record(context.Background(), domain.StatsEvent{Key: "k", Allowed: false, Method: "GET", Path: "/evening"})

	total := s.Total()
	if total.Allowed != 2 || total.Denied != 1 {
		t.Fatalf("expected total {2 1}, got %+v", total)
	}

	routes := s.ByRoute()
	if c := routes["GET /evening"]; c.Allowed != 1 || c.Denied != 1 {
		t.Fatalf("expected GET /evening {1 1}, got %+v", c)
	}
}

func TestMemoryStatsStore_TracksKeysOnlyWhenEnabled(t *testing.T) {
	off := NewMemoryStatsStore()
	_ = off.Record(context.Background(), domain.StatsEvent{Key: "a", Allowed: true})
	if len(off.ByKey()) != 0 {
		t.Fatalf("expected no per-key counters when tracking is off")
	}

	on := NewMemoryStatsStore(WithTrackKeys(true))
	_ = on.Record(context.Background(), domain.StatsEvent{Key: "a", Allowed: true})
	_ = on.Record(context.Background(), domain.StatsEvent{Key: "a", Allowed: false})
	if c := on.ByKey()["a"]; c.Allowed != 1 || c.Denied != 1 {
		t.Fatalf("expected key a {1 1}, got %+v", c)
	}
}

type failingStats struct {
	calls int
}

func (f *failingStats) Record(context.Context, domain.StatsEvent) error {
	f.calls++
	return errors.New("boom")
}

func TestMultiStats_RecordsInAllStoresAndKeepsFirstError(t *testing.T) {
	mem := NewMemoryStatsStore()
	fail := &failingStats{}
	multi := MultiStats{fail, mem}

	err := multi.Record(context.Background(), domain.StatsEvent{Key: "k", Allowed: true})
	if err == nil {
		t.Fatalf("expected error from failing store")
	}
	if fail.calls != 1 {
		t.Fatalf("expected failing store to be called once, got %d", fail.calls)
	}
	if s := mem.Total(); s.Allowed != 1 {
		t.Fatalf("expected memory store to record despite earlier error, got %+v", s)
	}
}
