package caching

import (
	"context"
	"errors"
	"testing"
	"time"

	"lyrica/src/infra/store"
	"lyrica/src/lyrics"
)

func testResult() *lyrics.ResolutionResult {
	return &lyrics.ResolutionResult{
		Source:     lyrics.ProviderLRCLIB,
		Artist:     "Arijit Singh",
		Title:      "Tum Hi Ho",
		PlainText:  "Hum tere bin",
		ResolvedAt: time.Now().UTC(),
	}
}

func TestCacheRoundTrip(t *testing.T) {
	kv := store.NewMemoryStore(0)
	cache := NewService(kv, time.Minute)
	ctx := context.Background()

	attempts := []lyrics.AttemptRecord{{Provider: lyrics.ProviderLRCLIB, Outcome: lyrics.OutcomeSuccess}}
	cache.Put(ctx, "fp", testResult(), attempts)

	entry, ok := cache.Get(ctx, "fp")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if entry.Result.Source != lyrics.ProviderLRCLIB || entry.Result.PlainText != "Hum tere bin" {
		t.Error("cached result does not match stored result")
	}
	if len(entry.Attempts) != 1 || entry.Attempts[0].Outcome != lyrics.OutcomeSuccess {
		t.Error("cached attempts do not match stored attempts")
	}

	stats := cache.Stats(ctx)
	if stats.Hits != 1 || stats.Misses != 0 || stats.Entries != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestCacheMissCounts(t *testing.T) {
	cache := NewService(store.NewMemoryStore(0), time.Minute)
	if _, ok := cache.Get(context.Background(), "absent"); ok {
		t.Fatal("expected miss")
	}
	if stats := cache.Stats(context.Background()); stats.Misses != 1 {
		t.Errorf("expected 1 miss, got %d", stats.Misses)
	}
}

func TestCacheClear(t *testing.T) {
	cache := NewService(store.NewMemoryStore(0), time.Minute)
	ctx := context.Background()
	cache.Put(ctx, "a", testResult(), nil)
	cache.Put(ctx, "b", testResult(), nil)

	n, err := cache.Clear(ctx)
	if err != nil || n != 2 {
		t.Fatalf("expected 2 cleared, got %d (err=%v)", n, err)
	}
	if _, ok := cache.Get(ctx, "a"); ok {
		t.Error("entry survived clear")
	}
}

type failingStore struct{}

func (failingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, errors.New("backend down")
}
func (failingStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return errors.New("backend down")
}
func (failingStore) Delete(ctx context.Context, key string) error { return nil }
func (failingStore) Flush(ctx context.Context) (int, error)       { return 0, nil }
func (failingStore) Len(ctx context.Context) (int, error)         { return 0, nil }

func TestCacheFailsEmptyOnStoreErrors(t *testing.T) {
	cache := NewService(failingStore{}, time.Minute)
	ctx := context.Background()

	cache.Put(ctx, "fp", testResult(), nil) // must not panic
	if _, ok := cache.Get(ctx, "fp"); ok {
		t.Error("broken backend must behave as a miss")
	}
}
