package store

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	value  []byte
	expiry time.Time
}

type memoryWindow struct {
	count int64
	until time.Time
}

// MemoryStore is the in-process backend: a mutex-guarded map with lazy
// expiry plus an optional background janitor sweep.
type MemoryStore struct {
	mu      sync.RWMutex
	items   map[string]memoryItem
	windows map[string]memoryWindow

	now  func() time.Time
	stop chan struct{}
	once sync.Once
}

// NewMemoryStore creates an empty in-memory store. If sweepInterval > 0 a
// janitor goroutine evicts expired entries periodically; Close stops it.
func NewMemoryStore(sweepInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		items:   make(map[string]memoryItem),
		windows: make(map[string]memoryWindow),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if sweepInterval > 0 {
		go s.janitor(sweepInterval)
	}
	return s
}

// Close stops the janitor goroutine.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *MemoryStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) sweep() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, item := range s.items {
		if now.After(item.expiry) {
			delete(s.items, key)
		}
	}
	for key, w := range s.windows {
		if now.After(w.until) {
			delete(s.windows, key)
		}
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	item, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if s.now().After(item.expiry) {
		s.mu.Lock()
		delete(s.items, key)
		s.mu.Unlock()
		return nil, false, nil
	}
	return item.value, true, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = memoryItem{value: value, expiry: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

func (s *MemoryStore) Flush(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.items)
	s.items = make(map[string]memoryItem)
	return n, nil
}

func (s *MemoryStore) Len(ctx context.Context) (int, error) {
	now := s.now()
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, item := range s.items {
		if !now.After(item.expiry) {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.windows[key]
	if !ok || now.After(w.until) {
		w = memoryWindow{count: 0, until: now.Add(window)}
	}
	w.count++
	s.windows[key] = w
	return w.count, w.until.Sub(now), nil
}
