// Package flavorfake provides a deterministic in-memory flavor cache
// with assertion helpers for tests.
package flavorfake

import (
	"context"
	"sync"
	"testing"

	"github.com/goforj/flavors"
)

// Op identifies a registry operation for assertions.
type Op string

const (
	OpGet   Op = "get"
	OpAdd   Op = "add"
	OpCount Op = "count"
	OpNames Op = "names"
)

// Fake exposes a deterministic in-memory cache plus assertion helpers.
// It wraps the memory store so no external services are needed.
type Fake struct {
	cache  *flavors.Cache
	counts map[Op]map[string]int
	mu     sync.Mutex
}

// New creates a Fake using an in-memory store.
func New() *Fake {
	store := &countingStore{inner: flavors.NewMemoryStore(context.Background())}
	f := &Fake{
		cache:  flavors.NewCache(store),
		counts: make(map[Op]map[string]int),
	}
	store.onCount = f.record
	return f
}

// Cache returns the cache facade to inject into code under test.
func (f *Fake) Cache() *flavors.Cache { return f.cache }

// Reset clears recorded counts.
func (f *Fake) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts = make(map[Op]map[string]int)
}

// AssertCalled verifies name was touched by op the expected number of times.
func (f *Fake) AssertCalled(t *testing.T, op Op, name string, times int) {
	t.Helper()
	if got := f.Count(op, name); got != times {
		t.Fatalf("expected %s %q called %d times, got %d", op, name, times, got)
	}
}

// AssertNotCalled ensures name was never touched by op.
func (f *Fake) AssertNotCalled(t *testing.T, op Op, name string) {
	t.Helper()
	if got := f.Count(op, name); got != 0 {
		t.Fatalf("expected %s %q not called, got %d", op, name, got)
	}
}

// AssertTotal ensures the total call count for an op matches times.
func (f *Fake) AssertTotal(t *testing.T, op Op, times int) {
	t.Helper()
	if got := f.Total(op); got != times {
		t.Fatalf("expected %s total=%d, got %d", op, times, got)
	}
}

// Count returns calls for op+name.
func (f *Fake) Count(op Op, name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counts[op] == nil {
		return 0
	}
	return f.counts[op][name]
}

// Total returns total calls for an op across names.
func (f *Fake) Total(op Op) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum int
	for _, v := range f.counts[op] {
		sum += v
	}
	return sum
}

func (f *Fake) record(op Op, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counts[op] == nil {
		f.counts[op] = make(map[string]int)
	}
	f.counts[op][name]++
}

// countingStore wraps a Store to record calls.
type countingStore struct {
	inner   flavors.Store
	onCount func(Op, string)
}

func (s *countingStore) Driver() flavors.Driver { return s.inner.Driver() }

func (s *countingStore) Get(ctx context.Context, name string) ([]byte, bool, error) {
	s.bump(OpGet, name)
	return s.inner.Get(ctx, name)
}

func (s *countingStore) Add(ctx context.Context, name string, body []byte) (bool, error) {
	s.bump(OpAdd, name)
	return s.inner.Add(ctx, name, body)
}

func (s *countingStore) Count(ctx context.Context) (int64, error) {
	s.bump(OpCount, "")
	return s.inner.Count(ctx)
}

func (s *countingStore) Names(ctx context.Context) ([]string, error) {
	s.bump(OpNames, "")
	return s.inner.Names(ctx)
}

func (s *countingStore) bump(op Op, name string) {
	if s.onCount != nil {
		s.onCount(op, name)
	}
}
