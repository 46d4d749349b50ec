package flavors

import (
	"context"
	"strings"

	gocache "github.com/patrickmn/go-cache"
)

type memoryStore struct {
	cache *gocache.Cache
}

func newMemoryStore() Store {
	// Registry entries never expire; no sweep goroutine is needed.
	return &memoryStore{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

func (s *memoryStore) Driver() Driver {
	return DriverMemory
}

func (s *memoryStore) Get(_ context.Context, name string) ([]byte, bool, error) {
	item, ok := s.cache.Get(name)
	if !ok {
		return nil, false, nil
	}
	body, ok := item.([]byte)
	if !ok {
		return nil, false, nil
	}
	return cloneBytes(body), true, nil
}

func (s *memoryStore) Add(_ context.Context, name string, body []byte) (bool, error) {
	if err := s.cache.Add(name, cloneBytes(body), gocache.NoExpiration); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *memoryStore) Count(_ context.Context) (int64, error) {
	return int64(s.cache.ItemCount()), nil
}

func (s *memoryStore) Names(_ context.Context) ([]string, error) {
	items := s.cache.Items()
	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	return names, nil
}

func cloneBytes(value []byte) []byte {
	if value == nil {
		return nil
	}
	clone := make([]byte, len(value))
	copy(clone, value)
	return clone
}
