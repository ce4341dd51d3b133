package storage

import (
	"context"
	"errors"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrNotFound is returned for ids the store does not hold.
var ErrNotFound = errors.New("not found")

// Memory is a bounded in-memory store. Once full, the least recently used
// entry is evicted and handed to the eviction callback.
type Memory[V any] struct {
	cache *lru.Cache[string, V]
}

// NewMemory creates a store holding at most size entries. onEvict may be nil;
// it also runs for entries removed through Delete.
func NewMemory[V any](size int, onEvict func(id string, v V)) (*Memory[V], error) {
	var (
		cache *lru.Cache[string, V]
		err   error
	)
	if onEvict != nil {
		cache, err = lru.NewWithEvict[string, V](size, onEvict)
	} else {
		cache, err = lru.New[string, V](size)
	}
	if err != nil {
		return nil, err
	}
	return &Memory[V]{cache: cache}, nil
}

func (s *Memory[V]) Save(ctx context.Context, id string, v V) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("invalid entry: missing ID")
	}
	s.cache.Add(id, v)
	return nil
}

func (s *Memory[V]) Load(ctx context.Context, id string) (V, error) {
	v, ok := s.cache.Get(strings.TrimSpace(id))
	if !ok {
		var zero V
		return zero, ErrNotFound
	}
	return v, nil
}

func (s *Memory[V]) Delete(ctx context.Context, id string) error {
	if !s.cache.Remove(strings.TrimSpace(id)) {
		return ErrNotFound
	}
	return nil
}

// List returns the held ids, oldest first.
func (s *Memory[V]) List(ctx context.Context) ([]string, error) {
	return s.cache.Keys(), nil
}

func (s *Memory[V]) Len() int { return s.cache.Len() }
