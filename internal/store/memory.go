package store

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/i474232898/sensor-stats/internal/stats"
)

// MemoryCache is a concurrency-safe, unbounded memo of query results.
// Entries are written once and live for the process lifetime.
type MemoryCache struct {
	mu sync.RWMutex

	// key: canonical criteria, value: computed result
	data map[stats.Key]stats.Result

	// in-flight computations, keyed by Key.String()
	flight singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[stats.Key]stats.Result),
	}
}

// Get returns the stored result for key, if any.
func (s *MemoryCache) Get(key stats.Key) (stats.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.data[key]
	return res, ok
}

// GetOrCompute returns the stored result for key and true, or runs compute,
// stores its result and returns it with false.
//
// Concurrent misses on the same key share a single compute call; the callers
// that waited for it report a hit. The lock is never held while compute runs.
func (s *MemoryCache) GetOrCompute(key stats.Key, compute func() stats.Result) (stats.Result, bool) {
	if res, ok := s.Get(key); ok {
		s.hits.Add(1)
		return res, true
	}

	computed := false
	v, _, _ := s.flight.Do(key.String(), func() (interface{}, error) {
		// Another flight may have stored the key after our first lookup.
		if res, ok := s.Get(key); ok {
			return res, nil
		}
		res := compute()
		computed = true

		s.mu.Lock()
		s.data[key] = res
		s.mu.Unlock()
		return res, nil
	})

	if computed {
		s.misses.Add(1)
	} else {
		s.hits.Add(1)
	}
	return v.(stats.Result), !computed
}

// Len returns the number of stored results.
func (s *MemoryCache) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Hits returns how many lookups were served without computing.
func (s *MemoryCache) Hits() int64 {
	return s.hits.Load()
}

// Misses returns how many lookups ran the compute function.
func (s *MemoryCache) Misses() int64 {
	return s.misses.Load()
}
