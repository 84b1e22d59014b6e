// Package cache memoizes pure computations over sample subsets.
package cache

import (
	"container/list"
	"context"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/okian/futvis/pkg/metrics"
	"golang.org/x/sync/singleflight"
)

const defaultLimit = 256

type entry struct {
	key   string
	value any
}

// Memo is a bounded, content-addressed result cache. When full, the oldest
// entry is evicted first. Concurrent loads of one key run the loader once.
type Memo struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front is oldest
	limit   int
	flight  singleflight.Group

	recordMetrics bool
}

// New builds a Memo.
func New(opts ...Option) *Memo {
	m := &Memo{
		entries:       make(map[string]*list.Element),
		order:         list.New(),
		limit:         defaultLimit,
		recordMetrics: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the cached value for key.
func (m *Memo) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	el, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	return el.Value.(*entry).value, true
}

// Set stores value under key, evicting the oldest entries beyond the limit.
func (m *Memo) Set(_ context.Context, key string, value any) {
	if key == "" || m.limit == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.entries[key]; ok {
		el.Value.(*entry).value = value
		return
	}
	m.entries[key] = m.order.PushBack(&entry{key: key, value: value})
	for m.order.Len() > m.limit {
		oldest := m.order.Front()
		m.order.Remove(oldest)
		delete(m.entries, oldest.Value.(*entry).key)
		m.count(metrics.RecordCacheEviction)
	}
	m.gauge()
}

// DeletePrefix drops every key starting with prefix.
func (m *Memo) DeletePrefix(_ context.Context, prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, el := range m.entries {
		if strings.HasPrefix(key, prefix) {
			m.order.Remove(el)
			delete(m.entries, key)
			removed++
		}
	}
	m.gauge()
	return removed
}

// Purge empties the cache.
func (m *Memo) Purge(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]*list.Element)
	m.order.Init()
	m.gauge()
}

// Len returns the number of cached entries.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

// GetOrLoad returns the value for key, running loader on a miss. Errors are
// not cached.
func (m *Memo) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, ErrNilLoader
	}
	if key == "" {
		return loader(ctx)
	}
	if v, ok := m.Get(ctx, key); ok {
		m.count(metrics.RecordCacheHit)
		return v, nil
	}
	m.count(metrics.RecordCacheMiss)

	v, err, _ := m.flight.Do(key, func() (any, error) {
		if cached, ok := m.Get(ctx, key); ok {
			return cached, nil
		}
		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		m.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return v, nil
}

func (m *Memo) count(record func()) {
	if m.recordMetrics {
		record()
	}
}

// gauge must be called with mu held.
func (m *Memo) gauge() {
	if m.recordMetrics {
		metrics.UpdateCacheEntries(m.order.Len())
	}
}
