// Package refcache memoizes slow-changing reference data, such as the region
// list or standard levels, keyed by a caller-defined key.
//
// Entries never expire on their own; callers drop them with Invalidate or
// InvalidateAll. Concurrent misses on the same key share a single load, which
// is not cancelled when the caller that started it goes away.
package refcache

import (
	"context"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"
)

// Loader fetches the items for key on a cache miss.
type Loader[K comparable, T any] func(ctx context.Context, key K) ([]T, error)

// Cache is safe for concurrent use. The zero value is not usable; call New.
type Cache[K comparable, T any] struct {
	name    string
	mu      sync.RWMutex
	entries map[K][]T
	flights map[K]string
	gen     uint64
	group   singleflight.Group
	metrics *Metrics
}

// New returns an empty cache. metrics may be nil.
func New[K comparable, T any](name string, metrics *Metrics) *Cache[K, T] {
	return &Cache[K, T]{
		name:    name,
		entries: make(map[K][]T),
		flights: make(map[K]string),
		metrics: metrics,
	}
}

// Name returns the label the cache reports metrics under.
func (c *Cache[K, T]) Name() string {
	return c.name
}

// GetOrLoad returns the cached items for key, loading them through load on a
// miss. Concurrent callers missing on the same key wait for one load and all
// receive its result or error. A failed load leaves the key unpopulated.
//
// The load runs detached from ctx cancellation; a caller whose ctx ends first
// returns ctx.Err() while the load completes for the others.
func (c *Cache[K, T]) GetOrLoad(ctx context.Context, key K, load Loader[K, T]) ([]T, error) {
	if items, ok := c.lookup(key); ok {
		c.metrics.hit(c.name)
		return items, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(c.flightKey(key), func() (any, error) {
		// another flight may have filled the key between lookup and DoChan
		if items, ok := c.lookup(key); ok {
			return items, nil
		}

		c.mu.RLock()
		gen := c.gen
		c.mu.RUnlock()

		c.metrics.load(c.name)
		items, err := load(loadCtx, key)
		if err != nil {
			c.metrics.failure(c.name)
			return nil, err
		}

		// an invalidation during the load means items may already be stale
		c.mu.Lock()
		if c.gen == gen {
			c.entries[key] = items
		}
		c.mu.Unlock()
		return items, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]T), nil
	}
}

// Invalidate drops key so the next GetOrLoad reloads it.
func (c *Cache[K, T]) Invalidate(key K) {
	c.mu.Lock()
	delete(c.entries, key)
	c.gen++
	id, ok := c.flights[key]
	c.mu.Unlock()
	if ok {
		c.group.Forget(id)
	}
}

// InvalidateAll drops every key.
func (c *Cache[K, T]) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[K][]T)
	c.gen++
	ids := make([]string, 0, len(c.flights))
	for _, id := range c.flights {
		ids = append(ids, id)
	}
	c.mu.Unlock()
	for _, id := range ids {
		c.group.Forget(id)
	}
}

// Len reports the number of populated keys.
func (c *Cache[K, T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// flightKey returns the singleflight key for key. Ids are assigned per
// distinct K so keys that print alike never share a load.
func (c *Cache[K, T]) flightKey(key K) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.flights[key]
	if !ok {
		id = strconv.Itoa(len(c.flights))
		c.flights[key] = id
	}
	return id
}

func (c *Cache[K, T]) lookup(key K) ([]T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items, ok := c.entries[key]
	return items, ok
}

// Metrics counts cache hits, loads and failed loads per cache name.
type Metrics struct {
	hits     *prometheus.CounterVec
	loads    *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewMetrics registers the cache collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "refcache_hits_total",
			Help: "Reference cache lookups served from memory",
		}, []string{"cache"}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "refcache_loads_total",
			Help: "Reference cache loads issued on a miss",
		}, []string{"cache"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "refcache_load_failures_total",
			Help: "Reference cache loads that returned an error",
		}, []string{"cache"}),
	}
	for _, col := range []prometheus.Collector{m.hits, m.loads, m.failures} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) hit(name string) {
	if m != nil {
		m.hits.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) load(name string) {
	if m != nil {
		m.loads.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) failure(name string) {
	if m != nil {
		m.failures.WithLabelValues(name).Inc()
	}
}
