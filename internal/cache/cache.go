// Package cache memoizes pure computations keyed by the content they were
// derived from.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"sync/atomic"
)

type call[V any] struct {
	done chan struct{}
	val  V
	err  error
}

// InMemory is a bounded content-hash cache. Concurrent callers for the same
// key share one computation; failed computations are not stored. Once full,
// new results are returned but not retained.
type InMemory[V any] struct {
	mu       sync.Mutex
	max      int
	items    map[string]V
	inflight map[string]*call[V]

	hits   atomic.Uint64
	misses atomic.Uint64
}

func NewInMemory[V any](max int) *InMemory[V] {
	if max < 0 {
		max = 0
	}
	return &InMemory[V]{
		max:      max,
		items:    make(map[string]V, max),
		inflight: make(map[string]*call[V]),
	}
}

func (c *InMemory[V]) GetOrCompute(content []byte, fn func() (V, error)) (V, error) {
	key := Hash(content)

	c.mu.Lock()
	if v, ok := c.items[key]; ok {
		c.mu.Unlock()
		c.hits.Add(1)
		return v, nil
	}
	if cl, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		c.hits.Add(1)
		<-cl.done
		return cl.val, cl.err
	}
	cl := &call[V]{done: make(chan struct{})}
	c.inflight[key] = cl
	c.mu.Unlock()
	c.misses.Add(1)

	cl.val, cl.err = run(fn)

	c.mu.Lock()
	delete(c.inflight, key)
	if cl.err == nil && len(c.items) < c.max {
		c.items[key] = cl.val
	}
	c.mu.Unlock()
	close(cl.done)

	return cl.val, cl.err
}

func (c *InMemory[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats reports lookups served from the cache (or a shared in-flight call)
// and lookups that ran the computation.
func (c *InMemory[V]) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

func run[V any](fn func() (V, error)) (v V, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero V
			v, err = zero, fmt.Errorf("cache: computation panicked: %v", r)
		}
	}()
	return fn()
}

func Hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
