// Package query is the client-side read cache for the admin surface. Reads
// are keyed by operation name plus serialized parameters, at most one fetch
// per key is in flight at a time, and late responses from superseded fetches
// are discarded so an out-of-order network reply can never overwrite newer
// data.
package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ErrMutationInFlight rejects a second overlapping mutation for the same
// logical resource.
var ErrMutationInFlight = errors.New("mutation already in flight")

type FetchFunc func(ctx context.Context) (any, error)

// Snapshot is the observable state of one cache entry. After a failed
// refetch, Data keeps the previous successful value and Err carries the
// failure alongside it.
type Snapshot struct {
	Data      any
	IsLoading bool
	Err       error
}

type entry struct {
	data    any
	err     error
	settled bool
	loading bool
	stale   bool

	// gen is bumped for every issued fetch and on invalidation; a response
	// whose generation is no longer current is discarded.
	gen uint64

	// done is closed when the currently running fetch returns, whether or
	// not its result is applied.
	done chan struct{}

	fetch FetchFunc
	subs  map[int]func()
}

type Cache struct {
	mu        sync.Mutex
	group     singleflight.Group
	entries   map[string]*entry
	mutations map[string]struct{}
	nextSub   int
}

func NewCache() *Cache {
	return &Cache{
		entries:   make(map[string]*entry),
		mutations: make(map[string]struct{}),
	}
}

// Key builds a cache key from an operation name and its parameters.
// Parameters are serialized canonically, so structural equality of the
// parameter value is key equality and two different filters never collide.
func Key(op string, params any) string {
	if params == nil {
		return op
	}

	b, err := json.Marshal(params)
	if err != nil {
		return op + "?" + fmt.Sprintf("%+v", params)
	}

	return op + "?" + string(b)
}

// Read returns the entry's current snapshot, issuing a fetch when the entry
// is missing or stale. Concurrent reads of the same key share one fetch.
func (c *Cache) Read(ctx context.Context, key string, fetch FetchFunc) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.ensureLocked(key)
	e.fetch = fetch

	if !e.loading && (!e.settled || e.stale) {
		c.startFetchLocked(ctx, key, e)
	}

	return Snapshot{
		Data:      e.data,
		IsLoading: e.loading,
		Err:       e.err,
	}
}

// Fetch is the blocking form of Read: it waits until the entry settles and
// returns its value, issuing the fetch when needed.
func (c *Cache) Fetch(ctx context.Context, key string, fetch FetchFunc) (any, error) {
	for {
		c.mu.Lock()
		e := c.ensureLocked(key)
		e.fetch = fetch

		if !e.loading {
			if e.settled && !e.stale {
				data, err := e.data, e.err
				c.mu.Unlock()
				return data, err
			}
			c.startFetchLocked(ctx, key, e)
		}

		done := e.done
		c.mu.Unlock()

		select {
		case <-done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Invalidate marks every entry whose key starts with keyPrefix as stale.
// In-flight fetches for those entries are superseded, and entries with
// active subscribers refetch immediately.
func (c *Cache) Invalidate(keyPrefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		if !strings.HasPrefix(key, keyPrefix) {
			continue
		}

		e.stale = true
		e.gen++
		e.loading = false
		c.group.Forget(key)

		if len(e.subs) > 0 && e.fetch != nil {
			c.startFetchLocked(context.Background(), key, e)
		}
	}
}

// Subscribe registers a change callback for a key and returns a cancel
// function. Callbacks fire after a fetch settles, on their own goroutine.
func (c *Cache) Subscribe(key string, fn func()) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.ensureLocked(key)
	id := c.nextSub
	c.nextSub++
	e.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if cur, ok := c.entries[key]; ok {
			delete(cur.subs, id)
		}
	}
}

// Mutate runs a write for a logical resource. Overlapping mutations for the
// same resource are rejected rather than queued; callers invalidate the
// affected read keys after success.
func (c *Cache) Mutate(ctx context.Context, resource string, fn func(ctx context.Context) (any, error)) (any, error) {
	c.mu.Lock()
	if _, busy := c.mutations[resource]; busy {
		c.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", resource, ErrMutationInFlight)
	}
	c.mutations[resource] = struct{}{}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.mutations, resource)
		c.mu.Unlock()
	}()

	return fn(ctx)
}

func (c *Cache) ensureLocked(key string) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{subs: make(map[int]func())}
		c.entries[key] = e
	}
	return e
}

func (c *Cache) startFetchLocked(ctx context.Context, key string, e *entry) {
	e.loading = true
	e.stale = false
	e.gen++
	gen := e.gen
	done := make(chan struct{})
	e.done = done
	fetch := e.fetch

	go func() {
		defer close(done)

		v, err, _ := c.group.Do(key, func() (any, error) {
			return fetch(ctx)
		})

		c.mu.Lock()
		defer c.mu.Unlock()

		cur, ok := c.entries[key]
		if !ok || cur.gen != gen {
			// A newer fetch or invalidation superseded this response.
			return
		}

		cur.loading = false
		cur.settled = true
		if err != nil {
			cur.err = err
		} else {
			cur.data = v
			cur.err = nil
		}

		for _, fn := range cur.subs {
			go fn()
		}
	}()
}
