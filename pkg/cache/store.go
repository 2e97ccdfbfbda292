package cache

import (
	"context"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/rbver/pkg/observability"
)

// DefaultExpiry is how long a fetched value is served before the producer
// runs again.
const DefaultExpiry = 5 * time.Minute

// slotKey names the single entry held by a Store.
const slotKey = "slot"

// Store is a single-slot memoization cell in front of a slow producer.
//
// A value stored by [Store.Fetch] is returned to every caller until it is
// older than the expiry, after which the next Fetch calls the producer again
// and replaces the value. Failed producer calls leave the slot as it was.
//
// Concurrent Fetch calls that miss share one producer call. All methods are
// safe for concurrent use.
type Store[T any] struct {
	slot   *gocache.Cache
	flight singleflight.Group
	expiry time.Duration

	hits     atomic.Int64
	misses   atomic.Int64
	loads    atomic.Int64
	failures atomic.Int64
}

// Stats counts Store activity since construction.
type Stats struct {
	Hits     int64 `json:"hits"`     // Fetch calls served from the slot
	Misses   int64 `json:"misses"`   // Fetch calls that found the slot empty or stale
	Loads    int64 `json:"loads"`    // producer invocations
	Failures int64 `json:"failures"` // producer invocations that returned an error
}

// New creates an empty Store. An expiry of zero or less means [DefaultExpiry].
func New[T any](expiry time.Duration) *Store[T] {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Store[T]{
		// No janitor: a stale slot is simply replaced on the next miss.
		slot:   gocache.New(expiry, 0),
		expiry: expiry,
	}
}

// Expiry returns the window during which a fetched value is reused.
func (s *Store[T]) Expiry() time.Duration { return s.expiry }

// Fetch returns the cached value if it is still fresh. Otherwise it calls
// produce once, stores the result and returns it.
//
// If produce fails, its error is returned unchanged and nothing is cached, so
// the next call tries again. Callers that arrive while a producer call is in
// flight wait for that call instead of starting their own. produce receives a
// context that keeps the caller's values but not its cancellation; a caller
// whose ctx ends stops waiting and gets ctx.Err() while the shared call runs on.
func (s *Store[T]) Fetch(ctx context.Context, produce func(context.Context) (T, error)) (T, error) {
	if v, ok := s.get(); ok {
		s.hits.Add(1)
		observability.Cache().OnCacheHit(ctx)
		return v, nil
	}
	s.misses.Add(1)
	observability.Cache().OnCacheMiss(ctx)

	detached := context.WithoutCancel(ctx)
	ch := s.flight.DoChan(slotKey, func() (any, error) {
		// A flight that finished between get and DoChan already refilled the slot.
		if v, ok := s.get(); ok {
			return v, nil
		}
		s.loads.Add(1)
		start := time.Now()
		v, err := produce(detached)
		observability.Cache().OnCacheLoad(detached, time.Since(start), err)
		if err != nil {
			s.failures.Add(1)
			return nil, err
		}
		s.slot.SetDefault(slotKey, v)
		return v, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Invalidate empties the slot so the next Fetch calls the producer.
func (s *Store[T]) Invalidate() {
	s.slot.Delete(slotKey)
}

// Stats returns a snapshot of the activity counters.
func (s *Store[T]) Stats() Stats {
	return Stats{
		Hits:     s.hits.Load(),
		Misses:   s.misses.Load(),
		Loads:    s.loads.Load(),
		Failures: s.failures.Load(),
	}
}

func (s *Store[T]) get() (T, bool) {
	if v, ok := s.slot.Get(slotKey); ok {
		return v.(T), true
	}
	var zero T
	return zero, false
}
