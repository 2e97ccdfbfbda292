// Package cache memoizes the Ruby version catalog between requests.
//
// # Store
//
// [Store] holds at most one value. [Store.Fetch] returns it while it is
// younger than the expiry (5 minutes by default) and otherwise runs the
// producer it was given:
//
//	store := cache.New[*catalog.Catalog](5 * time.Minute)
//	cat, err := store.Fetch(ctx, func(ctx context.Context) (*catalog.Catalog, error) {
//	    return buildFromRemote(ctx)
//	})
//
// Properties:
//
//   - A fresh value is never recomputed.
//   - A stale value is replaced as a whole; readers never see partial results.
//   - Producer errors are not cached; the next Fetch retries.
//   - Concurrent misses share one producer call (golang.org/x/sync/singleflight).
//
// The expiring slot itself is a github.com/patrickmn/go-cache instance with a
// single key.
//
// # Hashing
//
// [Hash] returns a hex SHA-256 digest, used to derive entity tags for
// rendered catalogs.
package cache
