// Package catalog builds the list of Ruby releases served by rbver.
//
// A [Builder] walks the release bucket through a [Lister], keeps the
// archives that look like releases, orders them with
// [github.com/matzehuels/rbver/pkg/version] and caches the result in a
// [github.com/matzehuels/rbver/pkg/cache.Store]:
//
//	client := rubylang.NewClient("", 10*time.Second, httputil.Policy{}, "rbver")
//	b := catalog.NewBuilder(client, cache.New[*catalog.Catalog](5*time.Minute))
//	cat, err := b.Build(ctx)
//
// # Strategies
//
// [StrategyFamily] lists the family directories under "pub/ruby/" ("1.8/",
// "2.0/", ...), drops families older than the floor, then lists each family
// concurrently. Archives named "ruby-<version>.zip" are kept, except
// "-stable" snapshots. Families come out newest first and so do the
// versions inside each family.
//
// [StrategyFlat] reads archives stored directly under the root prefix and
// groups them by version number instead of by directory.
//
// # Failures
//
// Any failed listing aborts the build and nothing is cached. Archives with
// unparsable versions are skipped, but a family whose archives all fail to
// parse is reported as a NO_MATCH error.
package catalog
