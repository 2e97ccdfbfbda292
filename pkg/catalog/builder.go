package catalog

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rbver/pkg/cache"
	rberrors "github.com/matzehuels/rbver/pkg/errors"
	"github.com/matzehuels/rbver/pkg/integrations/rubylang"
	"github.com/matzehuels/rbver/pkg/observability"
	"github.com/matzehuels/rbver/pkg/version"
)

// Defaults used by [NewBuilder].
const (
	DefaultRootPrefix  = "pub/ruby/"
	DefaultFloor       = "1.8"
	DefaultConcurrency = 4
)

// Strategy selects how release archives are discovered and grouped.
type Strategy string

const (
	// StrategyFamily lists each family directory ("pub/ruby/2.0/") on its own.
	StrategyFamily Strategy = "family"
	// StrategyFlat reads archives stored directly under the root prefix and
	// groups them by version number.
	StrategyFlat Strategy = "flat"
)

// ParseStrategy converts a strategy name. The empty string selects
// [StrategyFamily].
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", StrategyFamily:
		return StrategyFamily, nil
	case StrategyFlat:
		return StrategyFlat, nil
	}
	return "", rberrors.New(rberrors.ErrCodeInvalidConfig, "unknown strategy %q (want %s or %s)", s, StrategyFamily, StrategyFlat)
}

// Lister reads one level of the release bucket.
// [*rubylang.Client] is the production implementation.
type Lister interface {
	List(ctx context.Context, q rubylang.Query) (*rubylang.Listing, error)
}

// Option configures a [Builder].
type Option func(*Builder)

// WithLogger sets the logger used for build progress and skipped entries.
func WithLogger(l *log.Logger) Option { return func(b *Builder) { b.logger = l } }

// WithStrategy selects the discovery strategy.
func WithStrategy(s Strategy) Option { return func(b *Builder) { b.strategy = s } }

// WithFloor drops families older than v.
func WithFloor(v version.Version) Option { return func(b *Builder) { b.floor = v } }

// WithConcurrency bounds the number of family listings in flight.
func WithConcurrency(n int) Option { return func(b *Builder) { b.concurrency = n } }

// WithRootPrefix sets the bucket prefix that holds the family directories.
func WithRootPrefix(p string) Option { return func(b *Builder) { b.root = p } }

// WithTimeout bounds a whole build, including every listing request.
// Zero means no bound beyond the per-request HTTP timeout.
func WithTimeout(d time.Duration) Option { return func(b *Builder) { b.timeout = d } }

// Builder assembles a [Catalog] from the release bucket and caches it.
//
// Build is safe for concurrent use. Callers that arrive while a build is
// running wait for that build instead of starting their own.
type Builder struct {
	lister      Lister
	store       *cache.Store[*Catalog]
	logger      *log.Logger
	strategy    Strategy
	root        string
	floor       version.Version
	concurrency int
	timeout     time.Duration

	familyRE  *regexp.Regexp
	archiveRE *regexp.Regexp
	flatRE    *regexp.Regexp
}

// NewBuilder creates a Builder reading from lister and caching into store.
// A nil store gets a fresh one with [cache.DefaultExpiry].
func NewBuilder(lister Lister, store *cache.Store[*Catalog], opts ...Option) *Builder {
	b := &Builder{
		lister:      lister,
		store:       store,
		strategy:    StrategyFamily,
		root:        DefaultRootPrefix,
		floor:       version.MustParse(DefaultFloor),
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.store == nil {
		b.store = cache.New[*Catalog](0)
	}
	if b.logger == nil {
		b.logger = log.Default()
	}
	if b.concurrency <= 0 {
		b.concurrency = DefaultConcurrency
	}

	root := regexp.QuoteMeta(b.root)
	b.familyRE = regexp.MustCompile(`^` + root + `(\d+\.\d+[a-d]?)/$`)
	b.archiveRE = regexp.MustCompile(`^` + root + `[^/]+/ruby-(.+)\.zip$`)
	b.flatRE = regexp.MustCompile(`^` + root + `ruby-(.+)\.zip$`)
	return b
}

// Store returns the cache the builder fills.
func (b *Builder) Store() *cache.Store[*Catalog] { return b.store }

// Strategy returns the configured discovery strategy.
func (b *Builder) Strategy() Strategy { return b.strategy }

// Build returns the cached catalog, building it first if the cache is empty
// or expired. A failed build is not cached; the next call tries again.
func (b *Builder) Build(ctx context.Context) (*Catalog, error) {
	return b.store.Fetch(ctx, b.build)
}

func (b *Builder) build(ctx context.Context) (*Catalog, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	start := time.Now()
	observability.Catalog().OnBuildStart(ctx, string(b.strategy))
	var (
		families []Family
		err      error
	)
	switch b.strategy {
	case StrategyFamily:
		families, err = b.buildByFamily(ctx)
	case StrategyFlat:
		families, err = b.buildFlat(ctx)
	default:
		err = rberrors.New(rberrors.ErrCodeInternal, "unknown strategy %q", b.strategy)
	}
	observability.Catalog().OnBuildComplete(ctx, string(b.strategy), len(families), time.Since(start), err)
	if err != nil {
		b.logger.Error("catalog build failed", "strategy", b.strategy, "error", err)
		return nil, err
	}

	b.logger.Info("built catalog",
		"strategy", b.strategy,
		"families", len(families),
		"duration", time.Since(start).Round(time.Millisecond))
	return &Catalog{Families: families, BuiltAt: time.Now()}, nil
}

// belowFloor reports whether a family or group name is older than the floor.
// Names that do not parse are never below it.
func (b *Builder) belowFloor(name string) bool {
	v, err := version.Parse(name)
	if err != nil {
		return false
	}
	return v.LessThan(b.floor)
}

func noMatch(prefix string, candidates int) error {
	return rberrors.New(rberrors.ErrCodeNoMatch, "%s: none of %s parsed as a version", prefix, pluralArchives(candidates))
}

func pluralArchives(n int) string {
	if n == 1 {
		return "1 archive"
	}
	return fmt.Sprintf("%d archives", n)
}
