package catalog

import (
	"context"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/rbver/pkg/integrations/rubylang"
	"github.com/matzehuels/rbver/pkg/version"
)

func (b *Builder) buildByFamily(ctx context.Context) ([]Family, error) {
	root, err := b.lister.List(ctx, rubylang.Query{Prefix: b.root, Delimiter: "/"})
	if err != nil {
		return nil, err
	}
	names := b.familyNames(root.Prefixes)
	b.logger.Debug("discovered families", "count", len(names), "names", names)

	families := make([]Family, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i, name := range names {
		g.Go(func() error {
			versions, err := b.familyVersions(gctx, name)
			if err != nil {
				return err
			}
			families[i] = Family{Name: name, Versions: versions}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.Reverse(families)
	return families, nil
}

// familyNames extracts family names from common prefixes in discovery order,
// dropping anything that is not a family directory or is below the floor.
func (b *Builder) familyNames(prefixes []string) []string {
	var names []string
	for _, p := range prefixes {
		m := b.familyRE.FindStringSubmatch(p)
		if m == nil {
			continue
		}
		if b.belowFloor(m[1]) {
			b.logger.Debug("skipping family below floor", "family", m[1], "floor", b.floor)
			continue
		}
		names = append(names, m[1])
	}
	return names
}

// familyVersions lists one family directory and returns its release versions
// newest first.
func (b *Builder) familyVersions(ctx context.Context, name string) ([]string, error) {
	prefix := b.root + name + "/"
	listing, err := b.lister.List(ctx, rubylang.Query{Prefix: prefix, Delimiter: "/"})
	if err != nil {
		return nil, err
	}

	var (
		parsed     []version.Version
		candidates int
	)
	for _, key := range listing.Keys {
		m := b.archiveRE.FindStringSubmatch(key)
		if m == nil || strings.HasSuffix(m[1], "-stable") {
			continue
		}
		candidates++
		v, err := version.Parse(m[1])
		if err != nil {
			b.logger.Debug("skipping archive", "key", key, "error", err)
			continue
		}
		parsed = append(parsed, v)
	}
	if candidates > 0 && len(parsed) == 0 {
		return nil, noMatch(prefix, candidates)
	}

	version.Sort(parsed, true)
	versions := make([]string, len(parsed))
	for i, v := range parsed {
		versions[i] = v.String()
	}
	return versions, nil
}
