package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/rbver/pkg/integrations/rubylang"
	"github.com/matzehuels/rbver/pkg/version"
)

// buildFlat groups archives kept directly under the root prefix. Ruby 2 and
// later group by major.minor; Ruby 1 groups by the full release before its
// patch level, so "1.8.7-p72" and "1.8.7-p375" share the "1.8.7" group.
func (b *Builder) buildFlat(ctx context.Context) ([]Family, error) {
	listing, err := b.lister.List(ctx, rubylang.Query{Prefix: b.root, Delimiter: "/"})
	if err != nil {
		return nil, err
	}

	var (
		order      []string
		groups     = map[string][]version.Version{}
		candidates int
	)
	for _, key := range listing.Keys {
		m := b.flatRE.FindStringSubmatch(key)
		if m == nil || strings.HasSuffix(m[1], "-stable") {
			continue
		}
		candidates++
		v, err := version.Parse(m[1])
		if err != nil {
			b.logger.Debug("skipping archive", "key", key, "error", err)
			continue
		}
		name := groupName(v)
		if _, ok := groups[name]; !ok {
			order = append(order, name)
		}
		groups[name] = append(groups[name], v)
	}
	if candidates > 0 && len(order) == 0 {
		return nil, noMatch(b.root, candidates)
	}

	var families []Family
	for _, name := range order {
		if b.belowFloor(name) {
			b.logger.Debug("skipping group below floor", "group", name, "floor", b.floor)
			continue
		}
		vs := groups[name]
		version.Sort(vs, false)
		versions := make([]string, len(vs))
		for i, v := range vs {
			versions[i] = v.String()
		}
		families = append(families, Family{Name: name, Versions: versions})
	}

	slices.Reverse(families)
	return families, nil
}

func groupName(v version.Version) string {
	if v.Major() != 1 {
		return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
	}
	if i := strings.LastIndex(v.String(), "-p"); i > 0 && v.HasPatchLevel() {
		return v.String()[:i]
	}
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
}
