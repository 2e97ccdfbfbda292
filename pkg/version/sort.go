package version

import (
	"cmp"
	"slices"
)

// SortAscending sorts vs from oldest to newest in place.
// It returns an error, leaving vs untouched, if any element does not parse.
func SortAscending(vs []string) error {
	return sortStrings(vs, 1)
}

// SortDescending sorts vs from newest to oldest in place.
// It returns an error, leaving vs untouched, if any element does not parse.
func SortDescending(vs []string) error {
	return sortStrings(vs, -1)
}

func sortStrings(vs []string, dir int) error {
	parsed := make(map[string]Version, len(vs))
	for _, s := range vs {
		if _, ok := parsed[s]; ok {
			continue
		}
		v, err := Parse(s)
		if err != nil {
			return err
		}
		parsed[s] = v
	}

	slices.SortStableFunc(vs, func(a, b string) int {
		if c := parsed[a].Compare(parsed[b]); c != 0 {
			return dir * c
		}
		// Equal precedence ("2.0.0" vs "2.0.0.0"): keep a stable textual order.
		return dir * cmp.Compare(a, b)
	})
	return nil
}

// Sort sorts parsed versions in place, newest first when desc is true.
func Sort(vs []Version, desc bool) {
	dir := 1
	if desc {
		dir = -1
	}
	slices.SortStableFunc(vs, func(a, b Version) int {
		if c := a.Compare(b); c != 0 {
			return dir * c
		}
		return dir * cmp.Compare(a.raw, b.raw)
	})
}
