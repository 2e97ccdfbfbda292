// Package version parses and orders Ruby release version strings.
//
// # Overview
//
// Ruby releases are named like "1.9.3-p551", "2.1.0-rc1" or "3.2.0". Generic
// semantic-version libraries treat every hyphenated suffix as a pre-release,
// which would sort "2.0.0-p0" before "2.0.0-rc2". Ruby's "-pN" is a patch
// level instead: it comes after the release it patches.
//
// [Parse] turns a string into a structured [Version]; [Version.Compare]
// orders two of them:
//
//	a := version.MustParse("2.0.0-p0")
//	b := version.MustParse("2.0.0-rc2")
//	a.GreaterThan(b) // true
//
// # Ordering
//
// A trailing "-pN" is rewritten into an extra numeric segment ("2.0.0-p0"
// compares like "2.0.0.0"). The rest of the string is split into numeric and
// alphabetic segments which are compared left to right:
//
//   - numbers compare numerically
//   - letters compare lexically
//   - letters sort below numbers at the same position
//   - a missing segment counts as 0
//
// So "2.1.0-rc1" < "2.1.0" < "2.1.0-p0" < "2.1.0-p648".
//
// # Sorting
//
// [SortDescending] and [SortAscending] sort slices of raw strings and reject
// slices containing unparsable entries.
package version
