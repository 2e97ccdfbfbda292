package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalid is returned by [Parse] when a string does not follow the
// version grammar.
var ErrInvalid = errors.New("invalid version")

// patchMarker introduces a Ruby patch level, as in "1.9.3-p551".
const patchMarker = "-p"

// Version is a parsed Ruby release version.
//
// Grammar:
//
//	version    = segment { sep segment } [ "-p" digits ]
//	segment    = digits | letters | { digits | letters }
//	sep        = "." | "-"
//
// The first segment must be numeric. A trailing "-pN" is a patch level and is
// compared as one more numeric segment, so "2.0.0-p0" orders like "2.0.0.0".
// Any other letters form a pre-release tag ("rc1", "preview2", "a") that
// orders below the untagged release with the same numeric prefix.
//
// The zero Version is invalid; use [Parse] or [MustParse].
type Version struct {
	raw        string
	major      int
	minor      int
	patch      int
	tag        string
	patchLevel int // -1 when absent
	segments   []segment
}

type segment struct {
	num   int
	str   string
	isNum bool
}

// Parse parses s into a Version.
func Parse(s string) (Version, error) {
	if s == "" {
		return Version{}, fmt.Errorf("%w: empty string", ErrInvalid)
	}

	body, level, err := splitPatchLevel(s)
	if err != nil {
		return Version{}, err
	}

	segs, tagAt, err := tokenize(body)
	if err != nil {
		return Version{}, fmt.Errorf("%w %q: %v", ErrInvalid, s, err)
	}
	var leading []int
	for _, sg := range segs {
		if !sg.isNum || len(leading) == 3 {
			break
		}
		leading = append(leading, sg.num)
	}
	if level >= 0 {
		segs = append(segs, segment{num: level, isNum: true})
	}

	v := Version{raw: s, patchLevel: level, segments: segs}
	if tagAt >= 0 {
		v.tag = body[tagAt:]
	}
	for i, n := range leading {
		switch i {
		case 0:
			v.major = n
		case 1:
			v.minor = n
		case 2:
			v.patch = n
		}
	}
	return v, nil
}

// MustParse is like [Parse] but panics on error. Use only for constants and tests.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// splitPatchLevel strips a trailing "-pN" and returns N, or -1 without one.
func splitPatchLevel(s string) (string, int, error) {
	i := strings.LastIndex(s, patchMarker)
	if i <= 0 {
		return s, -1, nil
	}
	digits := s[i+len(patchMarker):]
	if digits == "" || !isDigits(digits) {
		return s, -1, nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return "", 0, fmt.Errorf("%w %q: patch level: %v", ErrInvalid, s, err)
	}
	return s[:i], n, nil
}

// tokenize splits body into numeric and alphabetic segments. It also returns
// the byte offset of the first alphabetic segment, or -1.
func tokenize(body string) ([]segment, int, error) {
	var (
		segs  []segment
		tagAt = -1
		start = -1
		prev  byte // class of the previous byte: 'd', 'l' or 's'
	)

	flush := func(end int) error {
		if start < 0 {
			return nil
		}
		text := body[start:end]
		if prev == 'd' {
			n, err := strconv.Atoi(text)
			if err != nil {
				return fmt.Errorf("segment %q: %v", text, err)
			}
			segs = append(segs, segment{num: n, isNum: true})
		} else {
			if tagAt < 0 {
				tagAt = start
			}
			segs = append(segs, segment{str: text})
		}
		start = -1
		return nil
	}

	for i := 0; i < len(body); i++ {
		c := body[i]
		var class byte
		switch {
		case c >= '0' && c <= '9':
			class = 'd'
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			class = 'l'
		case c == '.' || c == '-':
			class = 's'
		default:
			return nil, 0, fmt.Errorf("unexpected character %q", c)
		}

		if class == 's' {
			if i == 0 || prev == 's' {
				return nil, 0, fmt.Errorf("empty segment at offset %d", i)
			}
			if err := flush(i); err != nil {
				return nil, 0, err
			}
			prev = class
			continue
		}
		if start >= 0 && class != prev {
			if err := flush(i); err != nil {
				return nil, 0, err
			}
		}
		if start < 0 {
			start = i
		}
		prev = class
	}

	if prev == 's' {
		return nil, 0, errors.New("trailing separator")
	}
	if err := flush(len(body)); err != nil {
		return nil, 0, err
	}
	if len(segs) == 0 || !segs[0].isNum {
		return nil, 0, errors.New("must start with a number")
	}
	return segs, tagAt, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String returns the version exactly as it was parsed.
func (v Version) String() string { return v.raw }

// Major returns the major version number.
func (v Version) Major() int { return v.major }

// Minor returns the minor version number.
func (v Version) Minor() int { return v.minor }

// Patch returns the patch version number (the third numeric component, not
// the Ruby patch level).
func (v Version) Patch() int { return v.patch }

// Tag returns the pre-release tag such as "rc2" or "preview1", or "".
func (v Version) Tag() string { return v.tag }

// IsPrerelease reports whether the version carries a pre-release tag.
func (v Version) IsPrerelease() bool { return v.tag != "" }

// HasPatchLevel reports whether the version ends in "-pN".
func (v Version) HasPatchLevel() bool { return v.patchLevel >= 0 }

// PatchLevel returns N of a trailing "-pN", or -1.
func (v Version) PatchLevel() int { return v.patchLevel }

// Compare returns -1, 0 or +1 depending on whether v orders before, equal to
// or after other. Distinct strings may compare equal ("2.0.0" and "2.0.0.0").
func (v Version) Compare(other Version) int {
	n := max(len(v.segments), len(other.segments))
	for i := range n {
		if c := compareSegment(v.segmentAt(i), other.segmentAt(i)); c != 0 {
			return c
		}
	}
	return 0
}

// LessThan reports whether v orders before other.
func (v Version) LessThan(other Version) bool { return v.Compare(other) < 0 }

// GreaterThan reports whether v orders after other.
func (v Version) GreaterThan(other Version) bool { return v.Compare(other) > 0 }

// Equal reports whether v and other compare equal.
func (v Version) Equal(other Version) bool { return v.Compare(other) == 0 }

func (v Version) segmentAt(i int) segment {
	if i < len(v.segments) {
		return v.segments[i]
	}
	return segment{isNum: true}
}

func compareSegment(a, b segment) int {
	switch {
	case a.isNum && b.isNum:
		return intCompare(a.num, b.num)
	case a.isNum:
		return 1 // letters sort below numbers
	case b.isNum:
		return -1
	default:
		return strings.Compare(a.str, b.str)
	}
}

func intCompare(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Compare parses a and b and compares them.
func Compare(a, b string) (int, error) {
	va, err := Parse(a)
	if err != nil {
		return 0, err
	}
	vb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return va.Compare(vb), nil
}
