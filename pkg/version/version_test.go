package version

import (
	"errors"
	"slices"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input     string
		wantMajor int
		wantMinor int
		wantPatch int
		wantTag   string
		wantLevel int
	}{
		{"3.2.0", 3, 2, 0, "", -1},
		{"2.1.0-p648", 2, 1, 0, "", 648},
		{"1.9.3-p0", 1, 9, 3, "", 0},
		{"2.0.0-rc2", 2, 0, 0, "rc2", -1},
		{"2.1.0-preview1", 2, 1, 0, "preview1", -1},
		{"1.9a", 1, 9, 0, "a", -1},
		{"1.8", 1, 8, 0, "", -1},
		{"1.8.5.113", 1, 8, 5, "", -1},
		{"10", 10, 0, 0, "", -1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if v.String() != tt.input {
				t.Errorf("String() = %q, want %q", v.String(), tt.input)
			}
			if v.Major() != tt.wantMajor {
				t.Errorf("Major() = %d, want %d", v.Major(), tt.wantMajor)
			}
			if v.Minor() != tt.wantMinor {
				t.Errorf("Minor() = %d, want %d", v.Minor(), tt.wantMinor)
			}
			if v.Patch() != tt.wantPatch {
				t.Errorf("Patch() = %d, want %d", v.Patch(), tt.wantPatch)
			}
			if v.Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", v.Tag(), tt.wantTag)
			}
			if v.PatchLevel() != tt.wantLevel {
				t.Errorf("PatchLevel() = %d, want %d", v.PatchLevel(), tt.wantLevel)
			}
			if v.HasPatchLevel() != (tt.wantLevel >= 0) {
				t.Errorf("HasPatchLevel() = %v", v.HasPatchLevel())
			}
			if v.IsPrerelease() != (tt.wantTag != "") {
				t.Errorf("IsPrerelease() = %v", v.IsPrerelease())
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, input := range []string{
		"",
		"abc",
		"-1.0",
		"1.0.",
		"1..0",
		"1.0.0_rc1",
		"1.0+build",
		"p648",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Fatalf("Parse(%q) expected error", input)
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalid", input, err)
			}
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid input")
		}
	}()
	MustParse("not-a-version")
}

func TestCompareRubyReleases(t *testing.T) {
	tests := []struct {
		greater, lesser string
	}{
		{"2.0.0-p0", "2.0.0-rc2"},
		{"2.0.0-p0", "1.9.3-p551"},
		{"2.1.0-rc1", "2.0.0-p648"},
		{"2.1.0-p648", "2.0.0-p247"},
		{"2.0.0", "2.0.0-rc2"},
		{"2.0.0-p0", "2.0.0-preview1"},
		{"2.0.0-rc1", "2.0.0-preview2"},
		{"1.8.7-p375", "1.8.7-p72"},
		{"1.9", "1.9a"},
		{"1.9a", "1.8"},
		{"2.6.10", "2.6.9"},
		{"3.0.0", "2.7.8"},
	}

	for _, tt := range tests {
		t.Run(tt.greater+">"+tt.lesser, func(t *testing.T) {
			g, l := MustParse(tt.greater), MustParse(tt.lesser)
			if !g.GreaterThan(l) {
				t.Errorf("%s should be greater than %s", tt.greater, tt.lesser)
			}
			if !l.LessThan(g) {
				t.Errorf("%s should be less than %s", tt.lesser, tt.greater)
			}
			if c := l.Compare(g); c != -1 {
				t.Errorf("Compare(%s, %s) = %d, want -1", tt.lesser, tt.greater, c)
			}
		})
	}
}

func TestCompareEqual(t *testing.T) {
	tests := [][2]string{
		{"2.0.0", "2.0.0"},
		{"2.0.0", "2.0.0.0"},
		{"2.0.0-p0", "2.0.0.0"},
		{"1.8", "1.8.0"},
	}
	for _, tt := range tests {
		c, err := Compare(tt[0], tt[1])
		if err != nil {
			t.Fatalf("Compare(%s, %s) error: %v", tt[0], tt[1], err)
		}
		if c != 0 {
			t.Errorf("Compare(%s, %s) = %d, want 0", tt[0], tt[1], c)
		}
	}
}

func TestCompareInvalid(t *testing.T) {
	if _, err := Compare("1.0", "bogus"); err == nil {
		t.Error("expected error for invalid right operand")
	}
	if _, err := Compare("bogus", "1.0"); err == nil {
		t.Error("expected error for invalid left operand")
	}
}

var corpus = []string{
	"1.8.5-p231", "1.8.6", "1.8.6-p0", "1.8.6-p420", "1.8.7-preview1",
	"1.8.7-rc1", "1.8.7", "1.8.7-p72", "1.8.7-p375", "1.9.0-0", "1.9.1-preview1",
	"1.9.1-rc2", "1.9.1-p0", "1.9.2-p0", "1.9.3-p551", "1.9a", "2.0.0-preview1",
	"2.0.0-rc1", "2.0.0-rc2", "2.0.0-p0", "2.0.0-p247", "2.0.0-p648", "2.1.0-rc1",
	"2.1.0", "2.1.10", "2.2.0-preview2", "2.6.0", "3.0.0-preview1", "3.2.0",
}

func TestCompareIsStrictOrder(t *testing.T) {
	vs := make([]Version, len(corpus))
	for i, s := range corpus {
		vs[i] = MustParse(s)
	}

	for _, a := range vs {
		if a.Compare(a) != 0 {
			t.Errorf("%s compared with itself should be 0", a)
		}
		for _, b := range vs {
			if a.Compare(b) != -b.Compare(a) {
				t.Errorf("antisymmetry violated for %s, %s", a, b)
			}
			for _, c := range vs {
				if a.LessThan(b) && b.LessThan(c) && !a.LessThan(c) {
					t.Errorf("transitivity violated: %s < %s < %s", a, b, c)
				}
			}
		}
	}
}

func TestSortDescending(t *testing.T) {
	got := []string{"2.0.0-p247", "2.0.0-rc2", "2.0.0-p648", "2.0.0-p0", "2.0.0-preview1"}
	if err := SortDescending(got); err != nil {
		t.Fatalf("SortDescending() error: %v", err)
	}
	want := []string{"2.0.0-p648", "2.0.0-p247", "2.0.0-p0", "2.0.0-rc2", "2.0.0-preview1"}
	if !slices.Equal(got, want) {
		t.Errorf("SortDescending() = %v, want %v", got, want)
	}
}

func TestSortAscending(t *testing.T) {
	got := []string{"1.9.3-p551", "1.8.7-p375", "2.0.0", "2.0.0.0", "1.8.7"}
	if err := SortAscending(got); err != nil {
		t.Fatalf("SortAscending() error: %v", err)
	}
	want := []string{"1.8.7", "1.8.7-p375", "1.9.3-p551", "2.0.0", "2.0.0.0"}
	if !slices.Equal(got, want) {
		t.Errorf("SortAscending() = %v, want %v", got, want)
	}
}

func TestSortRejectsInvalid(t *testing.T) {
	in := []string{"2.0.0", "garbage", "1.0"}
	orig := slices.Clone(in)
	if err := SortDescending(in); err == nil {
		t.Fatal("expected error for unparsable entry")
	}
	if !slices.Equal(in, orig) {
		t.Errorf("input modified on error: %v", in)
	}
}

func TestSortVersions(t *testing.T) {
	vs := []Version{MustParse("1.9.3-p0"), MustParse("2.1.0-rc1"), MustParse("2.0.0-p648")}
	Sort(vs, true)
	got := []string{vs[0].String(), vs[1].String(), vs[2].String()}
	want := []string{"2.1.0-rc1", "2.0.0-p648", "1.9.3-p0"}
	if !slices.Equal(got, want) {
		t.Errorf("Sort(desc) = %v, want %v", got, want)
	}
}
