package version

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in    string
		major int
		minor int
		patch int
		ok    bool
	}{
		{"1.2.3", 1, 2, 3, true},
		{"v2.0", 2, 0, 0, true},
		{"14", 14, 0, 0, true},
		{"1.4.0-beta.1", 1, 4, 0, true},
		{"3.1.2+build.9", 3, 1, 2, true},
		{" v0.9.17 ", 0, 9, 17, true},
		{"", 0, 0, 0, false},
		{"nightly", 0, 0, 0, false},
		{"unknown", 0, 0, 0, false},
	}
	for _, c := range cases {
		v, ok := Parse(c.in)
		if ok != c.ok {
			t.Fatalf("Parse(%q) ok=%v want %v", c.in, ok, c.ok)
		}
		if !ok {
			continue
		}
		if v.Major != c.major || v.Minor != c.minor || v.Patch != c.patch {
			t.Errorf("Parse(%q) = %d.%d.%d, want %d.%d.%d", c.in, v.Major, v.Minor, v.Patch, c.major, c.minor, c.patch)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		current   string
		available string
		want      Change
	}{
		{"1.0.0", "1.0.0", ChangeNone},
		{"1.0.0", "1.0.1", ChangePatch},
		{"1.0.0", "1.1.0", ChangeMinor},
		{"1.0.0", "2.0.0", ChangeMajor},
		{"1.9.9", "2.0.0", ChangeMajor},
		{"2.0.0", "1.0.0", ChangeMajor},
		// major dominates lower components
		{"1.2.3", "2.0.0", ChangeMajor},
		// suffixes must not affect the classification
		{"1.0.0-beta", "1.0.0", ChangeNone},
		{"1.0.0", "1.1.0-rc.1", ChangeMinor},
		// absent or unparsable sides classify as no change
		{"", "2.0.0", ChangeNone},
		{"1.0.0", "", ChangeNone},
		{"garbage", "1.0.0", ChangeNone},
	}
	for _, c := range cases {
		if got := Classify(c.current, c.available); got != c.want {
			t.Errorf("Classify(%q, %q) = %v, want %v", c.current, c.available, got, c.want)
		}
	}
}

func TestClassifySelfIsNone(t *testing.T) {
	for _, v := range []string{"0.0.1", "1.0.0", "10.20.30", "2.1.0-alpha"} {
		if got := Classify(v, v); got != ChangeNone {
			t.Errorf("Classify(%q, %q) = %v, want none", v, v, got)
		}
	}
}

func TestLess(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"1.1.0", "1.2.0", true},
		{"1.9.9", "2.0.0", true},
		{"1.0.0", "1.0.1", true},
		{"1.0.0", "1.0.0", false},
		{"1.0.1", "1.0.0", false},
		{"", "1.0.0", false},
	}
	for _, c := range cases {
		if got := Less(c.a, c.b); got != c.want {
			t.Errorf("Less(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestExtract(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"ripgrep 14.1.0 (rev abc123)", "14.1.0"},
		{"v0.8.2", "0.8.2"},
		{"fd 9.0.0\nmore text", "9.0.0"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Extract(c.in); got != c.want {
			t.Errorf("Extract(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
