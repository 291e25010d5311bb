package utils

import "testing"

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{500, "500"},
		{1500, "1.500"},
		{150000, "150.000"},
		{1234567, "1.234.567"},
		{-2500, "-2.500"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.in); got != tc.want {
			t.Errorf("FormatAmount(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	for _, in := range []string{"150000", "150.000", "150,000", " 150 000 "} {
		got, err := ParseAmount(in)
		if err != nil {
			t.Errorf("ParseAmount(%q): %v", in, err)
			continue
		}
		if got != 150000 {
			t.Errorf("ParseAmount(%q) = %d", in, got)
		}
	}
	if _, err := ParseAmount("abc"); err == nil {
		t.Error("ParseAmount should reject non-numeric input")
	}
}

func TestValidClock(t *testing.T) {
	for _, ok := range []string{"00:00", "08:30", "23:59"} {
		if !ValidClock(ok) {
			t.Errorf("ValidClock(%q) = false", ok)
		}
	}
	for _, bad := range []string{"24:00", "8:3x", "morning", ""} {
		if ValidClock(bad) {
			t.Errorf("ValidClock(%q) = true", bad)
		}
	}
}

func TestNormalizeUsername(t *testing.T) {
	if got := NormalizeUsername("  Alice "); got != "alice" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeSpace(t *testing.T) {
	if got := NormalizeSpace("  Downtown   Express "); got != "Downtown Express" {
		t.Errorf("got %q", got)
	}
}
