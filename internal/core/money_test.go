package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.23", "1.23", true},
		{"1,23", "1.23", true},
		{" 2.50 ", "2.5", true},
		{"1000", "1000", true},
		{"0.001", "0.001", true},
		{"0", "", false},
		{"-1", "", false},
		{"+1", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.out {
				t.Fatalf("%q: expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestParseFeePct(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"0", "0", true},
		{"10", "10", true},
		{"12,5", "12.5", true},
		{"100", "100", true},
		{"100.01", "", false},
		{"-1", "", false},
		{"pct", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseFeePct(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.out {
				t.Fatalf("%q: expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}
