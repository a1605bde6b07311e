package pto

import "testing"

func TestNormalizeCode(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "already canonical", in: "SICK", want: "SICK"},
		{name: "lowercase", in: "sick", want: "SICK"},
		{name: "hyphenated", in: "Sick-Time", want: "SICK_TIME"},
		{name: "spaces and mixed case", in: "personal day", want: "PERSONAL_DAY"},
		{name: "run of separators", in: "sick -- time", want: "SICK_TIME"},
		{name: "trailing punctuation", in: "SICK!!", want: "SICK"},
		{name: "leading punctuation", in: "--vacation", want: "VACATION"},
		{name: "surrounding whitespace", in: "  sick  ", want: "SICK"},
		{name: "digits kept", in: "comp 2024", want: "COMP_2024"},
		{name: "nothing usable", in: "!!--  ", want: ""},
		{name: "empty", in: "", want: ""},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeCode(tc.in); got != tc.want {
				t.Fatalf("NormalizeCode(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeCodeIdempotent(t *testing.T) {
	inputs := []string{"Sick-Time", "personal day", "VACATION", "comp 2024"}
	for _, in := range inputs {
		once := NormalizeCode(in)
		if twice := NormalizeCode(once); twice != once {
			t.Fatalf("NormalizeCode not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
