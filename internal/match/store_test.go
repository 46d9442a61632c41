package match

import "testing"

func TestLikePattern(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"wallet", "%wallet%"},
		{"100%", `%100\%%`},
		{"a_b", `%a\_b%`},
		{`back\slash`, `%back\\slash%`},
	}
	for _, tc := range cases {
		if got := likePattern(tc.in); got != tc.want {
			t.Errorf("likePattern(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
