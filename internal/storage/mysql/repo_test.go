package mysql

import "testing"

func TestClip(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"75008", 64, "75008"},
		{"75008 PARIS CEDEX 08", 5, "75008"},
		{"Île-de-France", 3, "Île"},
		{"", 3, ""},
	}
	for _, c := range cases {
		if got := clip(c.in, c.n); got != c.want {
			t.Fatalf("clip(%q, %d) = %q, want %q", c.in, c.n, got, c.want)
		}
	}
}
