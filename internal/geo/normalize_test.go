package geo

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Almería", "almeria"},
		{"Almeria", "almeria"},
		{"  MÁLAGA  ", "malaga"},
		{"Castelló", "castello"},
		{"A Coruña", "a coruna"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Fatalf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeAccentVariantsAgree(t *testing.T) {
	if Normalize("Almería") != Normalize("Almeria") {
		t.Fatalf("accent variants must normalize equal")
	}
	if Normalize("León") != Normalize("leon") {
		t.Fatalf("case+accent variants must normalize equal")
	}
}

func TestNormalizeSet(t *testing.T) {
	set := NormalizeSet([]string{"Madrid", "Almería", "", "  "})
	if len(set) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(set))
	}
	if !set["madrid"] || !set["almeria"] {
		t.Fatalf("unexpected set contents: %v", set)
	}
}
