package geo

import "testing"

func TestFindInText(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Obras de reforma del CEIP San Fernando (Madrid)", "Madrid"},
		{"Rehabilitación de viviendas en ALMERÍA capital", "Almería"},
		{"Millora de la carretera C-12 a Lleida", "Lleida"},
		{"Mejora de la carretera en Lérida", "Lleida"},
		{"Obra civil en Castelló de la Plana", "Castellón"},
		{"Urbanización en Ciudad Real", "Ciudad Real"},
		{"Nothing geographic here", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := FindInText(c.text); got != c.want {
			t.Fatalf("FindInText(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}

func TestFindInTextFirstHitWins(t *testing.T) {
	// Madrid precedes Sevilla in the table, independent of text order.
	got := FindInText("Conexión ferroviaria Sevilla - Madrid")
	if got != "Madrid" {
		t.Fatalf("expected table order to decide the hit, got %q", got)
	}
}

func TestResolve(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"girona", "Girona"},
		{"Gerona", "Girona"},
		{"ALACANT", "Alicante"},
		{"Almería", "Almería"},
		{"Almeria", "Almería"},
		{"Gotham", "Gotham"},
	}
	for _, c := range cases {
		if got := Resolve(c.in); got != c.want {
			t.Fatalf("Resolve(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFromNUTS(t *testing.T) {
	if got := FromNUTS("ES300"); got != "Madrid" {
		t.Fatalf("FromNUTS(ES300) = %q", got)
	}
	if got := FromNUTS(" es611 "); got != "Almería" {
		t.Fatalf("FromNUTS(es611) = %q", got)
	}
	if got := FromNUTS("FR101"); got != "" {
		t.Fatalf("unknown code should resolve empty, got %q", got)
	}
}

func TestParentRegion(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Madrid", "Comunidad de Madrid"},
		{"Almería", "Andalucía"},
		{"Lérida", "Cataluña"},
		{"Gotham", ""},
	}
	for _, c := range cases {
		if got := ParentRegion(c.in); got != c.want {
			t.Fatalf("ParentRegion(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestGazetteerParentCoverage(t *testing.T) {
	for _, e := range gazetteer {
		if ParentRegion(e.canonical) == "" {
			t.Fatalf("gazetteer entry %q has no parent region", e.canonical)
		}
	}
}
