package report

import "testing"

func TestMaterialColor(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"PET", "#ef4444"},
		{"  Alumínio  ", "#facc15"},
		{"papelao", "#3b82f6"},
		{"Vidro Verde", "#15803d"},
		{"isopor", FallbackColor},
		{"", FallbackColor},
	}

	for _, c := range cases {
		if got := MaterialColor(c.in); got != c.want {
			t.Fatalf("MaterialColor(%q) = %q; want %q", c.in, got, c.want)
		}
	}
}

func TestCategoriesDisplayOrder(t *testing.T) {
	want := []string{"Metal", "Vidro", "Papel/Papelão", "Plástico"}
	if len(Categories) != len(want) {
		t.Fatalf("got %d categories; want %d", len(Categories), len(want))
	}
	for i, label := range want {
		if Categories[i].Label != label {
			t.Fatalf("category %d = %q; want %q", i, Categories[i].Label, label)
		}
	}
}

func TestMatchesGoalNameHistoricalSpellings(t *testing.T) {
	paper := Categories[2]
	for _, name := range []string{"papel", "Papelão", "papelao", "PAPEL/PAPELÃO", "papel/papelao", "Papel/Papelão"} {
		if !paper.matchesGoalName(name) {
			t.Fatalf("expected paper category to match goal name %q", name)
		}
	}
	if paper.matchesGoalName("plástico") {
		t.Fatalf("paper category must not match a plastic goal")
	}

	metal := Categories[0]
	if !metal.matchesGoalName(" METAL ") {
		t.Fatalf("expected metal category to match padded upper-case name")
	}
	if metal.matchesGoalName("alumínio") {
		t.Fatalf("material aliases are not goal names")
	}
}

func TestNormalizeName(t *testing.T) {
	if normalizeName("  Vidro ") != "vidro" {
		t.Fatalf("expected trimmed lower-case form")
	}
	if normalizeName("PET Cristal") != "pet cristal" {
		t.Fatalf("inner spacing must be preserved")
	}
}
