package lexicon

import "testing"

func TestActionVerbs(t *testing.T) {
	l := New()

	for _, verb := range []string{"telefonar", "Ligar", "VISITAR", "buscar", "marcação", "marcacao"} {
		if !l.IsActionVerb(verb) {
			t.Errorf("expected %q to be an action verb", verb)
		}
	}
	if l.IsActionVerb("dormir") {
		t.Error("dormir should not be an action verb")
	}

	if got := l.CanonicalPhrase("apanhar"); got != "buscar" {
		t.Errorf("CanonicalPhrase(apanhar) = %q, want buscar", got)
	}
	if got := l.CanonicalPhrase("agendar"); got != "marcar" {
		t.Errorf("CanonicalPhrase(agendar) = %q, want marcar", got)
	}
	if got := l.CanonicalPhrase("inexistente"); got != "" {
		t.Errorf("unrecognized verb should map to empty, got %q", got)
	}
}

func TestVerbClasses(t *testing.T) {
	l := New()

	for _, verb := range []string{"telefonar", "ligar", "chamar", "call"} {
		if got := l.Class(verb); got != ClassCall {
			t.Errorf("Class(%q) = %v, want ClassCall", verb, got)
		}
	}
	if got := l.Class("visitar"); got != ClassVisit {
		t.Errorf("Class(visitar) = %v, want ClassVisit", got)
	}
	if got := l.Class("comprar"); got != ClassOther {
		t.Errorf("Class(comprar) = %v, want ClassOther", got)
	}
}

func TestEntityLookupsTolerateDiacritics(t *testing.T) {
	l := New()

	if !l.IsPerson("pai") || !l.IsPerson("mãe") || !l.IsPerson("mae") {
		t.Error("person lookups should accept accented and unaccented forms")
	}
	if !l.IsLocation("hospital") || !l.IsLocation("farmácia") || !l.IsLocation("farmacia") {
		t.Error("location lookups should accept accented and unaccented forms")
	}
	if !l.IsProduct("pão") || !l.IsProduct("pao") || !l.IsProduct("café") {
		t.Error("product lookups should accept accented and unaccented forms")
	}
	if l.IsPerson("hospital") || l.IsLocation("pai") {
		t.Error("entity tables must not overlap")
	}
}

func TestWeekdayOrdinals(t *testing.T) {
	l := New()

	want := map[string]int{
		"segunda": 0, "terça": 1, "terca": 1, "quarta": 2, "quinta": 3,
		"sexta": 4, "sábado": 5, "sabado": 5, "domingo": 6,
	}
	for name, ord := range want {
		got, ok := l.WeekdayOrdinal(name)
		if !ok || got != ord {
			t.Errorf("WeekdayOrdinal(%q) = %d,%v, want %d", name, got, ok, ord)
		}
	}
	if _, ok := l.WeekdayOrdinal("feriado"); ok {
		t.Error("feriado should not be a weekday")
	}
}

func TestPeriodRanges(t *testing.T) {
	l := New()

	cases := map[string]PeriodRange{
		"manhã":     {Start: 6, End: 12},
		"manha":     {Start: 6, End: 12},
		"tarde":     {Start: 12, End: 18},
		"noite":     {Start: 18, End: 24},
		"madrugada": {Start: 0, End: 6},
	}
	for name, want := range cases {
		got, ok := l.PeriodRange(name)
		if !ok || got != want {
			t.Errorf("PeriodRange(%q) = %+v,%v, want %+v", name, got, ok, want)
		}
	}

	if p, ok := l.PeriodOf("tarde"); !ok || p != PeriodAfternoon {
		t.Errorf("PeriodOf(tarde) = %v,%v", p, ok)
	}
}

func TestEntryOrderIsStable(t *testing.T) {
	a := New().PersonEntries()
	b := New().PersonEntries()
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("unexpected entry counts: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("entry order differs at %d: %q vs %q", i, a[i], b[i])
		}
	}
}
