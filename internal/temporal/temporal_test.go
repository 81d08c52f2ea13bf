package temporal

import (
	"fmt"
	"testing"
	"time"

	"github.com/dmarques-dev/assistente-go/internal/lexicon"
	"github.com/dmarques-dev/assistente-go/internal/stringutil"
)

// monday is 2024-03-04, a Monday.
var monday = time.Date(2024, 3, 4, 10, 30, 0, 0, time.UTC)

func newResolver() *Resolver {
	return NewResolver(lexicon.New())
}

func TestWeekdayResolvesToThisWeek(t *testing.T) {
	e := newResolver().Resolve("Reunião sexta 14h", monday)

	if got := e.FormatDate(); got != "08/03/2024" {
		t.Errorf("date = %s, want 08/03/2024", got)
	}
	if got := e.FormatTime(); got != "14:00" {
		t.Errorf("time = %s, want 14:00", got)
	}
}

func TestSameWeekdayResolvesToToday(t *testing.T) {
	e := newResolver().Resolve("consulta segunda", monday)
	if got := e.FormatDate(); got != "04/03/2024" {
		t.Errorf("date = %s, want today 04/03/2024", got)
	}
}

func TestWeekdayToleratesMissingAccents(t *testing.T) {
	e := newResolver().Resolve("jogo sabado", monday)
	if got := e.FormatDate(); got != "09/03/2024" {
		t.Errorf("date = %s, want 09/03/2024", got)
	}
}

func TestRelativeDayWords(t *testing.T) {
	cases := map[string]string{
		"consulta hoje":             "04/03/2024",
		"consulta amanhã":           "05/03/2024",
		"consulta amanha":           "05/03/2024",
		"consulta depois de amanhã": "06/03/2024",
	}
	for in, want := range cases {
		if got := newResolver().Resolve(in, monday).FormatDate(); got != want {
			t.Errorf("Resolve(%q) date = %s, want %s", in, got, want)
		}
	}
}

func TestNumericDate(t *testing.T) {
	e := newResolver().Resolve("consulta dia 25/12", monday)
	if got := e.FormatDate(); got != "25/12/2024" {
		t.Errorf("date = %s, want 25/12/2024", got)
	}

	e = newResolver().Resolve("consulta dia 5-6", monday)
	if got := e.FormatDate(); got != "05/06/2024" {
		t.Errorf("date = %s, want 05/06/2024", got)
	}
}

func TestInvalidNumericDateFallsBack(t *testing.T) {
	e := newResolver().Resolve("consulta dia 31/2", monday)
	if got := e.FormatDate(); got != "04/03/2024" {
		t.Errorf("date = %s, want today", got)
	}
}

func TestLiteralTimeIsNeverShifted(t *testing.T) {
	// Bare digits are trusted literally for every hour of the day.
	for hour := 0; hour < 24; hour++ {
		in := fmt.Sprintf("marcar às %dh30", hour)
		want := fmt.Sprintf("%02d:30", hour)
		if got := newResolver().Resolve(in, monday).FormatTime(); got != want {
			t.Errorf("Resolve(%q) time = %s, want %s", in, got, want)
		}
	}

	if got := newResolver().Resolve("marcar às 14h", monday).FormatTime(); got != "14:00" {
		t.Errorf("14h = %s, want 14:00", got)
	}
	if got := newResolver().Resolve("marcar às 2:00", monday).FormatTime(); got != "02:00" {
		t.Errorf("2:00 = %s, want 02:00", got)
	}
}

func TestAfternoonAndEveningShiftForward(t *testing.T) {
	for hour := 1; hour <= 11; hour++ {
		in := fmt.Sprintf("às %d da tarde", hour)
		want := fmt.Sprintf("%02d:00", hour+12)
		if got := newResolver().Resolve(in, monday).FormatTime(); got != want {
			t.Errorf("Resolve(%q) time = %s, want %s", in, got, want)
		}
	}

	e := newResolver().Resolve("Visitar o meu pai no hospital às 2:00 da tarde", monday)
	if got := e.FormatTime(); got != "14:00" {
		t.Errorf("time = %s, want 14:00", got)
	}
	if e.PeriodHint != lexicon.PeriodAfternoon {
		t.Errorf("hint = %v, want afternoon", e.PeriodHint)
	}

	if got := newResolver().Resolve("às 8 da noite", monday).FormatTime(); got != "20:00" {
		t.Errorf("8 da noite = %s, want 20:00", got)
	}
	// An hour already in 24-hour form is left alone.
	if got := newResolver().Resolve("às 14h da tarde", monday).FormatTime(); got != "14:00" {
		t.Errorf("14h da tarde = %s, want 14:00", got)
	}
}

func TestDawnShiftsBackward(t *testing.T) {
	for hour := 13; hour <= 23; hour++ {
		in := fmt.Sprintf("às %dh da madrugada", hour)
		want := fmt.Sprintf("%02d:00", hour-12)
		if got := newResolver().Resolve(in, monday).FormatTime(); got != want {
			t.Errorf("Resolve(%q) time = %s, want %s", in, got, want)
		}
	}
	if got := newResolver().Resolve("às 3 da madrugada", monday).FormatTime(); got != "03:00" {
		t.Errorf("3 da madrugada = %s, want 03:00", got)
	}
}

func TestMorningDoesNotShift(t *testing.T) {
	if got := newResolver().Resolve("às 9 da manhã", monday).FormatTime(); got != "09:00" {
		t.Errorf("9 da manhã = %s, want 09:00", got)
	}
}

func TestNoonAndMidnight(t *testing.T) {
	if got := newResolver().Resolve("almoço ao meio-dia", monday).FormatTime(); got != "12:00" {
		t.Errorf("meio-dia = %s, want 12:00", got)
	}
	if got := newResolver().Resolve("chegar à meia noite", monday).FormatTime(); got != "00:00" {
		t.Errorf("meia noite = %s, want 00:00", got)
	}
}

func TestDefaults(t *testing.T) {
	e := newResolver().Resolve("blah blah", monday)

	if got := e.FormatDate(); got != "04/03/2024" {
		t.Errorf("date = %s, want today", got)
	}
	if got := e.FormatTime(); got != "09:00" {
		t.Errorf("time = %s, want 09:00", got)
	}
	if e.PeriodHint != "" {
		t.Errorf("hint = %v, want none", e.PeriodHint)
	}
}

func TestAt(t *testing.T) {
	e := newResolver().Resolve("Reunião sexta 14h", monday)
	want := time.Date(2024, 3, 8, 14, 0, 0, 0, time.UTC)
	if !e.At().Equal(want) {
		t.Errorf("At() = %v, want %v", e.At(), want)
	}
}

func TestPeriodPatternsCoverLexiconEntries(t *testing.T) {
	r := newResolver()

	// Every period word in the lexicon must be matchable, accented or not.
	cases := map[string]string{
		"às 9 da manhã":     "09:00",
		"às 4 da tarde":     "16:00",
		"às 8 da noite":     "20:00",
		"às 2 da madrugada": "02:00",
	}
	for in, want := range cases {
		if got := r.Resolve(in, monday).FormatTime(); got != want {
			t.Errorf("Resolve(%q) time = %s, want %s", in, got, want)
		}
	}

	for _, name := range lexicon.New().PeriodEntries() {
		if !r.periodWordRe.MatchString(stringutil.Fold(name)) {
			t.Errorf("period word %q not covered by resolver pattern", name)
		}
	}
}
