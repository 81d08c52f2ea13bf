// Package lexicon holds the static vocabulary tables used to interpret
// informal Portuguese utterances. A Lexicon is built once at startup and
// is safe for concurrent readers; it is never mutated afterward.
package lexicon

import (
	"strings"

	"github.com/dmarques-dev/assistente-go/internal/stringutil"
)

// VerbClass groups action verbs that share a title template.
type VerbClass int

const (
	ClassOther VerbClass = iota
	ClassCall
	ClassVisit
)

// Period is a coarse time-of-day qualifier used to disambiguate
// 12-hour clock mentions.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening"
	PeriodDawn      Period = "dawn"
)

// PeriodRange is the hour span a period word covers, [Start, End).
type PeriodRange struct {
	Start int
	End   int
}

// Lexicon exposes read-only lookups over the vocabulary tables. All
// lookups are case-insensitive and tolerate missing diacritics, since
// real user input mixes "sábado" and "sabado" freely.
type Lexicon struct {
	verbs       map[string]string
	verbClasses map[string]VerbClass
	people      map[string]string
	locations   map[string]string
	products    map[string]string
	weekdays    map[string]int
	periods     map[string]Period
	periodSpans map[Period]PeriodRange

	peopleEntries   []string
	locationEntries []string
	productEntries  []string
	weekdayEntries  []string
	periodEntries   []string
}

// New builds the vocabulary tables.
func New() *Lexicon {
	l := &Lexicon{
		verbs:       make(map[string]string),
		verbClasses: make(map[string]VerbClass),
		people:      make(map[string]string),
		locations:   make(map[string]string),
		products:    make(map[string]string),
		weekdays:    make(map[string]int),
		periods:     make(map[string]Period),
		periodSpans: map[Period]PeriodRange{
			PeriodMorning:   {Start: 6, End: 12},
			PeriodAfternoon: {Start: 12, End: 18},
			PeriodEvening:   {Start: 18, End: 24},
			PeriodDawn:      {Start: 0, End: 6},
		},
	}

	l.addVerb("telefonar", "telefonar", ClassCall)
	l.addVerb("ligar", "telefonar", ClassCall)
	l.addVerb("chamar", "telefonar", ClassCall)
	l.addVerb("call", "telefonar", ClassCall)
	l.addVerb("visitar", "visitar", ClassVisit)
	l.addVerb("encontrar", "encontrar", ClassOther)
	l.addVerb("ver", "ver", ClassOther)
	l.addVerb("buscar", "buscar", ClassOther)
	l.addVerb("apanhar", "buscar", ClassOther)
	l.addVerb("pegar", "buscar", ClassOther)
	l.addVerb("levar", "levar", ClassOther)
	l.addVerb("comprar", "comprar", ClassOther)
	l.addVerb("marcar", "marcar", ClassOther)
	l.addVerb("agendar", "marcar", ClassOther)
	l.addVerb("marcação", "marcar", ClassOther)

	for _, p := range []string{
		"pai", "mãe", "filho", "filha", "filhos", "avô", "avó",
		"irmão", "irmã", "tio", "tia", "primo", "prima",
		"amigo", "amiga", "médico", "dentista", "chefe",
		"professor", "professora",
	} {
		l.addEntity(l.people, &l.peopleEntries, p)
	}

	for _, loc := range []string{
		"escola", "creche", "hospital", "supermercado", "mercado",
		"trabalho", "casa", "farmácia", "clínica", "consultório",
		"escritório", "aeroporto", "ginásio", "igreja",
	} {
		l.addEntity(l.locations, &l.locationEntries, loc)
	}

	for _, prod := range []string{
		"leite", "pão", "arroz", "feijão", "café", "açúcar", "óleo", "sal",
		"carne", "frango", "peixe", "ovos", "queijo", "manteiga", "iogurte",
		"alface", "tomate", "cebola", "batata", "cenoura", "frutas",
	} {
		l.addEntity(l.products, &l.productEntries, prod)
	}

	for name, ord := range map[string]int{
		"segunda": 0, "terça": 1, "quarta": 2, "quinta": 3,
		"sexta": 4, "sábado": 5, "domingo": 6,
	} {
		l.weekdays[foldKey(name)] = ord
	}
	l.weekdayEntries = []string{"segunda", "terça", "quarta", "quinta", "sexta", "sábado", "domingo"}

	for name, p := range map[string]Period{
		"manhã":     PeriodMorning,
		"tarde":     PeriodAfternoon,
		"noite":     PeriodEvening,
		"madrugada": PeriodDawn,
	} {
		l.periods[foldKey(name)] = p
	}
	l.periodEntries = []string{"manhã", "tarde", "noite", "madrugada"}

	return l
}

// foldKey normalizes a token to the internal lookup form.
func foldKey(s string) string {
	return stringutil.Fold(strings.TrimSpace(s))
}

func (l *Lexicon) addVerb(verb, canonical string, class VerbClass) {
	key := foldKey(verb)
	l.verbs[key] = canonical
	l.verbClasses[key] = class
}

func (l *Lexicon) addEntity(table map[string]string, entries *[]string, canonical string) {
	table[foldKey(canonical)] = canonical
	*entries = append(*entries, canonical)
}

// IsActionVerb reports whether token is a recognized action verb.
func (l *Lexicon) IsActionVerb(token string) bool {
	_, ok := l.verbs[foldKey(token)]
	return ok
}

// CanonicalPhrase returns the canonical form of an action verb, or the
// empty string when the token is not recognized.
func (l *Lexicon) CanonicalPhrase(verb string) string {
	return l.verbs[foldKey(verb)]
}

// Class returns the title-template class for a verb. Unrecognized
// tokens fall into ClassOther.
func (l *Lexicon) Class(verb string) VerbClass {
	return l.verbClasses[foldKey(verb)]
}

// IsPerson reports whether token names a known person noun.
func (l *Lexicon) IsPerson(token string) bool {
	_, ok := l.people[foldKey(token)]
	return ok
}

// IsLocation reports whether token names a known location noun.
func (l *Lexicon) IsLocation(token string) bool {
	_, ok := l.locations[foldKey(token)]
	return ok
}

// IsProduct reports whether token names a known shopping product.
func (l *Lexicon) IsProduct(token string) bool {
	_, ok := l.products[foldKey(token)]
	return ok
}

// WeekdayOrdinal resolves a weekday name to its ordinal, segunda being
// 0 and domingo 6.
func (l *Lexicon) WeekdayOrdinal(name string) (int, bool) {
	ord, ok := l.weekdays[foldKey(name)]
	return ord, ok
}

// PeriodOf resolves a period-of-day word.
func (l *Lexicon) PeriodOf(name string) (Period, bool) {
	p, ok := l.periods[foldKey(name)]
	return p, ok
}

// PeriodRange returns the hour span covered by a period word.
func (l *Lexicon) PeriodRange(name string) (PeriodRange, bool) {
	p, ok := l.periods[foldKey(name)]
	if !ok {
		return PeriodRange{}, false
	}
	return l.periodSpans[p], true
}

// PersonEntries returns the canonical person nouns in table order.
// Callers must not modify the returned slice.
func (l *Lexicon) PersonEntries() []string { return l.peopleEntries }

// LocationEntries returns the canonical location nouns in table order.
func (l *Lexicon) LocationEntries() []string { return l.locationEntries }

// ProductEntries returns the canonical product nouns in table order.
func (l *Lexicon) ProductEntries() []string { return l.productEntries }

// WeekdayEntries returns the weekday names ordered by ordinal.
func (l *Lexicon) WeekdayEntries() []string { return l.weekdayEntries }

// PeriodEntries returns the period-of-day words.
func (l *Lexicon) PeriodEntries() []string { return l.periodEntries }
