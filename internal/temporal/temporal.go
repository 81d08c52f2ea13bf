// Package temporal resolves date and time mentions in informal
// Portuguese text. Resolution never fails: when no evidence is found
// the date defaults to the reference day and the time to 09:00.
package temporal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dmarques-dev/assistente-go/internal/lexicon"
	"github.com/dmarques-dev/assistente-go/internal/stringutil"
)

// DefaultHour and DefaultMinute apply when an utterance carries no
// recognizable time mention.
const (
	DefaultHour   = 9
	DefaultMinute = 0
)

// DateLayout and TimeLayout are the canonical render formats for
// resolved expressions.
const (
	DateLayout = "02/01/2006"
	TimeLayout = "15:04"
)

// Expression is a fully resolved date and time. Hour and Minute are
// always a valid 24-hour clock value.
type Expression struct {
	Date       time.Time
	Hour       int
	Minute     int
	PeriodHint lexicon.Period
}

// FormatDate renders the date as DD/MM/YYYY.
func (e Expression) FormatDate() string {
	return e.Date.Format(DateLayout)
}

// FormatTime renders the time as HH:MM in 24-hour notation.
func (e Expression) FormatTime() string {
	return fmt.Sprintf("%02d:%02d", e.Hour, e.Minute)
}

// At combines the resolved date and time into a single instant in the
// date's location.
func (e Expression) At() time.Time {
	return time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), e.Hour, e.Minute, 0, 0, e.Date.Location())
}

var (
	literalRe  = regexp.MustCompile(`\b(\d{1,2})[h:](\d{2})\b`)
	bareHourRe = regexp.MustCompile(`\b(\d{1,2})h\b`)
	noonRe     = regexp.MustCompile(`\bmeio[\s-]dia\b`)
	midnightRe = regexp.MustCompile(`\bmeia[\s-]noite\b`)
	numericRe  = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})\b`)
)

// Resolver turns raw text into resolved Expressions using the lexicon's
// weekday and period tables.
type Resolver struct {
	lex *lexicon.Lexicon

	// Built from the lexicon's period words so the tables stay the
	// single source of truth.
	periodTimeRe *regexp.Regexp
	periodWordRe *regexp.Regexp
}

// NewResolver builds a Resolver over lex.
func NewResolver(lex *lexicon.Lexicon) *Resolver {
	words := make([]string, 0, len(lex.PeriodEntries()))
	for _, name := range lex.PeriodEntries() {
		words = append(words, regexp.QuoteMeta(stringutil.Fold(name)))
	}
	alt := strings.Join(words, "|")

	return &Resolver{
		lex:          lex,
		periodTimeRe: regexp.MustCompile(`\b(\d{1,2})(?:[h:](\d{2}))?h?\s*(?:da|de)\s+(` + alt + `)\b`),
		periodWordRe: regexp.MustCompile(`\b(` + alt + `)\b`),
	}
}

// Resolve extracts the date and time mentioned in utterance relative to
// now. Date and time resolve independently; each falls back to its
// default when nothing matches.
func (r *Resolver) Resolve(utterance string, now time.Time) Expression {
	folded := stringutil.Fold(utterance)
	today := truncateToDay(now)

	expr := Expression{Date: r.resolveDate(folded, today)}
	expr.Hour, expr.Minute, expr.PeriodHint = r.resolveTime(folded)
	return expr
}

// resolveDate applies the date rules in fixed priority order. Weekday
// names win over relative day words, which win over numeric dates.
func (r *Resolver) resolveDate(folded string, today time.Time) time.Time {
	if d, ok := r.weekdayDate(folded, today); ok {
		return d
	}
	if strings.Contains(folded, "depois de amanha") {
		return today.AddDate(0, 0, 2)
	}
	if strings.Contains(folded, "amanha") {
		return today.AddDate(0, 0, 1)
	}
	if strings.Contains(folded, "hoje") {
		return today
	}
	if d, ok := numericDate(folded, today); ok {
		return d
	}
	return today
}

// weekdayDate finds the weekday name with the earliest occurrence in
// the text and resolves it to its next occurrence. The same weekday as
// today resolves to today, not next week.
func (r *Resolver) weekdayDate(folded string, today time.Time) (time.Time, bool) {
	bestIdx := -1
	bestOrd := 0
	for _, name := range r.lex.WeekdayEntries() {
		key := stringutil.RemoveDiacritics(name)
		idx := strings.Index(folded, key)
		if idx < 0 {
			continue
		}
		if bestIdx < 0 || idx < bestIdx {
			bestIdx = idx
			bestOrd, _ = r.lex.WeekdayOrdinal(name)
		}
	}
	if bestIdx < 0 {
		return time.Time{}, false
	}
	todayOrd := (int(today.Weekday()) + 6) % 7
	offset := (bestOrd - todayOrd + 7) % 7
	return today.AddDate(0, 0, offset), true
}

// numericDate reads the first valid D/M or D-M pattern as a date in the
// current year.
func numericDate(folded string, today time.Time) (time.Time, bool) {
	for _, m := range numericRe.FindAllStringSubmatch(folded, -1) {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if day < 1 || day > 31 || month < 1 || month > 12 {
			continue
		}
		d := time.Date(today.Year(), time.Month(month), day, 0, 0, 0, 0, today.Location())
		if d.Day() != day || d.Month() != time.Month(month) {
			continue
		}
		return d, true
	}
	return time.Time{}, false
}

// resolveTime applies the time rules in fixed priority order. A period
// word is the only signal that shifts a 12-hour colloquial statement;
// bare digits are trusted literally, so "14h" is 14:00 and never 02:00.
func (r *Resolver) resolveTime(folded string) (hour, minute int, hint lexicon.Period) {
	if m := r.periodWordRe.FindStringSubmatch(folded); m != nil {
		hint, _ = r.lex.PeriodOf(m[1])
	}

	if m := r.periodTimeRe.FindStringSubmatch(folded); m != nil {
		hour, _ = strconv.Atoi(m[1])
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		period, _ := r.lex.PeriodOf(m[3])
		switch period {
		case lexicon.PeriodAfternoon, lexicon.PeriodEvening:
			if hour < 12 {
				hour += 12
			}
		case lexicon.PeriodDawn:
			if hour > 12 {
				hour -= 12
			}
		}
		return hour % 24, clampMinute(minute), period
	}

	for _, m := range literalRe.FindAllStringSubmatch(folded, -1) {
		h, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		if min > 59 {
			continue
		}
		return h % 24, min, hint
	}

	if m := bareHourRe.FindStringSubmatch(folded); m != nil {
		h, _ := strconv.Atoi(m[1])
		return h % 24, 0, hint
	}

	if noonRe.MatchString(folded) {
		return 12, 0, hint
	}
	if midnightRe.MatchString(folded) {
		return 0, 0, hint
	}

	return DefaultHour, DefaultMinute, hint
}

func clampMinute(m int) int {
	if m < 0 || m > 59 {
		return 0
	}
	return m
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
