// Package extract tokenizes utterances and identifies the principal
// action verb, the surrounding subject and object spans, and the people
// and locations the text references.
package extract

import (
	"sort"
	"strings"

	"github.com/dmarques-dev/assistente-go/internal/lexicon"
	"github.com/dmarques-dev/assistente-go/internal/sliceutil"
	"github.com/dmarques-dev/assistente-go/internal/stringutil"
)

// Structure is the grammatical skeleton of one utterance. People and
// Locations preserve first-occurrence order in the source text.
type Structure struct {
	PrincipalVerb string
	Subject       string
	Object        string
	People        []string
	Locations     []string
}

// HasVerb reports whether a principal verb was recognized.
func (s Structure) HasVerb() bool { return s.PrincipalVerb != "" }

// Extractor scans utterances against the lexicon tables.
type Extractor struct {
	lex *lexicon.Lexicon
}

// NewExtractor builds an Extractor over lex.
func NewExtractor(lex *lexicon.Lexicon) *Extractor {
	return &Extractor{lex: lex}
}

// Extract tokenizes utterance on whitespace after case-folding and
// fills in the Structure. The principal verb is the first token by text
// position that the lexicon recognizes, never the first hit of a table
// scan, so results are deterministic regardless of table order.
func (e *Extractor) Extract(utterance string) Structure {
	lowered := strings.ToLower(stringutil.NormalizeWhitespace(utterance))
	tokens := strings.Fields(stringutil.StripPunctuation(lowered))

	var s Structure
	verbIdx := -1
	for i, tok := range tokens {
		if e.lex.IsActionVerb(tok) {
			s.PrincipalVerb = tok
			verbIdx = i
			break
		}
	}

	switch {
	case verbIdx == 0:
		s.Subject = "eu"
		s.Object = strings.Join(tokens[1:], " ")
	case verbIdx > 0:
		s.Subject = strings.Join(tokens[:verbIdx], " ")
		s.Object = strings.Join(tokens[verbIdx+1:], " ")
	}

	s.People, s.Locations = e.scanEntities(lowered)
	return s
}

// entityMatch is one candidate substring hit in the folded text. exact
// is set when the entry's accented form occurs verbatim, which breaks
// ties between entries that fold to the same key (avô vs avó).
type entityMatch struct {
	entry    string
	isPerson bool
	start    int
	end      int
	exact    bool
}

// scanEntities finds person and location mentions in one pass over the
// text. Overlapping hits resolve to non-overlapping longest-match: all
// candidates are ordered by start offset with longer spans first, and a
// hit is dropped when it overlaps an already accepted span. Output
// order is first occurrence in the text.
func (e *Extractor) scanEntities(lowered string) (people, locations []string) {
	folded := stringutil.RemoveDiacritics(lowered)

	var matches []entityMatch
	collect := func(entries []string, isPerson bool) {
		for _, entry := range entries {
			key := stringutil.RemoveDiacritics(entry)
			exact := strings.Contains(lowered, entry)
			for from := 0; ; {
				idx := strings.Index(folded[from:], key)
				if idx < 0 {
					break
				}
				start := from + idx
				matches = append(matches, entityMatch{
					entry:    entry,
					isPerson: isPerson,
					start:    start,
					end:      start + len(key),
					exact:    exact,
				})
				from = start + len(key)
			}
		}
	}
	collect(e.lex.PersonEntries(), true)
	collect(e.lex.LocationEntries(), false)

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].start != matches[j].start {
			return matches[i].start < matches[j].start
		}
		if matches[i].end != matches[j].end {
			return matches[i].end > matches[j].end
		}
		return matches[i].exact && !matches[j].exact
	})

	lastEnd := 0
	for _, m := range matches {
		if m.start < lastEnd {
			continue
		}
		lastEnd = m.end
		if m.isPerson {
			people = append(people, m.entry)
		} else {
			locations = append(locations, m.entry)
		}
	}
	return sliceutil.Deduplicate(people), sliceutil.Deduplicate(locations)
}

// Products returns the shopping products mentioned in utterance in
// first-occurrence order, without duplicates.
func (e *Extractor) Products(utterance string) []string {
	folded := stringutil.Fold(utterance)

	type hit struct {
		entry string
		start int
	}
	var hits []hit
	for _, entry := range e.lex.ProductEntries() {
		key := stringutil.RemoveDiacritics(entry)
		if idx := strings.Index(folded, key); idx >= 0 {
			hits = append(hits, hit{entry: entry, start: idx})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].start < hits[j].start })

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.entry)
	}
	return out
}
