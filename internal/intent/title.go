package intent

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmarques-dev/assistente-go/internal/extract"
	"github.com/dmarques-dev/assistente-go/internal/lexicon"
)

// TitleGenerator composes the canonical appointment title from an
// extracted structure. The rules form a fixed precedence table keyed by
// verb class and entity availability; the first matching row wins.
type TitleGenerator struct {
	lex *lexicon.Lexicon
}

// NewTitleGenerator builds a TitleGenerator over lex.
func NewTitleGenerator(lex *lexicon.Lexicon) *TitleGenerator {
	return &TitleGenerator{lex: lex}
}

// Generate returns the title for s.
func (g *TitleGenerator) Generate(s extract.Structure) string {
	if !s.HasVerb() {
		return DefaultTitle
	}

	switch g.lex.Class(s.PrincipalVerb) {
	case lexicon.ClassCall:
		if len(s.People) > 0 {
			return "Call " + s.People[0]
		}
		return "Call contact"
	case lexicon.ClassVisit:
		switch {
		case len(s.People) > 0 && len(s.Locations) > 0:
			return "Visit " + s.People[0] + " at " + s.Locations[0]
		case len(s.Locations) > 0:
			return "Visit " + s.Locations[0]
		case len(s.People) > 0:
			return "Visit " + s.People[0]
		default:
			return "Visit"
		}
	}

	title := titleCase(s.PrincipalVerb)
	if s.Object != "" {
		title += " " + s.Object
	}
	return strings.TrimSpace(title)
}

// A cases.Caser is stateful and not safe for concurrent use, so one is
// built per call.
func titleCase(s string) string {
	return cases.Title(language.Portuguese).String(s)
}
