package intent

import (
	"regexp"
	"strings"

	"github.com/dmarques-dev/assistente-go/internal/lexicon"
	"github.com/dmarques-dev/assistente-go/internal/stringutil"
)

// categoryRules is one category's ordered pattern group.
type categoryRules struct {
	category Category
	patterns []*regexp.Regexp
}

// Classifier assigns exactly one category per utterance. Categories are
// tried in fixed priority order and the first match wins, so text with
// both a scheduling verb and a product noun classifies as schedule.
// Patterns match against diacritic-folded lower-case text, which keeps
// word boundaries reliable for accented Portuguese.
type Classifier struct {
	rules []categoryRules
}

// NewClassifier builds the pattern groups. Product patterns are derived
// from the lexicon so the shopping category stays in sync with it.
func NewClassifier(lex *lexicon.Lexicon) *Classifier {
	products := make([]string, 0, len(lex.ProductEntries()))
	for _, p := range lex.ProductEntries() {
		products = append(products, regexp.QuoteMeta(stringutil.RemoveDiacritics(p)))
	}

	return &Classifier{rules: []categoryRules{
		{
			category: CategorySchedule,
			patterns: compile(
				`\b(telefonar|ligar|chamar|visitar|encontrar|buscar|apanhar|pegar|levar)\b`,
				`\b(marcar|agendar|marcacao)\b`,
				`\b(reuniao|compromisso|consulta)\b`,
			),
		},
		{
			category: CategoryShoppingList,
			patterns: compile(
				`\bminha lista\b`,
				`\b(lista|compras|comprar|comprei)\b`,
				`\bpreciso de\b`,
				`\bacabou\b`,
				`\b(`+strings.Join(products, "|")+`)\b`,
			),
		},
		{
			category: CategoryQuery,
			patterns: compile(
				`\bque tenho\b`,
				`\b(minha|ver) agenda\b`,
				`\bagenda de hoje\b`,
			),
		},
		{
			category: CategoryGreeting,
			patterns: compile(
				`\b(oi|ola)\b`,
				`\b(bom dia|boa tarde|boa noite)\b`,
			),
		},
	}}
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

// Classify returns the first category whose any pattern matches, or
// CategoryUnknown when nothing does.
func (c *Classifier) Classify(utterance string) Category {
	folded := stringutil.Fold(utterance)
	for _, group := range c.rules {
		for _, p := range group.patterns {
			if p.MatchString(folded) {
				return group.category
			}
		}
	}
	return CategoryUnknown
}
