package intent

import (
	"strings"
	"time"

	"github.com/dmarques-dev/assistente-go/internal/errors"
	"github.com/dmarques-dev/assistente-go/internal/extract"
	"github.com/dmarques-dev/assistente-go/internal/lexicon"
	"github.com/dmarques-dev/assistente-go/internal/temporal"
)

// Resolver is the single entry point of the language core. It is a
// pure, synchronous computation: the lexicon is its only shared state
// and is read-only, so any number of Resolve calls may run concurrently.
type Resolver struct {
	classifier *Classifier
	extractor  *extract.Extractor
	temporal   *temporal.Resolver
	titles     *TitleGenerator
}

// NewResolver wires the classifier, extractor, temporal resolver and
// title generator over one shared lexicon.
func NewResolver(lex *lexicon.Lexicon) *Resolver {
	return &Resolver{
		classifier: NewClassifier(lex),
		extractor:  extract.NewExtractor(lex),
		temporal:   temporal.NewResolver(lex),
		titles:     NewTitleGenerator(lex),
	}
}

// Resolve converts one utterance into a complete ScheduleIntent
// relative to now. Resolution itself never fails: every sub-resolution
// has a defined default, so even gibberish yields a well-formed result.
// The only error condition is a contract violation by the caller.
func (r *Resolver) Resolve(utterance string, now time.Time) (*ScheduleIntent, error) {
	if strings.TrimSpace(utterance) == "" {
		return nil, errors.NewValidationError("utterance", "must not be empty")
	}
	if now.IsZero() {
		return nil, errors.NewValidationError("now", "must be a valid reference time")
	}

	structure := r.extractor.Extract(utterance)
	return &ScheduleIntent{
		Category:  r.classifier.Classify(utterance),
		Title:     r.titles.Generate(structure),
		Temporal:  r.temporal.Resolve(utterance, now),
		Structure: structure,
	}, nil
}
