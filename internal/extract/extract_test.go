package extract

import (
	"reflect"
	"testing"

	"github.com/dmarques-dev/assistente-go/internal/lexicon"
)

func newExtractor() *Extractor {
	return NewExtractor(lexicon.New())
}

func TestExtractVerbFirst(t *testing.T) {
	s := newExtractor().Extract("Telefonar ao pai às 10h")

	if s.PrincipalVerb != "telefonar" {
		t.Errorf("verb = %q, want telefonar", s.PrincipalVerb)
	}
	if s.Subject != "eu" {
		t.Errorf("subject = %q, want eu", s.Subject)
	}
	if s.Object != "ao pai às 10h" {
		t.Errorf("object = %q", s.Object)
	}
	if !reflect.DeepEqual(s.People, []string{"pai"}) {
		t.Errorf("people = %v, want [pai]", s.People)
	}
	if len(s.Locations) != 0 {
		t.Errorf("locations = %v, want none", s.Locations)
	}
}

func TestExtractVerbMidSentence(t *testing.T) {
	s := newExtractor().Extract("A mãe vai buscar os filhos na escola")

	if s.PrincipalVerb != "buscar" {
		t.Errorf("verb = %q, want buscar", s.PrincipalVerb)
	}
	if s.Subject != "a mãe vai" {
		t.Errorf("subject = %q", s.Subject)
	}
	if s.Object != "os filhos na escola" {
		t.Errorf("object = %q", s.Object)
	}
	if !reflect.DeepEqual(s.Locations, []string{"escola"}) {
		t.Errorf("locations = %v, want [escola]", s.Locations)
	}
}

func TestExtractVerbByTextPositionNotTableOrder(t *testing.T) {
	// "ver" sits late in the verb table but appears first in the text,
	// so it must win over "marcar".
	s := newExtractor().Extract("ver e depois marcar consulta")
	if s.PrincipalVerb != "ver" {
		t.Errorf("verb = %q, want ver", s.PrincipalVerb)
	}
}

func TestExtractNoVerb(t *testing.T) {
	s := newExtractor().Extract("blah blah")

	if s.HasVerb() {
		t.Errorf("unexpected verb %q", s.PrincipalVerb)
	}
	if s.Subject != "" || s.Object != "" {
		t.Errorf("subject/object should be empty, got %q / %q", s.Subject, s.Object)
	}
}

func TestEntitiesFirstOccurrenceOrder(t *testing.T) {
	s := newExtractor().Extract("Levar a avó ao hospital e depois o pai à escola")

	if !reflect.DeepEqual(s.People, []string{"avó", "pai"}) {
		t.Errorf("people = %v, want [avó pai]", s.People)
	}
	if !reflect.DeepEqual(s.Locations, []string{"hospital", "escola"}) {
		t.Errorf("locations = %v, want [hospital escola]", s.Locations)
	}
}

func TestEntitiesDeduplicated(t *testing.T) {
	s := newExtractor().Extract("pai fala com o pai na casa do pai")
	if !reflect.DeepEqual(s.People, []string{"pai"}) {
		t.Errorf("people = %v, want [pai]", s.People)
	}
}

func TestOverlappingSpansLongestMatchWins(t *testing.T) {
	// "professora" contains "professor"; the longer entry must be the
	// only hit for the span.
	s := newExtractor().Extract("encontrar a professora amanhã")
	if !reflect.DeepEqual(s.People, []string{"professora"}) {
		t.Errorf("people = %v, want [professora]", s.People)
	}
}

func TestEntitiesTolerateMissingAccents(t *testing.T) {
	s := newExtractor().Extract("levar a mae a farmacia")

	if !reflect.DeepEqual(s.People, []string{"mãe"}) {
		t.Errorf("people = %v, want [mãe]", s.People)
	}
	if !reflect.DeepEqual(s.Locations, []string{"farmácia"}) {
		t.Errorf("locations = %v, want [farmácia]", s.Locations)
	}
}

func TestProducts(t *testing.T) {
	got := newExtractor().Products("Preciso de pão, leite e café. E mais pão.")
	want := []string{"pão", "leite", "café"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("products = %v, want %v", got, want)
	}

	if got := newExtractor().Products("nada para comprar"); len(got) != 0 {
		t.Errorf("expected no products, got %v", got)
	}
}
