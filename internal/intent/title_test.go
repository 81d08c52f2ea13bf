package intent

import (
	"testing"

	"github.com/dmarques-dev/assistente-go/internal/extract"
	"github.com/dmarques-dev/assistente-go/internal/lexicon"
)

func TestGenerateTitle(t *testing.T) {
	g := NewTitleGenerator(lexicon.New())

	cases := []struct {
		name string
		in   extract.Structure
		want string
	}{
		{
			name: "call with person",
			in:   extract.Structure{PrincipalVerb: "telefonar", People: []string{"pai"}},
			want: "Call pai",
		},
		{
			name: "call synonym without person",
			in:   extract.Structure{PrincipalVerb: "ligar"},
			want: "Call contact",
		},
		{
			name: "call ignores locations",
			in:   extract.Structure{PrincipalVerb: "chamar", People: []string{"mãe"}, Locations: []string{"casa"}},
			want: "Call mãe",
		},
		{
			name: "visit person at location",
			in:   extract.Structure{PrincipalVerb: "visitar", People: []string{"pai"}, Locations: []string{"hospital"}},
			want: "Visit pai at hospital",
		},
		{
			name: "visit location only",
			in:   extract.Structure{PrincipalVerb: "visitar", Locations: []string{"escola"}},
			want: "Visit escola",
		},
		{
			name: "visit person only",
			in:   extract.Structure{PrincipalVerb: "visitar", People: []string{"avó"}},
			want: "Visit avó",
		},
		{
			name: "visit bare",
			in:   extract.Structure{PrincipalVerb: "visitar"},
			want: "Visit",
		},
		{
			name: "other verb with object",
			in:   extract.Structure{PrincipalVerb: "buscar", Object: "os filhos na escola"},
			want: "Buscar os filhos na escola",
		},
		{
			name: "other verb without object",
			in:   extract.Structure{PrincipalVerb: "marcar"},
			want: "Marcar",
		},
		{
			name: "no verb",
			in:   extract.Structure{},
			want: DefaultTitle,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.Generate(tc.in); got != tc.want {
				t.Errorf("Generate = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGenerateTitleUsesFirstPerson(t *testing.T) {
	g := NewTitleGenerator(lexicon.New())

	s := extract.Structure{PrincipalVerb: "telefonar", People: []string{"avó", "pai"}}
	if got := g.Generate(s); got != "Call avó" {
		t.Errorf("Generate = %q, want Call avó", got)
	}
}
