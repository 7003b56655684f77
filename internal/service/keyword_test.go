package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordExtractor_Extract(t *testing.T) {
	extractor, err := NewKeywordExtractor(DefaultVocabulary)
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "Empty input", input: "", want: nil},
		{name: "Whitespace only", input: "   \t", want: nil},
		{name: "No keyword", input: "bom dia", want: nil},
		{name: "Case insensitive", input: "Qual o PRAZO da Jadlog?", want: []string{"prazo", "jadlog"}},
		{name: "Vocabulary order, not input order", input: "jadlog prazo", want: []string{"prazo", "jadlog"}},
		{name: "Accented keyword", input: "Como abrir uma Acareação?", want: []string{"acareação"}},
		{name: "Accented letter is a word character", input: "ãprazo", want: nil},
		{name: "Substring is not a whole word", input: "prazos longos", want: nil},
		{name: "Multi-word terms", input: "preciso baixar nf da nota fiscal", want: []string{"nota fiscal", "baixar", "baixar nf", "nf"}},
		{name: "Hyphenated term also yields its prefix", input: "emitir cc-e", want: []string{"cc", "cc-e", "emitir"}},
		{name: "Punctuation bounds words", input: "comprovante de entrega, correios!", want: []string{"correios", "comprovante de entrega", "comprovante"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractor.Extract(tt.input))
		})
	}
}

func TestKeywordExtractor_CustomVocabulary(t *testing.T) {
	extractor, err := NewKeywordExtractor([]string{" Coleta ", "", "rastreio"})
	require.NoError(t, err)

	assert.Equal(t, []string{"coleta", "rastreio"}, extractor.Vocabulary())
	assert.Equal(t, []string{"coleta"}, extractor.Extract("agendar Coleta"))
}

func TestKeywordExtractor_EscapesMetacharacters(t *testing.T) {
	extractor, err := NewKeywordExtractor([]string{"c.c"})
	require.NoError(t, err)

	assert.Nil(t, extractor.Extract("cxc"))
	assert.Equal(t, []string{"c.c"}, extractor.Extract("valor c.c hoje"))
}
