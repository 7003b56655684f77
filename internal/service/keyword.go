package service

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// DefaultVocabulary lists the known terms in priority order.
var DefaultVocabulary = []string{
	"prazo",
	"acareação",
	"transportadora",
	"protheus",
	"nota fiscal",
	"cce",
	"cc",
	"cc-e",
	"baixar",
	"emitir nf",
	"baixar nf",
	"imprimir nf",
	"nf",
	"emitir",
	"gerar",
	"jadlog",
	"generoso",
	"solistica",
	"correios",
	"favorita",
	"comprovante de entrega",
	"comprovante",
}

type vocabularyTerm struct {
	word    string
	pattern *regexp2.Regexp
}

// KeywordExtractor finds vocabulary terms that appear as whole words.
// Word boundaries are Unicode-aware, so accented letters count as word characters.
type KeywordExtractor struct {
	terms []vocabularyTerm
}

func NewKeywordExtractor(vocabulary []string) (*KeywordExtractor, error) {
	terms := make([]vocabularyTerm, 0, len(vocabulary))
	for _, word := range vocabulary {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		pattern, err := regexp2.Compile(`\b`+regexp2.Escape(word)+`\b`, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("invalid vocabulary term %q: %w", word, err)
		}
		terms = append(terms, vocabularyTerm{word: word, pattern: pattern})
	}
	return &KeywordExtractor{terms: terms}, nil
}

// Extract returns the matched terms in vocabulary order, or nil.
func (e *KeywordExtractor) Extract(text string) []string {
	lowered := strings.ToLower(text)
	if strings.TrimSpace(lowered) == "" {
		return nil
	}

	var found []string
	for _, term := range e.terms {
		if ok, err := term.pattern.MatchString(lowered); err == nil && ok {
			found = append(found, term.word)
		}
	}
	return found
}

// Vocabulary returns the terms the extractor knows, in priority order.
func (e *KeywordExtractor) Vocabulary() []string {
	words := make([]string, len(e.terms))
	for i, term := range e.terms {
		words[i] = term.word
	}
	return words
}
