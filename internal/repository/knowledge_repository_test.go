package repository

import (
	"os"
	"path/filepath"
	"testing"

	"hiper-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleDocument = `{
  "transportadoras": [
    {"transportadora": {
      "nome": "JADLOG",
      "prazo_entrega": {"completions": "5 dias úteis"},
      "acareação": {"completions": "Abra a acareação no portal da Jadlog."},
      "comprovante": {"completions": ""}
    }},
    {"transportadora": {
      "nome": "CORREIOS",
      "zzz_prazo": {"completions": "Consulte o rastreio."},
      "aaa_prazo": {"completions": "Nunca deve vencer o zzz."}
    }}
  ],
  "sistemas": [
    {"sistema": {"Protheus": {
      "emitir nf": {"completions": "Menu Faturamento > Documento de Saída."},
      "baixar nf": {"completions": "Use a rotina de exportação XML."},
      "legado": "texto solto"
    }}}
  ]
}`

func TestParseKnowledgeBase_KeepsDocumentOrder(t *testing.T) {
	kb, err := ParseKnowledgeBase([]byte(sampleDocument))
	require.NoError(t, err)

	require.Len(t, kb.Carriers, 2)
	assert.Equal(t, "JADLOG", kb.Carriers[0].Name)
	assert.Equal(t, []models.Topic{
		{Key: "prazo_entrega", Answer: "5 dias úteis"},
		{Key: "acareação", Answer: "Abra a acareação no portal da Jadlog."},
		{Key: "comprovante", Answer: ""},
	}, kb.Carriers[0].Topics)

	// Reverse-alphabetical keys must come back as written.
	assert.Equal(t, "zzz_prazo", kb.Carriers[1].Topics[0].Key)
	assert.Equal(t, "aaa_prazo", kb.Carriers[1].Topics[1].Key)

	require.Len(t, kb.Systems, 1)
	assert.Equal(t, "Protheus", kb.Systems[0].Name)
	assert.Equal(t, []models.Topic{
		{Key: "emitir nf", Answer: "Menu Faturamento > Documento de Saída."},
		{Key: "baixar nf", Answer: "Use a rotina de exportação XML."},
		{Key: "legado", Answer: ""},
	}, kb.Systems[0].Topics)

	assert.Equal(t, 8, kb.TopicCount())
}

func TestParseKnowledgeBase_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		document string
	}{
		{name: "Malformed JSON", document: `{"transportadoras": [`},
		{name: "Missing carriers", document: `{"sistemas": []}`},
		{name: "Missing systems", document: `{"transportadoras": []}`},
		{name: "Carriers not an array", document: `{"transportadoras": {}, "sistemas": []}`},
		{name: "Carrier without name", document: `{"transportadoras": [{"transportadora": {"prazo": {"completions": "x"}}}], "sistemas": []}`},
		{name: "Carrier entry without object", document: `{"transportadoras": [{"nome": "JADLOG"}], "sistemas": []}`},
		{name: "System entry without object", document: `{"transportadoras": [], "sistemas": [{"Protheus": {}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseKnowledgeBase([]byte(tt.document))
			assert.ErrorIs(t, err, ErrInvalidKnowledgeBase)
		})
	}
}

func TestParseKnowledgeBase_EmptyCollections(t *testing.T) {
	kb, err := ParseKnowledgeBase([]byte(`{"transportadoras": [], "sistemas": []}`))
	require.NoError(t, err)
	assert.Empty(t, kb.Carriers)
	assert.Empty(t, kb.Systems)
}

func TestKnowledgeRepository_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db_process.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0o600))

	repo := NewKnowledgeRepository(path, zap.NewNop())

	first, err := repo.Load()
	require.NoError(t, err)

	// Later edits to the file are not picked up: the document is read once.
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

	second, err := repo.Load()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestKnowledgeRepository_LoadMissingFile(t *testing.T) {
	repo := NewKnowledgeRepository(filepath.Join(t.TempDir(), "missing.json"), zap.NewNop())

	_, err := repo.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
