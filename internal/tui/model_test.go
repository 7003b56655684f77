package tui

import (
	"testing"
	"time"

	"hiper-bot/internal/models"
	"hiper-bot/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestChat(t *testing.T) *service.ChatService {
	t.Helper()
	kb := &models.KnowledgeBase{
		Carriers: []models.Carrier{
			{Name: "JADLOG", Topics: []models.Topic{{Key: "prazo_entrega", Answer: "5 dias úteis"}}},
		},
	}
	extractor, err := service.NewKeywordExtractor(service.DefaultVocabulary)
	require.NoError(t, err)
	resolver := service.NewResolverService(kb, extractor, "Protheus", zap.NewNop())
	return service.NewChatService(resolver, nil, zap.NewNop())
}

func newTestModel(t *testing.T, think, typing time.Duration) (*Model, *service.Session) {
	t.Helper()
	session := service.NewSession()
	m := New(Params{
		Chat:        newTestChat(t),
		Session:     session,
		Warnings:    []string{"COHERE_API_KEY ausente"},
		ThinkDelay:  think,
		TypingDelay: typing,
	})
	return m, session
}

// typeText sends each rune in text as a KeyRunes message.
func typeText(m *Model, text string) {
	for _, char := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{char}})
	}
}

func view(m *Model) string {
	return ansi.Strip(m.View())
}

func TestModel_InitialView(t *testing.T) {
	m, _ := newTestModel(t, 0, 0)

	out := view(m)
	assert.Contains(t, out, "Hiper Bot")
	assert.Contains(t, out, "COHERE_API_KEY ausente")
	assert.Contains(t, out, newConversationLabel)
	assert.Contains(t, out, welcomeMessage)
}

func TestModel_SubmitWithoutDelays(t *testing.T) {
	m, session := newTestModel(t, 0, 0)

	typeText(m, "Qual o prazo da Jadlog?")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	out := view(m)
	assert.Contains(t, out, "5 dias úteis")
	assert.Contains(t, out, "Você")
	assert.Contains(t, out, "Assistente")
	assert.Empty(t, m.input.Value())
	assert.Equal(t, "Qual o prazo da Jadlog?", session.SelectedName())
}

func TestModel_ThinkingThenTyping(t *testing.T) {
	m, _ := newTestModel(t, time.Second, 5*time.Millisecond)

	typeText(m, "bom dia")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.thinking)
	assert.Contains(t, view(m), "Pensando...")
	assert.NotContains(t, view(m), service.DefaultMessage)

	// Further submits are ignored while the answer is shown.
	typeText(m, "prazo")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	conv, ok := m.session.Selected()
	require.True(t, ok)
	assert.Len(t, conv.Turns, 2)

	_, cmd = m.Update(thinkDoneMsg{})
	require.NotNil(t, cmd)
	assert.True(t, m.typing)
	assert.NotContains(t, view(m), "Pensando...")

	m.Update(typeTickMsg{})
	m.Update(typeTickMsg{})
	assert.Equal(t, "De", string(m.reveal[:m.revealed]))

	for m.typing {
		m.Update(typeTickMsg{})
	}
	assert.Equal(t, []rune(service.DefaultMessage), m.reveal[:m.revealed])
	assert.Contains(t, view(m), "Desculpe")
}

func TestModel_EmptySubmitShowsError(t *testing.T) {
	m, session := newTestModel(t, 0, 0)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.ErrorIs(t, m.err, service.ErrEmptyMessage)
	assert.Contains(t, view(m), "Digite uma pergunta antes de enviar.")
	assert.Empty(t, session.Conversations())
}

func TestModel_InputIsLimited(t *testing.T) {
	m, _ := newTestModel(t, 0, 0)

	for i := 0; i < service.MaxInputRunes+20; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	}
	assert.Len(t, []rune(m.input.Value()), service.MaxInputRunes)
}

func TestModel_NewConversationAndResume(t *testing.T) {
	m, session := newTestModel(t, 0, 0)

	typeText(m, "prazo jadlog")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Empty(t, session.SelectedName())
	assert.Contains(t, view(m), welcomeMessage)

	typeText(m, "bom dia")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "bom dia", session.SelectedName())

	// The sidebar cursor starts on the selected conversation.
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusSidebar, m.focus)
	assert.Equal(t, 2, m.cursor)

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, focusInput, m.focus)
	assert.Equal(t, "prazo jadlog", session.SelectedName())
	assert.Contains(t, view(m), "5 dias úteis")

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, session.SelectedName())
}

func TestModel_EscReturnsToInput(t *testing.T) {
	m, _ := newTestModel(t, 0, 0)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusSidebar, m.focus)

	typeText(m, "x")
	assert.Empty(t, m.input.Value())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, focusInput, m.focus)
	typeText(m, "x")
	assert.Equal(t, "x", m.input.Value())
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t, 0, 0)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, view(m), "Até logo!")
}

func TestModel_WindowResize(t *testing.T) {
	m, _ := newTestModel(t, 0, 0)

	m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	assert.Equal(t, viewportWidth(140), m.viewport.Width)
	assert.Equal(t, 140-sidebarWidth-3*frameSize, m.viewport.Width)
	assert.Equal(t, 140, m.width)
}
