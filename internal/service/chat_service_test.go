package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"hiper-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordedLookup struct {
	keywords []string
	outcome  models.LookupOutcome
}

type fakeRecorder struct {
	mu      sync.Mutex
	records []recordedLookup
	err     error
}

func (f *fakeRecorder) Record(_ context.Context, keywords []string, outcome models.LookupOutcome, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, recordedLookup{keywords: keywords, outcome: outcome})
	return f.err
}

func newTestChatService(t *testing.T, recorder LookupRecorder) *ChatService {
	t.Helper()
	return NewChatService(newTestResolver(t, jadlogKnowledgeBase()), recorder, zap.NewNop())
}

func TestChatService_Submit_StartsConversation(t *testing.T) {
	recorder := &fakeRecorder{}
	chat := newTestChatService(t, recorder)
	session := NewSession()

	reply, err := chat.Submit(context.Background(), session, "  Qual o prazo da Jadlog?  ")
	require.NoError(t, err)

	assert.Equal(t, "Qual o prazo da Jadlog?", reply.Conversation)
	assert.Equal(t, "5 dias úteis", reply.Answer)
	assert.Equal(t, []string{"prazo", "jadlog"}, reply.Keywords)
	assert.Equal(t, models.OutcomeResolved, reply.Outcome)

	conv, ok := session.Selected()
	require.True(t, ok)
	require.Len(t, conv.Turns, 2)
	assert.Equal(t, models.RoleUser, conv.Turns[0].Role)
	assert.Equal(t, "Qual o prazo da Jadlog?", conv.Turns[0].Content)
	assert.Equal(t, models.RoleAssistant, conv.Turns[1].Role)
	assert.Equal(t, "5 dias úteis", conv.Turns[1].Content)

	require.Len(t, recorder.records, 1)
	assert.Equal(t, models.OutcomeResolved, recorder.records[0].outcome)
}

func TestChatService_Submit_AppendsToSelected(t *testing.T) {
	chat := newTestChatService(t, nil)
	session := NewSession()

	_, err := chat.Submit(context.Background(), session, "prazo jadlog")
	require.NoError(t, err)
	reply, err := chat.Submit(context.Background(), session, "bom dia")
	require.NoError(t, err)

	assert.Equal(t, "prazo jadlog", reply.Conversation)
	assert.Equal(t, DefaultMessage, reply.Answer)
	assert.Equal(t, models.OutcomeNotFound, reply.Outcome)

	summaries := session.Conversations()
	require.Len(t, summaries, 1)
	assert.Equal(t, 4, summaries[0].Turns)
}

func TestChatService_Submit_NewConversationNames(t *testing.T) {
	chat := newTestChatService(t, nil)
	session := NewSession()

	long := strings.Repeat("a", 60) + " prazo"
	reply, err := chat.Submit(context.Background(), session, long)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 50), reply.Conversation)

	session.StartNew()
	reply, err = chat.Submit(context.Background(), session, long)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 50)+" (2)", reply.Conversation)

	session.StartNew()
	reply, err = chat.Submit(context.Background(), session, long)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 50)+" (3)", reply.Conversation)

	names := make([]string, 0, 3)
	for _, summary := range session.Conversations() {
		names = append(names, summary.Name)
	}
	assert.Equal(t, []string{
		strings.Repeat("a", 50),
		strings.Repeat("a", 50) + " (2)",
		strings.Repeat("a", 50) + " (3)",
	}, names)
}

func TestChatService_Submit_Validation(t *testing.T) {
	chat := newTestChatService(t, nil)

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "Empty", input: "", wantErr: ErrEmptyMessage},
		{name: "Whitespace", input: " \n\t ", wantErr: ErrEmptyMessage},
		{name: "Too long", input: strings.Repeat("é", MaxInputRunes+1), wantErr: ErrInputTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := NewSession()
			_, err := chat.Submit(context.Background(), session, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, session.Conversations())
		})
	}

	t.Run("Exactly the limit is accepted", func(t *testing.T) {
		_, err := chat.Submit(context.Background(), NewSession(), strings.Repeat("é", MaxInputRunes))
		assert.NoError(t, err)
	})
}

func TestChatService_Submit_RecorderErrorIsLogged(t *testing.T) {
	recorder := &fakeRecorder{err: errors.New("database down")}
	chat := newTestChatService(t, recorder)

	reply, err := chat.Submit(context.Background(), NewSession(), "prazo jadlog")
	require.NoError(t, err)
	assert.Equal(t, "5 dias úteis", reply.Answer)
	assert.Len(t, recorder.records, 1)
}
