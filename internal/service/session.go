package service

import (
	"errors"
	"sync"
	"time"

	"hiper-bot/internal/models"

	"github.com/google/uuid"
)

var ErrConversationNotFound = errors.New("conversation not found")

// ConversationSummary is one sidebar entry.
type ConversationSummary struct {
	Name      string
	Turns     int
	UpdatedAt time.Time
}

// Session holds the conversations of one user, in sidebar order, and which one is
// selected. An empty selection means the next message starts a new conversation.
type Session struct {
	ID uuid.UUID

	mu            sync.Mutex
	conversations map[string]*models.Conversation
	order         []string
	selected      string
	lastActive    time.Time
	now           func() time.Time
}

func NewSession() *Session {
	return newSessionAt(time.Now)
}

func newSessionAt(now func() time.Time) *Session {
	return &Session{
		ID:            uuid.New(),
		conversations: make(map[string]*models.Conversation),
		lastActive:    now(),
		now:           now,
	}
}

// Conversations lists the summaries in creation order.
func (s *Session) Conversations() []ConversationSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summaries := make([]ConversationSummary, 0, len(s.order))
	for _, name := range s.order {
		conv := s.conversations[name]
		summaries = append(summaries, ConversationSummary{
			Name:      conv.Name,
			Turns:     len(conv.Turns),
			UpdatedAt: conv.UpdatedAt,
		})
	}
	return summaries
}

// Select resumes the named conversation and returns a copy of it.
func (s *Session) Select(name string) (models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[name]
	if !ok {
		return models.Conversation{}, ErrConversationNotFound
	}
	s.selected = name
	s.touch()
	return copyConversation(conv), nil
}

// StartNew clears the selection without creating anything yet.
func (s *Session) StartNew() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = ""
	s.touch()
}

// Selected returns a copy of the selected conversation, if any.
func (s *Session) Selected() (models.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[s.selected]
	if !ok {
		return models.Conversation{}, false
	}
	return copyConversation(conv), true
}

// SelectedName is empty when no conversation is selected.
func (s *Session) SelectedName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// LastActive is the time of the last operation on the session.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// appendExchange adds a user and assistant turn to the selected conversation,
// creating and selecting one named after title when nothing is selected.
func (s *Session) appendExchange(title, question, answer string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	conv, ok := s.conversations[s.selected]
	if !ok {
		name := uniqueName(title, func(candidate string) bool {
			_, taken := s.conversations[candidate]
			return taken
		})
		conv = &models.Conversation{
			ID:        uuid.New(),
			Name:      name,
			CreatedAt: now,
		}
		s.conversations[name] = conv
		s.order = append(s.order, name)
		s.selected = name
	}

	conv.Turns = append(conv.Turns,
		models.Turn{Role: models.RoleUser, Content: question, Timestamp: now},
		models.Turn{Role: models.RoleAssistant, Content: answer, Timestamp: now},
	)
	conv.UpdatedAt = now
	s.lastActive = now
	return conv.Name
}

func (s *Session) touch() {
	s.lastActive = s.now()
}

func copyConversation(conv *models.Conversation) models.Conversation {
	out := *conv
	out.Turns = append([]models.Turn(nil), conv.Turns...)
	return out
}
