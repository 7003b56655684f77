package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"hiper-bot/internal/models"

	"go.uber.org/zap"
)

const (
	// MaxInputRunes is the longest accepted user message.
	MaxInputRunes = 100
	// conversationNameRunes is how much of the first message names a conversation.
	conversationNameRunes = 50
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrInputTooLong = errors.New("message exceeds 100 characters")
)

// LookupRecorder receives every resolution outcome.
type LookupRecorder interface {
	Record(ctx context.Context, keywords []string, outcome models.LookupOutcome, at time.Time) error
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, []string, models.LookupOutcome, time.Time) error {
	return nil
}

// NopRecorder discards outcomes. Used when analytics are disabled.
func NopRecorder() LookupRecorder {
	return nopRecorder{}
}

// Reply is the result of one submitted message.
type Reply struct {
	Conversation string
	Answer       string
	Keywords     []string
	Outcome      models.LookupOutcome
}

type ChatService struct {
	resolver *ResolverService
	recorder LookupRecorder
	logger   *zap.Logger
	now      func() time.Time
}

func NewChatService(resolver *ResolverService, recorder LookupRecorder, logger *zap.Logger) *ChatService {
	if recorder == nil {
		recorder = NopRecorder()
	}
	return &ChatService{
		resolver: resolver,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Submit answers input within session, starting a conversation when none is selected.
func (s *ChatService) Submit(ctx context.Context, session *Session, input string) (*Reply, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(input) > MaxInputRunes {
		return nil, ErrInputTooLong
	}

	res := s.resolver.Resolve(input)
	name := session.appendExchange(truncateRunes(input, conversationNameRunes), input, res.Answer)

	if err := s.recorder.Record(ctx, res.Keywords, res.Outcome, s.now()); err != nil {
		s.logger.Warn("Failed to record keyword lookup",
			zap.Error(err),
			zap.Strings("keywords", res.Keywords),
		)
	}

	s.logger.Info("Message answered",
		zap.String("session_id", session.ID.String()),
		zap.String("conversation", name),
		zap.String("outcome", string(res.Outcome)),
	)

	return &Reply{
		Conversation: name,
		Answer:       res.Answer,
		Keywords:     res.Keywords,
		Outcome:      res.Outcome,
	}, nil
}

// Resolve answers a one-off question outside any session.
func (s *ChatService) Resolve(input string) Resolution {
	return s.resolver.Resolve(input)
}
