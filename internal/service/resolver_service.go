package service

import (
	"strings"

	"hiper-bot/internal/models"

	"go.uber.org/zap"
)

// DefaultMessage is returned when no keyword or no topic matches.
const DefaultMessage = "Desculpe, não tenho informações suficientes para responder a essa pergunta no momento."

// Resolution describes how an answer was found.
type Resolution struct {
	Answer   string
	Keywords []string
	Outcome  models.LookupOutcome
	Source   string
	TopicKey string
}

// ResolverService maps free text to a canned answer. Carriers named in the text
// are tried first, then the fallback system. Within one carrier or system every
// keyword is scanned and the last one reaching a non-empty answer wins.
type ResolverService struct {
	kb             *models.KnowledgeBase
	extractor      *KeywordExtractor
	fallbackSystem string
	logger         *zap.Logger
}

func NewResolverService(kb *models.KnowledgeBase, extractor *KeywordExtractor, fallbackSystem string, logger *zap.Logger) *ResolverService {
	return &ResolverService{
		kb:             kb,
		extractor:      extractor,
		fallbackSystem: fallbackSystem,
		logger:         logger,
	}
}

// Answer returns only the answer text of Resolve.
func (s *ResolverService) Answer(text string) string {
	return s.Resolve(text).Answer
}

func (s *ResolverService) Resolve(text string) Resolution {
	keywords := s.extractor.Extract(text)
	res := Resolution{
		Answer:   DefaultMessage,
		Keywords: keywords,
		Outcome:  models.OutcomeNotFound,
	}
	if len(keywords) == 0 {
		s.logger.Debug("No keywords found", zap.String("input", text))
		return res
	}

	upper := strings.ToUpper(text)
	for _, carrier := range s.kb.Carriers {
		if !strings.Contains(upper, strings.ToUpper(carrier.Name)) {
			continue
		}
		if topic, ok := scanTopics(carrier.Topics, keywords); ok {
			res.Answer = topic.Answer
			res.Outcome = models.OutcomeResolved
			res.Source = carrier.Name
			res.TopicKey = topic.Key
			s.logResolution(res)
			return res
		}
	}

	for _, system := range s.kb.Systems {
		if system.Name != s.fallbackSystem {
			continue
		}
		if topic, ok := scanTopics(system.Topics, keywords); ok {
			res.Answer = topic.Answer
			res.Outcome = models.OutcomeFallback
			res.Source = system.Name
			res.TopicKey = topic.Key
			s.logResolution(res)
			return res
		}
	}

	s.logResolution(res)
	return res
}

func (s *ResolverService) logResolution(res Resolution) {
	s.logger.Debug("Resolution completed",
		zap.Strings("keywords", res.Keywords),
		zap.String("outcome", string(res.Outcome)),
		zap.String("source", res.Source),
		zap.String("topic", res.TopicKey),
	)
}

// scanTopics walks the keywords in order and takes, per keyword, the first topic
// whose key contains it. A non-empty answer replaces the previous candidate; an
// empty one leaves it untouched.
func scanTopics(topics []models.Topic, keywords []string) (models.Topic, bool) {
	var (
		found models.Topic
		ok    bool
	)
	for _, keyword := range keywords {
		needle := strings.ToLower(keyword)
		for _, topic := range topics {
			if !strings.Contains(strings.ToLower(topic.Key), needle) {
				continue
			}
			if topic.Answer != "" {
				found, ok = topic, true
			}
			break
		}
	}
	return found, ok
}
