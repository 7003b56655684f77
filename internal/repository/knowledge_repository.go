package repository

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"hiper-bot/internal/models"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

var ErrInvalidKnowledgeBase = errors.New("invalid knowledge base")

const (
	carriersKey    = "transportadoras"
	carrierKey     = "transportadora"
	carrierNameKey = "nome"
	systemsKey     = "sistemas"
	systemKey      = "sistema"
	answerKey      = "completions"
)

// KnowledgeRepository loads the knowledge document once and serves it read-only.
type KnowledgeRepository struct {
	path   string
	logger *zap.Logger

	mu sync.Mutex
	kb *models.KnowledgeBase
}

func NewKnowledgeRepository(path string, logger *zap.Logger) *KnowledgeRepository {
	return &KnowledgeRepository{
		path:   path,
		logger: logger,
	}
}

// Load parses the document on first call and returns the cached result afterwards.
func (r *KnowledgeRepository) Load() (*models.KnowledgeBase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.kb != nil {
		return r.kb, nil
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge base %s: %w", r.path, err)
	}

	kb, err := ParseKnowledgeBase(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse knowledge base %s: %w", r.path, err)
	}

	r.logger.Info("Knowledge base loaded",
		zap.String("path", r.path),
		zap.Int("carriers", len(kb.Carriers)),
		zap.Int("systems", len(kb.Systems)),
		zap.Int("topics", kb.TopicCount()),
	)

	r.kb = kb
	return kb, nil
}

// ParseKnowledgeBase decodes the knowledge document keeping object key order.
func ParseKnowledgeBase(data []byte) (*models.KnowledgeBase, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidKnowledgeBase)
	}

	root := gjson.ParseBytes(data)
	carriers := root.Get(carriersKey)
	if !carriers.IsArray() {
		return nil, fmt.Errorf("%w: %q must be an array", ErrInvalidKnowledgeBase, carriersKey)
	}
	systems := root.Get(systemsKey)
	if !systems.IsArray() {
		return nil, fmt.Errorf("%w: %q must be an array", ErrInvalidKnowledgeBase, systemsKey)
	}

	kb := &models.KnowledgeBase{}

	for i, entry := range carriers.Array() {
		carrier, err := parseCarrier(entry.Get(carrierKey))
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %v", ErrInvalidKnowledgeBase, carriersKey, i, err)
		}
		kb.Carriers = append(kb.Carriers, carrier)
	}

	for i, entry := range systems.Array() {
		group := entry.Get(systemKey)
		if !group.IsObject() {
			return nil, fmt.Errorf("%w: %s[%d]: missing %q object", ErrInvalidKnowledgeBase, systemsKey, i, systemKey)
		}
		group.ForEach(func(name, value gjson.Result) bool {
			kb.Systems = append(kb.Systems, models.System{
				Name:   name.String(),
				Topics: parseTopics(value, ""),
			})
			return true
		})
	}

	return kb, nil
}

func parseCarrier(obj gjson.Result) (models.Carrier, error) {
	if !obj.IsObject() {
		return models.Carrier{}, fmt.Errorf("missing %q object", carrierKey)
	}

	name := obj.Get(carrierNameKey)
	if name.Type != gjson.String || name.String() == "" {
		return models.Carrier{}, fmt.Errorf("missing %q", carrierNameKey)
	}

	return models.Carrier{
		Name:   name.String(),
		Topics: parseTopics(obj, carrierNameKey),
	}, nil
}

// parseTopics walks obj in document order. Values that are not objects with a
// string "completions" field become topics with an empty answer.
func parseTopics(obj gjson.Result, skip string) []models.Topic {
	if !obj.IsObject() {
		return nil
	}

	var topics []models.Topic
	obj.ForEach(func(key, value gjson.Result) bool {
		if key.String() == skip {
			return true
		}
		topic := models.Topic{Key: key.String()}
		if value.IsObject() {
			if answer := value.Get(answerKey); answer.Type == gjson.String {
				topic.Answer = answer.String()
			}
		}
		topics = append(topics, topic)
		return true
	})
	return topics
}
