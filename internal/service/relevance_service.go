package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"hiper-bot/pkg/config"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

var (
	ErrMissingCredential = errors.New("COHERE_API_KEY is not configured")
	ErrMissingText       = errors.New("relevance response has no text field")
	ErrMalformedResponse = errors.New("relevance response is not valid JSON")
)

// StatusError is returned when the generate endpoint answers with a non-200 status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("relevance request failed with status %d: %s", e.Code, e.Body)
}

// Verdict is the outcome of a relevance check. Any failure is a negative verdict.
type Verdict struct {
	Relevant bool
	Err      error
}

type generateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// RelevanceService asks the Cohere generate endpoint whether an answer fits a question.
type RelevanceService struct {
	config     *config.CohereConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewRelevanceService(cfg *config.CohereConfig, logger *zap.Logger) *RelevanceService {
	return &RelevanceService{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Available reports whether a credential is configured.
func (s *RelevanceService) Available() bool {
	return strings.TrimSpace(s.config.APIKey) != ""
}

func buildRelevancePrompt(question, answer string) string {
	return fmt.Sprintf(
		"Pergunta do usuário: %s\nResposta sugerida: %s\n\nA resposta sugerida está relacionada com a pergunta? Responda apenas 'sim' ou 'não'.",
		question, answer,
	)
}

func (s *RelevanceService) Check(ctx context.Context, question, answer string) Verdict {
	relevant, err := s.check(ctx, question, answer)
	if err != nil {
		s.logger.Warn("Relevance check failed", zap.Error(err))
		return Verdict{Relevant: false, Err: err}
	}
	s.logger.Debug("Relevance check completed", zap.Bool("relevant", relevant))
	return Verdict{Relevant: relevant}
}

func (s *RelevanceService) check(ctx context.Context, question, answer string) (bool, error) {
	if !s.Available() {
		return false, ErrMissingCredential
	}

	jsonData, err := json.Marshal(generateRequest{
		Model:       s.config.Model,
		Prompt:      buildRelevancePrompt(question, answer),
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return false, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimRight(s.config.BaseURL, "/") + "/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return false, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	if !gjson.ValidBytes(body) {
		return false, ErrMalformedResponse
	}
	text := gjson.GetBytes(body, "text")
	if !text.Exists() || text.Type != gjson.String {
		return false, ErrMissingText
	}

	return strings.ToLower(strings.TrimSpace(text.String())) == "sim", nil
}
