package handlers

import (
	"context"
	"time"

	"hiper-bot/internal/dto"
	"hiper-bot/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LookupLister reads keyword lookup counts.
type LookupLister interface {
	List(ctx context.Context, limit int) ([]models.KeywordLookup, error)
}

type StatsHandler struct {
	lookups LookupLister
	logger  *zap.Logger
}

// NewStatsHandler accepts a nil lister when analytics are disabled.
func NewStatsHandler(lookups LookupLister, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		lookups: lookups,
		logger:  logger,
	}
}

// ListLookups godoc
// @Summary Keyword lookup counts
// @Tags stats
// @Produce json
// @Param limit query int false "Max rows" default(50)
// @Success 200 {array} dto.KeywordLookupResponse
// @Failure 503 {object} map[string]string
// @Router /api/v1/stats [get]
func (h *StatsHandler) ListLookups(c *fiber.Ctx) error {
	if h.lookups == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Analytics are disabled",
		})
	}

	rows, err := h.lookups.List(c.UserContext(), c.QueryInt("limit", 50))
	if err != nil {
		h.logger.Error("Failed to list keyword lookups", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list keyword lookups",
		})
	}

	resp := make([]dto.KeywordLookupResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, dto.KeywordLookupResponse{
			Keyword:    row.Keyword,
			Outcome:    string(row.Outcome),
			Count:      row.Count,
			LastSeenAt: row.LastSeenAt.Format(time.RFC3339),
		})
	}
	return c.JSON(resp)
}
