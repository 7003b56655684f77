package handlers

import (
	"hiper-bot/internal/dto"
	"hiper-bot/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type RelevanceHandler struct {
	relevanceService *service.RelevanceService
	logger           *zap.Logger
}

func NewRelevanceHandler(relevanceService *service.RelevanceService, logger *zap.Logger) *RelevanceHandler {
	return &RelevanceHandler{
		relevanceService: relevanceService,
		logger:           logger,
	}
}

// CheckRelevance godoc
// @Summary Check whether an answer fits a question
// @Description Asks the language model; failures are reported as a negative verdict with an error
// @Tags relevance
// @Accept json
// @Produce json
// @Param request body dto.RelevanceRequest true "Question and answer"
// @Success 200 {object} dto.RelevanceResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/relevance [post]
func (h *RelevanceHandler) CheckRelevance(c *fiber.Ctx) error {
	var req dto.RelevanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	verdict := h.relevanceService.Check(c.UserContext(), req.Question, req.Answer)

	resp := dto.RelevanceResponse{Relevant: verdict.Relevant}
	if verdict.Err != nil {
		resp.Error = verdict.Err.Error()
	}
	return c.JSON(resp)
}
