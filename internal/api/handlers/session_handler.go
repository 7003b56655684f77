package handlers

import (
	"hiper-bot/internal/dto"
	"hiper-bot/internal/service"
	"hiper-bot/pkg/auth"
	"hiper-bot/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SessionHandler struct {
	registry   *service.SessionRegistry
	jwtManager *auth.JWTManager
	warnings   []string
	logger     *zap.Logger
}

func NewSessionHandler(registry *service.SessionRegistry, jwtManager *auth.JWTManager, warnings []string, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		registry:   registry,
		jwtManager: jwtManager,
		warnings:   warnings,
		logger:     logger,
	}
}

// CreateSession godoc
// @Summary Start a chat session
// @Description Creates an empty chat session and returns a token bound to it
// @Tags sessions
// @Produce json
// @Success 201 {object} dto.CreateSessionResponse
// @Failure 500 {object} map[string]string
// @Router /api/v1/sessions [post]
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	session := h.registry.Create()

	token, err := h.jwtManager.GenerateToken(session.ID.String())
	if err != nil {
		h.registry.Delete(session.ID)
		h.logger.Error("Failed to generate session token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create session",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateSessionResponse{
		SessionID: session.ID.String(),
		Token:     token,
		Warnings:  h.warnings,
	})
}

// DeleteSession godoc
// @Summary End a chat session
// @Tags sessions
// @Security Bearer
// @Success 204
// @Failure 401 {object} map[string]string
// @Router /api/v1/sessions [delete]
func (h *SessionHandler) DeleteSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(middleware.SessionID(c))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	h.registry.Delete(id)
	return c.SendStatus(fiber.StatusNoContent)
}

// getSession resolves the session bound to the request token.
func getSession(c *fiber.Ctx, registry *service.SessionRegistry) (*service.Session, error) {
	id, err := uuid.Parse(middleware.SessionID(c))
	if err != nil {
		return nil, fiber.ErrUnauthorized
	}

	session, err := registry.Get(id)
	if err != nil {
		return nil, err
	}
	return session, nil
}
