package handlers

import (
	"errors"
	"time"

	"hiper-bot/internal/dto"
	"hiper-bot/internal/models"
	"hiper-bot/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	registry    *service.SessionRegistry
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, registry *service.SessionRegistry, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		registry:    registry,
		logger:      logger,
	}
}

// ListConversations godoc
// @Summary List conversations of the session
// @Tags conversations
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.ConversationListResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/conversations [get]
func (h *ChatHandler) ListConversations(c *fiber.Ctx) error {
	session, err := getSession(c, h.registry)
	if err != nil {
		return unauthorized(c)
	}

	summaries := session.Conversations()
	resp := dto.ConversationListResponse{
		Conversations: make([]dto.ConversationSummary, 0, len(summaries)),
		Selected:      session.SelectedName(),
	}
	for _, s := range summaries {
		resp.Conversations = append(resp.Conversations, dto.ConversationSummary{
			Name:      s.Name,
			Turns:     s.Turns,
			UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(resp)
}

// NewConversation godoc
// @Summary Start a new conversation
// @Description Clears the selection; the next message opens a new conversation
// @Tags conversations
// @Security Bearer
// @Success 204
// @Failure 401 {object} map[string]string
// @Router /api/v1/conversations/new [post]
func (h *ChatHandler) NewConversation(c *fiber.Ctx) error {
	session, err := getSession(c, h.registry)
	if err != nil {
		return unauthorized(c)
	}

	session.StartNew()
	return c.SendStatus(fiber.StatusNoContent)
}

// SelectConversation godoc
// @Summary Resume a conversation
// @Tags conversations
// @Accept json
// @Produce json
// @Param request body dto.SelectConversationRequest true "Conversation name"
// @Security Bearer
// @Success 200 {object} dto.ConversationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/conversations/select [post]
func (h *ChatHandler) SelectConversation(c *fiber.Ctx) error {
	session, err := getSession(c, h.registry)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.SelectConversationRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	conv, err := session.Select(req.Name)
	if err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Conversation not found",
			})
		}
		return err
	}

	return c.JSON(toConversationResponse(conv))
}

// CurrentConversation godoc
// @Summary Selected conversation
// @Description Returns the selected conversation, or an empty one when none is selected
// @Tags conversations
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.ConversationResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/conversations/current [get]
func (h *ChatHandler) CurrentConversation(c *fiber.Ctx) error {
	session, err := getSession(c, h.registry)
	if err != nil {
		return unauthorized(c)
	}

	conv, ok := session.Selected()
	if !ok {
		return c.JSON(dto.ConversationResponse{Turns: []dto.TurnResponse{}})
	}
	return c.JSON(toConversationResponse(conv))
}

// SendMessage godoc
// @Summary Ask a question
// @Tags messages
// @Accept json
// @Produce json
// @Param request body dto.SendMessageRequest true "Message"
// @Security Bearer
// @Success 200 {object} dto.ReplyResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/messages [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	session, err := getSession(c, h.registry)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	reply, err := h.chatService.Submit(c.UserContext(), session, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Message is empty",
			})
		case errors.Is(err, service.ErrInputTooLong):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Message must be at most 100 characters",
			})
		}
		h.logger.Error("Failed to answer message", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to answer message",
		})
	}

	keywords := reply.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return c.JSON(dto.ReplyResponse{
		Conversation: reply.Conversation,
		Answer:       reply.Answer,
		Keywords:     keywords,
		Outcome:      string(reply.Outcome),
	})
}

func toConversationResponse(conv models.Conversation) dto.ConversationResponse {
	turns := make([]dto.TurnResponse, 0, len(conv.Turns))
	for _, turn := range conv.Turns {
		turns = append(turns, dto.TurnResponse{
			Role:      turn.Role,
			Content:   turn.Content,
			Timestamp: turn.Timestamp.Format(time.RFC3339),
		})
	}
	return dto.ConversationResponse{Name: conv.Name, Turns: turns}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Session expired or not found",
	})
}
