package handlers

import (
	"strings"

	"github.com/ShiKuZena/ChatBot-APP/internal/dto"
	"github.com/ShiKuZena/ChatBot-APP/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	resolver *service.Resolver
	logger   *zap.Logger
}

func NewChatHandler(resolver *service.Resolver, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		resolver: resolver,
		logger:   logger,
	}
}

// Chat godoc
// @Summary Ask the library assistant a question
// @Description Resolves a free-text question through the escalation pipeline and returns the final answer
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "User message and opaque session id"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} map[string]string
// @Router /api/chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	// Precondition, not a pipeline concern: an empty message never enters
	// the escalation ladder.
	if strings.TrimSpace(req.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "message is required",
		})
	}

	reply := h.resolver.Resolve(c.Context(), req.Message, req.SessionID)

	return c.JSON(dto.ChatResponse{Reply: reply})
}
