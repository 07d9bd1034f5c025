package handlers

import (
	"errors"
	"strings"

	"github.com/ShiKuZena/ChatBot-APP/internal/dto"
	"github.com/ShiKuZena/ChatBot-APP/internal/models"
	"github.com/ShiKuZena/ChatBot-APP/internal/repository"
	"github.com/ShiKuZena/ChatBot-APP/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const historyPageSize = 200

type AdminHandler struct {
	faqRepo     *repository.FaqRepository
	historyRepo *repository.HistoryRepository
	matcher     *service.Matcher
	logger      *zap.Logger
}

func NewAdminHandler(
	faqRepo *repository.FaqRepository,
	historyRepo *repository.HistoryRepository,
	matcher *service.Matcher,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		faqRepo:     faqRepo,
		historyRepo: historyRepo,
		matcher:     matcher,
		logger:      logger,
	}
}

// ListFaqs godoc
// @Summary List FAQ records
// @Tags admin
// @Produce json
// @Success 200 {array} dto.FaqResponse
// @Router /api/admin/faq [get]
func (h *AdminHandler) ListFaqs(c *fiber.Ctx) error {
	faqs, err := h.faqRepo.ListRecentFirst(c.Context())
	if err != nil {
		h.logger.Error("Failed to list FAQs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list faq",
		})
	}

	resp := make([]dto.FaqResponse, 0, len(faqs))
	for _, faq := range faqs {
		resp = append(resp, toFaqResponse(faq))
	}
	return c.JSON(resp)
}

// AddFaq godoc
// @Summary Add a FAQ record
// @Description Inserts a new record unless the question semantically duplicates an existing one
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.FaqRequest true "Question and answer"
// @Success 201 {object} dto.StatusResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/admin/add_faq [post]
func (h *AdminHandler) AddFaq(c *fiber.Ctx) error {
	var req dto.FaqRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	question := strings.TrimSpace(req.Question)
	answer := strings.TrimSpace(req.Answer)
	if question == "" || answer == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "question and answer are required",
		})
	}

	// Admin inserts obey the same no-semantic-duplicates invariant as
	// learned inserts.
	snapshot, err := h.faqRepo.ListAll(c.Context())
	if err != nil {
		h.logger.Error("Failed to snapshot FAQs for duplicate check", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to add faq",
		})
	}
	if existing := h.matcher.Match(question, snapshot); existing.Found() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "question duplicates an existing faq",
		})
	}

	if err := h.faqRepo.Create(c.Context(), models.NewFaq(question, answer)); err != nil {
		h.logger.Error("Failed to create FAQ", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to add faq",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.StatusResponse{Status: "success"})
}

// UpdateFaq godoc
// @Summary Update a FAQ record
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "FAQ id"
// @Param request body dto.FaqRequest true "Question and answer"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/admin/update_faq/{id} [put]
func (h *AdminHandler) UpdateFaq(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid faq id",
		})
	}

	var req dto.FaqRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	question := strings.TrimSpace(req.Question)
	answer := strings.TrimSpace(req.Answer)
	if question == "" || answer == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "question and answer are required",
		})
	}

	if err := h.faqRepo.Update(c.Context(), id, question, answer); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "faq not found",
			})
		}
		h.logger.Error("Failed to update FAQ", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to update faq",
		})
	}

	return c.JSON(dto.StatusResponse{Status: "success"})
}

// DeleteFaq godoc
// @Summary Delete a FAQ record
// @Tags admin
// @Produce json
// @Param id path string true "FAQ id"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/admin/delete_faq/{id} [delete]
func (h *AdminHandler) DeleteFaq(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid faq id",
		})
	}

	if err := h.faqRepo.Delete(c.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "faq not found",
			})
		}
		h.logger.Error("Failed to delete FAQ", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to delete faq",
		})
	}

	return c.JSON(dto.StatusResponse{Status: "success"})
}

// History godoc
// @Summary List recent chat history
// @Tags admin
// @Produce json
// @Success 200 {array} dto.HistoryEntryResponse
// @Router /api/admin/history [get]
func (h *AdminHandler) History(c *fiber.Ctx) error {
	messages, err := h.historyRepo.ListRecent(c.Context(), historyPageSize)
	if err != nil {
		h.logger.Error("Failed to list chat history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list history",
		})
	}

	resp := make([]dto.HistoryEntryResponse, 0, len(messages))
	for _, msg := range messages {
		resp = append(resp, dto.HistoryEntryResponse{
			ID:          msg.ID.String(),
			SessionID:   msg.SessionID,
			UserMessage: msg.UserMessage,
			BotReply:    msg.BotReply,
			CreatedAt:   msg.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return c.JSON(resp)
}

func toFaqResponse(faq models.Faq) dto.FaqResponse {
	return dto.FaqResponse{
		ID:        faq.ID.String(),
		Question:  faq.Question,
		Answer:    faq.Answer,
		CreatedAt: faq.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: faq.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
