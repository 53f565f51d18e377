package handler

import (
	"wellspring/internal/domain"
	"wellspring/internal/dto"
	"wellspring/internal/middleware"
	"wellspring/internal/service"

	"github.com/gofiber/fiber/v2"
)

// JournalHandler handles journal HTTP requests
type JournalHandler struct {
	service service.JournalService
}

// NewJournalHandler creates a new JournalHandler instance
func NewJournalHandler(service service.JournalService) *JournalHandler {
	return &JournalHandler{service: service}
}

// CreateEntry godoc
// @Summary Create a journal entry
// @Tags journal
// @Accept json
// @Produce json
// @Param request body dto.CreateJournalEntryRequest true "Journal entry"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /journal [post]
func (h *JournalHandler) CreateEntry(c *fiber.Ctx) error {
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return domain.NewUnauthorizedError("authentication required")
	}

	var req dto.CreateJournalEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	entry, err := h.service.CreateEntry(c.Context(), userID, req.Entry)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// GetEntries godoc
// @Summary List the caller's journal entries
// @Tags journal
// @Produce json
// @Success 200 {array} dto.JournalEntryResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /journal [get]
func (h *JournalHandler) GetEntries(c *fiber.Ctx) error {
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return domain.NewUnauthorizedError("authentication required")
	}

	entries, err := h.service.GetEntries(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(entries)
}
