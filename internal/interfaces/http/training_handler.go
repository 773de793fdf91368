package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trygghms/hms-api/internal/application/dto"
	"github.com/trygghms/hms-api/internal/application/usecase"
	"github.com/trygghms/hms-api/internal/domain"
)

// TrainingHandler exposes course completion records.
type TrainingHandler struct {
	uc *usecase.TrainingUseCase
}

func NewTrainingHandler(uc *usecase.TrainingUseCase) *TrainingHandler {
	return &TrainingHandler{uc: uc}
}

// Create godoc
// @Summary Register a completed training
// @Tags training
// @Accept json
// @Produce json
// @Param request body dto.CreateTrainingRequest true "Training record"
// @Success 201 {object} dto.TrainingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/training [post]
func (h *TrainingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTrainingRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.Create(GetTenantID(c), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary List training records
// @Tags training
// @Produce json
// @Success 200 {object} dto.TrainingListResponse
// @Router /api/training [get]
func (h *TrainingHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()

	out, err := h.uc.List(GetTenantID(c), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary Get a training record
// @Tags training
// @Produce json
// @Param id path string true "Training record ID"
// @Success 200 {object} dto.TrainingResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/training/{id} [get]
func (h *TrainingHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetTenantID(c), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "training record not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListMine godoc
// @Summary List the authenticated user's training records
// @Tags training
// @Produce json
// @Success 200 {array} dto.TrainingResponse
// @Router /api/training/mine [get]
func (h *TrainingHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListByUser(GetTenantID(c), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
