package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trygghms/hms-api/internal/application/dto"
	"github.com/trygghms/hms-api/internal/application/usecase"
	"github.com/trygghms/hms-api/internal/domain"
)

// RiskHandler exposes the risk register.
type RiskHandler struct {
	uc *usecase.RiskUseCase
}

func NewRiskHandler(uc *usecase.RiskUseCase) *RiskHandler {
	return &RiskHandler{uc: uc}
}

// Create godoc
// @Summary Create a risk assessment
// @Tags risks
// @Accept json
// @Produce json
// @Param request body dto.CreateRiskRequest true "Risk data"
// @Success 201 {object} dto.RiskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/risks [post]
func (h *RiskHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRiskRequest
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
// @Summary List risk assessments ordered by risk level
// @Tags risks
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.RiskListResponse
// @Router /api/risks [get]
func (h *RiskHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()

	out, err := h.uc.List(GetTenantID(c), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary Get a risk assessment
// @Tags risks
// @Produce json
// @Param id path string true "Risk ID"
// @Success 200 {object} dto.RiskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/risks/{id} [get]
func (h *RiskHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetTenantID(c), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "risk assessment not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary Update a risk assessment
// @Tags risks
// @Accept json
// @Produce json
// @Param id path string true "Risk ID"
// @Param request body dto.UpdateRiskRequest true "Fields to change"
// @Success 200 {object} dto.RiskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/risks/{id} [put]
func (h *RiskHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRiskRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.Update(GetTenantID(c), c.Params("id"), in)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "risk assessment not found"})
		case domain.ErrConflict:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
