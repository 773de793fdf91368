package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trygghms/hms-api/internal/application/dto"
	"github.com/trygghms/hms-api/internal/application/usecase"
	"github.com/trygghms/hms-api/internal/domain"
)

// IncidentHandler exposes incident reporting and follow-up measures.
type IncidentHandler struct {
	uc *usecase.IncidentUseCase
}

func NewIncidentHandler(uc *usecase.IncidentUseCase) *IncidentHandler {
	return &IncidentHandler{uc: uc}
}

// Report godoc
// @Summary Report an incident
// @Description Registers an incident and notifies the tenant's administrators and HSE coordinators.
// @Tags incidents
// @Accept json
// @Produce json
// @Param request body dto.CreateIncidentRequest true "Incident data"
// @Success 201 {object} dto.IncidentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/incidents [post]
func (h *IncidentHandler) Report(c *fiber.Ctx) error {
	var in dto.CreateIncidentRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.Report(GetTenantID(c), GetUserID(c), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary List incidents
// @Tags incidents
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.IncidentListResponse
// @Router /api/incidents [get]
func (h *IncidentHandler) List(c *fiber.Ctx) error {
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
// @Summary Get an incident
// @Tags incidents
// @Produce json
// @Param id path string true "Incident ID"
// @Success 200 {object} dto.IncidentResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/incidents/{id} [get]
func (h *IncidentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetTenantID(c), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "incident not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary Update an incident
// @Tags incidents
// @Accept json
// @Produce json
// @Param id path string true "Incident ID"
// @Param request body dto.UpdateIncidentRequest true "Fields to change"
// @Success 200 {object} dto.IncidentResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/incidents/{id} [put]
func (h *IncidentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateIncidentRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.Update(GetTenantID(c), c.Params("id"), in)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "incident not found"})
		case domain.ErrConflict:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// AddMeasure godoc
// @Summary Add a corrective measure to an incident
// @Tags incidents
// @Accept json
// @Produce json
// @Param id path string true "Incident ID"
// @Param request body dto.CreateMeasureRequest true "Measure data"
// @Success 201 {object} dto.MeasureResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/incidents/{id}/measures [post]
func (h *IncidentHandler) AddMeasure(c *fiber.Ctx) error {
	var in dto.CreateMeasureRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.AddMeasure(GetTenantID(c), c.Params("id"), in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "incident not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMeasures godoc
// @Summary List measures attached to an incident
// @Tags incidents
// @Produce json
// @Param id path string true "Incident ID"
// @Success 200 {array} dto.MeasureResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/incidents/{id}/measures [get]
func (h *IncidentHandler) ListMeasures(c *fiber.Ctx) error {
	out, err := h.uc.ListMeasures(GetTenantID(c), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "incident not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// UpdateMeasure godoc
// @Summary Update a measure
// @Tags measures
// @Accept json
// @Produce json
// @Param id path string true "Measure ID"
// @Param request body dto.UpdateMeasureRequest true "Fields to change"
// @Success 200 {object} dto.MeasureResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/measures/{id} [put]
func (h *IncidentHandler) UpdateMeasure(c *fiber.Ctx) error {
	var in dto.UpdateMeasureRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.UpdateMeasure(GetTenantID(c), c.Params("id"), in)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "measure not found"})
		case domain.ErrConflict:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
