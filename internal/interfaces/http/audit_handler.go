package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trygghms/hms-api/internal/application/dto"
	"github.com/trygghms/hms-api/internal/application/usecase"
	"github.com/trygghms/hms-api/internal/domain"
)

// AuditHandler exposes internal audits and safety meetings.
type AuditHandler struct {
	uc *usecase.AuditUseCase
}

func NewAuditHandler(uc *usecase.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// CreateAudit godoc
// @Summary Plan an internal audit
// @Tags audits
// @Accept json
// @Produce json
// @Param request body dto.CreateAuditRequest true "Audit data"
// @Success 201 {object} dto.AuditResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/audits [post]
func (h *AuditHandler) CreateAudit(c *fiber.Ctx) error {
	var in dto.CreateAuditRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.CreateAudit(GetTenantID(c), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAudits godoc
// @Summary List audits
// @Tags audits
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.AuditListResponse
// @Router /api/audits [get]
func (h *AuditHandler) ListAudits(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()

	out, err := h.uc.ListAudits(GetTenantID(c), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetAudit godoc
// @Summary Get an audit
// @Tags audits
// @Produce json
// @Param id path string true "Audit ID"
// @Success 200 {object} dto.AuditResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/audits/{id} [get]
func (h *AuditHandler) GetAudit(c *fiber.Ctx) error {
	out, err := h.uc.GetAudit(GetTenantID(c), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "audit not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// UpdateAudit godoc
// @Summary Update an audit
// @Tags audits
// @Accept json
// @Produce json
// @Param id path string true "Audit ID"
// @Param request body dto.UpdateAuditRequest true "Fields to change"
// @Success 200 {object} dto.AuditResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/audits/{id} [put]
func (h *AuditHandler) UpdateAudit(c *fiber.Ctx) error {
	var in dto.UpdateAuditRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.UpdateAudit(GetTenantID(c), c.Params("id"), in)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "audit not found"})
		case domain.ErrConflict:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// CreateMeeting godoc
// @Summary Plan a safety meeting
// @Tags meetings
// @Accept json
// @Produce json
// @Param request body dto.CreateMeetingRequest true "Meeting data"
// @Success 201 {object} dto.MeetingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/meetings [post]
func (h *AuditHandler) CreateMeeting(c *fiber.Ctx) error {
	var in dto.CreateMeetingRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.CreateMeeting(GetTenantID(c), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMeetings godoc
// @Summary List safety meetings
// @Tags meetings
// @Produce json
// @Success 200 {object} dto.MeetingListResponse
// @Router /api/meetings [get]
func (h *AuditHandler) ListMeetings(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()

	out, err := h.uc.ListMeetings(GetTenantID(c), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// UpdateMeeting godoc
// @Summary Update a safety meeting
// @Tags meetings
// @Accept json
// @Produce json
// @Param id path string true "Meeting ID"
// @Param request body dto.UpdateMeetingRequest true "Fields to change"
// @Success 200 {object} dto.MeetingResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/meetings/{id} [put]
func (h *AuditHandler) UpdateMeeting(c *fiber.Ctx) error {
	var in dto.UpdateMeetingRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.UpdateMeeting(GetTenantID(c), c.Params("id"), in)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "meeting not found"})
		case domain.ErrConflict:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
