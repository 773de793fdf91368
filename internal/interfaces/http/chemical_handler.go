package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trygghms/hms-api/internal/application/dto"
	"github.com/trygghms/hms-api/internal/application/sds"
	"github.com/trygghms/hms-api/internal/application/usecase"
	"github.com/trygghms/hms-api/internal/domain"
)

// ChemicalHandler exposes the chemical register and the on-demand
// safety data sheet check.
type ChemicalHandler struct {
	uc  *usecase.ChemicalUseCase
	sds *sds.Service
}

func NewChemicalHandler(uc *usecase.ChemicalUseCase, sdsService *sds.Service) *ChemicalHandler {
	return &ChemicalHandler{uc: uc, sds: sdsService}
}

// Create godoc
// @Summary Register a chemical
// @Description Creates a chemical and, when supplier and CAS number are known, immediately checks for a newer safety data sheet.
// @Tags chemicals
// @Accept json
// @Produce json
// @Param request body dto.CreateChemicalRequest true "Chemical data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/chemicals [post]
func (h *ChemicalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateChemicalRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	tenantID := GetTenantID(c)
	chem, err := h.uc.Create(tenantID, in)
	if err != nil {
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "chemical already registered"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	// The check runs synchronously but never fails the registration:
	// failures come back as sds_check.success=false.
	check := h.sds.CheckChemical(c.UserContext(), tenantID, chem.ID)
	if check.WasUpdated {
		if fresh, err := h.uc.GetByID(tenantID, chem.ID); err == nil && fresh != nil {
			chem = fresh
		}
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"chemical":  chem,
		"sds_check": check,
	})
}

// List godoc
// @Summary List chemicals
// @Tags chemicals
// @Produce json
// @Param search query string false "Match against name, supplier or CAS number"
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.ChemicalListResponse
// @Router /api/chemicals [get]
func (h *ChemicalHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()

	out, err := h.uc.List(GetTenantID(c), c.Query("search"), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary Get a chemical
// @Tags chemicals
// @Produce json
// @Param id path string true "Chemical ID"
// @Success 200 {object} dto.ChemicalResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/chemicals/{id} [get]
func (h *ChemicalHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetTenantID(c), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "chemical not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary Update a chemical
// @Tags chemicals
// @Accept json
// @Produce json
// @Param id path string true "Chemical ID"
// @Param request body dto.UpdateChemicalRequest true "Fields to change"
// @Success 200 {object} dto.ChemicalResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/chemicals/{id} [put]
func (h *ChemicalHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateChemicalRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.Update(GetTenantID(c), c.Params("id"), in)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "chemical not found"})
		case domain.ErrConflict:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// CheckSDS godoc
// @Summary Check a chemical's safety data sheet
// @Description Looks up the supplier for a newer safety data sheet and applies it when one is published.
// @Tags chemicals
// @Produce json
// @Param id path string true "Chemical ID"
// @Success 200 {object} sds.CheckResult
// @Router /api/chemicals/{id}/check-sds [post]
func (h *ChemicalHandler) CheckSDS(c *fiber.Ctx) error {
	res := h.sds.CheckChemical(c.UserContext(), GetTenantID(c), c.Params("id"))
	return c.JSON(res)
}

// Verify godoc
// @Summary Mark a chemical as manually verified
// @Tags chemicals
// @Produce json
// @Param id path string true "Chemical ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/chemicals/{id}/verify [post]
func (h *ChemicalHandler) Verify(c *fiber.Ctx) error {
	return h.statusAction(c, h.uc.Verify)
}

// Archive godoc
// @Summary Archive a chemical
// @Tags chemicals
// @Produce json
// @Param id path string true "Chemical ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/chemicals/{id}/archive [post]
func (h *ChemicalHandler) Archive(c *fiber.Ctx) error {
	return h.statusAction(c, h.uc.Archive)
}

// PhaseOut godoc
// @Summary Flag a chemical for substitution
// @Tags chemicals
// @Produce json
// @Param id path string true "Chemical ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/chemicals/{id}/phase-out [post]
func (h *ChemicalHandler) PhaseOut(c *fiber.Ctx) error {
	return h.statusAction(c, h.uc.PhaseOut)
}

func (h *ChemicalHandler) statusAction(c *fiber.Ctx, fn func(tenantID, id string) error) error {
	if err := fn(GetTenantID(c), c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "chemical not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
