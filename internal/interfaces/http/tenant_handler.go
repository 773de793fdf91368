package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trygghms/hms-api/internal/application/dto"
	"github.com/trygghms/hms-api/internal/application/usecase"
	"github.com/trygghms/hms-api/internal/domain"
)

// TenantHandler exposes tenant provisioning and membership.
type TenantHandler struct {
	uc *usecase.TenantUseCase
}

func NewTenantHandler(uc *usecase.TenantUseCase) *TenantHandler {
	return &TenantHandler{uc: uc}
}

// Create godoc
// @Summary Provision a tenant
// @Tags tenants
// @Accept json
// @Produce json
// @Param request body dto.CreateTenantRequest true "Tenant data"
// @Success 201 {object} dto.TenantResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/tenants [post]
func (h *TenantHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTenantRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "organisation is already registered"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetCurrent godoc
// @Summary Get the authenticated user's tenant
// @Tags tenants
// @Produce json
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/tenants/current [get]
func (h *TenantHandler) GetCurrent(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetTenantID(c))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tenant not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListMembers godoc
// @Summary List tenant members
// @Tags tenants
// @Produce json
// @Success 200 {array} dto.MemberResponse
// @Router /api/tenants/members [get]
func (h *TenantHandler) ListMembers(c *fiber.Ctx) error {
	out, err := h.uc.ListMembers(GetTenantID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Suspend godoc
// @Summary Suspend the tenant
// @Description Suspended tenants keep their data but members can no longer log in.
// @Tags tenants
// @Produce json
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/tenants/suspend [post]
func (h *TenantHandler) Suspend(c *fiber.Ctx) error {
	if err := h.uc.Suspend(GetTenantID(c)); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tenant not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
