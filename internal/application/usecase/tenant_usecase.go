package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/trygghms/hms-api/internal/application/dto"
	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/repository"
)

// TenantUseCase tenant provisioning and membership.
type TenantUseCase struct {
	repo repository.TenantRepository
}

// NewTenantUseCase builds the use case.
func NewTenantUseCase(repo repository.TenantRepository) *TenantUseCase {
	return &TenantUseCase{repo: repo}
}

// Create provisions an ACTIVE tenant.
func (uc *TenantUseCase) Create(in dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	now := time.Now()
	t := &entity.Tenant{
		ID:        uuid.New().String(),
		Name:      in.Name,
		OrgNumber: in.OrgNumber,
		Status:    entity.TenantActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(t); err != nil {
		return nil, err
	}
	return toTenantResponse(t), nil
}

// GetByID fetches a tenant.
func (uc *TenantUseCase) GetByID(id string) (*dto.TenantResponse, error) {
	t, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	return toTenantResponse(t), nil
}

// ListMembers lists tenant memberships.
func (uc *TenantUseCase) ListMembers(tenantID string) ([]dto.MemberResponse, error) {
	members, err := uc.repo.ListMembers(tenantID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MemberResponse, 0, len(members))
	for _, m := range members {
		items = append(items, dto.MemberResponse{UserID: m.UserID, Role: m.Role})
	}
	return items, nil
}

// Suspend gates the tenant out of background processing and API access.
func (uc *TenantUseCase) Suspend(id string) error {
	return uc.repo.UpdateStatus(id, entity.TenantSuspended)
}

func toTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	if t == nil {
		return nil
	}
	return &dto.TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		OrgNumber: t.OrgNumber,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
