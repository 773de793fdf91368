package repository

import "github.com/trygghms/hms-api/internal/domain/entity"

// TenantRepository persistence port for tenants and memberships.
type TenantRepository interface {
	Create(tenant *entity.Tenant) error
	GetByID(id string) (*entity.Tenant, error)
	ListActive() ([]*entity.Tenant, error)
	UpdateStatus(id, status string) error

	AddMember(m *entity.UserTenant) error
	GetMember(tenantID, userID string) (*entity.UserTenant, error)
	ListMembers(tenantID string) ([]*entity.UserTenant, error)
	// ListNotifiableMembers returns members whose role receives platform
	// notifications: SDS updates, incident reports (ADMIN and HMS).
	ListNotifiableMembers(tenantID string) ([]*entity.UserTenant, error)
}
