package repository

import "github.com/trygghms/hms-api/internal/domain/entity"

// AuditRepository persistence port for audits and inspections.
type AuditRepository interface {
	Create(audit *entity.Audit) error
	GetByTenantAndID(tenantID, id string) (*entity.Audit, error)
	ListByTenant(tenantID, status string, limit, offset int) ([]*entity.Audit, error)
	Update(audit *entity.Audit) error
}

// MeetingRepository persistence port for management review meetings.
type MeetingRepository interface {
	Create(meeting *entity.Meeting) error
	GetByTenantAndID(tenantID, id string) (*entity.Meeting, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Meeting, error)
	Update(meeting *entity.Meeting) error
}
