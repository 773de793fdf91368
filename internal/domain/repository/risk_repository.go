package repository

import "github.com/trygghms/hms-api/internal/domain/entity"

// RiskRepository persistence port for the risk register.
type RiskRepository interface {
	Create(risk *entity.RiskAssessment) error
	GetByTenantAndID(tenantID, id string) (*entity.RiskAssessment, error)
	ListByTenant(tenantID, status string, limit, offset int) ([]*entity.RiskAssessment, error)
	Update(risk *entity.RiskAssessment) error
}
