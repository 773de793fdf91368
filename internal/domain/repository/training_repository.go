package repository

import "github.com/trygghms/hms-api/internal/domain/entity"

// TrainingRepository persistence port for training/competency records.
type TrainingRepository interface {
	Create(record *entity.TrainingRecord) error
	GetByTenantAndID(tenantID, id string) (*entity.TrainingRecord, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.TrainingRecord, error)
	ListByUser(tenantID, userID string) ([]*entity.TrainingRecord, error)
	Update(record *entity.TrainingRecord) error
}
