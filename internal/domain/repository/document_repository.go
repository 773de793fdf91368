package repository

import "github.com/trygghms/hms-api/internal/domain/entity"

// DocumentRepository persistence port for governed documents.
type DocumentRepository interface {
	Create(doc *entity.Document) error
	GetByTenantAndID(tenantID, id string) (*entity.Document, error)
	ListByTenant(tenantID, status string, limit, offset int) ([]*entity.Document, error)
	Update(doc *entity.Document) error
}
