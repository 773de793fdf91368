package repository

import "github.com/trygghms/hms-api/internal/domain/entity"

// IncidentRepository persistence port for incidents.
type IncidentRepository interface {
	Create(incident *entity.Incident) error
	GetByTenantAndID(tenantID, id string) (*entity.Incident, error)
	ListByTenant(tenantID, status string, limit, offset int) ([]*entity.Incident, error)
	Update(incident *entity.Incident) error
}

// MeasureRepository persistence port for corrective measures.
type MeasureRepository interface {
	Create(measure *entity.Measure) error
	GetByTenantAndID(tenantID, id string) (*entity.Measure, error)
	ListByIncident(tenantID, incidentID string) ([]*entity.Measure, error)
	Update(measure *entity.Measure) error
}
