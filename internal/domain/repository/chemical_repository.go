package repository

import (
	"time"

	"github.com/trygghms/hms-api/internal/domain/entity"
)

// ChemicalSDSUpdate carries the fields the SDS update workflow persists after
// a successful download/parse cycle. Hazard statement fields are pointers:
// nil means keep the existing value (low-confidence extraction).
type ChemicalSDSUpdate struct {
	SDSKey                  string
	SDSDate                 time.Time
	SDSVersion              string
	HazardStatements        *string
	PrecautionaryStatements *string
	SignalWord              *string
	IsCMR                   *bool
	IsSVHC                  *bool
	EchaID                  *string
	LastEchaSync            *time.Time
}

// ChemicalRepository persistence port for chemicals. Every method is
// tenant-scoped: a mismatched tenantID behaves as not-found.
type ChemicalRepository interface {
	Create(chemical *entity.Chemical) error
	GetByTenantAndID(tenantID, id string) (*entity.Chemical, error)
	// ListByTenant filters by optional search (name/supplier/CAS,
	// diacritic-insensitive) and status.
	ListByTenant(tenantID, search, status string, limit, offset int) ([]*entity.Chemical, error)
	// ListCheckable returns ACTIVE chemicals with both supplier and CAS number
	// set, the unit of work for the fleet-wide sweep.
	ListCheckable(tenantID string) ([]*entity.Chemical, error)
	Update(chemical *entity.Chemical) error
	ApplySDSUpdate(tenantID, id string, upd ChemicalSDSUpdate) error
	UpdateStatus(tenantID, id, status string) error
	MarkVerified(tenantID, id string, at time.Time) error
}
