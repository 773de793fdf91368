package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateChemicalRequest input for registering a chemical.
type CreateChemicalRequest struct {
	Name      string          `json:"name" validate:"required,min=1,max=200"`
	Supplier  string          `json:"supplier" validate:"max=100"`
	CasNumber string          `json:"cas_number" validate:"max=20"`
	Amount    decimal.Decimal `json:"amount"`
	Unit      string          `json:"unit" validate:"max=20"`
	Location  string          `json:"location" validate:"max=200"`
}

// UpdateChemicalRequest partial update; nil fields are left untouched.
// SDS fields are not updatable here: the update workflow owns them.
type UpdateChemicalRequest struct {
	Name      *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Supplier  *string          `json:"supplier" validate:"omitempty,max=100"`
	CasNumber *string          `json:"cas_number" validate:"omitempty,max=20"`
	Amount    *decimal.Decimal `json:"amount"`
	Unit      *string          `json:"unit" validate:"omitempty,max=20"`
	Location  *string          `json:"location" validate:"omitempty,max=200"`
}

// ChemicalResponse output for a chemical.
type ChemicalResponse struct {
	ID                      string          `json:"id"`
	TenantID                string          `json:"tenant_id"`
	Name                    string          `json:"name"`
	Supplier                string          `json:"supplier"`
	CasNumber               string          `json:"cas_number"`
	SDSKey                  string          `json:"sds_key,omitempty"`
	SDSDate                 *time.Time      `json:"sds_date,omitempty"`
	SDSVersion              string          `json:"sds_version,omitempty"`
	HazardStatements        string          `json:"hazard_statements,omitempty"`
	PrecautionaryStatements string          `json:"precautionary_statements,omitempty"`
	SignalWord              string          `json:"signal_word,omitempty"`
	IsCMR                   bool            `json:"is_cmr"`
	IsSVHC                  bool            `json:"is_svhc"`
	EchaID                  string          `json:"echa_id,omitempty"`
	LastEchaSync            *time.Time      `json:"last_echa_sync,omitempty"`
	Amount                  decimal.Decimal `json:"amount"`
	Unit                    string          `json:"unit"`
	Location                string          `json:"location"`
	Status                  string          `json:"status"`
	NextReviewDate          *time.Time      `json:"next_review_date,omitempty"`
	LastVerifiedAt          *time.Time      `json:"last_verified_at,omitempty"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

// ChemicalListResponse paginated chemical list.
type ChemicalListResponse struct {
	Items []ChemicalResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
