package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Chemical statuses.
const (
	ChemicalActive    = "ACTIVE"
	ChemicalPhasedOut = "PHASED_OUT"
	ChemicalArchived  = "ARCHIVED"
)

// Chemical is one hazardous product in a tenant's inventory, with its current
// safety data sheet (SDS) and the hazard data extracted from it.
// Never hard-deleted except via full tenant deletion; archive via Status.
type Chemical struct {
	ID        string
	TenantID  string
	Name      string
	Supplier  string // supplier name; keys the SDS lookup integration
	CasNumber string // CAS registry number, e.g. "67-64-1"

	// Current SDS
	SDSKey     string // object storage key of the stored SDS file
	SDSDate    *time.Time
	SDSVersion string

	// Extracted hazard data
	HazardStatements        string // H-statements, e.g. "H225, H319"
	PrecautionaryStatements string // P-statements
	SignalWord              string // "Danger" / "Warning"

	// Regulatory flags (ECHA-like database)
	IsCMR        bool // carcinogenic/mutagenic/reprotoxic
	IsSVHC       bool // substance of very high concern
	EchaID       string
	LastEchaSync *time.Time

	// Inventory
	Amount   decimal.Decimal
	Unit     string // "L", "kg", ...
	Location string

	Status         string // see Chemical* constants
	NextReviewDate *time.Time
	LastVerifiedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CanCheckSDS reports whether the automatic SDS update check has the data it
// needs (a supplier integration key and a CAS number to look up).
func (c Chemical) CanCheckSDS() bool {
	return c.Supplier != "" && c.CasNumber != ""
}
