package entity

import "time"

// Audit types and statuses.
const (
	AuditInternal   = "INTERNAL"
	AuditExternal   = "EXTERNAL"
	AuditInspection = "INSPECTION" // safety round / vernerunde

	AuditPlanned   = "PLANNED"
	AuditDone      = "DONE"
	AuditCancelled = "CANCELLED"
)

// Audit is a planned or completed audit/inspection.
type Audit struct {
	ID          string
	TenantID    string
	Title       string
	Type        string // see Audit* type constants
	Area        string
	LeadID      string // user leading the audit
	ScheduledAt time.Time
	CompletedAt *time.Time
	Status      string
	Findings    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Meeting statuses.
const (
	MeetingPlanned = "PLANNED"
	MeetingHeld    = "HELD"
)

// Meeting is a management review meeting ("ledelsens gjennomgang").
type Meeting struct {
	ID          string
	TenantID    string
	Title       string
	Agenda      string
	Minutes     string
	ScheduledAt time.Time
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
