package entity

import "time"

// Incident statuses.
const (
	IncidentOpen       = "OPEN"
	IncidentInProgress = "IN_PROGRESS"
	IncidentClosed     = "CLOSED"
)

// Incident categories.
const (
	IncidentInjury      = "INJURY"
	IncidentNearMiss    = "NEAR_MISS"
	IncidentEnvironment = "ENVIRONMENT"
	IncidentQuality     = "QUALITY"
	IncidentOther       = "OTHER"
)

// Incident is a reported HSE event (injury, near miss, deviation).
type Incident struct {
	ID          string
	TenantID    string
	Title       string
	Description string
	Category    string // see Incident* category constants
	Severity    int    // 1 (trivial) .. 5 (critical)
	Status      string
	Location    string
	ReportedBy  string // user ID
	AssignedTo  string // user ID, may be empty until triaged
	OccurredAt  time.Time
	DueDate     *time.Time
	ClosedAt    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Measure statuses.
const (
	MeasureOpen      = "OPEN"
	MeasureDone      = "DONE"
	MeasureCancelled = "CANCELLED"
)

// Measure is a corrective or preventive action, linked to the incident, risk
// assessment or audit it came out of (at most one of the parent IDs is set).
type Measure struct {
	ID          string
	TenantID    string
	IncidentID  string
	RiskID      string
	AuditID     string
	Title       string
	Description string
	AssignedTo  string // user ID
	DueDate     *time.Time
	Status      string
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
