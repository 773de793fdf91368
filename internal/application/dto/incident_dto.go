package dto

import "time"

// CreateIncidentRequest input for reporting an incident.
type CreateIncidentRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Description string     `json:"description"`
	Category    string     `json:"category" validate:"required,oneof=INJURY NEAR_MISS ENVIRONMENT QUALITY OTHER"`
	Severity    int        `json:"severity" validate:"min=1,max=5"`
	Location    string     `json:"location" validate:"max=200"`
	OccurredAt  time.Time  `json:"occurred_at" validate:"required"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateIncidentRequest partial update of an incident.
type UpdateIncidentRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description"`
	Severity    *int       `json:"severity" validate:"omitempty,min=1,max=5"`
	Status      *string    `json:"status" validate:"omitempty,oneof=OPEN IN_PROGRESS CLOSED"`
	AssignedTo  *string    `json:"assigned_to"`
	DueDate     *time.Time `json:"due_date"`
}

// IncidentResponse output for an incident.
type IncidentResponse struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Severity    int        `json:"severity"`
	Status      string     `json:"status"`
	Location    string     `json:"location"`
	ReportedBy  string     `json:"reported_by"`
	AssignedTo  string     `json:"assigned_to,omitempty"`
	OccurredAt  time.Time  `json:"occurred_at"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IncidentListResponse paginated incident list.
type IncidentListResponse struct {
	Items []IncidentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateMeasureRequest input for a corrective measure.
type CreateMeasureRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Description string     `json:"description"`
	AssignedTo  string     `json:"assigned_to"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateMeasureRequest partial update of a measure.
type UpdateMeasureRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description"`
	AssignedTo  *string    `json:"assigned_to"`
	DueDate     *time.Time `json:"due_date"`
	Status      *string    `json:"status" validate:"omitempty,oneof=OPEN DONE CANCELLED"`
}

// MeasureResponse output for a measure.
type MeasureResponse struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	IncidentID  string     `json:"incident_id,omitempty"`
	RiskID      string     `json:"risk_id,omitempty"`
	AuditID     string     `json:"audit_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssignedTo  string     `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
