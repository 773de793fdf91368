package dto

import "time"

// CreateAuditRequest input for planning an audit or inspection.
type CreateAuditRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=200"`
	Type        string    `json:"type" validate:"required,oneof=INTERNAL EXTERNAL INSPECTION"`
	Area        string    `json:"area" validate:"max=200"`
	LeadID      string    `json:"lead_id"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}

// UpdateAuditRequest partial update of an audit.
type UpdateAuditRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Area        *string    `json:"area" validate:"omitempty,max=200"`
	LeadID      *string    `json:"lead_id"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Status      *string    `json:"status" validate:"omitempty,oneof=PLANNED DONE CANCELLED"`
	Findings    *string    `json:"findings"`
}

// AuditResponse output for an audit.
type AuditResponse struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	Title       string     `json:"title"`
	Type        string     `json:"type"`
	Area        string     `json:"area,omitempty"`
	LeadID      string     `json:"lead_id,omitempty"`
	ScheduledAt time.Time  `json:"scheduled_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Status      string     `json:"status"`
	Findings    string     `json:"findings,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// AuditListResponse paginated audit list.
type AuditListResponse struct {
	Items []AuditResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// CreateMeetingRequest input for a management review meeting.
type CreateMeetingRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=200"`
	Agenda      string    `json:"agenda"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}

// UpdateMeetingRequest partial update of a meeting.
type UpdateMeetingRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Agenda      *string    `json:"agenda"`
	Minutes     *string    `json:"minutes"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Status      *string    `json:"status" validate:"omitempty,oneof=PLANNED HELD"`
}

// MeetingResponse output for a meeting.
type MeetingResponse struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Title       string    `json:"title"`
	Agenda      string    `json:"agenda,omitempty"`
	Minutes     string    `json:"minutes,omitempty"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MeetingListResponse paginated meeting list.
type MeetingListResponse struct {
	Items []MeetingResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
