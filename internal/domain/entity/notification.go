package entity

import "time"

// Notification types.
const (
	NotifySDSUpdated   = "SDS_UPDATED"
	NotifySDSSweep     = "SDS_SWEEP"
	NotifyIncident     = "INCIDENT"
	NotifyMeasureDue   = "MEASURE_DUE"
	NotifyReviewDue    = "REVIEW_DUE"
	NotifyTrainingDue  = "TRAINING_DUE"
	NotifyGeneral      = "GENERAL"
)

// Notification is an ephemeral per-user message created as a side effect of
// the batch jobs or domain events.
type Notification struct {
	ID        string
	TenantID  string
	UserID    string
	Type      string // see Notify* constants
	Title     string
	Message   string
	Link      string // in-app path, e.g. /chemicals/{id}
	IsRead    bool
	CreatedAt time.Time
}
