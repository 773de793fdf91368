package entity

import "time"

// RiskAssessment statuses.
const (
	RiskDraft    = "DRAFT"
	RiskApproved = "APPROVED"
	RiskArchived = "ARCHIVED"
)

// RiskAssessment is an entry in a tenant's risk register.
// RiskLevel is always Probability * Severity; Recalculate keeps it consistent.
type RiskAssessment struct {
	ID             string
	TenantID       string
	Title          string
	Area           string // department/location the risk applies to
	Description    string
	Probability    int // 1..5
	Severity       int // 1..5
	RiskLevel      int // Probability * Severity
	Status         string
	OwnerID        string // user responsible
	NextReviewDate *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Recalculate updates RiskLevel from Probability and Severity.
func (r *RiskAssessment) Recalculate() {
	r.RiskLevel = r.Probability * r.Severity
}

// ValidScore reports whether a probability or severity score is in range.
func ValidScore(n int) bool {
	return n >= 1 && n <= 5
}
