package entity

import "time"

// TrainingRecord statuses.
const (
	TrainingValid   = "VALID"
	TrainingExpired = "EXPIRED"
)

// TrainingRecord documents a completed course or certification for a user.
// ExpiresAt nil means the competency never expires.
type TrainingRecord struct {
	ID          string
	TenantID    string
	UserID      string
	Title       string
	Provider    string
	CompletedAt time.Time
	ExpiresAt   *time.Time
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ExpiresWithin reports whether the record expires inside the window ending at
// deadline (already-expired records count too).
func (t TrainingRecord) ExpiresWithin(deadline time.Time) bool {
	return t.ExpiresAt != nil && t.ExpiresAt.Before(deadline)
}
