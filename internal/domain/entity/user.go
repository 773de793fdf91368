package entity

import "time"

// Digest frequencies for a user's summary emails.
const (
	DigestNone   = "NONE"
	DigestDaily  = "DAILY"
	DigestWeekly = "WEEKLY"
)

// User represents a platform user. Tenant membership and role live in
// UserTenant; a user can belong to several tenants.
type User struct {
	ID              string
	Email           string
	Name            string
	PasswordHash    string // bcrypt hash, never plaintext past registration
	DigestFrequency string // see Digest* constants
	Status          string // active, inactive
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
