package entity

import "time"

// Document statuses.
const (
	DocumentDraft     = "DRAFT"
	DocumentPublished = "PUBLISHED"
	DocumentArchived  = "ARCHIVED"
)

// Document is a governed document (procedure, policy) stored as a blob in
// object storage and tracked for periodic review.
type Document struct {
	ID             string
	TenantID       string
	Title          string
	Key            string // object storage key
	ContentType    string
	Version        int
	OwnerID        string
	Status         string
	NextReviewDate *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
