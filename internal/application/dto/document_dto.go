package dto

import "time"

// CreateDocumentRequest input for registering a governed document. The blob
// itself is uploaded separately; Key points at it in object storage.
type CreateDocumentRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Key         string     `json:"key" validate:"required"`
	ContentType string     `json:"content_type" validate:"max=100"`
	OwnerID     string     `json:"owner_id"`
	NextReview  *time.Time `json:"next_review_date"`
}

// UpdateDocumentRequest partial update. A new Key bumps the version.
type UpdateDocumentRequest struct {
	Title      *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Key        *string    `json:"key"`
	OwnerID    *string    `json:"owner_id"`
	Status     *string    `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	NextReview *time.Time `json:"next_review_date"`
}

// DocumentResponse output for a document.
type DocumentResponse struct {
	ID             string     `json:"id"`
	TenantID       string     `json:"tenant_id"`
	Title          string     `json:"title"`
	Key            string     `json:"key"`
	ContentType    string     `json:"content_type,omitempty"`
	Version        int        `json:"version"`
	OwnerID        string     `json:"owner_id,omitempty"`
	Status         string     `json:"status"`
	NextReviewDate *time.Time `json:"next_review_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// DocumentListResponse paginated document list.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
