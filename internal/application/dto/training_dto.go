package dto

import "time"

// CreateTrainingRequest input for a training/competency record.
type CreateTrainingRequest struct {
	UserID      string     `json:"user_id" validate:"required"`
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Provider    string     `json:"provider" validate:"max=200"`
	CompletedAt time.Time  `json:"completed_at" validate:"required"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// TrainingResponse output for a training record.
type TrainingResponse struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Provider    string     `json:"provider,omitempty"`
	CompletedAt time.Time  `json:"completed_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TrainingListResponse paginated training list.
type TrainingListResponse struct {
	Items []TrainingResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
