package dto

import "time"

// CreateRiskRequest input for a risk register entry.
type CreateRiskRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Area        string     `json:"area" validate:"max=200"`
	Description string     `json:"description"`
	Probability int        `json:"probability" validate:"min=1,max=5"`
	Severity    int        `json:"severity" validate:"min=1,max=5"`
	OwnerID     string     `json:"owner_id"`
	NextReview  *time.Time `json:"next_review_date"`
}

// UpdateRiskRequest partial update; RiskLevel is always recalculated.
type UpdateRiskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Area        *string    `json:"area" validate:"omitempty,max=200"`
	Description *string    `json:"description"`
	Probability *int       `json:"probability" validate:"omitempty,min=1,max=5"`
	Severity    *int       `json:"severity" validate:"omitempty,min=1,max=5"`
	Status      *string    `json:"status" validate:"omitempty,oneof=DRAFT APPROVED ARCHIVED"`
	OwnerID     *string    `json:"owner_id"`
	NextReview  *time.Time `json:"next_review_date"`
}

// RiskResponse output for a risk assessment.
type RiskResponse struct {
	ID             string     `json:"id"`
	TenantID       string     `json:"tenant_id"`
	Title          string     `json:"title"`
	Area           string     `json:"area"`
	Description    string     `json:"description"`
	Probability    int        `json:"probability"`
	Severity       int        `json:"severity"`
	RiskLevel      int        `json:"risk_level"`
	Status         string     `json:"status"`
	OwnerID        string     `json:"owner_id,omitempty"`
	NextReviewDate *time.Time `json:"next_review_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// RiskListResponse paginated risk list.
type RiskListResponse struct {
	Items []RiskResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
