package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/trygghms/hms-api/internal/application/dto"
	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/repository"
)

// TrainingUseCase competency tracking.
type TrainingUseCase struct {
	repo repository.TrainingRepository
}

// NewTrainingUseCase builds the use case.
func NewTrainingUseCase(repo repository.TrainingRepository) *TrainingUseCase {
	return &TrainingUseCase{repo: repo}
}

// Create records a completed training for a user in the tenant.
func (uc *TrainingUseCase) Create(tenantID string, in dto.CreateTrainingRequest) (*dto.TrainingResponse, error) {
	now := time.Now()
	status := entity.TrainingValid
	if in.ExpiresAt != nil && in.ExpiresAt.Before(now) {
		status = entity.TrainingExpired
	}
	rec := &entity.TrainingRecord{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		UserID:      in.UserID,
		Title:       in.Title,
		Provider:    in.Provider,
		CompletedAt: in.CompletedAt,
		ExpiresAt:   in.ExpiresAt,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(rec); err != nil {
		return nil, err
	}
	return toTrainingResponse(rec), nil
}

// GetByID fetches a record scoped to the tenant.
func (uc *TrainingUseCase) GetByID(tenantID, id string) (*dto.TrainingResponse, error) {
	rec, err := uc.repo.GetByTenantAndID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	return toTrainingResponse(rec), nil
}

// List lists the tenant's training records.
func (uc *TrainingUseCase) List(tenantID string, limit, offset int) (*dto.TrainingListResponse, error) {
	list, err := uc.repo.ListByTenant(tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TrainingResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toTrainingResponse(r))
	}
	return &dto.TrainingListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListByUser lists one user's records in the tenant.
func (uc *TrainingUseCase) ListByUser(tenantID, userID string) ([]dto.TrainingResponse, error) {
	list, err := uc.repo.ListByUser(tenantID, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TrainingResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toTrainingResponse(r))
	}
	return items, nil
}

func toTrainingResponse(r *entity.TrainingRecord) *dto.TrainingResponse {
	if r == nil {
		return nil
	}
	return &dto.TrainingResponse{
		ID:          r.ID,
		TenantID:    r.TenantID,
		UserID:      r.UserID,
		Title:       r.Title,
		Provider:    r.Provider,
		CompletedAt: r.CompletedAt,
		ExpiresAt:   r.ExpiresAt,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
