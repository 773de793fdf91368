package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/trygghms/hms-api/internal/application/dto"
	"github.com/trygghms/hms-api/internal/domain"
	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/repository"
)

// RiskUseCase CRUD for the risk register. RiskLevel is derived, never taken
// from input.
type RiskUseCase struct {
	repo repository.RiskRepository
}

// NewRiskUseCase builds the use case.
func NewRiskUseCase(repo repository.RiskRepository) *RiskUseCase {
	return &RiskUseCase{repo: repo}
}

// Create adds a risk assessment in DRAFT.
func (uc *RiskUseCase) Create(tenantID string, in dto.CreateRiskRequest) (*dto.RiskResponse, error) {
	if !entity.ValidScore(in.Probability) || !entity.ValidScore(in.Severity) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	risk := &entity.RiskAssessment{
		ID:             uuid.New().String(),
		TenantID:       tenantID,
		Title:          in.Title,
		Area:           in.Area,
		Description:    in.Description,
		Probability:    in.Probability,
		Severity:       in.Severity,
		Status:         entity.RiskDraft,
		OwnerID:        in.OwnerID,
		NextReviewDate: in.NextReview,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	risk.Recalculate()
	if err := uc.repo.Create(risk); err != nil {
		return nil, err
	}
	return toRiskResponse(risk), nil
}

// GetByID fetches a risk scoped to the tenant.
func (uc *RiskUseCase) GetByID(tenantID, id string) (*dto.RiskResponse, error) {
	risk, err := uc.repo.GetByTenantAndID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if risk == nil {
		return nil, nil
	}
	return toRiskResponse(risk), nil
}

// List lists the tenant's risks, optionally filtered by status.
func (uc *RiskUseCase) List(tenantID, status string, limit, offset int) (*dto.RiskListResponse, error) {
	list, err := uc.repo.ListByTenant(tenantID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RiskResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRiskResponse(r))
	}
	return &dto.RiskListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update applies a partial update and recalculates the risk level.
func (uc *RiskUseCase) Update(tenantID, id string, in dto.UpdateRiskRequest) (*dto.RiskResponse, error) {
	risk, err := uc.repo.GetByTenantAndID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if risk == nil {
		return nil, nil
	}
	if in.Title != nil {
		risk.Title = *in.Title
	}
	if in.Area != nil {
		risk.Area = *in.Area
	}
	if in.Description != nil {
		risk.Description = *in.Description
	}
	if in.Probability != nil {
		if !entity.ValidScore(*in.Probability) {
			return nil, domain.ErrInvalidInput
		}
		risk.Probability = *in.Probability
	}
	if in.Severity != nil {
		if !entity.ValidScore(*in.Severity) {
			return nil, domain.ErrInvalidInput
		}
		risk.Severity = *in.Severity
	}
	if in.Status != nil {
		risk.Status = *in.Status
	}
	if in.OwnerID != nil {
		risk.OwnerID = *in.OwnerID
	}
	if in.NextReview != nil {
		risk.NextReviewDate = in.NextReview
	}
	risk.Recalculate()
	risk.UpdatedAt = time.Now()
	if err := uc.repo.Update(risk); err != nil {
		return nil, err
	}
	return toRiskResponse(risk), nil
}

func toRiskResponse(r *entity.RiskAssessment) *dto.RiskResponse {
	if r == nil {
		return nil
	}
	return &dto.RiskResponse{
		ID:             r.ID,
		TenantID:       r.TenantID,
		Title:          r.Title,
		Area:           r.Area,
		Description:    r.Description,
		Probability:    r.Probability,
		Severity:       r.Severity,
		RiskLevel:      r.RiskLevel,
		Status:         r.Status,
		OwnerID:        r.OwnerID,
		NextReviewDate: r.NextReviewDate,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
