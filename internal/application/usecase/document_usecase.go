package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/trygghms/hms-api/internal/application/dto"
	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/repository"
)

// DocumentUseCase governed-document registry. Blobs live in object storage;
// this use case tracks metadata and review dates only.
type DocumentUseCase struct {
	repo repository.DocumentRepository
}

// NewDocumentUseCase builds the use case.
func NewDocumentUseCase(repo repository.DocumentRepository) *DocumentUseCase {
	return &DocumentUseCase{repo: repo}
}

// Create registers a document at version 1 in DRAFT.
func (uc *DocumentUseCase) Create(tenantID string, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	now := time.Now()
	doc := &entity.Document{
		ID:             uuid.New().String(),
		TenantID:       tenantID,
		Title:          in.Title,
		Key:            in.Key,
		ContentType:    in.ContentType,
		Version:        1,
		OwnerID:        in.OwnerID,
		Status:         entity.DocumentDraft,
		NextReviewDate: in.NextReview,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(doc); err != nil {
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

// GetByID fetches a document scoped to the tenant.
func (uc *DocumentUseCase) GetByID(tenantID, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.repo.GetByTenantAndID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return toDocumentResponse(doc), nil
}

// List lists the tenant's documents, optionally filtered by status.
func (uc *DocumentUseCase) List(tenantID, status string, limit, offset int) (*dto.DocumentListResponse, error) {
	list, err := uc.repo.ListByTenant(tenantID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDocumentResponse(d))
	}
	return &dto.DocumentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update applies a partial update. A new blob key bumps the version.
func (uc *DocumentUseCase) Update(tenantID, id string, in dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	doc, err := uc.repo.GetByTenantAndID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	if in.Title != nil {
		doc.Title = *in.Title
	}
	if in.Key != nil && *in.Key != doc.Key {
		doc.Key = *in.Key
		doc.Version++
	}
	if in.OwnerID != nil {
		doc.OwnerID = *in.OwnerID
	}
	if in.Status != nil {
		doc.Status = *in.Status
	}
	if in.NextReview != nil {
		doc.NextReviewDate = in.NextReview
	}
	doc.UpdatedAt = time.Now()
	if err := uc.repo.Update(doc); err != nil {
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

func toDocumentResponse(d *entity.Document) *dto.DocumentResponse {
	if d == nil {
		return nil
	}
	return &dto.DocumentResponse{
		ID:             d.ID,
		TenantID:       d.TenantID,
		Title:          d.Title,
		Key:            d.Key,
		ContentType:    d.ContentType,
		Version:        d.Version,
		OwnerID:        d.OwnerID,
		Status:         d.Status,
		NextReviewDate: d.NextReviewDate,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
