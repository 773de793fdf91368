package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/trygghms/hms-api/internal/application/dto"
	"github.com/trygghms/hms-api/internal/domain"
	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/repository"
)

// IncidentUseCase incident reporting and follow-up, including corrective
// measures.
type IncidentUseCase struct {
	incidents repository.IncidentRepository
	measures  repository.MeasureRepository
	tenants   repository.TenantRepository
	tx        IncidentTxRunner
}

// NewIncidentUseCase builds the use case.
func NewIncidentUseCase(
	incidents repository.IncidentRepository,
	measures repository.MeasureRepository,
	tenants repository.TenantRepository,
	tx IncidentTxRunner,
) *IncidentUseCase {
	return &IncidentUseCase{incidents: incidents, measures: measures, tenants: tenants, tx: tx}
}

// Report registers an incident and notifies the tenant's ADMIN/HMS users.
// Incident and notifications are written in one transaction.
func (uc *IncidentUseCase) Report(tenantID, reportedBy string, in dto.CreateIncidentRequest) (*dto.IncidentResponse, error) {
	now := time.Now()
	inc := &entity.Incident{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Severity:    in.Severity,
		Status:      entity.IncidentOpen,
		Location:    in.Location,
		ReportedBy:  reportedBy,
		OccurredAt:  in.OccurredAt,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	recipients, err := uc.tenants.ListNotifiableMembers(tenantID)
	if err != nil {
		return nil, err
	}
	var ns []*entity.Notification
	for _, m := range recipients {
		if m.UserID == reportedBy {
			continue
		}
		ns = append(ns, &entity.Notification{
			ID:        uuid.New().String(),
			TenantID:  tenantID,
			UserID:    m.UserID,
			Type:      entity.NotifyIncident,
			Title:     "New incident reported",
			Message:   fmt.Sprintf("%s (severity %d)", inc.Title, inc.Severity),
			Link:      "/incidents/" + inc.ID,
			CreatedAt: now,
		})
	}

	err = uc.tx.Run(func(incidents repository.IncidentRepository, notifs repository.NotificationRepository) error {
		if err := incidents.Create(inc); err != nil {
			return err
		}
		return notifs.CreateBatch(ns)
	})
	if err != nil {
		return nil, err
	}
	return toIncidentResponse(inc), nil
}

// GetByID fetches an incident scoped to the tenant.
func (uc *IncidentUseCase) GetByID(tenantID, id string) (*dto.IncidentResponse, error) {
	inc, err := uc.incidents.GetByTenantAndID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if inc == nil {
		return nil, nil
	}
	return toIncidentResponse(inc), nil
}

// List lists the tenant's incidents, optionally filtered by status.
func (uc *IncidentUseCase) List(tenantID, status string, limit, offset int) (*dto.IncidentListResponse, error) {
	list, err := uc.incidents.ListByTenant(tenantID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.IncidentResponse, 0, len(list))
	for _, i := range list {
		items = append(items, *toIncidentResponse(i))
	}
	return &dto.IncidentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update applies a partial update. Closing sets ClosedAt; reopening clears it.
func (uc *IncidentUseCase) Update(tenantID, id string, in dto.UpdateIncidentRequest) (*dto.IncidentResponse, error) {
	inc, err := uc.incidents.GetByTenantAndID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if inc == nil {
		return nil, nil
	}
	if in.Title != nil {
		inc.Title = *in.Title
	}
	if in.Description != nil {
		inc.Description = *in.Description
	}
	if in.Severity != nil {
		inc.Severity = *in.Severity
	}
	if in.AssignedTo != nil {
		inc.AssignedTo = *in.AssignedTo
	}
	if in.DueDate != nil {
		inc.DueDate = in.DueDate
	}
	if in.Status != nil && *in.Status != inc.Status {
		inc.Status = *in.Status
		if inc.Status == entity.IncidentClosed {
			now := time.Now()
			inc.ClosedAt = &now
		} else {
			inc.ClosedAt = nil
		}
	}
	inc.UpdatedAt = time.Now()
	if err := uc.incidents.Update(inc); err != nil {
		return nil, err
	}
	return toIncidentResponse(inc), nil
}

// AddMeasure attaches a corrective measure to an incident.
func (uc *IncidentUseCase) AddMeasure(tenantID, incidentID string, in dto.CreateMeasureRequest) (*dto.MeasureResponse, error) {
	inc, err := uc.incidents.GetByTenantAndID(tenantID, incidentID)
	if err != nil {
		return nil, err
	}
	if inc == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	m := &entity.Measure{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		IncidentID:  incidentID,
		Title:       in.Title,
		Description: in.Description,
		AssignedTo:  in.AssignedTo,
		DueDate:     in.DueDate,
		Status:      entity.MeasureOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.measures.Create(m); err != nil {
		return nil, err
	}
	return toMeasureResponse(m), nil
}

// ListMeasures lists the measures attached to an incident.
func (uc *IncidentUseCase) ListMeasures(tenantID, incidentID string) ([]dto.MeasureResponse, error) {
	list, err := uc.measures.ListByIncident(tenantID, incidentID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MeasureResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMeasureResponse(m))
	}
	return items, nil
}

// UpdateMeasure applies a partial update. DONE sets CompletedAt.
func (uc *IncidentUseCase) UpdateMeasure(tenantID, id string, in dto.UpdateMeasureRequest) (*dto.MeasureResponse, error) {
	m, err := uc.measures.GetByTenantAndID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	if in.Title != nil {
		m.Title = *in.Title
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.AssignedTo != nil {
		m.AssignedTo = *in.AssignedTo
	}
	if in.DueDate != nil {
		m.DueDate = in.DueDate
	}
	if in.Status != nil && *in.Status != m.Status {
		m.Status = *in.Status
		if m.Status == entity.MeasureDone {
			now := time.Now()
			m.CompletedAt = &now
		} else {
			m.CompletedAt = nil
		}
	}
	m.UpdatedAt = time.Now()
	if err := uc.measures.Update(m); err != nil {
		return nil, err
	}
	return toMeasureResponse(m), nil
}

func toIncidentResponse(i *entity.Incident) *dto.IncidentResponse {
	if i == nil {
		return nil
	}
	return &dto.IncidentResponse{
		ID:          i.ID,
		TenantID:    i.TenantID,
		Title:       i.Title,
		Description: i.Description,
		Category:    i.Category,
		Severity:    i.Severity,
		Status:      i.Status,
		Location:    i.Location,
		ReportedBy:  i.ReportedBy,
		AssignedTo:  i.AssignedTo,
		OccurredAt:  i.OccurredAt,
		DueDate:     i.DueDate,
		ClosedAt:    i.ClosedAt,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func toMeasureResponse(m *entity.Measure) *dto.MeasureResponse {
	if m == nil {
		return nil
	}
	return &dto.MeasureResponse{
		ID:          m.ID,
		TenantID:    m.TenantID,
		IncidentID:  m.IncidentID,
		RiskID:      m.RiskID,
		AuditID:     m.AuditID,
		Title:       m.Title,
		Description: m.Description,
		AssignedTo:  m.AssignedTo,
		DueDate:     m.DueDate,
		Status:      m.Status,
		CompletedAt: m.CompletedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
