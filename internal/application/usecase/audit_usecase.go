package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/trygghms/hms-api/internal/application/dto"
	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/repository"
)

// AuditUseCase planning and follow-up of audits, inspections and management
// review meetings.
type AuditUseCase struct {
	audits   repository.AuditRepository
	meetings repository.MeetingRepository
}

// NewAuditUseCase builds the use case.
func NewAuditUseCase(audits repository.AuditRepository, meetings repository.MeetingRepository) *AuditUseCase {
	return &AuditUseCase{audits: audits, meetings: meetings}
}

// CreateAudit plans an audit or inspection.
func (uc *AuditUseCase) CreateAudit(tenantID string, in dto.CreateAuditRequest) (*dto.AuditResponse, error) {
	now := time.Now()
	a := &entity.Audit{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		Title:       in.Title,
		Type:        in.Type,
		Area:        in.Area,
		LeadID:      in.LeadID,
		ScheduledAt: in.ScheduledAt,
		Status:      entity.AuditPlanned,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.audits.Create(a); err != nil {
		return nil, err
	}
	return toAuditResponse(a), nil
}

// GetAudit fetches an audit scoped to the tenant.
func (uc *AuditUseCase) GetAudit(tenantID, id string) (*dto.AuditResponse, error) {
	a, err := uc.audits.GetByTenantAndID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}
	return toAuditResponse(a), nil
}

// ListAudits lists the tenant's audits, optionally filtered by status.
func (uc *AuditUseCase) ListAudits(tenantID, status string, limit, offset int) (*dto.AuditListResponse, error) {
	list, err := uc.audits.ListByTenant(tenantID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAuditResponse(a))
	}
	return &dto.AuditListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// UpdateAudit applies a partial update. DONE sets CompletedAt.
func (uc *AuditUseCase) UpdateAudit(tenantID, id string, in dto.UpdateAuditRequest) (*dto.AuditResponse, error) {
	a, err := uc.audits.GetByTenantAndID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}
	if in.Title != nil {
		a.Title = *in.Title
	}
	if in.Area != nil {
		a.Area = *in.Area
	}
	if in.LeadID != nil {
		a.LeadID = *in.LeadID
	}
	if in.ScheduledAt != nil {
		a.ScheduledAt = *in.ScheduledAt
	}
	if in.Findings != nil {
		a.Findings = *in.Findings
	}
	if in.Status != nil && *in.Status != a.Status {
		a.Status = *in.Status
		if a.Status == entity.AuditDone {
			now := time.Now()
			a.CompletedAt = &now
		} else {
			a.CompletedAt = nil
		}
	}
	a.UpdatedAt = time.Now()
	if err := uc.audits.Update(a); err != nil {
		return nil, err
	}
	return toAuditResponse(a), nil
}

// CreateMeeting plans a management review meeting.
func (uc *AuditUseCase) CreateMeeting(tenantID string, in dto.CreateMeetingRequest) (*dto.MeetingResponse, error) {
	now := time.Now()
	m := &entity.Meeting{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		Title:       in.Title,
		Agenda:      in.Agenda,
		ScheduledAt: in.ScheduledAt,
		Status:      entity.MeetingPlanned,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.meetings.Create(m); err != nil {
		return nil, err
	}
	return toMeetingResponse(m), nil
}

// ListMeetings lists the tenant's meetings.
func (uc *AuditUseCase) ListMeetings(tenantID string, limit, offset int) (*dto.MeetingListResponse, error) {
	list, err := uc.meetings.ListByTenant(tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MeetingResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMeetingResponse(m))
	}
	return &dto.MeetingListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// UpdateMeeting applies a partial update (agenda, minutes, status).
func (uc *AuditUseCase) UpdateMeeting(tenantID, id string, in dto.UpdateMeetingRequest) (*dto.MeetingResponse, error) {
	m, err := uc.meetings.GetByTenantAndID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	if in.Title != nil {
		m.Title = *in.Title
	}
	if in.Agenda != nil {
		m.Agenda = *in.Agenda
	}
	if in.Minutes != nil {
		m.Minutes = *in.Minutes
	}
	if in.ScheduledAt != nil {
		m.ScheduledAt = *in.ScheduledAt
	}
	if in.Status != nil {
		m.Status = *in.Status
	}
	m.UpdatedAt = time.Now()
	if err := uc.meetings.Update(m); err != nil {
		return nil, err
	}
	return toMeetingResponse(m), nil
}

func toAuditResponse(a *entity.Audit) *dto.AuditResponse {
	if a == nil {
		return nil
	}
	return &dto.AuditResponse{
		ID:          a.ID,
		TenantID:    a.TenantID,
		Title:       a.Title,
		Type:        a.Type,
		Area:        a.Area,
		LeadID:      a.LeadID,
		ScheduledAt: a.ScheduledAt,
		CompletedAt: a.CompletedAt,
		Status:      a.Status,
		Findings:    a.Findings,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toMeetingResponse(m *entity.Meeting) *dto.MeetingResponse {
	if m == nil {
		return nil
	}
	return &dto.MeetingResponse{
		ID:          m.ID,
		TenantID:    m.TenantID,
		Title:       m.Title,
		Agenda:      m.Agenda,
		Minutes:     m.Minutes,
		ScheduledAt: m.ScheduledAt,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
