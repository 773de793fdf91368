package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/repository"
)

var _ repository.MeetingRepository = (*MeetingRepo)(nil)

// MeetingRepo implements MeetingRepository over PostgreSQL (usable with pool or tx).
type MeetingRepo struct {
	q Querier
}

// NewMeetingRepository builds the meeting persistence adapter. Pass pool or tx (Querier).
func NewMeetingRepository(q Querier) *MeetingRepo {
	return &MeetingRepo{q: q}
}

const meetingColumns = `id, tenant_id, title, agenda, minutes, scheduled_at, status, created_at, updated_at`

// Create persists a new management review meeting.
func (r *MeetingRepo) Create(m *entity.Meeting) error {
	query := `
		INSERT INTO meetings (` + meetingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.TenantID, m.Title, m.Agenda, m.Minutes, m.ScheduledAt, m.Status, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert meeting: %w", err)
	}
	return nil
}

// GetByTenantAndID fetches a meeting scoped to the tenant.
func (r *MeetingRepo) GetByTenantAndID(tenantID, id string) (*entity.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE tenant_id = $1 AND id = $2`
	var m entity.Meeting
	err := r.q.QueryRow(context.Background(), query, tenantID, id).Scan(
		&m.ID, &m.TenantID, &m.Title, &m.Agenda, &m.Minutes, &m.ScheduledAt, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get meeting: %w", err)
	}
	return &m, nil
}

// ListByTenant lists meetings, next scheduled first.
func (r *MeetingRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Meeting, error) {
	query := `
		SELECT ` + meetingColumns + `
		FROM meetings WHERE tenant_id = $1
		ORDER BY scheduled_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Meeting
	for rows.Next() {
		var m entity.Meeting
		if err := rows.Scan(
			&m.ID, &m.TenantID, &m.Title, &m.Agenda, &m.Minutes, &m.ScheduledAt, &m.Status, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update persists the meeting's mutable fields.
func (r *MeetingRepo) Update(m *entity.Meeting) error {
	query := `
		UPDATE meetings
		SET title = $3, agenda = $4, minutes = $5, scheduled_at = $6, status = $7, updated_at = $8
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		m.TenantID, m.ID, m.Title, m.Agenda, m.Minutes, m.ScheduledAt, m.Status, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update meeting: %w", err)
	}
	return nil
}
