package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/repository"
)

var _ repository.MeasureRepository = (*MeasureRepo)(nil)

// MeasureRepo implements MeasureRepository over PostgreSQL (usable with pool or tx).
type MeasureRepo struct {
	q Querier
}

// NewMeasureRepository builds the measure persistence adapter. Pass pool or tx (Querier).
func NewMeasureRepository(q Querier) *MeasureRepo {
	return &MeasureRepo{q: q}
}

const measureColumns = `id, tenant_id, incident_id, risk_id, audit_id, title, description,
	assigned_to, due_date, status, completed_at, created_at, updated_at`

// Create persists a new corrective measure.
func (r *MeasureRepo) Create(m *entity.Measure) error {
	query := `
		INSERT INTO measures (` + measureColumns + `)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.TenantID, m.IncidentID, m.RiskID, m.AuditID, m.Title, m.Description,
		m.AssignedTo, m.DueDate, m.Status, m.CompletedAt, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert measure: %w", err)
	}
	return nil
}

// GetByTenantAndID fetches a measure scoped to the tenant.
func (r *MeasureRepo) GetByTenantAndID(tenantID, id string) (*entity.Measure, error) {
	query := `
		SELECT id, tenant_id, COALESCE(incident_id, ''), COALESCE(risk_id, ''), COALESCE(audit_id, ''),
		       title, description, assigned_to, due_date, status, completed_at, created_at, updated_at
		FROM measures WHERE tenant_id = $1 AND id = $2`
	var m entity.Measure
	err := r.q.QueryRow(context.Background(), query, tenantID, id).Scan(
		&m.ID, &m.TenantID, &m.IncidentID, &m.RiskID, &m.AuditID,
		&m.Title, &m.Description, &m.AssignedTo, &m.DueDate, &m.Status, &m.CompletedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get measure: %w", err)
	}
	return &m, nil
}

// ListByIncident lists the measures attached to one incident.
func (r *MeasureRepo) ListByIncident(tenantID, incidentID string) ([]*entity.Measure, error) {
	query := `
		SELECT id, tenant_id, COALESCE(incident_id, ''), COALESCE(risk_id, ''), COALESCE(audit_id, ''),
		       title, description, assigned_to, due_date, status, completed_at, created_at, updated_at
		FROM measures WHERE tenant_id = $1 AND incident_id = $2 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, tenantID, incidentID)
	if err != nil {
		return nil, fmt.Errorf("list measures: %w", err)
	}
	defer rows.Close()
	var list []*entity.Measure
	for rows.Next() {
		var m entity.Measure
		if err := rows.Scan(
			&m.ID, &m.TenantID, &m.IncidentID, &m.RiskID, &m.AuditID,
			&m.Title, &m.Description, &m.AssignedTo, &m.DueDate, &m.Status, &m.CompletedAt, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan measure: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update persists the measure's mutable fields.
func (r *MeasureRepo) Update(m *entity.Measure) error {
	query := `
		UPDATE measures
		SET title = $3, description = $4, assigned_to = $5, due_date = $6,
		    status = $7, completed_at = $8, updated_at = $9
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		m.TenantID, m.ID, m.Title, m.Description, m.AssignedTo, m.DueDate,
		m.Status, m.CompletedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update measure: %w", err)
	}
	return nil
}
