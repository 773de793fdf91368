package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/repository"
)

var _ repository.IncidentRepository = (*IncidentRepo)(nil)

// IncidentRepo implements IncidentRepository over PostgreSQL (usable with pool or tx).
type IncidentRepo struct {
	q Querier
}

// NewIncidentRepository builds the incident persistence adapter. Pass pool or tx (Querier).
func NewIncidentRepository(q Querier) *IncidentRepo {
	return &IncidentRepo{q: q}
}

const incidentColumns = `id, tenant_id, title, description, category, severity, status,
	location, reported_by, assigned_to, occurred_at, due_date, closed_at, created_at, updated_at`

// Create persists a new incident.
func (r *IncidentRepo) Create(i *entity.Incident) error {
	query := `
		INSERT INTO incidents (` + incidentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		i.ID, i.TenantID, i.Title, i.Description, i.Category, i.Severity, i.Status,
		i.Location, i.ReportedBy, i.AssignedTo, i.OccurredAt, i.DueDate, i.ClosedAt, i.CreatedAt, i.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert incident: %w", err)
	}
	return nil
}

// GetByTenantAndID fetches an incident scoped to the tenant.
func (r *IncidentRepo) GetByTenantAndID(tenantID, id string) (*entity.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE tenant_id = $1 AND id = $2`
	var i entity.Incident
	err := r.q.QueryRow(context.Background(), query, tenantID, id).Scan(
		&i.ID, &i.TenantID, &i.Title, &i.Description, &i.Category, &i.Severity, &i.Status,
		&i.Location, &i.ReportedBy, &i.AssignedTo, &i.OccurredAt, &i.DueDate, &i.ClosedAt, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get incident: %w", err)
	}
	return &i, nil
}

// ListByTenant lists incidents, optionally filtered by status, newest first.
func (r *IncidentRepo) ListByTenant(tenantID, status string, limit, offset int) ([]*entity.Incident, error) {
	query := `
		SELECT ` + incidentColumns + `
		FROM incidents
		WHERE tenant_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY occurred_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, tenantID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Incident
	for rows.Next() {
		var i entity.Incident
		if err := rows.Scan(
			&i.ID, &i.TenantID, &i.Title, &i.Description, &i.Category, &i.Severity, &i.Status,
			&i.Location, &i.ReportedBy, &i.AssignedTo, &i.OccurredAt, &i.DueDate, &i.ClosedAt, &i.CreatedAt, &i.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan incident: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// Update persists the incident's mutable fields.
func (r *IncidentRepo) Update(i *entity.Incident) error {
	query := `
		UPDATE incidents
		SET title = $3, description = $4, severity = $5, status = $6,
		    assigned_to = $7, due_date = $8, closed_at = $9, updated_at = $10
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		i.TenantID, i.ID, i.Title, i.Description, i.Severity, i.Status,
		i.AssignedTo, i.DueDate, i.ClosedAt, i.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update incident: %w", err)
	}
	return nil
}
