package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implements AuditRepository over PostgreSQL (usable with pool or tx).
type AuditRepo struct {
	q Querier
}

// NewAuditRepository builds the audit persistence adapter. Pass pool or tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

const auditColumns = `id, tenant_id, title, type, area, lead_id, scheduled_at, completed_at, status, findings, created_at, updated_at`

// Create persists a new audit.
func (r *AuditRepo) Create(a *entity.Audit) error {
	query := `
		INSERT INTO audits (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.TenantID, a.Title, a.Type, a.Area, a.LeadID, a.ScheduledAt, a.CompletedAt, a.Status, a.Findings, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit: %w", err)
	}
	return nil
}

// GetByTenantAndID fetches an audit scoped to the tenant.
func (r *AuditRepo) GetByTenantAndID(tenantID, id string) (*entity.Audit, error) {
	query := `SELECT ` + auditColumns + ` FROM audits WHERE tenant_id = $1 AND id = $2`
	var a entity.Audit
	err := r.q.QueryRow(context.Background(), query, tenantID, id).Scan(
		&a.ID, &a.TenantID, &a.Title, &a.Type, &a.Area, &a.LeadID, &a.ScheduledAt, &a.CompletedAt, &a.Status, &a.Findings, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get audit: %w", err)
	}
	return &a, nil
}

// ListByTenant lists audits, optionally filtered by status, next scheduled first.
func (r *AuditRepo) ListByTenant(tenantID, status string, limit, offset int) ([]*entity.Audit, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM audits
		WHERE tenant_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY scheduled_at LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, tenantID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audits: %w", err)
	}
	defer rows.Close()
	var list []*entity.Audit
	for rows.Next() {
		var a entity.Audit
		if err := rows.Scan(
			&a.ID, &a.TenantID, &a.Title, &a.Type, &a.Area, &a.LeadID, &a.ScheduledAt, &a.CompletedAt, &a.Status, &a.Findings, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Update persists the audit's mutable fields.
func (r *AuditRepo) Update(a *entity.Audit) error {
	query := `
		UPDATE audits
		SET title = $3, type = $4, area = $5, lead_id = $6, scheduled_at = $7,
		    completed_at = $8, status = $9, findings = $10, updated_at = $11
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		a.TenantID, a.ID, a.Title, a.Type, a.Area, a.LeadID, a.ScheduledAt,
		a.CompletedAt, a.Status, a.Findings, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update audit: %w", err)
	}
	return nil
}
