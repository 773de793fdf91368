package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/repository"
)

var _ repository.RiskRepository = (*RiskRepo)(nil)

// RiskRepo implements RiskRepository over PostgreSQL (usable with pool or tx).
type RiskRepo struct {
	q Querier
}

// NewRiskRepository builds the risk register persistence adapter. Pass pool or tx (Querier).
func NewRiskRepository(q Querier) *RiskRepo {
	return &RiskRepo{q: q}
}

const riskColumns = `id, tenant_id, title, area, description, probability, severity, risk_level,
	status, owner_id, next_review_date, created_at, updated_at`

// Create persists a new risk assessment.
func (r *RiskRepo) Create(a *entity.RiskAssessment) error {
	query := `
		INSERT INTO risk_assessments (` + riskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.TenantID, a.Title, a.Area, a.Description, a.Probability, a.Severity, a.RiskLevel,
		a.Status, a.OwnerID, a.NextReviewDate, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert risk: %w", err)
	}
	return nil
}

// GetByTenantAndID fetches a risk assessment scoped to the tenant.
func (r *RiskRepo) GetByTenantAndID(tenantID, id string) (*entity.RiskAssessment, error) {
	query := `SELECT ` + riskColumns + ` FROM risk_assessments WHERE tenant_id = $1 AND id = $2`
	var a entity.RiskAssessment
	err := r.q.QueryRow(context.Background(), query, tenantID, id).Scan(
		&a.ID, &a.TenantID, &a.Title, &a.Area, &a.Description, &a.Probability, &a.Severity, &a.RiskLevel,
		&a.Status, &a.OwnerID, &a.NextReviewDate, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get risk: %w", err)
	}
	return &a, nil
}

// ListByTenant lists risk assessments, highest risk first.
func (r *RiskRepo) ListByTenant(tenantID, status string, limit, offset int) ([]*entity.RiskAssessment, error) {
	query := `
		SELECT ` + riskColumns + `
		FROM risk_assessments
		WHERE tenant_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY risk_level DESC, title LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, tenantID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list risks: %w", err)
	}
	defer rows.Close()
	var list []*entity.RiskAssessment
	for rows.Next() {
		var a entity.RiskAssessment
		if err := rows.Scan(
			&a.ID, &a.TenantID, &a.Title, &a.Area, &a.Description, &a.Probability, &a.Severity, &a.RiskLevel,
			&a.Status, &a.OwnerID, &a.NextReviewDate, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan risk: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Update persists the risk assessment's mutable fields.
func (r *RiskRepo) Update(a *entity.RiskAssessment) error {
	query := `
		UPDATE risk_assessments
		SET title = $3, area = $4, description = $5, probability = $6, severity = $7,
		    risk_level = $8, status = $9, owner_id = $10, next_review_date = $11, updated_at = $12
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		a.TenantID, a.ID, a.Title, a.Area, a.Description, a.Probability, a.Severity,
		a.RiskLevel, a.Status, a.OwnerID, a.NextReviewDate, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update risk: %w", err)
	}
	return nil
}
