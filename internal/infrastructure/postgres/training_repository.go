package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/repository"
)

var _ repository.TrainingRepository = (*TrainingRepo)(nil)

// TrainingRepo implements TrainingRepository over PostgreSQL (usable with pool or tx).
type TrainingRepo struct {
	q Querier
}

// NewTrainingRepository builds the training persistence adapter. Pass pool or tx (Querier).
func NewTrainingRepository(q Querier) *TrainingRepo {
	return &TrainingRepo{q: q}
}

const trainingColumns = `id, tenant_id, user_id, title, provider, completed_at, expires_at, status, created_at, updated_at`

// Create persists a new training record.
func (r *TrainingRepo) Create(t *entity.TrainingRecord) error {
	query := `
		INSERT INTO training_records (` + trainingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.TenantID, t.UserID, t.Title, t.Provider, t.CompletedAt, t.ExpiresAt, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert training record: %w", err)
	}
	return nil
}

// GetByTenantAndID fetches a training record scoped to the tenant.
func (r *TrainingRepo) GetByTenantAndID(tenantID, id string) (*entity.TrainingRecord, error) {
	query := `SELECT ` + trainingColumns + ` FROM training_records WHERE tenant_id = $1 AND id = $2`
	var t entity.TrainingRecord
	err := r.q.QueryRow(context.Background(), query, tenantID, id).Scan(
		&t.ID, &t.TenantID, &t.UserID, &t.Title, &t.Provider, &t.CompletedAt, &t.ExpiresAt, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get training record: %w", err)
	}
	return &t, nil
}

// ListByTenant lists training records, soonest expiry first.
func (r *TrainingRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.TrainingRecord, error) {
	query := `
		SELECT ` + trainingColumns + `
		FROM training_records WHERE tenant_id = $1
		ORDER BY expires_at NULLS LAST LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list training records: %w", err)
	}
	defer rows.Close()
	return collectTrainingRecords(rows)
}

// ListByUser lists one user's training records in the tenant.
func (r *TrainingRepo) ListByUser(tenantID, userID string) ([]*entity.TrainingRecord, error) {
	query := `
		SELECT ` + trainingColumns + `
		FROM training_records WHERE tenant_id = $1 AND user_id = $2
		ORDER BY completed_at DESC`
	rows, err := r.q.Query(context.Background(), query, tenantID, userID)
	if err != nil {
		return nil, fmt.Errorf("list training records by user: %w", err)
	}
	defer rows.Close()
	return collectTrainingRecords(rows)
}

func collectTrainingRecords(rows pgx.Rows) ([]*entity.TrainingRecord, error) {
	var list []*entity.TrainingRecord
	for rows.Next() {
		var t entity.TrainingRecord
		if err := rows.Scan(
			&t.ID, &t.TenantID, &t.UserID, &t.Title, &t.Provider, &t.CompletedAt, &t.ExpiresAt, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan training record: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Update persists the training record's mutable fields.
func (r *TrainingRepo) Update(t *entity.TrainingRecord) error {
	query := `
		UPDATE training_records
		SET title = $3, provider = $4, completed_at = $5, expires_at = $6, status = $7, updated_at = $8
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		t.TenantID, t.ID, t.Title, t.Provider, t.CompletedAt, t.ExpiresAt, t.Status, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update training record: %w", err)
	}
	return nil
}
