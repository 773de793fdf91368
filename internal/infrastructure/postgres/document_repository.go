package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implements DocumentRepository over PostgreSQL (usable with pool or tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository builds the document persistence adapter. Pass pool or tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, tenant_id, title, key, content_type, version, owner_id, status, next_review_date, created_at, updated_at`

// Create persists a new governed document.
func (r *DocumentRepo) Create(d *entity.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.TenantID, d.Title, d.Key, d.ContentType, d.Version, d.OwnerID, d.Status, d.NextReviewDate, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByTenantAndID fetches a document scoped to the tenant.
func (r *DocumentRepo) GetByTenantAndID(tenantID, id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE tenant_id = $1 AND id = $2`
	var d entity.Document
	err := r.q.QueryRow(context.Background(), query, tenantID, id).Scan(
		&d.ID, &d.TenantID, &d.Title, &d.Key, &d.ContentType, &d.Version, &d.OwnerID, &d.Status, &d.NextReviewDate, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &d, nil
}

// ListByTenant lists documents, optionally filtered by status.
func (r *DocumentRepo) ListByTenant(tenantID, status string, limit, offset int) ([]*entity.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE tenant_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY title LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, tenantID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		var d entity.Document
		if err := rows.Scan(
			&d.ID, &d.TenantID, &d.Title, &d.Key, &d.ContentType, &d.Version, &d.OwnerID, &d.Status, &d.NextReviewDate, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Update persists the document's mutable fields (a new key bumps Version in
// the use case).
func (r *DocumentRepo) Update(d *entity.Document) error {
	query := `
		UPDATE documents
		SET title = $3, key = $4, content_type = $5, version = $6, owner_id = $7,
		    status = $8, next_review_date = $9, updated_at = $10
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		d.TenantID, d.ID, d.Title, d.Key, d.ContentType, d.Version, d.OwnerID,
		d.Status, d.NextReviewDate, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}
