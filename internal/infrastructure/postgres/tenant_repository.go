package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/trygghms/hms-api/internal/domain"
	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/repository"
)

var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo implements TenantRepository over PostgreSQL (usable with pool or tx).
type TenantRepo struct {
	q Querier
}

// NewTenantRepository builds the tenant persistence adapter. Pass pool or tx (Querier).
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

// Create persists a new tenant.
func (r *TenantRepo) Create(t *entity.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, org_number, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Name, t.OrgNumber, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// GetByID fetches a tenant by ID.
func (r *TenantRepo) GetByID(id string) (*entity.Tenant, error) {
	query := `
		SELECT id, name, org_number, status, created_at, updated_at
		FROM tenants WHERE id = $1`
	var t entity.Tenant
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Name, &t.OrgNumber, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return &t, nil
}

// ListActive lists ACTIVE tenants, the population for every background job.
func (r *TenantRepo) ListActive() ([]*entity.Tenant, error) {
	query := `
		SELECT id, name, org_number, status, created_at, updated_at
		FROM tenants WHERE status = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, entity.TenantActive)
	if err != nil {
		return nil, fmt.Errorf("list active tenants: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tenant
	for rows.Next() {
		var t entity.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.OrgNumber, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// UpdateStatus changes the tenant lifecycle status.
func (r *TenantRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE tenants SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update tenant status: %w", err)
	}
	return nil
}

// AddMember inserts a membership row.
func (r *TenantRepo) AddMember(m *entity.UserTenant) error {
	query := `
		INSERT INTO user_tenants (user_id, tenant_id, role, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, m.UserID, m.TenantID, m.Role, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

// GetMember fetches one membership row.
func (r *TenantRepo) GetMember(tenantID, userID string) (*entity.UserTenant, error) {
	query := `
		SELECT user_id, tenant_id, role, created_at
		FROM user_tenants WHERE tenant_id = $1 AND user_id = $2`
	var m entity.UserTenant
	err := r.q.QueryRow(context.Background(), query, tenantID, userID).Scan(
		&m.UserID, &m.TenantID, &m.Role, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	return &m, nil
}

// ListMembers lists the tenant's memberships.
func (r *TenantRepo) ListMembers(tenantID string) ([]*entity.UserTenant, error) {
	query := `
		SELECT user_id, tenant_id, role, created_at
		FROM user_tenants WHERE tenant_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()
	var list []*entity.UserTenant
	for rows.Next() {
		var m entity.UserTenant
		if err := rows.Scan(&m.UserID, &m.TenantID, &m.Role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListNotifiableMembers lists the members who receive platform notifications
// (ADMIN and HMS).
func (r *TenantRepo) ListNotifiableMembers(tenantID string) ([]*entity.UserTenant, error) {
	query := `
		SELECT user_id, tenant_id, role, created_at
		FROM user_tenants WHERE tenant_id = $1 AND role IN ($2, $3)`
	rows, err := r.q.Query(context.Background(), query, tenantID, entity.RoleAdmin, entity.RoleHMS)
	if err != nil {
		return nil, fmt.Errorf("list sds recipients: %w", err)
	}
	defer rows.Close()
	var list []*entity.UserTenant
	for rows.Next() {
		var m entity.UserTenant
		if err := rows.Scan(&m.UserID, &m.TenantID, &m.Role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sds recipient: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
