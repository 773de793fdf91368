package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/trygghms/hms-api/internal/domain"
	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/repository"
)

var _ repository.ChemicalRepository = (*ChemicalRepo)(nil)

// ChemicalRepo implements ChemicalRepository over PostgreSQL (usable with pool or tx).
type ChemicalRepo struct {
	q Querier
}

// NewChemicalRepository builds the chemical persistence adapter. Pass pool or tx (Querier).
func NewChemicalRepository(q Querier) *ChemicalRepo {
	return &ChemicalRepo{q: q}
}

const chemicalColumns = `id, tenant_id, name, supplier, cas_number,
	sds_key, sds_date, sds_version,
	hazard_statements, precautionary_statements, signal_word,
	is_cmr, is_svhc, echa_id, last_echa_sync,
	amount, unit, location,
	status, next_review_date, last_verified_at, created_at, updated_at`

func scanChemical(row pgx.Row) (*entity.Chemical, error) {
	var c entity.Chemical
	err := row.Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Supplier, &c.CasNumber,
		&c.SDSKey, &c.SDSDate, &c.SDSVersion,
		&c.HazardStatements, &c.PrecautionaryStatements, &c.SignalWord,
		&c.IsCMR, &c.IsSVHC, &c.EchaID, &c.LastEchaSync,
		&c.Amount, &c.Unit, &c.Location,
		&c.Status, &c.NextReviewDate, &c.LastVerifiedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Create persists a new chemical.
func (r *ChemicalRepo) Create(c *entity.Chemical) error {
	query := `
		INSERT INTO chemicals (` + chemicalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.TenantID, c.Name, c.Supplier, c.CasNumber,
		c.SDSKey, c.SDSDate, c.SDSVersion,
		c.HazardStatements, c.PrecautionaryStatements, c.SignalWord,
		c.IsCMR, c.IsSVHC, c.EchaID, c.LastEchaSync,
		c.Amount, c.Unit, c.Location,
		c.Status, c.NextReviewDate, c.LastVerifiedAt, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert chemical: %w", err)
	}
	return nil
}

// GetByTenantAndID fetches a chemical scoped to the tenant; a mismatched
// tenant ID behaves as not-found.
func (r *ChemicalRepo) GetByTenantAndID(tenantID, id string) (*entity.Chemical, error) {
	c, err := scanChemical(r.q.QueryRow(context.Background(),
		`SELECT `+chemicalColumns+` FROM chemicals WHERE tenant_id = $1 AND id = $2`,
		tenantID, id))
	if err != nil {
		return nil, fmt.Errorf("get chemical: %w", err)
	}
	return c, nil
}

// ListByTenant lists chemicals with optional search and status filters.
// The search term arrives pre-normalized (lowercased, diacritics stripped).
func (r *ChemicalRepo) ListByTenant(tenantID, search, status string, limit, offset int) ([]*entity.Chemical, error) {
	query := `
		SELECT ` + chemicalColumns + `
		FROM chemicals
		WHERE tenant_id = $1
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR supplier ILIKE '%' || $2 || '%' OR cas_number ILIKE '%' || $2 || '%')
		  AND ($3 = '' OR status = $3)
		ORDER BY name LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, tenantID, search, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list chemicals: %w", err)
	}
	defer rows.Close()
	return collectChemicals(rows)
}

// ListCheckable lists the ACTIVE chemicals with a supplier and CAS number set,
// the unit of work for the fleet-wide SDS sweep.
func (r *ChemicalRepo) ListCheckable(tenantID string) ([]*entity.Chemical, error) {
	query := `
		SELECT ` + chemicalColumns + `
		FROM chemicals
		WHERE tenant_id = $1 AND status = $2 AND supplier <> '' AND cas_number <> ''
		ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, tenantID, entity.ChemicalActive)
	if err != nil {
		return nil, fmt.Errorf("list checkable chemicals: %w", err)
	}
	defer rows.Close()
	return collectChemicals(rows)
}

func collectChemicals(rows pgx.Rows) ([]*entity.Chemical, error) {
	var list []*entity.Chemical
	for rows.Next() {
		var c entity.Chemical
		if err := rows.Scan(
			&c.ID, &c.TenantID, &c.Name, &c.Supplier, &c.CasNumber,
			&c.SDSKey, &c.SDSDate, &c.SDSVersion,
			&c.HazardStatements, &c.PrecautionaryStatements, &c.SignalWord,
			&c.IsCMR, &c.IsSVHC, &c.EchaID, &c.LastEchaSync,
			&c.Amount, &c.Unit, &c.Location,
			&c.Status, &c.NextReviewDate, &c.LastVerifiedAt, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan chemical: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update persists the mutable fields edited through the API. SDS and
// regulatory fields are owned by ApplySDSUpdate.
func (r *ChemicalRepo) Update(c *entity.Chemical) error {
	query := `
		UPDATE chemicals
		SET name = $3, supplier = $4, cas_number = $5, amount = $6, unit = $7,
		    location = $8, next_review_date = $9, updated_at = $10
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		c.TenantID, c.ID, c.Name, c.Supplier, c.CasNumber, c.Amount, c.Unit,
		c.Location, c.NextReviewDate, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update chemical: %w", err)
	}
	return nil
}

// ApplySDSUpdate writes the outcome of a successful SDS check. Nil pointers
// keep the column's current value (low-confidence extraction, no regulatory
// hit), COALESCE does the work in one statement.
func (r *ChemicalRepo) ApplySDSUpdate(tenantID, id string, upd repository.ChemicalSDSUpdate) error {
	query := `
		UPDATE chemicals
		SET sds_key = $3,
		    sds_date = $4,
		    sds_version = $5,
		    hazard_statements = COALESCE($6, hazard_statements),
		    precautionary_statements = COALESCE($7, precautionary_statements),
		    signal_word = COALESCE($8, signal_word),
		    is_cmr = COALESCE($9, is_cmr),
		    is_svhc = COALESCE($10, is_svhc),
		    echa_id = COALESCE($11, echa_id),
		    last_echa_sync = COALESCE($12, last_echa_sync),
		    updated_at = now()
		WHERE tenant_id = $1 AND id = $2`
	cmd, err := r.q.Exec(context.Background(), query,
		tenantID, id, upd.SDSKey, upd.SDSDate, upd.SDSVersion,
		upd.HazardStatements, upd.PrecautionaryStatements, upd.SignalWord,
		upd.IsCMR, upd.IsSVHC, upd.EchaID, upd.LastEchaSync,
	)
	if err != nil {
		return fmt.Errorf("apply sds update: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus moves the chemical through its lifecycle (archive, phase-out).
func (r *ChemicalRepo) UpdateStatus(tenantID, id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE chemicals SET status = $3, updated_at = now() WHERE tenant_id = $1 AND id = $2`,
		tenantID, id, status,
	)
	if err != nil {
		return fmt.Errorf("update chemical status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkVerified stamps a manual verification and schedules the next review.
func (r *ChemicalRepo) MarkVerified(tenantID, id string, at time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE chemicals
		 SET last_verified_at = $3, next_review_date = $4, updated_at = now()
		 WHERE tenant_id = $1 AND id = $2`,
		tenantID, id, at, at.AddDate(1, 0, 0),
	)
	if err != nil {
		return fmt.Errorf("mark chemical verified: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
