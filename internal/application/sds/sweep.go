package sds

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/trygghms/hms-api/internal/application/batch"
	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/repository"
	"github.com/trygghms/hms-api/pkg/logger"

	"github.com/google/uuid"
)

// TenantSweepResult is the per-tenant breakdown of a sweep run.
type TenantSweepResult struct {
	TenantID   string `json:"tenant_id"`
	TenantName string `json:"tenant_name"`
	Checked    int    `json:"checked"`
	Updated    int    `json:"updated"`
	Failed     int    `json:"failed"`
}

// SweepReport is the aggregate outcome of a fleet-wide sweep, meant for the
// operational cron log, not for end users.
type SweepReport struct {
	StartedAt    time.Time           `json:"started_at"`
	FinishedAt   time.Time           `json:"finished_at"`
	TotalChecked int                 `json:"total_checked"`
	TotalUpdated int                 `json:"total_updated"`
	TotalFailed  int                 `json:"total_failed"`
	Tenants      []TenantSweepResult `json:"tenants"`
}

// checker is the slice of Service the sweep needs; tests substitute a fake.
type checker interface {
	CheckQuiet(ctx context.Context, tenantID, chemicalID string) CheckResult
}

// Sweeper walks every ACTIVE tenant's checkable chemicals through the update
// check, throttled by a shared token bucket so supplier APIs are not hammered
// across potentially thousands of chemicals.
type Sweeper struct {
	tenants   repository.TenantRepository
	chemicals repository.ChemicalRepository
	notifs    repository.NotificationRepository
	checker   checker
	limiter   *rate.Limiter
	log       *logger.Logger
	now       func() time.Time
}

// NewSweeper builds the sweeper. rps is the sustained supplier-request rate;
// the production default is 0.5 (one request every two seconds).
func NewSweeper(
	tenants repository.TenantRepository,
	chemicals repository.ChemicalRepository,
	notifs repository.NotificationRepository,
	svc *Service,
	rps float64,
	log *logger.Logger,
) *Sweeper {
	return &Sweeper{
		tenants:   tenants,
		chemicals: chemicals,
		notifs:    notifs,
		checker:   svc,
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		log:       log,
		now:       time.Now,
	}
}

// SweepAll runs the fleet-wide check. One failing chemical never aborts the
// rest of its tenant or subsequent tenants; a failed check still counts as
// checked. Returns an error only when the tenant list itself cannot be read
// or the context is cancelled.
func (s *Sweeper) SweepAll(ctx context.Context) (*SweepReport, error) {
	report := &SweepReport{StartedAt: s.now()}

	tenants, err := s.tenants.ListActive()
	if err != nil {
		return nil, fmt.Errorf("list active tenants: %w", err)
	}

	for _, tenant := range tenants {
		if ctx.Err() != nil {
			report.FinishedAt = s.now()
			return report, ctx.Err()
		}
		tr := s.sweepTenant(ctx, tenant)
		report.TotalChecked += tr.Checked
		report.TotalUpdated += tr.Updated
		report.TotalFailed += tr.Failed
		report.Tenants = append(report.Tenants, tr)
	}

	report.FinishedAt = s.now()
	s.log.Info().
		Int("tenants", len(report.Tenants)).
		Int("checked", report.TotalChecked).
		Int("updated", report.TotalUpdated).
		Int("failed", report.TotalFailed).
		Msg("sds sweep finished")
	return report, nil
}

// sweepTenant checks every checkable chemical of one tenant. Failure to list
// the tenant's chemicals is isolated to that tenant.
func (s *Sweeper) sweepTenant(ctx context.Context, tenant *entity.Tenant) TenantSweepResult {
	tr := TenantSweepResult{TenantID: tenant.ID, TenantName: tenant.Name}

	chems, err := s.chemicals.ListCheckable(tenant.ID)
	if err != nil {
		s.log.Error().Err(err).Str("tenant_id", tenant.ID).Msg("sweep: list chemicals failed")
		return tr
	}
	if len(chems) == 0 {
		return tr
	}

	updated := 0
	res := batch.ForEach(ctx, chems,
		func(c *entity.Chemical) string { return c.ID },
		func(c *entity.Chemical) error {
			// Serial throttle against third-party supplier APIs; Wait also
			// returns promptly on cancellation.
			if err := s.limiter.Wait(ctx); err != nil {
				return err
			}
			r := s.checker.CheckQuiet(ctx, tenant.ID, c.ID)
			if !r.Success {
				return fmt.Errorf("check failed: %s", r.Message)
			}
			if r.WasUpdated {
				updated++
			}
			return nil
		})

	for _, ue := range res.Errors {
		s.log.Warn().
			Str("tenant_id", tenant.ID).
			Str("chemical_id", ue.Key).
			Err(ue.Err).
			Msg("sweep: chemical check failed")
	}

	tr.Checked = res.Total
	tr.Updated = updated
	tr.Failed = res.Failed

	// One aggregate notification per tenant instead of one per chemical.
	if tr.Checked > 0 {
		if err := s.notifySweep(tenant, tr); err != nil {
			s.log.Warn().Err(err).Str("tenant_id", tenant.ID).Msg("sweep notification failed")
		}
	}
	return tr
}

func (s *Sweeper) notifySweep(tenant *entity.Tenant, tr TenantSweepResult) error {
	recipients, err := s.tenants.ListNotifiableMembers(tenant.ID)
	if err != nil {
		return fmt.Errorf("list recipients: %w", err)
	}
	if len(recipients) == 0 {
		return nil
	}
	ns := make([]*entity.Notification, 0, len(recipients))
	for _, m := range recipients {
		ns = append(ns, &entity.Notification{
			ID:        uuid.New().String(),
			TenantID:  tenant.ID,
			UserID:    m.UserID,
			Type:      entity.NotifySDSSweep,
			Title:     "Weekly SDS check completed",
			Message:   fmt.Sprintf("Checked %d chemicals, %d updated.", tr.Checked, tr.Updated),
			Link:      "/chemicals",
			CreatedAt: s.now(),
		})
	}
	return s.notifs.CreateBatch(ns)
}
