// Package digest builds and sends the periodic "things needing your
// attention" emails. The aggregation is stateless: it reads current deadlines
// only, so a crashed run is simply re-evaluated by the next scheduled one.
package digest

import (
	"context"
	"fmt"
	"time"

	"github.com/trygghms/hms-api/internal/application/batch"
	"github.com/trygghms/hms-api/internal/application/ports"
	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/repository"
	"github.com/trygghms/hms-api/pkg/logger"
)

// Lookahead windows for upcoming items.
const (
	dailyLookahead  = 7 * 24 * time.Hour
	weeklyLookahead = 14 * 24 * time.Hour
)

// Data is everything a single user's digest aggregates.
type Data struct {
	TenantName string
	UserName   string

	OverdueIncidents []repository.DigestItem
	OverdueMeasures  []repository.DigestItem
	UpcomingMeasures []repository.DigestItem
	ExpiringTraining []repository.DigestItem
	UpcomingEvents   []repository.DigestItem

	Reviews             repository.ReviewCounts
	UnreadNotifications int
}

// HasContent reports whether there is anything worth emailing. An entirely
// empty digest is suppressed to avoid noise.
func (d Data) HasContent() bool {
	if len(d.OverdueIncidents) > 0 || len(d.OverdueMeasures) > 0 ||
		len(d.UpcomingMeasures) > 0 || len(d.ExpiringTraining) > 0 ||
		len(d.UpcomingEvents) > 0 {
		return true
	}
	if d.Reviews.Documents > 0 || d.Reviews.Chemicals > 0 || d.Reviews.Risks > 0 {
		return true
	}
	return d.UnreadNotifications > 0
}

// Report is the batch outcome of one digest run.
type Report struct {
	Frequency string `json:"frequency"`
	Sent      int    `json:"sent"`
	Skipped   int    `json:"skipped"` // nothing to report
	Failed    int    `json:"failed"`
}

// Service gathers and dispatches digests.
type Service struct {
	tenants repository.TenantRepository
	users   repository.UserRepository
	repo    repository.DigestRepository
	mailer  ports.Mailer
	log     *logger.Logger
	now     func() time.Time
}

// NewService wires the digest job.
func NewService(
	tenants repository.TenantRepository,
	users repository.UserRepository,
	repo repository.DigestRepository,
	mailer ports.Mailer,
	log *logger.Logger,
) *Service {
	return &Service{
		tenants: tenants,
		users:   users,
		repo:    repo,
		mailer:  mailer,
		log:     log,
		now:     time.Now,
	}
}

// Run sends digests for every ACTIVE tenant to every member opted into the
// given frequency (entity.DigestDaily or entity.DigestWeekly). A failure for
// one user is counted and the batch continues.
func (s *Service) Run(ctx context.Context, frequency string) (*Report, error) {
	if frequency != entity.DigestDaily && frequency != entity.DigestWeekly {
		return nil, fmt.Errorf("unknown digest frequency %q", frequency)
	}
	report := &Report{Frequency: frequency}

	tenants, err := s.tenants.ListActive()
	if err != nil {
		return nil, fmt.Errorf("list active tenants: %w", err)
	}

	for _, tenant := range tenants {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		users, err := s.users.ListByTenantAndDigest(tenant.ID, frequency)
		if err != nil {
			s.log.Error().Err(err).Str("tenant_id", tenant.ID).Msg("digest: list users failed")
			continue
		}

		res := batch.ForEach(ctx, users,
			func(u *entity.User) string { return u.ID },
			func(u *entity.User) error {
				sent, err := s.sendForUser(ctx, tenant, u, frequency)
				if err != nil {
					return err
				}
				if sent {
					report.Sent++
				} else {
					report.Skipped++
				}
				return nil
			})
		report.Failed += res.Failed
		for _, ue := range res.Errors {
			s.log.Warn().
				Str("tenant_id", tenant.ID).
				Str("user_id", ue.Key).
				Err(ue.Err).
				Msg("digest: user failed")
		}
	}

	s.log.Info().
		Str("frequency", frequency).
		Int("sent", report.Sent).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Msg("digest run finished")
	return report, nil
}

// sendForUser gathers one user's digest and emails it. Returns false when the
// digest was empty and therefore suppressed.
func (s *Service) sendForUser(ctx context.Context, tenant *entity.Tenant, user *entity.User, frequency string) (bool, error) {
	data, err := s.Gather(ctx, tenant, user, frequency)
	if err != nil {
		return false, fmt.Errorf("gather: %w", err)
	}
	if !data.HasContent() {
		return false, nil
	}

	html, err := Render(*data)
	if err != nil {
		return false, fmt.Errorf("render: %w", err)
	}
	subject := fmt.Sprintf("Your HSE summary for %s", tenant.Name)
	msg := ports.Message{
		ToName:  user.Name,
		ToEmail: user.Email,
		Subject: subject,
		HTML:    html,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return false, fmt.Errorf("send: %w", err)
	}
	return true, nil
}

// Gather collects the fixed set of "things needing attention" for one user.
func (s *Service) Gather(ctx context.Context, tenant *entity.Tenant, user *entity.User, frequency string) (*Data, error) {
	now := s.now()
	lookahead := dailyLookahead
	if frequency == entity.DigestWeekly {
		lookahead = weeklyLookahead
	}
	deadline := now.Add(lookahead)

	data := &Data{TenantName: tenant.Name, UserName: user.Name}
	var err error

	if data.OverdueIncidents, err = s.repo.OverdueIncidents(ctx, tenant.ID, user.ID, now); err != nil {
		return nil, fmt.Errorf("overdue incidents: %w", err)
	}
	if data.OverdueMeasures, err = s.repo.OverdueMeasures(ctx, tenant.ID, user.ID, now); err != nil {
		return nil, fmt.Errorf("overdue measures: %w", err)
	}
	if data.UpcomingMeasures, err = s.repo.UpcomingMeasures(ctx, tenant.ID, user.ID, now, deadline); err != nil {
		return nil, fmt.Errorf("upcoming measures: %w", err)
	}
	if data.ExpiringTraining, err = s.repo.ExpiringTraining(ctx, tenant.ID, user.ID, deadline); err != nil {
		return nil, fmt.Errorf("expiring training: %w", err)
	}
	if data.UpcomingEvents, err = s.repo.UpcomingEvents(ctx, tenant.ID, now, deadline); err != nil {
		return nil, fmt.Errorf("upcoming events: %w", err)
	}
	if data.Reviews, err = s.repo.ReviewCounts(ctx, tenant.ID, deadline); err != nil {
		return nil, fmt.Errorf("review counts: %w", err)
	}
	if data.UnreadNotifications, err = s.repo.UnreadNotifications(ctx, tenant.ID, user.ID); err != nil {
		return nil, fmt.Errorf("unread notifications: %w", err)
	}
	return data, nil
}
