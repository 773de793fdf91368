package digest_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trygghms/hms-api/internal/application/digest"
	"github.com/trygghms/hms-api/internal/application/ports"
	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/repository"
	"github.com/trygghms/hms-api/pkg/logger"
)

type fakeTenants struct {
	active []*entity.Tenant
}

func (f *fakeTenants) Create(*entity.Tenant) error                { return nil }
func (f *fakeTenants) GetByID(string) (*entity.Tenant, error)     { return nil, nil }
func (f *fakeTenants) ListActive() ([]*entity.Tenant, error)      { return f.active, nil }
func (f *fakeTenants) UpdateStatus(string, string) error          { return nil }
func (f *fakeTenants) AddMember(*entity.UserTenant) error         { return nil }
func (f *fakeTenants) GetMember(string, string) (*entity.UserTenant, error) {
	return nil, nil
}
func (f *fakeTenants) ListMembers(string) ([]*entity.UserTenant, error) { return nil, nil }
func (f *fakeTenants) ListNotifiableMembers(string) ([]*entity.UserTenant, error) {
	return nil, nil
}

type fakeUsers struct {
	byTenant map[string][]*entity.User
}

func (f *fakeUsers) Create(*entity.User) error                 { return nil }
func (f *fakeUsers) GetByID(string) (*entity.User, error)      { return nil, nil }
func (f *fakeUsers) GetByEmail(string) (*entity.User, error)   { return nil, nil }
func (f *fakeUsers) Update(*entity.User) error                 { return nil }
func (f *fakeUsers) ListByTenantAndDigest(tenantID, _ string) ([]*entity.User, error) {
	return f.byTenant[tenantID], nil
}

// fakeDigestRepo returns per-user canned digest content.
type fakeDigestRepo struct {
	overdueMeasures map[string][]repository.DigestItem // by userID
	unread          map[string]int
	failUser        string
}

func (f *fakeDigestRepo) OverdueIncidents(_ context.Context, _, userID string, _ time.Time) ([]repository.DigestItem, error) {
	if userID == f.failUser {
		return nil, errors.New("query timeout")
	}
	return nil, nil
}
func (f *fakeDigestRepo) OverdueMeasures(_ context.Context, _, userID string, _ time.Time) ([]repository.DigestItem, error) {
	return f.overdueMeasures[userID], nil
}
func (f *fakeDigestRepo) UpcomingMeasures(context.Context, string, string, time.Time, time.Time) ([]repository.DigestItem, error) {
	return nil, nil
}
func (f *fakeDigestRepo) ExpiringTraining(context.Context, string, string, time.Time) ([]repository.DigestItem, error) {
	return nil, nil
}
func (f *fakeDigestRepo) UpcomingEvents(context.Context, string, time.Time, time.Time) ([]repository.DigestItem, error) {
	return nil, nil
}
func (f *fakeDigestRepo) ReviewCounts(context.Context, string, time.Time) (repository.ReviewCounts, error) {
	return repository.ReviewCounts{}, nil
}
func (f *fakeDigestRepo) UnreadNotifications(_ context.Context, _, userID string) (int, error) {
	return f.unread[userID], nil
}

type fakeMailer struct {
	sent []ports.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg ports.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func item(kind, title string) repository.DigestItem {
	return repository.DigestItem{ID: "i1", Kind: kind, Title: title, Due: time.Now()}
}

func TestHasContent(t *testing.T) {
	assert.False(t, digest.Data{}.HasContent())
	assert.False(t, digest.Data{TenantName: "Acme", UserName: "Kari"}.HasContent(),
		"names alone are not content")
	assert.True(t, digest.Data{OverdueIncidents: []repository.DigestItem{item("incident", "Spill")}}.HasContent())
	assert.True(t, digest.Data{Reviews: repository.ReviewCounts{Chemicals: 1}}.HasContent())
	assert.True(t, digest.Data{UnreadNotifications: 3}.HasContent())
}

func TestRun_UnknownFrequency(t *testing.T) {
	svc := digest.NewService(&fakeTenants{}, &fakeUsers{}, &fakeDigestRepo{}, &fakeMailer{}, logger.Nop())
	_, err := svc.Run(context.Background(), "MONTHLY")
	require.Error(t, err)
}

func TestRun_EmptyDigestSuppressed(t *testing.T) {
	tenants := &fakeTenants{active: []*entity.Tenant{{ID: "t1", Name: "Acme", Status: entity.TenantActive}}}
	users := &fakeUsers{byTenant: map[string][]*entity.User{
		"t1": {
			{ID: "u1", Name: "Kari", Email: "kari@acme.no", DigestFrequency: entity.DigestDaily},
			{ID: "u2", Name: "Ola", Email: "ola@acme.no", DigestFrequency: entity.DigestDaily},
		},
	}}
	repo := &fakeDigestRepo{
		overdueMeasures: map[string][]repository.DigestItem{
			"u2": {item("measure", "Replace extinguisher")},
		},
	}
	mailer := &fakeMailer{}
	svc := digest.NewService(tenants, users, repo, mailer, logger.Nop())

	report, err := svc.Run(context.Background(), entity.DigestDaily)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 1, report.Skipped, "empty digest must not produce an email")
	assert.Zero(t, report.Failed)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ola@acme.no", mailer.sent[0].ToEmail)
	assert.Contains(t, mailer.sent[0].Subject, "Acme")
	assert.Contains(t, mailer.sent[0].HTML, "Replace extinguisher")
}

func TestRun_UserFailureDoesNotAbortBatch(t *testing.T) {
	tenants := &fakeTenants{active: []*entity.Tenant{{ID: "t1", Name: "Acme", Status: entity.TenantActive}}}
	users := &fakeUsers{byTenant: map[string][]*entity.User{
		"t1": {
			{ID: "u1", Name: "Kari", Email: "kari@acme.no"},
			{ID: "u2", Name: "Ola", Email: "ola@acme.no"},
		},
	}}
	repo := &fakeDigestRepo{
		failUser: "u1",
		unread:   map[string]int{"u2": 2},
	}
	mailer := &fakeMailer{}
	svc := digest.NewService(tenants, users, repo, mailer, logger.Nop())

	report, err := svc.Run(context.Background(), entity.DigestWeekly)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Sent, "later users still get their digest")
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ola@acme.no", mailer.sent[0].ToEmail)
}

func TestRun_MailerFailureCounted(t *testing.T) {
	tenants := &fakeTenants{active: []*entity.Tenant{{ID: "t1", Name: "Acme", Status: entity.TenantActive}}}
	users := &fakeUsers{byTenant: map[string][]*entity.User{
		"t1": {{ID: "u1", Name: "Kari", Email: "kari@acme.no"}},
	}}
	repo := &fakeDigestRepo{unread: map[string]int{"u1": 1}}
	svc := digest.NewService(tenants, users, repo, &fakeMailer{err: errors.New("sendgrid 503")}, logger.Nop())

	report, err := svc.Run(context.Background(), entity.DigestDaily)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Zero(t, report.Sent)
}

func TestRender_EscapesContent(t *testing.T) {
	data := digest.Data{
		TenantName: "Acme",
		UserName:   "Kari",
		OverdueMeasures: []repository.DigestItem{
			{ID: "m1", Kind: "measure", Title: "<script>alert(1)</script>", Due: time.Now()},
		},
	}
	html, err := digest.Render(data)
	require.NoError(t, err)
	assert.False(t, strings.Contains(html, "<script>"), "item titles must be escaped")
	assert.Contains(t, html, "Kari")
}
