package usecase_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trygghms/hms-api/internal/application/dto"
	"github.com/trygghms/hms-api/internal/application/usecase"
	"github.com/trygghms/hms-api/internal/domain"
	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/repository"
)

type fakeIncidents struct {
	byID    map[string]*entity.Incident
	created []*entity.Incident
	failOn  error
}

func newFakeIncidents() *fakeIncidents {
	return &fakeIncidents{byID: map[string]*entity.Incident{}}
}

func (f *fakeIncidents) Create(inc *entity.Incident) error {
	if f.failOn != nil {
		return f.failOn
	}
	f.byID[inc.ID] = inc
	f.created = append(f.created, inc)
	return nil
}

func (f *fakeIncidents) GetByTenantAndID(tenantID, id string) (*entity.Incident, error) {
	inc, ok := f.byID[id]
	if !ok || inc.TenantID != tenantID {
		return nil, nil
	}
	return inc, nil
}

func (f *fakeIncidents) ListByTenant(tenantID, status string, limit, offset int) ([]*entity.Incident, error) {
	var out []*entity.Incident
	for _, inc := range f.byID {
		if inc.TenantID == tenantID && (status == "" || inc.Status == status) {
			out = append(out, inc)
		}
	}
	return out, nil
}

func (f *fakeIncidents) Update(inc *entity.Incident) error {
	f.byID[inc.ID] = inc
	return nil
}

type fakeMeasures struct {
	byID map[string]*entity.Measure
}

func newFakeMeasures() *fakeMeasures {
	return &fakeMeasures{byID: map[string]*entity.Measure{}}
}

func (f *fakeMeasures) Create(m *entity.Measure) error {
	f.byID[m.ID] = m
	return nil
}

func (f *fakeMeasures) GetByTenantAndID(tenantID, id string) (*entity.Measure, error) {
	m, ok := f.byID[id]
	if !ok || m.TenantID != tenantID {
		return nil, nil
	}
	return m, nil
}

func (f *fakeMeasures) ListByIncident(tenantID, incidentID string) ([]*entity.Measure, error) {
	var out []*entity.Measure
	for _, m := range f.byID {
		if m.TenantID == tenantID && m.IncidentID == incidentID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMeasures) Update(m *entity.Measure) error {
	f.byID[m.ID] = m
	return nil
}

type fakeMembers struct {
	recipients []*entity.UserTenant
}

func (f *fakeMembers) Create(*entity.Tenant) error                   { return nil }
func (f *fakeMembers) GetByID(string) (*entity.Tenant, error)        { return nil, nil }
func (f *fakeMembers) ListActive() ([]*entity.Tenant, error)         { return nil, nil }
func (f *fakeMembers) UpdateStatus(string, string) error             { return nil }
func (f *fakeMembers) AddMember(*entity.UserTenant) error            { return nil }
func (f *fakeMembers) GetMember(string, string) (*entity.UserTenant, error) {
	return nil, nil
}
func (f *fakeMembers) ListMembers(string) ([]*entity.UserTenant, error) { return nil, nil }
func (f *fakeMembers) ListNotifiableMembers(string) ([]*entity.UserTenant, error) {
	return f.recipients, nil
}

// fakeNotifStore records batched notifications written inside the tx.
type fakeNotifStore struct {
	batched []*entity.Notification
}

func (f *fakeNotifStore) Create(n *entity.Notification) error { return nil }
func (f *fakeNotifStore) CreateBatch(ns []*entity.Notification) error {
	f.batched = append(f.batched, ns...)
	return nil
}
func (f *fakeNotifStore) ListByUser(string, string, bool, int, int) ([]*entity.Notification, error) {
	return nil, nil
}
func (f *fakeNotifStore) UnreadCount(string, string) (int, error) { return 0, nil }
func (f *fakeNotifStore) MarkRead(string, string, string) error   { return nil }
func (f *fakeNotifStore) MarkAllRead(string, string) error        { return nil }

// fakeTx runs the callback against the given repos, mimicking a committed
// transaction. rollbackOn makes every call fail without touching the stores.
type fakeTx struct {
	incidents  repository.IncidentRepository
	notifs     repository.NotificationRepository
	rollbackOn error
}

func (f *fakeTx) Run(fn func(repository.IncidentRepository, repository.NotificationRepository) error) error {
	if f.rollbackOn != nil {
		return f.rollbackOn
	}
	return fn(f.incidents, f.notifs)
}

func buildIncidentUC(recipients []*entity.UserTenant) (*usecase.IncidentUseCase, *fakeIncidents, *fakeMeasures, *fakeNotifStore) {
	incidents := newFakeIncidents()
	measures := newFakeMeasures()
	notifs := &fakeNotifStore{}
	tx := &fakeTx{incidents: incidents, notifs: notifs}
	uc := usecase.NewIncidentUseCase(incidents, measures, &fakeMembers{recipients: recipients}, tx)
	return uc, incidents, measures, notifs
}

func TestReport_NotifiesAdminsExceptReporter(t *testing.T) {
	recipients := []*entity.UserTenant{
		{UserID: "admin-1", TenantID: "t1", Role: entity.RoleAdmin},
		{UserID: "hms-1", TenantID: "t1", Role: entity.RoleHMS},
		{UserID: "reporter", TenantID: "t1", Role: entity.RoleHMS},
	}
	uc, incidents, _, notifs := buildIncidentUC(recipients)

	out, err := uc.Report("t1", "reporter", dto.CreateIncidentRequest{
		Title:    "Forklift near miss",
		Category: "NEAR_MISS",
		Severity: 3,
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	require.Len(t, incidents.created, 1)
	assert.Equal(t, entity.IncidentOpen, incidents.created[0].Status)
	assert.Equal(t, "reporter", incidents.created[0].ReportedBy)

	// The reporter never gets a notification about their own incident.
	require.Len(t, notifs.batched, 2)
	for _, n := range notifs.batched {
		assert.NotEqual(t, "reporter", n.UserID)
		assert.Equal(t, entity.NotifyIncident, n.Type)
		assert.Contains(t, n.Message, "Forklift near miss")
		assert.Equal(t, "/incidents/"+out.ID, n.Link)
	}
}

func TestReport_TxFailureCreatesNothing(t *testing.T) {
	incidents := newFakeIncidents()
	notifs := &fakeNotifStore{}
	tx := &fakeTx{incidents: incidents, notifs: notifs, rollbackOn: errors.New("serialization failure")}
	uc := usecase.NewIncidentUseCase(incidents, newFakeMeasures(), &fakeMembers{}, tx)

	out, err := uc.Report("t1", "u1", dto.CreateIncidentRequest{Title: "Spill", Category: "SPILL", Severity: 2})
	assert.Error(t, err)
	assert.Nil(t, out)
	assert.Empty(t, incidents.created)
	assert.Empty(t, notifs.batched)
}

func TestUpdate_CloseSetsClosedAtAndReopenClears(t *testing.T) {
	uc, incidents, _, _ := buildIncidentUC(nil)
	out, err := uc.Report("t1", "u1", dto.CreateIncidentRequest{Title: "Cut", Category: "INJURY", Severity: 1})
	require.NoError(t, err)

	closed := entity.IncidentClosed
	upd, err := uc.Update("t1", out.ID, dto.UpdateIncidentRequest{Status: &closed})
	require.NoError(t, err)
	require.NotNil(t, upd)
	require.NotNil(t, incidents.byID[out.ID].ClosedAt)
	assert.WithinDuration(t, time.Now(), *incidents.byID[out.ID].ClosedAt, time.Minute)

	open := entity.IncidentOpen
	_, err = uc.Update("t1", out.ID, dto.UpdateIncidentRequest{Status: &open})
	require.NoError(t, err)
	assert.Nil(t, incidents.byID[out.ID].ClosedAt)
}

func TestUpdate_OtherTenantSeesNothing(t *testing.T) {
	uc, _, _, _ := buildIncidentUC(nil)
	out, err := uc.Report("t1", "u1", dto.CreateIncidentRequest{Title: "Cut", Category: "INJURY", Severity: 1})
	require.NoError(t, err)

	title := "hijack"
	upd, err := uc.Update("t2", out.ID, dto.UpdateIncidentRequest{Title: &title})
	require.NoError(t, err)
	assert.Nil(t, upd)
}

func TestAddMeasure_UnknownIncident(t *testing.T) {
	uc, _, _, _ := buildIncidentUC(nil)
	_, err := uc.AddMeasure("t1", "missing", dto.CreateMeasureRequest{Title: "Fix guard"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMeasureLifecycle(t *testing.T) {
	uc, _, measures, _ := buildIncidentUC(nil)
	inc, err := uc.Report("t1", "u1", dto.CreateIncidentRequest{Title: "Leak", Category: "SPILL", Severity: 2})
	require.NoError(t, err)

	m, err := uc.AddMeasure("t1", inc.ID, dto.CreateMeasureRequest{Title: "Replace seal", AssignedTo: "u2"})
	require.NoError(t, err)
	assert.Equal(t, entity.MeasureOpen, m.Status)

	done := entity.MeasureDone
	upd, err := uc.UpdateMeasure("t1", m.ID, dto.UpdateMeasureRequest{Status: &done})
	require.NoError(t, err)
	require.NotNil(t, upd)
	require.NotNil(t, measures.byID[m.ID].CompletedAt)

	list, err := uc.ListMeasures("t1", inc.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
