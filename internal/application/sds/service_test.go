package sds_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trygghms/hms-api/internal/application/ports"
	"github.com/trygghms/hms-api/internal/application/sds"
	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/hazard"
	"github.com/trygghms/hms-api/internal/domain/repository"
	"github.com/trygghms/hms-api/pkg/logger"
)

type fakeChemicals struct {
	byKey   map[string]*entity.Chemical // tenantID/chemicalID
	applied []repository.ChemicalSDSUpdate
	failOn  map[string]error // chemical ID -> error on GetByTenantAndID
}

func newFakeChemicals(chems ...*entity.Chemical) *fakeChemicals {
	f := &fakeChemicals{byKey: map[string]*entity.Chemical{}, failOn: map[string]error{}}
	for _, c := range chems {
		f.byKey[c.TenantID+"/"+c.ID] = c
	}
	return f
}

func (f *fakeChemicals) Create(*entity.Chemical) error { return nil }
func (f *fakeChemicals) GetByTenantAndID(tenantID, id string) (*entity.Chemical, error) {
	if err, ok := f.failOn[id]; ok {
		return nil, err
	}
	return f.byKey[tenantID+"/"+id], nil
}
func (f *fakeChemicals) ListByTenant(string, string, string, int, int) ([]*entity.Chemical, error) {
	return nil, nil
}
func (f *fakeChemicals) ListCheckable(tenantID string) ([]*entity.Chemical, error) {
	var out []*entity.Chemical
	for _, c := range f.byKey {
		if c.TenantID == tenantID && c.Status == entity.ChemicalActive && c.CanCheckSDS() {
			out = append(out, c)
		}
	}
	return out, nil
}
func (f *fakeChemicals) Update(*entity.Chemical) error { return nil }
func (f *fakeChemicals) ApplySDSUpdate(tenantID, id string, upd repository.ChemicalSDSUpdate) error {
	c := f.byKey[tenantID+"/"+id]
	if c == nil {
		return errors.New("not found")
	}
	f.applied = append(f.applied, upd)
	c.SDSKey = upd.SDSKey
	c.SDSDate = &upd.SDSDate
	c.SDSVersion = upd.SDSVersion
	if upd.HazardStatements != nil {
		c.HazardStatements = *upd.HazardStatements
	}
	if upd.PrecautionaryStatements != nil {
		c.PrecautionaryStatements = *upd.PrecautionaryStatements
	}
	return nil
}
func (f *fakeChemicals) UpdateStatus(string, string, string) error  { return nil }
func (f *fakeChemicals) MarkVerified(string, string, time.Time) error { return nil }

type fakeTenants struct {
	active     []*entity.Tenant
	recipients map[string][]*entity.UserTenant
}

func (f *fakeTenants) Create(*entity.Tenant) error { return nil }
func (f *fakeTenants) GetByID(id string) (*entity.Tenant, error) {
	for _, t := range f.active {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}
func (f *fakeTenants) ListActive() ([]*entity.Tenant, error)  { return f.active, nil }
func (f *fakeTenants) UpdateStatus(string, string) error      { return nil }
func (f *fakeTenants) AddMember(*entity.UserTenant) error     { return nil }
func (f *fakeTenants) GetMember(string, string) (*entity.UserTenant, error) {
	return nil, nil
}
func (f *fakeTenants) ListMembers(tenantID string) ([]*entity.UserTenant, error) {
	return f.recipients[tenantID], nil
}
func (f *fakeTenants) ListNotifiableMembers(tenantID string) ([]*entity.UserTenant, error) {
	var out []*entity.UserTenant
	for _, m := range f.recipients[tenantID] {
		if m.ReceivesSDSNotifications() {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeNotifs struct {
	created []*entity.Notification
}

func (f *fakeNotifs) Create(n *entity.Notification) error { f.created = append(f.created, n); return nil }
func (f *fakeNotifs) CreateBatch(ns []*entity.Notification) error {
	f.created = append(f.created, ns...)
	return nil
}
func (f *fakeNotifs) ListByUser(string, string, bool, int, int) ([]*entity.Notification, error) {
	return nil, nil
}
func (f *fakeNotifs) UnreadCount(string, string) (int, error) { return 0, nil }
func (f *fakeNotifs) MarkRead(string, string, string) error   { return nil }
func (f *fakeNotifs) MarkAllRead(string, string) error        { return nil }

type fakeGateway struct {
	update      *ports.SDSUpdateInfo
	lookupErr   error
	lookups     int
	downloads   int
	downloadErr error
	pdf         []byte
	perChemical map[string]*ports.SDSUpdateInfo // CAS -> update
	failCAS     map[string]error
}

func (f *fakeGateway) Supports(string) bool { return true }
func (f *fakeGateway) LookupUpdate(_ context.Context, _, cas string, _ *time.Time) (*ports.SDSUpdateInfo, error) {
	f.lookups++
	if err, ok := f.failCAS[cas]; ok {
		return nil, err
	}
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if f.perChemical != nil {
		return f.perChemical[cas], nil
	}
	return f.update, nil
}
func (f *fakeGateway) Download(context.Context, string, string) ([]byte, error) {
	f.downloads++
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	if f.pdf == nil {
		return []byte("%PDF-1.4"), nil
	}
	return f.pdf, nil
}

type fakeStorage struct {
	uploads map[string][]byte
	deletes []string
	err     error
}

func (f *fakeStorage) Upload(_ context.Context, key string, data []byte, _ string) error {
	if f.err != nil {
		return f.err
	}
	if f.uploads == nil {
		f.uploads = map[string][]byte{}
	}
	f.uploads[key] = data
	return nil
}
func (f *fakeStorage) Delete(_ context.Context, key string) error {
	f.deletes = append(f.deletes, key)
	return nil
}

type fakeParser struct {
	extraction hazard.Extraction
	err        error
	calls      int
}

func (f *fakeParser) Parse(context.Context, []byte) (hazard.Extraction, error) {
	f.calls++
	if f.err != nil {
		return hazard.Extraction{}, f.err
	}
	return f.extraction, nil
}

type fakeRegulatory struct {
	info *ports.SubstanceInfo
	err  error
}

func (f *fakeRegulatory) LookupCAS(context.Context, string) (*ports.SubstanceInfo, error) {
	return f.info, f.err
}

func testChemical(tenantID, id string) *entity.Chemical {
	return &entity.Chemical{
		ID:        id,
		TenantID:  tenantID,
		Name:      "Acetone",
		Supplier:  "sigma",
		CasNumber: "67-64-1",
		Status:    entity.ChemicalActive,
	}
}

func adminMember(tenantID, userID string) *entity.UserTenant {
	return &entity.UserTenant{UserID: userID, TenantID: tenantID, Role: entity.RoleAdmin}
}

func buildService(chems *fakeChemicals, tenants *fakeTenants, notifs *fakeNotifs,
	gw *fakeGateway, reg *fakeRegulatory, st *fakeStorage, p *fakeParser) *sds.Service {
	var regulatory ports.RegulatoryClient
	if reg != nil {
		regulatory = reg
	}
	return sds.NewService(chems, tenants, notifs, gw, regulatory, st, p, logger.Nop())
}


// Missing supplier or CAS number: benign success, nothing external is called.
func TestCheckChemical_MissingSupplierOrCAS(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(*entity.Chemical)
	}{
		{"no supplier", func(c *entity.Chemical) { c.Supplier = "" }},
		{"no cas", func(c *entity.Chemical) { c.CasNumber = "" }},
		{"neither", func(c *entity.Chemical) { c.Supplier = ""; c.CasNumber = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			chem := testChemical("t1", "c1")
			tc.mutate(chem)
			gw := &fakeGateway{}
			st := &fakeStorage{}
			p := &fakeParser{}
			svc := buildService(newFakeChemicals(chem), &fakeTenants{}, &fakeNotifs{}, gw, nil, st, p)

			res := svc.CheckChemical(context.Background(), "t1", "c1")

			assert.True(t, res.Success)
			assert.False(t, res.WasUpdated)
			assert.Zero(t, gw.lookups, "supplier API must not be called")
			assert.Empty(t, st.uploads, "storage must not be written")
			assert.Zero(t, p.calls, "parser must not be called")
		})
	}
}

// No update available: success, no storage write, no notification.
func TestCheckChemical_NoUpdate(t *testing.T) {
	chem := testChemical("t1", "c1")
	chem.SDSVersion = "2.0"
	gw := &fakeGateway{update: nil}
	st := &fakeStorage{}
	notifs := &fakeNotifs{}
	svc := buildService(newFakeChemicals(chem), &fakeTenants{}, notifs, gw, nil, st, &fakeParser{})

	res := svc.CheckChemical(context.Background(), "t1", "c1")

	assert.True(t, res.Success)
	assert.False(t, res.WasUpdated)
	assert.Equal(t, "2.0", res.SDSVersion, "current version is echoed back")
	assert.Empty(t, st.uploads)
	assert.Empty(t, notifs.created)
}

// Update found: the chemical gets the gateway's version and exactly one
// notification per ADMIN/HMS member is created.
func TestCheckChemical_UpdateApplied(t *testing.T) {
	chem := testChemical("t1", "c1")
	tenants := &fakeTenants{recipients: map[string][]*entity.UserTenant{
		"t1": {
			adminMember("t1", "u-admin"),
			{UserID: "u-hms", TenantID: "t1", Role: entity.RoleHMS},
			{UserID: "u-worker", TenantID: "t1", Role: entity.RoleAnsatt},
		},
	}}
	gw := &fakeGateway{update: &ports.SDSUpdateInfo{
		Version:     "3.1",
		PublishedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		DownloadURL: "https://supplier.example/sds/67-64-1.pdf",
	}}
	st := &fakeStorage{}
	notifs := &fakeNotifs{}
	parser := &fakeParser{extraction: hazard.Extraction{
		HazardStatements:        "H225, H319",
		PrecautionaryStatements: "P210",
		SignalWord:              "Danger",
		Confidence:              0.95,
	}}
	chems := newFakeChemicals(chem)
	svc := buildService(chems, tenants, notifs, gw, nil, st, parser)

	res := svc.CheckChemical(context.Background(), "t1", "c1")

	require.True(t, res.Success)
	assert.True(t, res.WasUpdated)
	assert.Equal(t, "3.1", res.SDSVersion)
	assert.Equal(t, "3.1", chem.SDSVersion, "persisted version equals the gateway's")
	assert.Len(t, st.uploads, 1)
	for key := range st.uploads {
		assert.Contains(t, key, "sds/t1/c1-", "tenant-scoped key convention")
	}
	// One notification each for the admin and the HMS coordinator; none for
	// the regular employee.
	require.Len(t, notifs.created, 2)
	got := map[string]bool{}
	for _, n := range notifs.created {
		got[n.UserID] = true
		assert.Equal(t, entity.NotifySDSUpdated, n.Type)
	}
	assert.True(t, got["u-admin"])
	assert.True(t, got["u-hms"])
	assert.False(t, got["u-worker"])
}

// Low-confidence extraction must not overwrite existing statements.
func TestCheckChemical_LowConfidenceKeepsStatements(t *testing.T) {
	chem := testChemical("t1", "c1")
	chem.HazardStatements = "H301"
	chem.PrecautionaryStatements = "P264"
	gw := &fakeGateway{update: &ports.SDSUpdateInfo{Version: "2.0", PublishedAt: time.Now(), DownloadURL: "u"}}
	parser := &fakeParser{extraction: hazard.Extraction{
		HazardStatements: "H999",
		Confidence:       0.7, // at the threshold, not above it
	}}
	chems := newFakeChemicals(chem)
	svc := buildService(chems, &fakeTenants{}, &fakeNotifs{}, gw, nil, &fakeStorage{}, parser)

	res := svc.CheckChemical(context.Background(), "t1", "c1")

	require.True(t, res.Success)
	assert.True(t, res.WasUpdated, "the SDS file itself is still updated")
	assert.Equal(t, "H301", chem.HazardStatements, "prior statements retained")
	assert.Equal(t, "P264", chem.PrecautionaryStatements)
	require.Len(t, chems.applied, 1)
	assert.Nil(t, chems.applied[0].HazardStatements, "nil means keep existing")
}

// High-confidence extraction overwrites and normalizes.
func TestCheckChemical_HighConfidenceOverwrites(t *testing.T) {
	chem := testChemical("t1", "c1")
	chem.HazardStatements = "H301"
	gw := &fakeGateway{update: &ports.SDSUpdateInfo{Version: "2.0", PublishedAt: time.Now(), DownloadURL: "u"}}
	parser := &fakeParser{extraction: hazard.Extraction{
		HazardStatements: "h319 H225 h319",
		Confidence:       0.71,
	}}
	svc := buildService(newFakeChemicals(chem), &fakeTenants{}, &fakeNotifs{}, gw, nil, &fakeStorage{}, parser)

	res := svc.CheckChemical(context.Background(), "t1", "c1")

	require.True(t, res.Success)
	assert.Equal(t, "H225, H319", chem.HazardStatements, "deduped, sorted, uppercased")
}

// Regulatory flags are attached when the lookup succeeds, and a lookup outage
// never fails the update.
func TestCheckChemical_RegulatoryLookup(t *testing.T) {
	chem := testChemical("t1", "c1")
	gw := &fakeGateway{update: &ports.SDSUpdateInfo{Version: "2.0", PublishedAt: time.Now(), DownloadURL: "u"}}
	parser := &fakeParser{extraction: hazard.Extraction{Confidence: 0.9}}
	reg := &fakeRegulatory{info: &ports.SubstanceInfo{EchaID: "100.000.602", IsCMR: true}}
	chems := newFakeChemicals(chem)
	svc := buildService(chems, &fakeTenants{}, &fakeNotifs{}, gw, reg, &fakeStorage{}, parser)

	res := svc.CheckChemical(context.Background(), "t1", "c1")
	require.True(t, res.Success)
	require.Len(t, chems.applied, 1)
	require.NotNil(t, chems.applied[0].IsCMR)
	assert.True(t, *chems.applied[0].IsCMR)
	assert.NotNil(t, chems.applied[0].LastEchaSync)

	// outage path
	chem2 := testChemical("t1", "c2")
	chems2 := newFakeChemicals(chem2)
	svc2 := buildService(chems2, &fakeTenants{}, &fakeNotifs{}, gw, &fakeRegulatory{err: errors.New("echa down")}, &fakeStorage{}, parser)
	res2 := svc2.CheckChemical(context.Background(), "t1", "c2")
	assert.True(t, res2.Success, "regulatory outage is best-effort")
	require.Len(t, chems2.applied, 1)
	assert.Nil(t, chems2.applied[0].IsCMR)
}

// A parse failure is a structured failure, and the freshly uploaded blob is
// cleaned up rather than orphaned.
func TestCheckChemical_ParseFailureCleansBlob(t *testing.T) {
	chem := testChemical("t1", "c1")
	gw := &fakeGateway{update: &ports.SDSUpdateInfo{Version: "2.0", PublishedAt: time.Now(), DownloadURL: "u"}}
	st := &fakeStorage{}
	parser := &fakeParser{err: errors.New("garbled pdf")}
	svc := buildService(newFakeChemicals(chem), &fakeTenants{}, &fakeNotifs{}, gw, nil, st, parser)

	res := svc.CheckChemical(context.Background(), "t1", "c1")

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "parse")
	require.Len(t, st.deletes, 1, "uploaded blob must be deleted on parse failure")
}

// Failures never escape as errors or panics: they become {Success:false}.
func TestCheckChemical_FailureIsStructured(t *testing.T) {
	chem := testChemical("t1", "c1")
	gw := &fakeGateway{lookupErr: errors.New("supplier 500")}
	svc := buildService(newFakeChemicals(chem), &fakeTenants{}, &fakeNotifs{}, gw, nil, &fakeStorage{}, &fakeParser{})

	res := svc.CheckChemical(context.Background(), "t1", "c1")
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "supplier")
}

// Tenant isolation: a mismatched tenant ID behaves as not-found, never
// another tenant's row.
func TestCheckChemical_TenantIsolation(t *testing.T) {
	chem := testChemical("t1", "c1")
	gw := &fakeGateway{}
	svc := buildService(newFakeChemicals(chem), &fakeTenants{}, &fakeNotifs{}, gw, nil, &fakeStorage{}, &fakeParser{})

	res := svc.CheckChemical(context.Background(), "t2", "c1")

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "not found")
	assert.Zero(t, gw.lookups)
}


func sweepFixture(t *testing.T) (*fakeChemicals, *fakeTenants, *fakeNotifs, *fakeGateway, *sds.Sweeper) {
	t.Helper()
	tenants := &fakeTenants{
		active: []*entity.Tenant{
			{ID: "t1", Name: "Alpha", Status: entity.TenantActive},
			{ID: "t2", Name: "Beta", Status: entity.TenantActive},
		},
		recipients: map[string][]*entity.UserTenant{
			"t1": {adminMember("t1", "a1")},
			"t2": {adminMember("t2", "a2")},
		},
	}
	c1 := testChemical("t1", "c1")
	c2 := testChemical("t1", "c2")
	c2.CasNumber = "64-17-5"
	c3 := testChemical("t2", "c3")
	c3.CasNumber = "7647-01-0"
	chems := newFakeChemicals(c1, c2, c3)

	gw := &fakeGateway{perChemical: map[string]*ports.SDSUpdateInfo{
		"67-64-1": {Version: "9", PublishedAt: time.Now(), DownloadURL: "u"},
	}}
	notifs := &fakeNotifs{}
	parser := &fakeParser{extraction: hazard.Extraction{Confidence: 0.9}}
	svc := buildService(chems, tenants, notifs, gw, nil, &fakeStorage{}, parser)
	// rate.Inf-equivalent: a very high rps so tests don't sleep
	sweeper := sds.NewSweeper(tenants, chems, notifs, svc, 1e9, logger.Nop())
	return chems, tenants, notifs, gw, sweeper
}

func TestSweepAll_CountsAndAggregateNotifications(t *testing.T) {
	_, _, notifs, _, sweeper := sweepFixture(t)

	report, err := sweeper.SweepAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalChecked)
	assert.Equal(t, 1, report.TotalUpdated)
	assert.Len(t, report.Tenants, 2)

	// One aggregate sweep notification per tenant admin; the per-chemical
	// fan-out is suppressed during sweeps.
	var sweepNotifs, updateNotifs int
	for _, n := range notifs.created {
		switch n.Type {
		case entity.NotifySDSSweep:
			sweepNotifs++
		case entity.NotifySDSUpdated:
			updateNotifs++
		}
	}
	assert.Equal(t, 2, sweepNotifs)
	assert.Zero(t, updateNotifs, "sweep must not flood per-chemical notifications")
}

// One failing chemical neither aborts the tenant nor subsequent tenants, and
// still counts as checked.
func TestSweepAll_FailureIsolation(t *testing.T) {
	chems, _, _, gw, sweeper := sweepFixture(t)
	_ = chems
	gw.failCAS = map[string]error{"64-17-5": errors.New("supplier timeout")}

	report, err := sweeper.SweepAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalChecked, "failed check still counts as checked")
	assert.Equal(t, 1, report.TotalFailed)
	assert.Equal(t, 1, report.TotalUpdated, "other chemicals still processed")
	for _, tr := range report.Tenants {
		if tr.TenantID == "t2" {
			assert.Equal(t, 1, tr.Checked, "subsequent tenant unaffected")
		}
	}
}

func TestSweepAll_ContextCancellation(t *testing.T) {
	_, _, _, _, sweeper := sweepFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := sweeper.SweepAll(ctx)
	require.Error(t, err)
	assert.Equal(t, 0, report.TotalChecked)
}

func TestSweepAll_EmptyTenantSkipsNotification(t *testing.T) {
	tenants := &fakeTenants{
		active:     []*entity.Tenant{{ID: "t9", Name: "Empty", Status: entity.TenantActive}},
		recipients: map[string][]*entity.UserTenant{"t9": {adminMember("t9", "a")}},
	}
	chems := newFakeChemicals()
	notifs := &fakeNotifs{}
	svc := buildService(chems, tenants, notifs, &fakeGateway{}, nil, &fakeStorage{}, &fakeParser{})
	sweeper := sds.NewSweeper(tenants, chems, notifs, svc, 1e9, logger.Nop())

	report, err := sweeper.SweepAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalChecked)
	assert.Empty(t, notifs.created, "no aggregate notification when nothing was checked")
}

