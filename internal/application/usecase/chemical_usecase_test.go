package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trygghms/hms-api/internal/application/dto"
	"github.com/trygghms/hms-api/internal/application/usecase"
	"github.com/trygghms/hms-api/internal/domain"
	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/repository"
)

type fakeChemicalStore struct {
	byID       map[string]*entity.Chemical
	lastSearch string
}

func newFakeChemicalStore() *fakeChemicalStore {
	return &fakeChemicalStore{byID: map[string]*entity.Chemical{}}
}

func (f *fakeChemicalStore) Create(c *entity.Chemical) error {
	f.byID[c.ID] = c
	return nil
}

func (f *fakeChemicalStore) GetByTenantAndID(tenantID, id string) (*entity.Chemical, error) {
	c, ok := f.byID[id]
	if !ok || c.TenantID != tenantID {
		return nil, nil
	}
	return c, nil
}

func (f *fakeChemicalStore) ListByTenant(tenantID, search, status string, limit, offset int) ([]*entity.Chemical, error) {
	f.lastSearch = search
	var out []*entity.Chemical
	for _, c := range f.byID {
		if c.TenantID == tenantID && (status == "" || c.Status == status) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeChemicalStore) ListCheckable(tenantID string) ([]*entity.Chemical, error) {
	return nil, nil
}

func (f *fakeChemicalStore) Update(c *entity.Chemical) error {
	f.byID[c.ID] = c
	return nil
}

func (f *fakeChemicalStore) ApplySDSUpdate(tenantID, id string, upd repository.ChemicalSDSUpdate) error {
	return nil
}

func (f *fakeChemicalStore) UpdateStatus(tenantID, id, status string) error {
	c, _ := f.GetByTenantAndID(tenantID, id)
	if c == nil {
		return domain.ErrNotFound
	}
	c.Status = status
	return nil
}

func (f *fakeChemicalStore) MarkVerified(tenantID, id string, at time.Time) error {
	c, _ := f.GetByTenantAndID(tenantID, id)
	if c == nil {
		return domain.ErrNotFound
	}
	c.LastVerifiedAt = &at
	return nil
}

func TestChemicalCreate_DefaultsAndReviewDate(t *testing.T) {
	store := newFakeChemicalStore()
	uc := usecase.NewChemicalUseCase(store)

	out, err := uc.Create("t1", dto.CreateChemicalRequest{
		Name:      "Acetone",
		Supplier:  "Sigma",
		CasNumber: "67-64-1",
		Amount:    decimal.NewFromInt(5),
		Unit:      "L",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ChemicalActive, out.Status)
	require.NotNil(t, out.NextReviewDate)
	assert.True(t, out.NextReviewDate.After(out.CreatedAt))
}

func TestChemicalList_SearchIsDiacriticInsensitive(t *testing.T) {
	store := newFakeChemicalStore()
	uc := usecase.NewChemicalUseCase(store)

	_, err := uc.List("t1", "benzén", "", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, "benzen", store.lastSearch)
}

func TestChemicalUpdate_ArchivedIsImmutable(t *testing.T) {
	store := newFakeChemicalStore()
	uc := usecase.NewChemicalUseCase(store)

	out, err := uc.Create("t1", dto.CreateChemicalRequest{Name: "Toluene", Unit: "L"})
	require.NoError(t, err)
	require.NoError(t, uc.Archive("t1", out.ID))

	name := "Toluol"
	_, err = uc.Update("t1", out.ID, dto.UpdateChemicalRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestChemicalUpdate_OtherTenantSeesNothing(t *testing.T) {
	store := newFakeChemicalStore()
	uc := usecase.NewChemicalUseCase(store)

	out, err := uc.Create("t1", dto.CreateChemicalRequest{Name: "Toluene", Unit: "L"})
	require.NoError(t, err)

	name := "hijack"
	upd, err := uc.Update("t2", out.ID, dto.UpdateChemicalRequest{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, upd)
}

func TestChemicalPhaseOut(t *testing.T) {
	store := newFakeChemicalStore()
	uc := usecase.NewChemicalUseCase(store)

	out, err := uc.Create("t1", dto.CreateChemicalRequest{Name: "Xylene", Unit: "L"})
	require.NoError(t, err)
	require.NoError(t, uc.PhaseOut("t1", out.ID))

	got, err := uc.GetByID("t1", out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ChemicalPhasedOut, got.Status)
}
