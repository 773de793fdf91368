package usecase

import (
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/trygghms/hms-api/internal/application/dto"
	"github.com/trygghms/hms-api/internal/domain"
	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/repository"
)

// reviewInterval is how far ahead the next SDS review is scheduled on
// registration and on manual verification.
const reviewInterval = 365 * 24 * time.Hour

// ChemicalUseCase CRUD for the chemical inventory. The SDS fields are owned
// by the update workflow; this use case never touches them directly.
type ChemicalUseCase struct {
	repo repository.ChemicalRepository
}

// NewChemicalUseCase builds the use case.
func NewChemicalUseCase(repo repository.ChemicalRepository) *ChemicalUseCase {
	return &ChemicalUseCase{repo: repo}
}

// Create registers a chemical in the tenant's inventory.
func (uc *ChemicalUseCase) Create(tenantID string, in dto.CreateChemicalRequest) (*dto.ChemicalResponse, error) {
	now := time.Now()
	review := now.Add(reviewInterval)
	chem := &entity.Chemical{
		ID:             uuid.New().String(),
		TenantID:       tenantID,
		Name:           in.Name,
		Supplier:       in.Supplier,
		CasNumber:      in.CasNumber,
		Amount:         in.Amount,
		Unit:           in.Unit,
		Location:       in.Location,
		Status:         entity.ChemicalActive,
		NextReviewDate: &review,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(chem); err != nil {
		return nil, err
	}
	return toChemicalResponse(chem), nil
}

// GetByID fetches a chemical scoped to the tenant.
func (uc *ChemicalUseCase) GetByID(tenantID, id string) (*dto.ChemicalResponse, error) {
	chem, err := uc.repo.GetByTenantAndID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if chem == nil {
		return nil, nil
	}
	return toChemicalResponse(chem), nil
}

// List lists the tenant's chemicals, optionally filtered by a
// diacritic-insensitive search term and status.
func (uc *ChemicalUseCase) List(tenantID, search, status string, limit, offset int) (*dto.ChemicalListResponse, error) {
	list, err := uc.repo.ListByTenant(tenantID, normalizeSearch(search), status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ChemicalResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toChemicalResponse(c))
	}
	return &dto.ChemicalListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update applies a partial update. Archived chemicals cannot be edited.
func (uc *ChemicalUseCase) Update(tenantID, id string, in dto.UpdateChemicalRequest) (*dto.ChemicalResponse, error) {
	chem, err := uc.repo.GetByTenantAndID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if chem == nil {
		return nil, nil
	}
	if chem.Status == entity.ChemicalArchived {
		return nil, domain.ErrConflict
	}
	if in.Name != nil {
		chem.Name = *in.Name
	}
	if in.Supplier != nil {
		chem.Supplier = *in.Supplier
	}
	if in.CasNumber != nil {
		chem.CasNumber = *in.CasNumber
	}
	if in.Amount != nil {
		chem.Amount = *in.Amount
	}
	if in.Unit != nil {
		chem.Unit = *in.Unit
	}
	if in.Location != nil {
		chem.Location = *in.Location
	}
	chem.UpdatedAt = time.Now()
	if err := uc.repo.Update(chem); err != nil {
		return nil, err
	}
	return toChemicalResponse(chem), nil
}

// Archive moves a chemical out of the active inventory. Chemicals are never
// hard-deleted outside the tenant deletion cascade.
func (uc *ChemicalUseCase) Archive(tenantID, id string) error {
	return uc.repo.UpdateStatus(tenantID, id, entity.ChemicalArchived)
}

// PhaseOut marks a chemical as being phased out.
func (uc *ChemicalUseCase) PhaseOut(tenantID, id string) error {
	return uc.repo.UpdateStatus(tenantID, id, entity.ChemicalPhasedOut)
}

// Verify records a manual verification of the chemical's data and pushes the
// next review date forward.
func (uc *ChemicalUseCase) Verify(tenantID, id string) error {
	return uc.repo.MarkVerified(tenantID, id, time.Now())
}

// searchNormalizer strips combining marks after NFD decomposition, so "benzén"
// matches "benzen". Norwegian inventories mix spellings freely.
var searchNormalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalizeSearch(s string) string {
	out, _, err := transform.String(searchNormalizer, s)
	if err != nil {
		return s
	}
	return out
}

func toChemicalResponse(c *entity.Chemical) *dto.ChemicalResponse {
	if c == nil {
		return nil
	}
	return &dto.ChemicalResponse{
		ID:                      c.ID,
		TenantID:                c.TenantID,
		Name:                    c.Name,
		Supplier:                c.Supplier,
		CasNumber:               c.CasNumber,
		SDSKey:                  c.SDSKey,
		SDSDate:                 c.SDSDate,
		SDSVersion:              c.SDSVersion,
		HazardStatements:        c.HazardStatements,
		PrecautionaryStatements: c.PrecautionaryStatements,
		SignalWord:              c.SignalWord,
		IsCMR:                   c.IsCMR,
		IsSVHC:                  c.IsSVHC,
		EchaID:                  c.EchaID,
		LastEchaSync:            c.LastEchaSync,
		Amount:                  c.Amount,
		Unit:                    c.Unit,
		Location:                c.Location,
		Status:                  c.Status,
		NextReviewDate:          c.NextReviewDate,
		LastVerifiedAt:          c.LastVerifiedAt,
		CreatedAt:               c.CreatedAt,
		UpdatedAt:               c.UpdatedAt,
	}
}
