// Package sds implements the automatic safety-data-sheet update workflow:
// per-chemical update checks against supplier APIs and the fleet-wide sweep.
package sds

import (
	"context"
	"fmt"
	"time"

	"github.com/trygghms/hms-api/internal/application/ports"
	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/repository"
	"github.com/trygghms/hms-api/pkg/logger"

	"github.com/google/uuid"
)

// CheckResult is the structured outcome of a single-chemical check. The check
// never returns an error to its caller: failures are folded into
// Success=false so the primary registration flow is never blocked.
type CheckResult struct {
	Success    bool   `json:"success"`
	WasUpdated bool   `json:"was_updated"`
	Message    string `json:"message,omitempty"`
	SDSVersion string `json:"sds_version,omitempty"`
	SDSKey     string `json:"sds_key,omitempty"`
}

// Service orchestrates the SDS update cycle:
//
//	supplier lookup → download → object storage → parse → regulatory lookup → DB update → notify
type Service struct {
	chemicals  repository.ChemicalRepository
	tenants    repository.TenantRepository
	notifs     repository.NotificationRepository
	gateway    ports.SupplierGateway
	regulatory ports.RegulatoryClient
	storage    ports.ObjectStorage
	parser     ports.SDSParser
	log        *logger.Logger
	now        func() time.Time
}

// NewService wires the workflow. regulatory may be nil (lookup skipped).
func NewService(
	chemicals repository.ChemicalRepository,
	tenants repository.TenantRepository,
	notifs repository.NotificationRepository,
	gateway ports.SupplierGateway,
	regulatory ports.RegulatoryClient,
	storage ports.ObjectStorage,
	parser ports.SDSParser,
	log *logger.Logger,
) *Service {
	return &Service{
		chemicals:  chemicals,
		tenants:    tenants,
		notifs:     notifs,
		gateway:    gateway,
		regulatory: regulatory,
		storage:    storage,
		parser:     parser,
		log:        log,
		now:        time.Now,
	}
}

// CheckChemical checks one chemical for a newer SDS and applies it, notifying
// the tenant's ADMIN/HMS users when an update lands. Used on registration and
// for the manual "check now" action.
func (s *Service) CheckChemical(ctx context.Context, tenantID, chemicalID string) CheckResult {
	return s.check(ctx, tenantID, chemicalID, true)
}

// CheckQuiet is CheckChemical without the per-chemical notification fan-out.
// The sweep uses it and sends a single aggregate notification per tenant
// instead, to avoid notification flooding.
func (s *Service) CheckQuiet(ctx context.Context, tenantID, chemicalID string) CheckResult {
	return s.check(ctx, tenantID, chemicalID, false)
}

// check is the outermost boundary: any error or panic below it becomes a
// structured failure result.
func (s *Service) check(ctx context.Context, tenantID, chemicalID string, notify bool) (res CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().
				Str("tenant_id", tenantID).
				Str("chemical_id", chemicalID).
				Interface("panic", r).
				Msg("sds check panicked")
			res = CheckResult{Success: false, Message: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	res, err := s.run(ctx, tenantID, chemicalID, notify)
	if err != nil {
		s.log.Error().
			Err(err).
			Str("tenant_id", tenantID).
			Str("chemical_id", chemicalID).
			Msg("sds check failed")
		return CheckResult{Success: false, Message: err.Error()}
	}
	return res
}

func (s *Service) run(ctx context.Context, tenantID, chemicalID string, notify bool) (CheckResult, error) {
	chem, err := s.chemicals.GetByTenantAndID(tenantID, chemicalID)
	if err != nil {
		return CheckResult{}, fmt.Errorf("load chemical: %w", err)
	}
	if chem == nil {
		return CheckResult{}, fmt.Errorf("chemical %s not found in tenant %s", chemicalID, tenantID)
	}

	// "Cannot check" is a benign outcome, not a failure: nothing to look up.
	if !chem.CanCheckSDS() {
		return CheckResult{Success: true, WasUpdated: false, Message: "missing supplier or CAS number, cannot check"}, nil
	}
	if !s.gateway.Supports(chem.Supplier) {
		return CheckResult{Success: true, WasUpdated: false, Message: fmt.Sprintf("no integration for supplier %q", chem.Supplier)}, nil
	}

	info, err := s.gateway.LookupUpdate(ctx, chem.Supplier, chem.CasNumber, chem.SDSDate)
	if err != nil {
		return CheckResult{}, fmt.Errorf("supplier lookup: %w", err)
	}
	if info == nil {
		return CheckResult{Success: true, WasUpdated: false, Message: "SDS is up to date", SDSVersion: chem.SDSVersion}, nil
	}

	pdf, err := s.gateway.Download(ctx, chem.Supplier, info.DownloadURL)
	if err != nil {
		return CheckResult{}, fmt.Errorf("download SDS: %w", err)
	}

	key := fmt.Sprintf("sds/%s/%s-%d.pdf", tenantID, chem.ID, s.now().Unix())
	if err := s.storage.Upload(ctx, key, pdf, "application/pdf"); err != nil {
		return CheckResult{}, fmt.Errorf("upload SDS: %w", err)
	}

	extraction, err := s.parser.Parse(ctx, pdf)
	if err != nil {
		// The blob was already uploaded; clean it up so a parse failure does
		// not leave an orphan behind.
		s.deleteBlob(ctx, key)
		return CheckResult{}, fmt.Errorf("parse SDS: %w", err)
	}

	upd := repository.ChemicalSDSUpdate{
		SDSKey:     key,
		SDSDate:    info.PublishedAt,
		SDSVersion: info.Version,
	}

	// Low-confidence extractions must not clobber existing verified data.
	if extraction.Trusted() {
		n := extraction.Normalize()
		upd.HazardStatements = &n.HazardStatements
		upd.PrecautionaryStatements = &n.PrecautionaryStatements
		if n.SignalWord != "" {
			upd.SignalWord = &n.SignalWord
		}
	} else {
		s.log.Debug().
			Str("chemical_id", chem.ID).
			Float64("confidence", extraction.Confidence).
			Msg("extraction below confidence threshold, keeping existing statements")
	}

	// Regulatory cross-reference is best effort: a miss or outage never fails
	// the update.
	if s.regulatory != nil {
		if sub, err := s.regulatory.LookupCAS(ctx, chem.CasNumber); err != nil {
			s.log.Warn().Err(err).Str("cas", chem.CasNumber).Msg("regulatory lookup failed")
		} else if sub != nil {
			syncedAt := s.now()
			upd.IsCMR = &sub.IsCMR
			upd.IsSVHC = &sub.IsSVHC
			upd.EchaID = &sub.EchaID
			upd.LastEchaSync = &syncedAt
		}
	}

	if err := s.chemicals.ApplySDSUpdate(tenantID, chem.ID, upd); err != nil {
		s.deleteBlob(ctx, key)
		return CheckResult{}, fmt.Errorf("persist SDS update: %w", err)
	}

	s.log.Info().
		Str("tenant_id", tenantID).
		Str("chemical_id", chem.ID).
		Str("version", info.Version).
		Msg("sds updated")

	if notify {
		if err := s.notifyUpdate(chem, info.Version); err != nil {
			s.log.Warn().Err(err).Str("chemical_id", chem.ID).Msg("sds update notification failed")
		}
	}

	return CheckResult{Success: true, WasUpdated: true, SDSVersion: info.Version, SDSKey: key}, nil
}

// deleteBlob is the compensating cleanup for the upload-before-persist order.
func (s *Service) deleteBlob(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("orphaned sds blob could not be deleted")
	}
}

// notifyUpdate creates one notification per ADMIN/HMS member of the tenant.
func (s *Service) notifyUpdate(chem *entity.Chemical, version string) error {
	recipients, err := s.tenants.ListNotifiableMembers(chem.TenantID)
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
			TenantID:  chem.TenantID,
			UserID:    m.UserID,
			Type:      entity.NotifySDSUpdated,
			Title:     "Safety data sheet updated",
			Message:   fmt.Sprintf("A new SDS (version %s) was found for %s and has been applied.", version, chem.Name),
			Link:      "/chemicals/" + chem.ID,
			CreatedAt: s.now(),
		})
	}
	return s.notifs.CreateBatch(ns)
}
