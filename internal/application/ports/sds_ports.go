package ports

import (
	"context"
	"time"

	"github.com/trygghms/hms-api/internal/domain/hazard"
)

// SDSUpdateInfo describes a newer safety data sheet available at a supplier.
type SDSUpdateInfo struct {
	Version     string
	PublishedAt time.Time
	DownloadURL string
}

// SupplierGateway is the outbound port for supplier SDS APIs. Adapters are
// keyed by per-supplier API keys; the exact wire protocol is opaque to the
// application layer. Contexts should carry a timeout: these are external
// HTTP calls.
type SupplierGateway interface {
	// Supports reports whether an integration (API key) exists for the supplier.
	Supports(supplier string) bool
	// LookupUpdate returns the newest SDS for the CAS number if it is newer
	// than since, or nil when the current sheet is still the latest.
	LookupUpdate(ctx context.Context, supplier, casNumber string, since *time.Time) (*SDSUpdateInfo, error)
	// Download fetches the SDS binary from the supplier.
	Download(ctx context.Context, supplier, url string) ([]byte, error)
}

// SubstanceInfo is what the regulatory substance database knows about a CAS
// number.
type SubstanceInfo struct {
	EchaID string
	IsCMR  bool
	IsSVHC bool
}

// RegulatoryClient is the outbound port for the ECHA-like substance database.
type RegulatoryClient interface {
	// LookupCAS returns nil when the substance is not listed.
	LookupCAS(ctx context.Context, casNumber string) (*SubstanceInfo, error)
}

// ObjectStorage is the outbound port for blob storage. Keys follow the
// tenant-scoped convention sds/{tenantID}/{chemicalID}-{timestamp}.pdf.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
}

// SDSParser is the outbound port for the document parsing service that
// extracts hazard/precautionary statements with a confidence score.
type SDSParser interface {
	Parse(ctx context.Context, pdf []byte) (hazard.Extraction, error)
}

// Message is an outgoing email.
type Message struct {
	ToName  string
	ToEmail string
	Subject string
	HTML    string
	Text    string
}

// Mailer is the outbound port for the email-sending service. Fire-and-forget
// from the caller's perspective: a returned error is logged and counted, never
// fatal to a batch.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
