package repository

import (
	"context"
	"time"
)

// DigestItem is one line in a digest email: something overdue or upcoming.
type DigestItem struct {
	ID    string
	Kind  string // "incident", "measure", "training", "audit", "inspection", "meeting"
	Title string
	Due   time.Time
}

// ReviewCounts are the "due for review" counters shown in a digest.
type ReviewCounts struct {
	Documents int
	Chemicals int
	Risks     int
}

// DigestRepository read-only aggregate queries feeding the digest emails.
// Like the other ports everything is tenant-scoped; the per-user queries
// additionally filter on assignment.
type DigestRepository interface {
	OverdueIncidents(ctx context.Context, tenantID, userID string, now time.Time) ([]DigestItem, error)
	OverdueMeasures(ctx context.Context, tenantID, userID string, now time.Time) ([]DigestItem, error)
	UpcomingMeasures(ctx context.Context, tenantID, userID string, from, to time.Time) ([]DigestItem, error)
	ExpiringTraining(ctx context.Context, tenantID, userID string, to time.Time) ([]DigestItem, error)
	// UpcomingEvents covers audits, inspections and management review meetings
	// scheduled inside the window (tenant-wide, not per user).
	UpcomingEvents(ctx context.Context, tenantID string, from, to time.Time) ([]DigestItem, error)
	ReviewCounts(ctx context.Context, tenantID string, by time.Time) (ReviewCounts, error)
	UnreadNotifications(ctx context.Context, tenantID, userID string) (int, error)
}
