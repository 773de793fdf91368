package usecase

import "github.com/trygghms/hms-api/internal/domain/repository"

// IncidentTxRunner runs a callback inside a DB transaction, with incident and
// notification repositories bound to that transaction. Reporting an incident
// and fanning out its notifications commit or roll back together.
type IncidentTxRunner interface {
	Run(fn func(
		incidents repository.IncidentRepository,
		notifs repository.NotificationRepository,
	) error) error
}
