package repository

import "github.com/trygghms/hms-api/internal/domain/entity"

// UserRepository persistence port for users.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	// ListByTenantAndDigest returns active members of the tenant whose digest
	// preference matches frequency (DAILY or WEEKLY).
	ListByTenantAndDigest(tenantID, frequency string) ([]*entity.User, error)
}
