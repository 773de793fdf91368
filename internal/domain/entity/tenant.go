package entity

import "time"

// Tenant statuses. Background jobs only process ACTIVE tenants.
const (
	TenantActive    = "ACTIVE"
	TenantSuspended = "SUSPENDED"
	TenantDeleted   = "DELETED"
)

// Tenant represents an isolated customer organization. All domain data is
// partitioned by TenantID; a row is never visible cross-tenant.
type Tenant struct {
	ID        string
	Name      string
	OrgNumber string // national organization number
	Status    string // see Tenant* constants
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Membership roles within a tenant.
const (
	RoleAdmin  = "ADMIN"
	RoleHMS    = "HMS"   // HSE coordinator
	RoleLeder  = "LEDER" // manager
	RoleAnsatt = "ANSATT"
)

// UserTenant is the membership join row carrying the user's role in a tenant.
type UserTenant struct {
	UserID    string
	TenantID  string
	Role      string // see Role* constants
	CreatedAt time.Time
}

// ReceivesSDSNotifications reports whether this member is notified about SDS
// updates (admins and HSE coordinators only, to avoid flooding everyone).
func (ut UserTenant) ReceivesSDSNotifications() bool {
	return ut.Role == RoleAdmin || ut.Role == RoleHMS
}
