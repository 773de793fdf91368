package dto

import "time"

// RegisterRequest input for user registration within a tenant.
type RegisterRequest struct {
	TenantID string `json:"tenant_id" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"max=200"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN HMS LEDER ANSATT"`
}

// LoginRequest credentials plus the tenant to log into.
type LoginRequest struct {
	TenantID string `json:"tenant_id" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse output for a user.
type UserResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Role            string    `json:"role,omitempty"` // role in the requested tenant
	DigestFrequency string    `json:"digest_frequency"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// LoginResponse token plus the logged-in user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateProfileRequest lets a user change name and digest preference.
type UpdateProfileRequest struct {
	Name            *string `json:"name" validate:"omitempty,max=200"`
	DigestFrequency *string `json:"digest_frequency" validate:"omitempty,oneof=NONE DAILY WEEKLY"`
}

// CreateTenantRequest input for provisioning a tenant.
type CreateTenantRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	OrgNumber string `json:"org_number" validate:"max=20"`
}

// TenantResponse output for a tenant.
type TenantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OrgNumber string    `json:"org_number,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MemberResponse one tenant membership.
type MemberResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}
