package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/trygghms/hms-api/internal/application/dto"
	"github.com/trygghms/hms-api/internal/domain"
	"github.com/trygghms/hms-api/internal/domain/entity"
	"github.com/trygghms/hms-api/internal/domain/repository"
	"github.com/trygghms/hms-api/pkg/jwt"
)

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registration and login.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	tenantRepo repository.TenantRepository
	jwtCfg     JWTConfig
}

// NewAuthUseCase builds the auth use case.
func NewAuthUseCase(userRepo repository.UserRepository, tenantRepo repository.TenantRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tenantRepo: tenantRepo, jwtCfg: jwtCfg}
}

// RegisterUser creates a user, hashes the password with bcrypt and adds the
// tenant membership. Returns ErrEmailAlreadyExists for a taken email.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	tenant, err := uc.tenantRepo.GetByID(in.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	if tenant.Status != entity.TenantActive {
		return nil, domain.ErrTenantInactive
	}
	existing, _ := uc.userRepo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	role := in.Role
	if role == "" {
		role = entity.RoleAnsatt
	}
	user := &entity.User{
		ID:              uuid.New().String(),
		Email:           in.Email,
		Name:            name,
		PasswordHash:    string(hash),
		DigestFrequency: entity.DigestWeekly,
		Status:          "active",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	if err := uc.tenantRepo.AddMember(&entity.UserTenant{
		UserID:    user.ID,
		TenantID:  in.TenantID,
		Role:      role,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	resp.Role = role
	return resp, nil
}

// Login verifies credentials and tenant membership, then issues a JWT carrying
// the user's role in that tenant.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	member, err := uc.tenantRepo.GetMember(in.TenantID, user.ID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, in.TenantID, member.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	resp.Role = member.Role
	return &dto.LoginResponse{Token: token, User: *resp}, nil
}

// UpdateProfile changes name and/or digest preference.
func (uc *AuthUseCase) UpdateProfile(userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.DigestFrequency != nil {
		user.DigestFrequency = *in.DigestFrequency
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		DigestFrequency: u.DigestFrequency,
		Status:          u.Status,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
