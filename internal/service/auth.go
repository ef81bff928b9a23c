package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"staybook-backend/internal/domain"
	"staybook-backend/internal/logger"
	"staybook-backend/internal/repository"
	"staybook-backend/internal/security"
)

const minPasswordLength = 8

type authService struct {
	userRepo     repository.UserRepository
	roleRepo     repository.RoleRepository
	tokenManager security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, tokenManager security.TokenManager) AuthService {
	return &authService{
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		tokenManager: tokenManager,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (user *domain.User, token string, err error) {
	logger.EnterMethod(ctx, "authService.Register", "phone", input.PhoneNumber)
	defer func() { exit(ctx, "authService.Register", err) }()

	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	input.Name = strings.TrimSpace(input.Name)
	if input.PhoneNumber == "" || input.Name == "" || input.Password == "" {
		return nil, "", domain.NewValidationError("", "phone number, name and password are required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, "", domain.NewValidationError("", "password must be at least %d characters", minPasswordLength)
	}

	input.Email = strings.TrimSpace(input.Email)
	if input.Email != "" {
		if err := validate.Var(input.Email, "email"); err != nil {
			return nil, "", domain.NewValidationError("", "invalid email address")
		}
	}

	if _, err := s.userRepo.GetByPhone(ctx, input.PhoneNumber); err == nil {
		return nil, "", domain.NewConflictError("phone number already registered")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to look up phone number: %w", err)
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user = &domain.User{
		PhoneNumber:  input.PhoneNumber,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}
	if err := s.roleRepo.Grant(ctx, user.ID, domain.RoleGuest); err != nil {
		return nil, "", fmt.Errorf("failed to grant guest role: %w", err)
	}
	user.Roles = []domain.Role{domain.RoleGuest}

	token, err = s.tokenManager.GenerateAccessToken(user.ID, user.PhoneNumber, roleNames(user.Roles))
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, phone, password string) (user *domain.User, token string, err error) {
	logger.EnterMethod(ctx, "authService.Login", "phone", phone)
	defer func() { exit(ctx, "authService.Login", err) }()

	user, err = s.userRepo.GetByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.NewUnauthenticatedError("invalid phone number or password")
		}
		return nil, "", err
	}
	if !security.CheckPassword(user.PasswordHash, password) {
		return nil, "", domain.NewUnauthenticatedError("invalid phone number or password")
	}

	assignments, err := s.roleRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load roles: %w", err)
	}
	user.Roles = domain.ActiveRoles(assignments)

	token, err = s.tokenManager.GenerateAccessToken(user.ID, user.PhoneNumber, roleNames(user.Roles))
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

func roleNames(roles []domain.Role) []string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return names
}
