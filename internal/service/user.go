package service

import (
	"context"
	"fmt"
	"strings"

	"staybook-backend/internal/domain"
	"staybook-backend/internal/repository"
	"staybook-backend/internal/utils"
)

type userService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) UserService {
	return &userService{userRepo: userRepo, roleRepo: roleRepo}
}

func (s *userService) Me(ctx context.Context, auth domain.AuthContext) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, auth.SubjectID)
	if err != nil {
		return nil, err
	}
	roles, err := s.ActiveRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, auth domain.AuthContext, patch ProfilePatch) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, auth.SubjectID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, domain.NewValidationError("", "name cannot be empty")
		}
		user.Name = name
	}
	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if email != "" {
			if err := validate.Var(email, "email"); err != nil {
				return nil, domain.NewValidationError("", "invalid email address")
			}
		}
		user.Email = email
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.AvatarURL != nil {
		user.AvatarURL = *patch.AvatarURL
	}
	if patch.BirthDate != nil {
		if *patch.BirthDate == "" {
			user.BirthDate = nil
		} else {
			day, err := utils.ParseDay(*patch.BirthDate)
			if err != nil {
				return nil, domain.NewValidationError("", "invalid birth date")
			}
			formatted := utils.FormatDay(day)
			user.BirthDate = &formatted
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	user.Roles, err = s.ActiveRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) SetRole(ctx context.Context, auth domain.AuthContext, userID int32, role domain.Role, active bool) error {
	if !auth.IsAdmin() {
		return domain.NewForbiddenError("admin role required")
	}
	if !role.Valid() {
		return domain.NewValidationError("", "unknown role %q", role)
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	if active {
		return s.roleRepo.Grant(ctx, userID, role)
	}
	return s.roleRepo.SetActive(ctx, userID, role, false)
}

func (s *userService) ActiveRoles(ctx context.Context, userID int32) ([]domain.Role, error) {
	assignments, err := s.roleRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}
	return domain.ActiveRoles(assignments), nil
}
