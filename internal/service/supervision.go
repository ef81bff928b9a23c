package service

import (
	"context"
	"errors"
	"strings"

	"staybook-backend/internal/domain"
	"staybook-backend/internal/logger"
	"staybook-backend/internal/repository"
)

type supervisionService struct {
	supervisionRepo repository.SupervisionRepository
	propertyRepo    repository.PropertyRepository
	userRepo        repository.UserRepository
	roleRepo        repository.RoleRepository
}

func NewSupervisionService(
	supervisionRepo repository.SupervisionRepository,
	propertyRepo repository.PropertyRepository,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
) SupervisionService {
	return &supervisionService{
		supervisionRepo: supervisionRepo,
		propertyRepo:    propertyRepo,
		userRepo:        userRepo,
		roleRepo:        roleRepo,
	}
}

func (s *supervisionService) Assign(ctx context.Context, auth domain.AuthContext, propertyID int32, phone string) (link *domain.Supervision, created bool, err error) {
	logger.EnterMethod(ctx, "supervisionService.Assign", "property_id", propertyID)
	defer func() { exit(ctx, "supervisionService.Assign", err, "created", created) }()

	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, false, err
	}
	if property.HostID != auth.SubjectID {
		return nil, false, domain.NewForbiddenError("only the host may assign supervisors")
	}
	target, err := s.userRepo.GetByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		return nil, false, err
	}
	if target.ID == property.HostID {
		return nil, false, domain.NewValidationError("", "the host cannot supervise their own property")
	}

	if err := s.roleRepo.Grant(ctx, target.ID, domain.RoleSupervisor); err != nil {
		return nil, false, err
	}

	existing, err := s.supervisionRepo.GetByPropertyAndSupervisor(ctx, property.ID, target.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}

	link = &domain.Supervision{
		PropertyID:   property.ID,
		SupervisorID: target.ID,
		AssignedBy:   auth.SubjectID,
		Active:       true,
	}
	if err := s.supervisionRepo.Create(ctx, link); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Lost a race with a concurrent assignment.
			existing, getErr := s.supervisionRepo.GetByPropertyAndSupervisor(ctx, property.ID, target.ID)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return link, true, nil
}

func (s *supervisionService) Revoke(ctx context.Context, auth domain.AuthContext, id int32) error {
	link, err := s.supervisionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if link.AssignedBy != auth.SubjectID {
		return domain.NewForbiddenError("only the assigner may revoke this supervision")
	}
	return s.supervisionRepo.Delete(ctx, link.ID)
}

func (s *supervisionService) List(ctx context.Context, auth domain.AuthContext) ([]domain.Supervision, error) {
	return s.supervisionRepo.ListForUser(ctx, auth.SubjectID)
}
