package service

import (
	"context"
	"errors"

	"staybook-backend/internal/domain"
	"staybook-backend/internal/logger"
	"staybook-backend/internal/repository"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// isDomainError reports whether err is an expected outcome rather than a failure.
func isDomainError(err error) bool {
	var de *domain.Error
	return errors.As(err, &de)
}

// exit logs the end of a service method at a level matching the outcome.
func exit(ctx context.Context, method string, err error, args ...any) {
	if err != nil {
		logger.ExitMethodWithError(ctx, method, err, isDomainError(err), args...)
		return
	}
	logger.ExitMethod(ctx, method, args...)
}

// notifyFailed records a best effort notification that could not be sent.
func notifyFailed(ctx context.Context, what string, err error) {
	if err != nil {
		logger.WarnContext(ctx, "Notification failed", "notification", what, "error", err)
	}
}

// propertyAccess answers "may this caller manage that property".
type propertyAccess struct {
	supervisionRepo repository.SupervisionRepository
}

// canManage is true for the host and for an active supervisor of the property.
func (a propertyAccess) canManage(ctx context.Context, auth domain.AuthContext, property *domain.Property) (bool, error) {
	if auth.SubjectID == property.HostID {
		return true, nil
	}
	if !auth.HasRole(domain.RoleSupervisor) {
		return false, nil
	}
	link, err := a.supervisionRepo.GetByPropertyAndSupervisor(ctx, property.ID, auth.SubjectID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return link.Active, nil
}

// requireManage returns Forbidden unless canManage holds.
func (a propertyAccess) requireManage(ctx context.Context, auth domain.AuthContext, property *domain.Property) error {
	ok, err := a.canManage(ctx, auth, property)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewForbiddenError("only the host or an active supervisor may manage this property")
	}
	return nil
}
