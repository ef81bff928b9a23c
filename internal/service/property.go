package service

import (
	"context"
	"strings"

	"staybook-backend/internal/domain"
	"staybook-backend/internal/logger"
	"staybook-backend/internal/repository"
	"staybook-backend/internal/utils"
)

type propertyService struct {
	propertyRepo repository.PropertyRepository
	roleRepo     repository.RoleRepository
}

func NewPropertyService(propertyRepo repository.PropertyRepository, roleRepo repository.RoleRepository) PropertyService {
	return &propertyService{propertyRepo: propertyRepo, roleRepo: roleRepo}
}

// Create stores a new listing owned by the caller and grants the caller the host role.
func (s *propertyService) Create(ctx context.Context, auth domain.AuthContext, p *domain.Property) (err error) {
	logger.EnterMethod(ctx, "propertyService.Create", "host_id", auth.SubjectID)
	defer func() { exit(ctx, "propertyService.Create", err, "property_id", p.ID) }()

	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return domain.NewValidationError("", "title is required")
	}
	if err := validateListing(p); err != nil {
		return err
	}

	p.HostID = auth.SubjectID
	if err := s.propertyRepo.Create(ctx, p); err != nil {
		return err
	}
	return s.roleRepo.Grant(ctx, auth.SubjectID, domain.RoleHost)
}

func (s *propertyService) List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	return s.propertyRepo.ListActive(ctx, filter)
}

func (s *propertyService) Get(ctx context.Context, id int32) (*domain.Property, error) {
	p, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, domain.NewNotFoundError("property not found")
	}
	return p, nil
}

func (s *propertyService) Update(ctx context.Context, auth domain.AuthContext, id int32, patch PropertyPatch) (p *domain.Property, err error) {
	logger.EnterMethod(ctx, "propertyService.Update", "property_id", id)
	defer func() { exit(ctx, "propertyService.Update", err) }()

	p, err = s.owned(ctx, auth, id)
	if err != nil {
		return nil, err
	}
	previousType := p.RentalType

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, domain.NewValidationError("", "title cannot be empty")
		}
		p.Title = title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Address != nil {
		p.Address = *patch.Address
	}
	if patch.City != nil {
		p.City = *patch.City
	}
	if patch.Country != nil {
		p.Country = *patch.Country
	}
	if patch.RentalType != nil {
		p.RentalType = *patch.RentalType
	}
	if patch.PricePerNight != nil {
		p.PricePerNight = patch.PricePerNight
	}
	if patch.PricePerMonth != nil {
		p.PricePerMonth = patch.PricePerMonth
	}
	if patch.MaxGuests != nil {
		p.MaxGuests = *patch.MaxGuests
	}
	if patch.Bedrooms != nil {
		p.Bedrooms = *patch.Bedrooms
	}
	if patch.Bathrooms != nil {
		p.Bathrooms = *patch.Bathrooms
	}
	if patch.Amenities != nil {
		p.Amenities = patch.Amenities
	}
	if patch.Images != nil {
		p.Images = patch.Images
	}
	// A listing carries only the rate of its current rental type.
	if p.RentalType != previousType {
		switch p.RentalType {
		case domain.RentalTypeShortTerm:
			p.PricePerMonth = nil
		case domain.RentalTypeLongTerm:
			p.PricePerNight = nil
		}
	}
	if err := validateListing(p); err != nil {
		return nil, err
	}

	if err := s.propertyRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *propertyService) Delete(ctx context.Context, auth domain.AuthContext, id int32) error {
	if _, err := s.owned(ctx, auth, id); err != nil {
		return err
	}
	return s.propertyRepo.SoftDelete(ctx, id)
}

func (s *propertyService) ListMine(ctx context.Context, auth domain.AuthContext) ([]domain.Property, error) {
	return s.propertyRepo.ListByHost(ctx, auth.SubjectID)
}

func (s *propertyService) owned(ctx context.Context, auth domain.AuthContext, id int32) (*domain.Property, error) {
	p, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.HostID != auth.SubjectID {
		return nil, domain.NewForbiddenError("only the host may change this property")
	}
	return p, nil
}

func validateListing(p *domain.Property) error {
	if err := utils.ValidatePricing(p.RentalType, p.PricePerNight, p.PricePerMonth); err != nil {
		return err
	}
	if p.MaxGuests < 0 || p.Bedrooms < 0 || p.Bathrooms < 0 {
		return domain.NewValidationError("", "counts cannot be negative")
	}
	return nil
}
