package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

type PropertyService struct {
	repo        ports.PropertyRepository
	transitions domain.TransitionPolicy
	logger      zerolog.Logger
	now         func() time.Time
}

func NewPropertyService(repo ports.PropertyRepository, transitions domain.TransitionPolicy, logger zerolog.Logger) *PropertyService {
	return &PropertyService{repo: repo, transitions: transitions, logger: logger, now: time.Now}
}

func (s *PropertyService) List(ctx context.Context, id domain.Identity, filter ports.PropertyFilter) (*ports.PageResult[*domain.Property], error) {
	filter.OwnerID = id.OwnerScope()
	filter.Page = filter.Page.Normalize()

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.PageResult[*domain.Property]{
		Items: items,
		Total: total,
		Page:  filter.Page.Page,
		Limit: filter.Page.Limit,
	}, nil
}

func (s *PropertyService) Get(ctx context.Context, id domain.Identity, propertyID string) (*domain.Property, error) {
	p, err := s.repo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(id, p.AgentID); err != nil {
		return nil, err
	}
	return p, nil
}

// Create stores a listing. A non-admin may only list under their own id; an
// empty agentId is filled in for them.
func (s *PropertyService) Create(ctx context.Context, id domain.Identity, in ports.CreatePropertyInput) (*domain.Property, error) {
	agentID := in.AgentID
	if !id.IsAdmin() {
		if agentID != "" && agentID != id.ID {
			return nil, domain.Forbidden("You can only assign properties to yourself")
		}
		agentID = id.ID
	}
	if agentID == "" {
		return nil, domain.Invalid("Agent must be assigned")
	}
	if in.Price <= 0 {
		return nil, domain.Invalid("Price must be greater than 0")
	}

	now := s.now().UTC()
	p := &domain.Property{
		ID:              uuid.NewString(),
		Title:           in.Title,
		Description:     in.Description,
		Type:            in.Type,
		Status:          in.Status,
		Address:         in.Address,
		City:            in.City,
		State:           in.State,
		ZipCode:         in.ZipCode,
		Country:         in.Country,
		Price:           in.Price,
		Bedrooms:        in.Bedrooms,
		Bathrooms:       in.Bathrooms,
		SquareFeet:      in.SquareFeet,
		FurnishedStatus: in.FurnishedStatus,
		Latitude:        in.Latitude,
		Longitude:       in.Longitude,
		Notes:           in.Notes,
		AgentID:         agentID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if p.Status == "" {
		p.Status = domain.PropertyAvailable
	}
	if p.FurnishedStatus == "" {
		p.FurnishedStatus = domain.Unfurnished
	}
	if p.Country == "" {
		p.Country = domain.DefaultCountry
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies the non-nil fields of in. agentId is admin-only and ignored
// for everyone else.
func (s *PropertyService) Update(ctx context.Context, id domain.Identity, propertyID string, in ports.UpdatePropertyInput) (*domain.Property, error) {
	p, err := s.Get(ctx, id, propertyID)
	if err != nil {
		return nil, err
	}

	setIf(&p.Title, in.Title)
	setIf(&p.Description, in.Description)
	setIf(&p.Type, in.Type)
	setIf(&p.Address, in.Address)
	setIf(&p.City, in.City)
	setIf(&p.State, in.State)
	setIf(&p.ZipCode, in.ZipCode)
	setIf(&p.Country, in.Country)
	setIf(&p.FurnishedStatus, in.FurnishedStatus)
	setIf(&p.Notes, in.Notes)
	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, domain.Invalid("Price must be greater than 0")
		}
		p.Price = *in.Price
	}
	if in.Bedrooms != nil {
		p.Bedrooms = in.Bedrooms
	}
	if in.Bathrooms != nil {
		p.Bathrooms = in.Bathrooms
	}
	if in.SquareFeet != nil {
		p.SquareFeet = in.SquareFeet
	}
	if in.Latitude != nil {
		p.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		p.Longitude = in.Longitude
	}
	if id.IsAdmin() && in.AgentID != nil && *in.AgentID != "" {
		p.AgentID = *in.AgentID
	}
	if in.Status != nil {
		if err := s.transitions.Property(p.Status, *in.Status); err != nil {
			return nil, err
		}
		p.Status = *in.Status
	}

	p.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PropertyService) Delete(ctx context.Context, id domain.Identity, propertyID string) error {
	if err := requireAdmin(id, "Only admins can delete properties"); err != nil {
		return err
	}
	return s.repo.Delete(ctx, propertyID)
}
