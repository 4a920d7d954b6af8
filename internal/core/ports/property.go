package ports

import (
	"context"

	"github.com/recrm/crm-api/internal/core/domain"
)

type PropertyFilter struct {
	OwnerID string
	Status  string
	Type    string
	Search  string // title, address, city
	Page    Page
}

type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) error
	FindByID(ctx context.Context, id string) (*domain.Property, error)
	Update(ctx context.Context, p *domain.Property) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter PropertyFilter) ([]*domain.Property, int64, error)
}

type CreatePropertyInput struct {
	Title           string
	Description     string
	Type            domain.PropertyType
	Status          domain.PropertyStatus
	Address         string
	City            string
	State           string
	ZipCode         string
	Country         string
	Price           float64
	Bedrooms        *int
	Bathrooms       *int
	SquareFeet      *float64
	FurnishedStatus domain.FurnishedStatus
	Latitude        *float64
	Longitude       *float64
	Notes           string
	AgentID         string
}

// UpdatePropertyInput is a partial update; nil fields are left unchanged.
type UpdatePropertyInput struct {
	Title           *string
	Description     *string
	Type            *domain.PropertyType
	Status          *domain.PropertyStatus
	Address         *string
	City            *string
	State           *string
	ZipCode         *string
	Country         *string
	Price           *float64
	Bedrooms        *int
	Bathrooms       *int
	SquareFeet      *float64
	FurnishedStatus *domain.FurnishedStatus
	Latitude        *float64
	Longitude       *float64
	Notes           *string
	AgentID         *string
}

type PropertyService interface {
	List(ctx context.Context, id domain.Identity, filter PropertyFilter) (*PageResult[*domain.Property], error)
	Get(ctx context.Context, id domain.Identity, propertyID string) (*domain.Property, error)
	Create(ctx context.Context, id domain.Identity, in CreatePropertyInput) (*domain.Property, error)
	Update(ctx context.Context, id domain.Identity, propertyID string, in UpdatePropertyInput) (*domain.Property, error)
	Delete(ctx context.Context, id domain.Identity, propertyID string) error
}
