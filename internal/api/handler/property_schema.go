package handler

import "github.com/recrm/crm-api/internal/core/domain"

type createPropertyRequest struct {
	Title           string                 `json:"title"           validate:"min=5"    msg:"Title must be at least 5 characters"`
	Description     string                 `json:"description"`
	Type            domain.PropertyType    `json:"type"            validate:"required,oneof=APARTMENT VILLA COMMERCIAL LAND HOUSE PENTHOUSE"`
	Status          domain.PropertyStatus  `json:"status"          validate:"omitempty,oneof=AVAILABLE SOLD RENTED UNDER_OFFER OFF_MARKET"`
	Address         string                 `json:"address"         validate:"min=5"    msg:"Valid address required"`
	City            string                 `json:"city"            validate:"min=2"    msg:"City required"`
	State           string                 `json:"state"`
	ZipCode         string                 `json:"zipCode"`
	Country         string                 `json:"country"`
	Price           float64                `json:"price"           validate:"gt=0"     msg:"Price must be greater than 0"`
	Bedrooms        *int                   `json:"bedrooms"        validate:"omitempty,gt=0"`
	Bathrooms       *int                   `json:"bathrooms"       validate:"omitempty,gt=0"`
	SquareFeet      *float64               `json:"squareFeet"      validate:"omitempty,gt=0"`
	FurnishedStatus domain.FurnishedStatus `json:"furnishedStatus" validate:"omitempty,oneof=UNFURNISHED SEMI_FURNISHED FULLY_FURNISHED"`
	Latitude        *float64               `json:"latitude"`
	Longitude       *float64               `json:"longitude"`
	Notes           string                 `json:"notes"`
	AgentID         string                 `json:"agentId"`
}

// updatePropertyRequest is a partial update; absent fields are left unchanged.
type updatePropertyRequest struct {
	Title           *string                 `json:"title"           validate:"omitempty,min=5" msg:"Title must be at least 5 characters"`
	Description     *string                 `json:"description"`
	Type            *domain.PropertyType    `json:"type"            validate:"omitempty,oneof=APARTMENT VILLA COMMERCIAL LAND HOUSE PENTHOUSE"`
	Status          *domain.PropertyStatus  `json:"status"          validate:"omitempty,oneof=AVAILABLE SOLD RENTED UNDER_OFFER OFF_MARKET"`
	Address         *string                 `json:"address"         validate:"omitempty,min=5" msg:"Valid address required"`
	City            *string                 `json:"city"            validate:"omitempty,min=2" msg:"City required"`
	State           *string                 `json:"state"`
	ZipCode         *string                 `json:"zipCode"`
	Country         *string                 `json:"country"`
	Price           *float64                `json:"price"           validate:"omitempty,gt=0"  msg:"Price must be greater than 0"`
	Bedrooms        *int                    `json:"bedrooms"        validate:"omitempty,gt=0"`
	Bathrooms       *int                    `json:"bathrooms"       validate:"omitempty,gt=0"`
	SquareFeet      *float64                `json:"squareFeet"      validate:"omitempty,gt=0"`
	FurnishedStatus *domain.FurnishedStatus `json:"furnishedStatus" validate:"omitempty,oneof=UNFURNISHED SEMI_FURNISHED FULLY_FURNISHED"`
	Latitude        *float64                `json:"latitude"`
	Longitude       *float64                `json:"longitude"`
	Notes           *string                 `json:"notes"`
	AgentID         *string                 `json:"agentId"`
}
