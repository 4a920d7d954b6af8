package domain

import "time"

type PropertyType string

const (
	PropertyApartment  PropertyType = "APARTMENT"
	PropertyVilla      PropertyType = "VILLA"
	PropertyCommercial PropertyType = "COMMERCIAL"
	PropertyLand       PropertyType = "LAND"
	PropertyHouse      PropertyType = "HOUSE"
	PropertyPenthouse  PropertyType = "PENTHOUSE"
)

// PropertyStatus is the listing lifecycle of a property.
type PropertyStatus string

const (
	PropertyAvailable  PropertyStatus = "AVAILABLE"
	PropertySold       PropertyStatus = "SOLD"
	PropertyRented     PropertyStatus = "RENTED"
	PropertyUnderOffer PropertyStatus = "UNDER_OFFER"
	PropertyOffMarket  PropertyStatus = "OFF_MARKET"
)

type FurnishedStatus string

const (
	Unfurnished    FurnishedStatus = "UNFURNISHED"
	SemiFurnished  FurnishedStatus = "SEMI_FURNISHED"
	FullyFurnished FurnishedStatus = "FULLY_FURNISHED"
)

const DefaultCountry = "India"

// Property is a listing owned by exactly one agent.
type Property struct {
	ID              string          `json:"id" bson:"_id"`
	Title           string          `json:"title" bson:"title"`
	Description     string          `json:"description,omitempty" bson:"description,omitempty"`
	Type            PropertyType    `json:"type" bson:"type"`
	Status          PropertyStatus  `json:"status" bson:"status"`
	Address         string          `json:"address" bson:"address"`
	City            string          `json:"city" bson:"city"`
	State           string          `json:"state,omitempty" bson:"state,omitempty"`
	ZipCode         string          `json:"zipCode,omitempty" bson:"zipCode,omitempty"`
	Country         string          `json:"country" bson:"country"`
	Price           float64         `json:"price" bson:"price"`
	Bedrooms        *int            `json:"bedrooms,omitempty" bson:"bedrooms,omitempty"`
	Bathrooms       *int            `json:"bathrooms,omitempty" bson:"bathrooms,omitempty"`
	SquareFeet      *float64        `json:"squareFeet,omitempty" bson:"squareFeet,omitempty"`
	FurnishedStatus FurnishedStatus `json:"furnishedStatus" bson:"furnishedStatus"`
	Latitude        *float64        `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude       *float64        `json:"longitude,omitempty" bson:"longitude,omitempty"`
	Notes           string          `json:"notes,omitempty" bson:"notes,omitempty"`
	AgentID         string          `json:"agentId" bson:"agentId"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt" bson:"updatedAt"`
}
