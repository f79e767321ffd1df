package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PropertyType is the closed set of listing categories.
type PropertyType string

const (
	TypeHouse      PropertyType = "house"
	TypeApartment  PropertyType = "apartment"
	TypeCondo      PropertyType = "condo"
	TypeLand       PropertyType = "land"
	TypeCommercial PropertyType = "commercial"
)

// Valid reports whether t is a known property type.
func (t PropertyType) Valid() bool {
	switch t {
	case TypeHouse, TypeApartment, TypeCondo, TypeLand, TypeCommercial:
		return true
	}
	return false
}

// Status is a listing's sale state. Transitions are unrestricted; the
// owning seller may set any status at any time.
type Status string

const (
	StatusAvailable Status = "available"
	StatusSold      Status = "sold"
	StatusPending   Status = "pending"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusPending:
		return true
	}
	return false
}

// SellerInfo is the seller identity resolved into listing reads.
type SellerInfo struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
}

// Property is a document in the properties collection. SellerID is the
// owning seller's user id; Seller is only populated on reads that
// resolve it.
type Property struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title        string             `json:"title" bson:"title"`
	Description  string             `json:"description" bson:"description"`
	Price        float64            `json:"price" bson:"price"`
	Location     string             `json:"location" bson:"location"`
	PropertyType PropertyType       `json:"propertyType" bson:"property_type"`
	Bedrooms     *int               `json:"bedrooms,omitempty" bson:"bedrooms,omitempty"`
	Bathrooms    *int               `json:"bathrooms,omitempty" bson:"bathrooms,omitempty"`
	Area         float64            `json:"area" bson:"area"`
	Images       []string           `json:"images" bson:"images"`
	Amenities    []string           `json:"amenities" bson:"amenities"`
	SellerID     primitive.ObjectID `json:"seller_id" bson:"seller"`
	Seller       *SellerInfo        `json:"seller,omitempty" bson:"seller_doc,omitempty"`
	Status       Status             `json:"status" bson:"status"`
	Featured     bool               `json:"featured" bson:"featured"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}

// PropertyInput is the JSON body for creating a listing. Numeric fields
// are pointers so a missing field is distinguishable from zero.
type PropertyInput struct {
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Price        *float64     `json:"price"`
	Location     string       `json:"location"`
	PropertyType PropertyType `json:"propertyType"`
	Bedrooms     *int         `json:"bedrooms"`
	Bathrooms    *int         `json:"bathrooms"`
	Area         *float64     `json:"area"`
	Images       []string     `json:"images"`
	Amenities    []string     `json:"amenities"`
	Featured     bool         `json:"featured"`
}

// Validate checks required fields, enum membership and numeric bounds.
// It returns nil when the input is acceptable.
func (in *PropertyInput) Validate() *ValidationError {
	var bad []string
	if strings.TrimSpace(in.Title) == "" {
		bad = append(bad, "title")
	}
	if strings.TrimSpace(in.Description) == "" {
		bad = append(bad, "description")
	}
	if in.Price == nil || *in.Price < 0 {
		bad = append(bad, "price")
	}
	if strings.TrimSpace(in.Location) == "" {
		bad = append(bad, "location")
	}
	if !in.PropertyType.Valid() {
		bad = append(bad, "propertyType")
	}
	if in.Bedrooms != nil && *in.Bedrooms < 0 {
		bad = append(bad, "bedrooms")
	}
	if in.Bathrooms != nil && *in.Bathrooms < 0 {
		bad = append(bad, "bathrooms")
	}
	if in.Area == nil || *in.Area < 1 {
		bad = append(bad, "area")
	}
	if len(bad) > 0 {
		return &ValidationError{Fields: bad}
	}
	return nil
}

// PropertyPatch is the JSON body for a partial update. Only fields
// present in the request are applied; an images field here replaces the
// whole list (appending goes through the dedicated images route).
type PropertyPatch struct {
	Title        *string       `json:"title"`
	Description  *string       `json:"description"`
	Price        *float64      `json:"price"`
	Location     *string       `json:"location"`
	PropertyType *PropertyType `json:"propertyType"`
	Bedrooms     *int          `json:"bedrooms"`
	Bathrooms    *int          `json:"bathrooms"`
	Area         *float64      `json:"area"`
	Images       *[]string     `json:"images"`
	Amenities    *[]string     `json:"amenities"`
	Status       *Status       `json:"status"`
	Featured     *bool         `json:"featured"`
}

// Validate applies the same bounds as creation, but only to the fields
// the patch actually sets.
func (p *PropertyPatch) Validate() *ValidationError {
	var bad []string
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		bad = append(bad, "title")
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		bad = append(bad, "description")
	}
	if p.Price != nil && *p.Price < 0 {
		bad = append(bad, "price")
	}
	if p.Location != nil && strings.TrimSpace(*p.Location) == "" {
		bad = append(bad, "location")
	}
	if p.PropertyType != nil && !p.PropertyType.Valid() {
		bad = append(bad, "propertyType")
	}
	if p.Bedrooms != nil && *p.Bedrooms < 0 {
		bad = append(bad, "bedrooms")
	}
	if p.Bathrooms != nil && *p.Bathrooms < 0 {
		bad = append(bad, "bathrooms")
	}
	if p.Area != nil && *p.Area < 1 {
		bad = append(bad, "area")
	}
	if p.Status != nil && !p.Status.Valid() {
		bad = append(bad, "status")
	}
	if len(bad) > 0 {
		return &ValidationError{Fields: bad}
	}
	return nil
}
