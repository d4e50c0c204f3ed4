package domain

import "time"

// Category is static reference data classifying machinery.
type Category struct {
	ID          int64
	Name        string
	Description string
}

// Listing is a piece of machinery offered for rent by an owner.
type Listing struct {
	ID            string
	OwnerID       string
	CategoryID    int64
	Name          string
	Description   string
	RatePerHour   float64
	RatePerDay    float64
	ImageURL      string
	AvailableDate *time.Time
	Approved      bool
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewListing creates a listing awaiting administrator approval.
func NewListing(id, ownerID string, categoryID int64, name string) Listing {
	now := time.Now().UTC()
	return Listing{
		ID:         id,
		OwnerID:    ownerID,
		CategoryID: categoryID,
		Name:       name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// ListingFilter holds optional criteria for listing machinery.
type ListingFilter struct {
	OwnerID  string
	Approved *bool
}
