// Package entity defines the domain models for the dishcatalog feature.
package entity

import "time"

// Dish represents a known dish in the catalog.
// Code is the stable identity key and never changes after creation;
// ID is a surrogate key assigned by the store.
type Dish struct {
	ID             uint
	Code           string
	Description    string
	ImageReference string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
