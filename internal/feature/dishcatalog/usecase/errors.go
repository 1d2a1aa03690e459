// Package usecase implements the business logic for the dishcatalog feature.
package usecase

import "errors"

var (
	// ErrDishNotFound is returned when no dish matches the given code or description.
	ErrDishNotFound = errors.New("dish not found")

	// ErrDishCodeAlreadyExists is returned when creating a dish whose code is already taken.
	ErrDishCodeAlreadyExists = errors.New("dish code already exists")

	// ErrInvalidDish is returned when a dish fails validation (empty code or description, code too long).
	ErrInvalidDish = errors.New("invalid dish")
)
