// Package domain defines the core vocabulary entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrInvalidDirection is returned when a direction is neither EN_RU nor RU_EN.
	ErrInvalidDirection = errors.New("invalid translation direction")

	// ErrInvalidAnswer is returned when an answer does not populate exactly
	// one translation field.
	ErrInvalidAnswer = errors.New("invalid answer")
)
