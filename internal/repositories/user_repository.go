package repositories

import (
	"errors"

	"agency/internal/models"
)

// ErrNotFound is returned by all repositories when a lookup misses. Callers
// distinguish it from store failures with errors.Is.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a unique constraint, so a
// concurrent insert that slips past a pre-check still surfaces as a conflict
// rather than a store failure.
var ErrDuplicate = errors.New("duplicate record")

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetAll() ([]models.User, error)
	Update(user *models.User) error
	Delete(id string) error
}
