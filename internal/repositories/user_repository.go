package repositories

import (
	"errors"

	"myflix/internal/models"
)

// ErrNotFound is wrapped into every lookup miss so callers can tell a
// missing record apart from a storage failure.
var ErrNotFound = errors.New("not found")

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetAll() ([]models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	Update(user *models.User) error
	Delete(username string) error
	AddFavorite(username string, movie *models.Movie) error
	RemoveFavorite(username string, movie *models.Movie) error
}
