package repositories

import (
	"myflix/internal/models"
)

// MovieRepository defines the interface for movie data access.
type MovieRepository interface {
	GetAll() ([]models.Movie, error)
	GetByID(id string) (*models.Movie, error)
	GetByTitle(title string) (*models.Movie, error)
	GetByGenreName(name string) (*models.Movie, error)
	GetByDirectorName(name string) (*models.Movie, error)
	Create(movie *models.Movie) error
	Update(movie *models.Movie) error
	Delete(id string) error
}
