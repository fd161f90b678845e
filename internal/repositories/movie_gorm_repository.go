package repositories

import (
	"fmt"
	"myflix/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMovieRepository is a GORM implementation of MovieRepository.
type GORMMovieRepository struct {
	db *gorm.DB
}

// NewGORMMovieRepository creates a new instance of GORMMovieRepository.
func NewGORMMovieRepository(db *gorm.DB) *GORMMovieRepository {
	return &GORMMovieRepository{
		db: db,
	}
}

// GetAll retrieves all movies from the database.
func (r *GORMMovieRepository) GetAll() ([]models.Movie, error) {
	var movies []models.Movie
	if err := r.db.Find(&movies).Error; err != nil {
		return nil, fmt.Errorf("failed to get all movies: %w", err)
	}
	return movies, nil
}

// GetByID retrieves a single movie by its ID from the database.
func (r *GORMMovieRepository) GetByID(id string) (*models.Movie, error) {
	var movie models.Movie
	if err := r.db.First(&movie, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("movie with ID %s %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get movie by ID %s: %w", id, err)
	}
	return &movie, nil
}

// GetByTitle retrieves a single movie by its exact title.
func (r *GORMMovieRepository) GetByTitle(title string) (*models.Movie, error) {
	var movie models.Movie
	if err := r.db.First(&movie, "title = ?", title).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("movie with title %s %w", title, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get movie by title %s: %w", title, err)
	}
	return &movie, nil
}

// GetByGenreName retrieves any movie whose genre matches the given name.
// Callers interested in the genre itself project the embedded Genre field.
func (r *GORMMovieRepository) GetByGenreName(name string) (*models.Movie, error) {
	var movie models.Movie
	if err := r.db.First(&movie, "genre_name = ?", name).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("genre %s %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get movie by genre %s: %w", name, err)
	}
	return &movie, nil
}

// GetByDirectorName retrieves any movie whose director matches the given name.
func (r *GORMMovieRepository) GetByDirectorName(name string) (*models.Movie, error) {
	var movie models.Movie
	if err := r.db.First(&movie, "director_name = ?", name).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("director %s %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get movie by director %s: %w", name, err)
	}
	return &movie, nil
}

// Create creates a new movie in the database.
func (r *GORMMovieRepository) Create(movie *models.Movie) error {
	if movie.ID == "" {
		movie.ID = uuid.New().String()
	}
	if err := r.db.Create(movie).Error; err != nil {
		return fmt.Errorf("failed to create movie: %w", err)
	}
	return nil
}

// Update updates an existing movie in the database.
func (r *GORMMovieRepository) Update(movie *models.Movie) error {
	res := r.db.Save(movie) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update movie: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// GORM's Save doesn't return ErrRecordNotFound if no rows affected
		// for an update, so we check RowsAffected.
		return fmt.Errorf("movie with ID %s %w for update", movie.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a movie by its ID from the database.
func (r *GORMMovieRepository) Delete(id string) error {
	res := r.db.Delete(&models.Movie{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete movie: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("movie with ID %s %w for deletion", id, ErrNotFound)
	}
	return nil
}
