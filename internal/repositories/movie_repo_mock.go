package repositories

import (
	"fmt"
	"sync"

	"myflix/internal/models"

	"github.com/google/uuid"
)

// MockMovieRepository is an in-memory implementation of MovieRepository.
type MockMovieRepository struct {
	movies map[string]models.Movie
	mu     sync.RWMutex
}

// NewMockMovieRepository creates a new instance of MockMovieRepository.
func NewMockMovieRepository() *MockMovieRepository {
	return &MockMovieRepository{
		movies: make(map[string]models.Movie),
	}
}

// GetAll returns all movies.
func (r *MockMovieRepository) GetAll() ([]models.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	movieList := make([]models.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		movieList = append(movieList, m)
	}
	return movieList, nil
}

// GetByID returns a movie by its ID.
func (r *MockMovieRepository) GetByID(id string) (*models.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	movie, ok := r.movies[id]
	if !ok {
		return nil, fmt.Errorf("movie with ID %s %w", id, ErrNotFound)
	}
	return &movie, nil
}

// GetByTitle returns a movie by its exact title.
func (r *MockMovieRepository) GetByTitle(title string) (*models.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.movies {
		if m.Title == title {
			movie := m
			return &movie, nil
		}
	}
	return nil, fmt.Errorf("movie with title %s %w", title, ErrNotFound)
}

// GetByGenreName returns any movie whose genre matches the given name.
func (r *MockMovieRepository) GetByGenreName(name string) (*models.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.movies {
		if m.Genre.Name == name {
			movie := m
			return &movie, nil
		}
	}
	return nil, fmt.Errorf("genre %s %w", name, ErrNotFound)
}

// GetByDirectorName returns any movie whose director matches the given name.
func (r *MockMovieRepository) GetByDirectorName(name string) (*models.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.movies {
		if m.Director.Name == name {
			movie := m
			return &movie, nil
		}
	}
	return nil, fmt.Errorf("director %s %w", name, ErrNotFound)
}

// Create adds a new movie.
func (r *MockMovieRepository) Create(movie *models.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if movie.ID == "" {
		movie.ID = uuid.New().String()
	}
	r.movies[movie.ID] = *movie
	return nil
}

// Update modifies an existing movie.
func (r *MockMovieRepository) Update(movie *models.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.movies[movie.ID]
	if !ok {
		return fmt.Errorf("movie with ID %s %w for update", movie.ID, ErrNotFound)
	}
	r.movies[movie.ID] = *movie
	return nil
}

// Delete removes a movie by its ID.
func (r *MockMovieRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.movies[id]
	if !ok {
		return fmt.Errorf("movie with ID %s %w for deletion", id, ErrNotFound)
	}
	delete(r.movies, id)
	return nil
}
