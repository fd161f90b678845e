package services

import (
	"myflix/internal/models"
	"myflix/internal/repositories"
)

// MovieService handles business logic related to the movie catalog.
type MovieService struct {
	repo repositories.MovieRepository
}

// NewMovieService creates a new MovieService.
func NewMovieService(repo repositories.MovieRepository) *MovieService {
	return &MovieService{
		repo: repo,
	}
}

// GetAllMovies retrieves all movies.
func (s *MovieService) GetAllMovies() ([]models.Movie, error) {
	return s.repo.GetAll()
}

// GetMovieByID retrieves a single movie by its ID.
func (s *MovieService) GetMovieByID(id string) (*models.Movie, error) {
	return s.repo.GetByID(id)
}

// GetMovieByTitle retrieves a single movie by its exact title.
func (s *MovieService) GetMovieByTitle(title string) (*models.Movie, error) {
	return s.repo.GetByTitle(title)
}

// GetGenreByName returns the genre details for the named genre, projected
// from any movie carrying it.
func (s *MovieService) GetGenreByName(name string) (*models.Genre, error) {
	movie, err := s.repo.GetByGenreName(name)
	if err != nil {
		return nil, err
	}
	return &movie.Genre, nil
}

// GetDirectorByName returns the director details for the named director,
// projected from any movie they directed.
func (s *MovieService) GetDirectorByName(name string) (*models.Director, error) {
	movie, err := s.repo.GetByDirectorName(name)
	if err != nil {
		return nil, err
	}
	return &movie.Director, nil
}

// CreateMovie creates a new movie.
func (s *MovieService) CreateMovie(movie *models.Movie) error {
	return s.repo.Create(movie)
}

// UpdateMovie updates an existing movie.
func (s *MovieService) UpdateMovie(movie *models.Movie) error {
	return s.repo.Update(movie)
}

// DeleteMovie deletes a movie by its ID.
func (s *MovieService) DeleteMovie(id string) error {
	return s.repo.Delete(id)
}
