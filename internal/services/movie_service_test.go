package services_test

import (
	"fmt"
	"testing"

	"myflix/internal/models"
	"myflix/internal/repositories"
	"myflix/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockMovieRepository is a mock implementation of repositories.MovieRepository
type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) GetAll() ([]models.Movie, error) {
	args := m.Called()
	return args.Get(0).([]models.Movie), args.Error(1)
}

func (m *MockMovieRepository) GetByID(id string) (*models.Movie, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieRepository) GetByTitle(title string) (*models.Movie, error) {
	args := m.Called(title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieRepository) GetByGenreName(name string) (*models.Movie, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieRepository) GetByDirectorName(name string) (*models.Movie, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieRepository) Create(movie *models.Movie) error {
	args := m.Called(movie)
	return args.Error(0)
}

func (m *MockMovieRepository) Update(movie *models.Movie) error {
	args := m.Called(movie)
	return args.Error(0)
}

func (m *MockMovieRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestMovieService_GetAllMovies(t *testing.T) {
	mockRepo := new(MockMovieRepository)
	service := services.NewMovieService(mockRepo)

	expectedMovies := []models.Movie{
		{ID: "1", Title: "Alien", Description: "A crew answers a distress call."},
		{ID: "2", Title: "Blade Runner", Description: "A blade runner hunts replicants."},
	}

	mockRepo.On("GetAll").Return(expectedMovies, nil).Once()

	movies, err := service.GetAllMovies()

	assert.NoError(t, err)
	assert.Len(t, movies, 2)
	assert.Equal(t, expectedMovies, movies)
	mockRepo.AssertExpectations(t)
}

func TestMovieService_GetMovieByID(t *testing.T) {
	mockRepo := new(MockMovieRepository)
	service := services.NewMovieService(mockRepo)

	expectedMovie := &models.Movie{ID: "1", Title: "Alien"}

	// Test successful retrieval
	mockRepo.On("GetByID", "1").Return(expectedMovie, nil).Once()
	movie, err := service.GetMovieByID("1")
	assert.NoError(t, err)
	assert.Equal(t, expectedMovie, movie)
	mockRepo.AssertExpectations(t)

	// Test movie not found
	mockRepo.On("GetByID", "99").Return(nil, notFoundErr("movie with ID %s", "99")).Once()
	movie, err = service.GetMovieByID("99")
	assert.Error(t, err)
	assert.Nil(t, movie)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestMovieService_GetMovieByTitle(t *testing.T) {
	mockRepo := new(MockMovieRepository)
	service := services.NewMovieService(mockRepo)

	expectedMovie := &models.Movie{ID: "1", Title: "Alien"}

	mockRepo.On("GetByTitle", "Alien").Return(expectedMovie, nil).Once()
	movie, err := service.GetMovieByTitle("Alien")
	assert.NoError(t, err)
	assert.Equal(t, expectedMovie, movie)

	mockRepo.On("GetByTitle", "Nonexistent").Return(nil, notFoundErr("movie with title %s", "Nonexistent")).Once()
	_, err = service.GetMovieByTitle("Nonexistent")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestMovieService_GetGenreByName(t *testing.T) {
	mockRepo := new(MockMovieRepository)
	service := services.NewMovieService(mockRepo)

	movie := &models.Movie{
		ID:    "1",
		Title: "Alien",
		Genre: models.Genre{Name: "Horror", Description: "Intended to frighten."},
	}

	// The genre projection comes from whichever movie carries it
	mockRepo.On("GetByGenreName", "Horror").Return(movie, nil).Once()
	genre, err := service.GetGenreByName("Horror")
	assert.NoError(t, err)
	assert.Equal(t, "Horror", genre.Name)
	assert.Equal(t, "Intended to frighten.", genre.Description)

	mockRepo.On("GetByGenreName", "Western").Return(nil, notFoundErr("genre %s", "Western")).Once()
	_, err = service.GetGenreByName("Western")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestMovieService_GetDirectorByName(t *testing.T) {
	mockRepo := new(MockMovieRepository)
	service := services.NewMovieService(mockRepo)

	movie := &models.Movie{
		ID:       "1",
		Title:    "Alien",
		Director: models.Director{Name: "Ridley Scott", BirthYear: 1937},
	}

	mockRepo.On("GetByDirectorName", "Ridley Scott").Return(movie, nil).Once()
	director, err := service.GetDirectorByName("Ridley Scott")
	assert.NoError(t, err)
	assert.Equal(t, "Ridley Scott", director.Name)
	assert.Equal(t, 1937, director.BirthYear)
	mockRepo.AssertExpectations(t)
}

func TestMovieService_CreateMovie(t *testing.T) {
	mockRepo := new(MockMovieRepository)
	service := services.NewMovieService(mockRepo)

	newMovie := &models.Movie{Title: "Alien", Description: "A crew answers a distress call."}

	// Test successful creation
	mockRepo.On("Create", newMovie).Return(nil).Once()
	err := service.CreateMovie(newMovie)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test creation failure (e.g., database error)
	mockRepo.On("Create", newMovie).Return(fmt.Errorf("database error")).Once()
	err = service.CreateMovie(newMovie)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}

func TestMovieService_UpdateMovie(t *testing.T) {
	mockRepo := new(MockMovieRepository)
	service := services.NewMovieService(mockRepo)

	updatedMovie := &models.Movie{ID: "1", Title: "Alien (Director's Cut)"}

	mockRepo.On("Update", updatedMovie).Return(nil).Once()
	err := service.UpdateMovie(updatedMovie)
	assert.NoError(t, err)

	missing := &models.Movie{ID: "99", Title: "Nonexistent"}
	mockRepo.On("Update", missing).Return(notFoundErr("movie with ID %s", "99")).Once()
	err = service.UpdateMovie(missing)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestMovieService_DeleteMovie(t *testing.T) {
	mockRepo := new(MockMovieRepository)
	service := services.NewMovieService(mockRepo)

	// Test successful deletion
	mockRepo.On("Delete", "1").Return(nil).Once()
	err := service.DeleteMovie("1")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test deletion failure (e.g., movie not found)
	mockRepo.On("Delete", "99").Return(notFoundErr("movie with ID %s", "99")).Once()
	err = service.DeleteMovie("99")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
