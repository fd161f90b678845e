package services

import (
	"encoding/json"
	"fmt"
	"log"

	"myflix/internal/models"
	"myflix/internal/repositories"
	"myflix/pkg/rabbitmq"
)

// UserService handles business logic related to user profiles and favorites.
type UserService struct {
	userRepo  repositories.UserRepository
	movieRepo repositories.MovieRepository
	mqClient  *rabbitmq.Client
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, movieRepo repositories.MovieRepository, mqClient *rabbitmq.Client) *UserService {
	return &UserService{
		userRepo:  userRepo,
		movieRepo: movieRepo,
		mqClient:  mqClient,
	}
}

// GetAllUsers retrieves all users.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// GetUserByUsername retrieves a single user by their username.
func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	return s.userRepo.GetByUsername(username)
}

// UpdateUser applies profile changes to the named user and returns the
// updated record. Zero-valued fields in updated are left untouched; a new
// password is re-hashed before storage.
func (s *UserService) UpdateUser(username string, updated *models.User) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	if updated.Username != "" {
		user.Username = updated.Username
	}
	if updated.Email != "" {
		user.Email = updated.Email
	}
	if updated.Birthday != nil {
		user.Birthday = updated.Birthday
	}
	if updated.Password != "" {
		hashed, err := HashPassword(updated.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the named user's account. Outstanding tokens for the
// account are not revoked; they fail lazily at verification time.
func (s *UserService) DeleteUser(username string) error {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(username); err != nil {
		return err
	}

	s.publishAccountEvent("user.deleted", user)
	return nil
}

// AddFavorite adds the movie to the user's favorites. The movie must exist;
// adding an existing favorite is a no-op.
func (s *UserService) AddFavorite(username, movieID string) (*models.User, error) {
	movie, err := s.movieRepo.GetByID(movieID)
	if err != nil {
		return nil, fmt.Errorf("movie %s not found: %w", movieID, err)
	}

	if err := s.userRepo.AddFavorite(username, movie); err != nil {
		return nil, err
	}
	return s.userRepo.GetByUsername(username)
}

// RemoveFavorite removes the movie from the user's favorites. Removing a
// movie that is not a favorite succeeds silently.
func (s *UserService) RemoveFavorite(username, movieID string) (*models.User, error) {
	movie, err := s.movieRepo.GetByID(movieID)
	if err != nil {
		return nil, fmt.Errorf("movie %s not found: %w", movieID, err)
	}

	if err := s.userRepo.RemoveFavorite(username, movie); err != nil {
		return nil, err
	}
	return s.userRepo.GetByUsername(username)
}

func (s *UserService) publishAccountEvent(routingKey string, user *models.User) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
		return
	}

	event := map[string]interface{}{
		"userID":   user.ID,
		"username": user.Username,
		"email":    user.Email,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal account event to JSON: %v", err)
		return
	}
	if err := s.mqClient.Publish("account", routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for user %s: %v", routingKey, user.ID, err)
	} else {
		log.Printf("Successfully published %s event for user %s", routingKey, user.ID)
	}
}
