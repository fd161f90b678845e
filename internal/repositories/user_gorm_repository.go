package repositories

import (
	"fmt"
	"myflix/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetAll retrieves all users with their favorite movies preloaded.
func (r *GORMUserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Preload("FavoriteMovies").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}

// GetByUsername retrieves a user by their username from the database.
// Lookup is exact and case-sensitive.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("FavoriteMovies").First(&user, "username = ?", username).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with username %s %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with email %s %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("FavoriteMovies").First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with ID %s %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// Update updates an existing user in the database.
func (r *GORMUserRepository) Update(user *models.User) error {
	res := r.db.Save(user) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s %w for update", user.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a user by their username from the database.
func (r *GORMUserRepository) Delete(username string) error {
	res := r.db.Delete(&models.User{}, "username = ?", username)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with username %s %w for deletion", username, ErrNotFound)
	}
	return nil
}

// AddFavorite links a movie to the user's favorites. Adding a movie that
// is already a favorite is a no-op.
func (r *GORMUserRepository) AddFavorite(username string, movie *models.Movie) error {
	user, err := r.GetByUsername(username)
	if err != nil {
		return err
	}
	for _, m := range user.FavoriteMovies {
		if m.ID == movie.ID {
			return nil
		}
	}
	if err := r.db.Model(user).Association("FavoriteMovies").Append(movie); err != nil {
		return fmt.Errorf("failed to add favorite movie %s for user %s: %w", movie.ID, username, err)
	}
	return nil
}

// RemoveFavorite unlinks a movie from the user's favorites. Removing a
// movie that is not a favorite succeeds silently.
func (r *GORMUserRepository) RemoveFavorite(username string, movie *models.Movie) error {
	user, err := r.GetByUsername(username)
	if err != nil {
		return err
	}
	if err := r.db.Model(user).Association("FavoriteMovies").Delete(movie); err != nil {
		return fmt.Errorf("failed to remove favorite movie %s for user %s: %w", movie.ID, username, err)
	}
	return nil
}
