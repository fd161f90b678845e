package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account in the movie catalog.
type User struct {
	ID             string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username       string     `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,alphanum,min=5,max=100"`
	Email          string     `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password       string     `gorm:"type:varchar(255)" validate:"required"` // No json tag for security
	Birthday       *time.Time `json:"birthday,omitempty"`
	FavoriteMovies []Movie    `json:"favoriteMovies" gorm:"many2many:user_favorites"`
	gorm.Model                // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// UserResponse is the only user shape that crosses the serialization
// boundary. The password hash never leaves the service layer.
type UserResponse struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	Birthday       *time.Time `json:"birthday,omitempty"`
	FavoriteMovies []string   `json:"favoriteMovies"`
}

// ToResponse strips sensitive fields and flattens favorites to movie IDs.
func (u *User) ToResponse() UserResponse {
	favorites := make([]string, 0, len(u.FavoriteMovies))
	for _, m := range u.FavoriteMovies {
		favorites = append(favorites, m.ID)
	}
	return UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Birthday:       u.Birthday,
		FavoriteMovies: favorites,
	}
}
