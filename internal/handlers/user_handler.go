package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"myflix/internal/middleware"
	"myflix/internal/models"
	"myflix/internal/repositories"
	"myflix/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user profiles and favorites.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the user profile routes. All of these require
// an authenticated identity; mutating routes additionally require that the
// identity matches the profile being changed.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/users", h.HandleGetUsers)
	router.Get("/users/:username", h.HandleGetUserByUsername)
	router.Put("/users/:username", h.HandleUpdateUser)
	router.Delete("/users/:username", h.HandleDeleteUser)
	router.Post("/users/:username/movies/:movieID", h.HandleAddFavorite)
	router.Delete("/users/:username/movies/:movieID", h.HandleRemoveFavorite)
}

// requireOwnProfile enforces the own-profile rule: the authenticated user
// may only modify the profile named in the path.
func requireOwnProfile(c *fiber.Ctx) bool {
	user, ok := c.Locals(middleware.CurrentUserKey).(*models.User)
	return ok && user.Username == c.Params("username")
}

func permissionDenied(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"message": "Permission denied",
	})
}

// HandleGetUsers retrieves all users.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetAllUsers()
	if err != nil {
		log.Printf("Error getting all users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve users",
		})
	}

	responses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}
	return c.JSON(responses)
}

// HandleGetUserByUsername retrieves a single user by their username.
func (h *UserHandler) HandleGetUserByUsername(c *fiber.Ctx) error {
	username := c.Params("username")
	user, err := h.service.GetUserByUsername(username)
	if err != nil {
		log.Printf("Error getting user %s: %v", username, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve user",
		})
	}
	return c.JSON(user.ToResponse())
}

// UpdateUserRequest represents the request body for profile updates. All
// fields are optional; absent fields are left unchanged.
type UpdateUserRequest struct {
	Username string `json:"username" validate:"omitempty,alphanum,min=5,max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
	Birthday string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
}

// HandleUpdateUser updates the authenticated user's own profile.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	if !requireOwnProfile(c) {
		return permissionDenied(c)
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing user update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	updated := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Birthday != "" {
		birthday, err := time.Parse("2006-01-02", req.Birthday)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  map[string]string{"Birthday": "Birthday must be a valid YYYY-MM-DD date"},
			})
		}
		updated.Birthday = &birthday
	}

	user, err := h.service.UpdateUser(c.Params("username"), &updated)
	if err != nil {
		log.Printf("Error updating user %s: %v", c.Params("username"), err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update user",
		})
	}
	return c.JSON(user.ToResponse())
}

// HandleDeleteUser deletes the authenticated user's own account.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if !requireOwnProfile(c) {
		return permissionDenied(c)
	}

	username := c.Params("username")
	if err := h.service.DeleteUser(username); err != nil {
		log.Printf("Error deleting user %s: %v", username, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete user",
		})
	}
	return c.JSON(fiber.Map{
		"message": "User deleted",
	})
}

// HandleAddFavorite adds a movie to the authenticated user's favorites.
func (h *UserHandler) HandleAddFavorite(c *fiber.Ctx) error {
	if !requireOwnProfile(c) {
		return permissionDenied(c)
	}

	username := c.Params("username")
	movieID := c.Params("movieID")
	user, err := h.service.AddFavorite(username, movieID)
	if err != nil {
		log.Printf("Error adding favorite %s for user %s: %v", movieID, username, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Movie not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add favorite",
		})
	}
	return c.JSON(user.ToResponse())
}

// HandleRemoveFavorite removes a movie from the authenticated user's favorites.
func (h *UserHandler) HandleRemoveFavorite(c *fiber.Ctx) error {
	if !requireOwnProfile(c) {
		return permissionDenied(c)
	}

	username := c.Params("username")
	movieID := c.Params("movieID")
	user, err := h.service.RemoveFavorite(username, movieID)
	if err != nil {
		log.Printf("Error removing favorite %s for user %s: %v", movieID, username, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Movie not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove favorite",
		})
	}
	return c.JSON(user.ToResponse())
}
