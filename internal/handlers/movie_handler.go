package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/url"

	"myflix/internal/models"
	"myflix/internal/repositories"
	"myflix/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MovieHandler handles HTTP requests for the movie catalog.
type MovieHandler struct {
	service  *services.MovieService
	validate *validator.Validate
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(service *services.MovieService) *MovieHandler {
	return &MovieHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the movie catalog routes.
// /movies/id/:movieID must be registered before /movies/:title so the
// literal "id" segment wins the match.
func (h *MovieHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/movies", h.HandleGetMovies)
	router.Get("/movies/id/:movieID", h.HandleGetMovieByID)
	router.Get("/movies/:title", h.HandleGetMovieByTitle)
	router.Post("/movies", h.HandleCreateMovie)
	router.Put("/movies/:movieID", h.HandleUpdateMovie)
	router.Delete("/movies/:movieID", h.HandleDeleteMovie)
	router.Get("/genres/:name", h.HandleGetGenre)
	router.Get("/directors/:name", h.HandleGetDirector)
}

// pathParam returns the named route parameter with percent-encoding
// undone, so titles and names containing spaces match stored values.
func pathParam(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// HandleGetMovies retrieves all movies.
func (h *MovieHandler) HandleGetMovies(c *fiber.Ctx) error {
	movies, err := h.service.GetAllMovies()
	if err != nil {
		log.Printf("Error getting all movies: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve movies",
		})
	}
	return c.JSON(movies)
}

// HandleGetMovieByID retrieves a single movie by its ID.
func (h *MovieHandler) HandleGetMovieByID(c *fiber.Ctx) error {
	movieID := c.Params("movieID")
	movie, err := h.service.GetMovieByID(movieID)
	if err != nil {
		log.Printf("Error getting movie by ID %s: %v", movieID, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Movie not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve movie",
		})
	}
	return c.JSON(movie)
}

// HandleGetMovieByTitle retrieves a single movie by its exact title.
func (h *MovieHandler) HandleGetMovieByTitle(c *fiber.Ctx) error {
	title := pathParam(c, "title")
	movie, err := h.service.GetMovieByTitle(title)
	if err != nil {
		log.Printf("Error getting movie by title %s: %v", title, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Movie not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve movie",
		})
	}
	return c.JSON(movie)
}

// HandleCreateMovie adds a new movie to the catalog.
func (h *MovieHandler) HandleCreateMovie(c *fiber.Ctx) error {
	var movie models.Movie
	if err := c.BodyParser(&movie); err != nil {
		log.Printf("Error parsing movie request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(movie); err != nil {
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

	if err := h.service.CreateMovie(&movie); err != nil {
		log.Printf("Error creating movie: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create movie",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(movie)
}

// HandleUpdateMovie updates an existing movie.
func (h *MovieHandler) HandleUpdateMovie(c *fiber.Ctx) error {
	movieID := c.Params("movieID")
	movie, err := h.service.GetMovieByID(movieID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Movie not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve movie",
		})
	}

	if err := c.BodyParser(movie); err != nil {
		log.Printf("Error parsing movie update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	movie.ID = movieID // ID is not updatable

	if err := h.validate.Struct(movie); err != nil {
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

	if err := h.service.UpdateMovie(movie); err != nil {
		log.Printf("Error updating movie %s: %v", movieID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update movie",
		})
	}
	return c.JSON(movie)
}

// HandleDeleteMovie removes a movie from the catalog.
func (h *MovieHandler) HandleDeleteMovie(c *fiber.Ctx) error {
	movieID := c.Params("movieID")
	if err := h.service.DeleteMovie(movieID); err != nil {
		log.Printf("Error deleting movie %s: %v", movieID, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Movie not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete movie",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Movie deleted",
	})
}

// HandleGetGenre returns genre details by genre name.
func (h *MovieHandler) HandleGetGenre(c *fiber.Ctx) error {
	name := pathParam(c, "name")
	genre, err := h.service.GetGenreByName(name)
	if err != nil {
		log.Printf("Error getting genre %s: %v", name, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Genre not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve genre",
		})
	}
	return c.JSON(genre)
}

// HandleGetDirector returns director details by director name.
func (h *MovieHandler) HandleGetDirector(c *fiber.Ctx) error {
	name := pathParam(c, "name")
	director, err := h.service.GetDirectorByName(name)
	if err != nil {
		log.Printf("Error getting director %s: %v", name, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Director not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve director",
		})
	}
	return c.JSON(director)
}
