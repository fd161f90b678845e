package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"myflix/internal/models"
	"myflix/internal/repositories"
)

func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	os.Exit(m.Run())
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

func testConfig() appConfig {
	return appConfig{
		Port:        ":8081",
		JWTSecret:   "test_jwt_secret",
		CORSOrigins: "http://localhost:8080",
		StaticDir:   "./public",
		DocsDir:     "./docs",
	}
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Movie{}, &models.User{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	movieRepo := repositories.NewGORMMovieRepository(db)
	app, err := newApp(userRepo, movieRepo, testConfig(), nil)
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}
	return app
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]string
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "healthy", health["status"])
	resp.Body.Close()
}

func TestUnauthenticatedAccessIsRejected(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/movies", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestCORSHeadersOnAllowedOrigin(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:8080")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", resp.Header.Get("Access-Control-Allow-Origin"))
	resp.Body.Close()
}

func TestAPIDocsArePublic(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api-docs/openapi.yaml", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "openapi")
	resp.Body.Close()
}

// The in-memory backend must serve the same app wiring as the database
// backend: registration, login and the seeded catalog all work without
// a database connection.
func TestInMemoryStoreServesSeededCatalog(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	movieRepo := repositories.NewMockMovieRepository()
	seedMovies(movieRepo)

	app, err := newApp(userRepo, movieRepo, testConfig(), nil)
	assert.NoError(t, err)

	register := httptest.NewRequest(http.MethodPost, "/users",
		jsonBody(`{"username":"memuser","password":"s3cret!","email":"mem@example.com"}`))
	register.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(register, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	login := httptest.NewRequest(http.MethodPost, "/login",
		jsonBody(`{"username":"memuser","password":"s3cret!"}`))
	login.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(login, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var loginBody struct {
		Token string `json:"token"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&loginBody))
	assert.NotEmpty(t, loginBody.Token)
	resp.Body.Close()

	movies := httptest.NewRequest(http.MethodGet, "/movies", nil)
	movies.Header.Set("Authorization", "Bearer "+loginBody.Token)
	resp, err = app.Test(movies, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var catalog []models.Movie
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&catalog))
	assert.Len(t, catalog, 2)
	titles := []string{catalog[0].Title, catalog[1].Title}
	assert.Contains(t, titles, "Alien")
	assert.Contains(t, titles, "Blade Runner")
	resp.Body.Close()
}

func TestMissingSecretRefusesToBuild(t *testing.T) {
	_, err := newApp(repositories.NewMockUserRepository(), repositories.NewMockMovieRepository(),
		appConfig{Port: ":8081"}, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "signing secret")
}
