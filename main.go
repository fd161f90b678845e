package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"

	"myflix/internal/handlers"
	"myflix/internal/middleware"
	"myflix/internal/models"
	"myflix/internal/repositories"
	"myflix/internal/services"
	"myflix/pkg/rabbitmq"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// appConfig is the explicit configuration passed into constructors. The
// signing secret has no default: startup fails when it is absent instead of
// silently falling back to a baked-in value.
type appConfig struct {
	Port          string
	DatabaseDSN   string // postgres DSN; when empty, SQLite is used
	DatabasePath  string
	InMemoryStore bool // skip the database entirely; data is lost on exit
	JWTSecret     string
	RabbitMQURL   string // empty disables account-event publishing
	CORSOrigins   string
	StaticDir     string
	DocsDir       string
}

func loadConfig() appConfig {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_PATH", "myflix.db")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:8080,http://localhost:1234")
	viper.SetDefault("STATIC_DIR", "./public")
	viper.SetDefault("DOCS_DIR", "./docs")
	viper.AutomaticEnv() // Load environment variables

	return appConfig{
		Port:          viper.GetString("APP_PORT"),
		DatabaseDSN:   viper.GetString("DATABASE_DSN"),
		DatabasePath:  viper.GetString("DATABASE_PATH"),
		InMemoryStore: viper.GetBool("IN_MEMORY_STORE"),
		JWTSecret:     viper.GetString("JWT_SECRET"),
		RabbitMQURL:   viper.GetString("RABBITMQ_URL"),
		CORSOrigins:   viper.GetString("CORS_ORIGINS"),
		StaticDir:     viper.GetString("STATIC_DIR"),
		DocsDir:       viper.GetString("DOCS_DIR"),
	}
}

// openDatabase connects to PostgreSQL when a DSN is configured and falls
// back to a local SQLite file otherwise, then migrates the schema.
func openDatabase(cfg appConfig) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	if cfg.DatabaseDSN != "" {
		db, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	} else {
		db, err = gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	}
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.Movie{}, &models.User{}); err != nil {
		return nil, err
	}
	return db, nil
}

// seedMovies fills an empty catalog with a few titles so the in-memory
// mode has something to serve.
func seedMovies(repo repositories.MovieRepository) {
	movies := []models.Movie{
		{
			Title:       "Alien",
			Description: "The crew of a commercial spacecraft encounters a deadly lifeform.",
			Genre:       models.Genre{Name: "Horror", Description: "Fiction intended to frighten"},
			Director:    models.Director{Name: "Ridley Scott", BirthYear: 1937},
			Actors:      []string{"Sigourney Weaver", "Tom Skerritt"},
			Featured:    true,
			ReleaseYear: 1979,
			Rating:      8.5,
		},
		{
			Title:       "Blade Runner",
			Description: "A blade runner must pursue and terminate four replicants.",
			Genre:       models.Genre{Name: "Sci-Fi", Description: "Speculative futures"},
			Director:    models.Director{Name: "Ridley Scott", BirthYear: 1937},
			Actors:      []string{"Harrison Ford", "Rutger Hauer"},
			ReleaseYear: 1982,
			Rating:      8.1,
		},
	}

	for i := range movies {
		if err := repo.Create(&movies[i]); err != nil {
			log.Printf("Error seeding movie %s: %v", movies[i].Title, err)
		} else {
			log.Printf("Seeded movie: %s (ID: %s)", movies[i].Title, movies[i].ID)
		}
	}
}

// newApp wires repositories, services, handlers and middleware into a
// ready-to-listen Fiber app.
func newApp(userRepo repositories.UserRepository, movieRepo repositories.MovieRepository, cfg appConfig, mqClient *rabbitmq.Client) (*fiber.App, error) {
	// --- Initialize Services ---
	authService, err := services.NewAuthService(userRepo, cfg.JWTSecret, mqClient)
	if err != nil {
		return nil, err
	}
	movieService := services.NewMovieService(movieRepo)
	userService := services.NewUserService(userRepo, movieRepo, mqClient)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	movieHandler := handlers.NewMovieHandler(movieService)
	userHandler := handlers.NewUserHandler(userService)

	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Public routes: registration, login, and static assets for the
	// bundled client. These must be registered before the auth gate.
	authHandler.RegisterRoutes(app)
	app.Static("/", cfg.StaticDir)
	app.Static("/api-docs", cfg.DocsDir) // interactive API reference

	// Protected routes: everything else requires a bearer token
	protected := app.Group("", middleware.AuthRequired(authService))
	movieHandler.RegisterRoutes(protected)
	userHandler.RegisterRoutes(protected)

	return app, nil
}

func main() {
	cfg := loadConfig()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set; refusing to start without a signing secret")
	}

	// --- Initialize Repositories ---
	var (
		userRepo  repositories.UserRepository
		movieRepo repositories.MovieRepository
	)
	if cfg.InMemoryStore {
		log.Println("IN_MEMORY_STORE set; data will not survive a restart")
		userRepo = repositories.NewMockUserRepository()
		movies := repositories.NewMockMovieRepository()
		seedMovies(movies)
		movieRepo = movies
	} else {
		db, err := openDatabase(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		userRepo = repositories.NewGORMUserRepository(db)
		movieRepo = repositories.NewGORMMovieRepository(db)
	}

	// --- Initialize RabbitMQ Client (optional) ---
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close() // Ensure the connection is closed on exit
	} else {
		log.Println("RABBITMQ_URL not set; account events will not be published")
	}

	app, err := newApp(userRepo, movieRepo, cfg, mqClient)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	// --- Start RabbitMQ Consumer in a Goroutine ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for account events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received Account Event (Tag: %d, Key: %s): %s", msg.DeliveryTag, msg.RoutingKey, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeAccountEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.Port)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.Port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
