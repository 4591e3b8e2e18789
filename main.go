package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"agency/internal/handlers"
	"agency/internal/middleware"
	"agency/internal/models"
	"agency/internal/repositories"
	"agency/internal/services"
	"agency/pkg/rabbitmq"
)

// loadConfig sets configuration defaults and loads the environment. JWT_SECRET
// has no default on purpose: a missing secret must fail startup.
func loadConfig() {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "agency.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()
}

// NewApp builds the Fiber application from configuration: store, repositories,
// services, handlers and routes. The event publisher may be nil, in which case
// mutation events are not published. The store handle lives inside the
// repositories; nothing else holds it.
func NewApp(events services.EventPublisher) (*fiber.App, *services.AuthService, error) {
	loadConfig()

	var (
		userRepo        repositories.UserRepository
		serviceRepo     repositories.ContentRepository[models.DigitalService, *models.DigitalService]
		productRepo     repositories.ContentRepository[models.Product, *models.Product]
		teamRepo        repositories.ContentRepository[models.TeamMember, *models.TeamMember]
		projectRepo     repositories.ContentRepository[models.Project, *models.Project]
		testimonialRepo repositories.TestimonialRepository
	)

	switch driver := viper.GetString("DATABASE_DRIVER"); driver {
	case "memory":
		userRepo = repositories.NewMemoryUserRepository()
		serviceRepo = repositories.NewMemoryContentRepository[models.DigitalService, *models.DigitalService]()
		productRepo = repositories.NewMemoryContentRepository[models.Product, *models.Product]()
		teamRepo = repositories.NewMemoryContentRepository[models.TeamMember, *models.TeamMember]()
		projectRepo = repositories.NewMemoryContentRepository[models.Project, *models.Project]()
		testimonialRepo = repositories.NewMemoryTestimonialRepository()

	case "sqlite", "postgres":
		dsn := viper.GetString("DATABASE_DSN")
		var dialector gorm.Dialector
		if driver == "postgres" {
			dialector = postgres.Open(dsn)
		} else {
			dialector = sqlite.Open(dsn)
		}

		db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		err = db.AutoMigrate(
			&models.User{},
			&models.DigitalService{},
			&models.Product{},
			&models.TeamMember{},
			&models.Project{},
			&models.Testimonial{},
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}

		userRepo = repositories.NewGORMUserRepository(db)
		serviceRepo = repositories.NewGORMContentRepository[models.DigitalService, *models.DigitalService](db)
		productRepo = repositories.NewGORMContentRepository[models.Product, *models.Product](db)
		teamRepo = repositories.NewGORMContentRepository[models.TeamMember, *models.TeamMember](db)
		projectRepo = repositories.NewGORMContentRepository[models.Project, *models.Project](db)
		testimonialRepo = repositories.NewGORMTestimonialRepository(db)

	default:
		return nil, nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", driver)
	}

	// --- Initialize Services ---
	authService, err := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"), events)
	if err != nil {
		return nil, nil, err
	}
	userService := services.NewUserService(userRepo, events)
	serviceService := services.NewContentService[models.DigitalService, *models.DigitalService]("digital-service", serviceRepo, events)
	productService := services.NewContentService[models.Product, *models.Product]("product", productRepo, events)
	teamService := services.NewContentService[models.TeamMember, *models.TeamMember]("team-member", teamRepo, events)
	projectService := services.NewContentService[models.Project, *models.Project]("project", projectRepo, events)
	testimonialService := services.NewTestimonialService(testimonialRepo, events)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, authService)
	serviceHandler := handlers.NewContentHandler("digital-services", serviceService)
	productHandler := handlers.NewContentHandler("products", productService)
	teamHandler := handlers.NewContentHandler("team-members", teamService)
	projectHandler := handlers.NewContentHandler("projects", projectService)
	testimonialHandler := handlers.NewTestimonialHandler(testimonialService)

	// --- Initialize Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	// Public authentication routes
	authHandler.RegisterRoutes(apiV1)

	// Gate middlewares, attached per route by each handler
	authRequired := middleware.AuthRequired(authService)
	adminRequired := middleware.AdminRequired(authService)

	userHandler.RegisterRoutes(apiV1, authRequired, adminRequired)
	serviceHandler.RegisterRoutes(apiV1, authRequired, adminRequired)
	productHandler.RegisterRoutes(apiV1, authRequired, adminRequired)
	teamHandler.RegisterRoutes(apiV1, authRequired, adminRequired)
	projectHandler.RegisterRoutes(apiV1, authRequired, adminRequired)
	testimonialHandler.RegisterRoutes(apiV1, authRequired, adminRequired)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Agency API")
	})

	return app, authService, nil
}

func main() {
	loadConfig()

	// --- Initialize RabbitMQ Client (optional) ---
	var events services.EventPublisher
	var mqClient *rabbitmq.Client
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		events = mqClient
	} else {
		log.Println("RABBITMQ_URL not set, event publishing disabled")
	}

	app, _, err := NewApp(events)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	// --- Start RabbitMQ Consumer ---
	// The consumer drains the event queue as an audit log of mutations.
	if mqClient != nil {
		log.Println("Starting RabbitMQ consumer for agency events...")
		messageHandler := func(msg amqp.Delivery) error {
			log.Printf("Received event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
			return nil
		}
		if consumerErr := mqClient.ConsumeEvents(messageHandler); consumerErr != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
		}
	}

	// --- Start HTTP Server ---
	appPort := viper.GetString("APP_PORT")
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
