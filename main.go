package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/streadway/amqp"

	"diacheck/internal/config"
	"diacheck/internal/handlers"
	"diacheck/internal/middleware"
	"diacheck/internal/repositories"
	"diacheck/internal/services"
	"diacheck/pkg/rabbitmq"
	"diacheck/pkg/sheets"
)

func main() {
	cfg := config.Load()

	// --- Backing spreadsheet ---
	sheetClient, err := sheets.NewClient(context.Background(), sheets.Config{
		SpreadsheetID:   cfg.SpreadsheetID,
		CredentialsFile: cfg.CredentialsFile,
	})
	if err != nil {
		log.Fatalf("Failed to initialize Sheets client: %v", err)
	}
	if err := sheetClient.EnsureHeader(repositories.UserHeaderRange, repositories.UserHeader); err != nil {
		log.Printf("Error initializing sheet header: %v", err)
	}

	// --- Optional RabbitMQ client for assessment events ---
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	}

	// --- Repositories ---
	userRepo := repositories.NewSheetUserRepository(sheetClient, cfg.StrictReads)

	// --- Services ---
	var modelClient *services.ModelClient
	if cfg.ModelServiceURL != "" {
		modelClient = services.NewModelClient(cfg.ModelServiceURL)
	}
	accountService := services.NewAccountService(userRepo)
	riskService := services.NewRiskService(modelClient, mqClient)

	// --- Sessions ---
	store := session.New(session.Config{
		CookieHTTPOnly: true,
		Expiration:     24 * time.Hour,
	})

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(accountService, store)
	userHandler := handlers.NewUserHandler(accountService, cfg.UploadDir)
	predictHandler := handlers.NewPredictHandler(riskService)

	// --- Fiber app ---
	app := fiber.New()

	app.Use(logger.New()) // Request logger
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Content-Type, Authorization, X-Requested-With, Accept",
		AllowCredentials: cfg.AllowOrigins != "*",
	}))

	// Static assets, including uploaded profile images under /uploads.
	app.Static("/", "./public")

	// Public routes
	authHandler.RegisterRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Protected routes
	api := app.Group("/api", middleware.LoginRequired(store))
	userHandler.RegisterRoutes(api)

	protected := app.Group("", middleware.LoginRequired(store))
	predictHandler.RegisterRoutes(protected)

	// --- Assessment event consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for assessments...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received assessment event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeAssessmentEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
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
