package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/codebuddy1234/Kisan-Sahay1/internal/config"
	"github.com/codebuddy1234/Kisan-Sahay1/internal/handlers"
	"github.com/codebuddy1234/Kisan-Sahay1/internal/repositories"
	"github.com/codebuddy1234/Kisan-Sahay1/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize databases
	pg, err := config.InitPostgres(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Postgres: %v", err)
	}

	mongoDB, err := config.InitMongo(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize MongoDB: %v", err)
	}

	// Initialize repositories
	catalogRepo := repositories.NewCatalogRepository(mongoDB)
	profileRepo := repositories.NewProfileRepository(pg)
	indexJobRepo := repositories.NewIndexJobRepository(pg)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	docParser := services.NewDocumentParserService()
	evaluator := services.NewEvaluatorService()
	matcher := services.NewMatcherService(catalogRepo, evaluator)
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Worker.RetryDelay)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant
	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Initialize extraction and chat
	extractor := services.NewExtractorService(
		catalogRepo,
		indexJobRepo,
		geminiService,
		cfg.Worker.RetryMaxAttempts,
		cfg.Gemini.Timeout,
	)
	chatService := services.NewChatService(
		catalogRepo,
		geminiService,
		qdrantService,
		cfg.Worker.RetryMaxAttempts,
		cfg.Gemini.Timeout,
	)

	// Initialize indexing worker
	indexer := services.NewIndexerService(indexJobRepo, geminiService, qdrantService)
	worker := services.NewWorker(indexJobRepo, indexer, cfg.Worker.Concurrency)

	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize handlers
	eligibilityHandler := handlers.NewEligibilityHandler(matcher)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo)
	profileHandler := handlers.NewProfileHandler(profileRepo)
	ingestHandler := handlers.NewIngestHandler(extractor, docParser, storageService, cfg.Storage.MaxFileSize)
	chatHandler := handlers.NewChatHandler(chatService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Kisan Sahay API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:3000",
		AllowMethods: "GET,POST,PATCH,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Eligibility matching
	app.Post("/eligible-Schemes", eligibilityHandler.HandleEligibleSchemes)
	app.Post("/eligible-insurance", eligibilityHandler.HandleEligibleInsurance)
	app.Post("/eligible-financial-support", eligibilityHandler.HandleEligibleFinance)

	// Catalog lookups
	app.Get("/single-scheme/:slug", catalogHandler.HandleSingleScheme)
	app.Get("/single-insurance/:id", catalogHandler.HandleSingleInsurance)
	app.Get("/single-finance/:slug", catalogHandler.HandleSingleFinance)
	app.Get("/schemes/:category", catalogHandler.HandleSchemesByCategory)

	// Profile submissions
	app.Post("/userSchemesData", profileHandler.HandleSchemeProfile)
	app.Post("/userInsuranceData", profileHandler.HandleInsuranceProfile)
	app.Post("/userFinancialData", profileHandler.HandleFinancialProfile)

	// Ingestion and chat
	app.Post("/add-scheme", ingestHandler.HandleAddScheme)
	app.Post("/scheme-chat", chatHandler.HandleSchemeChat)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}
