package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"resumatch/api/internal/config"
	"resumatch/api/internal/handlers"
	"resumatch/api/internal/logger"
	"resumatch/api/internal/repositories"
	"resumatch/api/internal/services"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	log.Info("database initialized")

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	matchRepo := repositories.NewMatchRepository(db)
	feedbackRepo := repositories.NewFeedbackRepository(db)
	docRepo := repositories.NewDocumentRepository(db)

	// Services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatal("failed to create upload directory", zap.Error(err))
	}

	documentService := services.NewDocumentService()
	authorizer := services.NewAuthorizer(userRepo)

	ctx := context.Background()

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini, log)
	if err != nil {
		log.Fatal("failed to initialize gemini client", zap.Error(err))
	}
	log.Info("gemini client initialized", zap.String("model", cfg.Gemini.Model))

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatal("failed to initialize qdrant client", zap.Error(err))
	}
	if err := qdrantService.InitCollection(ctx); err != nil {
		log.Fatal("failed to initialize qdrant collection", zap.Error(err))
	}
	log.Info("qdrant initialized", zap.String("collection", cfg.Qdrant.Collection))

	extractorService := services.NewExtractorService(
		geminiService,
		authorizer,
		resumeRepo,
		jobRepo,
		log,
	)
	graderService := services.NewGraderService(
		geminiService,
		authorizer,
		jobRepo,
		resumeRepo,
		matchRepo,
		cfg.Grading,
		log,
	)
	searchService := services.NewSearchService(geminiService, qdrantService, authorizer)

	indexerService := services.NewIndexer(
		resumeRepo,
		geminiService,
		qdrantService,
		cfg.Worker.Concurrency,
		cfg.Worker.PollInterval,
		log,
	)
	indexerService.Start(ctx)

	// Handlers
	userHandler := handlers.NewUserHandler(userRepo)
	extractHandler := handlers.NewExtractHandler(
		extractorService,
		documentService,
		storageService,
		docRepo,
		indexerService,
	)
	gradeHandler := handlers.NewGradeHandler(graderService)
	matchHandler := handlers.NewMatchHandler(matchRepo, jobRepo, resumeRepo)
	searchHandler := handlers.NewSearchHandler(searchService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackRepo, matchRepo)

	app := fiber.New(fiber.Config{
		AppName:      "ResuMatch API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: fiberErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Actor-ID",
	}))

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/users", userHandler.HandleCreateUser)
	api.Post("/resumes/extract", extractHandler.HandleExtractResume)
	api.Post("/jobs/extract", extractHandler.HandleExtractJob)
	api.Post("/matches", matchHandler.HandleCreateMatch)
	api.Get("/jobs/:id/matches", matchHandler.HandleListJobMatches)
	api.Post("/jobs/:id/grade", gradeHandler.HandleGradeJob)
	api.Get("/jobs/:id/grade/stream", gradeHandler.HandleGradeJobStream)
	api.Post("/candidates/search", searchHandler.HandleSearchCandidates)
	api.Post("/feedback", feedbackHandler.HandleCreateFeedback)
	api.Get("/matches/:id/feedback", feedbackHandler.HandleListMatchFeedback)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down server")
		indexerService.Stop()
		if err := app.Shutdown(); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

func fiberErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
