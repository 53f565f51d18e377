// @title Wellspring API
// @version 1.0
// @description Wellbeing self-assessment API: Likert quizzes, scored results and matched recommendations.
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"wellspring/internal/adapter"
	"wellspring/internal/cache"
	"wellspring/internal/config"
	"wellspring/internal/database"
	"wellspring/internal/domain"
	"wellspring/internal/handler"
	"wellspring/internal/logger"
	"wellspring/internal/middleware"
	"wellspring/internal/repository"
	"wellspring/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger logs every HTTP request with its outcome and duration
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	assessmentRepository := repository.NewAssessmentDatabaseAdapter(db)
	resultRepository := repository.NewResultDatabaseAdapter(db)
	recommendationRepository := repository.NewRecommendationDatabaseAdapter(db)
	userRepository := repository.NewUserDatabaseAdapter(db)
	journalRepository := repository.NewJournalDatabaseAdapter(db)

	// Redis is optional; without it reference reads hit the database directly.
	var cacheAdapter domain.Cache
	if redisClient, err := cache.NewRedisClient(cfg.Redis); err != nil {
		appLogger.Warn("Failed to connect to Redis, continuing without cache", zap.Error(err))
	} else {
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Successfully connected to Redis")
	}

	// Initialize services
	referenceCacheService := service.NewReferenceCacheService(cacheAdapter, assessmentRepository, recommendationRepository, cfg.Cache.ReferenceTTL)
	assessmentService := service.NewAssessmentService(assessmentRepository, resultRepository, referenceCacheService)
	authService, err := service.NewAuthService(userRepository, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	journalService := service.NewJournalService(journalRepository)

	// Initialize handlers
	assessmentHandler := handler.NewAssessmentHandler(assessmentService)
	authHandler := handler.NewAuthHandler(authService, cfg)
	journalHandler := handler.NewJournalHandler(journalService)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    1 * 1024 * 1024,
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	apiGroup := app.Group("/api")

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/logout", middleware.Protected(authService), authHandler.Logout)
	authGroup.Get("/me", middleware.Protected(authService), authHandler.Me)
	authGroup.Get("/google/login", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)

	// Assessment catalog and quiz routes; submissions work anonymously.
	apiGroup.Get("/assessments", assessmentHandler.GetAssessments)
	apiGroup.Get("/assessments/:type", assessmentHandler.GetAssessmentByType)
	apiGroup.Get("/questions/:type", assessmentHandler.GetQuestions)
	apiGroup.Post("/submit-quiz", middleware.OptionalAuth(authService), assessmentHandler.SubmitQuiz)
	apiGroup.Get("/result/:id", assessmentHandler.GetResult)

	// Per-user result routes (all protected)
	apiGroup.Get("/results/:userId", middleware.Protected(authService), assessmentHandler.GetUserResults)
	apiGroup.Get("/latest-results/:userId", middleware.Protected(authService), assessmentHandler.GetLatestResults)
	apiGroup.Get("/top-recommendations/:userId", middleware.Protected(authService), assessmentHandler.GetTopRecommendations)

	// Journal routes (all protected)
	journalGroup := apiGroup.Group("/journal", middleware.Protected(authService))
	journalGroup.Post("/", journalHandler.CreateEntry)
	journalGroup.Get("/", journalHandler.GetEntries)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
