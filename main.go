package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NomadCrew/nomad-crew-itinerary/config"
	"github.com/NomadCrew/nomad-crew-itinerary/db"
	"github.com/NomadCrew/nomad-crew-itinerary/docs"
	"github.com/NomadCrew/nomad-crew-itinerary/handlers"
	"github.com/NomadCrew/nomad-crew-itinerary/internal/imagesearch"
	"github.com/NomadCrew/nomad-crew-itinerary/internal/llm"
	"github.com/NomadCrew/nomad-crew-itinerary/internal/planner"
	"github.com/NomadCrew/nomad-crew-itinerary/logger"
	"github.com/NomadCrew/nomad-crew-itinerary/router"
	"github.com/NomadCrew/nomad-crew-itinerary/services"
	pgstore "github.com/NomadCrew/nomad-crew-itinerary/store/postgres"
	redisstore "github.com/NomadCrew/nomad-crew-itinerary/store/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// @title Itinerary Generation API
// @version 1.0
// @description Generates day-by-day travel itineraries with a language model and decorates every activity with provider photos.
// @BasePath /
func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	logger.InitLogger()
	log := logger.GetLogger()
	defer func() { _ = logger.Close() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	docs.SwaggerInfo.Version = cfg.Server.Version

	ctx := context.Background()

	pool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient := redis.NewClient(config.ConfigureRedisOptions(&cfg.Redis))
	defer redisClient.Close()
	if err := config.WaitForRedis(ctx, redisClient, 3, 2*time.Second); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}
	defer llmClient.Close()

	engine, err := imagesearch.NewEngineFromConfig(cfg.Photos, redisClient)
	if err != nil {
		log.Fatalf("Failed to configure photo enrichment: %v", err)
	}

	generator := planner.NewGenerator(llmClient, engine, time.Duration(cfg.LLM.TimeoutSeconds)*time.Second)

	workerPool := services.NewWorkerPool(cfg.WorkerPool)
	workerPool.Start()

	itineraryService := services.NewItineraryService(generator, pgstore.NewItineraryStore(pool))
	taskStore := redisstore.NewTaskStore(redisClient, time.Duration(cfg.Tasks.ResultTTLSeconds)*time.Second)
	taskService := services.NewTaskService(taskStore, workerPool, itineraryService)
	healthService := services.NewHealthService(pool, redisClient, workerPool, cfg.Server.Version)

	r := router.SetupRouter(router.Dependencies{
		Config:           cfg,
		RateLimiter:      services.NewRateLimitService(redisClient),
		ItineraryHandler: handlers.NewItineraryHandler(itineraryService),
		TaskHandler:      handlers.NewTaskHandler(taskService, &cfg.Server),
		PhotoHandler:     handlers.NewPhotoHandler(engine),
		HealthHandler:    handlers.NewHealthHandler(healthService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("Starting server",
			"port", cfg.Server.Port,
			"environment", cfg.Server.Environment,
			"llmProvider", llmClient.Provider(),
			"llmModel", llmClient.Model())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Infow("Shutting down", "signal", sig.String())

	shutdownTimeout := time.Duration(cfg.WorkerPool.ShutdownTimeoutSeconds) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown failed", "error", err)
	}
	if err := workerPool.Shutdown(shutdownCtx); err != nil {
		log.Warnw("Worker pool did not drain before timeout, remaining jobs were cancelled", "error", err)
	}
	log.Info("Shutdown complete")
}
