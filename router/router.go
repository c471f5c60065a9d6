package router

import (
	"time"

	"github.com/NomadCrew/nomad-crew-itinerary/config"
	"github.com/NomadCrew/nomad-crew-itinerary/handlers"
	"github.com/NomadCrew/nomad-crew-itinerary/middleware"
	"github.com/NomadCrew/nomad-crew-itinerary/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies holds everything the routes need.
type Dependencies struct {
	Config           *config.Config
	RateLimiter      services.RateLimiter
	ItineraryHandler *handlers.ItineraryHandler
	TaskHandler      *handlers.TaskHandler
	PhotoHandler     *handlers.PhotoHandler
	HealthHandler    *handlers.HealthHandler
}

// SetupRouter configures the gin engine with all routes.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if !deps.Config.IsProduction() {
		r.Use(gin.Logger())
	}

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config))

	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	rl := deps.Config.RateLimit
	generateLimit := middleware.GenerateRateLimiter(
		deps.RateLimiter,
		rl.GenerateRequests,
		time.Duration(rl.WindowSeconds)*time.Second,
	)

	v1 := r.Group("/v1")
	v1.Use(middleware.OwnerIDMiddleware())
	{
		itineraries := v1.Group("/itineraries")
		{
			itineraries.POST("", generateLimit, deps.ItineraryHandler.GenerateItineraryHandler)

			tasks := itineraries.Group("/tasks")
			{
				tasks.POST("", generateLimit, deps.TaskHandler.CreateTaskHandler)
				tasks.GET("/:taskId", deps.TaskHandler.GetTaskHandler)
				tasks.GET("/:taskId/ws", deps.TaskHandler.TaskStreamHandler)
			}

			history := itineraries.Group("/history")
			history.Use(middleware.RequireOwner())
			{
				history.GET("", deps.ItineraryHandler.ListHistoryHandler)
				history.GET("/:id", deps.ItineraryHandler.GetHistoryHandler)
				history.DELETE("/:id", deps.ItineraryHandler.DeleteHistoryHandler)
			}
		}

		photos := v1.Group("/photos")
		{
			photos.GET("/place", deps.PhotoHandler.PlacePhotosHandler)
			photos.GET("/destination", deps.PhotoHandler.DestinationCoverHandler)
		}
	}

	return r
}
