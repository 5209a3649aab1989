package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"bikerent/internal/handler"
	"bikerent/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	BikeHandler *handler.BikeHandler
	UserHandler *handler.UserHandler
	RentHandler *handler.RentHandler
	RedisClient *redis.Client
	NewRelicApp *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Bike routes.
		bikes := v1.Group("/bikes")
		{
			bikes.POST("", deps.BikeHandler.Register)
			bikes.GET("", deps.BikeHandler.GetAll)
			bikes.GET("/nearby", deps.BikeHandler.Nearby)
			bikes.GET("/:id", deps.BikeHandler.Get)
			bikes.DELETE("/:id", deps.BikeHandler.Remove)
			bikes.POST("/:id/location", deps.BikeHandler.Move)
		}

		// User routes.
		users := v1.Group("/users")
		{
			users.POST("/register", deps.UserHandler.Register)
			users.GET("", deps.UserHandler.GetAll)
			users.DELETE("/:email", deps.UserHandler.Remove)
		}

		// Authentication.
		v1.POST("/auth/login", deps.UserHandler.Login)

		// Rent routes.
		rents := v1.Group("/rents")
		{
			rents.POST("", deps.RentHandler.Create)
			rents.POST("/return", deps.RentHandler.Return)
			rents.GET("", deps.RentHandler.GetAll)
		}
	}

	return router
}
