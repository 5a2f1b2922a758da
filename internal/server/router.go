// Package server assembles the HTTP router from explicitly constructed dependencies.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aura-events/venues/internal/locations"
	"github.com/aura-events/venues/internal/middleware"
	"github.com/aura-events/venues/internal/models"
	"github.com/aura-events/venues/internal/organizers"
	"github.com/aura-events/venues/internal/validation"
	"github.com/aura-events/venues/pkg/response"
)

// Deps are the collaborators the routes are built from.
type Deps struct {
	Logger      *zap.Logger
	Tokens      middleware.TokenValidator
	Organizers  *organizers.Service
	Locations   *locations.Service
	CORSOrigins string
	// AuthLimiter throttles register and login. Nil disables rate limiting.
	AuthLimiter middleware.Limiter
	// Ping reports store health for /health. Nil always reports ok.
	Ping func(ctx context.Context) error
}

// NewRouter registers every route on a new gin engine.
func NewRouter(d Deps) *gin.Engine {
	validation.Register()

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(d.CORSOrigins))
	router.Use(middleware.Logger(d.Logger))
	router.Use(middleware.Errors(d.Logger))

	router.GET("/health", func(c *gin.Context) {
		if d.Ping != nil {
			if err := d.Ping(c.Request.Context()); err != nil {
				d.Logger.Warn("health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		response.OK(c, gin.H{"status": "ok"})
	})

	authed := []gin.HandlerFunc{
		middleware.JWT(d.Tokens),
		middleware.RequirePrincipalType(models.PrincipalOrganizer),
	}
	throttled := []gin.HandlerFunc{}
	if d.AuthLimiter != nil {
		throttled = append(throttled, middleware.RateLimit(d.AuthLimiter, d.Logger))
	}

	orgHandler := organizers.NewHandler(d.Organizers)
	org := router.Group("/organizer")
	{
		org.POST("/register", append(throttled, orgHandler.Register)...)
		org.POST("/login", append(throttled, orgHandler.Login)...)
		org.PUT("/info/update", append(authed, orgHandler.UpdateInfo)...)
		org.GET("/info", append(authed, orgHandler.Info)...)
		org.GET("/list", orgHandler.List)
		org.GET("/list/:organizer_id", orgHandler.GetByID)
	}

	locHandler := locations.NewHandler(d.Locations)
	loc := router.Group("/location")
	{
		loc.POST("/new", append(authed, locHandler.Create)...)
		loc.PUT("/update/:location_id", append(authed, locHandler.Update)...)
		loc.DELETE("/delete/:location_id", append(authed, locHandler.Delete)...)
		loc.GET("/list", locHandler.List)
		loc.GET("/info/:location_id", locHandler.GetByID)
		loc.GET("/list/:owner_id", locHandler.ListByOwner)
	}

	return router
}
