// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/fittrack/fittrack/internal/config"
	"github.com/fittrack/fittrack/internal/handler"
	"github.com/fittrack/fittrack/internal/middleware"
)

// RegisterRoutes registers routes that require no identity. Currently
// this is only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the login/signup/validate endpoints under
// /api/auth. These run without the Identity middleware since the caller
// has no identity yet.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/api/auth")
	g.POST("/signup", a.Signup)
	g.POST("/login", a.Login)
	g.GET("/validate", a.Validate)
}

// APIHandlers bundles every handler mounted under the identified /api
// tree so RegisterAPI keeps a manageable signature.
type APIHandlers struct {
	Records    *handler.RecordHandler
	Uploads    *handler.UploadHandler
	Challenges *handler.ChallengeHandler
	Shares     *handler.ShareHandler
	Routines   *handler.RoutineHandler
}

// RegisterAPI registers all identified endpoints. Every route runs the
// Identity middleware; GETs additionally go through the Redis response
// cache, and the whole tree is rate limited when Redis is available.
func RegisterAPI(e *echo.Echo, cfg config.Config, rdb *redis.Client, h APIHandlers) {
	api := e.Group("/api")
	api.Use(middleware.Identity(cfg.DevDefaultUser))
	api.Use(middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb))

	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)

	records := api.Group("/exercise-records")
	records.POST("", h.Records.Save)
	records.GET("", h.Records.List, cache)
	records.GET("/range", h.Records.ListRange, cache)
	records.GET("/date/:date", h.Records.GetByDate, cache)
	records.POST("/upload", h.Uploads.Upload)
	records.POST("/upload-multiple", h.Uploads.UploadMultiple)
	records.GET("/images/:filename", h.Uploads.Serve)

	challenges := api.Group("/challenges")
	challenges.POST("", h.Challenges.Create)
	challenges.GET("", h.Challenges.List, cache)
	challenges.GET("/:id", h.Challenges.Detail, cache)
	challenges.PUT("/:id/targets", h.Challenges.UpdateTargets)

	shares := api.Group("/challenge-shares")
	shares.GET("/users/search", h.Shares.SearchUsers, cache)
	shares.POST("", h.Shares.Create)
	shares.GET("/received", h.Shares.Received, cache)
	shares.GET("/sent", h.Shares.Sent, cache)
	shares.GET("/accepted", h.Shares.Accepted, cache)
	shares.PUT("/:id/status", h.Shares.SetStatus)
	shares.GET("/accepted/:shareId/detail", h.Shares.SharedDetail, cache)

	routines := api.Group("/routines")
	routines.GET("", h.Routines.List)
	routines.POST("", h.Routines.Save)
	routines.GET("/checks/:date", h.Routines.ChecksByDate)
	routines.POST("/checks", h.Routines.SaveCheck)
	routines.GET("/:routineType", h.Routines.GetByType)
}
