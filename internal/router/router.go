// Package router defines how HTTP routes are registered for the staff
// API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/vilkasoft/carehome-backend/internal/config"
	"github.com/vilkasoft/carehome-backend/internal/handler"
	"github.com/vilkasoft/carehome-backend/internal/middleware"
)

// Handlers bundles the handler groups the router wires up.
type Handlers struct {
	Auth     *handler.AuthHandler
	Room     *handler.RoomHandler
	Bed      *handler.BedHandler
	Contract *handler.ContractHandler
}

// RegisterRoutes registers every route on the provided Echo instance.
// Unauthenticated routes are the health check and the staff login;
// everything else lives under /v1 behind the JWT middleware.  The
// occupancy reporting routes additionally get the Redis response
// cache, and the whole API is rate limited per client IP and route.
func RegisterRoutes(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)
	e.POST("/v1/auth/login", h.Auth.Login)

	v1 := e.Group("/v1")
	v1.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	v1.Use(middleware.JWTAuth(cfg.JWTSecret))

	// rooms
	v1.POST("/rooms", h.Room.CreateRoom)
	v1.GET("/rooms", h.Room.ListRooms)
	v1.PATCH("/rooms/:id", h.Room.UpdateRoom)
	v1.DELETE("/rooms/:id", h.Room.DeleteRoom)
	v1.POST("/rooms/seed", h.Room.SeedRooms)

	// occupancy reporting (cached)
	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)
	v1.GET("/rooms/occupancy", h.Room.RoomsWithOccupancy, cache)
	v1.GET("/occupancy/stats", h.Room.OccupancyStats, cache)

	// beds and the reservation state machine
	v1.GET("/beds", h.Bed.ListBeds)
	v1.GET("/beds/available", h.Bed.AvailableBeds)
	v1.POST("/rooms/:number/beds/:bed/reserve", h.Bed.Reserve)
	v1.POST("/rooms/:number/beds/:bed/cancel", h.Bed.CancelReservation)
	v1.POST("/rooms/:number/beds/:bed/book", h.Bed.Book)
	v1.POST("/rooms/:number/beds/:bed/release", h.Bed.Release)

	// contracts and the activation workflow
	v1.POST("/contracts", h.Contract.CreateDraft)
	v1.GET("/contracts", h.Contract.List)
	v1.GET("/contracts/:id", h.Contract.Get)
	v1.POST("/contracts/:id/activate", h.Contract.Activate)
	v1.POST("/contracts/:id/cancel", h.Contract.Cancel)
	v1.POST("/contracts/:id/terminate", h.Contract.Terminate)

	// residents
	v1.GET("/residents/:id", h.Contract.GetResident)
}
