package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hall-booking-service/internal/api/http/handlers"
	"github.com/spec-kit/hall-booking-service/internal/auth"
	"github.com/spec-kit/hall-booking-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	HallOwner      *handlers.HallOwnerHandler
	AdminUsers     *handlers.AdminUsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Users.SignUp)
	authGroup.Post("/login", cfg.Users.Login)

	// pricing relies on per-hall ownership checks, not a role gate
	hallOwner := app.Group("/hallowner", cfg.AuthMiddleware.Handle)
	hallOwner.Post("/pricing", cfg.HallOwner.SetPricing)
	hallOwner.Post("/halls", cfg.HallOwner.CreateHall)
	hallOwner.Get("/halls", cfg.HallOwner.ListHalls)

	app.Get("/bookings", cfg.AuthMiddleware.Handle, cfg.HallOwner.ListMyBookings)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Patch("/users/:id", cfg.AdminUsers.UpdateUser)
	admin.Delete("/users/:id", cfg.AdminUsers.DeleteUser)
}
