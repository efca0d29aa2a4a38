package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/complainthub/complaint-service/internal/api/http/handlers"
	"github.com/complainthub/complaint-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Complaints     *handlers.ComplaintsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Complaint submission and admin signup or
// login are public; everything else requires an authenticated admin.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	adminGroup := app.Group("/admin")
	adminGroup.Post("/signup", cfg.Admin.Signup)
	adminGroup.Post("/login", cfg.Admin.Login)
	adminGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Admin.Me)

	complaints := app.Group("/complaints")
	complaints.Post("", cfg.Complaints.CreateComplaint)

	managed := complaints.Group("", cfg.AuthMiddleware.Handle)
	managed.Get("", cfg.Complaints.ListComplaints)
	managed.Get("/analytics", cfg.Complaints.Analytics)
	managed.Get("/:id", cfg.Complaints.GetComplaint)
	managed.Put("/:id", cfg.Complaints.UpdateComplaint)
	managed.Delete("/:id", cfg.Complaints.DeleteComplaint)
	managed.Post("/:id/notes", cfg.Complaints.AddNote)
}
