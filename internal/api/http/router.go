package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lms-service/internal/api/http/handlers"
	"github.com/spec-kit/lms-service/internal/auth"
	"github.com/spec-kit/lms-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Courses        *handlers.CoursesHandler
	Enrollments    *handlers.EnrollmentsHandler
	Progress       *handlers.ProgressHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Mutating routes stack the auth
// middleware and a role gate; authenticated reads stack the auth middleware
// only. Ownership checks run inside the services.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)

	authenticated := cfg.AuthMiddleware.Handle

	courses := app.Group("/courses", authenticated)
	courses.Get("/", cfg.Courses.List)
	courses.Get("/:id", cfg.Courses.Get)
	courses.Post("/", auth.RequireRole(domain.RoleInstructor, domain.RoleAdmin), cfg.Courses.Create)
	courses.Patch("/:id", auth.RequireRole(domain.RoleInstructor, domain.RoleAdmin), cfg.Courses.Update)
	courses.Delete("/:id", auth.RequireRole(domain.RoleInstructor, domain.RoleAdmin), cfg.Courses.Delete)

	enrollments := app.Group("/enrollments", authenticated)
	enrollments.Post("/:course_id", auth.RequireRole(domain.RoleStudent), cfg.Enrollments.Enroll)
	enrollments.Get("/user/:user_id", cfg.Enrollments.ListByUser)

	progress := app.Group("/progress", authenticated)
	progress.Get("/user", cfg.Progress.ListMine)
	progress.Post("/:course_id", auth.RequireRole(domain.RoleStudent), cfg.Progress.Update)
	progress.Get("/:course_id", cfg.Progress.Get)

	users := app.Group("/users", authenticated)
	users.Get("/profile", cfg.Users.Profile)
	users.Patch("/profile", cfg.Users.UpdateProfile)
	users.Get("/", auth.RequireRole(domain.RoleAdmin), cfg.Users.List)
	users.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Users.Create)
	users.Get("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Users.Get)
	users.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Users.Delete)
}
