package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/membership-service/internal/api/http/handlers"
	"github.com/spec-kit/membership-service/internal/auth"
	"github.com/spec-kit/membership-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Pages         *handlers.PagesHandler
	Auth          *handlers.AuthHandler
	Forms         *handlers.FormsHandler
	Members       *handlers.MembersHandler
	Notifications *handlers.NotificationsHandler
	Guard         *auth.SessionGuard
	Metrics       *observability.Metrics
}

// RegisterRoutes wires HTTP routes. Guard placement follows the decision
// table: /login bounces authenticated callers, everything past the auth
// bootstrap requires a session, and :org paths add the scope check.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	app.Get("/", cfg.Guard.RequireSession, cfg.Pages.Home)
	app.Get("/login", cfg.Guard.RedirectAuthenticated, cfg.Pages.Login)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", cfg.Auth.Me)

	forms := app.Group("/forms", cfg.Guard.RequireSession)
	forms.Get("/all", cfg.Forms.List)
	forms.Post("/approve", cfg.Forms.Approve)

	orgs := app.Group("/organizations/:org", cfg.Guard.RequireSession, auth.RequireOrgAccess())
	orgs.Get("/members", cfg.Members.List)

	notifications := app.Group("/notifications", cfg.Guard.RequireSession)
	notifications.Post("/email", cfg.Notifications.Send)
}
