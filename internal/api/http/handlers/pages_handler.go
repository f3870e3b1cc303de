package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/membership-service/internal/auth"
)

// PagesHandler serves the minimal HTML surfaces the access guard redirects
// between. The real admin UI is an external client; these exist so browser
// navigation has somewhere to land.
type PagesHandler struct {
	serviceName string
}

// NewPagesHandler returns a new handler instance.
func NewPagesHandler(serviceName string) *PagesHandler {
	return &PagesHandler{serviceName: serviceName}
}

// Home handles GET /.
func (h *PagesHandler) Home(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	c.Type("html", "utf-8")
	return c.SendString(`<!doctype html>
<html><head><title>` + h.serviceName + `</title></head>
<body><h1>` + h.serviceName + `</h1><p>Signed in as ` + principal.Email + `.</p></body></html>`)
}

// Login handles GET /login.
func (h *PagesHandler) Login(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.SendString(`<!doctype html>
<html><head><title>Login – ` + h.serviceName + `</title></head>
<body><h1>Login</h1>
<form method="post" action="/auth/login">
<input name="email" type="email" placeholder="email">
<input name="password" type="password" placeholder="password">
<button type="submit">Sign in</button>
</form></body></html>`)
}
