package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/membership-service/internal/auth"
	"github.com/spec-kit/membership-service/internal/domain"
	apperrors "github.com/spec-kit/membership-service/pkg/util"
)

func newGuardApp(t *testing.T) (*fiber.App, *auth.TokenManager) {
	t.Helper()

	tm := auth.NewTokenManager("test-secret", 1)
	guard := auth.NewSessionGuard(tm)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": de.Code, "message": de.Message}})
		},
	})

	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/", guard.RequireSession, ok)
	app.Get("/login", guard.RedirectAuthenticated, ok)
	app.Get("/forms/all", guard.RequireSession, ok)

	orgs := app.Group("/organizations/:org", guard.RequireSession, auth.RequireOrgAccess())
	orgs.Get("/members", ok)

	return app, tm
}

func sessionCookieFor(t *testing.T, tm *auth.TokenManager, role domain.Role, org string) *http.Cookie {
	t.Helper()

	user := &domain.UserAuth{ID: "u1", Email: "x@medicare.com", Role: role}
	if org != "" {
		user.Organization = &org
	}
	token, _, err := tm.Generate(user)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.SessionCookieName, Value: token}
}

func TestRequireSessionDataRequestUnauthorized(t *testing.T) {
	app, _ := newGuardApp(t)

	req := httptest.NewRequest(http.MethodGet, "/forms/all", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireSessionPageRequestRedirectsToLogin(t *testing.T) {
	app, _ := newGuardApp(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestRequireSessionRejectsTamperedCookie(t *testing.T) {
	app, tm := newGuardApp(t)

	cookie := sessionCookieFor(t, tm, domain.RoleSuperAdmin, "")
	cookie.Value = cookie.Value + "x"

	req := httptest.NewRequest(http.MethodGet, "/forms/all", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginRedirectsAuthenticatedUsers(t *testing.T) {
	app, tm := newGuardApp(t)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(sessionCookieFor(t, tm, domain.RoleSuperAdmin, ""))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestLoginStaysOpenWithoutSession(t *testing.T) {
	app, _ := newGuardApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOrgScopeEnforcement(t *testing.T) {
	app, tm := newGuardApp(t)

	cases := []struct {
		name   string
		role   domain.Role
		org    string
		path   string
		status int
	}{
		{"org admin own org", domain.RoleOrgAdmin, "Cardiology", "/organizations/Cardiology/members", http.StatusOK},
		{"org admin other org", domain.RoleOrgAdmin, "Cardiology", "/organizations/Dermatology/members", http.StatusForbidden},
		{"super admin any org", domain.RoleSuperAdmin, "", "/organizations/Dermatology/members", http.StatusOK},
		{"org admin encoded org", domain.RoleOrgAdmin, "Emergency Medicine", "/organizations/Emergency%20Medicine/members", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			req.AddCookie(sessionCookieFor(t, tm, tc.role, tc.org))
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestCanAccessOrganization(t *testing.T) {
	org := "Cardiology"
	orgAdmin := &auth.Principal{Role: domain.RoleOrgAdmin, Organization: &org}
	assert.True(t, orgAdmin.CanAccessOrganization("Cardiology"))
	assert.False(t, orgAdmin.CanAccessOrganization("Dermatology"))

	super := &auth.Principal{Role: domain.RoleSuperAdmin}
	assert.True(t, super.CanAccessOrganization("Dermatology"))
}
