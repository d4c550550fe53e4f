package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/samiarebeca/coleta-inteligente/config"
	"github.com/samiarebeca/coleta-inteligente/models"
	"github.com/samiarebeca/coleta-inteligente/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func signToken(t *testing.T, secret, role string, expiresIn time.Duration) string {
	t.Helper()
	claims := models.JwtClaims{
		UserID: "user-1",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func makeAuthenticatedApp() *fiber.App {
	app := fiber.New()
	app.Use(Authenticate)
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.Status(200).SendString(c.Locals("userRole").(string))
	})
	return app
}

func TestAuthenticateValidToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	app := makeAuthenticatedApp()

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", utils.RoleAdmin, time.Hour))

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	app := makeAuthenticatedApp()

	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	app := makeAuthenticatedApp()

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", signToken(t, "test-secret", utils.RoleAdmin, time.Hour))

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAuthenticateWrongSecret(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	app := makeAuthenticatedApp()

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", utils.RoleAdmin, time.Hour))

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	app := makeAuthenticatedApp()

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", utils.RoleAdmin, -time.Minute))

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func makeAppWithRole(role string, check fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userRole", role)
		return c.Next()
	})
	app.Use(check)
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.Status(200).SendString("ok")
	})
	return app
}

func TestCheckRoleAllowsListedRole(t *testing.T) {
	app := makeAppWithRole(utils.RoleDriver, CheckRole(utils.RoleDriver, utils.RoleAdmin))
	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestCheckRoleRejectsOtherRole(t *testing.T) {
	app := makeAppWithRole(utils.RoleSales, CheckRole(utils.RoleAdmin))
	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestCheckRoleMissingRole(t *testing.T) {
	app := fiber.New()
	app.Use(CheckRole(utils.RoleAdmin))
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.Status(200).SendString("ok")
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}
