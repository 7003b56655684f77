package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"hiper-bot/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(jwtManager *auth.JWTManager) *fiber.App {
	app := fiber.New()
	app.Get("/protected", SessionMiddleware(jwtManager, zap.NewNop()), func(c *fiber.Ctx) error {
		return c.SendString(SessionID(c))
	})
	return app
}

func TestSessionMiddleware(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.GenerateToken("session-123")
	require.NoError(t, err)

	other, err := auth.NewJWTManager("other-secret", time.Hour).GenerateToken("session-123")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "Valid bearer token", header: "Bearer " + token, wantStatus: fiber.StatusOK, wantBody: "session-123"},
		{name: "Token without prefix", header: token, wantStatus: fiber.StatusOK, wantBody: "session-123"},
		{name: "Missing header", header: "", wantStatus: fiber.StatusUnauthorized},
		{name: "Garbage token", header: "Bearer nope", wantStatus: fiber.StatusUnauthorized},
		{name: "Wrong secret", header: "Bearer " + other, wantStatus: fiber.StatusUnauthorized},
	}

	app := newTestApp(jwtManager)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantBody != "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, tt.wantBody, string(body))
			}
		})
	}
}
