package http

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCustomErrorHandler_EnvelopeByRoute(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: customErrorHandler(zap.NewNop())})
	tooLarge := func(c *fiber.Ctx) error { return fiber.ErrRequestEntityTooLarge }
	app.Post(submitDataPath, tooLarge)
	app.Patch(submitDataPath+"/:id", tooLarge)
	app.Patch(submitDataPath+"/:id/status", tooLarge)
	app.Get(submitDataPath+"/:id", tooLarge)

	tests := []struct {
		name   string
		method string
		path   string
		want   map[string]interface{}
	}{
		{"post", fiber.MethodPost, "/submitData/", map[string]interface{}{
			"status": float64(413), "message": "Request Entity Too Large", "id": nil,
		}},
		{"patch", fiber.MethodPatch, "/submitData/1/", map[string]interface{}{
			"state": float64(0), "message": "Request Entity Too Large",
		}},
		{"patch status", fiber.MethodPatch, "/submitData/1/status/", map[string]interface{}{
			"state": float64(0), "message": "Request Entity Too Large",
		}},
		{"get", fiber.MethodGet, "/submitData/1/", map[string]interface{}{
			"status": float64(413), "message": "Request Entity Too Large",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.want, body)
		})
	}
}

func TestCustomErrorHandler_UnknownErrorIsInternal(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: customErrorHandler(zap.NewNop())})
	app.Get("/boom", func(c *fiber.Ctx) error { return assert.AnError })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/boom", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
