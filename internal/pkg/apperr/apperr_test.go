package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMapping(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, Validation("x").Status())
	assert.Equal(t, fiber.StatusUnauthorized, Auth("x").Status())
	assert.Equal(t, fiber.StatusForbidden, Forbidden("x").Status())
	assert.Equal(t, fiber.StatusNotFound, NotFound("x").Status())
	assert.Equal(t, fiber.StatusConflict, Conflict("x").Status())
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("record not found")
	err := &Error{Kind: KindNotFound, Message: "Image not found", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "Image not found: record not found", err.Error())
}

func newTestApp(handler fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/", handler)
	return app
}

func responseMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	return payload.Message
}

func TestErrorHandlerTypedError(t *testing.T) {
	app := newTestApp(func(c *fiber.Ctx) error {
		return Conflict("You already liked this image")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "You already liked this image", responseMessage(t, resp))
}

func TestErrorHandlerWrappedTypedError(t *testing.T) {
	app := newTestApp(func(c *fiber.Ctx) error {
		return fmt.Errorf("listing likers: %w", NotFound("Image not found"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Image not found", responseMessage(t, resp))
}

func TestErrorHandlerUnexpectedErrorIsOpaque(t *testing.T) {
	app := newTestApp(func(c *fiber.Ctx) error {
		return errors.New("dial tcp 127.0.0.1:3306: connection refused")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	// Internal detail must not leak to the client.
	assert.Equal(t, "Server error", responseMessage(t, resp))
}
