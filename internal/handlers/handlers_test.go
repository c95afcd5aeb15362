package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/Yeong-ho/jeju-onul-api/internal/planner"
	"github.com/Yeong-ho/jeju-onul-api/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() *Handler {
	return New(nil, nil, planner.Deps{}, logger.NewNoop(), "0.1.0-test")
}

func TestVersion(t *testing.T) {
	h := newTestHandler()

	app := fiber.New()
	app.Get("/version", h.Version)

	req := httptest.NewRequest("GET", "/version", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "0.1.0-test", got)
}

func TestHealth(t *testing.T) {
	h := newTestHandler()

	app := fiber.New()
	app.Get("/health", h.Health)

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJejuOnul_InvalidBody(t *testing.T) {
	h := newTestHandler()

	app := fiber.New()
	app.Post("/v1/jeju_onul", h.JejuOnul)

	req := httptest.NewRequest("POST", "/v1/jeju_onul", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestJejuOnulAfter_NotImplemented(t *testing.T) {
	h := newTestHandler()

	app := fiber.New()
	app.Post("/v2/jeju_onul_after", h.JejuOnulAfter)

	req := httptest.NewRequest("POST", "/v2/jeju_onul_after", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotImplemented, resp.StatusCode)
}

func TestAutoPilot_NotImplemented(t *testing.T) {
	h := newTestHandler()

	app := fiber.New()
	app.Post("/v2/auto_pilot", h.AutoPilot)

	req := httptest.NewRequest("POST", "/v2/auto_pilot", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotImplemented, resp.StatusCode)
}
