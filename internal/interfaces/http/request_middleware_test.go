package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-pos-api/internal/application/activity"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/activitylog"
	apphttp "github.com/jhoicas/cafe-pos-api/internal/interfaces/http"
	"github.com/jhoicas/cafe-pos-api/pkg/logger"
)

func TestRequestContext_PropagaRequestIDAlLogDeActividad(t *testing.T) {
	var httpBuf, auditBuf bytes.Buffer
	sink := activitylog.NewSink(logger.NewWithWriter(&auditBuf, "info"))

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(apphttp.RequestLogger(logger.NewWithWriter(&httpBuf, "info")))
	app.Get("/ping", apphttp.RequestContext(), func(c *fiber.Ctx) error {
		return sink.Log(c.UserContext(), activity.Entry{Action: "PING", EntityType: "test"})
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-42")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var audit map[string]any
	require.NoError(t, json.Unmarshal(auditBuf.Bytes(), &audit))
	assert.Equal(t, "req-42", audit["request_id"], "el evento de auditoría lleva el request id")

	var access map[string]any
	require.NoError(t, json.Unmarshal(httpBuf.Bytes(), &access))
	assert.Equal(t, "GET", access["method"])
	assert.Equal(t, "/ping", access["path"])
	assert.EqualValues(t, 200, access["status"])
	assert.Equal(t, "req-42", access["request_id"])
}

func TestRequestContext_SinRequestID(t *testing.T) {
	app := fiber.New()
	app.Get("/ping", apphttp.RequestContext(), func(c *fiber.Ctx) error {
		_, ok := c.UserContext().Value(activitylog.RequestIDKey).(string)
		return c.JSON(fiber.Map{"has_id": ok})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body["has_id"])
}
