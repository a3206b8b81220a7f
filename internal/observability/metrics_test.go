package observability

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/resources", "GET", 200, 2*time.Millisecond)
	m.RecordRequest("/resources", "GET", 200, 4*time.Millisecond)
	m.RecordError("/resources", "POST", "VALIDATION_FAILED")
	m.RecordEvent("assignment.claimed")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/resources|GET|200"])
	assert.Equal(t, int64(1), snap.Errors["/resources|POST|VALIDATION_FAILED"])
	assert.Equal(t, int64(1), snap.Events["assignment.claimed"])
	assert.Equal(t, int64(2), snap.TotalRequests)
	assert.InDelta(t, 3.0, snap.AvgLatencyMS, 0.001)
	assert.Equal(t, []string{"/resources|GET|200"}, snap.Keys())
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	m.RecordEvent("x")
	assert.Empty(t, m.Snapshot().Requests)
}

func TestRequestLoggerRecordsRoutePattern(t *testing.T) {
	metrics := NewMetrics()
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), metrics))
	app.Get("/resources/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/resources/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, int64(1), metrics.Snapshot().Requests["/resources/:id|GET|204"])
}
