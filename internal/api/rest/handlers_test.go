package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDB struct{ err error }

func (f fakeDB) HealthCheck() error { return f.err }

type fakeCache struct{ err error }

func (f fakeCache) HealthCheck(ctx context.Context) error { return f.err }

func healthResponse(t *testing.T, h *Handler) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.HealthCheck(rec, req)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec, body
}

func TestHealthCheck_AllHealthy(t *testing.T) {
	h := NewHandler(fakeDB{}, fakeCache{}, nil)

	rec, body := healthResponse(t, h)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestHealthCheck_RedisDown(t *testing.T) {
	h := NewHandler(fakeDB{}, fakeCache{err: errors.New("connection refused")}, nil)

	rec, body := healthResponse(t, h)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", body["status"])

	components := body["components"].(map[string]interface{})
	assert.Equal(t, "unhealthy", components["redis"])
	assert.Equal(t, "healthy", components["database"])
}

func TestHealthCheck_DatabaseDown(t *testing.T) {
	h := NewHandler(fakeDB{err: errors.New("driver: bad connection")}, fakeCache{}, nil)

	rec, body := healthResponse(t, h)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", body["status"])

	components := body["components"].(map[string]interface{})
	assert.Equal(t, "unhealthy", components["database"])
	assert.Equal(t, "healthy", components["redis"])
}
