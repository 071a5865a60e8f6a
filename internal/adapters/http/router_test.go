package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	router "github.com/avrek/Beacon/internal/adapters/http"
	"github.com/avrek/Beacon/internal/app"
	"github.com/avrek/Beacon/internal/config"
	"github.com/avrek/Beacon/internal/core"
)

type nopConn struct{}

func (nopConn) TrySend(core.Frame) error { return nil }
func (nopConn) Close()                   {}

func setup(t *testing.T) (*app.Relay, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	relay := app.NewRelay(app.NewRegistry(), app.UUIDGenerator{}, app.EvictOnClosed{})
	cfg := &config.Config{Mode: "test", StaticPath: "./testdata", SendBuffer: 1}
	return relay, router.SetupRouter(context.Background(), cfg, relay)
}

func TestHealthz(t *testing.T) {
	_, r := setup(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRosterEndpoint(t *testing.T) {
	relay, r := setup(t)
	relay.OnConnect(nopConn{})
	relay.OnConnect(nopConn{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/roster", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Users []core.RosterEntry `json:"users"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Users, 2)
}

func TestStatsEndpoint(t *testing.T) {
	relay, r := setup(t)
	relay.OnConnect(nopConn{})
	relay.OnMessage(core.Frame(`{broken`))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var snap app.StatsSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, int64(1), snap.Connected)
	assert.Equal(t, int64(1), snap.Malformed)
}
