package environment

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"histobot/internal/config"
	"histobot/internal/infra/database"
)

func newObservabilityHandler(t *testing.T) (http.Handler, *database.DB) {
	t.Helper()

	db, err := database.New(context.Background(), database.WithDSN(filepath.Join(t.TempDir(), "ready.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := initObservability(context.Background(), logger, &Clients{DB: db}, config.Config{})
	return srv.Handler, db
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestReadyz(t *testing.T) {
	h, db := newObservabilityHandler(t)

	rec := get(h, "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ready", rec.Body.String())

	require.NoError(t, db.Close())

	rec = get(h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "database unavailable", rec.Body.String())

	rec = get(h, "/livez")
	assert.Equal(t, http.StatusOK, rec.Code, "liveness does not depend on the database")
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newObservabilityHandler(t)

	rec := get(h, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
