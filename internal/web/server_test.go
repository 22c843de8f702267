package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selfcare-course-bot/internal/config"
	"selfcare-course-bot/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.Storage) {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		DashboardUser:    "admin",
		DashboardPass:    "secret",
		ActiveWindowDays: 30,
		Location:         time.UTC,
	}
	return &Server{DB: db, Cfg: cfg}, db
}

func get(t *testing.T, router http.Handler, path string, auth bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth {
		req.SetBasicAuth("admin", "secret")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthzIsPublic(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s.Router(), "/healthz", false)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDashboardRequiresAuth(t *testing.T) {
	s, _ := newTestServer(t)
	router := s.Router()

	for _, path := range []string{"/", "/export/users.csv", "/export/responses.csv", "/export/alerts.csv"} {
		rec := get(t, router, path, false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestDashboardRenders(t *testing.T) {
	s, db := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, db.CreateUser(ctx, 100, "test"))
	require.NoError(t, db.SaveResponse(ctx, 100, 1, "free", "запись дня"))

	rec := get(t, s.Router(), "/", true)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Статистика курса")
	assert.Contains(t, body, "запись дня")
}

func TestExportResponsesCSV(t *testing.T) {
	s, db := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, db.SaveResponse(ctx, 100, 2, "evening", "Спокойствие"))

	rec := get(t, s.Router(), "/export/responses.csv", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "chat_id,day,kind,text,created_at", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "Спокойствие")
}

func TestMarkAlertHandledEndpoint(t *testing.T) {
	s, db := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, db.CreateAlert(ctx, 100, "плохо", "мне плохо"))
	alerts, err := db.ListAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	req := httptest.NewRequest(http.MethodPost, "/alerts/1/handle", nil)
	req.SetBasicAuth("admin", "secret")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	n, err := db.CountUnhandledAlerts(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
