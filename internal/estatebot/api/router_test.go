package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/catalog"
	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/config"
	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/dialogue"
	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/leads"
	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/llm/mock"
	logx "github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/log"
	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/monitoring"
	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/session"
)

const routerTestCatalog = `{
  "ЖК Солнечный": {
    "описание": "Современный комплекс у метро",
    "этажность": "17-24 этажа",
    "срок_сдачи": "4 квартал 2026"
  }
}`

func testRouter(t *testing.T) (*Router, *leads.InmemStore) {
	t.Helper()

	cat, err := catalog.Parse([]byte(routerTestCatalog))
	require.NoError(t, err)

	logger, err := logx.NewLogger(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		App: config.AppConfig{Name: "estatebot-test", Version: "0.0.0", Environment: "production"},
		API: config.APIConfig{Host: "127.0.0.1", Port: 0, CORSOrigins: []string{"*"}},
	}

	leadStore := leads.NewInmem()
	metrics := monitoring.New()
	engine := dialogue.NewEngine(cat, session.NewInmem(), leadStore, mock.New("тестовый ответ"), logger, metrics)

	return NewRouter(cfg, logger, engine, leadStore, metrics), leadStore
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := testRouter(t)

	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "estatebot-test", body["app"])
	})

	t.Run("ping", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "pong")
	})

	t.Run("metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/monitor/metrics", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var snap monitoring.Snapshot
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
		assert.GreaterOrEqual(t, snap.MessagesHandled, int64(0))
	})
}

func TestMessageEndpoint(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		router, _ := testRouter(t)

		payload, _ := json.Marshal(map[string]string{"user_id": "u1", "text": "расскажи про ЖК Солнечный"})
		rec := httptest.NewRecorder()
		router.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/messages", bytes.NewReader(payload)))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Replies []string `json:"replies"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Replies, 1)
		assert.Contains(t, resp.Replies[0], "тестовый ответ")
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		router, _ := testRouter(t)

		rec := httptest.NewRecorder()
		router.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/messages", bytes.NewReader([]byte(`{"user_id":"u1"}`))))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSessionResetEndpoint(t *testing.T) {
	router, _ := testRouter(t)

	rec := httptest.NewRecorder()
	router.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions/u1/reset", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "reset")
}

func TestLeadsEndpoint(t *testing.T) {
	router, leadStore := testRouter(t)

	require.NoError(t, leadStore.Save(context.Background(), leads.Lead{
		UserID: "u1", Name: "Иван Иванов", Phone: "79161234567",
	}))

	rec := httptest.NewRecorder()
	router.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/leads", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Leads []leads.Lead `json:"leads"`
		Count int          `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Leads, 1)
	assert.Equal(t, "79161234567", resp.Leads[0].Phone)
}

func TestCORSPreflight(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/messages", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	router.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
