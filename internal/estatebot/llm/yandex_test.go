package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/config"
	logx "github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/log"
)

func testYandexClient(t *testing.T, url string) *YandexClient {
	t.Helper()
	logger, err := logx.NewLogger(t.TempDir())
	require.NoError(t, err)

	c := NewYandex(config.YandexConfig{
		APIKey:      "test-key",
		FolderID:    "test-folder",
		Model:       "yandexgpt-lite",
		Temperature: 0.6,
		MaxTokens:   1500,
		Timeout:     5,
	}, logger)
	c.url = url
	return c
}

func TestYandexGenerate(t *testing.T) {
	ctx := context.Background()
	messages := []Message{
		{Role: RoleSystem, Text: "системная инструкция"},
		{Role: RoleUser, Text: "вопрос"},
	}

	t.Run("successful completion", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Api-Key test-key", r.Header.Get("Authorization"))
			assert.Equal(t, "test-folder", r.Header.Get("x-folder-id"))

			var req completionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "gpt://test-folder/yandexgpt-lite", req.ModelURI)
			assert.False(t, req.CompletionOptions.Stream)
			assert.Len(t, req.Messages, 2)

			_, _ = w.Write([]byte(`{"result":{"alternatives":[{"message":{"role":"assistant","text":"ответ модели"}}]}}`))
		}))
		defer srv.Close()

		got, err := testYandexClient(t, srv.URL).Generate(ctx, messages)
		require.NoError(t, err)
		assert.Equal(t, "ответ модели", got)
	})

	t.Run("api error surfaces the service message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"message":"quota exceeded"}`))
		}))
		defer srv.Close()

		got, err := testYandexClient(t, srv.URL).Generate(ctx, messages)
		require.ErrorIs(t, err, ErrUnavailable)
		assert.Equal(t, "Ошибка сервиса: quota exceeded", got)
	})

	t.Run("non-json error body falls back to the generic apology", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("bad gateway"))
		}))
		defer srv.Close()

		got, err := testYandexClient(t, srv.URL).Generate(ctx, messages)
		require.ErrorIs(t, err, ErrUnavailable)
		assert.Equal(t, apologyUnavailable, got)
	})

	t.Run("empty alternatives", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"result":{"alternatives":[]}}`))
		}))
		defer srv.Close()

		got, err := testYandexClient(t, srv.URL).Generate(ctx, messages)
		require.ErrorIs(t, err, ErrUnavailable)
		assert.Equal(t, apologyEmpty, got)
	})

	t.Run("malformed response body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{not json"))
		}))
		defer srv.Close()

		got, err := testYandexClient(t, srv.URL).Generate(ctx, messages)
		require.ErrorIs(t, err, ErrUnavailable)
		assert.Equal(t, apologyParse, got)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		got, err := testYandexClient(t, srv.URL).Generate(ctx, messages)
		require.ErrorIs(t, err, ErrUnavailable)
		assert.Equal(t, apologyConnection, got)
	})

	t.Run("missing credentials fail before any request", func(t *testing.T) {
		logger, err := logx.NewLogger(t.TempDir())
		require.NoError(t, err)
		c := NewYandex(config.YandexConfig{}, logger)

		got, err := c.Generate(ctx, messages)
		require.ErrorIs(t, err, ErrUnavailable)
		assert.Equal(t, apologyTechnical, got)
	})
}
