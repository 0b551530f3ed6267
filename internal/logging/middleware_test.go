package logging

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger_LevelFollowsStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "level=INFO"},
		{http.StatusUnauthorized, "level=WARN"},
		{http.StatusInternalServerError, "level=ERROR"},
	}

	for _, tc := range tests {
		var buf bytes.Buffer
		logger := NewLoggerWithWriter(&buf, true)

		h := middleware.RequestID(RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		})))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		out := buf.String()
		assert.Equal(t, tc.status, rec.Code)
		assert.Contains(t, out, `msg="request completed"`)
		assert.Contains(t, out, tc.level)
		assert.Contains(t, out, "path=/health")
		assert.Contains(t, out, "request_id=")
	}
}

func TestRequestLogger_PutsLoggerInContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, true)

	h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		GetLoggerFromContext(r.Context()).Info("inside handler", "k", "v")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/auth/login", nil))

	out := buf.String()
	assert.Contains(t, out, `msg="inside handler"`)
	assert.Contains(t, out, "method=POST")
	assert.Contains(t, out, "k=v")
}

func TestGetLoggerFromContext_Fallback(t *testing.T) {
	t.Parallel()

	logger := GetLoggerFromContext(context.Background())
	require.NotNil(t, logger)
	assert.Same(t, slog.Default(), logger.Logger)
}

func TestRequestLogger_ImplicitOKAndBytes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, false)

	silent := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	silent.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	body := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	}))
	body.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"status":200`)
	assert.Contains(t, lines[0], `"bytes":0`)
	assert.Contains(t, lines[1], `"status":200`)
	assert.Contains(t, lines[1], `"bytes":5`)
	assert.Contains(t, lines[1], `"level":"INFO"`)
}

func TestNewLogger_ProductionIsJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, false)
	logger.WithFields(map[string]any{"user_id": "u1"}).Info("hello")
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, `"msg":"hello"`)
	assert.Contains(t, out, `"user_id":"u1"`)
	assert.NotContains(t, out, "hidden")
}
