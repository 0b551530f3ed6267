package httputil

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError_Envelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	RespondError(rec, "Invalid payload", CodeBadRequest, http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok":false,"error":{"code":"BAD_REQUEST","message":"Invalid payload"}}`, rec.Body.String())
}

func TestRespondInternalError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	RespondInternalError(rec)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":{"code":"INTERNAL_ERROR","message":"Server error"}}`, rec.Body.String())
}

// Not parallel: swaps the process-wide slog default.
func TestRespondJSON_EncodeFailureIsLogged(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))

	rec := httptest.NewRecorder()
	RespondJSON(rec, map[string]any{"bad": make(chan int)}, http.StatusOK)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), `"msg":"failed to encode JSON response"`)
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
}

func TestRespondData(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	RespondData(rec, map[string]string{"id": "1"}, http.StatusCreated)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"ok":true,"data":{"id":"1"}}`, rec.Body.String())
}

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestDecodeAndValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"email":"a@b.co","password":"12345678"}`, false},
		{"bad email", `{"email":"nope","password":"12345678"}`, true},
		{"short password", `{"email":"a@b.co","password":"1234567"}`, true},
		{"missing fields", `{}`, true},
		{"not json", `email=a@b.co`, true},
		{"wrong type", `{"email":1,"password":"12345678"}`, true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var dst signup
			err := DecodeAndValidate(r, &dst)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "a@b.co", dst.Email)
		})
	}
}
