package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	tokens, err := NewJWTService([]byte("unit-secret"))
	require.NoError(t, err)
	mw := NewMiddleware(tokens)

	userID := uuid.New()
	valid, err := tokens.CreateToken(userID.String(), "", time.Minute)
	require.NoError(t, err)
	expired, err := tokens.CreateToken(userID.String(), "", -time.Minute)
	require.NoError(t, err)
	badSubject, err := tokens.CreateToken("not-a-uuid", "", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantMsg    string
	}{
		{"no header", "", http.StatusUnauthorized, "Missing token"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Missing token"},
		{"lowercase bearer", "bearer " + valid, http.StatusUnauthorized, "Missing token"},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized, "Invalid token"},
		{"empty token", "Bearer ", http.StatusUnauthorized, "Invalid token"},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, "Invalid token"},
		{"subject not uuid", "Bearer " + badSubject, http.StatusUnauthorized, "Invalid token"},
		{"valid", "Bearer " + valid, http.StatusOK, ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var seen Identity
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				id, ok := IdentityFromContext(r.Context())
				require.True(t, ok)
				seen = id
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			mw.RequireAuth(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus == http.StatusOK {
				assert.Equal(t, userID, seen.UserID)
				return
			}
			assert.JSONEq(t,
				`{"ok":false,"error":{"code":"UNAUTHORIZED","message":"`+tc.wantMsg+`"}}`,
				rec.Body.String())
		})
	}
}

func TestIdentityFromContext_Missing(t *testing.T) {
	t.Parallel()

	_, ok := IdentityFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}
