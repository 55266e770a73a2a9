package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"devimpact/internal/domain"
	"devimpact/pkg/errors"
	"devimpact/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	claims *domain.AdminClaims
	err    error
}

func (s *stubAuthService) ValidateAdminToken(ctx context.Context, token string) (*domain.AdminClaims, error) {
	return s.claims, s.err
}

func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetAdmin(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte(claims.Email))
	})
}

func TestAdminAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		auth       *stubAuthService
		wantStatus int
		wantType   errors.ErrorType
	}{
		{name: "missing header", header: "", auth: &stubAuthService{}, wantStatus: http.StatusUnauthorized, wantType: errors.ErrorTypeAuthentication},
		{name: "not bearer", header: "Basic abc", auth: &stubAuthService{}, wantStatus: http.StatusUnauthorized, wantType: errors.ErrorTypeAuthentication},
		{name: "empty token", header: "Bearer ", auth: &stubAuthService{}, wantStatus: http.StatusUnauthorized, wantType: errors.ErrorTypeAuthentication},
		{name: "not an admin", header: "Bearer t", auth: &stubAuthService{err: errors.NewAuthorizationError("Admin access required")}, wantStatus: http.StatusForbidden, wantType: errors.ErrorTypeAuthorization},
		{name: "valid", header: "Bearer t", auth: &stubAuthService{claims: &domain.AdminClaims{Sub: "u1", Email: "admin@ncs.club"}}, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequestID(logger.NewNop())(AdminAuth(tt.auth, logger.NewNop())(okHandler(t)))

			req := httptest.NewRequest(http.MethodGet, "/api/admin/teams", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantType == "" {
				assert.Equal(t, "admin@ncs.club", rec.Body.String())
				return
			}

			var resp errors.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantType, resp.Error.Type)
			assert.Equal(t, rec.Header().Get(RequestIDHeader), resp.Error.RequestID)
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("generates an id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("reuses an incoming uuid", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, id)
		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, id, seen)
	})

	t.Run("replaces garbage", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.NotEqual(t, "<script>", seen)
	})
}

func TestCORS(t *testing.T) {
	handler := CORS(DefaultCORSConfig("https://devimpact.vercel.app"), logger.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }))

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/registrations", nil)
		req.Header.Set("Origin", "https://devimpact.vercel.app")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "https://devimpact.vercel.app", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("unknown origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/registrations", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/admin/teams", nil)
		req.Header.Set("Origin", "https://devimpact.vercel.app")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
