package middleware

import (
	"context"
	"net/http"
	"strings"

	"devimpact/internal/domain"
	"devimpact/internal/service"
	"devimpact/pkg/errors"
	"devimpact/pkg/logger"
	"github.com/google/uuid"
)

// ContextKey represents keys used in request context
type ContextKey string

const (
	// AdminContextKey is the key for the verified admin claims in context
	AdminContextKey ContextKey = "admin"
	// RequestIDContextKey is the key for request ID in context
	RequestIDContextKey ContextKey = "request_id"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// AdminAuth rejects requests without a valid admin bearer token
func AdminAuth(authService service.AuthService, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeErrorResponse(w, r, errors.NewAuthenticationError("Authorization header is required"), log)
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeErrorResponse(w, r, errors.NewAuthenticationError("Invalid authorization header format"), log)
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if token == "" {
				writeErrorResponse(w, r, errors.NewAuthenticationError("Token is required"), log)
				return
			}

			ctx := r.Context()
			claims, err := authService.ValidateAdminToken(ctx, token)
			if err != nil {
				writeErrorResponse(w, r, errors.AsAppError(err), log)
				return
			}

			ctx = context.WithValue(ctx, AdminContextKey, claims)
			r = r.WithContext(ctx)

			logger.FromContext(ctx, log).WithField("admin_id", claims.Sub).Debug("Admin authenticated")

			next.ServeHTTP(w, r)
		})
	}
}

// RequestID adds a request ID to the context, the response headers and a
// request-scoped logger. An incoming X-Request-ID is reused when it is a UUID.
func RequestID(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(requestID); err != nil {
				requestID = uuid.NewString()
			}

			ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
			ctx = logger.IntoContext(ctx, log.WithField("request_id", requestID))

			w.Header().Set(RequestIDHeader, requestID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetRequestID returns the request ID stored by RequestID
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDContextKey).(string); ok {
		return id
	}
	return ""
}

// GetAdmin returns the admin claims stored by AdminAuth
func GetAdmin(ctx context.Context) (*domain.AdminClaims, bool) {
	claims, ok := ctx.Value(AdminContextKey).(*domain.AdminClaims)
	return claims, ok
}

// writeErrorResponse writes an error response to the client
func writeErrorResponse(w http.ResponseWriter, r *http.Request, appErr *errors.AppError, log *logger.Logger) {
	logger.FromContext(r.Context(), log).WithError(appErr).Warn("Request rejected")

	if err := errors.WriteJSON(w, appErr, GetRequestID(r.Context())); err != nil {
		log.WithError(err).Error("Failed to write error response")
	}
}
