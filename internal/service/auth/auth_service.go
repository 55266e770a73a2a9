package auth

import (
	"context"
	"fmt"
	"strings"

	"devimpact/internal/domain"
	"devimpact/internal/service"
	"devimpact/pkg/errors"
	"devimpact/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
)

// Service implements the AuthService interface
type Service struct {
	jwtSecret []byte
	admins    map[string]struct{}
	logger    *logger.Logger
}

// NewService creates a new auth service. An empty adminEmails list lets any
// authenticated Supabase user through.
func NewService(jwtSecret string, adminEmails []string, logger *logger.Logger) service.AuthService {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
			admins[email] = struct{}{}
		}
	}
	return &Service{
		jwtSecret: []byte(jwtSecret),
		admins:    admins,
		logger:    logger.Named("auth"),
	}
}

// ValidateAdminToken verifies the token signature and expiry, then checks the
// admin allowlist
func (s *Service) ValidateAdminToken(ctx context.Context, tokenString string) (*domain.AdminClaims, error) {
	if len(s.jwtSecret) == 0 {
		s.logger.Error("SUPABASE_JWT_SECRET not configured")
		return nil, errors.NewAuthenticationError("JWT validation not configured")
	}
	if !isJWTToken(tokenString) {
		return nil, errors.NewAuthenticationError("Unrecognized token format")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		s.logger.WithError(err).Warn("Failed to parse/validate JWT token")
		return nil, errors.NewAuthenticationError("Invalid JWT token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.NewAuthenticationError("Invalid JWT token")
	}

	claims := &domain.AdminClaims{
		Sub:   getStringValue(mapClaims, "sub"),
		Email: strings.ToLower(getStringValue(mapClaims, "email")),
		Role:  getStringValue(mapClaims, "role"),
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.Exp = exp.Unix()
	}

	if claims.Sub == "" {
		s.logger.Error("No user identifier found in JWT token")
		return nil, errors.NewAuthenticationError("Invalid JWT token: no user identifier")
	}

	if len(s.admins) > 0 {
		if _, ok := s.admins[claims.Email]; !ok {
			s.logger.WithField("user_id", claims.Sub).Warn("Non-admin user attempted admin access")
			return nil, errors.NewAuthorizationError("Admin access required")
		}
	}

	s.logger.WithField("user_id", claims.Sub).Debug("Admin token validated")
	return claims, nil
}

func isJWTToken(token string) bool {
	return strings.Count(token, ".") == 2 && len(token) > 20
}

func getStringValue(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
