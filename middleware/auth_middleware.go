package middleware

import (
	"net/http"
	"strings"

	"github.com/storyarchive/content-api/utils"
	"go.uber.org/zap"
)

// TokenVerifier validates a session token and returns the principal ID it
// asserts. Verification is stateless: signature plus expiry, no store lookup.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// AuthMiddleware provides authentication middleware functionality
type AuthMiddleware struct {
	verifier TokenVerifier
	logger   *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(verifier TokenVerifier, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

// RequireAuth is a middleware that requires a valid session token. A request
// whose token fails signature or expiry checks is treated as unauthenticated;
// the claims are never partially trusted.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			m.logger.Warn("missing token", zap.String("path", r.URL.Path))
			_ = utils.WriteUnauthorized(w, "Missing or invalid authorization")
			return
		}

		userID, err := m.verifier.VerifyToken(token)
		if err != nil {
			m.logger.Warn("token verification failed",
				zap.String("path", r.URL.Path),
				zap.Error(err))
			_ = utils.WriteUnauthorized(w, "Invalid or expired token")
			return
		}

		ctx := WithUserID(r.Context(), userID)

		m.logger.Debug("authentication successful", zap.String("user_id", userID))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractBearerToken extracts the Bearer token from the Authorization header
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
