package middleware

import (
	"context"
)

// Context key type to avoid collisions
type contextKey string

const (
	// UserIDKey is the context key for the authenticated principal ID
	UserIDKey contextKey = "user_id"
)

// WithUserID adds the authenticated principal ID to the context
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserIDFromContext retrieves the authenticated principal ID from context.
// Returns an empty string when the request was not authenticated.
func GetUserIDFromContext(ctx context.Context) string {
	if val := ctx.Value(UserIDKey); val != nil {
		if userID, ok := val.(string); ok {
			return userID
		}
	}
	return ""
}
