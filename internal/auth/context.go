package auth

import "context"

type contextKey string

const usernameKey = contextKey("username")

func ContextWithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// UsernameFromContext returns "" for unauthenticated requests.
func UsernameFromContext(ctx context.Context) string {
	if val, ok := ctx.Value(usernameKey).(string); ok {
		return val
	}
	return ""
}
