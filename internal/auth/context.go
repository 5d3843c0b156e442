package auth

import (
	"context"
	"strings"
)

type contextKey string

const (
	tokenKey contextKey = "sessionToken"
	actorKey contextKey = "actorID"
)

// Session is the authenticated caller's state, read-only from the pipeline's
// perspective. The upstream API owns issuing and validating the token; this
// layer only forwards it.
type Session struct {
	Token   string
	ActorID string
}

// ContextWithSession returns a new context carrying the caller's session.
func ContextWithSession(ctx context.Context, session Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, tokenKey, session.Token)
	return context.WithValue(ctx, actorKey, session.ActorID)
}

// TokenFromContext retrieves the bearer token from the context, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	token, ok := ctx.Value(tokenKey).(string)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// ActorFromContext retrieves the acting user's identifier from the context.
func ActorFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	actor, ok := ctx.Value(actorKey).(string)
	if !ok || actor == "" {
		return "", false
	}
	return actor, true
}

// BearerFromHeader extracts the token from an Authorization header value.
func BearerFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
