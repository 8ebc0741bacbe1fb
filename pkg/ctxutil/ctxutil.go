// Package ctxutil carries request-scoped identity through context.Context.
package ctxutil

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ctxKey string

const (
	sessionKey   ctxKey = "session"
	requestIDKey ctxKey = "request_id"
)

// Session is the authenticated caller of a request.
type Session struct {
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// Expired reports whether the session has a known expiry that is not after now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// WithSession stores the session in the context.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromCtx extracts the session from the context.
// Returns false if the value is missing, has a nil user ID, or has the wrong type.
func SessionFromCtx(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey).(Session)
	if !ok || s.UserID == uuid.Nil {
		return Session{}, false
	}
	return s, true
}

// WithUserID stores a session without expiry for the given user.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return WithSession(ctx, Session{UserID: id})
}

// UserIDFromCtx extracts the session user ID from the context.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	s, ok := SessionFromCtx(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return s.UserID, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
