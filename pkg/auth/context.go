package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const (
	userIDKey contextKey = "user_id"
	phoneKey  contextKey = "phone_no"
	nameKey   contextKey = "name"
)

// ErrUserIDNotFound is returned when no user ID exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrUserIDNotFound = errors.New("user_id not found in context")

// UserIDFromCtx extracts the authenticated user ID from the request context.
// Returns uuid.Nil and ErrUserIDNotFound if none is set (unauthenticated request).
func UserIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, ErrUserIDNotFound
	}
	return userID, nil
}

// WithUserID returns a new context with the given user ID attached.
// Used by RequireAuth after verifying the bearer token.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// PhoneFromCtx returns the verified phone number of the caller, if any.
func PhoneFromCtx(ctx context.Context) string {
	phone, _ := ctx.Value(phoneKey).(string)
	return phone
}

// WithPhone attaches the caller's verified phone number.
func WithPhone(ctx context.Context, phone string) context.Context {
	return context.WithValue(ctx, phoneKey, phone)
}

// NameFromCtx returns the display name carried by the caller's token.
func NameFromCtx(ctx context.Context) string {
	name, _ := ctx.Value(nameKey).(string)
	return name
}

// WithName attaches the caller's display name.
func WithName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, nameKey, name)
}
