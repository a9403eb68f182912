// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// UserContext contains authenticated user information.
type UserContext struct {
	UserID    string
	CompanyID string
	Email     string
	Name      string
	Roles     []string
	IsAdmin   bool
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetCompanyID returns the caller's company (tenant) ID or empty string.
func GetCompanyID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.CompanyID
	}
	return ""
}
