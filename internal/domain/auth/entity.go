package auth

import (
	"context"
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleHR    Role = "hr"
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal identifies the caller of a request. It is either an
// authenticated user or an accepted guest session; the Guest flag is the
// discriminator. Handlers and services must read the caller identity from
// here, never from raw claims or headers.
type Principal struct {
	UserID string
	Name   string
	Email  string
	Role   Role
	Guest  bool
}

// GuestPrincipal returns the identity assigned to guest sessions. Guests
// can read and write payroll data but are barred from admin-only actions.
func GuestPrincipal() Principal {
	return Principal{
		Name:  "Guest User",
		Email: "guest@example.com",
		Role:  RoleHR,
		Guest: true,
	}
}

// AuditRef returns the user id to record as the acting user, or nil for
// guest sessions.
func (p Principal) AuditRef() *string {
	if p.Guest || p.UserID == "" {
		return nil
	}
	id := p.UserID
	return &id
}

type principalContextKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(Principal)
	return p, ok
}
