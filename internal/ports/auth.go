package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/favoriteblog/blog-ui/internal/domain/auth"
)

// LoginInput carries credentials for POST /auth/login.
type LoginInput struct {
	Email    string
	Password string
}

// RegisterInput carries the fields for POST /auth/register.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is what the API returns for a successful login or registration.
type AuthResult struct {
	Identity   domainauth.Identity
	Credential string
}

// AuthAPI is the remote authentication API.
type AuthAPI interface {
	Login(ctx context.Context, in LoginInput) (AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (AuthResult, error)
	// Me resolves the identity bound to credential.
	Me(ctx context.Context, credential string) (domainauth.Identity, error)
	// Logout asks the server to invalidate credential. Callers must not depend on the result.
	Logout(ctx context.Context, credential string) error
}

// CredentialStore persists the single bearer credential in durable client storage.
type CredentialStore interface {
	// Load returns ok=false when nothing is stored.
	Load(ctx context.Context) (credential string, ok bool, err error)
	Save(ctx context.Context, credential string) error
	Clear(ctx context.Context) error
}

// SessionObserver is notified synchronously after each committed session transition.
type SessionObserver func(domainauth.Session)
