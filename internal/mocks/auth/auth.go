// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domainauth "github.com/favoriteblog/blog-ui/internal/domain/auth"
	apperrors "github.com/favoriteblog/blog-ui/internal/errors"
	"github.com/favoriteblog/blog-ui/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthAPI         = (*MockAuthAPI)(nil)
	_ ports.CredentialStore = (*MemoryCredentialStore)(nil)
)

// ErrOffline simulates an unreachable API.
var ErrOffline = errors.New("dial tcp 127.0.0.1:5000: connect: connection refused")

type account struct {
	password string
	identity domainauth.Identity
}

// MockAuthAPI simulates the blog API's /auth endpoints with deterministic credentials.
// Func fields override the built-in behavior per method.
type MockAuthAPI struct {
	LoginFunc    func(ctx context.Context, in ports.LoginInput) (ports.AuthResult, error)
	RegisterFunc func(ctx context.Context, in ports.RegisterInput) (ports.AuthResult, error)
	MeFunc       func(ctx context.Context, credential string) (domainauth.Identity, error)
	LogoutFunc   func(ctx context.Context, credential string) error

	mu       sync.Mutex
	accounts map[string]account
	tokens   map[string]string // credential -> email
	offline  bool
	issued   int

	LoginCalls  int
	MeCalls     int
	LogoutCalls int
}

// NewMockAuthAPI creates a MockAuthAPI seeded with the demo accounts.
func NewMockAuthAPI() *MockAuthAPI {
	m := &MockAuthAPI{
		accounts: make(map[string]account),
		tokens:   make(map[string]string),
	}
	m.AddAccount("admin@blog.com", "admin123", domainauth.RoleAdmin)
	m.AddAccount("author@blog.com", "author123", domainauth.RoleAuthor)
	m.AddAccount("reader@blog.com", "reader123", domainauth.RoleReader)
	return m
}

// AddAccount registers an account and returns its identity.
func (m *MockAuthAPI) AddAccount(email, password string, role domainauth.Role) domainauth.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := domainauth.Identity{
		ID:        fmt.Sprintf("user-%d", len(m.accounts)+1),
		Name:      email,
		Email:     email,
		Role:      role,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	m.accounts[email] = account{password: password, identity: id}
	return id
}

// SetRole changes the role of an existing account server-side.
func (m *MockAuthAPI) SetRole(email string, role domainauth.Role) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acct := m.accounts[email]
	acct.identity.Role = role
	m.accounts[email] = acct
}

// SetOffline makes every call fail with ErrOffline.
func (m *MockAuthAPI) SetOffline(offline bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offline = offline
}

// Revoke makes the API reject credential from now on.
func (m *MockAuthAPI) Revoke(credential string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, credential)
}

func (m *MockAuthAPI) Login(ctx context.Context, in ports.LoginInput) (ports.AuthResult, error) {
	m.mu.Lock()
	m.LoginCalls++
	m.mu.Unlock()
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, in)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.offline {
		return ports.AuthResult{}, apperrors.Network(ErrOffline)
	}
	acct, ok := m.accounts[in.Email]
	if !ok || acct.password != in.Password {
		return ports.AuthResult{}, &apperrors.AppError{
			Code:    apperrors.ErrCodeUnauthorized,
			Message: "Invalid credentials",
			Status:  401,
		}
	}
	return ports.AuthResult{Identity: acct.identity, Credential: m.issueLocked(in.Email)}, nil
}

func (m *MockAuthAPI) Register(ctx context.Context, in ports.RegisterInput) (ports.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}

	m.mu.Lock()
	if m.offline {
		m.mu.Unlock()
		return ports.AuthResult{}, apperrors.Network(ErrOffline)
	}
	if _, exists := m.accounts[in.Email]; exists {
		m.mu.Unlock()
		return ports.AuthResult{}, &apperrors.AppError{
			Code:    apperrors.ErrCodeConflict,
			Message: "User already exists",
			Status:  400,
		}
	}
	m.mu.Unlock()

	id := m.AddAccount(in.Email, in.Password, domainauth.RoleReader)
	id.Name = in.Name

	m.mu.Lock()
	defer m.mu.Unlock()
	acct := m.accounts[in.Email]
	acct.identity = id
	m.accounts[in.Email] = acct
	return ports.AuthResult{Identity: id, Credential: m.issueLocked(in.Email)}, nil
}

func (m *MockAuthAPI) Me(ctx context.Context, credential string) (domainauth.Identity, error) {
	m.mu.Lock()
	m.MeCalls++
	m.mu.Unlock()
	if m.MeFunc != nil {
		return m.MeFunc(ctx, credential)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.offline {
		return domainauth.Identity{}, apperrors.Network(ErrOffline)
	}
	email, ok := m.tokens[credential]
	if !ok {
		return domainauth.Identity{}, &apperrors.AppError{
			Code:    apperrors.ErrCodeUnauthorized,
			Message: "Invalid token",
			Status:  401,
		}
	}
	return m.accounts[email].identity, nil
}

func (m *MockAuthAPI) Logout(ctx context.Context, credential string) error {
	m.mu.Lock()
	m.LogoutCalls++
	m.mu.Unlock()
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, credential)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.offline {
		return apperrors.Network(ErrOffline)
	}
	delete(m.tokens, credential)
	return nil
}

// Calls returns the login, me and logout call counts.
func (m *MockAuthAPI) Calls() (login, me, logout int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.LoginCalls, m.MeCalls, m.LogoutCalls
}

func (m *MockAuthAPI) issueLocked(email string) string {
	m.issued++
	tok := fmt.Sprintf("token-%d", m.issued)
	m.tokens[tok] = email
	return tok
}

// MemoryCredentialStore is an in-memory credential store with failure injection.
type MemoryCredentialStore struct {
	mu     sync.Mutex
	value  string
	stored bool

	LoadErr  error
	SaveErr  error
	ClearErr error

	Saves  int
	Clears int
}

// NewMemoryCredentialStore creates an empty store.
func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{}
}

// NewMemoryCredentialStoreWith creates a store that already holds credential.
func NewMemoryCredentialStoreWith(credential string) *MemoryCredentialStore {
	return &MemoryCredentialStore{value: credential, stored: true}
}

func (m *MemoryCredentialStore) Load(_ context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return "", false, m.LoadErr
	}
	return m.value, m.stored, nil
}

func (m *MemoryCredentialStore) Save(_ context.Context, credential string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saves++
	m.value, m.stored = credential, true
	return nil
}

func (m *MemoryCredentialStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Clears++
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.value, m.stored = "", false
	return nil
}

// Value returns the stored credential, if any.
func (m *MemoryCredentialStore) Value() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value, m.stored
}
