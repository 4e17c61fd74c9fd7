package auth

// Package auth contains domain-level types for authentication, sessions and access decisions.
// It is pure and free of framework/adapter concerns.

import (
	"fmt"
	"strings"
	"time"
)

// Role represents an application's authorization role.
// Keep string form; it is exactly what the API sends and expects.
type Role string

const (
	RoleReader Role = "READER"
	RoleAuthor Role = "AUTHOR"
	RoleAdmin  Role = "ADMIN"
)

// Roles lists every valid role in display order.
func Roles() []Role { return []Role{RoleReader, RoleAuthor, RoleAdmin} }

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleReader, RoleAuthor, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole converts s (case-insensitive) into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("invalid role: %q (valid options: READER, AUTHOR, ADMIN)", s)
	}
	return r, nil
}

// UnmarshalText implements encoding.TextUnmarshaler so identities decoded
// from the API can never carry an unknown role.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Identity represents the authenticated principal as returned by the API.
type Identity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// State is the active variant of a Session.
type State int

const (
	// StateLoading means restoration is still in progress.
	StateLoading State = iota
	// StateAnonymous means no valid identity is known.
	StateAnonymous
	// StateAuthenticated means Identity holds a verified principal.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is a read-only snapshot of the client's authentication state.
// The bearer credential is deliberately absent; only the session store holds it.
type Session struct {
	State    State    `json:"state"`
	Identity Identity `json:"identity"`
}

// Loading returns the initial session snapshot.
func Loading() Session { return Session{State: StateLoading} }

// Anonymous returns a session without identity.
func Anonymous() Session { return Session{State: StateAnonymous} }

// Authenticated returns a session bound to id.
func Authenticated(id Identity) Session {
	return Session{State: StateAuthenticated, Identity: id}
}

// IsLoading reports whether restoration is still pending.
func (s Session) IsLoading() bool { return s.State == StateLoading }

// IsAuthenticated reports whether the session carries an identity.
func (s Session) IsAuthenticated() bool { return s.State == StateAuthenticated }

// User returns the identity when authenticated.
func (s Session) User() (Identity, bool) {
	if !s.IsAuthenticated() {
		return Identity{}, false
	}
	return s.Identity, true
}
