package viewmodel

import domainauth "github.com/favoriteblog/blog-ui/internal/domain/auth"

// User represents the signed-in identity exposed to pages.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Layout captures shared chrome metadata (titles, navigation state, auth flags).
type Layout struct {
	Title           string               `json:"title"`
	CurrentPage     string               `json:"currentPage"`
	SessionState    string               `json:"sessionState"`
	IsAuthenticated bool                 `json:"isAuthenticated"`
	User            *User                `json:"user,omitempty"`
	Nav             []domainauth.NavLink `json:"nav"`
	Flash           string               `json:"flash,omitempty"`
	// CSRFToken must be echoed by every form post (csrf_token field or X-Csrf-Token header).
	CSRFToken string `json:"csrfToken,omitempty"`
}

// NewLayout builds the chrome for s. Navigation comes from domainauth.NavLinks.
func NewLayout(title, currentPage string, s domainauth.Session) Layout {
	l := Layout{
		Title:           title,
		CurrentPage:     currentPage,
		SessionState:    s.State.String(),
		IsAuthenticated: s.IsAuthenticated(),
		Nav:             domainauth.NavLinks(s),
	}
	if id, ok := s.User(); ok {
		l.User = &User{ID: id.ID, Name: id.Name, Email: id.Email, Role: string(id.Role)}
	}
	return l
}

// LayoutProvider exposes layout metadata for renderer utilities.
type LayoutProvider interface {
	LayoutData() *Layout
}
