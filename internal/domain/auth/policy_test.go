package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sessionWithRole(role Role) Session {
	return Authenticated(Identity{ID: "u-1", Name: "Test", Email: "t@example.com", Role: role})
}

func allRequirements() []Requirement {
	return []Requirement{
		RequireAuthenticated,
		RequireRole(RoleReader),
		RequireRole(RoleAuthor),
		RequireRole(RoleAdmin),
	}
}

func TestEvaluate_LoadingIsAlwaysPending(t *testing.T) {
	for _, req := range allRequirements() {
		t.Run(req.String(), func(t *testing.T) {
			d := Evaluate(Loading(), req)
			assert.Equal(t, DecisionPending, d)
			assert.Empty(t, d.RedirectPath())
		})
	}
}

func TestEvaluate_AnonymousRedirectsToLogin(t *testing.T) {
	for _, req := range allRequirements() {
		d := Evaluate(Anonymous(), req)
		assert.Equal(t, DecisionRedirectLogin, d, req.String())
		assert.Equal(t, "/login", d.RedirectPath())
	}
}

func TestEvaluate_AdminOverride(t *testing.T) {
	admin := sessionWithRole(RoleAdmin)
	for _, req := range allRequirements() {
		assert.Equal(t, DecisionGranted, Evaluate(admin, req), req.String())
	}
}

func TestEvaluate_NoHierarchyBetweenReaderAndAuthor(t *testing.T) {
	tests := []struct {
		name string
		role Role
		req  Requirement
		want Decision
	}{
		{"reader on author route", RoleReader, RequireRole(RoleAuthor), DecisionRedirectHome},
		{"author on reader route", RoleAuthor, RequireRole(RoleReader), DecisionRedirectHome},
		{"author on admin route", RoleAuthor, RequireRole(RoleAdmin), DecisionRedirectHome},
		{"reader on reader route", RoleReader, RequireRole(RoleReader), DecisionGranted},
		{"author on author route", RoleAuthor, RequireRole(RoleAuthor), DecisionGranted},
		{"reader authenticated only", RoleReader, RequireAuthenticated, DecisionGranted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(sessionWithRole(tt.role), tt.req))
		})
	}
}

func TestEvaluate_RoleMismatchRedirectsHome(t *testing.T) {
	d := Evaluate(sessionWithRole(RoleReader), RequireRole(RoleAuthor))
	assert.Equal(t, DecisionRedirectHome, d)
	assert.Equal(t, "/", d.RedirectPath())
}

func TestEvaluate_InvalidRoleNeverGranted(t *testing.T) {
	s := sessionWithRole(Role("SUPERUSER"))
	assert.Equal(t, DecisionRedirectHome, Evaluate(s, RequireAuthenticated))
}

func TestCanManage(t *testing.T) {
	assert.True(t, CanManage(sessionWithRole(RoleReader), "u-1"))
	assert.False(t, CanManage(sessionWithRole(RoleAuthor), "someone-else"))
	assert.True(t, CanManage(sessionWithRole(RoleAdmin), "someone-else"))
	assert.False(t, CanManage(Anonymous(), "u-1"))
	assert.False(t, CanManage(Loading(), "u-1"))
	assert.False(t, CanManage(sessionWithRole(RoleAuthor), ""))
}

func navPaths(links []NavLink) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.Path)
	}
	return out
}

func TestNavLinks(t *testing.T) {
	assert.Equal(t, []string{"/"}, navPaths(NavLinks(Loading())))
	assert.Equal(t, []string{"/", "/login", "/register"}, navPaths(NavLinks(Anonymous())))
	assert.Equal(t, []string{"/", "/profile"}, navPaths(NavLinks(sessionWithRole(RoleReader))))
	assert.Equal(t, []string{"/", "/dashboard", "/profile"}, navPaths(NavLinks(sessionWithRole(RoleAuthor))))
	assert.Equal(t, []string{"/", "/dashboard", "/admin", "/profile"}, navPaths(NavLinks(sessionWithRole(RoleAdmin))))
}
