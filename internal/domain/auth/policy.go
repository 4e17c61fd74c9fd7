package auth

// Requirement is attached to a protected route or action.
// The zero value means "must be authenticated"; any valid role is enough.
type Requirement struct {
	MinRole Role
}

// RequireAuthenticated is the requirement for routes that only need a login.
var RequireAuthenticated = Requirement{}

// RequireRole returns a minimum-role requirement.
func RequireRole(r Role) Requirement { return Requirement{MinRole: r} }

func (r Requirement) String() string {
	if r.MinRole == "" {
		return "authenticated"
	}
	return "role:" + string(r.MinRole)
}

// Decision is the outcome of evaluating a Requirement against a Session.
type Decision int

const (
	// DecisionPending means the session is still loading; render neither content nor redirect.
	DecisionPending Decision = iota
	// DecisionRedirectLogin means the visitor must authenticate first.
	DecisionRedirectLogin
	// DecisionRedirectHome means the identity lacks the required role.
	DecisionRedirectHome
	// DecisionGranted means the protected content may be rendered.
	DecisionGranted
)

const (
	LoginPath = "/login"
	HomePath  = "/"
)

func (d Decision) String() string {
	switch d {
	case DecisionPending:
		return "pending"
	case DecisionRedirectLogin:
		return "redirect_login"
	case DecisionRedirectHome:
		return "redirect_home"
	case DecisionGranted:
		return "granted"
	default:
		return "unknown"
	}
}

// RedirectPath returns where a denied visitor should be sent, or "" when no redirect applies.
func (d Decision) RedirectPath() string {
	switch d {
	case DecisionRedirectLogin:
		return LoginPath
	case DecisionRedirectHome:
		return HomePath
	default:
		return ""
	}
}

// Satisfies reports whether role meets req.
// ADMIN satisfies everything; READER and AUTHOR only satisfy themselves.
func Satisfies(role Role, req Requirement) bool {
	if !role.Valid() {
		return false
	}
	if req.MinRole == "" {
		return true
	}
	return role == req.MinRole || role == RoleAdmin
}

// Evaluate decides access for s under req. It is pure and must be the only
// place role rules are applied; route guards and UI conditionals both call it.
func Evaluate(s Session, req Requirement) Decision {
	switch s.State {
	case StateAnonymous:
		return DecisionRedirectLogin
	case StateAuthenticated:
		if Satisfies(s.Identity.Role, req) {
			return DecisionGranted
		}
		return DecisionRedirectHome
	default:
		return DecisionPending
	}
}

// Allows reports whether s is granted req. Pending counts as not allowed.
func (s Session) Allows(req Requirement) bool {
	return Evaluate(s, req) == DecisionGranted
}

// CanManage reports whether s may edit or delete a resource owned by ownerID.
func CanManage(s Session, ownerID string) bool {
	if !s.Allows(RequireAuthenticated) {
		return false
	}
	if ownerID != "" && s.Identity.ID == ownerID {
		return true
	}
	return s.Allows(RequireRole(RoleAdmin))
}

// NavLink is one navigation entry offered to the current visitor.
type NavLink struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// NavLinks returns the header links for s. Links to guarded routes are only
// offered when Evaluate would grant the matching route.
func NavLinks(s Session) []NavLink {
	links := []NavLink{{Label: "Home", Path: HomePath}}
	switch s.State {
	case StateAnonymous:
		return append(links,
			NavLink{Label: "Login", Path: LoginPath},
			NavLink{Label: "Register", Path: "/register"},
		)
	case StateAuthenticated:
		if s.Allows(RequireRole(RoleAuthor)) {
			links = append(links, NavLink{Label: "Dashboard", Path: "/dashboard"})
		}
		if s.Allows(RequireRole(RoleAdmin)) {
			links = append(links, NavLink{Label: "Admin", Path: "/admin"})
		}
		return append(links, NavLink{Label: "Profile", Path: "/profile"})
	default:
		return links
	}
}
