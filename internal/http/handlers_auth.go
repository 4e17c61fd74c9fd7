package httpx

import (
	"net/http"
	"strings"

	domainauth "github.com/favoriteblog/blog-ui/internal/domain/auth"
	"github.com/favoriteblog/blog-ui/internal/http/ui/viewmodel"
	"github.com/favoriteblog/blog-ui/internal/validation"
)

// AuthPage is the login and register view model.
type AuthPage struct {
	viewmodel.Layout
	RedirectURI string `json:"redirectUri,omitempty"`
}

type authResponse struct {
	User     domainauth.Identity `json:"user"`
	Redirect string              `json:"redirect"`
}

// LoginPage shows the login form. Signed-in visitors are sent on to where they were headed.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.authPage(w, r, "Login", PageLogin)
}

// RegisterPage shows the registration form.
func (h *UIHandlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.authPage(w, r, "Register", PageRegister)
}

func (h *UIHandlers) authPage(w http.ResponseWriter, r *http.Request, title, page string) {
	redirect := safeRedirectPath(r.URL.Query().Get("redirect_uri"))
	switch h.session(r).State {
	case domainauth.StateAuthenticated:
		http.Redirect(w, r, redirect, http.StatusFound)
		return
	case domainauth.StateLoading:
		writeLoading(w)
		return
	}
	vm := AuthPage{Layout: h.layout(r, title, page)}
	if redirect != domainauth.HomePath {
		vm.RedirectURI = redirect
	}
	WriteJSON(w, http.StatusOK, vm)
}

// Login handles the login form.
func (h *UIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Message: "Invalid form submission"})
		return
	}
	id, err := h.Sessions.Login(r.Context(), r.PostForm.Get("email"), r.PostForm.Get("password"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	redirect := safeRedirectPath(r.PostForm.Get("redirect_uri"))
	h.done(w, r, redirect, authResponse{User: id, Redirect: redirect})
}

// Register handles the registration form. confirmPassword is checked when present.
func (h *UIHandlers) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Message: "Invalid form submission"})
		return
	}
	name := strings.TrimSpace(r.PostForm.Get("name"))
	email := strings.TrimSpace(r.PostForm.Get("email"))
	password := r.PostForm.Get("password")
	if r.PostForm.Has("confirmPassword") {
		if err := validation.RegisterForm(name, email, password, r.PostForm.Get("confirmPassword")); err != nil {
			h.fail(w, r, err)
			return
		}
	}

	id, err := h.Sessions.Register(r.Context(), email, password, name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.done(w, r, domainauth.HomePath, authResponse{User: id, Redirect: domainauth.HomePath})
}

// Logout ends the session locally; the server is told in the background.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Logout(r.Context())
	h.done(w, r, domainauth.LoginPath, map[string]string{"redirect": domainauth.LoginPath})
}

// RefreshSession re-reads the signed-in identity so a role change made elsewhere
// takes effect without logging in again.
func (h *UIHandlers) RefreshSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Sessions.Refresh(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	l := viewmodel.NewLayout("", "", sess)
	l.CSRFToken = GetCSRFToken(r)
	WriteJSON(w, http.StatusOK, l)
}

// SessionState reports the current session snapshot and navigation for API callers.
func (h *UIHandlers) SessionState(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.layout(r, "", ""))
}
