package httpx

import (
	"net/http"
	"net/url"
	"strconv"

	domainauth "github.com/favoriteblog/blog-ui/internal/domain/auth"
	"github.com/favoriteblog/blog-ui/internal/domain/model"
	apperrors "github.com/favoriteblog/blog-ui/internal/errors"
	"github.com/favoriteblog/blog-ui/internal/http/ui/viewmodel"
)

// AdminPage is the admin panel view model.
type AdminPage struct {
	viewmodel.Layout
	Stats      model.UserStats      `json:"stats"`
	Users      []model.User         `json:"users"`
	Pending    []CommentView        `json:"pending"`
	Pagination viewmodel.Pagination `json:"pagination"`
	Roles      []domainauth.Role    `json:"roles"`
	Search     string               `json:"search,omitempty"`
	RoleFilter domainauth.Role      `json:"roleFilter,omitempty"`
}

// AdminHandler renders stats, a page of users and the moderation queue.
func (h *UIHandlers) AdminHandler(w http.ResponseWriter, r *http.Request) {
	q := model.UserQuery{
		Page:   parseIntQuery(r, "page", 1),
		Search: r.URL.Query().Get("search"),
	}
	if role := r.URL.Query().Get("role"); role != "" {
		parsed, err := domainauth.ParseRole(role)
		if err != nil {
			h.fail(w, r, apperrors.ValidationField("role", "Invalid role filter"))
			return
		}
		q.Role = parsed
	}

	overview, err := h.Admin.Overview(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, AdminPage{
		Layout:     h.layout(r, "Admin Panel", PageAdmin),
		Stats:      overview.Stats,
		Users:      overview.Users.Items,
		Pending:    h.commentViews(overview.Pending, h.session(r)),
		Pagination: h.pagination(overview.Users.Pagination, r),
		Roles:      domainauth.Roles(),
		Search:     q.Search,
		RoleFilter: q.Role,
	})
}

// SetUserRole changes a user's role.
func (h *UIHandlers) SetUserRole(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	role, err := h.Admin.UpdateRole(r.Context(), id, r.FormValue("role"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.done(w, r, adminFlash("User role updated"), map[string]string{"id": id, "role": string(role)})
}

// DeleteUser removes a user account.
func (h *UIHandlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Admin.DeleteUser(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.done(w, r, adminFlash("User deleted"), map[string]string{"deleted": id})
}

// ModerateComment approves (approve=true) or rejects a pending comment.
func (h *UIHandlers) ModerateComment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	approve, err := strconv.ParseBool(r.FormValue("approve"))
	if err != nil {
		h.fail(w, r, apperrors.ValidationField("approve", "approve must be true or false"))
		return
	}
	if err := h.Admin.Moderate(r.Context(), id, approve); err != nil {
		h.fail(w, r, err)
		return
	}
	msg := "Comment rejected"
	if approve {
		msg = "Comment approved"
	}
	h.done(w, r, adminFlash(msg), map[string]any{"id": id, "approved": approve})
}

func adminFlash(msg string) string {
	return PathAdmin + "?flash=" + url.QueryEscape(msg)
}
