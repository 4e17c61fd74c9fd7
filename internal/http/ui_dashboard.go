package httpx

import (
	"net/http"

	domainauth "github.com/favoriteblog/blog-ui/internal/domain/auth"
	"github.com/favoriteblog/blog-ui/internal/domain/model"
	"github.com/favoriteblog/blog-ui/internal/http/ui/viewmodel"
	"github.com/favoriteblog/blog-ui/internal/service"
)

// DashboardPage is the author dashboard view model.
type DashboardPage struct {
	viewmodel.Layout
	Posts      []PostView           `json:"posts"`
	Stats      model.PostStats      `json:"stats"`
	Pagination viewmodel.Pagination `json:"pagination"`
}

// DashboardHandler renders the current author's posts with published/draft counts.
func (h *UIHandlers) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	d, err := h.Dashboard.Dashboard(r.Context(), parseIntQuery(r, "page", 1))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, DashboardPage{
		Layout:     h.layout(r, "Dashboard", PageDashboard),
		Posts:      h.postViews(d.Posts.Items, sess),
		Stats:      d.Stats,
		Pagination: h.pagination(d.Posts.Pagination, r),
	})
}

// ProfilePage is the signed-in user's profile view model.
type ProfilePage struct {
	viewmodel.Layout
	User           domainauth.Identity  `json:"user"`
	MemberSince    string               `json:"memberSince,omitempty"`
	Stats          service.ProfileStats `json:"stats"`
	RecentPosts    []PostView           `json:"recentPosts"`
	RecentComments []CommentView        `json:"recentComments"`
	CanWrite       bool                 `json:"canWrite"`
}

// ProfileHandler renders the profile page.
func (h *UIHandlers) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	p, err := h.Dashboard.Profile(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	vm := ProfilePage{
		Layout:         h.layout(r, "Profile", PageProfile),
		User:           p.User,
		Stats:          p.Stats,
		RecentPosts:    h.postViews(p.RecentPosts, sess),
		RecentComments: h.commentViews(p.RecentComments, sess),
		CanWrite:       sess.Allows(domainauth.RequireRole(domainauth.RoleAuthor)),
	}
	if !p.User.CreatedAt.IsZero() {
		vm.MemberSince = p.User.CreatedAt.Format("January 2006")
	}
	WriteJSON(w, http.StatusOK, vm)
}
