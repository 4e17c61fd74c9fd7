package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	domainauth "github.com/favoriteblog/blog-ui/internal/domain/auth"
	"github.com/favoriteblog/blog-ui/internal/domain/model"
	"github.com/favoriteblog/blog-ui/internal/http/ui/viewmodel"
	"github.com/favoriteblog/blog-ui/internal/http/uiutil"
	"github.com/favoriteblog/blog-ui/internal/service"
)

// SessionManager is the session store as seen by the HTTP layer.
type SessionManager interface {
	Session() domainauth.Session
	Login(ctx context.Context, email, password string) (domainauth.Identity, error)
	Register(ctx context.Context, email, password, name string) (domainauth.Identity, error)
	Logout(ctx context.Context)
	Refresh(ctx context.Context) (domainauth.Session, error)
}

// UIHandlers serves the page view models and form endpoints.
type UIHandlers struct {
	Sessions  SessionManager
	Posts     *service.PostService
	Comments  *service.CommentService
	Admin     *service.AdminService
	Dashboard *service.DashboardService

	MaxVisiblePages int
	MaxUploadBytes  int64
	Logger          *slog.Logger
	Now             func() time.Time
}

// session returns the snapshot the request was authorized with.
func (h *UIHandlers) session(r *http.Request) domainauth.Session {
	if s, ok := GetSessionFromContext(r.Context()); ok {
		return s
	}
	return h.Sessions.Session()
}

func (h *UIHandlers) layout(r *http.Request, title, page string) viewmodel.Layout {
	l := viewmodel.NewLayout(title, page, h.session(r))
	l.Flash = r.URL.Query().Get("flash")
	l.CSRFToken = GetCSRFToken(r)
	return l
}

func (h *UIHandlers) pagination(info model.PageInfo, r *http.Request) viewmodel.Pagination {
	return viewmodel.NewPagination(info, h.MaxVisiblePages, r.URL.Path, r.URL.Query())
}

func (h *UIHandlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *UIHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	RenderError(w, r, err, h.Logger)
}

// done finishes a form submission: JSON callers get payload, everyone else a 303 to target.
func (h *UIHandlers) done(w http.ResponseWriter, r *http.Request, target string, payload any) {
	if wantsJSON(r) {
		WriteJSON(w, http.StatusOK, payload)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// parseIntQuery returns the integer value of a query param or a default.
// It is tolerant of missing/invalid values.
func parseIntQuery(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// PostView is a post decorated for display.
type PostView struct {
	model.Post
	Summary      string `json:"summary"`
	Initials     string `json:"initials"`
	PublishedAgo string `json:"publishedAgo"`
	Date         string `json:"date"`
	CanEdit      bool   `json:"canEdit"`
}

const summaryLength = 150

func (h *UIHandlers) postView(p model.Post, s domainauth.Session) PostView {
	summary := p.Excerpt
	if summary == "" {
		summary = uiutil.TruncateWithEllipsis(p.Content, summaryLength)
	}
	return PostView{
		Post:         p,
		Summary:      summary,
		Initials:     uiutil.Initials(p.Title),
		PublishedAgo: uiutil.FriendlyRelativeTime(p.CreatedAt, h.now()),
		Date:         uiutil.FormatDate(p.CreatedAt),
		CanEdit:      s.Allows(domainauth.RequireRole(domainauth.RoleAuthor)) && domainauth.CanManage(s, p.OwnerID()),
	}
}

func (h *UIHandlers) postViews(posts []model.Post, s domainauth.Session) []PostView {
	out := make([]PostView, 0, len(posts))
	for _, p := range posts {
		out = append(out, h.postView(p, s))
	}
	return out
}

// CommentView is a comment decorated for display.
type CommentView struct {
	model.Comment
	Preview   string `json:"preview"`
	Ago       string `json:"ago"`
	CanDelete bool   `json:"canDelete"`
}

const commentPreviewLength = 100

func (h *UIHandlers) commentViews(comments []model.Comment, s domainauth.Session) []CommentView {
	out := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		out = append(out, CommentView{
			Comment:   c,
			Preview:   uiutil.TruncateWithEllipsis(c.Content, commentPreviewLength),
			Ago:       uiutil.FriendlyRelativeTime(c.CreatedAt, h.now()),
			CanDelete: domainauth.CanManage(s, c.OwnerID()),
		})
	}
	return out
}
