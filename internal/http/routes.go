package httpx

import (
	"log/slog"
	"net/http"
	"time"

	domainauth "github.com/favoriteblog/blog-ui/internal/domain/auth"
	"github.com/favoriteblog/blog-ui/internal/http/ui/viewmodel"
	"github.com/favoriteblog/blog-ui/internal/ports"
	"github.com/favoriteblog/blog-ui/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Sessions  SessionManager
	Posts     *service.PostService
	Comments  *service.CommentService
	Admin     *service.AdminService
	Dashboard *service.DashboardService

	// MaxVisiblePages is the pager window size (default 5).
	MaxVisiblePages int
	// MaxUploadBytes is the cover image limit advertised by the post form.
	MaxUploadBytes int64
	Logger         *slog.Logger
	Now            func() time.Time
}

// NewRouter creates the router. Every page route goes through RequireAccess or
// WithSession so the handler sees one session snapshot for the whole request.
func NewRouter(services RouterServices) http.Handler {
	if services.Sessions == nil {
		panic("SessionManager is required")
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxVisible := services.MaxVisiblePages
	if maxVisible <= 0 {
		maxVisible = viewmodel.DefaultMaxVisible
	}
	maxUpload := services.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = service.DefaultMaxImageBytes
	}

	h := &UIHandlers{
		Sessions:        services.Sessions,
		Posts:           services.Posts,
		Comments:        services.Comments,
		Admin:           services.Admin,
		Dashboard:       services.Dashboard,
		MaxVisiblePages: maxVisible,
		MaxUploadBytes:  maxUpload,
		Logger:          logger.With("component", "http"),
		Now:             services.Now,
	}

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", healthHandler(services.Sessions))
	mux.Handle("HEAD /healthz", healthHandler(services.Sessions))

	registerPublicRoutes(mux, h, services.Sessions)
	registerAuthorRoutes(mux, h, services.Sessions)
	registerAdminRoutes(mux, h, services.Sessions)
	registerAccountRoutes(mux, h, services.Sessions)

	return mux
}

func registerPublicRoutes(mux *http.ServeMux, h *UIHandlers, sessions ports.SessionReader) {
	public := WithSession(sessions)

	mux.Handle("GET /{$}", public(http.HandlerFunc(h.Home)))
	mux.Handle("GET /post/{id}", public(http.HandlerFunc(h.PostDetail)))
	mux.Handle("GET /login", public(http.HandlerFunc(h.LoginPage)))
	mux.Handle("GET /register", public(http.HandlerFunc(h.RegisterPage)))
	mux.Handle("GET /api/session", public(http.HandlerFunc(h.SessionState)))

	mux.Handle("POST /login", http.HandlerFunc(h.Login))
	mux.Handle("POST /register", http.HandlerFunc(h.Register))
	mux.Handle("POST /logout", http.HandlerFunc(h.Logout))
}

func registerAuthorRoutes(mux *http.ServeMux, h *UIHandlers, sessions ports.SessionReader) {
	author := RequireAccess(sessions, domainauth.RequireRole(domainauth.RoleAuthor))

	mux.Handle("GET /dashboard", author(http.HandlerFunc(h.DashboardHandler)))
	mux.Handle("GET /create-post", author(http.HandlerFunc(h.CreatePostPage)))
	mux.Handle("GET /edit-post/{id}", author(http.HandlerFunc(h.EditPostPage)))
	mux.Handle("POST /posts", author(http.HandlerFunc(h.CreatePost)))
	mux.Handle("POST /posts/{id}", author(http.HandlerFunc(h.UpdatePost)))
	mux.Handle("POST /posts/{id}/delete", author(http.HandlerFunc(h.DeletePost)))
}

func registerAdminRoutes(mux *http.ServeMux, h *UIHandlers, sessions ports.SessionReader) {
	admin := RequireAccess(sessions, domainauth.RequireRole(domainauth.RoleAdmin))

	mux.Handle("GET /admin", admin(http.HandlerFunc(h.AdminHandler)))
	mux.Handle("POST /admin/users/{id}/role", admin(http.HandlerFunc(h.SetUserRole)))
	mux.Handle("POST /admin/users/{id}/delete", admin(http.HandlerFunc(h.DeleteUser)))
	mux.Handle("POST /admin/comments/{id}/moderate", admin(http.HandlerFunc(h.ModerateComment)))
}

func registerAccountRoutes(mux *http.ServeMux, h *UIHandlers, sessions ports.SessionReader) {
	member := RequireAccess(sessions, domainauth.RequireAuthenticated)

	mux.Handle("GET /profile", member(http.HandlerFunc(h.ProfileHandler)))
	mux.Handle("GET /api/me", member(http.HandlerFunc(h.SessionState)))
	mux.Handle("POST /api/session/refresh", member(http.HandlerFunc(h.RefreshSession)))
	mux.Handle("POST /post/{id}/comments", member(http.HandlerFunc(h.AddComment)))
	mux.Handle("POST /comments/{id}", member(http.HandlerFunc(h.EditComment)))
	mux.Handle("POST /comments/{id}/delete", member(http.HandlerFunc(h.DeleteComment)))
}
