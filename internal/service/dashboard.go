package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	domainauth "github.com/favoriteblog/blog-ui/internal/domain/auth"
	"github.com/favoriteblog/blog-ui/internal/domain/model"
	"github.com/favoriteblog/blog-ui/internal/ports"
)

const (
	profileFetchLimit = 5
	profileRecent     = 3
)

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	API      ports.BlogAPI       // Required
	Sessions ports.SessionReader // Required
	Logger   *slog.Logger
	PageSize int
}

// DashboardService assembles the author dashboard and the profile page.
type DashboardService struct {
	api      ports.BlogAPI
	sessions ports.SessionReader
	logger   *slog.Logger
	pageSize int
}

// Dashboard is one page of the author's posts with counts.
type Dashboard struct {
	Posts model.Page[model.Post]
	Stats model.PostStats
}

// ProfileStats counts the user's content. Totals come from the API; the
// published, draft and pending counts cover the fetched items only.
type ProfileStats struct {
	Posts           int `json:"posts"`
	PublishedPosts  int `json:"publishedPosts"`
	DraftPosts      int `json:"draftPosts"`
	Comments        int `json:"comments"`
	PendingComments int `json:"pendingComments"`
}

// Profile is the signed-in user's profile page.
type Profile struct {
	User           domainauth.Identity
	Stats          ProfileStats
	RecentPosts    []model.Post
	RecentComments []model.Comment
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	if opts.API == nil {
		panic("BlogAPI is required")
	}
	if opts.Sessions == nil {
		panic("SessionReader is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPostsPerPage
	}
	return &DashboardService{
		api:      opts.API,
		sessions: opts.Sessions,
		logger:   logger.With("component", "dashboard"),
		pageSize: pageSize,
	}
}

// Dashboard returns page of the current author's posts and published/draft counts.
func (s *DashboardService) Dashboard(ctx context.Context, page int) (Dashboard, error) {
	if _, err := authorize(s.sessions, domainauth.RequireRole(domainauth.RoleAuthor)); err != nil {
		return Dashboard{}, err
	}
	posts, err := s.api.MyPosts(ctx, pageOrFirst(page), s.pageSize)
	if err != nil {
		return Dashboard{}, fmt.Errorf("load dashboard: %w", err)
	}
	total := posts.Pagination.TotalItems
	if total == 0 {
		total = len(posts.Items)
	}
	return Dashboard{Posts: posts, Stats: model.CountPosts(posts.Items, total)}, nil
}

// Profile loads recent posts and comments concurrently. Posts are only
// fetched for identities allowed to author them.
func (s *DashboardService) Profile(ctx context.Context) (Profile, error) {
	sess, err := authorize(s.sessions, domainauth.RequireAuthenticated)
	if err != nil {
		return Profile{}, err
	}

	out := Profile{User: sess.Identity}
	g, gctx := errgroup.WithContext(ctx)
	if sess.Allows(domainauth.RequireRole(domainauth.RoleAuthor)) {
		g.Go(func() error {
			posts, err := s.api.MyPosts(gctx, 1, profileFetchLimit)
			if err != nil {
				return fmt.Errorf("load my posts: %w", err)
			}
			counts := model.CountPosts(posts.Items, totalOf(posts.Pagination, len(posts.Items)))
			out.Stats.Posts = counts.Total
			out.Stats.PublishedPosts = counts.Published
			out.Stats.DraftPosts = counts.Drafts
			out.RecentPosts = firstN(posts.Items, profileRecent)
			return nil
		})
	}
	g.Go(func() error {
		comments, err := s.api.MyComments(gctx, 1, profileFetchLimit)
		if err != nil {
			return fmt.Errorf("load my comments: %w", err)
		}
		out.Stats.Comments = totalOf(comments.Pagination, len(comments.Items))
		for _, c := range comments.Items {
			if !c.Approved {
				out.Stats.PendingComments++
			}
		}
		out.RecentComments = firstN(comments.Items, profileRecent)
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.WarnContext(ctx, "profile load failed", "user_id", sess.Identity.ID, "error", err)
		return Profile{}, err
	}
	return out, nil
}

func totalOf(p model.PageInfo, fallback int) int {
	if p.TotalItems > 0 {
		return p.TotalItems
	}
	return fallback
}

func firstN[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
