package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	domainauth "github.com/favoriteblog/blog-ui/internal/domain/auth"
	"github.com/favoriteblog/blog-ui/internal/domain/model"
	apperrors "github.com/favoriteblog/blog-ui/internal/errors"
	"github.com/favoriteblog/blog-ui/internal/ports"
)

// AdminServiceOptions groups dependencies for AdminService.
type AdminServiceOptions struct {
	Users    ports.UsersAPI      // Required
	Comments ports.CommentsAPI   // Required
	Sessions ports.SessionReader // Required
	Logger   *slog.Logger
	PageSize int
}

// AdminService backs the admin panel. Every method requires the ADMIN role.
type AdminService struct {
	users    ports.UsersAPI
	comments ports.CommentsAPI
	sessions ports.SessionReader
	logger   *slog.Logger
	pageSize int
}

// AdminOverview is everything the admin panel shows on first load.
type AdminOverview struct {
	Stats   model.UserStats
	Users   model.Page[model.User]
	Pending []model.Comment
}

// NewAdminService constructs an AdminService.
func NewAdminService(opts AdminServiceOptions) *AdminService {
	if opts.Users == nil || opts.Comments == nil {
		panic("UsersAPI and CommentsAPI are required")
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
	return &AdminService{
		users:    opts.Users,
		comments: opts.Comments,
		sessions: opts.Sessions,
		logger:   logger.With("component", "admin"),
		pageSize: pageSize,
	}
}

func (s *AdminService) authorize() (domainauth.Session, error) {
	return authorize(s.sessions, domainauth.RequireRole(domainauth.RoleAdmin))
}

// Users lists accounts, optionally filtered by search text and role.
func (s *AdminService) Users(ctx context.Context, q model.UserQuery) (model.Page[model.User], error) {
	if _, err := s.authorize(); err != nil {
		return model.Page[model.User]{}, err
	}
	q.Page = pageOrFirst(q.Page)
	if q.Limit <= 0 {
		q.Limit = s.pageSize
	}
	if q.Role != "" && !q.Role.Valid() {
		return model.Page[model.User]{}, apperrors.ValidationField("role", "Invalid role filter")
	}
	return s.users.ListUsers(ctx, q)
}

// Stats returns the user, post and comment totals.
func (s *AdminService) Stats(ctx context.Context) (model.UserStats, error) {
	if _, err := s.authorize(); err != nil {
		return model.UserStats{}, err
	}
	return s.users.UserStats(ctx)
}

// UpdateRole changes a user's role. role is parsed case-insensitively.
func (s *AdminService) UpdateRole(ctx context.Context, userID, role string) (domainauth.Role, error) {
	if _, err := s.authorize(); err != nil {
		return "", err
	}
	parsed, err := domainauth.ParseRole(role)
	if err != nil {
		return "", apperrors.ValidationField("role", "Please select a valid role")
	}
	if err := s.users.UpdateUserRole(ctx, userID, parsed); err != nil {
		return "", fmt.Errorf("update role for user %s: %w", userID, err)
	}
	s.logger.InfoContext(ctx, "user role updated", "user_id", userID, "role", string(parsed))
	return parsed, nil
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (s *AdminService) DeleteUser(ctx context.Context, userID string) error {
	sess, err := s.authorize()
	if err != nil {
		return err
	}
	if sess.Identity.ID == userID {
		return apperrors.ValidationField("id", "You cannot delete your own account")
	}
	if err := s.users.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("delete user %s: %w", userID, err)
	}
	s.logger.InfoContext(ctx, "user deleted", "user_id", userID)
	return nil
}

// PendingComments lists comments awaiting moderation.
func (s *AdminService) PendingComments(ctx context.Context) ([]model.Comment, error) {
	if _, err := s.authorize(); err != nil {
		return nil, err
	}
	return s.comments.PendingComments(ctx)
}

// Moderate approves a pending comment, or deletes it when approve is false.
func (s *AdminService) Moderate(ctx context.Context, commentID string, approve bool) error {
	if _, err := s.authorize(); err != nil {
		return err
	}
	if approve {
		if err := s.comments.ApproveComment(ctx, commentID); err != nil {
			return fmt.Errorf("approve comment %s: %w", commentID, err)
		}
	} else if err := s.comments.DeleteComment(ctx, commentID); err != nil {
		return fmt.Errorf("reject comment %s: %w", commentID, err)
	}
	s.logger.InfoContext(ctx, "comment moderated", "comment_id", commentID, "approved", approve)
	return nil
}

// Overview loads stats, the first user page and the moderation queue concurrently.
func (s *AdminService) Overview(ctx context.Context, q model.UserQuery) (AdminOverview, error) {
	if _, err := s.authorize(); err != nil {
		return AdminOverview{}, err
	}

	var out AdminOverview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.users.UserStats(gctx)
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}
		out.Stats = stats
		return nil
	})
	g.Go(func() error {
		users, err := s.Users(gctx, q)
		if err != nil {
			return fmt.Errorf("load users: %w", err)
		}
		out.Users = users
		return nil
	})
	g.Go(func() error {
		pending, err := s.comments.PendingComments(gctx)
		if err != nil {
			return fmt.Errorf("load pending comments: %w", err)
		}
		out.Pending = pending
		return nil
	})
	if err := g.Wait(); err != nil {
		return AdminOverview{}, err
	}
	return out, nil
}
