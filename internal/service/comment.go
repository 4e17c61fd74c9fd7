package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	domainauth "github.com/favoriteblog/blog-ui/internal/domain/auth"
	"github.com/favoriteblog/blog-ui/internal/domain/model"
	apperrors "github.com/favoriteblog/blog-ui/internal/errors"
	"github.com/favoriteblog/blog-ui/internal/ports"
	"github.com/favoriteblog/blog-ui/internal/validation"
)

// CommentServiceOptions groups dependencies for CommentService.
type CommentServiceOptions struct {
	API      ports.CommentsAPI   // Required
	Sessions ports.SessionReader // Required
	Logger   *slog.Logger
	PageSize int
}

// CommentService lists comments on a post and lets signed-in users manage their own.
type CommentService struct {
	api      ports.CommentsAPI
	sessions ports.SessionReader
	logger   *slog.Logger
	pageSize int
}

// NewCommentService constructs a CommentService.
func NewCommentService(opts CommentServiceOptions) *CommentService {
	if opts.API == nil {
		panic("CommentsAPI is required")
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
		pageSize = DefaultCommentsPerPage
	}
	return &CommentService{
		api:      opts.API,
		sessions: opts.Sessions,
		logger:   logger.With("component", "comments"),
		pageSize: pageSize,
	}
}

// ForPost returns one page of approved comments on postID.
func (s *CommentService) ForPost(ctx context.Context, postID string, page int) (model.Page[model.Comment], error) {
	if strings.TrimSpace(postID) == "" {
		return model.Page[model.Comment]{}, apperrors.ValidationField("postId", "Post id is required")
	}
	return s.api.PostComments(ctx, postID, pageOrFirst(page), s.pageSize)
}

// Add posts a comment; it may need approval before it shows publicly.
func (s *CommentService) Add(ctx context.Context, postID, content string) (model.Comment, error) {
	if _, err := authorize(s.sessions, domainauth.RequireAuthenticated); err != nil {
		return model.Comment{}, err
	}
	content = strings.TrimSpace(content)
	if err := validation.Comment(content); err != nil {
		return model.Comment{}, err
	}
	c, err := s.api.CreateComment(ctx, postID, content)
	if err != nil {
		return model.Comment{}, fmt.Errorf("add comment to post %s: %w", postID, err)
	}
	s.logger.InfoContext(ctx, "comment added", "comment_id", c.ID, "post_id", postID, "approved", c.Approved)
	return c, nil
}

// Edit changes the text of c.
func (s *CommentService) Edit(ctx context.Context, c model.Comment, content string) (model.Comment, error) {
	if err := authorizeOwner(s.sessions, domainauth.RequireAuthenticated, c.OwnerID()); err != nil {
		return model.Comment{}, err
	}
	content = strings.TrimSpace(content)
	if err := validation.Comment(content); err != nil {
		return model.Comment{}, err
	}
	updated, err := s.api.UpdateComment(ctx, c.ID, content)
	if err != nil {
		return model.Comment{}, fmt.Errorf("edit comment %s: %w", c.ID, err)
	}
	return updated, nil
}

// Delete removes c when the current user owns it or is an ADMIN.
func (s *CommentService) Delete(ctx context.Context, c model.Comment) error {
	if err := authorizeOwner(s.sessions, domainauth.RequireAuthenticated, c.OwnerID()); err != nil {
		return err
	}
	if err := s.api.DeleteComment(ctx, c.ID); err != nil {
		return fmt.Errorf("delete comment %s: %w", c.ID, err)
	}
	s.logger.InfoContext(ctx, "comment deleted", "comment_id", c.ID)
	return nil
}

// Mine lists the current user's comments.
func (s *CommentService) Mine(ctx context.Context, page int) (model.Page[model.Comment], error) {
	if _, err := authorize(s.sessions, domainauth.RequireAuthenticated); err != nil {
		return model.Page[model.Comment]{}, err
	}
	return s.api.MyComments(ctx, pageOrFirst(page), s.pageSize)
}
