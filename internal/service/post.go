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

// PostServiceOptions groups dependencies for PostService.
type PostServiceOptions struct {
	API           ports.PostsAPI      // Required
	Sessions      ports.SessionReader // Required
	Logger        *slog.Logger
	PageSize      int
	MaxImageBytes int64
}

// PostService reads the public feed and lets authors manage their posts.
type PostService struct {
	api           ports.PostsAPI
	sessions      ports.SessionReader
	logger        *slog.Logger
	pageSize      int
	maxImageBytes int64
}

// NewPostService constructs a PostService.
func NewPostService(opts PostServiceOptions) *PostService {
	if opts.API == nil {
		panic("PostsAPI is required")
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
	maxImage := opts.MaxImageBytes
	if maxImage <= 0 {
		maxImage = DefaultMaxImageBytes
	}
	return &PostService{
		api:           opts.API,
		sessions:      opts.Sessions,
		logger:        logger.With("component", "posts"),
		pageSize:      pageSize,
		maxImageBytes: maxImage,
	}
}

// Feed returns one page of published posts.
func (s *PostService) Feed(ctx context.Context, q model.PostQuery) (model.Page[model.Post], error) {
	q.Page = pageOrFirst(q.Page)
	if q.Limit <= 0 {
		q.Limit = s.pageSize
	}
	q.Search = strings.TrimSpace(q.Search)
	return s.api.ListPosts(ctx, q)
}

// Featured returns the featured posts shown above the feed.
func (s *PostService) Featured(ctx context.Context) ([]model.Post, error) {
	return s.api.FeaturedPosts(ctx)
}

// Get returns one post.
func (s *PostService) Get(ctx context.Context, id string) (model.Post, error) {
	if strings.TrimSpace(id) == "" {
		return model.Post{}, apperrors.ValidationField("id", "Post id is required")
	}
	return s.api.GetPost(ctx, id)
}

// Categories lists the categories offered by the post form and feed filter.
func (s *PostService) Categories(ctx context.Context) ([]model.Category, error) {
	return s.api.Categories(ctx)
}

// MyPosts lists the current author's posts, drafts included.
func (s *PostService) MyPosts(ctx context.Context, page int) (model.Page[model.Post], error) {
	if _, err := authorize(s.sessions, domainauth.RequireRole(domainauth.RoleAuthor)); err != nil {
		return model.Page[model.Post]{}, err
	}
	return s.api.MyPosts(ctx, pageOrFirst(page), s.pageSize)
}

// Create publishes or drafts a new post.
func (s *PostService) Create(ctx context.Context, in model.PostInput) (model.Post, error) {
	if _, err := authorize(s.sessions, domainauth.RequireRole(domainauth.RoleAuthor)); err != nil {
		return model.Post{}, err
	}
	if err := s.validate(in); err != nil {
		return model.Post{}, err
	}
	post, err := s.api.CreatePost(ctx, in)
	if err != nil {
		return model.Post{}, fmt.Errorf("create post: %w", err)
	}
	s.logger.InfoContext(ctx, "post created", "post_id", post.ID, "published", post.Published)
	return post, nil
}

// Update edits a post owned by the current author (or any post for ADMIN).
func (s *PostService) Update(ctx context.Context, id string, in model.PostInput) (model.Post, error) {
	if err := s.authorizePost(ctx, id); err != nil {
		return model.Post{}, err
	}
	if err := s.validate(in); err != nil {
		return model.Post{}, err
	}
	post, err := s.api.UpdatePost(ctx, id, in)
	if err != nil {
		return model.Post{}, fmt.Errorf("update post %s: %w", id, err)
	}
	s.logger.InfoContext(ctx, "post updated", "post_id", id)
	return post, nil
}

// Delete removes a post.
func (s *PostService) Delete(ctx context.Context, id string) error {
	if err := s.authorizePost(ctx, id); err != nil {
		return err
	}
	if err := s.api.DeletePost(ctx, id); err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	s.logger.InfoContext(ctx, "post deleted", "post_id", id)
	return nil
}

// RemoveImage detaches the cover image from a post.
func (s *PostService) RemoveImage(ctx context.Context, id string) error {
	if err := s.authorizePost(ctx, id); err != nil {
		return err
	}
	if err := s.api.DeletePostImage(ctx, id); err != nil {
		return fmt.Errorf("remove image from post %s: %w", id, err)
	}
	return nil
}

// authorizePost checks the role first so readers never trigger a fetch, then ownership.
func (s *PostService) authorizePost(ctx context.Context, id string) error {
	if _, err := authorize(s.sessions, domainauth.RequireRole(domainauth.RoleAuthor)); err != nil {
		return err
	}
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return authorizeOwner(s.sessions, domainauth.RequireRole(domainauth.RoleAuthor), post.OwnerID())
}

func (s *PostService) validate(in model.PostInput) error {
	if err := validation.Post(in.Title, in.Content, in.CategoryID); err != nil {
		return err
	}
	if in.Image != nil {
		return validation.Image(in.Image.ContentType, in.Image.Size, s.maxImageBytes)
	}
	return nil
}
