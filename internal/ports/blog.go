package ports

import (
	"context"

	domainauth "github.com/favoriteblog/blog-ui/internal/domain/auth"
	"github.com/favoriteblog/blog-ui/internal/domain/model"
)

// PostsAPI covers the /posts and /categories endpoints.
type PostsAPI interface {
	ListPosts(ctx context.Context, q model.PostQuery) (model.Page[model.Post], error)
	FeaturedPosts(ctx context.Context) ([]model.Post, error)
	GetPost(ctx context.Context, id string) (model.Post, error)
	CreatePost(ctx context.Context, in model.PostInput) (model.Post, error)
	UpdatePost(ctx context.Context, id string, in model.PostInput) (model.Post, error)
	DeletePost(ctx context.Context, id string) error
	DeletePostImage(ctx context.Context, id string) error
	MyPosts(ctx context.Context, page, limit int) (model.Page[model.Post], error)
	Categories(ctx context.Context) ([]model.Category, error)
}

// CommentsAPI covers the /comments endpoints.
type CommentsAPI interface {
	PostComments(ctx context.Context, postID string, page, limit int) (model.Page[model.Comment], error)
	CreateComment(ctx context.Context, postID, content string) (model.Comment, error)
	UpdateComment(ctx context.Context, id, content string) (model.Comment, error)
	ApproveComment(ctx context.Context, id string) error
	DeleteComment(ctx context.Context, id string) error
	MyComments(ctx context.Context, page, limit int) (model.Page[model.Comment], error)
	PendingComments(ctx context.Context) ([]model.Comment, error)
}

// UsersAPI covers the admin /users endpoints.
type UsersAPI interface {
	ListUsers(ctx context.Context, q model.UserQuery) (model.Page[model.User], error)
	UserStats(ctx context.Context) (model.UserStats, error)
	UpdateUserRole(ctx context.Context, id string, role domainauth.Role) error
	DeleteUser(ctx context.Context, id string) error
}

// BlogAPI is every content endpoint the front end uses.
type BlogAPI interface {
	PostsAPI
	CommentsAPI
	UsersAPI
}

// SessionReader exposes the current session snapshot to content services.
type SessionReader interface {
	Session() domainauth.Session
}
