// Package testutil provides fixtures and helpers shared by the blog-ui tests.
package testutil

import (
	"time"

	"github.com/favoriteblog/blog-ui/internal/domain/model"
)

// PostBuilder provides a fluent interface for building model.Post fixtures.
type PostBuilder struct {
	post model.Post
}

// NewPost returns a published post by user-2 created at TestTime.
func NewPost(id string) *PostBuilder {
	return &PostBuilder{post: model.Post{
		ID:        id,
		Title:     "Post " + id,
		Content:   "Content of " + id,
		Published: true,
		AuthorID:  "user-2",
		Author:    &model.Author{ID: "user-2", Name: "Author User"},
		CreatedAt: TestTime(),
		UpdatedAt: TestTime(),
	}}
}

// WithTitle sets the title.
func (b *PostBuilder) WithTitle(title string) *PostBuilder {
	b.post.Title = title
	return b
}

// ByAuthor sets the author id and embedded author.
func (b *PostBuilder) ByAuthor(id, name string) *PostBuilder {
	b.post.AuthorID = id
	b.post.Author = &model.Author{ID: id, Name: name}
	return b
}

// Draft marks the post unpublished.
func (b *PostBuilder) Draft() *PostBuilder {
	b.post.Published = false
	return b
}

// Featured marks the post featured.
func (b *PostBuilder) Featured() *PostBuilder {
	b.post.Featured = true
	return b
}

// InCategory attaches a category.
func (b *PostBuilder) InCategory(id, name string) *PostBuilder {
	b.post.CategoryID = id
	b.post.Category = &model.Category{ID: id, Name: name}
	return b
}

// CreatedAt sets both timestamps.
func (b *PostBuilder) CreatedAt(t time.Time) *PostBuilder {
	b.post.CreatedAt = t
	b.post.UpdatedAt = t
	return b
}

// Build returns the post.
func (b *PostBuilder) Build() model.Post {
	return b.post
}

// CommentBuilder provides a fluent interface for building model.Comment fixtures.
type CommentBuilder struct {
	comment model.Comment
}

// NewComment returns an approved comment by user-3 on postID.
func NewComment(id, postID string) *CommentBuilder {
	return &CommentBuilder{comment: model.Comment{
		ID:        id,
		Content:   "Comment " + id,
		Approved:  true,
		PostID:    postID,
		AuthorID:  "user-3",
		Author:    &model.Author{ID: "user-3", Name: "Reader User"},
		CreatedAt: TestTime(),
	}}
}

// Pending marks the comment as awaiting moderation.
func (b *CommentBuilder) Pending() *CommentBuilder {
	b.comment.Approved = false
	return b
}

// WithContent sets the text.
func (b *CommentBuilder) WithContent(content string) *CommentBuilder {
	b.comment.Content = content
	return b
}

// Build returns the comment.
func (b *CommentBuilder) Build() model.Comment {
	return b.comment
}

// PageOf wraps items in a single page.
func PageOf[T any](items ...T) model.Page[T] {
	return model.Page[T]{
		Items:      items,
		Pagination: model.PageInfo{Current: 1, TotalPages: 1, TotalItems: len(items)},
	}
}
