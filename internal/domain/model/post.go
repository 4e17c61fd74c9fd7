//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"io"
	"time"
)

// Author is the embedded author summary the API returns with posts and comments.
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Category groups posts.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug,omitempty"`
	PostCount int    `json:"postCount,omitempty"`
}

// Post is a blog post as returned by the API.
type Post struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Excerpt    string    `json:"excerpt,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	Image      string    `json:"image,omitempty"`
	Published  bool      `json:"published"`
	Featured   bool      `json:"featured,omitempty"`
	AuthorID   string    `json:"authorId"`
	Author     *Author   `json:"author,omitempty"`
	CategoryID string    `json:"categoryId,omitempty"`
	Category   *Category `json:"category,omitempty"`
	Views      int       `json:"views,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// PostQuery filters the public feed.
type PostQuery struct {
	Page     int
	Limit    int
	Search   string
	Category string
}

// ImageUpload is an opaque file attached to a post form.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// PostInput carries the create/edit post form.
type PostInput struct {
	Title      string
	Content    string
	Excerpt    string
	Tags       string // comma separated, sent as typed
	Published  bool
	CategoryID string
	Image      *ImageUpload
}

// PostStats summarizes a page of the current author's posts.
type PostStats struct {
	Total     int `json:"total"`
	Published int `json:"published"`
	Drafts    int `json:"drafts"`
}

// CountPosts computes published/draft counts over posts; total is supplied by the caller
// because the API reports it independently of the page.
func CountPosts(posts []Post, total int) PostStats {
	stats := PostStats{Total: total}
	for _, p := range posts {
		if p.Published {
			stats.Published++
		} else {
			stats.Drafts++
		}
	}
	return stats
}

// OwnerID returns the id of the post's author from whichever field the API populated.
func (p Post) OwnerID() string {
	if p.AuthorID != "" {
		return p.AuthorID
	}
	if p.Author != nil {
		return p.Author.ID
	}
	return ""
}
