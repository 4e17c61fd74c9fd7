package config

import "time"

const (
	defaultPostsPerPage    = 10
	defaultCommentsPerPage = 20
	defaultMaxVisiblePages = 5
	defaultMaxImageBytes   = 5 << 20
	defaultRestoreTimeout  = 10 * time.Second
)

// UIConfig controls listing sizes, upload limits and session restore timing.
type UIConfig struct {
	PostsPerPage         int           `env:"POSTS_PER_PAGE"          envDefault:"10"`
	CommentsPerPage      int           `env:"COMMENTS_PER_PAGE"       envDefault:"20"`
	PaginationMaxVisible int           `env:"PAGINATION_MAX_VISIBLE"  envDefault:"5"`
	MaxImageBytes        int64         `env:"MAX_IMAGE_BYTES"         envDefault:"5242880"`
	RestoreTimeout       time.Duration `env:"SESSION_RESTORE_TIMEOUT" envDefault:"10s"`
}

// Sanitize replaces out-of-range values with defaults.
func (u *UIConfig) Sanitize() {
	if u.PostsPerPage <= 0 || u.PostsPerPage > 100 {
		u.PostsPerPage = defaultPostsPerPage
	}
	if u.CommentsPerPage <= 0 || u.CommentsPerPage > 100 {
		u.CommentsPerPage = defaultCommentsPerPage
	}
	if u.PaginationMaxVisible <= 0 {
		u.PaginationMaxVisible = defaultMaxVisiblePages
	}
	if u.MaxImageBytes <= 0 {
		u.MaxImageBytes = defaultMaxImageBytes
	}
	if u.RestoreTimeout <= 0 {
		u.RestoreTimeout = defaultRestoreTimeout
	}
}
