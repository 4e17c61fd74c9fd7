//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	domainauth "github.com/favoriteblog/blog-ui/internal/domain/auth"
)

// User is a user record in the admin panel listing.
type User struct {
	domainauth.Identity
	PostCount    int `json:"postCount,omitempty"`
	CommentCount int `json:"commentCount,omitempty"`
}

// UserQuery filters the admin user listing.
type UserQuery struct {
	Page   int
	Limit  int
	Search string
	Role   domainauth.Role
}

// UserStats is the admin dashboard summary.
type UserStats struct {
	TotalUsers       int                     `json:"totalUsers"`
	TotalPosts       int                     `json:"totalPosts"`
	TotalComments    int                     `json:"totalComments"`
	PendingComments  int                     `json:"pendingComments"`
	RoleDistribution map[domainauth.Role]int `json:"roleDistribution"`
}
