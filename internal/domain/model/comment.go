//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// Comment is a reader comment on a post. Unapproved comments await moderation.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Approved  bool      `json:"approved"`
	PostID    string    `json:"postId"`
	Post      *Post     `json:"post,omitempty"`
	AuthorID  string    `json:"authorId"`
	Author    *Author   `json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CountPending returns how many comments still await approval.
func CountPending(comments []Comment) int {
	n := 0
	for _, c := range comments {
		if !c.Approved {
			n++
		}
	}
	return n
}

// OwnerID returns the id of the comment's author.
func (c Comment) OwnerID() string {
	if c.AuthorID != "" {
		return c.AuthorID
	}
	if c.Author != nil {
		return c.Author.ID
	}
	return ""
}
