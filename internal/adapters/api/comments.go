package api

import (
	"context"
	"net/http"

	"github.com/favoriteblog/blog-ui/internal/domain/model"
)

type commentsResponse struct {
	Comments   []model.Comment `json:"comments"`
	Pagination model.PageInfo  `json:"pagination"`
}

type commentResponse struct {
	Comment model.Comment `json:"comment"`
}

// PostComments calls GET /comments/post/{postId}.
func (c *Client) PostComments(ctx context.Context, postID string, page, limit int) (model.Page[model.Comment], error) {
	return c.commentPage(ctx, request{
		method: http.MethodGet,
		path:   idPath("/comments/post", postID),
		query:  pageQuery(page, limit),
		auth:   authOptional,
	})
}

// CreateComment calls POST /comments.
func (c *Client) CreateComment(ctx context.Context, postID, content string) (model.Comment, error) {
	req, err := jsonRequest(http.MethodPost, "/comments", map[string]string{
		"content": content,
		"postId":  postID,
	}, authRequired)
	if err != nil {
		return model.Comment{}, err
	}
	return c.comment(ctx, req)
}

// UpdateComment calls PUT /comments/{id} with new content.
func (c *Client) UpdateComment(ctx context.Context, id, content string) (model.Comment, error) {
	req, err := jsonRequest(http.MethodPut, idPath("/comments", id), map[string]string{"content": content}, authRequired)
	if err != nil {
		return model.Comment{}, err
	}
	return c.comment(ctx, req)
}

// ApproveComment calls PUT /comments/{id} marking it approved.
func (c *Client) ApproveComment(ctx context.Context, id string) error {
	req, err := jsonRequest(http.MethodPut, idPath("/comments", id), map[string]bool{"approved": true}, authRequired)
	if err != nil {
		return err
	}
	return c.do(ctx, req, nil)
}

// DeleteComment calls DELETE /comments/{id}.
func (c *Client) DeleteComment(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: idPath("/comments", id), auth: authRequired}, nil)
}

// MyComments calls GET /comments/user/my-comments.
func (c *Client) MyComments(ctx context.Context, page, limit int) (model.Page[model.Comment], error) {
	return c.commentPage(ctx, request{
		method: http.MethodGet,
		path:   "/comments/user/my-comments",
		query:  pageQuery(page, limit),
		auth:   authRequired,
	})
}

// PendingComments calls GET /comments/admin/pending.
func (c *Client) PendingComments(ctx context.Context) ([]model.Comment, error) {
	var resp commentsResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: "/comments/admin/pending", auth: authRequired}, &resp); err != nil {
		return nil, err
	}
	return resp.Comments, nil
}

func (c *Client) comment(ctx context.Context, req request) (model.Comment, error) {
	var resp commentResponse
	if err := c.do(ctx, req, &resp); err != nil {
		return model.Comment{}, err
	}
	return resp.Comment, nil
}

func (c *Client) commentPage(ctx context.Context, req request) (model.Page[model.Comment], error) {
	var resp commentsResponse
	if err := c.do(ctx, req, &resp); err != nil {
		return model.Page[model.Comment]{}, err
	}
	return model.Page[model.Comment]{Items: resp.Comments, Pagination: resp.Pagination}, nil
}
