package api

import (
	"context"
	"net/http"

	domainauth "github.com/favoriteblog/blog-ui/internal/domain/auth"
	"github.com/favoriteblog/blog-ui/internal/domain/model"
)

// ListUsers calls GET /users.
func (c *Client) ListUsers(ctx context.Context, q model.UserQuery) (model.Page[model.User], error) {
	query := pageQuery(q.Page, q.Limit)
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.Role != "" {
		query.Set("role", string(q.Role))
	}
	var resp struct {
		Users      []model.User   `json:"users"`
		Pagination model.PageInfo `json:"pagination"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/users", query: query, auth: authRequired}, &resp); err != nil {
		return model.Page[model.User]{}, err
	}
	return model.Page[model.User]{Items: resp.Users, Pagination: resp.Pagination}, nil
}

// UserStats calls GET /users/stats.
func (c *Client) UserStats(ctx context.Context) (model.UserStats, error) {
	var resp struct {
		Stats model.UserStats `json:"stats"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/users/stats", auth: authRequired}, &resp); err != nil {
		return model.UserStats{}, err
	}
	return resp.Stats, nil
}

// UpdateUserRole calls PATCH /users/{id}/role.
func (c *Client) UpdateUserRole(ctx context.Context, id string, role domainauth.Role) error {
	req, err := jsonRequest(http.MethodPatch, idPath("/users", id, "role"), map[string]string{"role": string(role)}, authRequired)
	if err != nil {
		return err
	}
	return c.do(ctx, req, nil)
}

// DeleteUser calls DELETE /users/{id}.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: idPath("/users", id), auth: authRequired}, nil)
}
