package api

import (
	"context"
	"net/http"

	domainauth "github.com/favoriteblog/blog-ui/internal/domain/auth"
	apperrors "github.com/favoriteblog/blog-ui/internal/errors"
	"github.com/favoriteblog/blog-ui/internal/ports"
)

type authResponse struct {
	User  domainauth.Identity `json:"user"`
	Token string              `json:"token"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login calls POST /auth/login. It never carries a credential.
func (c *Client) Login(ctx context.Context, in ports.LoginInput) (ports.AuthResult, error) {
	req, err := jsonRequest(http.MethodPost, "/auth/login", loginRequest(in), authNone)
	if err != nil {
		return ports.AuthResult{}, err
	}
	return c.authenticate(ctx, req)
}

// Register calls POST /auth/register.
func (c *Client) Register(ctx context.Context, in ports.RegisterInput) (ports.AuthResult, error) {
	req, err := jsonRequest(http.MethodPost, "/auth/register", registerRequest(in), authNone)
	if err != nil {
		return ports.AuthResult{}, err
	}
	return c.authenticate(ctx, req)
}

func (c *Client) authenticate(ctx context.Context, req request) (ports.AuthResult, error) {
	var resp authResponse
	if err := c.do(ctx, req, &resp); err != nil {
		return ports.AuthResult{}, err
	}
	if resp.Token == "" {
		return ports.AuthResult{}, apperrors.Internal("Authentication response did not include a token")
	}
	return ports.AuthResult{Identity: resp.User, Credential: resp.Token}, nil
}

// Me calls GET /auth/me with credential.
func (c *Client) Me(ctx context.Context, credential string) (domainauth.Identity, error) {
	if credential == "" {
		return domainauth.Identity{}, apperrors.Unauthorized("Please log in")
	}
	var resp struct {
		User domainauth.Identity `json:"user"`
	}
	err := c.do(ctx, request{method: http.MethodGet, path: "/auth/me", auth: authRequired, credential: credential}, &resp)
	if err != nil {
		return domainauth.Identity{}, err
	}
	return resp.User, nil
}

// Logout calls POST /auth/logout for credential.
func (c *Client) Logout(ctx context.Context, credential string) error {
	if credential == "" {
		return nil
	}
	return c.do(ctx, request{method: http.MethodPost, path: "/auth/logout", auth: authRequired, credential: credential}, nil)
}
