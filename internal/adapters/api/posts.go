package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/favoriteblog/blog-ui/internal/domain/model"
)

// ImageField is the multipart field name the API expects for post images.
const ImageField = "postsImage"

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

type postsResponse struct {
	Posts      []model.Post   `json:"posts"`
	Pagination model.PageInfo `json:"pagination"`
}

type postResponse struct {
	Post model.Post `json:"post"`
}

// ListPosts calls GET /posts.
func (c *Client) ListPosts(ctx context.Context, q model.PostQuery) (model.Page[model.Post], error) {
	query := pageQuery(q.Page, q.Limit)
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.Category != "" {
		query.Set("category", q.Category)
	}
	return c.postPage(ctx, request{method: http.MethodGet, path: "/posts", query: query, auth: authOptional})
}

// FeaturedPosts calls GET /posts/featured/posts.
func (c *Client) FeaturedPosts(ctx context.Context) ([]model.Post, error) {
	var resp postsResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: "/posts/featured/posts", auth: authOptional}, &resp); err != nil {
		return nil, err
	}
	return resp.Posts, nil
}

// GetPost calls GET /posts/{id}.
func (c *Client) GetPost(ctx context.Context, id string) (model.Post, error) {
	var resp postResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: idPath("/posts", id), auth: authOptional}, &resp); err != nil {
		return model.Post{}, err
	}
	return resp.Post, nil
}

// CreatePost calls POST /posts with a multipart form.
func (c *Client) CreatePost(ctx context.Context, in model.PostInput) (model.Post, error) {
	return c.sendPost(ctx, http.MethodPost, "/posts", in)
}

// UpdatePost calls PUT /posts/{id} with a multipart form.
func (c *Client) UpdatePost(ctx context.Context, id string, in model.PostInput) (model.Post, error) {
	return c.sendPost(ctx, http.MethodPut, idPath("/posts", id), in)
}

// DeletePost calls DELETE /posts/{id}.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: idPath("/posts", id), auth: authRequired}, nil)
}

// DeletePostImage calls DELETE /posts/{id}/image.
func (c *Client) DeletePostImage(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: idPath("/posts", id, "image"), auth: authRequired}, nil)
}

// MyPosts calls GET /posts/user/my-posts.
func (c *Client) MyPosts(ctx context.Context, page, limit int) (model.Page[model.Post], error) {
	return c.postPage(ctx, request{
		method: http.MethodGet,
		path:   "/posts/user/my-posts",
		query:  pageQuery(page, limit),
		auth:   authRequired,
	})
}

// Categories calls GET /categories.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var resp struct {
		Categories []model.Category `json:"categories"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/categories", auth: authNone}, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

func (c *Client) postPage(ctx context.Context, req request) (model.Page[model.Post], error) {
	var resp postsResponse
	if err := c.do(ctx, req, &resp); err != nil {
		return model.Page[model.Post]{}, err
	}
	return model.Page[model.Post]{Items: resp.Posts, Pagination: resp.Pagination}, nil
}

func (c *Client) sendPost(ctx context.Context, method, path string, in model.PostInput) (model.Post, error) {
	body, contentType, err := encodePostForm(in)
	if err != nil {
		return model.Post{}, err
	}
	var resp postResponse
	err = c.do(ctx, request{method: method, path: path, body: body, contentType: contentType, auth: authRequired}, &resp)
	if err != nil {
		return model.Post{}, err
	}
	return resp.Post, nil
}

// encodePostForm builds the multipart body. Images are capped by validation, so buffering is fine.
func encodePostForm(in model.PostInput) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"title", in.Title},
		{"content", in.Content},
		{"excerpt", in.Excerpt},
		{"tags", in.Tags},
		{"published", strconv.FormatBool(in.Published)},
		{"categoryId", in.CategoryID},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("write form field %s: %w", f[0], err)
		}
	}

	if in.Image != nil && in.Image.Body != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, ImageField, quoteEscaper.Replace(in.Image.Filename)))
		h.Set("Content-Type", in.Image.ContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := io.Copy(part, in.Image.Body); err != nil {
			return nil, "", fmt.Errorf("copy image: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
