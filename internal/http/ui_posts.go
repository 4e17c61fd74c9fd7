package httpx

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	domainauth "github.com/favoriteblog/blog-ui/internal/domain/auth"
	"github.com/favoriteblog/blog-ui/internal/domain/model"
	apperrors "github.com/favoriteblog/blog-ui/internal/errors"
	"github.com/favoriteblog/blog-ui/internal/http/ui/viewmodel"
)

// PostImageField is the multipart field the post form uploads its cover image in.
const PostImageField = "image"

const featuredOnHome = 3

// HomePage is the public feed view model.
type HomePage struct {
	viewmodel.Layout
	Featured   []PostView           `json:"featured"`
	Posts      []PostView           `json:"posts"`
	Categories []model.Category     `json:"categories"`
	Search     string               `json:"search,omitempty"`
	Category   string               `json:"category,omitempty"`
	Pagination viewmodel.Pagination `json:"pagination"`
}

// Home renders the feed. Featured posts and categories are decoration: failures there are logged, not shown.
// Without featured posts the first few feed posts stand in.
func (h *UIHandlers) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := h.session(r)
	q := model.PostQuery{
		Page:     parseIntQuery(r, "page", 1),
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
	}
	feed, err := h.Posts.Feed(ctx, q)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	vm := HomePage{
		Layout:     h.layout(r, "FavoriteBlog", PageHome),
		Posts:      h.postViews(feed.Items, sess),
		Search:     strings.TrimSpace(q.Search),
		Category:   q.Category,
		Pagination: h.pagination(feed.Pagination, r),
	}
	if featured, err := h.Posts.Featured(ctx); err != nil {
		h.Logger.WarnContext(ctx, "load featured posts failed", "error", err)
		// Fall back to the head of the feed when it can fill the strip.
		if len(feed.Items) >= featuredOnHome {
			vm.Featured = vm.Posts[:featuredOnHome]
		}
	} else {
		vm.Featured = h.postViews(featured[:min(len(featured), featuredOnHome)], sess)
	}
	if cats, err := h.Posts.Categories(ctx); err != nil {
		h.Logger.WarnContext(ctx, "load categories failed", "error", err)
	} else {
		vm.Categories = cats
	}
	WriteJSON(w, http.StatusOK, vm)
}

// PostPage is the post detail view model.
type PostPage struct {
	viewmodel.Layout
	Post       PostView             `json:"post"`
	Comments   []CommentView        `json:"comments"`
	Pagination viewmodel.Pagination `json:"pagination"`
	CanComment bool                 `json:"canComment"`
}

// PostDetail renders one post with a page of its comments.
func (h *UIHandlers) PostDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := h.session(r)
	id := r.PathValue("id")

	post, err := h.Posts.Get(ctx, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	comments, err := h.Comments.ForPost(ctx, id, parseIntQuery(r, "page", 1))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, PostPage{
		Layout:     h.layout(r, post.Title, PagePost),
		Post:       h.postView(post, sess),
		Comments:   h.commentViews(comments.Items, sess),
		Pagination: h.pagination(comments.Pagination, r),
		CanComment: sess.Allows(domainauth.RequireAuthenticated),
	})
}

// PostFormPage is the create/edit post view model.
type PostFormPage struct {
	viewmodel.Layout
	Mode          FormMode         `json:"mode"`
	Post          *PostView        `json:"post,omitempty"`
	Categories    []model.Category `json:"categories"`
	MaxImageBytes int64            `json:"maxImageBytes"`
}

// CreatePostPage renders the empty post form.
func (h *UIHandlers) CreatePostPage(w http.ResponseWriter, r *http.Request) {
	cats, err := h.Posts.Categories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, PostFormPage{
		Layout:        h.layout(r, "Create Post", PagePostForm),
		Mode:          FormModeCreate,
		Categories:    cats,
		MaxImageBytes: h.MaxUploadBytes,
	})
}

// EditPostPage renders the post form filled in. Visitors who cannot manage the post go back to the dashboard.
func (h *UIHandlers) EditPostPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := h.session(r)
	post, err := h.Posts.Get(ctx, r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !domainauth.CanManage(sess, post.OwnerID()) {
		http.Redirect(w, r, PathDashboard, http.StatusFound)
		return
	}
	cats, err := h.Posts.Categories(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	view := h.postView(post, sess)
	WriteJSON(w, http.StatusOK, PostFormPage{
		Layout:        h.layout(r, "Edit Post", PagePostForm),
		Mode:          FormModeEdit,
		Post:          &view,
		Categories:    cats,
		MaxImageBytes: h.MaxUploadBytes,
	})
}

// CreatePost handles the multipart post form.
func (h *UIHandlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	in, cleanup, err := h.parsePostForm(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	defer cleanup()

	post, err := h.Posts.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.done(w, r, PathDashboard, map[string]any{"post": post})
}

// UpdatePost handles the edit form. removeImage=true detaches the current cover first.
func (h *UIHandlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")
	in, cleanup, err := h.parsePostForm(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	defer cleanup()

	if remove, _ := strconv.ParseBool(r.FormValue("removeImage")); remove && in.Image == nil {
		if err := h.Posts.RemoveImage(ctx, id); err != nil {
			h.fail(w, r, err)
			return
		}
	}
	post, err := h.Posts.Update(ctx, id, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.done(w, r, PathDashboard, map[string]any{"post": post})
}

// DeletePost removes a post.
func (h *UIHandlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Posts.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.done(w, r, PathDashboard, map[string]string{"deleted": id})
}

// parsePostForm reads a urlencoded or multipart post form. The returned cleanup
// releases any temporary upload files.
func (h *UIHandlers) parsePostForm(r *http.Request) (model.PostInput, func(), error) {
	noop := func() {}
	limit := h.MaxUploadBytes + 1<<20
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(limit); err != nil {
			return model.PostInput{}, noop, apperrors.Validation("Invalid form submission")
		}
	} else if err := r.ParseForm(); err != nil {
		return model.PostInput{}, noop, apperrors.Validation("Invalid form submission")
	}

	published, _ := strconv.ParseBool(r.FormValue("published"))
	in := model.PostInput{
		Title:      strings.TrimSpace(r.FormValue("title")),
		Content:    strings.TrimSpace(r.FormValue("content")),
		Excerpt:    strings.TrimSpace(r.FormValue("excerpt")),
		Tags:       strings.TrimSpace(r.FormValue("tags")),
		Published:  published,
		CategoryID: r.FormValue("categoryId"),
	}

	if r.MultipartForm == nil {
		return in, noop, nil
	}
	cleanup := func() { _ = r.MultipartForm.RemoveAll() }
	file, hdr, err := r.FormFile(PostImageField)
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return in, cleanup, nil
	case err != nil:
		return in, cleanup, apperrors.ValidationField(PostImageField, "Could not read the uploaded image")
	}
	in.Image = imageUpload(file, hdr)
	return in, func() { _ = file.Close(); cleanup() }, nil
}

func imageUpload(file multipart.File, hdr *multipart.FileHeader) *model.ImageUpload {
	return &model.ImageUpload{
		Filename:    hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Size:        hdr.Size,
		Body:        file,
	}
}

// AddComment posts a comment on the post in the path.
func (h *UIHandlers) AddComment(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, apperrors.Validation("Invalid form submission"))
		return
	}
	c, err := h.Comments.Add(r.Context(), postID, r.PostForm.Get("content"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	target := "/post/" + url.PathEscape(postID)
	if !c.Approved {
		target += "?flash=" + url.QueryEscape("Comment submitted for approval")
	}
	h.done(w, r, target, map[string]any{"comment": c})
}

// listedComment finds comment id on the post page named by the form (postId, page),
// so ownership is checked against the comment as the API returned it.
func (h *UIHandlers) listedComment(r *http.Request, id string) (model.Comment, error) {
	if err := r.ParseForm(); err != nil {
		return model.Comment{}, apperrors.Validation("Invalid form submission")
	}
	page, _ := strconv.Atoi(r.PostForm.Get("page"))
	listing, err := h.Comments.ForPost(r.Context(), r.PostForm.Get("postId"), page)
	if err != nil {
		return model.Comment{}, err
	}
	for _, c := range listing.Items {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Comment{}, apperrors.NotFound("Comment not found")
}

// EditComment replaces the text of a comment.
func (h *UIHandlers) EditComment(w http.ResponseWriter, r *http.Request) {
	c, err := h.listedComment(r, r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	updated, err := h.Comments.Edit(r.Context(), c, r.PostForm.Get("content"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.done(w, r, "/post/"+url.PathEscape(r.PostForm.Get("postId")), map[string]any{"comment": updated})
}

// DeleteComment removes a comment.
func (h *UIHandlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	c, err := h.listedComment(r, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Comments.Delete(r.Context(), c); err != nil {
		h.fail(w, r, err)
		return
	}
	h.done(w, r, "/post/"+url.PathEscape(r.PostForm.Get("postId")), map[string]string{"deleted": id})
}
