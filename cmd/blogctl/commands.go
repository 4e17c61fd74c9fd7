package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	domainauth "github.com/favoriteblog/blog-ui/internal/domain/auth"
	"github.com/favoriteblog/blog-ui/internal/domain/model"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

// readPassword takes the password from the flag or, when empty, the first line of in.
func readPassword(flagValue string, in io.Reader, out io.Writer) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if in == nil {
		return "", errors.New("--password is required")
	}
	if err := writef(out, "Password: "); err != nil {
		return "", err
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogin(cc *commandContext, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "Account email (required)")
	password := fs.String("password", "", "Account password (read from stdin when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pw, err := readPassword(*password, cc.In, cc.Out)
	if err != nil {
		return err
	}

	id, err := cc.Services.Sessions.Login(cc.Ctx, *email, pw)
	if err != nil {
		return err
	}
	return writef(cc.Out, "Logged in as %s (%s)\n", id.Email, id.Role)
}

func runRegister(cc *commandContext, args []string) error {
	fs := newFlagSet("register")
	name := fs.String("name", "", "Display name (required)")
	email := fs.String("email", "", "Account email (required)")
	password := fs.String("password", "", "Password, at least 6 characters (read from stdin when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pw, err := readPassword(*password, cc.In, cc.Out)
	if err != nil {
		return err
	}

	id, err := cc.Services.Sessions.Register(cc.Ctx, *email, pw, *name)
	if err != nil {
		return err
	}
	return writef(cc.Out, "Registered %s as %s\n", id.Email, id.Role)
}

func runLogout(cc *commandContext, _ []string) error {
	cc.Services.Sessions.Logout(cc.Ctx)
	return writef(cc.Out, "Logged out\n")
}

func runWhoami(cc *commandContext, _ []string) error {
	id, _ := cc.Services.Sessions.Session().User()
	w := tabwriter.NewWriter(cc.Out, 0, 4, 2, ' ', 0)
	if err := writef(w, "ID\t%s\nName\t%s\nEmail\t%s\nRole\t%s\n", id.ID, id.Name, id.Email, id.Role); err != nil {
		return err
	}
	return w.Flush()
}

func runPosts(cc *commandContext, args []string) error {
	fs := newFlagSet("posts")
	var q model.PostQuery
	fs.IntVar(&q.Page, "page", 1, "Page number")
	fs.StringVar(&q.Search, "search", "", "Search text")
	fs.StringVar(&q.Category, "category", "", "Category id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	page, err := cc.Services.Posts.Feed(cc.Ctx, q)
	if err != nil {
		return err
	}
	return printPosts(cc.Out, page)
}

func runMyPosts(cc *commandContext, args []string) error {
	fs := newFlagSet("my-posts")
	pageNum := fs.Int("page", 1, "Page number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	page, err := cc.Services.Posts.MyPosts(cc.Ctx, *pageNum)
	if err != nil {
		return err
	}
	return printPosts(cc.Out, page)
}

func printPosts(out io.Writer, page model.Page[model.Post]) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if err := writef(w, "ID\tTITLE\tSTATUS\tCREATED\n"); err != nil {
		return err
	}
	for _, p := range page.Items {
		status := "draft"
		if p.Published {
			status = "published"
		}
		if err := writef(w, "%s\t%s\t%s\t%s\n", p.ID, p.Title, status, p.CreatedAt.Format("2006-01-02")); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return writePageFooter(out, page.Pagination)
}

func writePageFooter(out io.Writer, info model.PageInfo) error {
	if info.TotalPages <= 1 {
		return nil
	}
	return writef(out, "\nPage %d of %d\n", info.Current, info.TotalPages)
}

func runPost(cc *commandContext, args []string) error {
	fs := newFlagSet("post")
	id := fs.String("id", "", "Post id (required)")
	commentPage := fs.Int("page", 1, "Comment page")
	if err := fs.Parse(args); err != nil {
		return err
	}

	post, err := cc.Services.Posts.Get(cc.Ctx, *id)
	if err != nil {
		return err
	}
	comments, err := cc.Services.Comments.ForPost(cc.Ctx, post.ID, *commentPage)
	if err != nil {
		return err
	}

	author := post.AuthorID
	if post.Author != nil && post.Author.Name != "" {
		author = post.Author.Name
	}
	if err := writef(cc.Out, "%s\nby %s on %s\n\n%s\n", post.Title, author, post.CreatedAt.Format("January 2, 2006"), post.Content); err != nil {
		return err
	}
	if len(comments.Items) == 0 {
		return nil
	}
	if err := writef(cc.Out, "\nComments:\n"); err != nil {
		return err
	}
	for _, c := range comments.Items {
		who := c.AuthorID
		if c.Author != nil && c.Author.Name != "" {
			who = c.Author.Name
		}
		if err := writef(cc.Out, "  [%s] %s: %s\n", c.ID, who, c.Content); err != nil {
			return err
		}
	}
	return writePageFooter(cc.Out, comments.Pagination)
}

func runComment(cc *commandContext, args []string) error {
	fs := newFlagSet("comment")
	postID := fs.String("post-id", "", "Post id (required)")
	content := fs.String("content", "", "Comment text (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := cc.Services.Comments.Add(cc.Ctx, *postID, *content)
	if err != nil {
		return err
	}
	if !c.Approved {
		return writef(cc.Out, "Comment %s submitted for approval\n", c.ID)
	}
	return writef(cc.Out, "Comment %s posted\n", c.ID)
}

func runEditComment(cc *commandContext, args []string) error {
	fs := newFlagSet("edit-comment")
	id := fs.String("id", "", "Comment id (required)")
	postID := fs.String("post-id", "", "Post the comment belongs to (required)")
	page := fs.Int("page", 1, "Comment page the comment is listed on")
	content := fs.String("content", "", "New comment text (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	listing, err := cc.Services.Comments.ForPost(cc.Ctx, *postID, *page)
	if err != nil {
		return err
	}
	for _, c := range listing.Items {
		if c.ID != *id {
			continue
		}
		updated, err := cc.Services.Comments.Edit(cc.Ctx, c, *content)
		if err != nil {
			return err
		}
		return writef(cc.Out, "Comment %s updated\n", updated.ID)
	}
	return fmt.Errorf("comment %s not found on page %d of post %s", *id, *page, *postID)
}

func runRefresh(cc *commandContext, _ []string) error {
	sess, err := cc.Services.Sessions.Refresh(cc.Ctx)
	if err != nil {
		return err
	}
	id, _ := sess.User()
	return writef(cc.Out, "Signed in as %s (%s)\n", id.Email, id.Role)
}

func runUsers(cc *commandContext, args []string) error {
	fs := newFlagSet("users")
	var q model.UserQuery
	role := fs.String("role", "", "Filter by role (READER, AUTHOR, ADMIN)")
	fs.IntVar(&q.Page, "page", 1, "Page number")
	fs.StringVar(&q.Search, "search", "", "Search by name or email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *role != "" {
		r, err := domainauth.ParseRole(*role)
		if err != nil {
			return err
		}
		q.Role = r
	}

	users, err := cc.Services.Admin.Users(cc.Ctx, q)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cc.Out, 0, 4, 2, ' ', 0)
	if err := writef(w, "ID\tNAME\tEMAIL\tROLE\tPOSTS\n"); err != nil {
		return err
	}
	for _, u := range users.Items {
		if err := writef(w, "%s\t%s\t%s\t%s\t%d\n", u.ID, u.Name, u.Email, u.Role, u.PostCount); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return writePageFooter(cc.Out, users.Pagination)
}

func runSetRole(cc *commandContext, args []string) error {
	fs := newFlagSet("set-role")
	id := fs.String("id", "", "User id (required)")
	role := fs.String("role", "", "New role: READER, AUTHOR or ADMIN (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	parsed, err := cc.Services.Admin.UpdateRole(cc.Ctx, *id, *role)
	if err != nil {
		return err
	}
	return writef(cc.Out, "User %s is now %s\n", *id, parsed)
}

func runPending(cc *commandContext, _ []string) error {
	pending, err := cc.Services.Admin.PendingComments(cc.Ctx)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return writef(cc.Out, "No comments awaiting moderation\n")
	}
	w := tabwriter.NewWriter(cc.Out, 0, 4, 2, ' ', 0)
	if err := writef(w, "ID\tPOST\tCONTENT\n"); err != nil {
		return err
	}
	for _, c := range pending {
		if err := writef(w, "%s\t%s\t%s\n", c.ID, c.PostID, c.Content); err != nil {
			return err
		}
	}
	return w.Flush()
}

func runModerate(cc *commandContext, args []string) error {
	fs := newFlagSet("moderate")
	id := fs.String("id", "", "Comment id (required)")
	approve := fs.String("approve", "true", "true to approve, false to reject")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ok, err := strconv.ParseBool(*approve)
	if err != nil {
		return fmt.Errorf("--approve must be true or false: %w", err)
	}

	if err := cc.Services.Admin.Moderate(cc.Ctx, *id, ok); err != nil {
		return err
	}
	if ok {
		return writef(cc.Out, "Comment %s approved\n", *id)
	}
	return writef(cc.Out, "Comment %s rejected\n", *id)
}
