package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/favoriteblog/blog-ui/config"
	"github.com/favoriteblog/blog-ui/internal/bootstrap"
	domainauth "github.com/favoriteblog/blog-ui/internal/domain/auth"
	"github.com/favoriteblog/blog-ui/internal/ports"
)

type commandFn func(cc *commandContext, args []string) error

type command struct {
	name        string
	description string
	// access is nil for commands anyone may run.
	access *domainauth.Requirement
	run    commandFn
}

type commandContext struct {
	Ctx      context.Context
	Logger   *slog.Logger
	Config   config.AppConfig
	Services bootstrap.ServiceContainer
	Out      io.Writer
	In       io.Reader
}

var (
	errLoginRequired      = errors.New("please log in first: blogctl login --email <email>")
	errInsufficientRole   = errors.New("insufficient role for this command")
	errSessionNotRestored = errors.New("session is still loading")
)

func main() {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		_ = writef(os.Stderr, "load config: %v\n", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}
	logger := bootstrap.InitLogger(cfg.Observability)

	if len(os.Args) < 2 {
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(os.Stderr); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	ctx := context.Background()
	services, err := bootstrap.NewServices(ctx, bootstrap.ServiceDeps{Config: &cfg, Logger: logger})
	if err != nil {
		logger.ErrorContext(ctx, "init services", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal initialization failure
	}

	cc := &commandContext{
		Ctx:      ctx,
		Logger:   logger,
		Config:   cfg,
		Services: services,
		Out:      os.Stdout,
		In:       os.Stdin,
	}
	runErr := execute(cc, cmd, os.Args[2:])
	if cerr := services.Close(); cerr != nil {
		logger.ErrorContext(ctx, "close services failed", "error", cerr)
	}
	if runErr != nil {
		_ = writef(os.Stderr, "%s: %v\n", cmdName, runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

// execute restores the persisted session, enforces the command's access
// requirement and runs it.
func execute(cc *commandContext, cmd command, args []string) error {
	cc.Services.Sessions.Restore(cc.Ctx)
	if err := checkAccess(cc.Services.Sessions, cmd.access); err != nil {
		return err
	}
	return cmd.run(cc, args)
}

func checkAccess(sessions ports.SessionReader, req *domainauth.Requirement) error {
	if req == nil {
		return nil
	}
	switch domainauth.Evaluate(sessions.Session(), *req) {
	case domainauth.DecisionGranted:
		return nil
	case domainauth.DecisionPending:
		return errSessionNotRestored
	case domainauth.DecisionRedirectLogin:
		return errLoginRequired
	default:
		return fmt.Errorf("%w (requires %s)", errInsufficientRole, req.MinRole)
	}
}

func requires(r domainauth.Requirement) *domainauth.Requirement { return &r }

func commands() map[string]command {
	author := requires(domainauth.RequireRole(domainauth.RoleAuthor))
	admin := requires(domainauth.RequireRole(domainauth.RoleAdmin))
	member := requires(domainauth.RequireAuthenticated)

	return map[string]command{
		"login":    {name: "login", description: "Log in and persist the session", run: runLogin},
		"register": {name: "register", description: "Create a READER account and log in", run: runRegister},
		"logout":   {name: "logout", description: "End the session and forget the stored credential", run: runLogout},
		"whoami":   {name: "whoami", description: "Show the signed-in identity", access: member, run: runWhoami},
		"posts":    {name: "posts", description: "List published posts", run: runPosts},
		"post":     {name: "post", description: "Show one post with its comments", run: runPost},
		"my-posts": {name: "my-posts", description: "List your posts, drafts included", access: author, run: runMyPosts},
		"comment":  {name: "comment", description: "Comment on a post", access: member, run: runComment},
		"edit-comment": {
			name: "edit-comment", description: "Change the text of one of your comments", access: member, run: runEditComment,
		},
		"refresh": {name: "refresh", description: "Re-read your role from the server", access: member, run: runRefresh},
		"users":    {name: "users", description: "List user accounts", access: admin, run: runUsers},
		"set-role": {name: "set-role", description: "Change a user's role", access: admin, run: runSetRole},
		"pending":  {name: "pending", description: "List comments awaiting moderation", access: admin, run: runPending},
		"moderate": {name: "moderate", description: "Approve or reject a pending comment", access: admin, run: runModerate},
	}
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: blogctl <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-10s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
