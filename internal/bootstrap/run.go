package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/favoriteblog/blog-ui/config"
	"github.com/favoriteblog/blog-ui/internal/service"
)

// RunConfig holds everything RunWithShutdown needs.
type RunConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunWithShutdown restores the session in the background, serves HTTP and
// blocks until SIGINT/SIGTERM or a server failure.
func RunWithShutdown(cfg *RunConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("run config with AppConfig is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Guarded routes answer 503 until this completes.
	restored := make(chan struct{})
	go func() {
		defer close(restored)
		restoreSession(ctx, cfg.Services.Sessions, logger)
	}()

	errCh := make(chan error, 1)
	server := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
		ErrCh:    errCh,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	case runErr = <-errCh:
		logger.Error("service error", "error", runErr)
	}
	cancel()
	<-restored

	if err := ShutdownHTTPServer(ShutdownConfig{
		Server:   server,
		Sessions: cfg.Services.Sessions,
		Logger:   logger,
		Timeout:  cfg.Config.HTTP.ShutdownTimeout,
	}); err != nil {
		logger.Error("graceful stop failed", "error", err)
		runErr = errors.Join(runErr, err)
	}
	return runErr
}

func restoreSession(ctx context.Context, sessions *service.SessionStore, logger *slog.Logger) {
	if sessions == nil {
		return
	}
	s := sessions.Restore(ctx)
	attrs := []any{"state", s.State.String()}
	if id, ok := s.User(); ok {
		attrs = append(attrs, "user_id", id.ID, "role", string(id.Role))
	}
	logger.InfoContext(ctx, "session restored", attrs...)
}
