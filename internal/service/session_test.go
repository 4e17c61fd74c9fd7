package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/favoriteblog/blog-ui/internal/domain/auth"
	apperrors "github.com/favoriteblog/blog-ui/internal/errors"
	mocks "github.com/favoriteblog/blog-ui/internal/mocks/auth"
	"github.com/favoriteblog/blog-ui/internal/ports"
	"github.com/favoriteblog/blog-ui/internal/testutil"
)

func newTestStore(api *mocks.MockAuthAPI, creds *mocks.MemoryCredentialStore) *SessionStore {
	return NewSessionStore(SessionStoreOptions{
		API:            api,
		Credentials:    creds,
		RestoreTimeout: time.Second,
		LogoutTimeout:  time.Second,
	})
}

// issueToken logs in directly against the mock API to obtain a credential it accepts.
func issueToken(t *testing.T, api *mocks.MockAuthAPI, email, password string) string {
	t.Helper()
	res, err := api.Login(context.Background(), ports.LoginInput{Email: email, Password: password})
	require.NoError(t, err)
	return res.Credential
}

func TestNewSessionStore(t *testing.T) {
	assert.Panics(t, func() {
		NewSessionStore(SessionStoreOptions{Credentials: mocks.NewMemoryCredentialStore()})
	})
	assert.Panics(t, func() {
		NewSessionStore(SessionStoreOptions{API: mocks.NewMockAuthAPI()})
	})

	store := newTestStore(mocks.NewMockAuthAPI(), mocks.NewMemoryCredentialStore())
	assert.True(t, store.Session().IsLoading())
	assert.Equal(t, domainauth.DecisionPending, store.Evaluate(domainauth.RequireAuthenticated))
	_, ok := store.Credential()
	assert.False(t, ok)
}

func TestSessionStore_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("no stored credential makes no network call", func(t *testing.T) {
		api := mocks.NewMockAuthAPI()
		creds := mocks.NewMemoryCredentialStore()
		store := newTestStore(api, creds)

		sess := store.Restore(ctx)

		assert.Equal(t, domainauth.StateAnonymous, sess.State)
		_, me, _ := api.Calls()
		assert.Zero(t, me)
		assert.Zero(t, creds.Clears)
	})

	t.Run("valid credential becomes authenticated", func(t *testing.T) {
		api := mocks.NewMockAuthAPI()
		token := issueToken(t, api, "admin@blog.com", "admin123")
		creds := mocks.NewMemoryCredentialStoreWith(token)
		store := newTestStore(api, creds)

		sess := store.Restore(ctx)

		require.True(t, sess.IsAuthenticated())
		assert.Equal(t, domainauth.RoleAdmin, sess.Identity.Role)
		assert.Equal(t, "admin@blog.com", sess.Identity.Email)
		got, ok := store.Credential()
		require.True(t, ok)
		assert.Equal(t, token, got)
		assert.Zero(t, creds.Saves, "restore must not rewrite an already persisted credential")
	})

	t.Run("rejected credential is cleared", func(t *testing.T) {
		api := mocks.NewMockAuthAPI()
		creds := mocks.NewMemoryCredentialStoreWith("stale-token")
		store := newTestStore(api, creds)

		sess := store.Restore(ctx)

		assert.Equal(t, domainauth.StateAnonymous, sess.State)
		_, stored := creds.Value()
		assert.False(t, stored)
	})

	t.Run("unreachable API clears and ends anonymous", func(t *testing.T) {
		api := mocks.NewMockAuthAPI()
		token := issueToken(t, api, "reader@blog.com", "reader123")
		api.SetOffline(true)
		creds := mocks.NewMemoryCredentialStoreWith(token)
		store := newTestStore(api, creds)

		sess := store.Restore(ctx)

		assert.Equal(t, domainauth.StateAnonymous, sess.State)
		_, stored := creds.Value()
		assert.False(t, stored)
	})

	t.Run("expired token is discarded without a network call", func(t *testing.T) {
		api := mocks.NewMockAuthAPI()
		creds := mocks.NewMemoryCredentialStoreWith(testutil.SignedJWT(t, "user-1", time.Now().Add(-time.Hour)))
		store := newTestStore(api, creds)

		sess := store.Restore(ctx)

		assert.Equal(t, domainauth.StateAnonymous, sess.State)
		_, me, _ := api.Calls()
		assert.Zero(t, me)
		assert.Equal(t, 1, creds.Clears)
	})

	t.Run("load failure ends anonymous", func(t *testing.T) {
		api := mocks.NewMockAuthAPI()
		creds := mocks.NewMemoryCredentialStore()
		creds.LoadErr = errors.New("disk on fire")
		store := newTestStore(api, creds)

		sess := store.Restore(ctx)

		assert.Equal(t, domainauth.StateAnonymous, sess.State)
	})

	t.Run("hung API is bounded by the restore timeout", func(t *testing.T) {
		api := mocks.NewMockAuthAPI()
		api.MeFunc = func(ctx context.Context, _ string) (domainauth.Identity, error) {
			<-ctx.Done()
			return domainauth.Identity{}, apperrors.Network(ctx.Err())
		}
		store := NewSessionStore(SessionStoreOptions{
			API:            api,
			Credentials:    mocks.NewMemoryCredentialStoreWith("some-token"),
			RestoreTimeout: 20 * time.Millisecond,
		})

		sess := store.Restore(ctx)

		assert.Equal(t, domainauth.StateAnonymous, sess.State)
	})

	t.Run("canceled restore keeps the stored credential", func(t *testing.T) {
		api := mocks.NewMockAuthAPI()
		meStarted := make(chan struct{})
		api.MeFunc = func(ctx context.Context, _ string) (domainauth.Identity, error) {
			close(meStarted)
			<-ctx.Done()
			return domainauth.Identity{}, apperrors.Network(ctx.Err())
		}
		creds := mocks.NewMemoryCredentialStoreWith("some-token")
		store := newTestStore(api, creds)

		restoreCtx, cancel := context.WithCancel(ctx)
		go func() {
			<-meStarted
			cancel()
		}()
		sess := store.Restore(restoreCtx)

		assert.Equal(t, domainauth.StateAnonymous, sess.State)
		stored, ok := creds.Value()
		assert.True(t, ok)
		assert.Equal(t, "some-token", stored)
		assert.Zero(t, creds.Clears)
	})

	t.Run("only the first call restores", func(t *testing.T) {
		api := mocks.NewMockAuthAPI()
		token := issueToken(t, api, "author@blog.com", "author123")
		store := newTestStore(api, mocks.NewMemoryCredentialStoreWith(token))

		first := store.Restore(ctx)
		second := store.Restore(ctx)

		assert.Equal(t, first, second)
		_, me, _ := api.Calls()
		assert.Equal(t, 1, me)
	})
}

func TestSessionStore_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success persists and notifies", func(t *testing.T) {
		api := mocks.NewMockAuthAPI()
		creds := mocks.NewMemoryCredentialStore()
		store := newTestStore(api, creds)
		store.Restore(ctx)

		var seen []domainauth.Session
		store.Subscribe(func(s domainauth.Session) { seen = append(seen, s) })

		id, err := store.Login(ctx, "author@blog.com", "author123")
		require.NoError(t, err)

		assert.Equal(t, domainauth.RoleAuthor, id.Role)
		assert.True(t, store.Allows(domainauth.RequireRole(domainauth.RoleAuthor)))
		stored, ok := creds.Value()
		require.True(t, ok)
		cred, _ := store.Credential()
		assert.Equal(t, stored, cred)
		require.Len(t, seen, 1)
		assert.Equal(t, domainauth.StateAuthenticated, seen[0].State)
	})

	t.Run("wrong password passes the API message through", func(t *testing.T) {
		api := mocks.NewMockAuthAPI()
		creds := mocks.NewMemoryCredentialStore()
		store := newTestStore(api, creds)
		store.Restore(ctx)

		_, err := store.Login(ctx, "admin@blog.com", "wrong-password")

		require.Error(t, err)
		assert.Equal(t, "Invalid credentials", apperrors.UserMessage(err))
		assert.True(t, apperrors.IsUnauthorized(err))
		assert.Equal(t, domainauth.StateAnonymous, store.Session().State)
		assert.Zero(t, creds.Saves)
	})

	t.Run("invalid form makes no network call", func(t *testing.T) {
		api := mocks.NewMockAuthAPI()
		store := newTestStore(api, mocks.NewMemoryCredentialStore())
		store.Restore(ctx)

		_, err := store.Login(ctx, "not-an-email", "")

		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		login, _, _ := api.Calls()
		assert.Zero(t, login)
	})

	t.Run("failure while authenticated keeps the session", func(t *testing.T) {
		api := mocks.NewMockAuthAPI()
		store := newTestStore(api, mocks.NewMemoryCredentialStore())
		store.Restore(ctx)
		_, err := store.Login(ctx, "reader@blog.com", "reader123")
		require.NoError(t, err)

		api.SetOffline(true)
		_, err = store.Login(ctx, "admin@blog.com", "admin123")

		require.Error(t, err)
		assert.True(t, apperrors.IsNetwork(err))
		assert.Equal(t, domainauth.RoleReader, store.Session().Identity.Role)
	})

	t.Run("persist failure leaves state unchanged", func(t *testing.T) {
		api := mocks.NewMockAuthAPI()
		creds := mocks.NewMemoryCredentialStore()
		creds.SaveErr = errors.New("read-only file system")
		store := newTestStore(api, creds)
		store.Restore(ctx)

		_, err := store.Login(ctx, "reader@blog.com", "reader123")
		store.Wait()

		require.Error(t, err)
		assert.Equal(t, domainauth.StateAnonymous, store.Session().State)
		_, ok := store.Credential()
		assert.False(t, ok)
	})

	t.Run("switching accounts revokes the previous credential", func(t *testing.T) {
		api := mocks.NewMockAuthAPI()
		store := newTestStore(api, mocks.NewMemoryCredentialStore())
		store.Restore(ctx)
		_, err := store.Login(ctx, "reader@blog.com", "reader123")
		require.NoError(t, err)
		first, _ := store.Credential()

		_, err = store.Login(ctx, "admin@blog.com", "admin123")
		require.NoError(t, err)
		store.Wait()

		_, meErr := api.Me(ctx, first)
		assert.True(t, apperrors.IsUnauthorized(meErr))
		assert.Equal(t, domainauth.RoleAdmin, store.Session().Identity.Role)
	})
}

func TestSessionStore_Register(t *testing.T) {
	ctx := context.Background()
	api := mocks.NewMockAuthAPI()
	store := newTestStore(api, mocks.NewMemoryCredentialStore())
	store.Restore(ctx)

	id, err := store.Register(ctx, "new@blog.com", "secret1", "New Reader")
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleReader, id.Role)
	assert.Equal(t, "New Reader", id.Name)
	assert.True(t, store.Session().IsAuthenticated())

	store.Logout(ctx)
	_, err = store.Register(ctx, "new@blog.com", "secret1", "Again")
	require.Error(t, err)
	assert.Equal(t, "User already exists", apperrors.UserMessage(err))
	assert.Equal(t, domainauth.StateAnonymous, store.Session().State)

	_, err = store.Register(ctx, "x@blog.com", "123", "X")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSessionStore_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("clears even when the server is unreachable", func(t *testing.T) {
		api := mocks.NewMockAuthAPI()
		creds := mocks.NewMemoryCredentialStore()
		store := newTestStore(api, creds)
		store.Restore(ctx)
		_, err := store.Login(ctx, "admin@blog.com", "admin123")
		require.NoError(t, err)

		api.SetOffline(true)
		store.Logout(ctx)

		assert.Equal(t, domainauth.StateAnonymous, store.Session().State)
		assert.Equal(t, domainauth.DecisionRedirectLogin, store.Evaluate(domainauth.RequireAuthenticated))
		_, stored := creds.Value()
		assert.False(t, stored)
		store.Wait()
		_, _, logout := api.Calls()
		assert.Equal(t, 1, logout)
	})

	t.Run("clear failure still ends anonymous", func(t *testing.T) {
		api := mocks.NewMockAuthAPI()
		creds := mocks.NewMemoryCredentialStore()
		store := newTestStore(api, creds)
		store.Restore(ctx)
		_, err := store.Login(ctx, "reader@blog.com", "reader123")
		require.NoError(t, err)

		creds.ClearErr = errors.New("permission denied")
		store.Logout(ctx)
		store.Wait()

		assert.Equal(t, domainauth.StateAnonymous, store.Session().State)
		_, ok := store.Credential()
		assert.False(t, ok)
	})

	t.Run("anonymous logout skips the server", func(t *testing.T) {
		api := mocks.NewMockAuthAPI()
		store := newTestStore(api, mocks.NewMemoryCredentialStore())
		store.Restore(ctx)

		store.Logout(ctx)
		store.Wait()

		_, _, logout := api.Calls()
		assert.Zero(t, logout)
	})
}

func TestSessionStore_LateLoginIsDiscarded(t *testing.T) {
	ctx := context.Background()
	api := mocks.NewMockAuthAPI()
	creds := mocks.NewMemoryCredentialStore()
	store := newTestStore(api, creds)
	store.Restore(ctx)

	started := make(chan struct{})
	release := make(chan struct{})
	api.LoginFunc = func(context.Context, ports.LoginInput) (ports.AuthResult, error) {
		close(started)
		<-release
		return ports.AuthResult{
			Identity:   domainauth.Identity{ID: "user-1", Email: "admin@blog.com", Role: domainauth.RoleAdmin},
			Credential: "late-token",
		}, nil
	}

	errCh := make(chan error, 1)
	go func() {
		_, err := store.Login(ctx, "admin@blog.com", "admin123")
		errCh <- err
	}()

	<-started
	store.Logout(ctx)
	close(release)

	err := <-errCh
	require.ErrorIs(t, err, ErrSuperseded)
	store.Wait()

	assert.Equal(t, domainauth.StateAnonymous, store.Session().State)
	_, stored := creds.Value()
	assert.False(t, stored)
	assert.Zero(t, creds.Saves)
	_, _, logout := api.Calls()
	assert.Equal(t, 1, logout, "discarded credential is revoked server-side")
}

func TestSessionStore_LastStartedLoginWins(t *testing.T) {
	ctx := context.Background()
	api := mocks.NewMockAuthAPI()
	store := newTestStore(api, mocks.NewMemoryCredentialStore())
	store.Restore(ctx)

	readerStarted := make(chan struct{})
	releaseReader := make(chan struct{})
	api.LoginFunc = func(_ context.Context, in ports.LoginInput) (ports.AuthResult, error) {
		if in.Email == "reader@blog.com" {
			close(readerStarted)
			<-releaseReader
			return ports.AuthResult{
				Identity:   domainauth.Identity{ID: "r", Email: in.Email, Role: domainauth.RoleReader},
				Credential: "reader-token",
			}, nil
		}
		return ports.AuthResult{
			Identity:   domainauth.Identity{ID: "a", Email: in.Email, Role: domainauth.RoleAuthor},
			Credential: "author-token",
		}, nil
	}

	errCh := make(chan error, 1)
	go func() {
		_, err := store.Login(ctx, "reader@blog.com", "reader123")
		errCh <- err
	}()
	<-readerStarted

	_, err := store.Login(ctx, "author@blog.com", "author123")
	require.NoError(t, err)
	close(releaseReader)

	require.ErrorIs(t, <-errCh, ErrSuperseded)
	store.Wait()
	assert.Equal(t, domainauth.RoleAuthor, store.Session().Identity.Role)
	cred, _ := store.Credential()
	assert.Equal(t, "author-token", cred)
}

func TestSessionStore_RefreshNeverSupersedesLogin(t *testing.T) {
	ctx := context.Background()
	readerIdentity := domainauth.Identity{ID: "r", Email: "reader@blog.com", Role: domainauth.RoleReader}

	t.Run("refresh during a pending login", func(t *testing.T) {
		api := mocks.NewMockAuthAPI()
		store := newTestStore(api, mocks.NewMemoryCredentialStore())
		store.Restore(ctx)

		adminStarted := make(chan struct{})
		releaseAdmin := make(chan struct{})
		api.LoginFunc = func(_ context.Context, in ports.LoginInput) (ports.AuthResult, error) {
			if in.Email == "admin@blog.com" {
				close(adminStarted)
				<-releaseAdmin
				return ports.AuthResult{
					Identity:   domainauth.Identity{ID: "a", Email: in.Email, Role: domainauth.RoleAdmin},
					Credential: "admin-token",
				}, nil
			}
			return ports.AuthResult{Identity: readerIdentity, Credential: "reader-token"}, nil
		}
		api.MeFunc = func(context.Context, string) (domainauth.Identity, error) {
			return readerIdentity, nil
		}
		_, err := store.Login(ctx, "reader@blog.com", "reader123")
		require.NoError(t, err)

		errCh := make(chan error, 1)
		go func() {
			_, err := store.Login(ctx, "admin@blog.com", "admin123")
			errCh <- err
		}()
		<-adminStarted

		sess, err := store.Refresh(ctx)
		require.NoError(t, err)
		assert.Equal(t, domainauth.RoleReader, sess.Identity.Role)
		close(releaseAdmin)

		require.NoError(t, <-errCh)
		store.Wait()
		assert.Equal(t, domainauth.RoleAdmin, store.Session().Identity.Role)
		cred, _ := store.Credential()
		assert.Equal(t, "admin-token", cred)
	})

	t.Run("refresh finishing after a login is dropped", func(t *testing.T) {
		api := mocks.NewMockAuthAPI()
		store := newTestStore(api, mocks.NewMemoryCredentialStore())
		store.Restore(ctx)
		_, err := store.Login(ctx, "reader@blog.com", "reader123")
		require.NoError(t, err)

		meStarted := make(chan struct{})
		releaseMe := make(chan struct{})
		api.MeFunc = func(context.Context, string) (domainauth.Identity, error) {
			close(meStarted)
			<-releaseMe
			return readerIdentity, nil
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = store.Refresh(ctx)
		}()
		<-meStarted

		_, err = store.Login(ctx, "author@blog.com", "author123")
		require.NoError(t, err)
		close(releaseMe)
		<-done

		store.Wait()
		assert.Equal(t, domainauth.RoleAuthor, store.Session().Identity.Role)
		assert.Equal(t, "author@blog.com", store.Session().Identity.Email)
	})
}

func TestSessionStore_Invalidate(t *testing.T) {
	ctx := context.Background()
	api := mocks.NewMockAuthAPI()
	creds := mocks.NewMemoryCredentialStore()
	store := newTestStore(api, creds)
	store.Restore(ctx)
	_, err := store.Login(ctx, "author@blog.com", "author123")
	require.NoError(t, err)
	cred, _ := store.Credential()

	var transitions int
	store.Subscribe(func(domainauth.Session) { transitions++ })

	assert.False(t, store.Invalidate(ctx, "some-other-token"))
	assert.True(t, store.Session().IsAuthenticated())

	assert.True(t, store.Invalidate(ctx, cred))
	assert.False(t, store.Invalidate(ctx, cred), "a second 401 for the same credential is a no-op")

	assert.Equal(t, domainauth.StateAnonymous, store.Session().State)
	assert.Equal(t, 1, transitions)
	_, stored := creds.Value()
	assert.False(t, stored)

	// A fresh login after invalidation is not treated as stale.
	_, err = store.Login(ctx, "author@blog.com", "author123")
	require.NoError(t, err)
	assert.True(t, store.Session().IsAuthenticated())
}

func TestSessionStore_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("picks up a role change", func(t *testing.T) {
		api := mocks.NewMockAuthAPI()
		store := newTestStore(api, mocks.NewMemoryCredentialStore())
		store.Restore(ctx)
		_, err := store.Login(ctx, "reader@blog.com", "reader123")
		require.NoError(t, err)

		api.SetRole("reader@blog.com", domainauth.RoleAuthor)
		sess, err := store.Refresh(ctx)

		require.NoError(t, err)
		assert.Equal(t, domainauth.RoleAuthor, sess.Identity.Role)
		assert.Equal(t, domainauth.DecisionGranted, store.Evaluate(domainauth.RequireRole(domainauth.RoleAuthor)))
	})

	t.Run("revoked credential invalidates", func(t *testing.T) {
		api := mocks.NewMockAuthAPI()
		store := newTestStore(api, mocks.NewMemoryCredentialStore())
		store.Restore(ctx)
		_, err := store.Login(ctx, "reader@blog.com", "reader123")
		require.NoError(t, err)
		cred, _ := store.Credential()

		api.Revoke(cred)
		sess, err := store.Refresh(ctx)

		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
		assert.Equal(t, domainauth.StateAnonymous, sess.State)
	})

	t.Run("network failure keeps the session", func(t *testing.T) {
		api := mocks.NewMockAuthAPI()
		store := newTestStore(api, mocks.NewMemoryCredentialStore())
		store.Restore(ctx)
		_, err := store.Login(ctx, "reader@blog.com", "reader123")
		require.NoError(t, err)

		api.SetOffline(true)
		sess, err := store.Refresh(ctx)

		require.Error(t, err)
		assert.True(t, sess.IsAuthenticated())
	})

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		store := newTestStore(mocks.NewMockAuthAPI(), mocks.NewMemoryCredentialStore())
		store.Restore(ctx)

		_, err := store.Refresh(ctx)
		assert.True(t, apperrors.IsUnauthorized(err))
	})
}

func TestSessionStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(mocks.NewMockAuthAPI(), mocks.NewMemoryCredentialStore())

	var mu sync.Mutex
	var order []string
	record := func(name string) ports.SessionObserver {
		return func(s domainauth.Session) {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name+":"+s.State.String())
		}
	}
	unsubFirst := store.Subscribe(record("first"))
	store.Subscribe(record("second"))

	store.Restore(ctx)
	unsubFirst()
	_, err := store.Login(ctx, "reader@blog.com", "reader123")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"first:anonymous",
		"second:anonymous",
		"second:authenticated",
	}, order)
}

func TestSessionStore_EmitsMetrics(t *testing.T) {
	ctx := context.Background()
	sink := &testutil.RecordingSink{}
	store := NewSessionStore(SessionStoreOptions{
		API:            mocks.NewMockAuthAPI(),
		Credentials:    mocks.NewMemoryCredentialStore(),
		RestoreTimeout: time.Second,
		LogoutTimeout:  time.Second,
		Metrics:        sink,
	})
	t.Cleanup(store.Wait)

	store.Restore(ctx)
	_, err := store.Login(ctx, "author@blog.com", "wrong-password")
	require.Error(t, err)
	_, err = store.Login(ctx, "author@blog.com", "author123")
	require.NoError(t, err)

	attempts := sink.Calls("auth.attempt")
	require.Len(t, attempts, 2)
	assert.Equal(t, "error", attempts[0].Tags["result"])
	assert.Equal(t, "success", attempts[1].Tags["result"])

	transitions := sink.Calls("session.transition")
	require.Len(t, transitions, 2)
	assert.Equal(t, map[string]string{"from": "loading", "to": "anonymous"}, transitions[0].Tags)
	assert.Equal(t, map[string]string{"from": "anonymous", "to": "authenticated", "role": "AUTHOR"}, transitions[1].Tags)
}
