package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/favoriteblog/blog-ui/internal/domain/auth"
	apperrors "github.com/favoriteblog/blog-ui/internal/errors"
	"github.com/favoriteblog/blog-ui/internal/ports"
)

func TestMockAuthAPI_DemoAccounts(t *testing.T) {
	ctx := context.Background()
	api := NewMockAuthAPI()

	for email, want := range map[string]domainauth.Role{
		"admin@blog.com":  domainauth.RoleAdmin,
		"author@blog.com": domainauth.RoleAuthor,
		"reader@blog.com": domainauth.RoleReader,
	} {
		res, err := api.Login(ctx, ports.LoginInput{Email: email, Password: email[:len(email)-len("@blog.com")] + "123"})
		require.NoError(t, err, email)
		assert.Equal(t, want, res.Identity.Role)
		assert.NotEmpty(t, res.Credential)
	}

	_, err := api.Login(ctx, ports.LoginInput{Email: "admin@blog.com", Password: "nope"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, "Invalid credentials", apperrors.UserMessage(err))
}

func TestMockAuthAPI_CredentialLifecycle(t *testing.T) {
	ctx := context.Background()
	api := NewMockAuthAPI()

	res, err := api.Login(ctx, ports.LoginInput{Email: "author@blog.com", Password: "author123"})
	require.NoError(t, err)

	id, err := api.Me(ctx, res.Credential)
	require.NoError(t, err)
	assert.Equal(t, "user-2", id.ID)

	api.SetRole("author@blog.com", domainauth.RoleAdmin)
	id, err = api.Me(ctx, res.Credential)
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleAdmin, id.Role)

	require.NoError(t, api.Logout(ctx, res.Credential))
	_, err = api.Me(ctx, res.Credential)
	assert.True(t, apperrors.IsUnauthorized(err))

	login, me, logout := api.Calls()
	assert.Equal(t, 1, login)
	assert.Equal(t, 3, me)
	assert.Equal(t, 1, logout)
}

func TestMockAuthAPI_Register(t *testing.T) {
	ctx := context.Background()
	api := NewMockAuthAPI()

	res, err := api.Register(ctx, ports.RegisterInput{Name: "New Reader", Email: "new@blog.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleReader, res.Identity.Role)
	assert.Equal(t, "New Reader", res.Identity.Name)

	id, err := api.Me(ctx, res.Credential)
	require.NoError(t, err)
	assert.Equal(t, "New Reader", id.Name)

	_, err = api.Register(ctx, ports.RegisterInput{Name: "Dup", Email: "new@blog.com", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, "User already exists", apperrors.UserMessage(err))
}

func TestMockAuthAPI_OfflineAndRevoke(t *testing.T) {
	ctx := context.Background()
	api := NewMockAuthAPI()
	res, err := api.Login(ctx, ports.LoginInput{Email: "reader@blog.com", Password: "reader123"})
	require.NoError(t, err)

	api.SetOffline(true)
	_, err = api.Me(ctx, res.Credential)
	require.ErrorIs(t, err, ErrOffline)
	api.SetOffline(false)

	api.Revoke(res.Credential)
	_, err = api.Me(ctx, res.Credential)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestMockAuthAPI_FuncOverrides(t *testing.T) {
	api := NewMockAuthAPI()
	boom := errors.New("boom")
	api.LogoutFunc = func(context.Context, string) error { return boom }
	require.ErrorIs(t, api.Logout(context.Background(), "tok"), boom)
}

func TestMemoryCredentialStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryCredentialStore()

	_, ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, "tok"))
	v, ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)

	s.SaveErr = errors.New("disk full")
	require.Error(t, s.Save(ctx, "other"))
	v, _ = s.Value()
	assert.Equal(t, "tok", v, "failed save keeps the old value")

	require.NoError(t, s.Clear(ctx))
	_, ok = s.Value()
	assert.False(t, ok)
	assert.Equal(t, 1, s.Saves)
	assert.Equal(t, 1, s.Clears)

	pre := NewMemoryCredentialStoreWith("seeded")
	v, ok = pre.Value()
	assert.True(t, ok)
	assert.Equal(t, "seeded", v)
}
