package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"beemo-api/internal/api"
	"beemo-api/internal/config"
	"beemo-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDiscord struct {
	user *api.DiscordUser
	err  error
	got  string
}

func (f *fakeDiscord) GetCurrentUser(_ context.Context, accessToken string) (*api.DiscordUser, error) {
	f.got = accessToken
	return f.user, f.err
}

func newDiscordTokenServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth2/token", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		if r.PostForm.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "discord-token", "token_type": "Bearer", "expires_in": 3600})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestAuthService(t *testing.T, discord DiscordAPI) (*AuthService, *fakeUsers, *fakeTokens) {
	t.Helper()
	srv := newDiscordTokenServer(t)
	users, tokens := &fakeUsers{}, &fakeTokens{}
	svc := NewAuthService(&config.Config{
		DiscordClientID:     "client-id",
		DiscordClientSecret: "secret",
		DiscordCallbackURL:  "http://localhost:3333/auth/discord/callback",
		DiscordAPIURL:       srv.URL,
		FrontendURL:         "http://localhost:4321",
	}, discord, users, tokens, nopLogger)
	return svc, users, tokens
}

func TestAuthService_CallbackErrors(t *testing.T) {
	svc, _, _ := newTestAuthService(t, &fakeDiscord{})
	ctx := context.Background()

	cases := []struct {
		name   string
		params CallbackParams
		want   error
	}{
		{"denied", CallbackParams{Error: "access_denied", State: "s", ExpectedState: "s"}, ErrAccessDenied},
		{"state mismatch", CallbackParams{Code: "c", State: "a", ExpectedState: "b"}, ErrStateMismatch},
		{"missing state", CallbackParams{Code: "c"}, ErrStateMismatch},
		{"provider error", CallbackParams{Error: "server_error", State: "s", ExpectedState: "s"}, ErrAuthProvider},
		{"missing code", CallbackParams{State: "s", ExpectedState: "s"}, ErrAuthProvider},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.HandleCallback(ctx, tc.params)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAuthService_CallbackExchangeFailure(t *testing.T) {
	svc, _, _ := newTestAuthService(t, &fakeDiscord{})

	_, err := svc.HandleCallback(context.Background(), CallbackParams{Code: "bad-code", State: "s", ExpectedState: "s"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAuthProvider)
}

func TestAuthService_CallbackLogsUserIn(t *testing.T) {
	avatar := "abc"
	email := "beemo@example.com"
	discord := &fakeDiscord{user: &api.DiscordUser{ID: "42", Username: "beemo", Email: &email, Avatar: &avatar}}
	svc, users, tokens := newTestAuthService(t, discord)
	ctx := context.Background()

	redirect, err := svc.HandleCallback(ctx, CallbackParams{Code: "good-code", State: "s", ExpectedState: "s"})
	require.NoError(t, err)
	assert.Equal(t, "discord-token", discord.got)

	u, err := url.Parse(redirect)
	require.NoError(t, err)
	assert.Equal(t, "localhost:4321", u.Host)
	token := u.Query().Get("token")
	assert.True(t, strings.HasPrefix(token, "oat_"))

	require.Len(t, users.users, 1)
	saved := users.users[1]
	assert.Equal(t, "42", saved.DiscordID)
	require.NotNil(t, saved.AvatarURL)
	assert.Equal(t, "https://cdn.discordapp.com/avatars/42/abc.png", *saved.AvatarURL)

	require.Len(t, tokens.byHash, 1)
	_, storedRaw := tokens.byHash[token]
	assert.False(t, storedRaw)

	user, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "beemo", user.Username)
	assert.Len(t, tokens.touched, 1)
}

func TestAuthService_Authenticate(t *testing.T) {
	svc, users, tokens := newTestAuthService(t, &fakeDiscord{})
	ctx := context.Background()

	user, err := users.UpsertByDiscordID(ctx, &domain.User{DiscordID: "1", Username: "u"})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "no-prefix")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Authenticate(ctx, "oat_unknown")
	assert.ErrorIs(t, err, ErrUnauthorized)

	expired := "oat_expired"
	require.NoError(t, tokens.Create(ctx, &domain.AccessToken{
		UserID:    user.ID,
		Hash:      hashToken(expired),
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}))
	_, err = svc.Authenticate(ctx, expired)
	assert.ErrorIs(t, err, ErrUnauthorized)

	issued, err := svc.IssueToken(ctx, user.ID)
	require.NoError(t, err)
	got, err := svc.Authenticate(ctx, issued)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestAuthService_AuthCodeURL(t *testing.T) {
	svc, _, _ := newTestAuthService(t, &fakeDiscord{})
	assert.True(t, svc.Enabled())

	state, err := svc.NewState()
	require.NoError(t, err)
	assert.Len(t, state, 32)

	u, err := url.Parse(svc.AuthCodeURL(state))
	require.NoError(t, err)
	assert.Equal(t, "/oauth2/authorize", u.Path)
	assert.Equal(t, state, u.Query().Get("state"))
	assert.Equal(t, "identify email", u.Query().Get("scope"))
	assert.Equal(t, "code", u.Query().Get("response_type"))
}

func TestAuthService_DisabledWithoutCredentials(t *testing.T) {
	svc := NewAuthService(&config.Config{DiscordAPIURL: "https://discord.com/api"}, &fakeDiscord{}, &fakeUsers{}, &fakeTokens{}, nopLogger)
	assert.False(t, svc.Enabled())
}
