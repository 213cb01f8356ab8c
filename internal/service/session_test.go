// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/commerce-console/internal/adapter"
	"github.com/MKhiriev/commerce-console/internal/logger"
	"github.com/MKhiriev/commerce-console/internal/mock"
	"github.com/MKhiriev/commerce-console/internal/store"
	"github.com/MKhiriev/commerce-console/models"
)

type sessionFixture struct {
	manager *SessionManager
	auth    *mock.MockAuthAPI
	tokens  *mock.MockTokenStore
	expire  func()
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &sessionFixture{
		auth:   mock.NewMockAuthAPI(ctrl),
		tokens: mock.NewMockTokenStore(ctrl),
	}
	f.auth.EXPECT().OnSessionExpired(gomock.Any()).Do(func(fn func()) { f.expire = fn })
	f.manager = NewSessionManager(f.auth, f.tokens, logger.Nop())
	return f
}

func signedAccessToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("gateway-key"))
	require.NoError(t, err)
	return signed
}

func apiError(status int, msg string) error {
	return &adapter.APIError{StatusCode: status, Message: msg, Err: adapter.ErrBadRequest}
}

// ── NewSessionManager ────────────────────────────────────────────────────────

func TestNewSessionManager_StartsLoading(t *testing.T) {
	f := newSessionFixture(t)

	s := f.manager.Session()
	assert.True(t, s.Loading)
	assert.Nil(t, s.User)
	require.NotNil(t, f.expire, "manager must register an expiry handler")
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestSessionManager_Login_PersistsAllThreeEntries(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	f.auth.EXPECT().Login(ctx, models.Credentials{Username: "alice", Password: "pw"}).Return(models.AuthResponse{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		Username:     "alice",
		Email:        "alice@shop.test",
		Role:         models.RoleAdmin,
		UserID:       "7",
	}, nil)
	f.tokens.EXPECT().
		SaveSession(ctx, models.Tokens{AccessToken: "access-1", RefreshToken: "refresh-1"}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.Tokens, u models.User) error {
			assert.Equal(t, "alice", u.Username)
			assert.Equal(t, "7", u.ID)
			return nil
		})

	require.NoError(t, f.manager.Login(ctx, "alice", "pw"))

	s := f.manager.Session()
	require.NotNil(t, s.User)
	assert.False(t, s.Loading)
	assert.False(t, s.Expired)
	assert.Equal(t, "alice", s.User.Username)
	assert.Equal(t, "alice", s.User.FirstName)
	assert.Equal(t, "alice@shop.test", s.User.Email)
	assert.Equal(t, []models.Role{models.RoleAdmin}, s.User.Roles)
	assert.Equal(t, "7", s.User.ID)
}

func TestSessionManager_Login_ReadsMissingFieldsFromClaims(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	token := signedAccessToken(t, jwt.MapClaims{"sub": "bob", "role": "MODERATOR", "userId": 42})
	f.auth.EXPECT().Login(ctx, gomock.Any()).Return(models.AuthResponse{Token: token, RefreshToken: "r"}, nil)
	f.tokens.EXPECT().SaveSession(ctx, models.Tokens{AccessToken: token, RefreshToken: "r"}, gomock.Any()).Return(nil)

	require.NoError(t, f.manager.Login(ctx, "bob", "pw"))

	u := f.manager.Session().User
	require.NotNil(t, u)
	assert.Equal(t, "bob", u.Username)
	assert.Equal(t, models.RoleModerator, u.PrimaryRole())
	assert.Equal(t, "42", u.ID)
}

func TestSessionManager_Login_Failure(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{name: "backend message is surfaced", err: apiError(http.StatusBadRequest, "Invalid credentials"), message: "Invalid credentials"},
		{name: "fallback without message", err: fmt.Errorf("%w: dial tcp", adapter.ErrTransport), message: "Login failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSessionFixture(t)
			ctx := context.Background()
			f.auth.EXPECT().Login(ctx, gomock.Any()).Return(models.AuthResponse{}, tt.err)

			err := f.manager.Login(ctx, "alice", "bad")
			require.Error(t, err)

			var ue *UserError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, tt.message, ue.Message)
			assert.ErrorIs(t, err, tt.err)

			s := f.manager.Session()
			assert.Nil(t, s.User)
			assert.False(t, s.Loading)
		})
	}
}

func TestSessionManager_Login_PersistFailure(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	f.auth.EXPECT().Login(ctx, gomock.Any()).Return(models.AuthResponse{AccessToken: "a", RefreshToken: "r", Username: "alice"}, nil)
	f.tokens.EXPECT().SaveSession(ctx, gomock.Any(), gomock.Any()).Return(store.ErrExecutingStatement)

	err := f.manager.Login(ctx, "alice", "pw")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrExecutingStatement)
	assert.Equal(t, "Login failed", MessageOf(err, ""))
	assert.Nil(t, f.manager.Session().User)
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestSessionManager_Register_LeavesIDUnresolved(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	req := models.RegisterRequest{Username: "carol", Email: "carol@shop.test", Password: "pw"}

	f.auth.EXPECT().Register(ctx, req).Return(models.AuthResponse{
		AccessToken:  "a",
		RefreshToken: "r",
		Username:     "carol",
		Role:         models.RoleUser,
		UserID:       "99",
	}, nil)
	f.tokens.EXPECT().SaveSession(ctx, gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, f.manager.Register(ctx, req))

	u := f.manager.Session().User
	require.NotNil(t, u)
	assert.Empty(t, u.ID)
	assert.Equal(t, models.RoleUser, u.PrimaryRole())
}

func TestSessionManager_Register_Failure(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	f.auth.EXPECT().Register(ctx, gomock.Any()).Return(models.AuthResponse{}, adapter.ErrConflict)

	err := f.manager.Register(ctx, models.RegisterRequest{Username: "carol"})
	assert.Equal(t, "Registration failed", MessageOf(err, ""))
	assert.Nil(t, f.manager.Session().User)
}

// ── Initialize ───────────────────────────────────────────────────────────────

func TestSessionManager_Initialize(t *testing.T) {
	stored := &models.User{Username: "alice", Roles: []models.Role{models.RoleAdmin}}
	tokens := models.Tokens{AccessToken: "a", RefreshToken: "r"}

	tests := []struct {
		name      string
		setup     func(f *sessionFixture)
		wantUser  bool
		wantError bool
	}{
		{
			name: "no stored session",
			setup: func(f *sessionFixture) {
				f.tokens.EXPECT().LoadSession(gomock.Any()).Return(models.Tokens{}, nil, store.ErrNoSession)
			},
		},
		{
			name: "unreadable session is cleared",
			setup: func(f *sessionFixture) {
				f.tokens.EXPECT().LoadSession(gomock.Any()).Return(models.Tokens{}, nil, store.ErrSessionUnreadable)
				f.tokens.EXPECT().ClearSession(gomock.Any()).Return(nil)
			},
		},
		{
			name: "store failure",
			setup: func(f *sessionFixture) {
				f.tokens.EXPECT().LoadSession(gomock.Any()).Return(models.Tokens{}, nil, store.ErrExecutingQuery)
			},
			wantError: true,
		},
		{
			name: "tokens without user snapshot",
			setup: func(f *sessionFixture) {
				f.tokens.EXPECT().LoadSession(gomock.Any()).Return(tokens, nil, nil)
			},
		},
		{
			name: "valid token restores user",
			setup: func(f *sessionFixture) {
				f.tokens.EXPECT().LoadSession(gomock.Any()).Return(tokens, stored, nil)
				f.auth.EXPECT().Validate(gomock.Any(), "a").Return(models.ValidateResponse{Valid: true}, nil)
			},
			wantUser: true,
		},
		{
			name: "invalid token refreshed",
			setup: func(f *sessionFixture) {
				f.tokens.EXPECT().LoadSession(gomock.Any()).Return(tokens, stored, nil)
				f.auth.EXPECT().Validate(gomock.Any(), "a").Return(models.ValidateResponse{}, adapter.ErrUnauthorized)
				f.auth.EXPECT().Refresh(gomock.Any()).Return("b", nil)
			},
			wantUser: true,
		},
		{
			name: "failed refresh signs out",
			setup: func(f *sessionFixture) {
				f.tokens.EXPECT().LoadSession(gomock.Any()).Return(tokens, stored, nil)
				f.auth.EXPECT().Validate(gomock.Any(), "a").Return(models.ValidateResponse{}, adapter.ErrUnauthorized)
				f.auth.EXPECT().Refresh(gomock.Any()).Return("", adapter.ErrUnauthorized)
				f.tokens.EXPECT().ClearSession(gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSessionFixture(t)
			tt.setup(f)

			err := f.manager.Initialize(context.Background())
			if tt.wantError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			s := f.manager.Session()
			assert.False(t, s.Loading)
			if tt.wantUser {
				require.NotNil(t, s.User)
				assert.Equal(t, "alice", s.User.Username)
			} else {
				assert.Nil(t, s.User)
			}
		})
	}
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestSessionManager_Logout_ClearsEvenWhenBackendFails(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	loginAs(t, f, "alice", models.RoleAdmin)

	f.auth.EXPECT().Logout(ctx).Return(adapter.ErrBadGateway)
	f.tokens.EXPECT().ClearSession(ctx).Return(nil)

	require.NoError(t, f.manager.Logout(ctx))

	s := f.manager.Session()
	assert.Nil(t, s.User)
	assert.False(t, s.Loading)
	assert.False(t, s.Expired)
}

func TestSessionManager_Logout_ClearFailure(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	loginAs(t, f, "alice", models.RoleAdmin)

	f.auth.EXPECT().Logout(ctx).Return(nil)
	f.tokens.EXPECT().ClearSession(ctx).Return(store.ErrCommitingTransaction)

	err := f.manager.Logout(ctx)
	assert.ErrorIs(t, err, store.ErrCommitingTransaction)
	assert.Nil(t, f.manager.Session().User)
}

// ── UpdateUser ───────────────────────────────────────────────────────────────

func TestSessionManager_UpdateUser_WithoutUserIsNoop(t *testing.T) {
	f := newSessionFixture(t)
	name := "Alice"

	// no SaveUser expectation: the mock fails the test on any call
	require.NoError(t, f.manager.UpdateUser(context.Background(), models.UserPatch{FirstName: &name}))
	assert.Nil(t, f.manager.Session().User)
}

func TestSessionManager_UpdateUser_MergesAndPersists(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	loginAs(t, f, "alice", models.RoleAdmin)

	first, last := "Alice", "Liddell"
	f.tokens.EXPECT().SaveUser(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u models.User) error {
		assert.Equal(t, "Alice", u.FirstName)
		assert.Equal(t, "Liddell", u.LastName)
		assert.Equal(t, "alice", u.Username)
		return nil
	})

	require.NoError(t, f.manager.UpdateUser(ctx, models.UserPatch{FirstName: &first, LastName: &last}))

	u := f.manager.Session().User
	require.NotNil(t, u)
	assert.Equal(t, "Alice Liddell", u.DisplayName())
	assert.Equal(t, []models.Role{models.RoleAdmin}, u.Roles)
}

func TestSessionManager_UpdateUser_ClearedStoreIsIgnored(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	loginAs(t, f, "alice", models.RoleAdmin)

	bio := "hello"
	f.tokens.EXPECT().SaveUser(ctx, gomock.Any()).Return(store.ErrNoSession)

	require.NoError(t, f.manager.UpdateUser(ctx, models.UserPatch{Bio: &bio}))
	assert.Empty(t, f.manager.Session().User.Bio)
}

// ── expiry and subscriptions ─────────────────────────────────────────────────

func TestSessionManager_ExpiredByTransport(t *testing.T) {
	f := newSessionFixture(t)
	loginAs(t, f, "alice", models.RoleAdmin)

	f.expire()

	s := f.manager.Session()
	assert.Nil(t, s.User)
	assert.True(t, s.Expired)
}

func TestSessionManager_ExpireWhenSignedOutIsIgnored(t *testing.T) {
	f := newSessionFixture(t)
	f.tokens.EXPECT().LoadSession(gomock.Any()).Return(models.Tokens{}, nil, store.ErrNoSession)
	require.NoError(t, f.manager.Initialize(context.Background()))

	f.expire()

	assert.False(t, f.manager.Session().Expired)
}

func TestSessionManager_Subscribe_KeepsLatest(t *testing.T) {
	f := newSessionFixture(t)
	ch, cancel := f.manager.Subscribe()
	defer cancel()

	first := <-ch
	assert.True(t, first.Loading)

	loginAs(t, f, "alice", models.RoleSupport)

	// several changes were published; only the newest is buffered
	latest := <-ch
	require.NotNil(t, latest.User)
	assert.Equal(t, models.RoleSupport, latest.User.PrimaryRole())
	assert.False(t, latest.Loading)

	cancel()
	_, open := <-ch
	assert.False(t, open)
}

func TestSessionManager_ForgotAndResetPassword(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	f.auth.EXPECT().ForgotPassword(ctx, "alice@shop.test").Return(nil)
	f.auth.EXPECT().ResetPassword(ctx, "tok", "new-pw").Return(errors.New("boom"))

	require.NoError(t, f.manager.ForgotPassword(ctx, "alice@shop.test"))
	err := f.manager.ResetPassword(ctx, "tok", "new-pw")
	assert.Equal(t, "Failed to reset password", MessageOf(err, ""))
}

func loginAs(t *testing.T, f *sessionFixture, username string, role models.Role) {
	t.Helper()
	f.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.AuthResponse{
		AccessToken:  "access",
		RefreshToken: "refresh",
		Username:     username,
		Role:         role,
		UserID:       "1",
	}, nil)
	f.tokens.EXPECT().SaveSession(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	require.NoError(t, f.manager.Login(context.Background(), username, "pw"))
}
