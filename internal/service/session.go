package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/commerce-console/internal/adapter"
	"github.com/MKhiriev/commerce-console/internal/app"
	"github.com/MKhiriev/commerce-console/internal/logger"
	"github.com/MKhiriev/commerce-console/internal/store"
	"github.com/MKhiriev/commerce-console/internal/utils"
	"github.com/MKhiriev/commerce-console/models"
)

// SessionManager owns the operator session. It is the only writer of the
// [models.Session] state; readers take snapshots or subscribe to changes.
type SessionManager struct {
	auth   adapter.AuthAPI
	tokens store.TokenStore
	logger *logger.Logger

	mu      sync.Mutex
	session models.Session
	subs    map[uint64]chan models.Session
	nextSub uint64
}

// NewSessionManager returns a manager in the loading state. It registers
// itself as the session-expired handler of auth.
func NewSessionManager(auth adapter.AuthAPI, tokens store.TokenStore, log *logger.Logger) *SessionManager {
	m := &SessionManager{
		auth:    auth,
		tokens:  tokens,
		logger:  log,
		session: models.Session{Loading: true},
		subs:    map[uint64]chan models.Session{},
	}
	auth.OnSessionExpired(m.expire)
	return m
}

// Session returns a snapshot of the current session.
func (m *SessionManager) Session() models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Subscribe returns a channel receiving the current session and every later
// change. Slow readers only see the latest value. cancel closes the channel.
func (m *SessionManager) Subscribe() (<-chan models.Session, func()) {
	ch := make(chan models.Session, 1)

	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	ch <- m.snapshotLocked()
	m.mu.Unlock()

	cancel := sync.OnceFunc(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
		close(ch)
	})
	return ch, cancel
}

// Initialize restores the stored session. A cached user is shown at once
// while the access token is validated; an invalid token is refreshed once
// and a failed refresh signs the operator out.
func (m *SessionManager) Initialize(ctx context.Context) error {
	tokens, user, err := m.tokens.LoadSession(ctx)
	switch {
	case errors.Is(err, store.ErrNoSession):
		m.set(nil, false)
		return nil
	case errors.Is(err, store.ErrSessionUnreadable):
		// profile secret changed or the file is damaged
		m.logger.Warn().Err(err).Msg("stored session is unreadable, signing out")
		m.clearStored(ctx)
		m.set(nil, false)
		return nil
	case err != nil:
		m.set(nil, false)
		return fmt.Errorf("load stored session: %w", err)
	}

	if user == nil {
		m.set(nil, false)
		return nil
	}

	m.set(user, true)

	if _, err = m.auth.Validate(ctx, tokens.AccessToken); err == nil {
		m.set(user, false)
		return nil
	}
	m.logger.Info().Err(err).Msg("stored access token rejected, refreshing")

	if _, err = m.auth.Refresh(ctx); err != nil {
		m.logger.Warn().Err(err).Msg("refresh failed, signing out")
		m.clearStored(ctx)
		m.set(nil, false)
		return nil
	}

	m.set(user, false)
	return nil
}

// Login signs in with username and password. The returned error is a
// [*UserError] carrying the backend message or "Login failed".
func (m *SessionManager) Login(ctx context.Context, username, password string) error {
	m.setLoading(true)
	defer m.setLoading(false)

	resp, err := m.auth.Login(ctx, models.Credentials{Username: username, Password: password})
	if err != nil {
		m.logger.Info().Err(err).Str("username", username).Msg("login failed")
		return userError(err, app.MsgLoginFailed)
	}

	return m.start(ctx, resp, userFromAuth(resp, true), app.MsgLoginFailed)
}

// Register creates an account and signs it in. The returned error is a
// [*UserError] carrying the backend message or "Registration failed".
func (m *SessionManager) Register(ctx context.Context, req models.RegisterRequest) error {
	m.setLoading(true)
	defer m.setLoading(false)

	resp, err := m.auth.Register(ctx, req)
	if err != nil {
		m.logger.Info().Err(err).Str("username", req.Username).Msg("registration failed")
		return userError(err, app.MsgRegistrationFailed)
	}

	// the register response carries no usable id, it is resolved later
	return m.start(ctx, resp, userFromAuth(resp, false), app.MsgRegistrationFailed)
}

func (m *SessionManager) start(ctx context.Context, resp models.AuthResponse, user models.User, fallback string) error {
	tokens := models.Tokens{AccessToken: resp.Access(), RefreshToken: resp.RefreshToken}
	if err := m.tokens.SaveSession(ctx, tokens, user); err != nil {
		return userError(fmt.Errorf("persist session: %w", err), fallback)
	}

	m.mu.Lock()
	m.session.User = &user
	m.session.Expired = false
	m.publishLocked()
	m.mu.Unlock()

	m.logger.Info().Str("username", user.Username).Str("role", user.PrimaryRole().String()).Msg("signed in")
	return nil
}

// Logout ends the session. The backend is told on a best-effort basis; the
// local session is cleared regardless.
func (m *SessionManager) Logout(ctx context.Context) error {
	if err := m.auth.Logout(ctx); err != nil {
		m.logger.Warn().Err(err).Msg("server-side logout failed")
	}

	err := m.tokens.ClearSession(ctx)

	m.mu.Lock()
	m.session = models.Session{}
	m.publishLocked()
	m.mu.Unlock()

	if err != nil {
		return fmt.Errorf("clear stored session: %w", err)
	}
	return nil
}

// UpdateUser merges patch into the current user and persists the snapshot.
// Without a current user it does nothing.
func (m *SessionManager) UpdateUser(ctx context.Context, patch models.UserPatch) error {
	m.mu.Lock()
	if m.session.User == nil {
		m.mu.Unlock()
		return nil
	}
	merged := m.session.User.Merge(patch)
	m.mu.Unlock()

	if err := m.tokens.SaveUser(ctx, merged); err != nil {
		if errors.Is(err, store.ErrNoSession) {
			return nil
		}
		return fmt.Errorf("persist user snapshot: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.User != nil {
		m.session.User = &merged
		m.publishLocked()
	}
	return nil
}

func (m *SessionManager) ForgotPassword(ctx context.Context, email string) error {
	return userError(m.auth.ForgotPassword(ctx, email), app.MsgForgotPasswordFailed)
}

func (m *SessionManager) ResetPassword(ctx context.Context, token, newPassword string) error {
	return userError(m.auth.ResetPassword(ctx, token, newPassword), app.MsgResetPasswordFailed)
}

// expire runs after the transport cleared the token store.
func (m *SessionManager) expire() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.User == nil && !m.session.Loading {
		return
	}
	m.session.User = nil
	m.session.Expired = true
	m.publishLocked()
	m.logger.Info().Msg("session expired")
}

func (m *SessionManager) clearStored(ctx context.Context) {
	if err := m.tokens.ClearSession(ctx); err != nil {
		m.logger.Err(err).Msg("failed to clear stored session")
	}
}

func (m *SessionManager) set(user *models.User, loading bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.User = user
	m.session.Loading = loading
	m.publishLocked()
}

func (m *SessionManager) setLoading(loading bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.Loading = loading
	m.publishLocked()
}

func (m *SessionManager) snapshotLocked() models.Session {
	s := m.session
	if s.User != nil {
		u := *s.User
		u.Roles = append([]models.Role(nil), s.User.Roles...)
		s.User = &u
	}
	return s
}

func (m *SessionManager) publishLocked() {
	s := m.snapshotLocked()
	for _, ch := range m.subs {
		select {
		case ch <- s:
		default:
			// drop the unread value, only the latest matters
			select {
			case <-ch:
			default:
			}
			ch <- s
		}
	}
}

// userFromAuth derives the session user from a login or register response.
// Missing role, id and username are read from the access token claims.
func userFromAuth(resp models.AuthResponse, withID bool) models.User {
	user := models.User{
		Username: resp.Username,
		Email:    resp.Email,
	}
	role := resp.Role
	id := resp.UserID.String()

	if role == "" || user.Username == "" || (withID && id == "") {
		if claims, err := utils.ParseAccessClaims(resp.Access()); err == nil {
			if role == "" {
				role = models.Role(claims.Role)
			}
			if id == "" {
				id = claims.UserIDString()
			}
			if user.Username == "" {
				user.Username = claims.Subject
			}
		}
	}

	user.FirstName = user.Username
	if role != "" {
		user.Roles = []models.Role{role}
	}
	if withID {
		user.ID = id
	}
	return user
}
