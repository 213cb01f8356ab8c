package store

import (
	"context"

	"github.com/MKhiriev/commerce-console/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// Keys of the session entries kept in the token store.
const (
	KeyToken        = "token"
	KeyRefreshToken = "refreshToken"
	KeyUser         = "user"
)

// SessionKeys lists the entries written and cleared as a unit.
var SessionKeys = []string{KeyToken, KeyRefreshToken, KeyUser}

// TokenStore is the durable key-value store of the operator session.
//
// Values survive restarts of the console within the same profile. The store
// performs no validation and tracks no expiry. The three session entries are
// only ever written together ([TokenStore.SaveSession]), cleared together
// ([TokenStore.ClearSession]) or rotated inside one transaction
// ([TokenStore.RotateTokens]).
type TokenStore interface {
	// Get returns the value stored under key or [ErrEntryNotFound].
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Clear removes the given keys. Missing keys are ignored.
	Clear(ctx context.Context, keys ...string) error

	// SaveSession writes the access token, the refresh token and the user
	// snapshot in one transaction.
	SaveSession(ctx context.Context, tokens models.Tokens, user models.User) error

	// LoadSession returns the stored tokens and user snapshot. It returns
	// [ErrNoSession] when no access token is stored. The user is nil when no
	// snapshot is stored.
	LoadSession(ctx context.Context) (models.Tokens, *models.User, error)

	// SaveUser replaces the user snapshot of the current session. Like
	// RotateTokens it fails with [ErrNoSession] when no session is stored.
	SaveUser(ctx context.Context, user models.User) error

	// ClearSession removes all three session entries in one transaction.
	ClearSession(ctx context.Context) error

	// RotateTokens replaces the access token and, when refresh is not empty,
	// the refresh token. It fails with [ErrNoSession] instead of recreating a
	// session that was cleared in the meantime.
	RotateTokens(ctx context.Context, access, refresh string) error
}

// ProfileMetaRepository keeps profile-level metadata such as the key
// derivation salt.
type ProfileMetaRepository interface {
	// GetOrCreate returns the value stored under name, storing and returning
	// the result of create when nothing is stored yet.
	GetOrCreate(ctx context.Context, name string, create func() ([]byte, error)) ([]byte, error)
}
