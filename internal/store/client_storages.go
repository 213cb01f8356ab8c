package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/commerce-console/internal/config"
	"github.com/MKhiriev/commerce-console/internal/crypto"
	"github.com/MKhiriev/commerce-console/internal/logger"
)

const kdfSaltName = "kdf_salt"

// ClientStorages groups the repositories of the operator profile.
type ClientStorages struct {
	// TokenStore keeps the session entries.
	TokenStore TokenStore

	db *DB
}

// NewClientStorages opens the profile database, applies migrations, loads
// (or creates) the key derivation salt and builds the sealed [TokenStore].
func NewClientStorages(ctx context.Context, storageCfg config.Storage, appCfg config.App, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, storageCfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	sealer, err := openSealer(ctx, NewProfileMetaRepository(db, logger), appCfg.ProfileSecret, crypto.DefaultKDFParams)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &ClientStorages{
		TokenStore: NewTokenStore(db, sealer, logger),
		db:         db,
	}, nil
}

// openSealer derives the profile key from secret and the salt kept in meta,
// creating the salt on first use.
func openSealer(ctx context.Context, meta ProfileMetaRepository, secret string, params crypto.KDFParams) (crypto.Sealer, error) {
	salt, err := meta.GetOrCreate(ctx, kdfSaltName, crypto.GenerateSalt)
	if err != nil {
		return nil, fmt.Errorf("load profile salt: %w", err)
	}

	sealer, err := crypto.NewSealer(secret, salt, params)
	if err != nil {
		return nil, fmt.Errorf("create sealer: %w", err)
	}
	return sealer, nil
}

// Close releases the database connection.
func (c *ClientStorages) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}
