// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/commerce-console/internal/crypto"
	"github.com/MKhiriev/commerce-console/internal/logger"
	"github.com/MKhiriev/commerce-console/models"
)

const (
	entriesTable = "profile_entries"
	upsertSuffix = "ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP"
)

// runner is satisfied by both *sql.DB and *sql.Tx.
type runner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type tokenStore struct {
	*DB
	sealer crypto.Sealer
	logger *logger.Logger
}

// NewTokenStore returns a [TokenStore] whose values are sealed with sealer.
func NewTokenStore(db *DB, sealer crypto.Sealer, logger *logger.Logger) TokenStore {
	return &tokenStore{
		DB:     db,
		sealer: sealer,
		logger: logger,
	}
}

func (s *tokenStore) Get(ctx context.Context, key string) (string, error) {
	return s.get(ctx, s.DB.DB, key)
}

func (s *tokenStore) Set(ctx context.Context, key, value string) error {
	return s.put(ctx, s.DB.DB, key, value)
}

func (s *tokenStore) Clear(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.remove(ctx, s.DB.DB, keys...)
}

func (s *tokenStore) SaveSession(ctx context.Context, tokens models.Tokens, user models.User) error {
	snapshot, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user snapshot: %w", err)
	}

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		if err := s.put(ctx, tx, KeyToken, tokens.AccessToken); err != nil {
			return err
		}
		if err := s.put(ctx, tx, KeyRefreshToken, tokens.RefreshToken); err != nil {
			return err
		}
		return s.put(ctx, tx, KeyUser, string(snapshot))
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "tokenStore.SaveSession").Msg("failed to save session")
		return err
	}

	return nil
}

func (s *tokenStore) LoadSession(ctx context.Context) (models.Tokens, *models.User, error) {
	access, err := s.Get(ctx, KeyToken)
	if errors.Is(err, ErrEntryNotFound) {
		return models.Tokens{}, nil, ErrNoSession
	}
	if err != nil {
		return models.Tokens{}, nil, err
	}

	refresh, err := s.Get(ctx, KeyRefreshToken)
	if err != nil && !errors.Is(err, ErrEntryNotFound) {
		return models.Tokens{}, nil, err
	}
	tokens := models.Tokens{AccessToken: access, RefreshToken: refresh}

	snapshot, err := s.Get(ctx, KeyUser)
	if errors.Is(err, ErrEntryNotFound) {
		return tokens, nil, nil
	}
	if err != nil {
		return models.Tokens{}, nil, err
	}

	var user models.User
	if err = json.Unmarshal([]byte(snapshot), &user); err != nil {
		return models.Tokens{}, nil, fmt.Errorf("%w: decode user snapshot: %w", ErrSessionUnreadable, err)
	}

	return tokens, &user, nil
}

func (s *tokenStore) ClearSession(ctx context.Context) error {
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		return s.remove(ctx, tx, SessionKeys...)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "tokenStore.ClearSession").Msg("failed to clear session")
		return err
	}
	return nil
}

func (s *tokenStore) RotateTokens(ctx context.Context, access, refresh string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := s.get(ctx, tx, KeyToken); err != nil {
			if errors.Is(err, ErrEntryNotFound) {
				return ErrNoSession
			}
			return err
		}

		if err := s.put(ctx, tx, KeyToken, access); err != nil {
			return err
		}
		if refresh == "" {
			return nil
		}
		return s.put(ctx, tx, KeyRefreshToken, refresh)
	})
}

func (s *tokenStore) SaveUser(ctx context.Context, user models.User) error {
	snapshot, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user snapshot: %w", err)
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := s.get(ctx, tx, KeyToken); err != nil {
			if errors.Is(err, ErrEntryNotFound) {
				return ErrNoSession
			}
			return err
		}
		return s.put(ctx, tx, KeyUser, string(snapshot))
	})
}

func (s *tokenStore) get(ctx context.Context, r runner, key string) (string, error) {
	query, args, err := s.builder().
		Select("value").
		From(entriesTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var sealed string
	if err = r.QueryRowContext(ctx, query, args...).Scan(&sealed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrEntryNotFound
		}
		return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	plain, err := s.sealer.Open(sealed)
	if err != nil {
		s.logger.Warn().Err(err).Str("func", "tokenStore.get").Str("key", key).Msg("cannot open stored entry")
		return "", fmt.Errorf("%w: %w", ErrSessionUnreadable, err)
	}

	return string(plain), nil
}

func (s *tokenStore) put(ctx context.Context, r runner, key, value string) error {
	sealed, err := s.sealer.Seal([]byte(value))
	if err != nil {
		return fmt.Errorf("seal %s: %w", key, err)
	}

	query, args, err := s.builder().
		Insert(entriesTable).
		Columns("key", "value").
		Values(key, sealed).
		Suffix(upsertSuffix).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *tokenStore) remove(ctx context.Context, r runner, keys ...string) error {
	query, args, err := s.builder().
		Delete(entriesTable).
		Where(sq.Eq{"key": keys}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
