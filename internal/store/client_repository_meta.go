package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/commerce-console/internal/logger"
)

const metaTable = "profile_meta"

type profileMetaRepository struct {
	*DB
	logger *logger.Logger
}

// NewProfileMetaRepository returns the SQLite [ProfileMetaRepository].
func NewProfileMetaRepository(db *DB, logger *logger.Logger) ProfileMetaRepository {
	return &profileMetaRepository{DB: db, logger: logger}
}

func (p *profileMetaRepository) GetOrCreate(ctx context.Context, name string, create func() ([]byte, error)) ([]byte, error) {
	var value []byte

	err := p.inTx(ctx, func(tx *sql.Tx) error {
		query, args, err := p.builder().
			Select("value").
			From(metaTable).
			Where(sq.Eq{"name": name}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		err = tx.QueryRowContext(ctx, query, args...).Scan(&value)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		if value, err = create(); err != nil {
			return err
		}

		insert, insertArgs, err := p.builder().
			Insert(metaTable).
			Columns("name", "value").
			Values(name, value).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err = tx.ExecContext(ctx, insert, insertArgs...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		p.logger.Info().Str("func", "profileMetaRepository.GetOrCreate").Str("name", name).Msg("profile metadata created")
		return nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}
