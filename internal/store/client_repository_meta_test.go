package store

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/commerce-console/internal/config"
	"github.com/MKhiriev/commerce-console/internal/logger"
)

func TestProfileMetaRepository_GetOrCreate_SQLite(t *testing.T) {
	db, err := NewConnectSQLite(context.Background(), config.DB{DSN: filepath.Join(t.TempDir(), "meta.db")}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())

	repo := NewProfileMetaRepository(db, logger.Nop())
	ctx := context.Background()

	calls := 0
	create := func() ([]byte, error) {
		calls++
		return []byte("salt-1"), nil
	}

	first, err := repo.GetOrCreate(ctx, "kdf_salt", create)
	require.NoError(t, err)
	second, err := repo.GetOrCreate(ctx, "kdf_salt", create)
	require.NoError(t, err)

	assert.Equal(t, []byte("salt-1"), first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestProfileMetaRepository_GetOrCreate_Mock(t *testing.T) {
	selectQuery := regexp.QuoteMeta("SELECT value FROM profile_meta WHERE name = ?")
	insertQuery := regexp.QuoteMeta("INSERT INTO profile_meta (name,value) VALUES (?,?)")

	newRepo := func(t *testing.T) (ProfileMetaRepository, sqlmock.Sqlmock) {
		t.Helper()
		conn, mock, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { _ = conn.Close() })
		return NewProfileMetaRepository(&DB{DB: conn, logger: logger.Nop()}, logger.Nop()), mock
	}

	t.Run("query fails", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectBegin()
		mock.ExpectQuery(selectQuery).WithArgs("kdf_salt").WillReturnError(errors.New("disk I/O error"))
		mock.ExpectRollback()

		_, err := repo.GetOrCreate(context.Background(), "kdf_salt", nil)
		assert.ErrorIs(t, err, ErrExecutingQuery)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("create fails", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectBegin()
		mock.ExpectQuery(selectQuery).WithArgs("kdf_salt").WillReturnRows(sqlmock.NewRows([]string{"value"}))
		mock.ExpectRollback()

		boom := errors.New("no entropy")
		_, err := repo.GetOrCreate(context.Background(), "kdf_salt", func() ([]byte, error) { return nil, boom })
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert fails", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectBegin()
		mock.ExpectQuery(selectQuery).WithArgs("kdf_salt").WillReturnRows(sqlmock.NewRows([]string{"value"}))
		mock.ExpectExec(insertQuery).WithArgs("kdf_salt", []byte("s")).WillReturnError(errors.New("readonly database"))
		mock.ExpectRollback()

		_, err := repo.GetOrCreate(context.Background(), "kdf_salt", func() ([]byte, error) { return []byte("s"), nil })
		assert.ErrorIs(t, err, ErrExecutingStatement)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
