package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewWithDB(sqlx.NewDb(db, "sqlmock")), mock
}

func TestConsumeChunksets(t *testing.T) {
	ctx := context.Background()

	t.Run("guard passes, one row updated", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("UPDATE storage_sessions").
			WithArgs("shelby_x", 2).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.ConsumeChunksets(ctx, "shelby_x", 2)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("guard fails, no mutation", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("UPDATE storage_sessions").
			WithArgs("shelby_x", 3).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.ConsumeChunksets(ctx, "shelby_x", 3)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestGetValidStorageSession(t *testing.T) {
	ctx := context.Background()

	t.Run("valid session returned", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		rows := sqlmock.NewRows([]string{
			"id", "user_wallet", "chunksets_total", "chunksets_remaining", "transaction_hash", "expires_at", "created_at",
		}).AddRow("shelby_x", "0xmember", 5, 3, "0xabc", time.Now().Add(time.Hour), time.Now())

		mock.ExpectQuery("SELECT \\* FROM storage_sessions WHERE id = \\$1 AND expires_at > NOW").
			WithArgs("shelby_x").
			WillReturnRows(rows)

		session, err := repo.GetValidStorageSession(ctx, "shelby_x")
		require.NoError(t, err)
		assert.Equal(t, 3, session.ChunksetsRemaining)
	})

	t.Run("expired session is reported as absent", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("SELECT \\* FROM storage_sessions").
			WithArgs("shelby_old").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetValidStorageSession(ctx, "shelby_old")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestDeleteExpiredStorageSessions(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM storage_sessions WHERE expires_at < NOW").
		WillReturnResult(sqlmock.NewResult(0, 7))

	deleted, err := repo.DeleteExpiredStorageSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), deleted)
}
