package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zacharyr0th/patron-gate/internal/aptos"
	"github.com/zacharyr0th/patron-gate/internal/config"
	"github.com/zacharyr0th/patron-gate/internal/repository"
)

type stubVerifier struct {
	payment *aptos.PaymentInfo
	err     error
}

func (v *stubVerifier) VerifyPaymentTransaction(txHash string) (*aptos.PaymentInfo, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.payment, nil
}

func testShelbyConfig() *config.Config {
	return &config.Config{
		Shelby: config.ShelbyConfig{
			OctasPerChunkset: 100000,
			ChunksetSizeMB:   10,
			SessionTTL:       24 * time.Hour,
		},
	}
}

func newSessionService(t *testing.T, verifier PaymentVerifier) (*StorageSessionService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.NewWithDB(sqlx.NewDb(db, "sqlmock"))
	return NewStorageSessionService(repo, verifier, testShelbyConfig()), mock
}

func TestChunksetsFor(t *testing.T) {
	assert.Equal(t, 2, ChunksetsFor(250000, 100000), "fractional remainder is floored")
	assert.Equal(t, 1, ChunksetsFor(100000, 100000))
	assert.Equal(t, 0, ChunksetsFor(99999, 100000))
	assert.Equal(t, 0, ChunksetsFor(250000, 0))
}

func TestEstimateChunksets(t *testing.T) {
	mb := int64(1024 * 1024)

	assert.Equal(t, 1, EstimateChunksets(1024, 10), "minimum one chunkset")
	assert.Equal(t, 1, EstimateChunksets(10*mb, 10))
	assert.Equal(t, 2, EstimateChunksets(10*mb+1, 10))
	assert.Equal(t, 3, EstimateChunksets(25*mb, 10))
	assert.Equal(t, 1, EstimateChunksets(0, 10))
}

func TestStorageSessionService_Create(t *testing.T) {
	paidAt := time.Now().Add(-time.Minute)
	verifier := &stubVerifier{payment: &aptos.PaymentInfo{
		Hash:      "0xabc",
		Sender:    "0xmember",
		Timestamp: paidAt,
	}}

	t.Run("balance is floor of amount over price", func(t *testing.T) {
		svc, mock := newSessionService(t, verifier)

		mock.ExpectQuery("INSERT INTO storage_sessions").
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

		session, err := svc.Create(context.Background(), "0xmember", 250000, "0xabc")
		require.NoError(t, err)
		assert.Equal(t, 2, session.ChunksetsTotal)
		assert.Equal(t, 2, session.ChunksetsRemaining)
		assert.Equal(t, "0xabc", session.TransactionHash)
		assert.True(t, session.ExpiresAt.Equal(paidAt.Add(24*time.Hour)))
		assert.Contains(t, session.ID, "shelby_")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("payment below one chunkset is rejected", func(t *testing.T) {
		svc, _ := newSessionService(t, verifier)

		_, err := svc.Create(context.Background(), "0xmember", 99999, "0xabc")
		assert.ErrorIs(t, err, ErrInvalidPayment)
	})

	t.Run("failed verification propagates", func(t *testing.T) {
		svc, _ := newSessionService(t, &stubVerifier{err: aptos.ErrTransactionFailed})

		_, err := svc.Create(context.Background(), "0xmember", 250000, "0xbad")
		assert.ErrorIs(t, err, aptos.ErrTransactionFailed)
	})
}

func TestStorageSessionService_Consume(t *testing.T) {
	t.Run("negative amount fails fast without touching the store", func(t *testing.T) {
		svc, mock := newSessionService(t, &stubVerifier{})

		err := svc.Consume(context.Background(), "shelby_x", -1)
		assert.ErrorIs(t, err, ErrInvalidConsumeAmount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("successful decrement", func(t *testing.T) {
		svc, mock := newSessionService(t, &stubVerifier{})

		mock.ExpectExec("UPDATE storage_sessions").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := svc.Consume(context.Background(), "shelby_x", 2)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("refusal on missing session", func(t *testing.T) {
		svc, mock := newSessionService(t, &stubVerifier{})

		mock.ExpectExec("UPDATE storage_sessions").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT \\* FROM storage_sessions").
			WillReturnError(sql.ErrNoRows)

		err := svc.Consume(context.Background(), "shelby_gone", 1)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("refusal on expired session", func(t *testing.T) {
		svc, mock := newSessionService(t, &stubVerifier{})

		mock.ExpectExec("UPDATE storage_sessions").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT \\* FROM storage_sessions").
			WillReturnRows(sessionRows("shelby_x", 5, time.Now().Add(-time.Hour)))

		err := svc.Consume(context.Background(), "shelby_x", 1)
		assert.ErrorIs(t, err, ErrSessionExpired)
	})

	t.Run("refusal on insufficient balance reports shortfall", func(t *testing.T) {
		svc, mock := newSessionService(t, &stubVerifier{})

		mock.ExpectExec("UPDATE storage_sessions").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT \\* FROM storage_sessions").
			WillReturnRows(sessionRows("shelby_x", 2, time.Now().Add(time.Hour)))

		err := svc.Consume(context.Background(), "shelby_x", 3)

		var insufficient *InsufficientCreditsError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, 3, insufficient.Need)
		assert.Equal(t, 2, insufficient.Have)
		assert.Equal(t, "insufficient chunksets: need 3, have 2", insufficient.Error())
	})
}

func sessionRows(id string, remaining int, expiresAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_wallet", "chunksets_total", "chunksets_remaining", "transaction_hash", "expires_at", "created_at",
	}).AddRow(id, "0xmember", 5, remaining, "0xabc", expiresAt, time.Now().Add(-time.Hour))
}
