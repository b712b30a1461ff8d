package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/zacharyr0th/patron-gate/internal/model"
)

var ErrSessionNotFound = errors.New("storage session not found")

func (r *Repository) CreateStorageSession(ctx context.Context, session *model.StorageSession) error {
	query := `
		INSERT INTO storage_sessions (id, user_wallet, chunksets_total, chunksets_remaining, transaction_hash, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowContext(ctx, query,
		session.ID,
		session.UserWallet,
		session.ChunksetsTotal,
		session.ChunksetsRemaining,
		session.TransactionHash,
		session.ExpiresAt,
	).Scan(&session.CreatedAt)
}

func (r *Repository) GetStorageSession(ctx context.Context, id string) (*model.StorageSession, error) {
	var session model.StorageSession
	err := r.db.GetContext(ctx, &session, "SELECT * FROM storage_sessions WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

// GetValidStorageSession treats an expired session as absent. Cleanup of the
// actual rows is a separate maintenance operation, not done on the hot path.
func (r *Repository) GetValidStorageSession(ctx context.Context, id string) (*model.StorageSession, error) {
	var session model.StorageSession
	query := "SELECT * FROM storage_sessions WHERE id = $1 AND expires_at > NOW()"
	err := r.db.GetContext(ctx, &session, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

// ConsumeChunksets decrements the balance only if the session is still valid
// and holds enough credit, as a single conditional UPDATE. The predicate runs
// inside the statement so two concurrent consumers can never both pass a stale
// balance check and overdraw; the database serializes the row update.
// Returns false with no mutation when the guard fails.
func (r *Repository) ConsumeChunksets(ctx context.Context, id string, amount int) (bool, error) {
	query := `
		UPDATE storage_sessions
		SET chunksets_remaining = chunksets_remaining - $2
		WHERE id = $1 AND expires_at > NOW() AND chunksets_remaining >= $2`

	result, err := r.db.ExecContext(ctx, query, id, amount)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

func (r *Repository) DeleteStorageSession(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM storage_sessions WHERE id = $1", id)
	return err
}

func (r *Repository) DeleteExpiredStorageSessions(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM storage_sessions WHERE expires_at < NOW()")
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
