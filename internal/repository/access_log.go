package repository

import (
	"context"

	"github.com/zacharyr0th/patron-gate/internal/model"
)

func (r *Repository) CreateAccessLog(ctx context.Context, entry *model.AccessLog) error {
	query := `
		INSERT INTO access_logs (id, user_wallet, content_id, access_type, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING accessed_at`

	return r.db.QueryRowContext(ctx, query,
		entry.ID,
		entry.UserWallet,
		entry.ContentID,
		entry.AccessType,
		entry.IPAddress,
		entry.UserAgent,
	).Scan(&entry.AccessedAt)
}

func (r *Repository) ListAccessLogsByContent(ctx context.Context, contentID string, limit, offset int) ([]model.AccessLog, error) {
	var logs []model.AccessLog
	query := `
		SELECT * FROM access_logs
		WHERE content_id = $1
		ORDER BY accessed_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &logs, query, contentID, limit, offset)
	return logs, err
}
