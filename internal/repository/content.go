package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/zacharyr0th/patron-gate/internal/model"
)

var ErrContentNotFound = errors.New("content not found")

func (r *Repository) GetContent(ctx context.Context, id string) (*model.Content, error) {
	var content model.Content
	err := r.db.GetContext(ctx, &content, "SELECT * FROM content WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return &content, nil
}

func (r *Repository) CreateContent(ctx context.Context, content *model.Content) error {
	query := `
		INSERT INTO content (
			id, creator_id, creator_wallet, title, description, content_type, file_size,
			duration, tier_requirement, is_public, blob_cid, blob_url, chunkset_id,
			upload_session_id, thumbnail_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING uploaded_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		content.ID,
		content.CreatorID,
		content.CreatorWallet,
		content.Title,
		content.Description,
		content.ContentType,
		content.FileSize,
		content.Duration,
		content.TierRequirement,
		content.IsPublic,
		content.BlobCID,
		content.BlobURL,
		content.ChunksetID,
		content.UploadSessionID,
		content.ThumbnailURL,
	).Scan(&content.UploadedAt, &content.UpdatedAt)
}

func (r *Repository) UpdateContent(ctx context.Context, content *model.Content) error {
	query := `
		UPDATE content SET
			title = $2,
			description = $3,
			tier_requirement = $4,
			is_public = $5,
			thumbnail_url = $6,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		content.ID,
		content.Title,
		content.Description,
		content.TierRequirement,
		content.IsPublic,
		content.ThumbnailURL,
	)
	return err
}

func (r *Repository) DeleteContent(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM content WHERE id = $1", id)
	return err
}

func (r *Repository) ListPublicContent(ctx context.Context, limit, offset int) ([]model.Content, error) {
	var items []model.Content
	query := `
		SELECT * FROM content
		WHERE is_public = TRUE
		ORDER BY uploaded_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &items, query, limit, offset)
	return items, err
}

func (r *Repository) ListContentByCreatorWallet(ctx context.Context, creatorWallet string, limit, offset int) ([]model.Content, error) {
	var items []model.Content
	query := `
		SELECT * FROM content
		WHERE creator_wallet = $1
		ORDER BY uploaded_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &items, query, creatorWallet, limit, offset)
	return items, err
}

func (r *Repository) CountContentByCreator(ctx context.Context, creatorWallet string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM content WHERE creator_wallet = $1", creatorWallet)
	return count, err
}

func (r *Repository) TopContentByStreams(ctx context.Context, creatorWallet string, limit int) ([]model.Content, error) {
	var items []model.Content
	query := `
		SELECT * FROM content
		WHERE creator_wallet = $1
		ORDER BY stream_count DESC
		LIMIT $2`
	err := r.db.SelectContext(ctx, &items, query, creatorWallet, limit)
	return items, err
}

// Counter increments are lossy-tolerant by design: callers fire them off the
// request path and swallow failures.
func (r *Repository) IncrementStreamCount(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE content SET stream_count = stream_count + 1, updated_at = NOW() WHERE id = $1", id)
	return err
}

func (r *Repository) IncrementViewCount(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE content SET view_count = view_count + 1, updated_at = NOW() WHERE id = $1", id)
	return err
}
