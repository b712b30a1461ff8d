package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/zacharyr0th/patron-gate/internal/model"
)

var ErrPostNotFound = errors.New("post not found")

func (r *Repository) GetPost(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := r.db.GetContext(ctx, &post, "SELECT * FROM posts WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *Repository) CreatePost(ctx context.Context, post *model.Post) error {
	query := `
		INSERT INTO posts (id, creator_id, creator_wallet, title, body, post_type, tier_requirement, is_public)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		post.ID,
		post.CreatorID,
		post.CreatorWallet,
		post.Title,
		post.Body,
		post.PostType,
		post.TierRequirement,
		post.IsPublic,
	).Scan(&post.CreatedAt, &post.UpdatedAt)
}

func (r *Repository) UpdatePost(ctx context.Context, post *model.Post) error {
	query := `
		UPDATE posts SET
			title = $2,
			body = $3,
			tier_requirement = $4,
			is_public = $5,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		post.ID,
		post.Title,
		post.Body,
		post.TierRequirement,
		post.IsPublic,
	)
	return err
}

func (r *Repository) DeletePost(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM posts WHERE id = $1", id)
	return err
}

func (r *Repository) ListPosts(ctx context.Context, limit, offset int) ([]model.Post, error) {
	var posts []model.Post
	query := "SELECT * FROM posts ORDER BY created_at DESC LIMIT $1 OFFSET $2"
	err := r.db.SelectContext(ctx, &posts, query, limit, offset)
	return posts, err
}

func (r *Repository) ListPostsByCreatorWallet(ctx context.Context, creatorWallet string, limit, offset int) ([]model.Post, error) {
	var posts []model.Post
	query := `
		SELECT * FROM posts
		WHERE creator_wallet = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &posts, query, creatorWallet, limit, offset)
	return posts, err
}
