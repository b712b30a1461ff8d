package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/zacharyr0th/patron-gate/internal/model"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrCreatorNotFound = errors.New("creator profile not found")
)

func (r *Repository) GetUser(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByWallet(ctx context.Context, wallet string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE wallet_address = $1", strings.ToLower(wallet))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, wallet_address, username, email, bio, avatar_url, is_creator)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		user.ID,
		strings.ToLower(user.WalletAddress),
		user.Username,
		user.Email,
		user.Bio,
		user.AvatarURL,
		user.IsCreator,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *Repository) UpdateUserProfile(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users SET
			username = $2,
			email = $3,
			bio = $4,
			avatar_url = $5,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.Bio,
		user.AvatarURL,
	)
	return err
}

func (r *Repository) PromoteToCreator(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET is_creator = TRUE, updated_at = NOW() WHERE id = $1",
		userID,
	)
	return err
}

func (r *Repository) GetCreatorProfile(ctx context.Context, userID string) (*model.CreatorProfile, error) {
	var profile model.CreatorProfile
	err := r.db.GetContext(ctx, &profile, "SELECT * FROM creator_profiles WHERE user_id = $1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCreatorNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *Repository) CreateCreatorProfile(ctx context.Context, profile *model.CreatorProfile) error {
	query := `
		INSERT INTO creator_profiles (user_id, display_name, banner_url, social_links, total_revenue, total_members, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		profile.UserID,
		profile.DisplayName,
		profile.BannerURL,
		profile.SocialLinks,
		profile.TotalRevenue,
		profile.TotalMembers,
		profile.Category,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

func (r *Repository) UpdateCreatorProfile(ctx context.Context, profile *model.CreatorProfile) error {
	query := `
		UPDATE creator_profiles SET
			display_name = $2,
			banner_url = $3,
			social_links = $4,
			category = $5,
			updated_at = NOW()
		WHERE user_id = $1`

	_, err := r.db.ExecContext(ctx, query,
		profile.UserID,
		profile.DisplayName,
		profile.BannerURL,
		profile.SocialLinks,
		profile.Category,
	)
	return err
}

// AddCreatorRevenue bumps the aggregate counters kept on the profile.
// delta is octas, memberDelta may be zero for renewals.
func (r *Repository) AddCreatorRevenue(ctx context.Context, userID string, delta int64, memberDelta int) error {
	query := `
		UPDATE creator_profiles SET
			total_revenue = total_revenue + $2,
			total_members = total_members + $3,
			updated_at = NOW()
		WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID, delta, memberDelta)
	return err
}

func (r *Repository) ListCreators(ctx context.Context, category string, limit, offset int) ([]model.User, error) {
	var users []model.User
	if category != "" {
		query := `
			SELECT u.* FROM users u
			JOIN creator_profiles p ON p.user_id = u.id
			WHERE u.is_creator = TRUE AND p.category = $1
			ORDER BY p.total_members DESC
			LIMIT $2 OFFSET $3`
		err := r.db.SelectContext(ctx, &users, query, category, limit, offset)
		return users, err
	}

	query := `
		SELECT * FROM users
		WHERE is_creator = TRUE
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &users, query, limit, offset)
	return users, err
}
