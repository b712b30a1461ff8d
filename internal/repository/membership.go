package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/zacharyr0th/patron-gate/internal/model"
)

var ErrMembershipNotFound = errors.New("membership not found")

// GetMembership returns the current membership row for a (member, creator)
// pair: the latest by expiry, which is the only one access control considers.
func (r *Repository) GetMembership(ctx context.Context, memberWallet, creatorWallet string) (*model.Membership, error) {
	var membership model.Membership
	query := `
		SELECT * FROM memberships_cache
		WHERE member_wallet = $1 AND creator_wallet = $2
		ORDER BY expiry_time DESC
		LIMIT 1`

	err := r.db.GetContext(ctx, &membership, query, memberWallet, creatorWallet)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMembershipNotFound
		}
		return nil, err
	}
	return &membership, nil
}

func (r *Repository) ListMembershipsByMember(ctx context.Context, memberWallet string, activeOnly bool) ([]model.Membership, error) {
	var memberships []model.Membership
	query := "SELECT * FROM memberships_cache WHERE member_wallet = $1"
	if activeOnly {
		query += " AND expiry_time > NOW()"
	}
	query += " ORDER BY expiry_time DESC"
	err := r.db.SelectContext(ctx, &memberships, query, memberWallet)
	return memberships, err
}

func (r *Repository) ListMembershipsByCreator(ctx context.Context, creatorWallet string, activeOnly bool) ([]model.Membership, error) {
	var memberships []model.Membership
	query := "SELECT * FROM memberships_cache WHERE creator_wallet = $1"
	if activeOnly {
		query += " AND expiry_time > NOW()"
	}
	query += " ORDER BY expiry_time DESC"
	err := r.db.SelectContext(ctx, &memberships, query, creatorWallet)
	return memberships, err
}

func (r *Repository) CountActiveMembers(ctx context.Context, creatorWallet string) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM memberships_cache WHERE creator_wallet = $1 AND expiry_time > NOW()"
	err := r.db.GetContext(ctx, &count, query, creatorWallet)
	return count, err
}

// UpsertMembership replaces the cached row for (member, creator) with a fresh
// snapshot from the chain. Idempotent; a concurrent reader sees either the
// previous snapshot or the new one, never a partial write.
func (r *Repository) UpsertMembership(ctx context.Context, membership *model.Membership) error {
	membership.ID = membership.MemberWallet + "-" + membership.CreatorWallet

	query := `
		INSERT INTO memberships_cache (id, member_wallet, creator_wallet, tier_id, start_time, expiry_time, auto_renew, synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (id) DO UPDATE SET
			tier_id = EXCLUDED.tier_id,
			start_time = EXCLUDED.start_time,
			expiry_time = EXCLUDED.expiry_time,
			auto_renew = EXCLUDED.auto_renew,
			synced_at = NOW()
		RETURNING synced_at, created_at`

	return r.db.QueryRowContext(ctx, query,
		membership.ID,
		membership.MemberWallet,
		membership.CreatorWallet,
		membership.TierID,
		membership.StartTime,
		membership.ExpiryTime,
		membership.AutoRenew,
	).Scan(&membership.SyncedAt, &membership.CreatedAt)
}
