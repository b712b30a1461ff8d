package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/zacharyr0th/patron-gate/internal/model"
)

var ErrTierNotFound = errors.New("tier not found")

func (r *Repository) GetTier(ctx context.Context, creatorWallet string, tierID int) (*model.Tier, error) {
	var tier model.Tier
	query := "SELECT * FROM membership_tiers_cache WHERE creator_wallet = $1 AND tier_id = $2"
	err := r.db.GetContext(ctx, &tier, query, creatorWallet, tierID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTierNotFound
		}
		return nil, err
	}
	return &tier, nil
}

func (r *Repository) ListTiersByCreator(ctx context.Context, creatorWallet string, activeOnly bool) ([]model.Tier, error) {
	var tiers []model.Tier
	query := "SELECT * FROM membership_tiers_cache WHERE creator_wallet = $1"
	if activeOnly {
		query += " AND active = TRUE"
	}
	query += " ORDER BY tier_id ASC"
	err := r.db.SelectContext(ctx, &tiers, query, creatorWallet)
	return tiers, err
}

// UpsertTier replaces the cached row for (creator, tier_id) with a fresh
// snapshot from the chain. Idempotent, safe to run concurrently with reads.
func (r *Repository) UpsertTier(ctx context.Context, tier *model.Tier) error {
	tier.ID = fmt.Sprintf("%s-tier-%d", tier.CreatorWallet, tier.TierID)

	query := `
		INSERT INTO membership_tiers_cache (id, creator_wallet, tier_id, name, price_monthly, price_yearly, benefits, max_members, current_members, active, synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			price_monthly = EXCLUDED.price_monthly,
			price_yearly = EXCLUDED.price_yearly,
			benefits = EXCLUDED.benefits,
			max_members = EXCLUDED.max_members,
			current_members = EXCLUDED.current_members,
			active = EXCLUDED.active,
			synced_at = NOW()
		RETURNING synced_at, created_at`

	return r.db.QueryRowContext(ctx, query,
		tier.ID,
		tier.CreatorWallet,
		tier.TierID,
		tier.Name,
		tier.PriceMonthly,
		tier.PriceYearly,
		tier.Benefits,
		tier.MaxMembers,
		tier.CurrentMembers,
		tier.Active,
	).Scan(&tier.SyncedAt, &tier.CreatedAt)
}
