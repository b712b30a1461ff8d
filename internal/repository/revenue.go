package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/zacharyr0th/patron-gate/internal/model"
)

func (r *Repository) CreateRevenueEvent(ctx context.Context, event *model.RevenueEvent) error {
	query := `
		INSERT INTO revenue_events (id, creator_wallet, member_wallet, amount, event_type, tier_id, transaction_hash, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	return r.db.QueryRowContext(ctx, query,
		event.ID,
		event.CreatorWallet,
		event.MemberWallet,
		event.Amount,
		event.EventType,
		event.TierID,
		event.TransactionHash,
		event.Metadata,
	).Scan(&event.CreatedAt)
}

type RevenueFilter struct {
	EventType model.RevenueEventType
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

func (r *Repository) ListRevenueByCreator(ctx context.Context, creatorWallet string, filter RevenueFilter) ([]model.RevenueEvent, error) {
	query := "SELECT * FROM revenue_events WHERE creator_wallet = $1"
	args := []interface{}{creatorWallet}

	if filter.EventType != "" {
		args = append(args, filter.EventType)
		query += " AND event_type = $2"
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += " AND created_at >= $" + strconv.Itoa(len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += " AND created_at <= $" + strconv.Itoa(len(args))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	var events []model.RevenueEvent
	err := r.db.SelectContext(ctx, &events, query, args...)
	return events, err
}

func (r *Repository) GetTotalRevenue(ctx context.Context, creatorWallet string) (int64, error) {
	var total int64
	query := `
		SELECT COALESCE(SUM(amount), 0) FROM revenue_events
		WHERE creator_wallet = $1 AND event_type = $2`
	err := r.db.GetContext(ctx, &total, query, creatorWallet, model.RevenueEventPurchase)
	return total, err
}

// GetRevenueByPeriod nets purchases against withdrawals within the window.
func (r *Repository) GetRevenueByPeriod(ctx context.Context, creatorWallet string, start, end time.Time) (int64, error) {
	var total int64
	query := `
		SELECT COALESCE(SUM(CASE WHEN event_type = $2 THEN -amount ELSE amount END), 0)
		FROM revenue_events
		WHERE creator_wallet = $1 AND created_at >= $3 AND created_at <= $4`
	err := r.db.GetContext(ctx, &total, query, creatorWallet, model.RevenueEventWithdrawal, start, end)
	return total, err
}
