package repository

import (
	"context"

	"github.com/zacharyr0th/patron-gate/internal/model"
)

func (r *Repository) CreateNotification(ctx context.Context, notification *model.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, title, message, read, link, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	return r.db.QueryRowContext(ctx, query,
		notification.ID,
		notification.UserID,
		notification.Type,
		notification.Title,
		notification.Message,
		notification.Read,
		notification.Link,
		notification.Metadata,
	).Scan(&notification.CreatedAt)
}

func (r *Repository) ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]model.Notification, error) {
	var notifications []model.Notification
	query := "SELECT * FROM notifications WHERE user_id = $1"
	if unreadOnly {
		query += " AND read = FALSE"
	}
	query += " ORDER BY created_at DESC LIMIT $2 OFFSET $3"
	err := r.db.SelectContext(ctx, &notifications, query, userID, limit, offset)
	return notifications, err
}

func (r *Repository) MarkNotificationRead(ctx context.Context, userID, id string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2",
		id, userID,
	)
	return err
}

func (r *Repository) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE",
		userID,
	)
	return err
}

func (r *Repository) CountUnreadNotifications(ctx context.Context, userID string) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = FALSE"
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}
