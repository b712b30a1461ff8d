package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/zacharyr0th/patron-gate/internal/model"
	"github.com/zacharyr0th/patron-gate/internal/repository"
)

type NotificationService struct {
	repo *repository.Repository
}

func NewNotificationService(repo *repository.Repository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]model.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListNotifications(ctx, userID, unreadOnly, limit, offset)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	return s.repo.MarkNotificationRead(ctx, userID, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllNotificationsRead(ctx, userID)
}

func (s *NotificationService) CountUnread(ctx context.Context, userID string) (int, error) {
	return s.repo.CountUnreadNotifications(ctx, userID)
}

func (s *NotificationService) create(ctx context.Context, userID string, typ model.NotificationType, title, message string, link *string, metadata model.Metadata) error {
	return s.repo.CreateNotification(ctx, &model.Notification{
		ID:       uuid.NewString(),
		UserID:   userID,
		Type:     typ,
		Title:    title,
		Message:  message,
		Link:     link,
		Metadata: metadata,
	})
}

// NotifyNewMember tells the creator about a fresh purchase. Fire-and-forget:
// a lost notification never fails the purchase that triggered it.
func (s *NotificationService) NotifyNewMember(creatorWallet, memberWallet string, tierID int) {
	go func() {
		ctx := context.Background()
		creator, err := s.repo.GetUserByWallet(ctx, strings.ToLower(creatorWallet))
		if err != nil {
			log.Printf("[Notifications] new member notify skipped: %v", err)
			return
		}
		err = s.create(ctx, creator.ID,
			model.NotificationNewMember,
			"New member",
			fmt.Sprintf("%s joined tier %d", shortWallet(memberWallet), tierID),
			nil,
			model.Metadata{"member_wallet": strings.ToLower(memberWallet), "tier_id": tierID},
		)
		if err != nil {
			log.Printf("[Notifications] failed to create new member notification: %v", err)
		}
	}()
}

// NotifyContentPublished fans a notification out to every active member of
// the creator. Runs in the background off the upload path.
func (s *NotificationService) NotifyContentPublished(creatorWallet, contentID, title string) {
	go func() {
		ctx := context.Background()
		creatorWallet = strings.ToLower(creatorWallet)

		members, err := s.repo.ListMembershipsByCreator(ctx, creatorWallet, true)
		if err != nil {
			log.Printf("[Notifications] content publish fanout skipped: %v", err)
			return
		}

		link := "/content/" + contentID
		for _, m := range members {
			member, err := s.repo.GetUserByWallet(ctx, m.MemberWallet)
			if err != nil {
				continue
			}
			err = s.create(ctx, member.ID,
				model.NotificationContentPublished,
				"New content",
				fmt.Sprintf("%s published %q", shortWallet(creatorWallet), title),
				&link,
				model.Metadata{"content_id": contentID, "creator_wallet": creatorWallet},
			)
			if err != nil {
				log.Printf("[Notifications] failed to notify %s: %v", member.ID, err)
			}
		}
	}()
}

// shortWallet renders 0x1234...abcd for display strings.
func shortWallet(wallet string) string {
	if len(wallet) <= 12 {
		return wallet
	}
	return wallet[:6] + "..." + wallet[len(wallet)-4:]
}
