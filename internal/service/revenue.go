package service

import (
	"context"
	"errors"
	"time"

	"github.com/zacharyr0th/patron-gate/internal/model"
	"github.com/zacharyr0th/patron-gate/internal/repository"
)

type RevenueService struct {
	repo *repository.Repository
}

func NewRevenueService(repo *repository.Repository) *RevenueService {
	return &RevenueService{repo: repo}
}

// RecordPurchase appends a revenue event and bumps the creator's running
// totals. Events are keyed by transaction hash so replaying a confirmed
// purchase fails the insert instead of double counting.
func (s *RevenueService) RecordPurchase(ctx context.Context, creatorWallet, memberWallet string, amountOctas int64, tierID int, txHash string) error {
	event := &model.RevenueEvent{
		ID:              txHash,
		CreatorWallet:   creatorWallet,
		MemberWallet:    memberWallet,
		Amount:          amountOctas,
		EventType:       model.RevenueEventPurchase,
		TierID:          &tierID,
		TransactionHash: &txHash,
	}

	if err := s.repo.CreateRevenueEvent(ctx, event); err != nil {
		return err
	}

	creator, err := s.repo.GetUserByWallet(ctx, creatorWallet)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		return err
	}
	return s.repo.AddCreatorRevenue(ctx, creator.ID, amountOctas, 1)
}

func (s *RevenueService) ListByCreator(ctx context.Context, creatorWallet string, filter repository.RevenueFilter) ([]model.RevenueEvent, error) {
	return s.repo.ListRevenueByCreator(ctx, creatorWallet, filter)
}

func (s *RevenueService) Total(ctx context.Context, creatorWallet string) (int64, error) {
	return s.repo.GetTotalRevenue(ctx, creatorWallet)
}

// ByPeriod returns net revenue for the trailing window ending now.
func (s *RevenueService) ByPeriod(ctx context.Context, creatorWallet string, days int) (int64, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -days)
	return s.repo.GetRevenueByPeriod(ctx, creatorWallet, start, end)
}
