package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/zacharyr0th/patron-gate/internal/aptos"
	"github.com/zacharyr0th/patron-gate/internal/model"
	"github.com/zacharyr0th/patron-gate/internal/repository"
)

type MembershipService struct {
	repo     *repository.Repository
	chain    ChainReader
	verifier PaymentVerifier

	revenueSvc      *RevenueService
	notificationSvc *NotificationService
}

func NewMembershipService(repo *repository.Repository, chain ChainReader, verifier PaymentVerifier) *MembershipService {
	return &MembershipService{repo: repo, chain: chain, verifier: verifier}
}

// SetRevenueService sets the revenue service (to avoid circular dependency).
func (s *MembershipService) SetRevenueService(revenueSvc *RevenueService) {
	s.revenueSvc = revenueSvc
}

// SetNotificationService sets the notification service.
func (s *MembershipService) SetNotificationService(notificationSvc *NotificationService) {
	s.notificationSvc = notificationSvc
}

func (s *MembershipService) Get(ctx context.Context, memberWallet, creatorWallet string) (*model.Membership, error) {
	return s.repo.GetMembership(ctx, strings.ToLower(memberWallet), strings.ToLower(creatorWallet))
}

func (s *MembershipService) ListByMember(ctx context.Context, memberWallet string, activeOnly bool) ([]model.Membership, error) {
	return s.repo.ListMembershipsByMember(ctx, strings.ToLower(memberWallet), activeOnly)
}

func (s *MembershipService) ListByCreator(ctx context.Context, creatorWallet string, activeOnly bool) ([]model.Membership, error) {
	return s.repo.ListMembershipsByCreator(ctx, strings.ToLower(creatorWallet), activeOnly)
}

// Sync refreshes the cached membership from the contract. When the chain has
// no membership for the pair the cache is left untouched; otherwise the row
// is replaced with the fresh snapshot. Safe to run concurrently with access
// resolution.
func (s *MembershipService) Sync(ctx context.Context, memberWallet, creatorWallet string) (*model.Membership, error) {
	memberWallet = strings.ToLower(memberWallet)
	creatorWallet = strings.ToLower(creatorWallet)

	chainMembership, err := s.chain.GetMembership(creatorWallet, memberWallet)
	if err != nil {
		if errors.Is(err, aptos.ErrMembershipNotFound) {
			return nil, repository.ErrMembershipNotFound
		}
		return nil, err
	}

	membership := &model.Membership{
		MemberWallet:  memberWallet,
		CreatorWallet: creatorWallet,
		TierID:        chainMembership.TierID,
		StartTime:     chainMembership.StartTime,
		ExpiryTime:    chainMembership.ExpiryTime,
		AutoRenew:     chainMembership.AutoRenew,
	}

	if err := s.repo.UpsertMembership(ctx, membership); err != nil {
		return nil, err
	}
	return membership, nil
}

type PurchaseRequest struct {
	CreatorWallet   string `json:"creator_wallet" validate:"required"`
	TierID          int    `json:"tier_id" validate:"min=0"`
	AmountOctas     int64  `json:"amount_octas" validate:"min=1"`
	TransactionHash string `json:"transaction_hash" validate:"required"`
}

// RecordPurchase is called after the member has signed the purchase on chain:
// it confirms the transaction, refreshes the membership cache, appends the
// revenue event and bumps the creator's aggregates. Ledger bookkeeping
// failures after a confirmed purchase are logged, not surfaced - the
// membership itself lives on chain and the next sync repairs the cache.
func (s *MembershipService) RecordPurchase(ctx context.Context, memberWallet string, req PurchaseRequest) (*model.Membership, error) {
	memberWallet = strings.ToLower(memberWallet)
	creatorWallet := strings.ToLower(req.CreatorWallet)

	payment, err := s.verifier.VerifyPaymentTransaction(req.TransactionHash)
	if err != nil {
		return nil, fmt.Errorf("purchase verification failed: %w", err)
	}

	membership, err := s.Sync(ctx, memberWallet, creatorWallet)
	if err != nil {
		return nil, err
	}

	if s.revenueSvc != nil {
		if err := s.revenueSvc.RecordPurchase(ctx, creatorWallet, memberWallet, req.AmountOctas, req.TierID, payment.Hash); err != nil {
			log.Printf("[Membership] failed to record revenue for %s: %v", payment.Hash, err)
		}
	}

	if s.notificationSvc != nil {
		s.notificationSvc.NotifyNewMember(creatorWallet, memberWallet, req.TierID)
	}

	return membership, nil
}
