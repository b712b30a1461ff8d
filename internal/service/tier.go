package service

import (
	"context"
	"errors"
	"strings"

	"github.com/zacharyr0th/patron-gate/internal/aptos"
	"github.com/zacharyr0th/patron-gate/internal/model"
	"github.com/zacharyr0th/patron-gate/internal/repository"
)

// ChainReader is the read-only view of the membership contract consumed by
// the sync operations.
type ChainReader interface {
	GetMembership(creatorWallet, memberWallet string) (*aptos.ChainMembership, error)
	GetTier(creatorWallet string, tierID int) (*aptos.ChainTier, error)
}

type TierService struct {
	repo  *repository.Repository
	chain ChainReader
}

func NewTierService(repo *repository.Repository, chain ChainReader) *TierService {
	return &TierService{repo: repo, chain: chain}
}

func (s *TierService) Get(ctx context.Context, creatorWallet string, tierID int) (*model.Tier, error) {
	return s.repo.GetTier(ctx, strings.ToLower(creatorWallet), tierID)
}

func (s *TierService) ListByCreator(ctx context.Context, creatorWallet string, activeOnly bool) ([]model.Tier, error) {
	return s.repo.ListTiersByCreator(ctx, strings.ToLower(creatorWallet), activeOnly)
}

// Sync refreshes the cached tier from the contract. Idempotent: it either
// leaves the cache unchanged (tier missing on chain) or replaces the row with
// a fresher snapshot. Concurrent resolutions keep reading whatever snapshot
// is visible.
func (s *TierService) Sync(ctx context.Context, creatorWallet string, tierID int) (*model.Tier, error) {
	creatorWallet = strings.ToLower(creatorWallet)

	chainTier, err := s.chain.GetTier(creatorWallet, tierID)
	if err != nil {
		if errors.Is(err, aptos.ErrTierNotFound) {
			return nil, repository.ErrTierNotFound
		}
		return nil, err
	}

	tier := &model.Tier{
		CreatorWallet:  creatorWallet,
		TierID:         chainTier.TierID,
		Name:           chainTier.Name,
		PriceMonthly:   int64(chainTier.PriceMonthly),
		PriceYearly:    int64(chainTier.PriceYearly),
		Benefits:       model.Benefits{},
		MaxMembers:     chainTier.MaxMembers,
		CurrentMembers: chainTier.CurrentMembers,
		Active:         chainTier.Active,
	}

	if err := s.repo.UpsertTier(ctx, tier); err != nil {
		return nil, err
	}
	return tier, nil
}
