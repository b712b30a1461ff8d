package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zacharyr0th/patron-gate/internal/model"
	"github.com/zacharyr0th/patron-gate/internal/repository"
)

// AccessService decides whether a viewer may retrieve a gated item. The
// decision itself is pure; the service only adds the membership lookup.
type AccessService struct {
	repo *repository.Repository
}

func NewAccessService(repo *repository.Repository) *AccessService {
	return &AccessService{repo: repo}
}

// Resolve is the access decision for a (viewer, item, membership) triple.
// Policy denials come back as a tagged decision, never an error:
//
//  1. public items are open to everyone, including anonymous viewers
//  2. otherwise a viewer wallet is required
//  3. creators always pass their own gate, whatever their membership state
//  4. a membership row must exist and must not be expired
//  5. no tier requirement means any active membership suffices
//  6. otherwise the membership tier ordinal must meet the requirement;
//     equal tier satisfies, and the held tier is surfaced on denial
func Resolve(viewerWallet string, item model.GatedItem, membership *model.Membership, now time.Time) model.AccessDecision {
	if item.IsPublic {
		return model.Granted()
	}

	if viewerWallet == "" {
		return model.Denied(model.DenialAuthRequired)
	}

	if strings.EqualFold(viewerWallet, item.OwnerWallet) {
		return model.Granted()
	}

	if membership == nil {
		return model.Denied(model.DenialNoMembership)
	}

	if !membership.ActiveAt(now) {
		return model.Denied(model.DenialMembershipExpired)
	}

	if item.TierRequirement == nil {
		return model.Granted()
	}

	if membership.TierID >= *item.TierRequirement {
		return model.Granted()
	}

	tier := membership.TierID
	decision := model.Denied(model.DenialTierTooLow)
	decision.CurrentTier = &tier
	decision.RequiredTier = item.TierRequirement
	return decision
}

// ResolveItem fetches the viewer's membership with the item's owner and runs
// Resolve. A lookup-store failure is an infrastructure error, reported
// distinctly from a NO_MEMBERSHIP denial.
func (s *AccessService) ResolveItem(ctx context.Context, viewerWallet string, item model.GatedItem) (model.AccessDecision, error) {
	// Short-circuit the paths that never need the lookup.
	if item.IsPublic || viewerWallet == "" || strings.EqualFold(viewerWallet, item.OwnerWallet) {
		return Resolve(viewerWallet, item, nil, time.Now()), nil
	}

	membership, err := s.repo.GetMembership(ctx, strings.ToLower(viewerWallet), strings.ToLower(item.OwnerWallet))
	if err != nil && !errors.Is(err, repository.ErrMembershipNotFound) {
		return model.AccessDecision{}, fmt.Errorf("membership lookup failed: %w", err)
	}

	return Resolve(viewerWallet, item, membership, time.Now()), nil
}
