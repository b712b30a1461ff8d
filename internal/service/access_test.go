package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zacharyr0th/patron-gate/internal/model"
)

func intPtr(v int) *int { return &v }

func activeMembership(tierID int) *model.Membership {
	return &model.Membership{
		MemberWallet:  "0xmember",
		CreatorWallet: "0xcreator",
		TierID:        tierID,
		StartTime:     time.Now().Add(-24 * time.Hour),
		ExpiryTime:    time.Now().Add(24 * time.Hour),
	}
}

func expiredMembership(tierID int) *model.Membership {
	m := activeMembership(tierID)
	m.ExpiryTime = time.Now().Add(-time.Hour)
	return m
}

func TestResolve_PublicContent(t *testing.T) {
	now := time.Now()
	item := model.GatedItem{OwnerWallet: "0xcreator", IsPublic: true, TierRequirement: intPtr(3)}

	t.Run("anonymous viewer is granted", func(t *testing.T) {
		decision := Resolve("", item, nil, now)
		assert.True(t, decision.Granted)
		assert.Empty(t, decision.Reason)
	})

	t.Run("viewer with expired membership is granted", func(t *testing.T) {
		decision := Resolve("0xmember", item, expiredMembership(1), now)
		assert.True(t, decision.Granted)
	})
}

func TestResolve_AuthRequired(t *testing.T) {
	item := model.GatedItem{OwnerWallet: "0xcreator"}

	decision := Resolve("", item, nil, time.Now())
	assert.False(t, decision.Granted)
	assert.Equal(t, model.DenialAuthRequired, decision.Reason)
}

func TestResolve_OwnerBypass(t *testing.T) {
	now := time.Now()
	item := model.GatedItem{OwnerWallet: "0xCreator", TierRequirement: intPtr(5)}

	t.Run("owner granted with no membership row", func(t *testing.T) {
		decision := Resolve("0xCreator", item, nil, now)
		assert.True(t, decision.Granted)
	})

	t.Run("owner wallet comparison is case insensitive", func(t *testing.T) {
		decision := Resolve("0xcreator", item, nil, now)
		assert.True(t, decision.Granted)
	})
}

func TestResolve_NoMembership(t *testing.T) {
	item := model.GatedItem{OwnerWallet: "0xcreator"}

	decision := Resolve("0xmember", item, nil, time.Now())
	assert.False(t, decision.Granted)
	assert.Equal(t, model.DenialNoMembership, decision.Reason)
}

func TestResolve_ExpiredMembership(t *testing.T) {
	now := time.Now()

	t.Run("expired beats tier check even when tier would satisfy", func(t *testing.T) {
		item := model.GatedItem{OwnerWallet: "0xcreator", TierRequirement: intPtr(1)}
		decision := Resolve("0xmember", item, expiredMembership(5), now)
		assert.False(t, decision.Granted)
		assert.Equal(t, model.DenialMembershipExpired, decision.Reason)
	})

	t.Run("expired with no tier requirement", func(t *testing.T) {
		item := model.GatedItem{OwnerWallet: "0xcreator"}
		decision := Resolve("0xmember", item, expiredMembership(1), now)
		assert.Equal(t, model.DenialMembershipExpired, decision.Reason)
	})
}

func TestResolve_TierRequirement(t *testing.T) {
	now := time.Now()

	t.Run("no requirement grants any active membership", func(t *testing.T) {
		item := model.GatedItem{OwnerWallet: "0xcreator"}
		decision := Resolve("0xmember", item, activeMembership(0), now)
		assert.True(t, decision.Granted)
	})

	t.Run("lower tier is denied with current tier surfaced", func(t *testing.T) {
		item := model.GatedItem{OwnerWallet: "0xcreator", TierRequirement: intPtr(3)}
		decision := Resolve("0xmember", item, activeMembership(2), now)
		assert.False(t, decision.Granted)
		assert.Equal(t, model.DenialTierTooLow, decision.Reason)
		if assert.NotNil(t, decision.CurrentTier) {
			assert.Equal(t, 2, *decision.CurrentTier)
		}
		if assert.NotNil(t, decision.RequiredTier) {
			assert.Equal(t, 3, *decision.RequiredTier)
		}
	})

	t.Run("equal tier satisfies", func(t *testing.T) {
		item := model.GatedItem{OwnerWallet: "0xcreator", TierRequirement: intPtr(3)}
		decision := Resolve("0xmember", item, activeMembership(3), now)
		assert.True(t, decision.Granted)
	})

	t.Run("higher tier satisfies", func(t *testing.T) {
		item := model.GatedItem{OwnerWallet: "0xcreator", TierRequirement: intPtr(3)}
		decision := Resolve("0xmember", item, activeMembership(4), now)
		assert.True(t, decision.Granted)
	})
}

func TestResolve_ExpiryBoundary(t *testing.T) {
	now := time.Now()
	item := model.GatedItem{OwnerWallet: "0xcreator"}

	m := activeMembership(1)
	m.ExpiryTime = now
	decision := Resolve("0xmember", item, m, now)
	assert.False(t, decision.Granted, "expiry exactly now must deny")
	assert.Equal(t, model.DenialMembershipExpired, decision.Reason)
}
