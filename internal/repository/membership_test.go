package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zacharyr0th/patron-gate/internal/model"
)

func TestGetMembership(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		rows := sqlmock.NewRows([]string{
			"id", "member_wallet", "creator_wallet", "tier_id", "start_time", "expiry_time", "auto_renew", "synced_at", "created_at",
		}).AddRow("0xmember-0xcreator", "0xmember", "0xcreator", 2,
			time.Now().Add(-24*time.Hour), time.Now().Add(24*time.Hour), false, time.Now(), time.Now())

		mock.ExpectQuery("SELECT \\* FROM memberships_cache").
			WithArgs("0xmember", "0xcreator").
			WillReturnRows(rows)

		membership, err := repo.GetMembership(ctx, "0xmember", "0xcreator")
		require.NoError(t, err)
		assert.Equal(t, 2, membership.TierID)
		assert.True(t, membership.IsActive())
	})

	t.Run("no row maps to sentinel", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("SELECT \\* FROM memberships_cache").
			WithArgs("0xmember", "0xnobody").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetMembership(ctx, "0xmember", "0xnobody")
		assert.ErrorIs(t, err, ErrMembershipNotFound)
	})
}

func TestUpsertMembership(t *testing.T) {
	repo, mock := newMockRepo(t)

	membership := &model.Membership{
		MemberWallet:  "0xmember",
		CreatorWallet: "0xcreator",
		TierID:        1,
		StartTime:     time.Now().Add(-time.Hour),
		ExpiryTime:    time.Now().Add(30 * 24 * time.Hour),
	}

	mock.ExpectQuery("INSERT INTO memberships_cache").
		WithArgs("0xmember-0xcreator", "0xmember", "0xcreator", 1,
			membership.StartTime, membership.ExpiryTime, false).
		WillReturnRows(sqlmock.NewRows([]string{"synced_at", "created_at"}).AddRow(time.Now(), time.Now()))

	err := repo.UpsertMembership(context.Background(), membership)
	require.NoError(t, err)
	assert.Equal(t, "0xmember-0xcreator", membership.ID, "cache key is derived from the pair")
	assert.False(t, membership.SyncedAt.IsZero())
}
