package model

import (
	"time"
)

// Membership is a cached projection of an on-chain membership grant. At most
// one row per (member, creator) pair is considered current (latest by expiry).
type Membership struct {
	ID            string    `json:"id" db:"id"`
	MemberWallet  string    `json:"member_wallet" db:"member_wallet"`
	CreatorWallet string    `json:"creator_wallet" db:"creator_wallet"`
	TierID        int       `json:"tier_id" db:"tier_id"`
	StartTime     time.Time `json:"start_time" db:"start_time"`
	ExpiryTime    time.Time `json:"expiry_time" db:"expiry_time"`
	AutoRenew     bool      `json:"auto_renew" db:"auto_renew"`
	SyncedAt      time.Time `json:"synced_at" db:"synced_at"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

func (m *Membership) IsActive() bool {
	return m.ActiveAt(time.Now())
}

func (m *Membership) ActiveAt(now time.Time) bool {
	return m.ExpiryTime.After(now)
}

func (m *Membership) DaysRemaining() int {
	duration := time.Until(m.ExpiryTime)
	if duration < 0 {
		return 0
	}
	return int(duration.Hours() / 24)
}
