package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Tier is a cached projection of an on-chain membership tier. The contract is
// the source of truth; rows are upserted by (creator_wallet, tier_id) whenever
// a sync runs. TierID is the contract-assigned ordinal and numeric order
// encodes entitlement rank: a higher TierID unlocks everything below it.
type Tier struct {
	ID             string    `json:"id" db:"id"`
	CreatorWallet  string    `json:"creator_wallet" db:"creator_wallet"`
	TierID         int       `json:"tier_id" db:"tier_id"`
	Name           string    `json:"name" db:"name"`
	PriceMonthly   int64     `json:"price_monthly" db:"price_monthly"`
	PriceYearly    int64     `json:"price_yearly" db:"price_yearly"`
	Benefits       Benefits  `json:"benefits" db:"benefits"`
	MaxMembers     int       `json:"max_members" db:"max_members"`
	CurrentMembers int       `json:"current_members" db:"current_members"`
	Active         bool      `json:"active" db:"active"`
	SyncedAt       time.Time `json:"synced_at" db:"synced_at"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type Benefits []string

func (b Benefits) Value() (driver.Value, error) {
	if b == nil {
		b = Benefits{}
	}
	return json.Marshal(b)
}

func (b *Benefits) Scan(src interface{}) error {
	if src == nil {
		*b = Benefits{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	default:
		return errors.New("unsupported type for Benefits")
	}
}

func (t *Tier) HasCapacity() bool {
	return t.MaxMembers == 0 || t.CurrentMembers < t.MaxMembers
}
