package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type RevenueEventType string

const (
	RevenueEventPurchase   RevenueEventType = "membership_purchase"
	RevenueEventRenewal    RevenueEventType = "membership_renewal"
	RevenueEventWithdrawal RevenueEventType = "withdrawal"
)

// RevenueEvent is an append-only ledger row. Amounts are octas.
type RevenueEvent struct {
	ID              string           `json:"id" db:"id"`
	CreatorWallet   string           `json:"creator_wallet" db:"creator_wallet"`
	MemberWallet    string           `json:"member_wallet" db:"member_wallet"`
	Amount          int64            `json:"amount" db:"amount"`
	EventType       RevenueEventType `json:"event_type" db:"event_type"`
	TierID          *int             `json:"tier_id,omitempty" db:"tier_id"`
	TransactionHash *string          `json:"transaction_hash,omitempty" db:"transaction_hash"`
	Metadata        Metadata         `json:"metadata,omitempty" db:"metadata"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
}

type Metadata map[string]interface{}

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *Metadata) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for Metadata")
	}
}
