package model

import "time"

type SessionState string

const (
	SessionStateActive    SessionState = "active"
	SessionStateExhausted SessionState = "exhausted"
	SessionStateExpired   SessionState = "expired"
)

// StorageSession is a prepaid, time-boxed pool of upload credits established
// by a verified on-chain payment. ChunksetsRemaining only ever decreases;
// exhausted and expired are terminal, a new session must be paid for.
type StorageSession struct {
	ID                 string    `json:"id" db:"id"`
	UserWallet         string    `json:"user_wallet" db:"user_wallet"`
	ChunksetsTotal     int       `json:"chunksets_total" db:"chunksets_total"`
	ChunksetsRemaining int       `json:"chunksets_remaining" db:"chunksets_remaining"`
	TransactionHash    string    `json:"transaction_hash" db:"transaction_hash"`
	ExpiresAt          time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
}

func (s *StorageSession) ValidAt(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

func (s *StorageSession) StateAt(now time.Time) SessionState {
	if !s.ValidAt(now) {
		return SessionStateExpired
	}
	if s.ChunksetsRemaining <= 0 {
		return SessionStateExhausted
	}
	return SessionStateActive
}
