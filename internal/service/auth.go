package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/zacharyr0th/patron-gate/internal/aptos"
	"github.com/zacharyr0th/patron-gate/internal/config"
)

var (
	ErrLoginMessageExpired = errors.New("login message expired, please sign again")
	ErrInvalidTimestamp    = errors.New("invalid login timestamp")
)

type LoginRequest struct {
	WalletAddress string `json:"wallet_address" validate:"required"`
	PublicKey     string `json:"public_key" validate:"required"`
	Signature     string `json:"signature" validate:"required"`
	Message       string `json:"message" validate:"required"`
	Timestamp     string `json:"timestamp" validate:"required"`
}

// VerifyLogin checks the signed login message: the embedded timestamp must
// be recent (replay window) and the ed25519 signature must verify against
// the supplied public key.
func VerifyLogin(req LoginRequest, now time.Time) error {
	tsMillis, err := strconv.ParseInt(req.Timestamp, 10, 64)
	if err != nil {
		return ErrInvalidTimestamp
	}

	ts := time.UnixMilli(tsMillis)
	drift := now.Sub(ts)
	if drift < 0 {
		drift = -drift
	}
	if drift > config.LoginMessageMaxAge {
		return ErrLoginMessageExpired
	}

	return aptos.VerifySignedMessage(req.PublicKey, req.Signature, []byte(req.Message))
}
