package service

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zacharyr0th/patron-gate/internal/aptos"
)

func signedLogin(t *testing.T, message string, ts time.Time) LoginRequest {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	sig := ed25519.Sign(priv, []byte(message))
	return LoginRequest{
		WalletAddress: "0xmember",
		PublicKey:     hex.EncodeToString(pub),
		Signature:     hex.EncodeToString(sig),
		Message:       message,
		Timestamp:     strconv.FormatInt(ts.UnixMilli(), 10),
	}
}

func TestVerifyLogin(t *testing.T) {
	now := time.Now()

	t.Run("fresh valid signature passes", func(t *testing.T) {
		req := signedLogin(t, "login to patron-gate", now)
		assert.NoError(t, VerifyLogin(req, now))
	})

	t.Run("garbage timestamp", func(t *testing.T) {
		req := signedLogin(t, "login", now)
		req.Timestamp = "not-a-number"
		assert.ErrorIs(t, VerifyLogin(req, now), ErrInvalidTimestamp)
	})

	t.Run("stale message is rejected", func(t *testing.T) {
		req := signedLogin(t, "login", now.Add(-10*time.Minute))
		assert.ErrorIs(t, VerifyLogin(req, now), ErrLoginMessageExpired)
	})

	t.Run("future-dated message beyond the window is rejected", func(t *testing.T) {
		req := signedLogin(t, "login", now.Add(10*time.Minute))
		assert.ErrorIs(t, VerifyLogin(req, now), ErrLoginMessageExpired)
	})

	t.Run("small clock drift is tolerated", func(t *testing.T) {
		req := signedLogin(t, "login", now.Add(-2*time.Minute))
		assert.NoError(t, VerifyLogin(req, now))
	})

	t.Run("tampered message fails signature check", func(t *testing.T) {
		req := signedLogin(t, "login", now)
		req.Message = "login as someone else"
		assert.ErrorIs(t, VerifyLogin(req, now), aptos.ErrInvalidSignature)
	})

	t.Run("signature from a different key fails", func(t *testing.T) {
		req := signedLogin(t, "login", now)
		other := signedLogin(t, "login", now)
		req.Signature = other.Signature
		assert.ErrorIs(t, VerifyLogin(req, now), aptos.ErrInvalidSignature)
	})
}
