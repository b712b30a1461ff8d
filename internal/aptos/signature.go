package aptos

import (
	"errors"

	"github.com/aptos-labs/aptos-go-sdk/crypto"
)

var ErrInvalidSignature = errors.New("invalid signature")

// VerifySignedMessage checks an ed25519 wallet signature over a login message.
// Key and signature are hex as produced by Aptos wallet adapters.
func VerifySignedMessage(publicKeyHex, signatureHex string, message []byte) error {
	pubKey := &crypto.Ed25519PublicKey{}
	if err := pubKey.FromHex(publicKeyHex); err != nil {
		return errors.New("invalid public key")
	}

	sig := &crypto.Ed25519Signature{}
	if err := sig.FromHex(signatureHex); err != nil {
		return ErrInvalidSignature
	}

	if !pubKey.Verify(message, sig) {
		return ErrInvalidSignature
	}
	return nil
}
