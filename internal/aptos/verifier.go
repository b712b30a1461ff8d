package aptos

import (
	"fmt"
	"time"
)

// MaxPaymentAge bounds how stale a payment transaction may be when presented
// as proof. Anything older must be re-done.
const MaxPaymentAge = 10 * time.Minute

// PaymentInfo contains verified transaction details.
type PaymentInfo struct {
	Hash      string
	Sender    string
	Timestamp time.Time
}

// VerifyPaymentTransaction confirms that the referenced transaction exists on
// chain, was executed successfully, and is recent. The paid amount itself is
// agreed off-band between the payer and the payment facilitator; the hash is
// the confirmation reference this platform stores against the session.
func (c *Client) VerifyPaymentTransaction(txHash string) (*PaymentInfo, error) {
	txn, err := c.client.TransactionByHash(txHash)
	if err != nil {
		return nil, ErrTransactionNotFound
	}

	userTxn, err := txn.UserTransaction()
	if err != nil {
		return nil, fmt.Errorf("not a user transaction: %w", err)
	}

	if !userTxn.Success {
		return nil, ErrTransactionFailed
	}

	// Timestamps come back in microseconds.
	ts := time.UnixMicro(int64(userTxn.Timestamp))
	if time.Since(ts) > MaxPaymentAge {
		return nil, fmt.Errorf("payment transaction too old: %s", ts.Format(time.RFC3339))
	}

	return &PaymentInfo{
		Hash:      txHash,
		Sender:    userTxn.Sender.String(),
		Timestamp: ts,
	}, nil
}
