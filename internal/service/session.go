package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zacharyr0th/patron-gate/internal/aptos"
	"github.com/zacharyr0th/patron-gate/internal/config"
	"github.com/zacharyr0th/patron-gate/internal/model"
	"github.com/zacharyr0th/patron-gate/internal/repository"
)

var (
	ErrInvalidPayment       = errors.New("payment amount does not cover a single chunkset")
	ErrSessionNotFound      = errors.New("storage session not found")
	ErrSessionExpired       = errors.New("storage session expired")
	ErrInvalidConsumeAmount = errors.New("consume amount must be positive")
)

// InsufficientCreditsError reports a recoverable shortfall: the caller should
// top up with a new session or shrink the upload.
type InsufficientCreditsError struct {
	Need int `json:"need"`
	Have int `json:"have"`
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient chunksets: need %d, have %d", e.Need, e.Have)
}

// PaymentVerifier is the on-chain payment confirmation collaborator.
type PaymentVerifier interface {
	VerifyPaymentTransaction(txHash string) (*aptos.PaymentInfo, error)
}

// StorageSessionService is the credit ledger gating uploads: a prepaid,
// decrementing, time-boxed chunkset balance per payment session.
type StorageSessionService struct {
	repo     *repository.Repository
	verifier PaymentVerifier
	cfg      *config.Config
}

func NewStorageSessionService(repo *repository.Repository, verifier PaymentVerifier, cfg *config.Config) *StorageSessionService {
	return &StorageSessionService{repo: repo, verifier: verifier, cfg: cfg}
}

// ChunksetsFor converts a paid amount into chunksets by integer division.
// The fractional remainder is forfeited, not refunded; that is pricing
// policy, not rounding error.
func ChunksetsFor(amountOctas, octasPerChunkset uint64) int {
	if octasPerChunkset == 0 {
		return 0
	}
	return int(amountOctas / octasPerChunkset)
}

// EstimateChunksets converts an upload size into the chunksets it will
// consume. Every upload costs at least one chunkset.
func EstimateChunksets(sizeBytes, chunksetSizeMB int64) int {
	unit := chunksetSizeMB * 1024 * 1024
	if unit <= 0 {
		return 1
	}
	chunksets := (sizeBytes + unit - 1) / unit
	if chunksets < 1 {
		chunksets = 1
	}
	return int(chunksets)
}

// Create verifies the payment transaction on chain and opens a session whose
// balance is floor(amount / price). A payment worth zero chunksets is
// rejected outright.
func (s *StorageSessionService) Create(ctx context.Context, userWallet string, amountOctas uint64, txHash string) (*model.StorageSession, error) {
	chunksets := ChunksetsFor(amountOctas, s.cfg.Shelby.OctasPerChunkset)
	if chunksets <= 0 {
		return nil, ErrInvalidPayment
	}

	payment, err := s.verifier.VerifyPaymentTransaction(txHash)
	if err != nil {
		return nil, fmt.Errorf("payment verification failed: %w", err)
	}

	session := &model.StorageSession{
		ID:                 "shelby_" + uuid.New().String(),
		UserWallet:         userWallet,
		ChunksetsTotal:     chunksets,
		ChunksetsRemaining: chunksets,
		TransactionHash:    payment.Hash,
		ExpiresAt:          payment.Timestamp.Add(s.cfg.Shelby.SessionTTL),
	}

	if err := s.repo.CreateStorageSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create storage session: %w", err)
	}

	return session, nil
}

// GetValid returns the session only while it has not expired; an expired
// session is indistinguishable from a missing one.
func (s *StorageSessionService) GetValid(ctx context.Context, id string) (*model.StorageSession, error) {
	session, err := s.repo.GetValidStorageSession(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// EstimateCost prices an upload in chunksets under the configured policy.
func (s *StorageSessionService) EstimateCost(sizeBytes int64) int {
	return EstimateChunksets(sizeBytes, s.cfg.Shelby.ChunksetSizeMB)
}

// Consume debits the session. The check-and-decrement happens as one
// conditional statement at the store, so concurrent consumers cannot
// overdraw. On refusal the failure is classified: missing session, expired
// session, or insufficient balance (with the need/have shortfall).
func (s *StorageSessionService) Consume(ctx context.Context, id string, amount int) error {
	if amount <= 0 {
		return ErrInvalidConsumeAmount
	}

	ok, err := s.repo.ConsumeChunksets(ctx, id, amount)
	if err != nil {
		return fmt.Errorf("failed to consume chunksets: %w", err)
	}
	if ok {
		return nil
	}

	session, err := s.repo.GetStorageSession(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to inspect storage session: %w", err)
	}

	if session.StateAt(time.Now()) == model.SessionStateExpired {
		return ErrSessionExpired
	}
	return &InsufficientCreditsError{Need: amount, Have: session.ChunksetsRemaining}
}

// DeleteExpired is the maintenance sweep backing the cleanup worker.
func (s *StorageSessionService) DeleteExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpiredStorageSessions(ctx)
}
