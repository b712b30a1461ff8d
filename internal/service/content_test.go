package service

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zacharyr0th/patron-gate/internal/repository"
	"github.com/zacharyr0th/patron-gate/internal/storage"
)

type stubBlobStore struct {
	uploads int
	result  *storage.UploadResult
}

func (s *stubBlobStore) Upload(ctx context.Context, sessionID, filename string, file io.Reader, size int64) (*storage.UploadResult, error) {
	s.uploads++
	if s.result != nil {
		return s.result, nil
	}
	return &storage.UploadResult{CID: "http://blobs/test", BlobName: "blobs/test", Size: size, UploadedAt: time.Now()}, nil
}

func (s *stubBlobStore) Retrieve(ctx context.Context, cid string) (io.ReadCloser, string, error) {
	return io.NopCloser(bytes.NewReader(nil)), "application/octet-stream", nil
}

func (s *stubBlobStore) Remove(ctx context.Context, cid string) error { return nil }

func userRows(id, wallet string, isCreator bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "wallet_address", "username", "email", "bio", "avatar_url", "is_creator", "created_at", "updated_at",
	}).AddRow(id, wallet, nil, nil, nil, nil, isCreator, time.Now(), time.Now())
}

func validSessionRows(id string, remaining int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_wallet", "chunksets_total", "chunksets_remaining", "transaction_hash", "expires_at", "created_at",
	}).AddRow(id, "0xcreator", 5, remaining, "0xabc", time.Now().Add(time.Hour), time.Now())
}

func TestContentService_Upload_InsufficientBalance(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewWithDB(sqlx.NewDb(db, "sqlmock"))
	blobs := &stubBlobStore{}
	sessionSvc := NewStorageSessionService(repo, &stubVerifier{}, testShelbyConfig())
	svc := NewContentService(repo, blobs, NewAccessService(repo), sessionSvc)

	mock.ExpectQuery("SELECT \\* FROM users").
		WithArgs("0xcreator").
		WillReturnRows(userRows("user_0xcreator", "0xcreator", true))
	mock.ExpectQuery("SELECT \\* FROM storage_sessions").
		WithArgs("shelby_x").
		WillReturnRows(validSessionRows("shelby_x", 1))

	// 25 MB upload costs 3 chunksets under the 10 MB policy; session has 1.
	req := UploadRequest{
		SessionID:   "shelby_x",
		Filename:    "episode.mp4",
		Size:        25 * 1024 * 1024,
		Title:       "Episode 1",
		ContentType: "video",
	}

	_, err = svc.Upload(context.Background(), "0xCreator", bytes.NewReader(nil), req)

	var insufficient *InsufficientCreditsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 3, insufficient.Need)
	assert.Equal(t, 1, insufficient.Have)
	assert.Zero(t, blobs.uploads, "no bytes move when the balance check fails")
}

func TestContentService_Upload_UnregisteredWallet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewWithDB(sqlx.NewDb(db, "sqlmock"))
	sessionSvc := NewStorageSessionService(repo, &stubVerifier{}, testShelbyConfig())
	svc := NewContentService(repo, &stubBlobStore{}, NewAccessService(repo), sessionSvc)

	mock.ExpectQuery("SELECT \\* FROM users").
		WithArgs("0xunknown").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = svc.Upload(context.Background(), "0xunknown", bytes.NewReader(nil), UploadRequest{
		SessionID: "shelby_x",
		Size:      1024,
		Title:     "x",
	})
	assert.ErrorIs(t, err, ErrNotRegistered)
}
