// Package storage is the gateway to the decentralized blob store. Callers get
// back an opaque locator (CID) and never inspect its format; retrieval goes
// through the same gateway.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/zacharyr0th/patron-gate/internal/config"
)

type UploadResult struct {
	CID        string
	BlobName   string
	Size       int64
	UploadedAt time.Time
}

// BlobStore is the storage-provider collaborator consumed by the content
// service. Implementations are expected to be safe for concurrent use.
type BlobStore interface {
	Upload(ctx context.Context, sessionID, filename string, file io.Reader, size int64) (*UploadResult, error)
	Retrieve(ctx context.Context, cid string) (io.ReadCloser, string, error)
	Remove(ctx context.Context, cid string) error
}

type Client struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewClient(cfg *config.Config) (*Client, error) {
	mc, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &Client{
		client:    mc,
		bucket:    cfg.Storage.Bucket,
		publicURL: strings.TrimSuffix(cfg.Storage.PublicURL, "/"),
	}, nil
}

func (c *Client) Upload(ctx context.Context, sessionID, filename string, file io.Reader, size int64) (*UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	now := time.Now()
	blobName := fmt.Sprintf("blobs/%d/%02d/%s%s", now.Year(), now.Month(), uuid.New().String(), ext)

	_, err := c.client.PutObject(ctx, c.bucket, blobName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": filename,
				"session-id":        sessionID,
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to upload blob: %w", err)
	}

	return &UploadResult{
		CID:        fmt.Sprintf("%s/%s/%s", c.publicURL, c.bucket, blobName),
		BlobName:   blobName,
		Size:       size,
		UploadedAt: now,
	}, nil
}

// Retrieve streams a blob by locator. Full URLs produced by Upload are mapped
// back to object names; bare object names are accepted as-is.
func (c *Client) Retrieve(ctx context.Context, cid string) (io.ReadCloser, string, error) {
	object, err := c.client.GetObject(ctx, c.bucket, c.objectName(cid), minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to retrieve blob: %w", err)
	}

	stat, err := object.Stat()
	if err != nil {
		object.Close()
		return nil, "", fmt.Errorf("failed to stat blob: %w", err)
	}

	return object, stat.ContentType, nil
}

func (c *Client) Remove(ctx context.Context, cid string) error {
	err := c.client.RemoveObject(ctx, c.bucket, c.objectName(cid), minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to remove blob: %w", err)
	}
	return nil
}

func (c *Client) objectName(cid string) string {
	prefix := c.publicURL + "/" + c.bucket + "/"
	if strings.HasPrefix(cid, prefix) {
		return strings.TrimPrefix(cid, prefix)
	}
	return cid
}
