package model

import "time"

// Content is creator-uploaded media. The bytes live in decentralized storage;
// this row carries the locator plus gating metadata. TierRequirement nil means
// any active membership suffices; IsPublic true makes gating irrelevant.
type Content struct {
	ID              string    `json:"id" db:"id"`
	CreatorID       string    `json:"creator_id" db:"creator_id"`
	CreatorWallet   string    `json:"creator_wallet" db:"creator_wallet"`
	Title           string    `json:"title" db:"title"`
	Description     *string   `json:"description,omitempty" db:"description"`
	ContentType     string    `json:"content_type" db:"content_type"`
	FileSize        int64     `json:"file_size" db:"file_size"`
	Duration        *int      `json:"duration,omitempty" db:"duration"`
	TierRequirement *int      `json:"tier_requirement,omitempty" db:"tier_requirement"`
	IsPublic        bool      `json:"is_public" db:"is_public"`
	BlobCID         string    `json:"blob_cid" db:"blob_cid"`
	BlobURL         string    `json:"blob_url" db:"blob_url"`
	ChunksetID      *string   `json:"chunkset_id,omitempty" db:"chunkset_id"`
	UploadSessionID *string   `json:"upload_session_id,omitempty" db:"upload_session_id"`
	StreamCount     int       `json:"stream_count" db:"stream_count"`
	ViewCount       int       `json:"view_count" db:"view_count"`
	ThumbnailURL    *string   `json:"thumbnail_url,omitempty" db:"thumbnail_url"`
	UploadedAt      time.Time `json:"uploaded_at" db:"uploaded_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

func (c *Content) Gate() GatedItem {
	return GatedItem{
		OwnerWallet:     c.CreatorWallet,
		IsPublic:        c.IsPublic,
		TierRequirement: c.TierRequirement,
	}
}

const (
	ContentTypeVideo = "video"
	ContentTypeAudio = "audio"
	ContentTypeImage = "image"
	ContentTypePDF   = "pdf"
	ContentTypeFile  = "file"
)

// MIMEType maps the coarse content type to a response Content-Type.
func (c *Content) MIMEType() string {
	switch c.ContentType {
	case ContentTypeVideo:
		return "video/mp4"
	case ContentTypeAudio:
		return "audio/mpeg"
	case ContentTypeImage:
		return "image/jpeg"
	case ContentTypePDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
