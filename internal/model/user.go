package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type User struct {
	ID            string    `json:"id" db:"id"`
	WalletAddress string    `json:"wallet_address" db:"wallet_address"`
	Username      *string   `json:"username,omitempty" db:"username"`
	Email         *string   `json:"email,omitempty" db:"email"`
	Bio           *string   `json:"bio,omitempty" db:"bio"`
	AvatarURL     *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	IsCreator     bool      `json:"is_creator" db:"is_creator"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

type SocialLinks struct {
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Youtube   string `json:"youtube,omitempty"`
	Website   string `json:"website,omitempty"`
}

func (l SocialLinks) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *SocialLinks) Scan(src interface{}) error {
	if src == nil {
		*l = SocialLinks{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for SocialLinks")
	}
}

// CreatorProfile is the one-to-one extension of a user who publishes content.
// TotalRevenue is kept in octas and maintained by the revenue service.
type CreatorProfile struct {
	UserID       string      `json:"user_id" db:"user_id"`
	DisplayName  string      `json:"display_name" db:"display_name"`
	BannerURL    *string     `json:"banner_url,omitempty" db:"banner_url"`
	SocialLinks  SocialLinks `json:"social_links" db:"social_links"`
	TotalRevenue int64       `json:"total_revenue" db:"total_revenue"`
	TotalMembers int         `json:"total_members" db:"total_members"`
	Category     *string     `json:"category,omitempty" db:"category"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

type CreatorWithProfile struct {
	User
	Profile *CreatorProfile `json:"profile,omitempty"`
}
