package model

import "time"

// Post is a text publication with the same gating shape as Content, but the
// body lives in the row rather than in blob storage.
type Post struct {
	ID              string    `json:"id" db:"id"`
	CreatorID       string    `json:"creator_id" db:"creator_id"`
	CreatorWallet   string    `json:"creator_wallet" db:"creator_wallet"`
	Title           string    `json:"title" db:"title"`
	Body            string    `json:"body" db:"body"`
	PostType        string    `json:"post_type" db:"post_type"`
	TierRequirement *int      `json:"tier_requirement,omitempty" db:"tier_requirement"`
	IsPublic        bool      `json:"is_public" db:"is_public"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

func (p *Post) Gate() GatedItem {
	return GatedItem{
		OwnerWallet:     p.CreatorWallet,
		IsPublic:        p.IsPublic,
		TierRequirement: p.TierRequirement,
	}
}

// LockedPost is the representation returned to viewers who fail the gate:
// metadata stays visible, the body is withheld.
type LockedPost struct {
	Post
	Locked bool         `json:"locked"`
	Reason DenialReason `json:"lock_reason,omitempty"`
}

func (p Post) Lock(reason DenialReason) LockedPost {
	p.Body = ""
	return LockedPost{Post: p, Locked: true, Reason: reason}
}

func (p Post) Unlocked() LockedPost {
	return LockedPost{Post: p}
}
