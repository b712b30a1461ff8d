package model

import "time"

// DenialReason is a stable machine-readable code so the API layer can map
// denials to distinct HTTP statuses without string matching.
type DenialReason string

const (
	DenialAuthRequired      DenialReason = "AUTH_REQUIRED"
	DenialNoMembership      DenialReason = "NO_MEMBERSHIP"
	DenialMembershipExpired DenialReason = "MEMBERSHIP_EXPIRED"
	DenialTierTooLow        DenialReason = "TIER_TOO_LOW"
)

// GatedItem is the access-relevant slice of a content item or post.
type GatedItem struct {
	OwnerWallet     string
	IsPublic        bool
	TierRequirement *int
}

// AccessDecision is the outcome of resolving a (viewer, item) pair.
// CurrentTier is populated on TIER_TOO_LOW denials so the UI can upsell.
type AccessDecision struct {
	Granted      bool         `json:"granted"`
	Reason       DenialReason `json:"reason,omitempty"`
	CurrentTier  *int         `json:"current_tier,omitempty"`
	RequiredTier *int         `json:"required_tier,omitempty"`
}

func Granted() AccessDecision {
	return AccessDecision{Granted: true}
}

func Denied(reason DenialReason) AccessDecision {
	return AccessDecision{Reason: reason}
}

// AccessLog is an append-only audit row recorded alongside access decisions.
type AccessLog struct {
	ID         string    `json:"id" db:"id"`
	UserWallet string    `json:"user_wallet" db:"user_wallet"`
	ContentID  string    `json:"content_id" db:"content_id"`
	AccessType string    `json:"access_type" db:"access_type"`
	IPAddress  *string   `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent  *string   `json:"user_agent,omitempty" db:"user_agent"`
	AccessedAt time.Time `json:"accessed_at" db:"accessed_at"`
}

const (
	AccessTypeStream   = "stream"
	AccessTypeView     = "view"
	AccessTypeDenied   = "denied"
	AccessTypeDownload = "download"
)
