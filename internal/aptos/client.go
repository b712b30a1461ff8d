// Package aptos wraps the membership contract's view functions and payment
// verification behind a small client. The chain is the source of truth for
// tiers and memberships; everything read here lands in the local cache via
// explicit sync operations, never on the request hot path.
package aptos

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	sdk "github.com/aptos-labs/aptos-go-sdk"
	"github.com/aptos-labs/aptos-go-sdk/bcs"
)

var (
	ErrMembershipNotFound  = errors.New("membership not found on chain")
	ErrTierNotFound        = errors.New("tier not found on chain")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrTransactionFailed   = errors.New("transaction did not succeed")
	ErrInvalidAddress      = errors.New("invalid wallet address")
)

type Client struct {
	moduleAddress sdk.AccountAddress
	client        *sdk.Client
}

func NewClient(network, moduleAddress string) (*Client, error) {
	var addr sdk.AccountAddress
	if err := addr.ParseStringRelaxed(moduleAddress); err != nil {
		return nil, fmt.Errorf("invalid contract address: %w", err)
	}

	cfg := sdk.DevnetConfig
	switch network {
	case "mainnet":
		cfg = sdk.MainnetConfig
	case "testnet":
		cfg = sdk.TestnetConfig
	}

	client, err := sdk.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create aptos client: %w", err)
	}

	return &Client{moduleAddress: addr, client: client}, nil
}

// ChainMembership is the raw view of membership::get_membership.
type ChainMembership struct {
	TierID     int
	StartTime  time.Time
	ExpiryTime time.Time
	AutoRenew  bool
}

// ChainTier is the raw view of membership::get_tier. Prices are octas.
type ChainTier struct {
	TierID         int
	Name           string
	PriceMonthly   uint64
	PriceYearly    uint64
	MaxMembers     int
	CurrentMembers int
	Active         bool
}

func (c *Client) IsMember(creatorWallet, memberWallet string) (bool, error) {
	args, err := addressArgs(creatorWallet, memberWallet)
	if err != nil {
		return false, err
	}

	values, err := c.view("is_member", args)
	if err != nil {
		return false, err
	}
	if len(values) < 1 {
		return false, fmt.Errorf("unexpected is_member response shape")
	}

	member, ok := values[0].(bool)
	if !ok {
		return false, fmt.Errorf("unexpected is_member response type %T", values[0])
	}
	return member, nil
}

// GetMembership returns nil ErrMembershipNotFound when the wallet holds no
// membership with the creator; contract aborts surface as plain errors.
func (c *Client) GetMembership(creatorWallet, memberWallet string) (*ChainMembership, error) {
	args, err := addressArgs(creatorWallet, memberWallet)
	if err != nil {
		return nil, err
	}

	values, err := c.view("get_membership", args)
	if err != nil {
		return nil, ErrMembershipNotFound
	}
	if len(values) < 4 {
		return nil, fmt.Errorf("unexpected get_membership response shape")
	}

	tierID, err := asUint(values[0])
	if err != nil {
		return nil, err
	}
	startTime, err := asUint(values[1])
	if err != nil {
		return nil, err
	}
	expiryTime, err := asUint(values[2])
	if err != nil {
		return nil, err
	}
	autoRenew, _ := values[3].(bool)

	return &ChainMembership{
		TierID:     int(tierID),
		StartTime:  time.Unix(int64(startTime), 0),
		ExpiryTime: time.Unix(int64(expiryTime), 0),
		AutoRenew:  autoRenew,
	}, nil
}

func (c *Client) GetTier(creatorWallet string, tierID int) (*ChainTier, error) {
	creatorArg, err := addressArg(creatorWallet)
	if err != nil {
		return nil, err
	}
	tierArg, err := bcs.SerializeU64(uint64(tierID))
	if err != nil {
		return nil, err
	}

	values, err := c.view("get_tier", [][]byte{creatorArg, tierArg})
	if err != nil {
		return nil, ErrTierNotFound
	}
	if len(values) < 6 {
		return nil, fmt.Errorf("unexpected get_tier response shape")
	}

	name, _ := values[0].(string)
	priceMonthly, err := asUint(values[1])
	if err != nil {
		return nil, err
	}
	priceYearly, err := asUint(values[2])
	if err != nil {
		return nil, err
	}
	maxMembers, err := asUint(values[3])
	if err != nil {
		return nil, err
	}
	currentMembers, err := asUint(values[4])
	if err != nil {
		return nil, err
	}
	active, _ := values[5].(bool)

	return &ChainTier{
		TierID:         tierID,
		Name:           name,
		PriceMonthly:   priceMonthly,
		PriceYearly:    priceYearly,
		MaxMembers:     int(maxMembers),
		CurrentMembers: int(currentMembers),
		Active:         active,
	}, nil
}

func (c *Client) view(function string, args [][]byte) ([]any, error) {
	payload := &sdk.ViewPayload{
		Module: sdk.ModuleId{
			Address: c.moduleAddress,
			Name:    "membership",
		},
		Function: function,
		ArgTypes: []sdk.TypeTag{},
		Args:     args,
	}

	values, err := c.client.View(payload)
	if err != nil {
		return nil, fmt.Errorf("view %s failed: %w", function, err)
	}
	return values, nil
}

func addressArg(wallet string) ([]byte, error) {
	var addr sdk.AccountAddress
	if err := addr.ParseStringRelaxed(wallet); err != nil {
		return nil, ErrInvalidAddress
	}
	return bcs.Serialize(&addr)
}

func addressArgs(wallets ...string) ([][]byte, error) {
	args := make([][]byte, 0, len(wallets))
	for _, wallet := range wallets {
		arg, err := addressArg(wallet)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

// View u64s arrive as decimal strings over JSON.
func asUint(value any) (uint64, error) {
	switch v := value.(type) {
	case string:
		return strconv.ParseUint(v, 10, 64)
	case float64:
		return uint64(v), nil
	case uint64:
		return v, nil
	default:
		return 0, fmt.Errorf("unexpected numeric view value %T", value)
	}
}
