// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/rpc"

	"github.com/ava-labs/auravm/auravm"

	cjson "github.com/ava-labs/avalanchego/utils/json"
)

// Client defines auravm client operations.
type Client interface {
	// Mint mints [amount] to [to]. Admin only.
	Mint(ctx context.Context, caller, to ids.ShortID, amount uint64) (bool, error)

	// Burn burns [amount] from [from]. Admin only.
	Burn(ctx context.Context, caller, from ids.ShortID, amount uint64) (bool, error)

	// Transfer moves the caller's own funds to [to].
	Transfer(ctx context.Context, caller, to ids.ShortID, amount uint64) (bool, error)

	// ForceTransfer moves funds between any two accounts, ignoring frozen
	// flags. Admin only.
	ForceTransfer(ctx context.Context, caller, from, to ids.ShortID, amount uint64) (bool, error)

	// Freeze sets [account]'s frozen flag. Admin only.
	Freeze(ctx context.Context, caller, account ids.ShortID) (bool, error)

	// Unfreeze clears [account]'s frozen flag. Admin only.
	Unfreeze(ctx context.Context, caller, account ids.ShortID) (bool, error)

	// Infuse moves the caller's own funds into [target].
	Infuse(ctx context.Context, caller, target ids.ShortID, amount uint64) (bool, error)

	// GetBalance fetches [account]'s balance and frozen flag.
	GetBalance(ctx context.Context, account ids.ShortID) (uint64, bool, error)

	// GetSupply fetches the asset's total supply.
	GetSupply(ctx context.Context) (uint64, error)

	// MintFuseBlock mints a FuseBlock infused with [amount] of the caller's
	// funds.
	MintFuseBlock(ctx context.Context, caller ids.ShortID, amount uint64) (ids.ID, error)

	// MintItem mints an Item directly, with no FuseBlock origin.
	MintItem(ctx context.Context, caller ids.ShortID, amount uint64) (ids.ID, error)

	// MintItemFromFuseBlock consumes the caller's FuseBlock into a new Item.
	MintItemFromFuseBlock(ctx context.Context, caller ids.ShortID, fuseID ids.ID) (ids.ID, error)

	// Qualify flips a token's qualification gate. Admin only.
	Qualify(ctx context.Context, caller ids.ShortID, tokenID ids.ID) (bool, error)

	// ElevatedTransfer reassigns a qualified token. Admin only.
	ElevatedTransfer(ctx context.Context, caller ids.ShortID, tokenID ids.ID, newOwner ids.ShortID) (bool, error)

	// BurnAndExtract drains a token's balance to the calling owner and
	// destroys the token. Returns the extracted amount.
	BurnAndExtract(ctx context.Context, caller ids.ShortID, tokenID ids.ID) (uint64, error)

	// InfuseToken tops up a token's balance store from the caller's funds.
	InfuseToken(ctx context.Context, caller ids.ShortID, tokenID ids.ID, amount uint64) (bool, error)

	// GetToken fetches the record of [tokenID].
	GetToken(ctx context.Context, tokenID ids.ID) (*auravm.GetTokenReply, error)

	// LookupToken fetches the record of the [seq]th token of [collection].
	LookupToken(ctx context.Context, collection string, seq uint64) (*auravm.GetTokenReply, error)
}

// New creates a new client object. The requester prefixes every method with
// the service name, so methods below are given unqualified.
func New(uri string) Client {
	req := rpc.NewEndpointRequester(uri, "/rpc", "auravm")
	return &client{req: req}
}

type client struct {
	req rpc.EndpointRequester
}

func (cli *client) Mint(ctx context.Context, caller, to ids.ShortID, amount uint64) (bool, error) {
	resp := new(auravm.SuccessReply)
	err := cli.req.SendRequest(ctx,
		"mint",
		&auravm.MintArgs{Caller: caller, To: to, Amount: cjson.Uint64(amount)},
		resp,
	)
	return resp.Success, err
}

func (cli *client) Burn(ctx context.Context, caller, from ids.ShortID, amount uint64) (bool, error) {
	resp := new(auravm.SuccessReply)
	err := cli.req.SendRequest(ctx,
		"burn",
		&auravm.BurnArgs{Caller: caller, From: from, Amount: cjson.Uint64(amount)},
		resp,
	)
	return resp.Success, err
}

func (cli *client) Transfer(ctx context.Context, caller, to ids.ShortID, amount uint64) (bool, error) {
	resp := new(auravm.SuccessReply)
	err := cli.req.SendRequest(ctx,
		"transfer",
		&auravm.TransferArgs{Caller: caller, To: to, Amount: cjson.Uint64(amount)},
		resp,
	)
	return resp.Success, err
}

func (cli *client) ForceTransfer(ctx context.Context, caller, from, to ids.ShortID, amount uint64) (bool, error) {
	resp := new(auravm.SuccessReply)
	err := cli.req.SendRequest(ctx,
		"forceTransfer",
		&auravm.TransferArgs{Caller: caller, From: from, To: to, Amount: cjson.Uint64(amount)},
		resp,
	)
	return resp.Success, err
}

func (cli *client) Freeze(ctx context.Context, caller, account ids.ShortID) (bool, error) {
	resp := new(auravm.SuccessReply)
	err := cli.req.SendRequest(ctx,
		"freeze",
		&auravm.FreezeArgs{Caller: caller, Account: account},
		resp,
	)
	return resp.Success, err
}

func (cli *client) Unfreeze(ctx context.Context, caller, account ids.ShortID) (bool, error) {
	resp := new(auravm.SuccessReply)
	err := cli.req.SendRequest(ctx,
		"unfreeze",
		&auravm.FreezeArgs{Caller: caller, Account: account},
		resp,
	)
	return resp.Success, err
}

func (cli *client) Infuse(ctx context.Context, caller, target ids.ShortID, amount uint64) (bool, error) {
	resp := new(auravm.SuccessReply)
	err := cli.req.SendRequest(ctx,
		"infuse",
		&auravm.InfuseArgs{Caller: caller, Target: target, Amount: cjson.Uint64(amount)},
		resp,
	)
	return resp.Success, err
}

func (cli *client) GetBalance(ctx context.Context, account ids.ShortID) (uint64, bool, error) {
	resp := new(auravm.GetBalanceReply)
	err := cli.req.SendRequest(ctx,
		"getBalance",
		&auravm.GetBalanceArgs{Account: account},
		resp,
	)
	return uint64(resp.Balance), resp.Frozen, err
}

func (cli *client) GetSupply(ctx context.Context) (uint64, error) {
	resp := new(auravm.GetSupplyReply)
	err := cli.req.SendRequest(ctx,
		"getSupply",
		&struct{}{},
		resp,
	)
	return uint64(resp.Supply), err
}

func (cli *client) MintFuseBlock(ctx context.Context, caller ids.ShortID, amount uint64) (ids.ID, error) {
	resp := new(auravm.MintTokenReply)
	err := cli.req.SendRequest(ctx,
		"mintFuseBlock",
		&auravm.MintTokenArgs{Caller: caller, Amount: cjson.Uint64(amount)},
		resp,
	)
	return resp.TokenID, err
}

func (cli *client) MintItem(ctx context.Context, caller ids.ShortID, amount uint64) (ids.ID, error) {
	resp := new(auravm.MintTokenReply)
	err := cli.req.SendRequest(ctx,
		"mintItem",
		&auravm.MintTokenArgs{Caller: caller, Amount: cjson.Uint64(amount)},
		resp,
	)
	return resp.TokenID, err
}

func (cli *client) MintItemFromFuseBlock(ctx context.Context, caller ids.ShortID, fuseID ids.ID) (ids.ID, error) {
	resp := new(auravm.MintTokenReply)
	err := cli.req.SendRequest(ctx,
		"mintItemFromFuseBlock",
		&auravm.MintItemFromFuseBlockArgs{Caller: caller, FuseID: fuseID},
		resp,
	)
	return resp.TokenID, err
}

func (cli *client) Qualify(ctx context.Context, caller ids.ShortID, tokenID ids.ID) (bool, error) {
	resp := new(auravm.SuccessReply)
	err := cli.req.SendRequest(ctx,
		"qualify",
		&auravm.TokenArgs{Caller: caller, TokenID: tokenID},
		resp,
	)
	return resp.Success, err
}

func (cli *client) ElevatedTransfer(ctx context.Context, caller ids.ShortID, tokenID ids.ID, newOwner ids.ShortID) (bool, error) {
	resp := new(auravm.SuccessReply)
	err := cli.req.SendRequest(ctx,
		"elevatedTransfer",
		&auravm.ElevatedTransferArgs{Caller: caller, TokenID: tokenID, NewOwner: newOwner},
		resp,
	)
	return resp.Success, err
}

func (cli *client) BurnAndExtract(ctx context.Context, caller ids.ShortID, tokenID ids.ID) (uint64, error) {
	resp := new(auravm.BurnAndExtractReply)
	err := cli.req.SendRequest(ctx,
		"burnAndExtract",
		&auravm.TokenArgs{Caller: caller, TokenID: tokenID},
		resp,
	)
	return uint64(resp.Extracted), err
}

func (cli *client) InfuseToken(ctx context.Context, caller ids.ShortID, tokenID ids.ID, amount uint64) (bool, error) {
	resp := new(auravm.SuccessReply)
	err := cli.req.SendRequest(ctx,
		"infuseToken",
		&auravm.InfuseTokenArgs{Caller: caller, TokenID: tokenID, Amount: cjson.Uint64(amount)},
		resp,
	)
	return resp.Success, err
}

func (cli *client) GetToken(ctx context.Context, tokenID ids.ID) (*auravm.GetTokenReply, error) {
	resp := new(auravm.GetTokenReply)
	err := cli.req.SendRequest(ctx,
		"getToken",
		&auravm.GetTokenArgs{TokenID: tokenID},
		resp,
	)
	return resp, err
}

func (cli *client) LookupToken(ctx context.Context, collection string, seq uint64) (*auravm.GetTokenReply, error) {
	resp := new(auravm.GetTokenReply)
	err := cli.req.SendRequest(ctx,
		"lookupToken",
		&auravm.LookupTokenArgs{Collection: collection, Seq: cjson.Uint64(seq)},
		resp,
	)
	return resp, err
}
