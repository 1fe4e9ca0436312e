// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auravm

import (
	"net/http"

	"github.com/ava-labs/avalanchego/ids"

	cjson "github.com/ava-labs/avalanchego/utils/json"
)

// Service is the API service for this VM. The transport is expected to have
// authenticated the sender; every mutating method carries the sender address
// as the caller of the underlying operation.
type Service struct{ vm *VM }

// SuccessReply indicates the operation was applied.
type SuccessReply struct {
	Success bool `json:"success"`
}

// MintArgs are the arguments to Mint
type MintArgs struct {
	Caller ids.ShortID  `json:"caller"`
	To     ids.ShortID  `json:"to"`
	Amount cjson.Uint64 `json:"amount"`
}

// Mint mints [args.Amount] to [args.To]. Admin only.
func (s *Service) Mint(_ *http.Request, args *MintArgs, reply *SuccessReply) error {
	if err := s.vm.Mint(args.Caller, args.To, uint64(args.Amount)); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

// BurnArgs are the arguments to Burn
type BurnArgs struct {
	Caller ids.ShortID  `json:"caller"`
	From   ids.ShortID  `json:"from"`
	Amount cjson.Uint64 `json:"amount"`
}

// Burn burns [args.Amount] from [args.From]. Admin only.
func (s *Service) Burn(_ *http.Request, args *BurnArgs, reply *SuccessReply) error {
	if err := s.vm.Burn(args.Caller, args.From, uint64(args.Amount)); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

// TransferArgs are the arguments to Transfer and ForceTransfer
type TransferArgs struct {
	Caller ids.ShortID  `json:"caller"`
	From   ids.ShortID  `json:"from"` // ignored by Transfer, which spends the caller's funds
	To     ids.ShortID  `json:"to"`
	Amount cjson.Uint64 `json:"amount"`
}

// Transfer moves the caller's own funds to [args.To].
func (s *Service) Transfer(_ *http.Request, args *TransferArgs, reply *SuccessReply) error {
	if err := s.vm.Transfer(args.Caller, args.To, uint64(args.Amount)); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

// ForceTransfer moves funds between any two accounts, ignoring frozen
// flags. Admin only.
func (s *Service) ForceTransfer(_ *http.Request, args *TransferArgs, reply *SuccessReply) error {
	if err := s.vm.ForceTransfer(args.Caller, args.From, args.To, uint64(args.Amount)); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

// FreezeArgs are the arguments to Freeze and Unfreeze
type FreezeArgs struct {
	Caller  ids.ShortID `json:"caller"`
	Account ids.ShortID `json:"account"`
}

// Freeze sets [args.Account]'s frozen flag. Admin only.
func (s *Service) Freeze(_ *http.Request, args *FreezeArgs, reply *SuccessReply) error {
	if err := s.vm.Freeze(args.Caller, args.Account); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

// Unfreeze clears [args.Account]'s frozen flag. Admin only.
func (s *Service) Unfreeze(_ *http.Request, args *FreezeArgs, reply *SuccessReply) error {
	if err := s.vm.Unfreeze(args.Caller, args.Account); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

// InfuseArgs are the arguments to Infuse
type InfuseArgs struct {
	Caller ids.ShortID  `json:"caller"`
	Target ids.ShortID  `json:"target"`
	Amount cjson.Uint64 `json:"amount"`
}

// Infuse moves the caller's own funds into [args.Target]. Open to anyone.
func (s *Service) Infuse(_ *http.Request, args *InfuseArgs, reply *SuccessReply) error {
	if err := s.vm.Infuse(args.Caller, args.Target, uint64(args.Amount)); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

// GetBalanceArgs are the arguments to GetBalance
type GetBalanceArgs struct {
	Account ids.ShortID `json:"account"`
}

// GetBalanceReply is the reply from GetBalance
type GetBalanceReply struct {
	Balance cjson.Uint64 `json:"balance"`
	Frozen  bool         `json:"frozen"`
}

// GetBalance returns [args.Account]'s balance and frozen flag.
func (s *Service) GetBalance(_ *http.Request, args *GetBalanceArgs, reply *GetBalanceReply) error {
	balance, err := s.vm.Balance(args.Account)
	if err != nil {
		return err
	}
	frozen, err := s.vm.Frozen(args.Account)
	if err != nil {
		return err
	}
	reply.Balance = cjson.Uint64(balance)
	reply.Frozen = frozen
	return nil
}

// GetSupplyReply is the reply from GetSupply
type GetSupplyReply struct {
	Supply cjson.Uint64 `json:"supply"`
}

// GetSupply returns the asset's current total supply.
func (s *Service) GetSupply(_ *http.Request, _ *struct{}, reply *GetSupplyReply) error {
	supply, err := s.vm.TotalSupply()
	if err != nil {
		return err
	}
	reply.Supply = cjson.Uint64(supply)
	return nil
}

// MintTokenArgs are the arguments to MintFuseBlock and MintItem
type MintTokenArgs struct {
	Caller ids.ShortID  `json:"caller"`
	Amount cjson.Uint64 `json:"amount"`
}

// MintTokenReply is the reply from the token mint methods
type MintTokenReply struct {
	TokenID ids.ID `json:"tokenID"`
}

// MintFuseBlock mints a FuseBlock infused with [args.Amount] of the
// caller's funds.
func (s *Service) MintFuseBlock(_ *http.Request, args *MintTokenArgs, reply *MintTokenReply) error {
	tokenID, err := s.vm.MintFuseBlock(args.Caller, uint64(args.Amount))
	if err != nil {
		return err
	}
	reply.TokenID = tokenID
	return nil
}

// MintItem mints an Item directly, with no FuseBlock origin.
func (s *Service) MintItem(_ *http.Request, args *MintTokenArgs, reply *MintTokenReply) error {
	tokenID, err := s.vm.MintItem(args.Caller, uint64(args.Amount))
	if err != nil {
		return err
	}
	reply.TokenID = tokenID
	return nil
}

// MintItemFromFuseBlockArgs are the arguments to MintItemFromFuseBlock
type MintItemFromFuseBlockArgs struct {
	Caller ids.ShortID `json:"caller"`
	FuseID ids.ID      `json:"fuseID"`
}

// MintItemFromFuseBlock consumes the caller's FuseBlock into a new Item.
func (s *Service) MintItemFromFuseBlock(_ *http.Request, args *MintItemFromFuseBlockArgs, reply *MintTokenReply) error {
	tokenID, err := s.vm.MintItemFromFuseBlock(args.Caller, args.FuseID)
	if err != nil {
		return err
	}
	reply.TokenID = tokenID
	return nil
}

// TokenArgs name a token and a caller
type TokenArgs struct {
	Caller  ids.ShortID `json:"caller"`
	TokenID ids.ID      `json:"tokenID"`
}

// Qualify flips [args.TokenID]'s qualification gate. Admin only.
func (s *Service) Qualify(_ *http.Request, args *TokenArgs, reply *SuccessReply) error {
	if err := s.vm.Qualify(args.Caller, args.TokenID); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

// ElevatedTransferArgs are the arguments to ElevatedTransfer
type ElevatedTransferArgs struct {
	Caller   ids.ShortID `json:"caller"`
	TokenID  ids.ID      `json:"tokenID"`
	NewOwner ids.ShortID `json:"newOwner"`
}

// ElevatedTransfer reassigns a qualified token. Admin only.
func (s *Service) ElevatedTransfer(_ *http.Request, args *ElevatedTransferArgs, reply *SuccessReply) error {
	if err := s.vm.ElevatedTransfer(args.Caller, args.TokenID, args.NewOwner); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

// BurnAndExtractReply is the reply from BurnAndExtract
type BurnAndExtractReply struct {
	Extracted cjson.Uint64 `json:"extracted"`
}

// BurnAndExtract drains the token's balance to the calling owner and
// destroys the token.
func (s *Service) BurnAndExtract(_ *http.Request, args *TokenArgs, reply *BurnAndExtractReply) error {
	extracted, err := s.vm.BurnAndExtract(args.Caller, args.TokenID)
	if err != nil {
		return err
	}
	reply.Extracted = cjson.Uint64(extracted)
	return nil
}

// InfuseTokenArgs are the arguments to InfuseToken
type InfuseTokenArgs struct {
	Caller  ids.ShortID  `json:"caller"`
	TokenID ids.ID       `json:"tokenID"`
	Amount  cjson.Uint64 `json:"amount"`
}

// InfuseToken tops up a token's balance store from the caller's funds.
func (s *Service) InfuseToken(_ *http.Request, args *InfuseTokenArgs, reply *SuccessReply) error {
	if err := s.vm.InfuseToken(args.Caller, args.TokenID, uint64(args.Amount)); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

// GetTokenArgs are the arguments to GetToken
type GetTokenArgs struct {
	TokenID ids.ID `json:"tokenID"`
}

// GetTokenReply is the reply from GetToken and LookupToken
type GetTokenReply struct {
	TokenID    ids.ID       `json:"tokenID"`
	Collection string       `json:"collection"`
	Seq        cjson.Uint64 `json:"seq"`
	Name       string       `json:"name"`
	URI        string       `json:"uri"`
	Owner      ids.ShortID  `json:"owner"`
	Qualifies  bool         `json:"qualifies"`
	Balance    cjson.Uint64 `json:"balance"`
	Origin     ids.ID       `json:"origin"`
}

// GetToken returns the live record of [args.TokenID] and the balance of its
// store.
func (s *Service) GetToken(_ *http.Request, args *GetTokenArgs, reply *GetTokenReply) error {
	token, err := s.vm.GetToken(args.TokenID)
	if err != nil {
		return err
	}
	return s.fillTokenReply(args.TokenID, token, reply)
}

// LookupTokenArgs are the arguments to LookupToken
type LookupTokenArgs struct {
	Collection string       `json:"collection"`
	Seq        cjson.Uint64 `json:"seq"`
}

// LookupToken derives the id of the [args.Seq]th token of [args.Collection]
// and returns its record.
func (s *Service) LookupToken(_ *http.Request, args *LookupTokenArgs, reply *GetTokenReply) error {
	tokenID, token, err := s.vm.LookupToken(args.Collection, uint64(args.Seq))
	if err != nil {
		return err
	}
	return s.fillTokenReply(tokenID, token, reply)
}

func (s *Service) fillTokenReply(tokenID ids.ID, token *TokenRecord, reply *GetTokenReply) error {
	balance, err := s.vm.Balance(token.BalanceStore)
	if err != nil {
		return err
	}
	reply.TokenID = tokenID
	reply.Collection = token.Collection
	reply.Seq = cjson.Uint64(token.Seq)
	reply.Name = token.Name
	reply.URI = token.URI
	reply.Owner = token.Owner
	reply.Qualifies = token.Qualifies
	reply.Balance = cjson.Uint64(balance)
	reply.Origin = token.Origin
	return nil
}

// GetJournalEntryArgs are the arguments to GetJournalEntry
type GetJournalEntryArgs struct {
	// Seq of the entry to fetch. 0 fetches the latest entry.
	Seq cjson.Uint64 `json:"seq"`
}

// GetJournalEntryReply is the reply from GetJournalEntry
type GetJournalEntryReply struct {
	Entry   JournalEntry `json:"entry"`
	LastSeq cjson.Uint64 `json:"lastSeq"`
}

// GetJournalEntry returns one applied operation by sequence number.
func (s *Service) GetJournalEntry(_ *http.Request, args *GetJournalEntryArgs, reply *GetJournalEntryReply) error {
	last, err := s.vm.LastJournalSeq()
	if err != nil {
		return err
	}

	seq := uint64(args.Seq)
	if seq == 0 {
		seq = last
	}
	entry, err := s.vm.GetJournalEntry(seq)
	if err != nil {
		return err
	}
	reply.Entry = *entry
	reply.LastSeq = cjson.Uint64(last)
	return nil
}

// GetGenesisReply is the reply from GetGenesis
type GetGenesisReply struct {
	Admin           ids.ShortID     `json:"admin"`
	Creator         ids.ShortID     `json:"creator"`
	Asset           AssetDefinition `json:"asset"`
	MinimumInfusion cjson.Uint64    `json:"minimumInfusion"`
}

// GetGenesis returns the deployment parameters.
func (s *Service) GetGenesis(_ *http.Request, _ *struct{}, reply *GetGenesisReply) error {
	genesis := s.vm.Genesis()
	reply.Admin = genesis.Admin
	reply.Creator = CreatorAddress(genesis.Admin)
	reply.Asset = genesis.Asset
	reply.MinimumInfusion = cjson.Uint64(genesis.Minimum())
	return nil
}
