// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auravm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	cjson "github.com/ava-labs/avalanchego/utils/json"
)

func TestService(t *testing.T) {
	assert := assert.New(t)
	vm := newTestVM(t)
	service := Service{vm}

	mintReply := SuccessReply{}
	assert.NoError(service.Mint(nil, &MintArgs{
		Caller: testAdmin,
		To:     owner1,
		Amount: 300,
	}, &mintReply))
	assert.True(mintReply.Success)

	fuseReply := MintTokenReply{}
	assert.NoError(service.MintFuseBlock(nil, &MintTokenArgs{
		Caller: owner1,
		Amount: 120,
	}, &fuseReply))

	balanceReply := GetBalanceReply{}
	assert.NoError(service.GetBalance(nil, &GetBalanceArgs{Account: owner1}, &balanceReply))
	assert.Equal(cjson.Uint64(180), balanceReply.Balance)
	assert.False(balanceReply.Frozen)

	tokenReply := GetTokenReply{}
	assert.NoError(service.GetToken(nil, &GetTokenArgs{TokenID: fuseReply.TokenID}, &tokenReply))
	assert.Equal(owner1, tokenReply.Owner)
	assert.Equal(cjson.Uint64(120), tokenReply.Balance)
	assert.False(tokenReply.Qualifies)

	lookupReply := GetTokenReply{}
	assert.NoError(service.LookupToken(nil, &LookupTokenArgs{
		Collection: CollectionFuseBlock,
		Seq:        1,
	}, &lookupReply))
	assert.Equal(fuseReply.TokenID, lookupReply.TokenID)

	// errors surface to the RPC layer unchanged
	assert.ErrorIs(service.Qualify(nil, &TokenArgs{
		Caller:  owner1,
		TokenID: fuseReply.TokenID,
	}, &SuccessReply{}), ErrPermissionDenied)

	assert.NoError(service.Qualify(nil, &TokenArgs{
		Caller:  testAdmin,
		TokenID: fuseReply.TokenID,
	}, &SuccessReply{}))

	assert.NoError(service.ElevatedTransfer(nil, &ElevatedTransferArgs{
		Caller:   testAdmin,
		TokenID:  fuseReply.TokenID,
		NewOwner: owner2,
	}, &SuccessReply{}))

	burnReply := BurnAndExtractReply{}
	assert.NoError(service.BurnAndExtract(nil, &TokenArgs{
		Caller:  owner2,
		TokenID: fuseReply.TokenID,
	}, &burnReply))
	assert.Equal(cjson.Uint64(120), burnReply.Extracted)

	supplyReply := GetSupplyReply{}
	assert.NoError(service.GetSupply(nil, &struct{}{}, &supplyReply))
	assert.Equal(cjson.Uint64(300), supplyReply.Supply)

	genesisReply := GetGenesisReply{}
	assert.NoError(service.GetGenesis(nil, &struct{}{}, &genesisReply))
	assert.Equal(testAdmin, genesisReply.Admin)
	assert.Equal(CreatorAddress(testAdmin), genesisReply.Creator)
	assert.Equal("AURA", genesisReply.Asset.Symbol)

	journalReply := GetJournalEntryReply{}
	assert.NoError(service.GetJournalEntry(nil, &GetJournalEntryArgs{}, &journalReply))
	assert.Equal("burnAndExtract", journalReply.Entry.Method)
	assert.Equal(journalReply.LastSeq, cjson.Uint64(journalReply.Entry.Seq))
}
