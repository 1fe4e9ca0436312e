// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auravm

import (
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/assert"
)

func TestMintFuseBlock(t *testing.T) {
	assert := assert.New(t)
	vm := newTestVM(t)

	assert.NoError(vm.Mint(testAdmin, owner1, 300))

	tokenID, err := vm.MintFuseBlock(owner1, 100)
	assert.NoError(err)

	token, err := vm.GetToken(tokenID)
	assert.NoError(err)
	assert.Equal(CollectionFuseBlock, token.Collection)
	assert.Equal(uint64(1), token.Seq)
	assert.Equal("AuraFuseBlock #1", token.Name)
	assert.Equal("https://aura.example/fuse/1", token.URI)
	assert.Equal(owner1, token.Owner)
	assert.False(token.Qualifies)

	// identity and balance store are pure derivations
	assert.Equal(TokenID(CreatorAddress(testAdmin), CollectionFuseBlock, token.Name), tokenID)
	assert.Equal(BalanceStoreAddress(tokenID), token.BalanceStore)

	// a second mint gets the next sequence
	tokenID2, err := vm.MintFuseBlock(owner1, 100)
	assert.NoError(err)
	assert.NotEqual(tokenID, tokenID2)

	token2, err := vm.GetToken(tokenID2)
	assert.NoError(err)
	assert.Equal(uint64(2), token2.Seq)

	// lookup by collection and sequence needs no index
	lookedUpID, lookedUp, err := vm.LookupToken(CollectionFuseBlock, 1)
	assert.NoError(err)
	assert.Equal(tokenID, lookedUpID)
	assert.Equal(token.Name, lookedUp.Name)
}

func TestMintBelowMinimum(t *testing.T) {
	assert := assert.New(t)
	vm := newTestVM(t)

	assert.NoError(vm.Mint(testAdmin, owner1, 300))

	_, err := vm.MintFuseBlock(owner1, DefaultMinimumInfusion-1)
	assert.ErrorIs(err, ErrBelowMinimumInfusion)
	_, err = vm.MintItem(owner1, 0)
	assert.ErrorIs(err, ErrBelowMinimumInfusion)

	balance, err := vm.Balance(owner1)
	assert.NoError(err)
	assert.Equal(uint64(300), balance)

	counter, err := vm.state.GetCounter(CollectionFuseBlock)
	assert.NoError(err)
	assert.Zero(counter)
}

func TestMinimumFromGenesis(t *testing.T) {
	assert := assert.New(t)

	genesis := testGenesis()
	genesis.MinimumInfusion = 5
	genesisBytes, err := genesis.Bytes()
	assert.NoError(err)

	vm := &VM{}
	assert.NoError(vm.Initialize(memdb.New(), genesisBytes))

	assert.NoError(vm.Mint(testAdmin, owner1, 10))
	_, err = vm.MintFuseBlock(owner1, 4)
	assert.ErrorIs(err, ErrBelowMinimumInfusion)
	_, err = vm.MintFuseBlock(owner1, 5)
	assert.NoError(err)
}

func TestMintItemDirect(t *testing.T) {
	assert := assert.New(t)
	vm := newTestVM(t)

	assert.NoError(vm.Mint(testAdmin, owner1, 150))

	tokenID, err := vm.MintItem(owner1, 150)
	assert.NoError(err)

	token, err := vm.GetToken(tokenID)
	assert.NoError(err)
	assert.Equal(CollectionItem, token.Collection)
	assert.Equal(ids.Empty, token.Origin)

	// item and fuse counters are independent
	counter, err := vm.state.GetCounter(CollectionFuseBlock)
	assert.NoError(err)
	assert.Zero(counter)
	counter, err = vm.state.GetCounter(CollectionItem)
	assert.NoError(err)
	assert.Equal(uint64(1), counter)
}

func TestMintItemFromFuseBlock(t *testing.T) {
	assert := assert.New(t)
	vm := newTestVM(t)

	assert.NoError(vm.Mint(testAdmin, owner1, 300))

	fuseID, err := vm.MintFuseBlock(owner1, 120)
	assert.NoError(err)
	assert.NoError(vm.InfuseToken(owner1, fuseID, 30))

	// only the fuse's owner may consume it
	_, err = vm.MintItemFromFuseBlock(owner2, fuseID)
	assert.ErrorIs(err, ErrNotOwner)

	itemID, err := vm.MintItemFromFuseBlock(owner1, fuseID)
	assert.NoError(err)

	// the fuse is gone
	_, err = vm.GetToken(fuseID)
	assert.ErrorIs(err, ErrTokenNotFound)

	// the item carries the fuse's entire balance and its origin
	item, err := vm.GetToken(itemID)
	assert.NoError(err)
	assert.Equal(CollectionItem, item.Collection)
	assert.Equal(fuseID, item.Origin)
	assert.Equal(owner1, item.Owner)

	balance, err := vm.Balance(item.BalanceStore)
	assert.NoError(err)
	assert.Equal(uint64(150), balance)

	// the caller's own balance was untouched by the conversion
	balance, err = vm.Balance(owner1)
	assert.NoError(err)
	assert.Equal(uint64(150), balance)

	// an item is not a fuse
	_, err = vm.MintItemFromFuseBlock(owner1, itemID)
	assert.ErrorIs(err, ErrWrongCollection)
}

func TestQualifyAndElevatedTransfer(t *testing.T) {
	assert := assert.New(t)
	vm := newTestVM(t)

	assert.NoError(vm.Mint(testAdmin, owner1, 100))
	tokenID, err := vm.MintFuseBlock(owner1, 100)
	assert.NoError(err)

	assert.ErrorIs(vm.ElevatedTransfer(owner1, tokenID, owner2), ErrPermissionDenied)
	assert.ErrorIs(vm.ElevatedTransfer(testAdmin, tokenID, owner2), ErrNotQualified)

	assert.NoError(vm.Qualify(testAdmin, tokenID))
	assert.NoError(vm.ElevatedTransfer(testAdmin, tokenID, owner2))

	token, err := vm.GetToken(tokenID)
	assert.NoError(err)
	assert.Equal(owner2, token.Owner)
	assert.True(token.Qualifies)

	// qualification survives the transfer; the admin can move it again
	// without the new owner's consent
	assert.NoError(vm.ElevatedTransfer(testAdmin, tokenID, owner1))
}

func TestBurnAndExtract(t *testing.T) {
	assert := assert.New(t)
	vm := newTestVM(t)

	assert.NoError(vm.Mint(testAdmin, owner1, 200))
	tokenID, err := vm.MintFuseBlock(owner1, 200)
	assert.NoError(err)

	_, err = vm.BurnAndExtract(owner2, tokenID)
	assert.ErrorIs(err, ErrNotOwner)

	extracted, err := vm.BurnAndExtract(owner1, tokenID)
	assert.NoError(err)
	assert.Equal(uint64(200), extracted)

	balance, err := vm.Balance(owner1)
	assert.NoError(err)
	assert.Equal(uint64(200), balance)

	// the balance store is empty and the token is gone
	balance, err = vm.Balance(BalanceStoreAddress(tokenID))
	assert.NoError(err)
	assert.Zero(balance)
	_, err = vm.GetToken(tokenID)
	assert.ErrorIs(err, ErrTokenNotFound)
	assert.ErrorIs(vm.InfuseToken(owner1, tokenID, 10), ErrTokenNotFound)
}

// A frozen owner cannot extract funds through a burn; the elevated paths are
// the only way around the flag.
func TestBurnAndExtractFrozenOwner(t *testing.T) {
	assert := assert.New(t)
	vm := newTestVM(t)

	assert.NoError(vm.Mint(testAdmin, owner1, 200))
	tokenID, err := vm.MintFuseBlock(owner1, 200)
	assert.NoError(err)

	assert.NoError(vm.Freeze(testAdmin, owner1))
	_, err = vm.BurnAndExtract(owner1, tokenID)
	assert.ErrorIs(err, ErrAccountFrozen)

	// the failed extract left the token and its balance intact
	token, err := vm.GetToken(tokenID)
	assert.NoError(err)
	balance, err := vm.Balance(token.BalanceStore)
	assert.NoError(err)
	assert.Equal(uint64(200), balance)

	assert.NoError(vm.Unfreeze(testAdmin, owner1))
	extracted, err := vm.BurnAndExtract(owner1, tokenID)
	assert.NoError(err)
	assert.Equal(uint64(200), extracted)
}

// Readers must only ever observe fully-applied records while the admin
// reassigns ownership. Run with -race.
func TestConcurrentTokenReads(t *testing.T) {
	assert := assert.New(t)
	vm := newTestVM(t)

	assert.NoError(vm.Mint(testAdmin, owner1, 100))
	tokenID, err := vm.MintFuseBlock(owner1, 100)
	assert.NoError(err)
	assert.NoError(vm.Qualify(testAdmin, tokenID))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			newOwner := owner1
			if i%2 == 0 {
				newOwner = owner2
			}
			assert.NoError(vm.ElevatedTransfer(testAdmin, tokenID, newOwner))
		}
	}()

	for {
		select {
		case <-done:
			return
		default:
		}
		token, err := vm.GetToken(tokenID)
		assert.NoError(err)
		assert.True(token.Owner == owner1 || token.Owner == owner2)
		assert.True(token.Qualifies)
	}
}

func TestInfuseToken(t *testing.T) {
	assert := assert.New(t)
	vm := newTestVM(t)

	assert.NoError(vm.Mint(testAdmin, owner1, 100))
	assert.NoError(vm.Mint(testAdmin, owner2, 75))

	tokenID, err := vm.MintFuseBlock(owner1, 100)
	assert.NoError(err)

	// anyone may top up a token from their own funds
	assert.NoError(vm.InfuseToken(owner2, tokenID, 25))
	assert.ErrorIs(vm.InfuseToken(owner2, tokenID, 51), ErrInsufficientBalance)

	token, err := vm.GetToken(tokenID)
	assert.NoError(err)
	balance, err := vm.Balance(token.BalanceStore)
	assert.NoError(err)
	assert.Equal(uint64(125), balance)
}

func TestTokenIDDerivation(t *testing.T) {
	assert := assert.New(t)

	creator := CreatorAddress(testAdmin)

	// deterministic: same inputs, same id
	a := TokenID(creator, CollectionFuseBlock, TokenName(CollectionFuseBlock, 1))
	b := TokenID(creator, CollectionFuseBlock, TokenName(CollectionFuseBlock, 1))
	assert.Equal(a, b)

	// distinct across names, collections and creators
	assert.NotEqual(a, TokenID(creator, CollectionFuseBlock, TokenName(CollectionFuseBlock, 2)))
	assert.NotEqual(a, TokenID(creator, CollectionItem, TokenName(CollectionFuseBlock, 1)))
	assert.NotEqual(a, TokenID(CreatorAddress(owner1), CollectionFuseBlock, TokenName(CollectionFuseBlock, 1)))

	assert.NotEqual(ids.ShortEmpty, BalanceStoreAddress(a))
}
