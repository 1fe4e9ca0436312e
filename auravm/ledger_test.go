// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auravm

import (
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/assert"
)

// sumBalances adds up every account involved in the ledger tests plus the
// balance stores of [tokens].
func sumBalances(t *testing.T, vm *VM, tokens ...ids.ID) uint64 {
	t.Helper()

	total := uint64(0)
	for _, account := range []ids.ShortID{testAdmin, owner1, owner2, CreatorAddress(testAdmin)} {
		balance, err := vm.Balance(account)
		assert.NoError(t, err)
		total += balance
	}
	for _, tokenID := range tokens {
		token, err := vm.GetToken(tokenID)
		assert.NoError(t, err)
		balance, err := vm.Balance(token.BalanceStore)
		assert.NoError(t, err)
		total += balance
	}
	return total
}

// The sum of balances must equal minted minus burned at every observation
// point.
func TestSupplyConservation(t *testing.T) {
	assert := assert.New(t)
	vm := newTestVM(t)

	checkConserved := func(tokens ...ids.ID) {
		supply, err := vm.TotalSupply()
		assert.NoError(err)
		assert.Equal(supply, sumBalances(t, vm, tokens...))
	}

	assert.NoError(vm.Mint(testAdmin, owner1, 1000))
	checkConserved()

	assert.NoError(vm.Transfer(owner1, owner2, 300))
	checkConserved()

	assert.NoError(vm.Burn(testAdmin, owner2, 100))
	checkConserved()

	tokenID, err := vm.MintFuseBlock(owner1, 250)
	assert.NoError(err)
	checkConserved(tokenID)

	assert.NoError(vm.InfuseToken(owner2, tokenID, 50))
	checkConserved(tokenID)

	_, err = vm.BurnAndExtract(owner1, tokenID)
	assert.NoError(err)
	checkConserved()

	supply, err := vm.TotalSupply()
	assert.NoError(err)
	assert.Equal(uint64(900), supply)
}

func TestMintGating(t *testing.T) {
	assert := assert.New(t)
	vm := newTestVM(t)

	assert.ErrorIs(vm.Mint(owner1, owner1, 10), ErrPermissionDenied)
	assert.ErrorIs(vm.Mint(testAdmin, owner1, 0), ErrZeroAmount)
	assert.NoError(vm.Mint(testAdmin, owner1, 10))
}

func TestMaxSupply(t *testing.T) {
	assert := assert.New(t)

	genesis := testGenesis()
	genesis.Asset.MaxSupply = 100
	genesisBytes, err := genesis.Bytes()
	assert.NoError(err)

	vm := &VM{}
	assert.NoError(vm.Initialize(memdb.New(), genesisBytes))

	assert.NoError(vm.Mint(testAdmin, owner1, 60))
	assert.ErrorIs(vm.Mint(testAdmin, owner1, 41), ErrMaxSupplyExceeded)
	assert.NoError(vm.Mint(testAdmin, owner1, 40))

	// burning frees room under the cap
	assert.NoError(vm.Burn(testAdmin, owner1, 10))
	assert.NoError(vm.Mint(testAdmin, owner1, 10))
}

func TestCapabilityFlags(t *testing.T) {
	assert := assert.New(t)

	genesis := testGenesis()
	genesis.Asset.Mintable = false
	genesis.Asset.Burnable = false
	genesis.Asset.ForceTransferable = false
	genesisBytes, err := genesis.Bytes()
	assert.NoError(err)

	vm := &VM{}
	assert.NoError(vm.Initialize(memdb.New(), genesisBytes))

	assert.ErrorIs(vm.Mint(testAdmin, owner1, 10), ErrNotMintable)
	assert.ErrorIs(vm.Burn(testAdmin, owner1, 10), ErrNotBurnable)
	assert.ErrorIs(vm.ForceTransfer(testAdmin, owner1, owner2, 10), ErrNotForceTransferable)
}

func TestBurnInsufficient(t *testing.T) {
	assert := assert.New(t)
	vm := newTestVM(t)

	assert.NoError(vm.Mint(testAdmin, owner1, 10))
	assert.ErrorIs(vm.Burn(testAdmin, owner1, 11), ErrInsufficientBalance)

	balance, err := vm.Balance(owner1)
	assert.NoError(err)
	assert.Equal(uint64(10), balance)
}

func TestTransfer(t *testing.T) {
	assert := assert.New(t)
	vm := newTestVM(t)

	assert.NoError(vm.Mint(testAdmin, owner1, 100))
	assert.ErrorIs(vm.Transfer(owner1, owner2, 101), ErrInsufficientBalance)
	assert.NoError(vm.Transfer(owner1, owner2, 100))

	balance, err := vm.Balance(owner2)
	assert.NoError(err)
	assert.Equal(uint64(100), balance)
}

// Freezing blocks the direct paths but never the elevated one.
func TestFreeze(t *testing.T) {
	assert := assert.New(t)
	vm := newTestVM(t)

	assert.NoError(vm.Mint(testAdmin, owner1, 100))
	assert.NoError(vm.Mint(testAdmin, owner2, 100))

	assert.ErrorIs(vm.Freeze(owner1, owner1), ErrPermissionDenied)
	assert.NoError(vm.Freeze(testAdmin, owner1))
	assert.NoError(vm.Freeze(testAdmin, owner1)) // idempotent

	frozen, err := vm.Frozen(owner1)
	assert.NoError(err)
	assert.True(frozen)

	// frozen sender
	assert.ErrorIs(vm.Transfer(owner1, owner2, 10), ErrAccountFrozen)
	assert.ErrorIs(vm.Infuse(owner1, owner2, 10), ErrAccountFrozen)
	// frozen recipient
	assert.ErrorIs(vm.Transfer(owner2, owner1, 10), ErrAccountFrozen)

	// the elevated paths ignore the flag
	assert.NoError(vm.ForceTransfer(testAdmin, owner1, owner2, 10))
	assert.NoError(vm.Burn(testAdmin, owner1, 10))
	assert.NoError(vm.Mint(testAdmin, owner1, 10))

	// freezing moved no funds
	balance, err := vm.Balance(owner1)
	assert.NoError(err)
	assert.Equal(uint64(90), balance)

	assert.NoError(vm.Unfreeze(testAdmin, owner1))
	assert.NoError(vm.Unfreeze(testAdmin, owner1)) // idempotent
	assert.NoError(vm.Transfer(owner1, owner2, 10))
}

func TestInfuse(t *testing.T) {
	assert := assert.New(t)
	vm := newTestVM(t)

	assert.NoError(vm.Mint(testAdmin, owner1, 100))

	// not admin gated: owner1 moves its own funds
	assert.NoError(vm.Infuse(owner1, owner2, 40))

	balance, err := vm.Balance(owner2)
	assert.NoError(err)
	assert.Equal(uint64(40), balance)

	// checked against the caller's own balance only
	assert.ErrorIs(vm.Infuse(owner1, owner2, 61), ErrInsufficientBalance)
}
