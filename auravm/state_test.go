// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auravm

import (
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/assert"
)

func TestTokenState(t *testing.T) {
	assert := assert.New(t)
	state := NewState(memdb.New())

	tokenID := ids.ID{1, 2, 3}
	token := &TokenRecord{
		Collection:   CollectionFuseBlock,
		Seq:          1,
		Name:         TokenName(CollectionFuseBlock, 1),
		Owner:        owner1,
		BalanceStore: BalanceStoreAddress(tokenID),
	}

	_, err := state.GetToken(tokenID)
	assert.ErrorIs(err, database.ErrNotFound)

	assert.NoError(state.PutToken(tokenID, token))
	got, err := state.GetToken(tokenID)
	assert.NoError(err)
	assert.Equal(token.Name, got.Name)
	assert.Equal(token.Owner, got.Owner)

	assert.NoError(state.DeleteToken(tokenID))
	_, err = state.GetToken(tokenID)
	assert.ErrorIs(err, database.ErrNotFound)
}

func TestCounterState(t *testing.T) {
	assert := assert.New(t)
	state := NewState(memdb.New())

	counter, err := state.GetCounter(CollectionItem)
	assert.NoError(err)
	assert.Zero(counter)

	for want := uint64(1); want <= 3; want++ {
		seq, err := state.NextSequence(CollectionItem)
		assert.NoError(err)
		assert.Equal(want, seq)
	}

	// collections count independently
	counter, err = state.GetCounter(CollectionFuseBlock)
	assert.NoError(err)
	assert.Zero(counter)
}

// Abort must discard pending writes and any cache entries layered over
// them.
func TestStateAbort(t *testing.T) {
	assert := assert.New(t)
	state := NewState(memdb.New())

	tokenID := ids.ID{4, 5, 6}
	token := &TokenRecord{Name: "pending"}

	assert.NoError(state.PutToken(tokenID, token))
	state.Abort()

	_, err := state.GetToken(tokenID)
	assert.ErrorIs(err, database.ErrNotFound)

	// committed writes survive a later abort
	assert.NoError(state.PutToken(tokenID, token))
	assert.NoError(state.Commit())
	state.Abort()

	got, err := state.GetToken(tokenID)
	assert.NoError(err)
	assert.Equal("pending", got.Name)
}

func TestLedgerState(t *testing.T) {
	assert := assert.New(t)
	state := NewState(memdb.New())

	balance, frozen, err := state.GetAccount(owner1)
	assert.NoError(err)
	assert.Zero(balance)
	assert.False(frozen)

	assert.NoError(state.PutAccount(owner1, 77, true))
	balance, frozen, err = state.GetAccount(owner1)
	assert.NoError(err)
	assert.Equal(uint64(77), balance)
	assert.True(frozen)

	// a zeroed, unfrozen account leaves no entry behind
	assert.NoError(state.PutAccount(owner1, 0, false))
	balance, frozen, err = state.GetAccount(owner1)
	assert.NoError(err)
	assert.Zero(balance)
	assert.False(frozen)
}

func TestJournalState(t *testing.T) {
	assert := assert.New(t)
	state := NewState(memdb.New())

	last, err := state.LastSeq()
	assert.NoError(err)
	assert.Zero(last)

	assert.NoError(state.Append(&JournalEntry{Method: "mint", Caller: testAdmin, Amount: 7}))
	assert.NoError(state.Append(&JournalEntry{Method: "burn", Caller: testAdmin, Amount: 3}))

	last, err = state.LastSeq()
	assert.NoError(err)
	assert.Equal(uint64(2), last)

	entry, err := state.GetEntry(1)
	assert.NoError(err)
	assert.Equal("mint", entry.Method)
	assert.Equal(uint64(7), entry.Amount)
}
