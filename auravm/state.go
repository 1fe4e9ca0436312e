// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auravm

import (
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/ava-labs/avalanchego/database/versiondb"
)

var (
	// These are prefixes for db keys.
	// It's important to set different prefixes for each separate database objects.
	singletonStatePrefix  = []byte("singleton")
	ledgerStatePrefix     = []byte("ledger")
	counterStatePrefix    = []byte("counter")
	tokenStatePrefix      = []byte("token")
	capabilityStatePrefix = []byte("capability")
	journalStatePrefix    = []byte("journal")

	_ State = (*state)(nil)
)

// State is a wrapper around the sub states of the VM. It also exposes the
// methods needed for managing database versions: all writes of one operation
// are pending until Commit, and Abort discards them together.
type State interface {
	SingletonState
	LedgerState
	CounterState
	TokenState
	JournalState

	Commit() error
	Abort()
	Close() error
}

type state struct {
	SingletonState
	LedgerState
	CounterState
	TokenState
	JournalState

	baseDB *versiondb.Database
}

func NewState(db database.Database) State {
	// create a new baseDB
	baseDB := versiondb.New(db)

	// create prefixed sub databases from baseDB
	singletonDB := prefixdb.New(singletonStatePrefix, baseDB)
	ledgerDB := prefixdb.New(ledgerStatePrefix, baseDB)
	counterDB := prefixdb.New(counterStatePrefix, baseDB)
	tokenDB := prefixdb.New(tokenStatePrefix, baseDB)
	capabilityDB := prefixdb.New(capabilityStatePrefix, baseDB)
	journalDB := prefixdb.New(journalStatePrefix, baseDB)

	// return state with created sub state components
	return &state{
		SingletonState: NewSingletonState(singletonDB),
		LedgerState:    NewLedgerState(ledgerDB),
		CounterState:   NewCounterState(counterDB),
		TokenState:     NewTokenState(tokenDB, capabilityDB),
		JournalState:   NewJournalState(journalDB),
		baseDB:         baseDB,
	}
}

// Commit commits pending operations to baseDB
func (s *state) Commit() error {
	return s.baseDB.Commit()
}

// Abort discards pending operations and drops the caches layered over them.
func (s *state) Abort() {
	s.baseDB.Abort()
	s.ClearCache()
}

// ClearCache flushes every cached sub state.
func (s *state) ClearCache() {
	s.TokenState.ClearCache()
	s.JournalState.ClearCache()
}

// Close closes the underlying base database
func (s *state) Close() error {
	return s.baseDB.Close()
}
