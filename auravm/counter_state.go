// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auravm

import (
	"encoding/binary"

	"github.com/ava-labs/avalanchego/database"
)

var _ CounterState = (*counterState)(nil)

// CounterState keeps one monotonically increasing sequence number per token
// collection. A counter is bumped exactly once per successful mint and is
// never decremented or reset, so token names are unique for the lifetime of
// a deployment.
type CounterState interface {
	// GetCounter returns the number of tokens ever minted in [collection].
	GetCounter(collection string) (uint64, error)

	// NextSequence bumps the counter and returns its new value, which is
	// the 1-based sequence of the token being minted.
	NextSequence(collection string) (uint64, error)
}

type counterState struct {
	counterDB database.Database
}

func NewCounterState(db database.Database) CounterState {
	return &counterState{
		counterDB: db,
	}
}

func (s *counterState) GetCounter(collection string) (uint64, error) {
	b, err := s.counterDB.Get([]byte(collection))
	if err == database.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (s *counterState) NextSequence(collection string) (uint64, error) {
	current, err := s.GetCounter(collection)
	if err != nil {
		return 0, err
	}

	next := current + 1
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, next)
	if err := s.counterDB.Put([]byte(collection), b); err != nil {
		return 0, err
	}
	return next, nil
}
