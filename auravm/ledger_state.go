// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auravm

import (
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
)

var _ LedgerState = (*ledgerState)(nil)

// ledgerEntry is the stored per-account state of the asset.
type ledgerEntry struct {
	Balance uint64 `serialize:"true"`
	Frozen  bool   `serialize:"true"`
}

// LedgerState stores one entry per account that has ever held a balance or
// been frozen. Accounts with a zero balance and a clear frozen flag are
// deleted so the ledger only carries live entries.
type LedgerState interface {
	// GetAccount returns the zero entry for absent accounts.
	GetAccount(addr ids.ShortID) (balance uint64, frozen bool, err error)
	PutAccount(addr ids.ShortID, balance uint64, frozen bool) error
}

type ledgerState struct {
	ledgerDB database.Database
}

func NewLedgerState(db database.Database) LedgerState {
	return &ledgerState{
		ledgerDB: db,
	}
}

func (s *ledgerState) GetAccount(addr ids.ShortID) (uint64, bool, error) {
	b, err := s.ledgerDB.Get(addr.Bytes())
	if err == database.ErrNotFound {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	entry := ledgerEntry{}
	if _, err := Codec.Unmarshal(b, &entry); err != nil {
		return 0, false, err
	}
	return entry.Balance, entry.Frozen, nil
}

func (s *ledgerState) PutAccount(addr ids.ShortID, balance uint64, frozen bool) error {
	if balance == 0 && !frozen {
		err := s.ledgerDB.Delete(addr.Bytes())
		if err == database.ErrNotFound {
			return nil
		}
		return err
	}

	entry := ledgerEntry{
		Balance: balance,
		Frozen:  frozen,
	}
	b, err := Codec.Marshal(CodecVersion, &entry)
	if err != nil {
		return err
	}
	return s.ledgerDB.Put(addr.Bytes(), b)
}
