// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auravm

import (
	"encoding/binary"

	"github.com/ava-labs/avalanchego/database"
)

const (
	IsInitializedKey byte = iota
	GenesisKey
	TotalSupplyKey
)

var (
	isInitializedKey = []byte{IsInitializedKey}
	genesisKey       = []byte{GenesisKey}
	totalSupplyKey   = []byte{TotalSupplyKey}

	_ SingletonState = (*singletonState)(nil)
)

// SingletonState is a thin wrapper around a database to provide
// serialization and de-serialization of the deployment-wide singletons: the
// initialization status, the genesis document and the asset's total supply.
type SingletonState interface {
	IsInitialized() (bool, error)
	SetInitialized() error

	GetGenesis() (*Genesis, error)
	SetGenesis(*Genesis) error

	// GetTotalSupply returns 0 before anything has been minted.
	GetTotalSupply() (uint64, error)
	SetTotalSupply(uint64) error
}

type singletonState struct {
	singletonDB database.Database
}

func NewSingletonState(db database.Database) SingletonState {
	return &singletonState{
		singletonDB: db,
	}
}

func (s *singletonState) IsInitialized() (bool, error) {
	return s.singletonDB.Has(isInitializedKey)
}

func (s *singletonState) SetInitialized() error {
	return s.singletonDB.Put(isInitializedKey, nil)
}

func (s *singletonState) GetGenesis() (*Genesis, error) {
	b, err := s.singletonDB.Get(genesisKey)
	if err != nil {
		return nil, err
	}
	return ParseGenesis(b)
}

func (s *singletonState) SetGenesis(g *Genesis) error {
	b, err := g.Bytes()
	if err != nil {
		return err
	}
	return s.singletonDB.Put(genesisKey, b)
}

func (s *singletonState) GetTotalSupply() (uint64, error) {
	b, err := s.singletonDB.Get(totalSupplyKey)
	if err == database.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (s *singletonState) SetTotalSupply(supply uint64) error {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, supply)
	return s.singletonDB.Put(totalSupplyKey, b)
}
