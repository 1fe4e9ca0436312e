// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auravm

import (
	"github.com/ava-labs/avalanchego/cache"
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
)

const (
	tokenCacheSize = 8192
)

var _ TokenState = (*tokenState)(nil)

// TokenState stores the records of live infusable tokens and, under a
// separate prefix, their capability bundles. A record and its bundle are
// written together at mint and deleted together at burn; nothing else
// creates or destroys either.
type TokenState interface {
	GetToken(tokenID ids.ID) (*TokenRecord, error)
	PutToken(tokenID ids.ID, token *TokenRecord) error
	DeleteToken(tokenID ids.ID) error

	GetCapabilities(tokenID ids.ID) (*CapabilityBundle, error)
	PutCapabilities(bundle *CapabilityBundle) error
	DeleteCapabilities(tokenID ids.ID) error

	ClearCache()
}

type tokenState struct {
	tokenCache cache.Cacher
	tokenDB    database.Database
	capDB      database.Database
}

func NewTokenState(tokenDB database.Database, capDB database.Database) TokenState {
	return &tokenState{
		tokenCache: &cache.LRU{Size: tokenCacheSize},
		tokenDB:    tokenDB,
		capDB:      capDB,
	}
}

// GetToken returns a copy of the stored record. The cached record itself is
// never handed out: callers mutate their copy and put it back, so a reader
// holding an earlier copy never observes a half-updated record.
func (s *tokenState) GetToken(tokenID ids.ID) (*TokenRecord, error) {
	if tokenIntf, cached := s.tokenCache.Get(tokenID); cached {
		if tokenIntf == nil {
			return nil, database.ErrNotFound
		}
		token := *tokenIntf.(*TokenRecord)
		return &token, nil
	}

	b, err := s.tokenDB.Get(tokenID[:])
	if err == database.ErrNotFound {
		s.tokenCache.Put(tokenID, nil)
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	token := &TokenRecord{}
	if _, err := Codec.Unmarshal(b, token); err != nil {
		return nil, err
	}

	s.tokenCache.Put(tokenID, token)
	copied := *token
	return &copied, nil
}

func (s *tokenState) PutToken(tokenID ids.ID, token *TokenRecord) error {
	b, err := Codec.Marshal(CodecVersion, token)
	if err != nil {
		return err
	}

	s.tokenCache.Put(tokenID, token)
	return s.tokenDB.Put(tokenID[:], b)
}

func (s *tokenState) DeleteToken(tokenID ids.ID) error {
	s.tokenCache.Put(tokenID, nil)
	return s.tokenDB.Delete(tokenID[:])
}

func (s *tokenState) GetCapabilities(tokenID ids.ID) (*CapabilityBundle, error) {
	b, err := s.capDB.Get(tokenID[:])
	if err != nil {
		return nil, err
	}

	bundle := &CapabilityBundle{}
	if _, err := Codec.Unmarshal(b, bundle); err != nil {
		return nil, err
	}
	return bundle, nil
}

func (s *tokenState) PutCapabilities(bundle *CapabilityBundle) error {
	b, err := Codec.Marshal(CodecVersion, bundle)
	if err != nil {
		return err
	}
	return s.capDB.Put(bundle.Token[:], b)
}

func (s *tokenState) DeleteCapabilities(tokenID ids.ID) error {
	return s.capDB.Delete(tokenID[:])
}

// ClearCache drops cached records. It must be called whenever pending
// writes are aborted, since the cache is updated eagerly on Put and Delete.
func (s *tokenState) ClearCache() {
	s.tokenCache.Flush()
}
