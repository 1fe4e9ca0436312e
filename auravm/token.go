// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auravm

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
)

// Collection names for the two infusable token lines.
const (
	CollectionFuseBlock = "AuraFuseBlock"
	CollectionItem      = "AuraItem"
)

// TokenRecord is the stored state of one infusable token.
// Its id and the address of its balance store are both derived, never
// assigned, so a token's storage location is always computable from its
// name without an index.
type TokenRecord struct {
	Collection string `serialize:"true" json:"collection"`
	Seq        uint64 `serialize:"true" json:"seq"`
	Name       string `serialize:"true" json:"name"`
	URI        string `serialize:"true" json:"uri"`

	Owner     ids.ShortID `serialize:"true" json:"owner"`
	Qualifies bool        `serialize:"true" json:"qualifies"`

	// BalanceStore is the ledger account owned by the token itself. Only
	// registry operations move funds out of it.
	BalanceStore ids.ShortID `serialize:"true" json:"balanceStore"`

	// Origin is the FuseBlock an Item was infused from. ids.Empty marks a
	// direct mint (and all FuseBlocks).
	Origin ids.ID `serialize:"true" json:"origin"`
}

// ID computes the token's id from the creator address, its collection and
// its name.
func (t *TokenRecord) ID(creator ids.ShortID) ids.ID {
	return TokenID(creator, t.Collection, t.Name)
}

// CapabilityBundle holds the grants needed to act as a token and to later
// destroy it. One bundle exists per live token, created at mint and deleted
// exactly at burn; it is never copied or shared.
type CapabilityBundle struct {
	Token       ids.ID `serialize:"true"`
	CanExtend   bool   `serialize:"true"`
	CanTransfer bool   `serialize:"true"`
	CanBurn     bool   `serialize:"true"`
}

// TokenName derives the canonical name of the [seq]th token of a collection.
func TokenName(collection string, seq uint64) string {
	return fmt.Sprintf("%s #%d", collection, seq)
}

// TokenURI derives the metadata URI of the [seq]th token of a collection.
func TokenURI(baseURI string, seq uint64) string {
	return fmt.Sprintf("%s/%d", baseURI, seq)
}

// TokenID derives a token's id from the creator address, the collection and
// the token name.
func TokenID(creator ids.ShortID, collection, name string) ids.ID {
	preimage := make([]byte, 0, hashing.AddrLen+len(collection)+len(name))
	preimage = append(preimage, creator.Bytes()...)
	preimage = append(preimage, collection...)
	preimage = append(preimage, name...)
	return ids.ID(hashing.ComputeHash256Array(preimage))
}

// BalanceStoreAddress derives the ledger address of a token's embedded
// balance store from the token id.
func BalanceStoreAddress(tokenID ids.ID) ids.ShortID {
	return ids.ShortID(hashing.ComputeHash160Array(tokenID[:]))
}
