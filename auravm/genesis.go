// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auravm

import (
	"errors"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
)

// DefaultMinimumInfusion is the smallest amount a token may be minted with
// when the genesis leaves the minimum unset.
const DefaultMinimumInfusion = 100

var (
	errNoAdmin  = errors.New("genesis must set an admin address")
	errNoAsset  = errors.New("genesis must name the asset")
	creatorSalt = []byte("aura/creator")
)

// Genesis is the deployment-time configuration of a VM instance. It is
// codec-encoded into the genesis bytes handed to Initialize.
type Genesis struct {
	// Admin is the only identity that passes the access controller.
	Admin ids.ShortID `serialize:"true" json:"admin"`

	Asset AssetDefinition `serialize:"true" json:"asset"`

	// MinimumInfusion is the smallest balance a token may be minted with.
	// 0 selects DefaultMinimumInfusion.
	MinimumInfusion uint64 `serialize:"true" json:"minimumInfusion"`

	FuseBlockBaseURI string `serialize:"true" json:"fuseBlockBaseUri"`
	ItemBaseURI      string `serialize:"true" json:"itemBaseUri"`
}

// Verify returns nil iff this genesis is usable.
func (g *Genesis) Verify() error {
	switch {
	case g.Admin == ids.ShortEmpty:
		return errNoAdmin
	case g.Asset.Name == "" || g.Asset.Symbol == "":
		return errNoAsset
	}
	return nil
}

// Minimum returns the effective minimum infusion amount.
func (g *Genesis) Minimum() uint64 {
	if g.MinimumInfusion == 0 {
		return DefaultMinimumInfusion
	}
	return g.MinimumInfusion
}

// Bytes returns the codec encoding of the genesis.
func (g *Genesis) Bytes() ([]byte, error) {
	return Codec.Marshal(CodecVersion, g)
}

// ParseGenesis decodes genesis bytes produced by (*Genesis).Bytes.
func ParseGenesis(b []byte) (*Genesis, error) {
	g := &Genesis{}
	if _, err := Codec.Unmarshal(b, g); err != nil {
		return nil, err
	}
	return g, g.Verify()
}

// CreatorAddress derives the acting address of the delegated creator from
// the admin address. The derivation is fixed so the creator's ledger account
// is computable by anyone who knows the deployment admin.
func CreatorAddress(admin ids.ShortID) ids.ShortID {
	preimage := make([]byte, 0, hashing.AddrLen+len(creatorSalt))
	preimage = append(preimage, admin.Bytes()...)
	preimage = append(preimage, creatorSalt...)
	return ids.ShortID(hashing.ComputeHash160Array(preimage))
}
