// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auravm

// AssetDefinition describes the single fungible asset managed by a
// deployment. It is fixed at genesis and never destroyed.
type AssetDefinition struct {
	Name         string `serialize:"true" json:"name"`
	Symbol       string `serialize:"true" json:"symbol"`
	Denomination uint8  `serialize:"true" json:"denomination"`
	IconURI      string `serialize:"true" json:"iconUri"`
	ProjectURI   string `serialize:"true" json:"projectUri"`

	// MaxSupply of 0 means the supply is unbounded.
	MaxSupply uint64 `serialize:"true" json:"maxSupply"`

	// Capability flags, fixed at creation.
	Mintable          bool `serialize:"true" json:"mintable"`
	ForceTransferable bool `serialize:"true" json:"forceTransferable"`
	Burnable          bool `serialize:"true" json:"burnable"`
}

// fungibleUnit is an amount of the asset in flight between two balance
// stores. Units only exist inside a single operation: they are created by
// withdraw, consumed by deposit, and must read zero before being dropped.
// The amount is unexported so a unit cannot be minted out of thin air.
type fungibleUnit struct {
	amount uint64
}

func (u *fungibleUnit) value() uint64 { return u.amount }

// destroy checks the unit has been fully deposited. A non-zero residue at
// destruction time means supply would silently leak.
func (u *fungibleUnit) destroy() error {
	if u.amount != 0 {
		return ErrInvariantViolation
	}
	return nil
}
