// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auravm

import (
	"github.com/ava-labs/avalanchego/ids"
)

// Creator is the delegated signer of a deployment: automated flows (token
// mints, balance-store moves) act under its address instead of requiring the
// admin's signature on every call.
//
// The capability to obtain the acting identity is sealed at the type level:
// ActAs takes a creatorClient, and only in-package components can implement
// the unexported marker method. Which component may act as the creator is
// therefore fixed at compile time, not checked at run time.
type Creator struct {
	actor ids.ShortID
}

// newCreator is called exactly once, during VM initialization.
func newCreator(admin ids.ShortID) *Creator {
	return &Creator{actor: CreatorAddress(admin)}
}

// creatorClient is the allow-list of components that may act as the
// creator. The marker method is unexported, so the interface is sealed to
// this package.
type creatorClient interface {
	actsAsCreator()
}

// The allow-list: the fungible ledger, the token registry and the one-shot
// initializer.
var (
	_ creatorClient = (*auraLedger)(nil)
	_ creatorClient = (*tokenRegistry)(nil)
	_ creatorClient = (*initializer)(nil)
)

// ActAs hands the acting identity to an allow-listed component.
func (c *Creator) ActAs(creatorClient) ids.ShortID {
	return c.actor
}

// Address returns the creator's address without granting the right to act
// as it.
func (c *Creator) Address() ids.ShortID {
	return c.actor
}

// initializer is the genesis-time component that creates the asset and the
// collections. It exists so first-run setup goes through the same delegated
// identity as every later automated flow.
type initializer struct{}

func (initializer) actsAsCreator() {}
