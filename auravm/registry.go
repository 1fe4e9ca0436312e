// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auravm

import (
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
)

// tokenRegistry implements the lifecycle of the infusable tokens: FuseBlocks
// and Items. Every token owns a dedicated balance store on the ledger; the
// registry is the only component that moves funds out of one.
type tokenRegistry struct {
	state   State
	access  *AccessControl
	creator *Creator
	ledger  *auraLedger

	minimum     uint64
	fuseBaseURI string
	itemBaseURI string
}

func newTokenRegistry(
	state State,
	access *AccessControl,
	creator *Creator,
	ledger *auraLedger,
	genesis *Genesis,
) *tokenRegistry {
	return &tokenRegistry{
		state:       state,
		access:      access,
		creator:     creator,
		ledger:      ledger,
		minimum:     genesis.Minimum(),
		fuseBaseURI: genesis.FuseBlockBaseURI,
		itemBaseURI: genesis.ItemBaseURI,
	}
}

func (r *tokenRegistry) actsAsCreator() {}

// MintFuseBlock mints a FuseBlock to the caller, infused with [amount] of
// the caller's own funds. Not admin gated; open to any sufficiently funded
// caller.
func (r *tokenRegistry) MintFuseBlock(caller ids.ShortID, amount uint64) (ids.ID, error) {
	return r.mintToken(caller, CollectionFuseBlock, r.fuseBaseURI, amount, caller, ids.Empty)
}

// MintItem mints an Item directly, with no FuseBlock origin, infused with
// [amount] of the caller's own funds.
func (r *tokenRegistry) MintItem(caller ids.ShortID, amount uint64) (ids.ID, error) {
	return r.mintToken(caller, CollectionItem, r.itemBaseURI, amount, caller, ids.Empty)
}

// MintItemFromFuseBlock consumes a FuseBlock owned by the caller: the fuse's
// entire infused balance drains into a new Item whose origin references the
// fuse, and the fuse is destroyed. Drain first, destroy second.
func (r *tokenRegistry) MintItemFromFuseBlock(caller ids.ShortID, fuseID ids.ID) (ids.ID, error) {
	fuse, err := r.getToken(fuseID)
	if err != nil {
		return ids.Empty, err
	}
	if fuse.Collection != CollectionFuseBlock {
		return ids.Empty, ErrWrongCollection
	}
	if fuse.Owner != caller {
		return ids.Empty, ErrNotOwner
	}

	bundle, err := r.getCapabilities(fuseID)
	if err != nil {
		return ids.Empty, err
	}
	if !bundle.CanBurn {
		return ids.Empty, ErrPermissionDenied
	}

	amount, err := r.ledger.Balance(fuse.BalanceStore)
	if err != nil {
		return ids.Empty, err
	}

	itemID, err := r.mintToken(caller, CollectionItem, r.itemBaseURI, amount, fuse.BalanceStore, fuseID)
	if err != nil {
		return ids.Empty, err
	}

	return itemID, r.destroyToken(fuseID, fuse)
}

// mintToken is the single mint transition behind every entry point. It
// atomically derives the token's identity from the next counter value, moves
// [amount] from [fundSource] into the token's balance store and writes the
// record together with its capability bundle.
func (r *tokenRegistry) mintToken(
	owner ids.ShortID,
	collection string,
	baseURI string,
	amount uint64,
	fundSource ids.ShortID,
	origin ids.ID,
) (ids.ID, error) {
	if amount < r.minimum {
		return ids.Empty, ErrBelowMinimumInfusion
	}

	seq, err := r.state.NextSequence(collection)
	if err != nil {
		return ids.Empty, err
	}

	name := TokenName(collection, seq)
	tokenID := TokenID(r.creator.ActAs(r), collection, name)
	store := BalanceStoreAddress(tokenID)

	// A token's balance store is not a signer; moving funds out of one is
	// an elevated move performed under the creator's authority. Funding
	// from the owner's account stays on the non-elevated path.
	elevated := fundSource != owner
	unit, err := r.ledger.withdraw(fundSource, amount, elevated)
	if err != nil {
		return ids.Empty, err
	}
	if err := r.ledger.deposit(unit, store, true); err != nil {
		return ids.Empty, err
	}
	if err := unit.destroy(); err != nil {
		return ids.Empty, err
	}

	token := &TokenRecord{
		Collection:   collection,
		Seq:          seq,
		Name:         name,
		URI:          TokenURI(baseURI, seq),
		Owner:        owner,
		Qualifies:    false,
		BalanceStore: store,
		Origin:       origin,
	}
	if err := r.state.PutToken(tokenID, token); err != nil {
		return ids.Empty, err
	}

	bundle := &CapabilityBundle{
		Token:       tokenID,
		CanExtend:   true,
		CanTransfer: true,
		CanBurn:     true,
	}
	return tokenID, r.state.PutCapabilities(bundle)
}

// Qualify flips the token's qualification gate. Admin only; idempotent;
// there is no inverse.
func (r *tokenRegistry) Qualify(caller ids.ShortID, tokenID ids.ID) error {
	if err := r.access.AssertAdmin(caller); err != nil {
		return err
	}

	token, err := r.getToken(tokenID)
	if err != nil {
		return err
	}
	bundle, err := r.getCapabilities(tokenID)
	if err != nil {
		return err
	}
	if !bundle.CanExtend {
		return ErrPermissionDenied
	}

	if token.Qualifies {
		return nil
	}
	token.Qualifies = true
	return r.state.PutToken(tokenID, token)
}

// ElevatedTransfer reassigns a qualified token to [newOwner] without the
// current owner's consent. Admin only. This override is intentional.
func (r *tokenRegistry) ElevatedTransfer(caller ids.ShortID, tokenID ids.ID, newOwner ids.ShortID) error {
	if err := r.access.AssertAdmin(caller); err != nil {
		return err
	}

	token, err := r.getToken(tokenID)
	if err != nil {
		return err
	}
	if !token.Qualifies {
		return ErrNotQualified
	}
	bundle, err := r.getCapabilities(tokenID)
	if err != nil {
		return err
	}
	if !bundle.CanTransfer {
		return ErrPermissionDenied
	}

	token.Owner = newOwner
	return r.state.PutToken(tokenID, token)
}

// BurnAndExtract drains the token's entire balance store to the calling
// owner and destroys the token. Only the current owner may call it; the
// payout is owner-initiated, so a frozen owner cannot extract.
func (r *tokenRegistry) BurnAndExtract(caller ids.ShortID, tokenID ids.ID) (uint64, error) {
	token, err := r.getToken(tokenID)
	if err != nil {
		return 0, err
	}
	if token.Owner != caller {
		return 0, ErrNotOwner
	}
	bundle, err := r.getCapabilities(tokenID)
	if err != nil {
		return 0, err
	}
	if !bundle.CanBurn {
		return 0, ErrPermissionDenied
	}

	amount, err := r.ledger.Balance(token.BalanceStore)
	if err != nil {
		return 0, err
	}
	if amount > 0 {
		unit, err := r.ledger.withdraw(token.BalanceStore, amount, true)
		if err != nil {
			return 0, err
		}
		if err := r.ledger.deposit(unit, caller, false); err != nil {
			return 0, err
		}
		if err := unit.destroy(); err != nil {
			return 0, err
		}
	}

	return amount, r.destroyToken(tokenID, token)
}

// InfuseToken tops up a token's balance store from the caller's own funds.
// Not admin gated, same as the ledger-level infuse.
func (r *tokenRegistry) InfuseToken(caller ids.ShortID, tokenID ids.ID, amount uint64) error {
	token, err := r.getToken(tokenID)
	if err != nil {
		return err
	}
	bundle, err := r.getCapabilities(tokenID)
	if err != nil {
		return err
	}
	if !bundle.CanExtend {
		return ErrPermissionDenied
	}

	return r.ledger.Infuse(caller, token.BalanceStore, amount)
}

// GetToken returns the live record of [tokenID].
func (r *tokenRegistry) GetToken(tokenID ids.ID) (*TokenRecord, error) {
	return r.getToken(tokenID)
}

// LookupToken derives the id of the [seq]th token of [collection] and
// returns its record. Lookup is a pure derivation; there is no index.
func (r *tokenRegistry) LookupToken(collection string, seq uint64) (ids.ID, *TokenRecord, error) {
	name := TokenName(collection, seq)
	tokenID := TokenID(r.creator.Address(), collection, name)
	token, err := r.getToken(tokenID)
	return tokenID, token, err
}

// destroyToken removes the record and releases the capability bundle. The
// balance store must already be drained; a non-zero residue aborts. This
// re-check should be unreachable if the ledger logic is correct.
func (r *tokenRegistry) destroyToken(tokenID ids.ID, token *TokenRecord) error {
	residue, err := r.ledger.Balance(token.BalanceStore)
	if err != nil {
		return err
	}
	if residue != 0 {
		return ErrInvariantViolation
	}

	if err := r.state.DeleteToken(tokenID); err != nil {
		return err
	}
	return r.state.DeleteCapabilities(tokenID)
}

func (r *tokenRegistry) getToken(tokenID ids.ID) (*TokenRecord, error) {
	token, err := r.state.GetToken(tokenID)
	if err == database.ErrNotFound {
		return nil, ErrTokenNotFound
	}
	return token, err
}

// getCapabilities returns the bundle of a live token. A record without a
// bundle means the drain-then-burn order was broken somewhere.
func (r *tokenRegistry) getCapabilities(tokenID ids.ID) (*CapabilityBundle, error) {
	bundle, err := r.state.GetCapabilities(tokenID)
	if err == database.ErrNotFound {
		return nil, ErrInvariantViolation
	}
	return bundle, err
}
