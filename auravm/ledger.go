// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auravm

import (
	"github.com/ava-labs/avalanchego/ids"
	safemath "github.com/ava-labs/avalanchego/utils/math"
)

// auraLedger is the fungible balance ledger of the deployment's single
// asset. It enforces the asset's capability flags and the per-account frozen
// flag; atomicity is supplied by the caller, which runs every operation
// against a pending database version.
type auraLedger struct {
	state  State
	access *AccessControl
	asset  AssetDefinition
}

func newAuraLedger(state State, access *AccessControl, asset AssetDefinition) *auraLedger {
	return &auraLedger{
		state:  state,
		access: access,
		asset:  asset,
	}
}

func (l *auraLedger) actsAsCreator() {}

// Mint increases [to]'s balance and the total supply by [amount]. Admin
// gated. Minting is an elevated operation, so a frozen recipient does not
// block it.
func (l *auraLedger) Mint(caller, to ids.ShortID, amount uint64) error {
	if err := l.access.AssertAdmin(caller); err != nil {
		return err
	}
	if !l.asset.Mintable {
		return ErrNotMintable
	}
	if amount == 0 {
		return ErrZeroAmount
	}

	supply, err := l.state.GetTotalSupply()
	if err != nil {
		return err
	}
	newSupply, err := safemath.Add64(supply, amount)
	if err != nil {
		return ErrMaxSupplyExceeded
	}
	if l.asset.MaxSupply != 0 && newSupply > l.asset.MaxSupply {
		return ErrMaxSupplyExceeded
	}
	if err := l.state.SetTotalSupply(newSupply); err != nil {
		return err
	}

	unit := &fungibleUnit{amount: amount}
	if err := l.deposit(unit, to, true); err != nil {
		return err
	}
	return unit.destroy()
}

// Burn decreases [from]'s balance and the total supply by [amount]. Admin
// gated; elevated, so the frozen flag is ignored.
func (l *auraLedger) Burn(caller, from ids.ShortID, amount uint64) error {
	if err := l.access.AssertAdmin(caller); err != nil {
		return err
	}
	if !l.asset.Burnable {
		return ErrNotBurnable
	}
	if amount == 0 {
		return ErrZeroAmount
	}

	unit, err := l.withdraw(from, amount, true)
	if err != nil {
		return err
	}

	supply, err := l.state.GetTotalSupply()
	if err != nil {
		return err
	}
	newSupply, err := safemath.Sub64(supply, unit.value())
	if err != nil {
		return ErrInvariantViolation
	}
	if err := l.state.SetTotalSupply(newSupply); err != nil {
		return err
	}

	unit.amount = 0
	return unit.destroy()
}

// Transfer moves [amount] of the caller's own funds to [to]. Not admin
// gated; rejected if either account is frozen.
func (l *auraLedger) Transfer(caller, to ids.ShortID, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}

	unit, err := l.withdraw(caller, amount, false)
	if err != nil {
		return err
	}
	if err := l.deposit(unit, to, false); err != nil {
		return err
	}
	return unit.destroy()
}

// ForceTransfer moves funds between two arbitrary accounts, ignoring frozen
// flags on both sides. Admin gated; requires the asset's force-transferable
// capability.
func (l *auraLedger) ForceTransfer(caller, from, to ids.ShortID, amount uint64) error {
	if err := l.access.AssertAdmin(caller); err != nil {
		return err
	}
	if !l.asset.ForceTransferable {
		return ErrNotForceTransferable
	}
	if amount == 0 {
		return ErrZeroAmount
	}

	unit, err := l.withdraw(from, amount, true)
	if err != nil {
		return err
	}
	if err := l.deposit(unit, to, true); err != nil {
		return err
	}
	return unit.destroy()
}

// Freeze sets [account]'s frozen flag. Admin gated, idempotent, and has no
// effect on the balance.
func (l *auraLedger) Freeze(caller, account ids.ShortID) error {
	return l.setFrozen(caller, account, true)
}

// Unfreeze clears [account]'s frozen flag. Admin gated, idempotent.
func (l *auraLedger) Unfreeze(caller, account ids.ShortID) error {
	return l.setFrozen(caller, account, false)
}

func (l *auraLedger) setFrozen(caller, account ids.ShortID, frozen bool) error {
	if err := l.access.AssertAdmin(caller); err != nil {
		return err
	}

	balance, _, err := l.state.GetAccount(account)
	if err != nil {
		return err
	}
	return l.state.PutAccount(account, balance, frozen)
}

// Infuse moves [amount] of the caller's own funds into [target]. This is the
// one mutating path that is deliberately not admin gated: it is a voluntary
// deposit by the funds' owner, checked against the caller's balance only.
func (l *auraLedger) Infuse(caller, target ids.ShortID, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}

	unit, err := l.withdraw(caller, amount, false)
	if err != nil {
		return err
	}
	if err := l.deposit(unit, target, true); err != nil {
		return err
	}
	return unit.destroy()
}

// Balance returns [account]'s balance.
func (l *auraLedger) Balance(account ids.ShortID) (uint64, error) {
	balance, _, err := l.state.GetAccount(account)
	return balance, err
}

// Frozen returns [account]'s frozen flag.
func (l *auraLedger) Frozen(account ids.ShortID) (bool, error) {
	_, frozen, err := l.state.GetAccount(account)
	return frozen, err
}

// TotalSupply returns the asset's current supply: everything ever minted
// minus everything ever burned.
func (l *auraLedger) TotalSupply() (uint64, error) {
	return l.state.GetTotalSupply()
}

// withdraw extracts [amount] from [from] as a transferable unit. The unit
// must be deposited (or explicitly zeroed by a supply decrease) before it is
// destroyed.
func (l *auraLedger) withdraw(from ids.ShortID, amount uint64, ignoreFrozen bool) (*fungibleUnit, error) {
	balance, frozen, err := l.state.GetAccount(from)
	if err != nil {
		return nil, err
	}
	if frozen && !ignoreFrozen {
		return nil, ErrAccountFrozen
	}
	if balance < amount {
		return nil, ErrInsufficientBalance
	}

	if err := l.state.PutAccount(from, balance-amount, frozen); err != nil {
		return nil, err
	}
	return &fungibleUnit{amount: amount}, nil
}

// deposit injects a unit into [to] and zeroes it. Depositing a zero unit is
// a no-op and never creates a ledger entry.
func (l *auraLedger) deposit(unit *fungibleUnit, to ids.ShortID, ignoreFrozen bool) error {
	if unit.value() == 0 {
		return nil
	}

	balance, frozen, err := l.state.GetAccount(to)
	if err != nil {
		return err
	}
	if frozen && !ignoreFrozen {
		return ErrAccountFrozen
	}

	newBalance, err := safemath.Add64(balance, unit.value())
	if err != nil {
		return ErrInvariantViolation
	}
	if err := l.state.PutAccount(to, newBalance, frozen); err != nil {
		return err
	}

	unit.amount = 0
	return nil
}
