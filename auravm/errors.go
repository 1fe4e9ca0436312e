// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auravm

import "errors"

// Every operation either fully applies or aborts with one of these.
// There is no partial effect: the VM aborts the pending version of the
// database whenever an entry point returns a non-nil error.
var (
	ErrPermissionDenied     = errors.New("caller is not the admin")
	ErrNotQualified         = errors.New("token has not been qualified")
	ErrNotOwner             = errors.New("caller does not own the token")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrBelowMinimumInfusion = errors.New("infused amount is below the minimum")
	ErrMaxSupplyExceeded    = errors.New("mint would exceed the maximum supply")
	ErrAccountFrozen        = errors.New("account is frozen")
	ErrTokenNotFound        = errors.New("token not found")
	ErrInvariantViolation   = errors.New("balance store not drained before destruction")
	ErrNotMintable          = errors.New("asset does not allow minting")
	ErrNotBurnable          = errors.New("asset does not allow burning")
	ErrNotForceTransferable = errors.New("asset does not allow transfers that ignore freezing")
	ErrWrongCollection      = errors.New("token belongs to a different collection")
	ErrZeroAmount           = errors.New("amount must be positive")
)
