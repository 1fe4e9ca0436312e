// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auravm

import (
	"github.com/ava-labs/avalanchego/ids"
)

// AccessControl is the single admin gate. Every admin-gated entry point
// calls AssertAdmin before touching state; a failure aborts the whole
// operation.
type AccessControl struct {
	admin ids.ShortID
}

func NewAccessControl(admin ids.ShortID) *AccessControl {
	return &AccessControl{admin: admin}
}

// AssertAdmin returns nil iff [caller] is the deployment admin.
func (a *AccessControl) AssertAdmin(caller ids.ShortID) error {
	if caller != a.admin {
		return ErrPermissionDenied
	}
	return nil
}

// Admin returns the deployment admin address.
func (a *AccessControl) Admin() ids.ShortID {
	return a.admin
}
