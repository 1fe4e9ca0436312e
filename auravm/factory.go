// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auravm

import (
	"github.com/ava-labs/avalanchego/ids"
)

// ID is a unique identifier for this VM
var ID = ids.ID{'a', 'u', 'r', 'a', 'v', 'm'}

// Factory ...
type Factory struct{}

// New ...
func (f *Factory) New() (*VM, error) { return &VM{}, nil }
