// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auravm

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/rpc/v2"

	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/version"

	cjson "github.com/ava-labs/avalanchego/utils/json"
)

const (
	Name = "auravm"
)

var (
	Version = version.NewDefaultVersion(1, 0, 0)

	errGenesisMismatch = errors.New("genesis does not match the initialized state")
)

// VM ties the contract components to their state. Every exported mutating
// method is one atomic transaction: the component logic runs against a
// pending database version which is committed on success and aborted,
// leaving zero observable effect, on any error. A single lock serializes
// entry points, so no operation ever observes a half-updated balance or
// counter.
type VM struct {
	mu sync.RWMutex

	db    database.Database
	state State

	genesis  *Genesis
	access   *AccessControl
	creator  *Creator
	ledger   *auraLedger
	registry *tokenRegistry
}

// Initialize builds the VM on top of [db]. On an empty database the
// codec-encoded [genesisBytes] create the deployment: the asset definition,
// the admin gate and the creator capability. On an initialized database the
// stored genesis is reloaded, and [genesisBytes], if given, must agree with
// it.
func (vm *VM) Initialize(db database.Database, genesisBytes []byte) error {
	vm.db = db
	vm.state = NewState(db)

	initialized, err := vm.state.IsInitialized()
	if err != nil {
		return err
	}

	if initialized {
		vm.genesis, err = vm.state.GetGenesis()
		if err != nil {
			return fmt.Errorf("couldn't reload genesis: %w", err)
		}
		if len(genesisBytes) > 0 {
			provided, err := ParseGenesis(genesisBytes)
			if err != nil {
				return err
			}
			if provided.Admin != vm.genesis.Admin {
				return errGenesisMismatch
			}
		}
	} else {
		vm.genesis, err = ParseGenesis(genesisBytes)
		if err != nil {
			return fmt.Errorf("couldn't parse genesis: %w", err)
		}
		if err := vm.state.SetGenesis(vm.genesis); err != nil {
			return err
		}
		if err := vm.state.SetInitialized(); err != nil {
			return err
		}
	}

	vm.access = NewAccessControl(vm.genesis.Admin)
	vm.creator = newCreator(vm.genesis.Admin)
	vm.ledger = newAuraLedger(vm.state, vm.access, vm.genesis.Asset)
	vm.registry = newTokenRegistry(vm.state, vm.access, vm.creator, vm.ledger, vm.genesis)

	if !initialized {
		// First run: journal the deployment under the creator's identity.
		entry := &JournalEntry{
			Timestamp: time.Now().Unix(),
			Method:    "initialize",
			Caller:    vm.creator.ActAs(initializer{}),
			Account:   vm.genesis.Admin,
		}
		if err := vm.state.Append(entry); err != nil {
			vm.state.Abort()
			return err
		}
		if err := vm.state.Commit(); err != nil {
			vm.state.Abort()
			return err
		}
		log.Info("initialized Aura VM",
			"asset", vm.genesis.Asset.Name,
			"admin", vm.genesis.Admin,
			"creator", vm.creator.Address(),
		)
	} else {
		log.Info("reloaded Aura VM", "asset", vm.genesis.Asset.Name)
	}
	return nil
}

// Shutdown flushes nothing (there is never uncommitted state between
// operations) and closes the database.
func (vm *VM) Shutdown() error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.state == nil {
		return nil
	}
	return vm.state.Close()
}

// execute runs one operation atomically and journals it on success.
func (vm *VM) execute(entry *JournalEntry, op func() error) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if err := op(); err != nil {
		vm.state.Abort()
		log.Debug("operation aborted", "method", entry.Method, "error", err)
		return err
	}

	entry.Timestamp = time.Now().Unix()
	if err := vm.state.Append(entry); err != nil {
		vm.state.Abort()
		return err
	}
	if err := vm.state.Commit(); err != nil {
		vm.state.Abort()
		return err
	}
	return nil
}

// Mint increases [to]'s balance and the total supply. Admin gated.
func (vm *VM) Mint(caller, to ids.ShortID, amount uint64) error {
	return vm.execute(
		&JournalEntry{Method: "mint", Caller: caller, Account: to, Amount: amount},
		func() error { return vm.ledger.Mint(caller, to, amount) },
	)
}

// Burn decreases [from]'s balance and the total supply. Admin gated.
func (vm *VM) Burn(caller, from ids.ShortID, amount uint64) error {
	return vm.execute(
		&JournalEntry{Method: "burn", Caller: caller, Account: from, Amount: amount},
		func() error { return vm.ledger.Burn(caller, from, amount) },
	)
}

// Transfer moves the caller's own funds; blocked by frozen flags.
func (vm *VM) Transfer(caller, to ids.ShortID, amount uint64) error {
	return vm.execute(
		&JournalEntry{Method: "transfer", Caller: caller, Account: to, Amount: amount},
		func() error { return vm.ledger.Transfer(caller, to, amount) },
	)
}

// ForceTransfer is the elevated transfer path: admin gated, ignores frozen
// flags on both accounts.
func (vm *VM) ForceTransfer(caller, from, to ids.ShortID, amount uint64) error {
	return vm.execute(
		&JournalEntry{Method: "forceTransfer", Caller: caller, Account: to, Amount: amount},
		func() error { return vm.ledger.ForceTransfer(caller, from, to, amount) },
	)
}

// Freeze sets [account]'s frozen flag. Admin gated, idempotent.
func (vm *VM) Freeze(caller, account ids.ShortID) error {
	return vm.execute(
		&JournalEntry{Method: "freeze", Caller: caller, Account: account},
		func() error { return vm.ledger.Freeze(caller, account) },
	)
}

// Unfreeze clears [account]'s frozen flag. Admin gated, idempotent.
func (vm *VM) Unfreeze(caller, account ids.ShortID) error {
	return vm.execute(
		&JournalEntry{Method: "unfreeze", Caller: caller, Account: account},
		func() error { return vm.ledger.Unfreeze(caller, account) },
	)
}

// Infuse moves the caller's own funds into [target]. Not admin gated.
func (vm *VM) Infuse(caller, target ids.ShortID, amount uint64) error {
	return vm.execute(
		&JournalEntry{Method: "infuse", Caller: caller, Account: target, Amount: amount},
		func() error { return vm.ledger.Infuse(caller, target, amount) },
	)
}

// MintFuseBlock mints a FuseBlock to the caller, funded from the caller's
// balance. Returns the new token's id.
func (vm *VM) MintFuseBlock(caller ids.ShortID, amount uint64) (ids.ID, error) {
	var tokenID ids.ID
	entry := &JournalEntry{Method: "mintFuseBlock", Caller: caller, Account: caller, Amount: amount}
	err := vm.execute(entry, func() error {
		var err error
		tokenID, err = vm.registry.MintFuseBlock(caller, amount)
		entry.Token = tokenID
		return err
	})
	return tokenID, err
}

// MintItem mints an Item directly, with no FuseBlock origin.
func (vm *VM) MintItem(caller ids.ShortID, amount uint64) (ids.ID, error) {
	var tokenID ids.ID
	entry := &JournalEntry{Method: "mintItem", Caller: caller, Account: caller, Amount: amount}
	err := vm.execute(entry, func() error {
		var err error
		tokenID, err = vm.registry.MintItem(caller, amount)
		entry.Token = tokenID
		return err
	})
	return tokenID, err
}

// MintItemFromFuseBlock consumes a FuseBlock owned by the caller into a new
// Item carrying the fuse's balance and an origin reference to it.
func (vm *VM) MintItemFromFuseBlock(caller ids.ShortID, fuseID ids.ID) (ids.ID, error) {
	var tokenID ids.ID
	entry := &JournalEntry{Method: "mintItemFromFuseBlock", Caller: caller, Account: caller, Token: fuseID}
	err := vm.execute(entry, func() error {
		var err error
		tokenID, err = vm.registry.MintItemFromFuseBlock(caller, fuseID)
		return err
	})
	return tokenID, err
}

// Qualify flips a token's qualification gate. Admin gated, idempotent.
func (vm *VM) Qualify(caller ids.ShortID, tokenID ids.ID) error {
	return vm.execute(
		&JournalEntry{Method: "qualify", Caller: caller, Token: tokenID},
		func() error { return vm.registry.Qualify(caller, tokenID) },
	)
}

// ElevatedTransfer reassigns a qualified token to [newOwner]. Admin gated.
func (vm *VM) ElevatedTransfer(caller ids.ShortID, tokenID ids.ID, newOwner ids.ShortID) error {
	return vm.execute(
		&JournalEntry{Method: "elevatedTransfer", Caller: caller, Account: newOwner, Token: tokenID},
		func() error { return vm.registry.ElevatedTransfer(caller, tokenID, newOwner) },
	)
}

// BurnAndExtract drains the token's balance to the calling owner and
// destroys the token. Returns the extracted amount.
func (vm *VM) BurnAndExtract(caller ids.ShortID, tokenID ids.ID) (uint64, error) {
	var amount uint64
	entry := &JournalEntry{Method: "burnAndExtract", Caller: caller, Account: caller, Token: tokenID}
	err := vm.execute(entry, func() error {
		var err error
		amount, err = vm.registry.BurnAndExtract(caller, tokenID)
		entry.Amount = amount
		return err
	})
	return amount, err
}

// InfuseToken tops up a token's balance store from the caller's funds.
func (vm *VM) InfuseToken(caller ids.ShortID, tokenID ids.ID, amount uint64) error {
	return vm.execute(
		&JournalEntry{Method: "infuseToken", Caller: caller, Token: tokenID, Amount: amount},
		func() error { return vm.registry.InfuseToken(caller, tokenID, amount) },
	)
}

// Balance returns [account]'s current balance.
func (vm *VM) Balance(account ids.ShortID) (uint64, error) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.ledger.Balance(account)
}

// Frozen returns [account]'s frozen flag.
func (vm *VM) Frozen(account ids.ShortID) (bool, error) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.ledger.Frozen(account)
}

// TotalSupply returns minted minus burned.
func (vm *VM) TotalSupply() (uint64, error) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.ledger.TotalSupply()
}

// GetToken returns the live record of [tokenID].
func (vm *VM) GetToken(tokenID ids.ID) (*TokenRecord, error) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.registry.GetToken(tokenID)
}

// LookupToken derives the id of the [seq]th token of [collection] and
// returns it with the record.
func (vm *VM) LookupToken(collection string, seq uint64) (ids.ID, *TokenRecord, error) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.registry.LookupToken(collection, seq)
}

// GetJournalEntry returns the [seq]th applied operation.
func (vm *VM) GetJournalEntry(seq uint64) (*JournalEntry, error) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.state.GetEntry(seq)
}

// LastJournalSeq returns the sequence number of the latest applied
// operation.
func (vm *VM) LastJournalSeq() (uint64, error) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.state.LastSeq()
}

// Genesis returns the deployment parameters.
func (vm *VM) Genesis() *Genesis {
	return vm.genesis
}

// CreateHandlers returns the HTTP handler serving this VM's API.
func (vm *VM) CreateHandlers() (http.Handler, error) {
	server := rpc.NewServer()
	codec := cjson.NewCodec()
	server.RegisterCodec(codec, "application/json")
	server.RegisterCodec(codec, "application/json;charset=UTF-8")
	return server, server.RegisterService(&Service{vm: vm}, Name)
}

// CreateStaticHandlers returns the HTTP handler for the pre-launch API,
// which can encode and decode genesis documents without a running VM.
func CreateStaticHandlers() (http.Handler, error) {
	server := rpc.NewServer()
	codec := cjson.NewCodec()
	server.RegisterCodec(codec, "application/json")
	server.RegisterCodec(codec, "application/json;charset=UTF-8")
	return server, server.RegisterService(CreateStaticService(), Name)
}
