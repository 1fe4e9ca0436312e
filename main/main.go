// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/leveldb"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/utils/formatting"
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/auravm/auravm"
)

func main() {
	v, err := getViper()
	if err != nil {
		fmt.Printf("couldn't get config: %s\n", err)
		os.Exit(1)
	}

	// Print version and exit
	if v.GetBool(versionKey) {
		fmt.Printf("%s@%s\n", auravm.Name, auravm.Version)
		os.Exit(0)
	}

	lvl, err := log.LvlFromString(v.GetString(logLevelKey))
	if err != nil {
		fmt.Printf("invalid log level: %s\n", err)
		os.Exit(1)
	}
	log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(os.Stderr, log.TerminalFormat())))

	db, err := openDatabase(v.GetString(dbDirKey))
	if err != nil {
		log.Error("couldn't open database", "error", err)
		os.Exit(1)
	}

	genesisBytes, err := readGenesis(v.GetString(genesisFileKey))
	if err != nil {
		log.Error("couldn't read genesis", "error", err)
		os.Exit(1)
	}

	vm := &auravm.VM{}
	if err := vm.Initialize(db, genesisBytes); err != nil {
		log.Error("couldn't initialize VM", "error", err)
		os.Exit(1)
	}

	handler, err := vm.CreateHandlers()
	if err != nil {
		log.Error("couldn't create handlers", "error", err)
		os.Exit(1)
	}
	staticHandler, err := auravm.CreateStaticHandlers()
	if err != nil {
		log.Error("couldn't create static handlers", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.Handle("/rpc", handler)
	mux.Handle("/rpc/static", staticHandler)

	srv := &http.Server{
		Addr:    v.GetString(httpAddrKey),
		Handler: mux,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info("serving Aura VM API", "addr", srv.Addr)
		errs <- srv.ListenAndServe()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		log.Info("shutting down", "signal", sig)
	case err := <-errs:
		log.Error("server stopped", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("error shutting down server", "error", err)
	}
	if err := vm.Shutdown(); err != nil {
		log.Error("error shutting down VM", "error", err)
	}
}

// openDatabase opens the leveldb at [dir], or an in-memory database when
// [dir] is empty.
func openDatabase(dir string) (database.Database, error) {
	if dir == "" {
		log.Warn("no db-dir given; state will not survive a restart")
		return memdb.New(), nil
	}
	return leveldb.New(dir, nil, logging.NoLog{})
}

// readGenesis reads and decodes a hex-encoded genesis file. An empty path is
// allowed once the database has been initialized.
func readGenesis(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return formatting.Decode(formatting.Hex, strings.TrimSpace(string(content)))
}
