// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"flag"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	versionKey     = "version"
	dbDirKey       = "db-dir"
	httpAddrKey    = "http-addr"
	genesisFileKey = "genesis-file"
	logLevelKey    = "log-level"
)

func buildFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("auravm", flag.ContinueOnError)

	fs.Bool(versionKey, false, "If true, prints version and quits")
	fs.String(dbDirKey, "", "Directory of the database. An empty value selects an in-memory database")
	fs.String(httpAddrKey, ":9650", "Address the API server listens on")
	fs.String(genesisFileKey, "", "Path to the hex-encoded genesis file. Required on first run")
	fs.String(logLevelKey, "info", "Log level: debug, info, warn, error")

	return fs
}

// getViper returns the viper environment for the daemon
func getViper() (*viper.Viper, error) {
	v := viper.New()

	fs := buildFlagSet()
	pflag.CommandLine.AddGoFlagSet(fs)
	pflag.Parse()
	if err := v.BindPFlags(pflag.CommandLine); err != nil {
		return nil, err
	}

	return v, nil
}
