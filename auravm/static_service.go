// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auravm

import (
	"fmt"
	"net/http"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/formatting"

	cjson "github.com/ava-labs/avalanchego/utils/json"
)

// StaticService defines the pre-launch service for the Aura VM: it encodes
// and decodes genesis documents without a running VM.
type StaticService struct{}

// CreateStaticService ...
func CreateStaticService() *StaticService {
	return &StaticService{}
}

// BuildGenesisArgs are arguments for BuildGenesis
type BuildGenesisArgs struct {
	Admin            ids.ShortID     `json:"admin"`
	Asset            AssetDefinition `json:"asset"`
	MinimumInfusion  cjson.Uint64    `json:"minimumInfusion"`
	FuseBlockBaseURI string          `json:"fuseBlockBaseUri"`
	ItemBaseURI      string          `json:"itemBaseUri"`

	Encoding formatting.Encoding `json:"encoding"`
}

// BuildGenesisReply is the reply from BuildGenesis
type BuildGenesisReply struct {
	Bytes    string              `json:"bytes"`
	Encoding formatting.Encoding `json:"encoding"`
}

// BuildGenesis returns the encoded genesis bytes for the given deployment
// parameters.
func (ss *StaticService) BuildGenesis(_ *http.Request, args *BuildGenesisArgs, reply *BuildGenesisReply) error {
	genesis := &Genesis{
		Admin:            args.Admin,
		Asset:            args.Asset,
		MinimumInfusion:  uint64(args.MinimumInfusion),
		FuseBlockBaseURI: args.FuseBlockBaseURI,
		ItemBaseURI:      args.ItemBaseURI,
	}
	if err := genesis.Verify(); err != nil {
		return err
	}

	b, err := genesis.Bytes()
	if err != nil {
		return err
	}
	bytesStr, err := formatting.EncodeWithChecksum(args.Encoding, b)
	if err != nil {
		return fmt.Errorf("couldn't encode genesis as string: %s", err)
	}
	reply.Bytes = bytesStr
	reply.Encoding = args.Encoding
	return nil
}

// DecodeGenesisArgs are arguments for DecodeGenesis
type DecodeGenesisArgs struct {
	Bytes    string              `json:"bytes"`
	Encoding formatting.Encoding `json:"encoding"`
}

// DecodeGenesisReply is the reply from DecodeGenesis
type DecodeGenesisReply struct {
	Genesis  Genesis             `json:"genesis"`
	Creator  ids.ShortID         `json:"creator"`
	Encoding formatting.Encoding `json:"encoding"`
}

// DecodeGenesis returns the deployment parameters encoded in [args.Bytes].
func (ss *StaticService) DecodeGenesis(_ *http.Request, args *DecodeGenesisArgs, reply *DecodeGenesisReply) error {
	b, err := formatting.Decode(args.Encoding, args.Bytes)
	if err != nil {
		return fmt.Errorf("couldn't decode genesis bytes: %s", err)
	}

	genesis, err := ParseGenesis(b)
	if err != nil {
		return err
	}
	reply.Genesis = *genesis
	reply.Creator = CreatorAddress(genesis.Admin)
	reply.Encoding = args.Encoding
	return nil
}
