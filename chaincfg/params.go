// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg identifies the network a script or transaction was
// observed on. Address encoding and key derivation are out of scope for
// this module, so only the identifying magic, name, and default port are
// carried here, for the inspection CLI to label its output with.
package chaincfg

import "fmt"

// NetMagic identifies which network a message belongs to.
type NetMagic uint32

// Constants identifying the Evrmore networks the inspection CLI can be
// pointed at.
const (
	MainNet  NetMagic = 0x4556521a
	TestNet3 NetMagic = 0x45565424
)

var netStrings = map[NetMagic]string{
	MainNet:  "mainnet",
	TestNet3: "testnet3",
}

// String returns the network magic in human-readable form.
func (n NetMagic) String() string {
	if s, ok := netStrings[n]; ok {
		return s
	}
	return fmt.Sprintf("unknown network (0x%08x)", uint32(n))
}

// Params identifies a network by name, magic, and default peer port. It
// intentionally carries no address-encoding or HD-key fields: this module
// never encodes or derives addresses or keys.
type Params struct {
	Name        string
	Net         NetMagic
	DefaultPort string
}

// MainNetParams identifies the Evrmore main network.
var MainNetParams = Params{
	Name:        "main",
	Net:         MainNet,
	DefaultPort: "8819",
}

// TestNet3Params identifies the Evrmore test network.
var TestNet3Params = Params{
	Name:        "test",
	Net:         TestNet3,
	DefaultPort: "18819",
}

// ByName returns the Params for a network name ("main" or "test"), and
// whether the name was recognized.
func ByName(name string) (Params, bool) {
	switch name {
	case "main":
		return MainNetParams, true
	case "test":
		return TestNet3Params, true
	default:
		return Params{}, false
	}
}
