// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2015-2019 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainhash provides the hash primitives consensus code treats as
// external black boxes: double SHA-256 for transaction/block hashing and
// RIPEMD-160(SHA-256(.)) for the HASH160 used by standard output templates.
package chainhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/ripemd160"
)

// HashSize is the number of bytes in a hash produced by double SHA-256.
const HashSize = 32

// Hash20Size is the number of bytes in a HASH160 output.
const Hash20Size = 20

// Hash is a 32-byte double SHA-256 hash, stored in internal (little-endian)
// byte order and displayed byte-reversed, the convention the chain uses for
// txids and block hashes.
type Hash [HashSize]byte

// String returns the hash in the chain's conventional display order
// (reversed relative to the internal, little-endian byte order).
func (h Hash) String() string {
	buf := make([]byte, HashSize)
	for i := 0; i < HashSize; i++ {
		buf[i] = h[HashSize-1-i]
	}
	return hex.EncodeToString(buf)
}

// CloneBytes returns a newly allocated copy of the hash's bytes.
func (h Hash) CloneBytes() []byte {
	b := make([]byte, HashSize)
	copy(b, h[:])
	return b
}

// SetBytes sets the hash to the passed bytes, which must be HashSize long.
func (h *Hash) SetBytes(newHash []byte) error {
	if len(newHash) != HashSize {
		return fmt.Errorf("invalid hash length: got %d, want %d",
			len(newHash), HashSize)
	}
	copy(h[:], newHash)
	return nil
}

// IsEqual returns whether h and target represent the same hash.
func (h *Hash) IsEqual(target *Hash) bool {
	if h == nil || target == nil {
		return h == target
	}
	return *h == *target
}

// HashB computes SHA-256(b).
func HashB(b []byte) []byte {
	sum := sha256.Sum256(b)
	return sum[:]
}

// HashH computes SHA-256(b) and returns it as a Hash.
func HashH(b []byte) Hash {
	return Hash(sha256.Sum256(b))
}

// DoubleHashB computes SHA-256(SHA-256(b)), the digest function the chain
// uses for txids, block hashes, and the legacy and BIP-143 signature
// preimages alike.
func DoubleHashB(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}

// DoubleHashH computes SHA-256(SHA-256(b)) and returns it as a Hash.
func DoubleHashH(b []byte) Hash {
	first := sha256.Sum256(b)
	return Hash(sha256.Sum256(first[:]))
}

// Hash160 computes RIPEMD-160(SHA-256(b)), the 20-byte digest used by
// pay-to-pubkey-hash and pay-to-script-hash templates.
func Hash160(b []byte) []byte {
	sum := sha256.Sum256(b)
	ripemd := ripemd160.New()
	ripemd.Write(sum[:])
	return ripemd.Sum(nil)
}
