// Copyright (c) 2013-2020 The btcsuite developers
// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "github.com/decred/dcrd/dcrec/secp256k1/v4"

// IsStrictPubKeyEncoding reports whether pubKey is not just the right
// length for a compressed or uncompressed public key, but decodes to an
// actual point on the secp256k1 curve. This is strictly stronger than the
// shape checks standard.go's isPubKey/isMultiSig perform, and is what
// CreateMultisigRedeemScript uses to validate its inputs before committing
// them to a script.
func IsStrictPubKeyEncoding(pubKey []byte) bool {
	_, err := secp256k1.ParsePubKey(pubKey)
	return err == nil
}
