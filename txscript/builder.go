// Copyright (c) 2013-2020 The btcsuite developers
// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"strconv"

	"github.com/evrmorecore/evrtxscript/chainhash"
)

// ScriptBuilder assembles a Script incrementally, applying the same
// coercion rules NewScript applies to an argument list. It
// sticks to the first error it encounters, so a long chain of AddOp/AddData
// calls can be written without checking an error after each one; callers
// check once at Script().
type ScriptBuilder struct {
	buf []byte
	err error
}

// NewScriptBuilder returns an empty ScriptBuilder.
func NewScriptBuilder() *ScriptBuilder {
	return &ScriptBuilder{}
}

// AddOp appends a single opcode byte.
func (b *ScriptBuilder) AddOp(op byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	b.buf = append(b.buf, op)
	return b
}

// AddInt64 appends n using builder coercion: OP_1NEGATE for -1, the
// corresponding OP_0/OP_1..OP_16 for 0 <= n <= 16, otherwise a minimal
// signed-magnitude data push.
func (b *ScriptBuilder) AddInt64(n int64) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	enc, err := coerceInt(n)
	if err != nil {
		b.err = err
		return b
	}
	b.buf = append(b.buf, enc...)
	return b
}

// AddData appends data as a single canonical push.
func (b *ScriptBuilder) AddData(data []byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	enc, err := EncodeOpPushdata(data)
	if err != nil {
		b.err = err
		return b
	}
	b.buf = append(b.buf, enc...)
	return b
}

// Script returns the assembled Script, or the first error any Add* call
// produced.
func (b *ScriptBuilder) Script() (Script, error) {
	if b.err != nil {
		return nil, b.err
	}
	return Script(append([]byte(nil), b.buf...)), nil
}

// CreateMultisigRedeemScript builds the <m> <pubkey>... <n> OP_CHECKMULTISIG
// redeem script for an m-of-n bare multisig. It requires 0 <= m <= n <= 16
// and that every supplied public key decodes to a real curve point, not
// merely a correctly-sized byte string.
func CreateMultisigRedeemScript(m int, pubKeys [][]byte) (Script, error) {
	n := len(pubKeys)
	if m < 0 || n < 0 || m > n || n > 16 {
		return nil, &BuilderError{Msg: "multisig requires 0 <= m <= n <= 16"}
	}
	for i, pk := range pubKeys {
		if !IsStrictPubKeyEncoding(pk) {
			return nil, &BuilderError{Msg: "multisig pubkey " + strconv.Itoa(i) + " is not a valid secp256k1 public key"}
		}
	}

	b := NewScriptBuilder()
	b.AddInt64(int64(m))
	for _, pk := range pubKeys {
		b.AddData(pk)
	}
	b.AddInt64(int64(n))
	b.AddOp(OP_CHECKMULTISIG)
	return b.Script()
}

// ToP2SHScriptPubKey wraps redeemScript's hash in the standard
// OP_HASH160 <20-byte-hash> OP_EQUAL output template, refusing a redeem
// script longer than MaxScriptElementSize (the resulting P2SH output could
// never be satisfied: no scriptSig push could carry the preimage). This is
// the checksize=true default; ToP2SHScriptPubKeyUnchecked is the
// checksize=false escape hatch.
func ToP2SHScriptPubKey(redeemScript []byte) (Script, error) {
	return toP2SHScriptPubKey(redeemScript, true)
}

// ToP2SHScriptPubKeyUnchecked builds the P2SH output template without the
// MaxScriptElementSize guard.
func ToP2SHScriptPubKeyUnchecked(redeemScript []byte) (Script, error) {
	return toP2SHScriptPubKey(redeemScript, false)
}

func toP2SHScriptPubKey(redeemScript []byte, checkSize bool) (Script, error) {
	if checkSize && len(redeemScript) > MaxScriptElementSize {
		return nil, &BuilderError{
			Msg: "redeemScript exceeds max allowed size; P2SH output would be unspendable",
		}
	}
	b := NewScriptBuilder()
	b.AddOp(OP_HASH160)
	b.AddData(chainhash.Hash160(redeemScript))
	b.AddOp(OP_EQUAL)
	return b.Script()
}
