// Copyright (c) 2013-2020 The btcsuite developers
// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

// MaxScriptSize is the largest a script is permitted to be under consensus
// rules. Enforcement belongs to the external interpreter; this core only
// names the limit.
const MaxScriptSize = 10000

// MaxScriptElementSize is the largest a single pushed data element is
// permitted to be under consensus rules. The builder's P2SH guard checks a
// redeem script against it, since a redeem script longer than this could
// never be pushed as a scriptSig element to satisfy the output it backs.
const MaxScriptElementSize = 520

// MaxScriptOpcodes is the maximum count of non-push opcodes (those above
// OP_16) a script may execute. Enforcement belongs to the external
// interpreter; this core only names the limit.
const MaxScriptOpcodes = 201

// witnessV0PubKeyHashLen and witnessV0ScriptHashLen are the program lengths
// that distinguish a v0 witness key-hash program from a v0 witness
// script-hash program.
const (
	witnessV0PubKeyHashLen = 20
	witnessV0ScriptHashLen = 32
)

// IsPayToScriptHash reports whether script is a standard P2SH output:
// OP_HASH160 <20-byte hash> OP_EQUAL, exactly 23 bytes.
func IsPayToScriptHash(script []byte) bool {
	return len(script) == 23 &&
		script[0] == OP_HASH160 &&
		script[1] == OP_DATA_20 &&
		script[22] == OP_EQUAL
}

// IsWitnessScriptPubKey reports whether script has the shape of a witness
// program output: a single witness-version push (OP_0 or OP_1..OP_16)
// followed by a single 2-to-40-byte data push, per BIP141.
func IsWitnessScriptPubKey(script []byte) bool {
	size := len(script)
	if size < 4 || size > 42 {
		return false
	}
	if !isSmallInt(script[0]) {
		return false
	}
	pushLen := int(script[1])
	if pushLen < 2 || pushLen > 40 {
		return false
	}
	return size == 2+pushLen
}

// WitnessVersion returns the witness version of a witness program script.
// The caller must have already verified IsWitnessScriptPubKey(script).
func WitnessVersion(script []byte) int {
	if script[0] == OP_0 {
		return 0
	}
	return int(script[0] - (OP_1 - 1))
}

// WitnessProgram returns the program bytes of a witness program script. The
// caller must have already verified IsWitnessScriptPubKey(script).
func WitnessProgram(script []byte) []byte {
	return script[2:]
}

// IsWitnessV0KeyHash reports whether script is a native v0 witness
// pubkey-hash output: OP_0 <20-byte hash>.
func IsWitnessV0KeyHash(script []byte) bool {
	return IsWitnessScriptPubKey(script) &&
		WitnessVersion(script) == 0 &&
		len(WitnessProgram(script)) == witnessV0PubKeyHashLen
}

// IsWitnessV0ScriptHash reports whether script is a native v0 witness
// script-hash output: OP_0 <32-byte hash>.
func IsWitnessV0ScriptHash(script []byte) bool {
	return IsWitnessScriptPubKey(script) &&
		WitnessVersion(script) == 0 &&
		len(WitnessProgram(script)) == witnessV0ScriptHashLen
}

// IsWitnessV0NestedKeyHash reports whether script is a serialized P2SH
// scriptSig push of a v0 witness key-hash redeem script: a 23-byte sequence
// with the shape <push-22> OP_0 <push-20> <20-byte hash>.
func IsWitnessV0NestedKeyHash(script []byte) bool {
	return len(script) == 23 &&
		script[0] == OP_DATA_22 &&
		script[1] == OP_0 &&
		script[2] == OP_DATA_20
}

// IsWitnessV0NestedScriptHash reports whether script is a serialized P2SH
// scriptSig push of a v0 witness script-hash redeem script: a 35-byte
// sequence with the shape <push-34> OP_0 <push-32> <32-byte hash>.
func IsWitnessV0NestedScriptHash(script []byte) bool {
	return len(script) == 35 &&
		script[0] == OP_DATA_34 &&
		script[1] == OP_0 &&
		script[2] == OP_DATA_32
}

// IsPushOnlyScript reports whether script contains only data-push opcodes
// (OP_0 through OP_16, including OP_1NEGATE and the OP_PUSHDATA family), the
// shape required of a scriptSig under standardness rules and of any script
// nested inside a P2SH/P2WSH redeem.
func IsPushOnlyScript(script []byte) bool {
	tok := MakeScriptTokenizer(script)
	for tok.Next() {
		if tok.Opcode() > OP_16 {
			return false
		}
	}
	return tok.Err() == nil
}

// IsValid reports whether script can be fully tokenized without a
// truncated-push error.
func IsValid(script []byte) bool {
	return IsValidScript(script)
}

// IsUnspendable reports whether a script is provably unspendable: it begins
// with OP_RETURN.
func IsUnspendable(script []byte) bool {
	return len(script) > 0 && script[0] == OP_RETURN
}

// HasCanonicalPushes reports whether every data push in script uses its
// minimal encoding: a one-byte value up to 16 pushed via OP_1..OP_16 rather
// than a direct push, and each of OP_PUSHDATA1/2/4 used only when a shorter
// push opcode could not have carried the same data. The OP_PUSHDATA2
// boundary check is written as len <= 0xFF rather than the equivalent
// len < 0x100, to mirror the reference implementation's exact comparison.
func HasCanonicalPushes(script []byte) bool {
	tok := MakeScriptTokenizer(script)
	for tok.Next() {
		op := tok.Opcode()
		data := tok.Data()

		if op > OP_16 {
			continue
		}

		switch {
		case op < OP_PUSHDATA1 && op > OP_0 && len(data) == 1 && data[0] <= 16:
			return false
		case op == OP_PUSHDATA1 && len(data) < OP_PUSHDATA1:
			return false
		case op == OP_PUSHDATA2 && len(data) <= 0xFF:
			return false
		case op == OP_PUSHDATA4 && len(data) <= 0xFFFF:
			return false
		}
	}
	return tok.Err() == nil
}

// ScriptClass identifies the recognized shape of a standard scriptPubKey.
type ScriptClass int

const (
	NonStandardTy ScriptClass = iota
	PubKeyTy
	PubKeyHashTy
	ScriptHashTy
	MultiSigTy
	NullDataTy
	WitnessV0PubKeyHashTy
	WitnessV0ScriptHashTy
)

func (c ScriptClass) String() string {
	switch c {
	case PubKeyTy:
		return "pubkey"
	case PubKeyHashTy:
		return "pubkeyhash"
	case ScriptHashTy:
		return "scripthash"
	case MultiSigTy:
		return "multisig"
	case NullDataTy:
		return "nulldata"
	case WitnessV0PubKeyHashTy:
		return "witness_v0_keyhash"
	case WitnessV0ScriptHashTy:
		return "witness_v0_scripthash"
	default:
		return "nonstandard"
	}
}

// isPubKeyHash reports the classic OP_DUP OP_HASH160 <20 bytes>
// OP_EQUALVERIFY OP_CHECKSIG shape.
func isPubKeyHash(script []byte) bool {
	return len(script) == 25 &&
		script[0] == OP_DUP &&
		script[1] == OP_HASH160 &&
		script[2] == OP_DATA_20 &&
		script[23] == OP_EQUALVERIFY &&
		script[24] == OP_CHECKSIG
}

// isPubKey reports the shape <33-or-65-byte pubkey> OP_CHECKSIG.
func isPubKey(script []byte) bool {
	ops, err := ParseScript(script)
	if err != nil || len(ops) != 2 {
		return false
	}
	dataLen := len(ops[0].Data)
	return (dataLen == 33 || dataLen == 65) && ops[1].Opcode == OP_CHECKSIG
}

// isNullData reports the provably-unspendable OP_RETURN [data] shape.
func isNullData(script []byte) bool {
	ops, err := ParseScript(script)
	if err != nil || len(ops) == 0 || ops[0].Opcode != OP_RETURN {
		return false
	}
	for _, op := range ops[1:] {
		if op.Opcode > OP_16 {
			return false
		}
	}
	return true
}

// isMultiSig reports the <m> <pubkey>... <n> OP_CHECKMULTISIG shape.
func isMultiSig(script []byte) bool {
	ops, err := ParseScript(script)
	if err != nil || len(ops) < 4 {
		return false
	}
	if !isSmallInt(ops[0].Opcode) {
		return false
	}
	last := ops[len(ops)-1]
	if last.Opcode != OP_CHECKMULTISIG {
		return false
	}
	nOp := ops[len(ops)-2]
	if !isSmallInt(nOp.Opcode) {
		return false
	}
	n := asSmallInt(nOp.Opcode)
	pubkeys := ops[1 : len(ops)-2]
	if len(pubkeys) != n {
		return false
	}
	for _, p := range pubkeys {
		if len(p.Data) != 33 && len(p.Data) != 65 {
			return false
		}
	}
	return true
}

// ExtractScriptClass classifies script as one of the recognized standard
// shapes, or NonStandardTy if it matches none of them. This mirrors the
// recognition performed by a standard script classifier, minus any step
// that would require address/network-parameter knowledge.
func ExtractScriptClass(script []byte) ScriptClass {
	switch {
	case IsPayToScriptHash(script):
		return ScriptHashTy
	case IsWitnessV0KeyHash(script):
		return WitnessV0PubKeyHashTy
	case IsWitnessV0ScriptHash(script):
		return WitnessV0ScriptHashTy
	case isPubKeyHash(script):
		return PubKeyHashTy
	case isPubKey(script):
		return PubKeyTy
	case isMultiSig(script):
		return MultiSigTy
	case isNullData(script):
		return NullDataTy
	default:
		return NonStandardTy
	}
}
