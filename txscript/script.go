// Copyright (c) 2013-2020 The btcsuite developers
// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txscript implements the script encoding, decoding, template
// recognition, signature op counting, and signature-hash computation that
// this Evrmore/Ravencoin-lineage UTXO chain's consensus rules require of a
// script library. It stops short of a script interpreter: execution,
// signature verification beyond strict pubkey-encoding checks, address
// encoding, and asset-payload parsing are all out of scope here, left to
// collaborating packages.
package txscript

import "bytes"

// Script is an opaque byte-container, not a decoded opcode list. Keeping it
// byte-for-byte is deliberate: a script can carry non-minimal pushes,
// trailing garbage after a truncated push, or bytes an interpreter would
// reject, and every one of those must still round-trip unchanged through
// this package for consensus fidelity.
type Script []byte

// NewScriptFromBytes wraps raw bytes as a Script, copying them so later
// mutation of the caller's slice cannot retroactively change the Script.
func NewScriptFromBytes(b []byte) Script {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Script(cp)
}

// Bytes returns the script's raw bytes. The returned slice aliases the
// Script's backing array; callers that intend to mutate it should copy.
func (s Script) Bytes() []byte {
	return []byte(s)
}

// Equal reports whether two scripts hold identical bytes.
func (s Script) Equal(other Script) bool {
	return bytes.Equal(s, other)
}

// String renders the script as human-readable disassembly: opcode names
// joined by spaces, with pushed data rendered as a hex literal. A script
// that fails to tokenize cleanly has the failure reason appended as an
// "[error]" marker rather than panicking or silently truncating, so a
// malformed script is still printable in logs and error messages.
func (s Script) String() string {
	var buf bytes.Buffer
	tok := MakeScriptTokenizer(s)
	first := true
	for tok.Next() {
		if !first {
			buf.WriteByte(' ')
		}
		first = false
		if data := tok.Data(); data != nil {
			buf.WriteString("0x")
			buf.WriteString(hexString(data))
		} else {
			buf.WriteString(opcodeName(tok.Opcode()))
		}
	}
	if tok.Err() != nil {
		if !first {
			buf.WriteByte(' ')
		}
		buf.WriteString("[error: ")
		buf.WriteString(tok.Err().Error())
		buf.WriteByte(']')
	}
	return buf.String()
}

func hexString(b []byte) string {
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexDigits[c>>4]
		out[i*2+1] = hexDigits[c&0x0f]
	}
	return string(out)
}

// scriptItem is anything the builder knows how to coerce into script bytes:
// a bare opcode, a small integer pushed with its canonical opcode, or a byte
// slice pushed with its minimal encoding.
type scriptItem interface{}

// coerceItem converts a builder item into the bytes it contributes to the
// script, following the rules: an opcode byte is emitted as-is; an int in
// [0, 16] is emitted via EncodeOpN; -1 is emitted as OP_1NEGATE; any other
// int is pushed as its minimal signed-magnitude encoding; a []byte is pushed
// via EncodeOpPushdata.
func coerceItem(item scriptItem) ([]byte, error) {
	switch v := item.(type) {
	case byte:
		return []byte{v}, nil
	case int:
		return coerceInt(int64(v))
	case int64:
		return coerceInt(v)
	case []byte:
		return EncodeOpPushdata(v)
	case Script:
		return EncodeOpPushdata([]byte(v))
	default:
		return nil, &BuilderError{Msg: "unsupported script builder item type"}
	}
}

func coerceInt(v int64) ([]byte, error) {
	if v == -1 {
		return []byte{OP_1NEGATE}, nil
	}
	if v >= 0 && v <= 16 {
		op, err := EncodeOpN(int(v))
		if err != nil {
			return nil, err
		}
		return []byte{op}, nil
	}
	return EncodeOpPushdata(ScriptNumBytes(v))
}

// NewScript builds a Script from a sequence of items using the coercion
// rules documented on coerceItem, concatenating each item's contribution in
// order.
func NewScript(items ...scriptItem) (Script, error) {
	var buf bytes.Buffer
	for _, item := range items {
		b, err := coerceItem(item)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	return Script(buf.Bytes()), nil
}
