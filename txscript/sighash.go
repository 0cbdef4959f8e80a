// Copyright (c) 2013-2020 The btcsuite developers
// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"encoding/binary"

	"github.com/evrmorecore/evrtxscript/chainhash"
	"github.com/evrmorecore/evrtxscript/wire"
)

// SigHashType represents the hash type bits appended to a signature,
// controlling which parts of the transaction the signature commits to.
type SigHashType uint32

// Hash type bits, matching the byte values the network serializes.
const (
	SigHashOld          SigHashType = 0x0
	SigHashAll          SigHashType = 0x1
	SigHashNone         SigHashType = 0x2
	SigHashSingle       SigHashType = 0x3
	SigHashAnyOneCanPay SigHashType = 0x80

	// sigHashMask isolates the base hash type from the ANYONECANPAY bit.
	sigHashMask = 0x1f
)

// sigHashSentinel is the historic "01 00...00" digest both out-of-range
// quirks return in place of a computed hash.
func sigHashSentinel() []byte {
	var hash [32]byte
	hash[0] = 0x01
	return hash[:]
}

// RawSignatureHash computes the legacy (pre-segwit) signature hash digest
// for the idx'th input of tx, as though it were about to sign (or verify a
// signature against) subScript as the input's scriptPubKey/redeem script.
//
// It preserves the historic out-of-range quirks verbatim and reports them
// through the returned error as a side channel rather than a hard failure:
// when idx has no corresponding input, or the hash type's base is
// SigHashSingle and idx has no corresponding output, it returns the sentinel
// digest 0x01 followed by 31 zero bytes alongside an ErrSigHashOutOfRange
// *ScriptError. Callers that want the out-of-range condition raised as a
// hard error should use SignatureHash instead.
func RawSignatureHash(subScript []byte, hashType SigHashType, tx *wire.MsgTx, idx int) ([]byte, error) {
	if idx >= len(tx.TxIn) {
		return sigHashSentinel(), scriptError(ErrSigHashOutOfRange, "inIdx out of range")
	}
	if int(hashType&sigHashMask) == int(SigHashSingle) && idx >= len(tx.TxOut) {
		return sigHashSentinel(), scriptError(ErrSigHashOutOfRange, "outIdx out of range")
	}

	// OP_CODESEPARATOR never survives into the subscript that gets
	// hashed, regardless of hash type.
	strippedScript, _ := FindAndDelete(subScript, []byte{OP_CODESEPARATOR})

	txCopy := tx.Copy()
	for i := range txCopy.TxIn {
		if i == idx {
			txCopy.TxIn[i].SignatureScript = strippedScript
		} else {
			txCopy.TxIn[i].SignatureScript = nil
		}
	}

	switch SigHashType(hashType & sigHashMask) {
	case SigHashNone:
		txCopy.TxOut = txCopy.TxOut[0:0]
		for i := range txCopy.TxIn {
			if i != idx {
				txCopy.TxIn[i].Sequence = 0
			}
		}

	case SigHashSingle:
		txCopy.TxOut = txCopy.TxOut[:idx+1]
		for i := 0; i < idx; i++ {
			txCopy.TxOut[i].Value = wire.DefaultValue
			txCopy.TxOut[i].PkScript = nil
		}
		for i := range txCopy.TxIn {
			if i != idx {
				txCopy.TxIn[i].Sequence = 0
			}
		}

	default:
		// SigHashAll and the legacy SigHashOld: outputs untouched.
	}

	if hashType&SigHashAnyOneCanPay != 0 {
		txCopy.TxIn = txCopy.TxIn[idx : idx+1]
	}

	var buf bytes.Buffer
	if err := txCopy.SerializeNoWitness(&buf); err != nil {
		return sigHashSentinel(), scriptError(ErrInvalidScript, err.Error())
	}
	var htBuf [4]byte
	binary.LittleEndian.PutUint32(htBuf[:], uint32(hashType))
	buf.Write(htBuf[:])

	return chainhash.DoubleHashB(buf.Bytes()), nil
}

// SignatureHash is the cooked wrapper around RawSignatureHash: it rejects a
// subScript that looks like a witness program (those belong to
// CalcWitnessSignatureHash, not the legacy engine) and raises the
// out-of-range condition RawSignatureHash reports as a side channel, instead
// of returning it silently alongside the sentinel digest.
func SignatureHash(subScript []byte, hashType SigHashType, tx *wire.MsgTx, idx int) ([]byte, error) {
	if IsWitnessScriptPubKey(subScript) {
		return nil, scriptError(ErrInvalidScript, "SignatureHash: subScript is a witness program; use CalcWitnessSignatureHash")
	}
	hash, errTag := RawSignatureHash(subScript, hashType, tx, idx)
	if errTag != nil {
		return nil, errTag
	}
	return hash, nil
}

// TxSigHashes caches the three midstate hashes BIP-143 reuses across every
// input of the same transaction, so signing or verifying N witness inputs
// does no more than O(N) hashing work instead of O(N^2).
type TxSigHashes struct {
	HashPrevOuts chainhash.Hash
	HashSequence chainhash.Hash
	HashOutputs  chainhash.Hash
}

// NewTxSigHashes precomputes the midstate hashes for tx.
func NewTxSigHashes(tx *wire.MsgTx) *TxSigHashes {
	return &TxSigHashes{
		HashPrevOuts: calcHashPrevOuts(tx),
		HashSequence: calcHashSequence(tx),
		HashOutputs:  calcHashOutputs(tx),
	}
}

func calcHashPrevOuts(tx *wire.MsgTx) chainhash.Hash {
	var b bytes.Buffer
	for _, in := range tx.TxIn {
		b.Write(in.PreviousOutPoint.Serialize())
	}
	return chainhash.DoubleHashH(b.Bytes())
}

func calcHashSequence(tx *wire.MsgTx) chainhash.Hash {
	var b bytes.Buffer
	for _, in := range tx.TxIn {
		var seq [4]byte
		binary.LittleEndian.PutUint32(seq[:], in.Sequence)
		b.Write(seq[:])
	}
	return chainhash.DoubleHashH(b.Bytes())
}

func calcHashOutputs(tx *wire.MsgTx) chainhash.Hash {
	var b bytes.Buffer
	for _, out := range tx.TxOut {
		b.Write(out.Serialize())
	}
	return chainhash.DoubleHashH(b.Bytes())
}

// CalcWitnessSignatureHash computes the BIP-143 segwit v0 signature hash
// digest for the idx'th input of tx, spending an output worth amt carrying
// subScript as its scriptCode. subScript is committed to verbatim: for a
// native v0 key-hash spend, BIP-143 prescribes the expanded P2PKH-form
// scriptCode, and the caller builds it before calling in. sigHashes should
// be obtained once per transaction via NewTxSigHashes and reused across all
// of its inputs.
//
// Per BIP-143, the three midstate hashes are replaced with 32 zero bytes
// whenever the hash type excludes the data they summarize: HashPrevOuts and
// HashSequence under ANYONECANPAY, HashSequence additionally under SINGLE or
// NONE, and HashOutputs under SINGLE (where it is replaced by the hash of
// just the matching output, or zero if there is none) or NONE.
func CalcWitnessSignatureHash(subScript []byte, sigHashes *TxSigHashes, hashType SigHashType, tx *wire.MsgTx, idx int, amt int64) ([]byte, error) {
	if idx >= len(tx.TxIn) {
		return nil, scriptError(ErrSigHashOutOfRange, "inIdx out of range")
	}
	txIn := tx.TxIn[idx]

	var sigHash bytes.Buffer
	var scratch [8]byte

	binary.LittleEndian.PutUint32(scratch[0:4], uint32(tx.Version))
	sigHash.Write(scratch[0:4])

	var zeroHash chainhash.Hash

	if hashType&SigHashAnyOneCanPay == 0 {
		sigHash.Write(sigHashes.HashPrevOuts[:])
	} else {
		sigHash.Write(zeroHash[:])
	}

	baseType := SigHashType(hashType & sigHashMask)
	if hashType&SigHashAnyOneCanPay == 0 &&
		baseType != SigHashSingle && baseType != SigHashNone {
		sigHash.Write(sigHashes.HashSequence[:])
	} else {
		sigHash.Write(zeroHash[:])
	}

	sigHash.Write(txIn.PreviousOutPoint.Hash[:])
	binary.LittleEndian.PutUint32(scratch[0:4], txIn.PreviousOutPoint.Index)
	sigHash.Write(scratch[0:4])

	wire.WriteVarBytes(&sigHash, subScript)

	binary.LittleEndian.PutUint64(scratch[:], uint64(amt))
	sigHash.Write(scratch[:])

	binary.LittleEndian.PutUint32(scratch[0:4], txIn.Sequence)
	sigHash.Write(scratch[0:4])

	switch {
	case baseType != SigHashSingle && baseType != SigHashNone:
		sigHash.Write(sigHashes.HashOutputs[:])
	case baseType == SigHashSingle && idx < len(tx.TxOut):
		sigHash.Write(chainhash.DoubleHashB(tx.TxOut[idx].Serialize()))
	default:
		sigHash.Write(zeroHash[:])
	}

	binary.LittleEndian.PutUint32(scratch[0:4], tx.LockTime)
	sigHash.Write(scratch[0:4])
	binary.LittleEndian.PutUint32(scratch[0:4], uint32(hashType))
	sigHash.Write(scratch[0:4])

	return chainhash.DoubleHashB(sigHash.Bytes()), nil
}
