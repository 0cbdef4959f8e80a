// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2015-2019 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire provides the transaction/outpoint data structures the
// signature-hash engine in package txscript consumes. These are the
// "external collaborator" the core script library is specified against
// (narrow contract: ordered inputs/outputs, version, locktime, witness) and
// are kept out of the txscript package itself so the consensus-critical code
// never has to know how a transaction is framed on the wire.
package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/evrmorecore/evrtxscript/chainhash"
)

// MaxVarIntPayload is the greatest number of bytes a variable length integer
// can be before it is considered malformed for the purposes of this package.
const MaxVarIntPayload = 9

// witSemaphore is the marker/flag byte pair that introduces witness data
// immediately following the version field.
var witSemaphore = [2]byte{0x00, 0x01}

// OutPoint defines a reference to a transaction output.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// NewOutPoint returns a new outpoint for the given hash and index.
func NewOutPoint(hash *chainhash.Hash, index uint32) *OutPoint {
	return &OutPoint{Hash: *hash, Index: index}
}

// String returns the outpoint in the canonical "hash:index" form.
func (o OutPoint) String() string {
	return fmt.Sprintf("%s:%d", o.Hash.String(), o.Index)
}

// Serialize writes the outpoint's wire encoding: the 32-byte hash followed
// by the 4-byte little-endian output index.
func (o *OutPoint) Serialize() []byte {
	buf := make([]byte, chainhash.HashSize+4)
	copy(buf, o.Hash[:])
	binary.LittleEndian.PutUint32(buf[chainhash.HashSize:], o.Index)
	return buf
}

// TxIn defines a transaction input.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Witness          TxWitness
	Sequence         uint32
}

// TxWitness defines the witness stack carried by a segwit input.
type TxWitness [][]byte

// DefaultValue is the sentinel value a default (discarded) output carries
// during SIGHASH_SINGLE legacy signature hashing.
const DefaultValue = -1

// TxOut defines a transaction output.
type TxOut struct {
	Value    int64
	PkScript []byte
}

// Serialize writes the output's wire encoding: the 8-byte little-endian
// signed value followed by the length-prefixed public key script.
func (t *TxOut) Serialize() []byte {
	buf := new(bytes.Buffer)
	var v [8]byte
	binary.LittleEndian.PutUint64(v[:], uint64(t.Value))
	buf.Write(v[:])
	WriteVarBytes(buf, t.PkScript)
	return buf.Bytes()
}

// MsgTx is the transaction view consumed by the signature-hash and sigop
// routines: ordered inputs and outputs, version, locktime, and an optional
// segwit witness.
type MsgTx struct {
	Version  int32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

// NewMsgTx returns a new, empty transaction with the given protocol version.
func NewMsgTx(version int32) *MsgTx {
	return &MsgTx{Version: version}
}

// HasWitness reports whether any input carries witness data.
func (tx *MsgTx) HasWitness() bool {
	for _, txIn := range tx.TxIn {
		if len(txIn.Witness) > 0 {
			return true
		}
	}
	return false
}

// Copy returns a deep copy of the transaction, suitable for the legacy
// signature-hash routine's requirement that it never mutate the caller's
// transaction view.
func (tx *MsgTx) Copy() *MsgTx {
	txCopy := &MsgTx{
		Version:  tx.Version,
		TxIn:     make([]*TxIn, len(tx.TxIn)),
		TxOut:    make([]*TxOut, len(tx.TxOut)),
		LockTime: tx.LockTime,
	}
	for i, oldTxIn := range tx.TxIn {
		newTxIn := *oldTxIn
		if oldTxIn.SignatureScript != nil {
			newTxIn.SignatureScript = append([]byte(nil), oldTxIn.SignatureScript...)
		}
		if oldTxIn.Witness != nil {
			newTxIn.Witness = make(TxWitness, len(oldTxIn.Witness))
			for j, w := range oldTxIn.Witness {
				newTxIn.Witness[j] = append([]byte(nil), w...)
			}
		}
		txCopy.TxIn[i] = &newTxIn
	}
	for i, oldTxOut := range tx.TxOut {
		newTxOut := *oldTxOut
		if oldTxOut.PkScript != nil {
			newTxOut.PkScript = append([]byte(nil), oldTxOut.PkScript...)
		}
		txCopy.TxOut[i] = &newTxOut
	}
	return txCopy
}

// SerializeNoWitness writes the transaction in its legacy, witness-stripped
// encoding: the encoding pre-segwit consensus rules, and the legacy
// signature-hash computation, operate on.
func (tx *MsgTx) SerializeNoWitness(w io.Writer) error {
	var verBuf [4]byte
	binary.LittleEndian.PutUint32(verBuf[:], uint32(tx.Version))
	if _, err := w.Write(verBuf[:]); err != nil {
		return err
	}

	if err := WriteVarInt(w, uint64(len(tx.TxIn))); err != nil {
		return err
	}
	for _, ti := range tx.TxIn {
		if err := writeTxIn(w, ti); err != nil {
			return err
		}
	}

	if err := WriteVarInt(w, uint64(len(tx.TxOut))); err != nil {
		return err
	}
	for _, to := range tx.TxOut {
		if _, err := w.Write(to.Serialize()); err != nil {
			return err
		}
	}

	var lockBuf [4]byte
	binary.LittleEndian.PutUint32(lockBuf[:], tx.LockTime)
	_, err := w.Write(lockBuf[:])
	return err
}

// Serialize writes the transaction's full wire encoding, including the
// segwit marker/flag and per-input witness stacks when any input carries
// one.
func (tx *MsgTx) Serialize(w io.Writer) error {
	hasWitness := tx.HasWitness()

	var verBuf [4]byte
	binary.LittleEndian.PutUint32(verBuf[:], uint32(tx.Version))
	if _, err := w.Write(verBuf[:]); err != nil {
		return err
	}
	if hasWitness {
		if _, err := w.Write(witSemaphore[:]); err != nil {
			return err
		}
	}

	if err := WriteVarInt(w, uint64(len(tx.TxIn))); err != nil {
		return err
	}
	for _, ti := range tx.TxIn {
		if err := writeTxIn(w, ti); err != nil {
			return err
		}
	}

	if err := WriteVarInt(w, uint64(len(tx.TxOut))); err != nil {
		return err
	}
	for _, to := range tx.TxOut {
		if _, err := w.Write(to.Serialize()); err != nil {
			return err
		}
	}

	if hasWitness {
		for _, ti := range tx.TxIn {
			if err := WriteVarInt(w, uint64(len(ti.Witness))); err != nil {
				return err
			}
			for _, item := range ti.Witness {
				if err := WriteVarBytes(w, item); err != nil {
					return err
				}
			}
		}
	}

	var lockBuf [4]byte
	binary.LittleEndian.PutUint32(lockBuf[:], tx.LockTime)
	_, err := w.Write(lockBuf[:])
	return err
}

func writeTxIn(w io.Writer, ti *TxIn) error {
	if _, err := w.Write(ti.PreviousOutPoint.Serialize()); err != nil {
		return err
	}
	if err := WriteVarBytes(w, ti.SignatureScript); err != nil {
		return err
	}
	var seqBuf [4]byte
	binary.LittleEndian.PutUint32(seqBuf[:], ti.Sequence)
	_, err := w.Write(seqBuf[:])
	return err
}

// SerializeSizeStripped returns the number of bytes SerializeNoWitness would
// write, without performing the write. Callers use it to pre-size buffers.
func (tx *MsgTx) SerializeSizeStripped() int {
	n := 4 + 4 // version + locktime
	n += VarIntSerializeSize(uint64(len(tx.TxIn)))
	for _, ti := range tx.TxIn {
		n += chainhash.HashSize + 4 // outpoint
		n += VarIntSerializeSize(uint64(len(ti.SignatureScript)))
		n += len(ti.SignatureScript)
		n += 4 // sequence
	}
	n += VarIntSerializeSize(uint64(len(tx.TxOut)))
	for _, to := range tx.TxOut {
		n += 8
		n += VarIntSerializeSize(uint64(len(to.PkScript)))
		n += len(to.PkScript)
	}
	return n
}

// WriteVarInt writes val as a Bitcoin-style variable length integer.
func WriteVarInt(w io.Writer, val uint64) error {
	var buf []byte
	switch {
	case val < 0xfd:
		buf = []byte{byte(val)}
	case val <= 0xffff:
		buf = make([]byte, 3)
		buf[0] = 0xfd
		binary.LittleEndian.PutUint16(buf[1:], uint16(val))
	case val <= 0xffffffff:
		buf = make([]byte, 5)
		buf[0] = 0xfe
		binary.LittleEndian.PutUint32(buf[1:], uint32(val))
	default:
		buf = make([]byte, 9)
		buf[0] = 0xff
		binary.LittleEndian.PutUint64(buf[1:], val)
	}
	_, err := w.Write(buf)
	return err
}

// VarIntSerializeSize returns the number of bytes WriteVarInt would write
// for val.
func VarIntSerializeSize(val uint64) int {
	switch {
	case val < 0xfd:
		return 1
	case val <= 0xffff:
		return 3
	case val <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// WriteVarBytes writes data prefixed with its variable length integer size.
func WriteVarBytes(w io.Writer, data []byte) error {
	if err := WriteVarInt(w, uint64(len(data))); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}
