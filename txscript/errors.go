// Copyright (c) 2013-2020 The btcsuite developers
// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "fmt"

// ErrorKind distinguishes the categories of error this package returns, so
// callers can branch on the kind of failure rather than matching strings.
type ErrorKind int

const (
	// ErrInvalidScript covers general script corruption: a PUSHDATA
	// opcode whose length prefix itself is cut off before the script
	// ends.
	ErrInvalidScript ErrorKind = iota

	// ErrTruncatedPushData is returned by the raw tokenizer when a push
	// declared N bytes of data but fewer were present. The error carries
	// the partial payload that was read.
	ErrTruncatedPushData

	// ErrEncodingOutOfRange names the category of integer/opcode encodings
	// presented outside their valid domain: EncodeOpN(17), DecodeOpN(OP_NOP),
	// a pushdata length that cannot be represented. Those helpers report it
	// as an *EncodingOutOfRangeError, not as a ScriptError of this kind.
	ErrEncodingOutOfRange

	// ErrSigHashOutOfRange reports that RawSignatureHash was asked for an
	// out-of-range input or (for SIGHASH_SINGLE) output index. RawSignatureHash
	// itself returns this alongside the historic sentinel digest rather than
	// failing outright, preserving the legacy engine's quirk verbatim;
	// SignatureHash raises it as a hard error instead of passing the sentinel
	// through silently.
	ErrSigHashOutOfRange

	// ErrBuilderValue names the category of builder-side argument
	// validation failures: an unsupported item type, an out-of-range
	// multisig (m, n) pair, or a redeem script that would make a P2SH output
	// unspendable. The builders report it as a *BuilderError, not as a
	// ScriptError of this kind.
	ErrBuilderValue
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidScript:
		return "InvalidScript"
	case ErrTruncatedPushData:
		return "TruncatedPushData"
	case ErrEncodingOutOfRange:
		return "EncodingOutOfRange"
	case ErrSigHashOutOfRange:
		return "SigHashOutOfRange"
	case ErrBuilderValue:
		return "BuilderValue"
	default:
		return "Unknown"
	}
}

// ScriptError is the error type the exported functions in this package
// return for script failures (tokenizing, signature hashing). Encoding and
// builder failures use EncodingOutOfRangeError and BuilderError instead.
// Callers distinguish cases with errors.As and ScriptError.Kind, not string
// matching.
//
// For ErrTruncatedPushData, Partial holds the bytes of the push payload
// that were present before the script ended.
type ScriptError struct {
	Kind    ErrorKind
	Msg     string
	Partial []byte
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func scriptError(kind ErrorKind, msg string) *ScriptError {
	return &ScriptError{Kind: kind, Msg: msg}
}

func truncatedPushError(msg string, partial []byte) *ScriptError {
	return &ScriptError{Kind: ErrTruncatedPushData, Msg: msg, Partial: partial}
}

// EncodingOutOfRangeError reports an integer/opcode encoding request
// outside its valid domain. Defined as a distinct type (rather than funneled
// through ScriptError) because it is returned by leaf helpers (EncodeOpN,
// DecodeOpN, EncodeOpPushdata) that have no script or byte offset to attach.
type EncodingOutOfRangeError struct {
	Msg string
}

func (e *EncodingOutOfRangeError) Error() string {
	return "EncodingOutOfRange: " + e.Msg
}

// BuilderError reports invalid input to a script builder: an unsupported
// item type passed to NewScript, or a multisig/P2SH argument outside its
// valid domain.
type BuilderError struct {
	Msg string
}

func (e *BuilderError) Error() string {
	return "BuilderValue: " + e.Msg
}
