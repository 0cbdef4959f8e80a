// Copyright (c) 2013-2020 The btcsuite developers
// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

// ScriptTokenizer provides a low allocation, single pass raw iterator over
// the operations in a script. It does not attempt to enforce any execution
// semantics; it only knows how to split a byte string into (opcode,
// attached-data) pairs, failing when a push opcode's declared length would
// run past the end of the script.
//
// Typical use either walks the script with Next/Opcode/Data directly, or via
// the ParseScript/ScriptElements helpers below that collect a full pass up
// front.
type ScriptTokenizer struct {
	script []byte
	offset int
	op     byte
	data   []byte
	err    error
}

// MakeScriptTokenizer returns a new tokenizer for the given script. It does
// not copy the script; the caller must not mutate it while the tokenizer is
// in use.
func MakeScriptTokenizer(script []byte) ScriptTokenizer {
	return ScriptTokenizer{script: script}
}

// Done returns true once the tokenizer has reached the end of the script or
// encountered an error, after which Next always returns false.
func (t *ScriptTokenizer) Done() bool {
	return t.err != nil || t.offset >= len(t.script)
}

// Next advances the tokenizer to the next opcode, returning false when there
// are no more opcodes or a parse error occurred. Callers must check Err
// after Next returns false to distinguish "ran out of script" from
// "truncated push data".
func (t *ScriptTokenizer) Next() bool {
	if t.err != nil || t.offset >= len(t.script) {
		return false
	}

	op := t.script[t.offset]

	switch {
	case op < OP_PUSHDATA1:
		// Direct push: op itself is the length of the following data
		// (or zero for OP_0/OP_DATA_0, which pushes an empty slice).
		if op == OP_0 {
			t.op = op
			t.data = nil
			t.offset++
			return true
		}
		end := t.offset + 1 + int(op)
		if end > len(t.script) {
			t.err = truncatedPushError("direct push data extends beyond script",
				t.script[t.offset+1:])
			return false
		}
		t.op = op
		t.data = t.script[t.offset+1 : end]
		t.offset = end
		return true

	case op == OP_PUSHDATA1:
		if t.offset+2 > len(t.script) {
			t.err = scriptError(ErrInvalidScript, "OP_PUSHDATA1: missing data length")
			return false
		}
		length := int(t.script[t.offset+1])
		start := t.offset + 2
		end := start + length
		if end > len(t.script) {
			t.err = truncatedPushError("OP_PUSHDATA1 data extends beyond script",
				t.script[start:])
			return false
		}
		t.op = op
		t.data = t.script[start:end]
		t.offset = end
		return true

	case op == OP_PUSHDATA2:
		if t.offset+3 > len(t.script) {
			t.err = scriptError(ErrInvalidScript, "OP_PUSHDATA2: missing data length")
			return false
		}
		length := int(t.script[t.offset+1]) | int(t.script[t.offset+2])<<8
		start := t.offset + 3
		end := start + length
		if end > len(t.script) {
			t.err = truncatedPushError("OP_PUSHDATA2 data extends beyond script",
				t.script[start:])
			return false
		}
		t.op = op
		t.data = t.script[start:end]
		t.offset = end
		return true

	case op == OP_PUSHDATA4:
		if t.offset+5 > len(t.script) {
			t.err = scriptError(ErrInvalidScript, "OP_PUSHDATA4: missing data length")
			return false
		}
		length := int(t.script[t.offset+1]) | int(t.script[t.offset+2])<<8 |
			int(t.script[t.offset+3])<<16 | int(t.script[t.offset+4])<<24
		start := t.offset + 5
		end := start + length
		if end > len(t.script) || end < start {
			t.err = truncatedPushError("OP_PUSHDATA4 data extends beyond script",
				t.script[start:])
			return false
		}
		t.op = op
		t.data = t.script[start:end]
		t.offset = end
		return true

	default:
		t.op = op
		t.data = nil
		t.offset++
		return true
	}
}

// Opcode returns the opcode most recently parsed by Next.
func (t *ScriptTokenizer) Opcode() byte {
	return t.op
}

// Data returns the data the most recently parsed opcode pushed, or nil for
// an opcode that pushes no data (including OP_0, which pushes an empty
// slice but is reported as nil here; callers distinguishing "no data" from
// "empty data" should check Opcode() == OP_0 instead).
func (t *ScriptTokenizer) Data() []byte {
	return t.data
}

// ByteIndex returns the tokenizer's current offset into the underlying
// script: the index immediately after the most recently parsed operation.
// FindAndDelete relies on this to anchor deletions at operation boundaries.
func (t *ScriptTokenizer) ByteIndex() int {
	return t.offset
}

// Script returns the full underlying script the tokenizer is walking.
func (t *ScriptTokenizer) Script() []byte {
	return t.script
}

// Err returns the parse error, if any, that stopped iteration early. It is
// nil when Next returned false because iteration reached the end of the
// script normally.
func (t *ScriptTokenizer) Err() error {
	return t.err
}

// ParsedOp is a single (opcode, data) pair from a full raw pass over a
// script.
type ParsedOp struct {
	Opcode byte
	Data   []byte
}

// ParseScript performs a full raw pass over script and returns every parsed
// operation, or an error if the script is truncated mid-push. This is a
// convenience built atop the raw iterator above, collecting the full
// sequence up front instead of walking it incrementally.
func ParseScript(script []byte) ([]ParsedOp, error) {
	var ops []ParsedOp
	tok := MakeScriptTokenizer(script)
	for tok.Next() {
		ops = append(ops, ParsedOp{Opcode: tok.Opcode(), Data: tok.Data()})
	}
	if tok.Err() != nil {
		return nil, tok.Err()
	}
	return ops, nil
}

// IsValidScript reports whether script can be fully tokenized without a
// truncated-push error. It does not check execution validity, only that
// every push opcode's declared length stays within the script.
func IsValidScript(script []byte) bool {
	_, err := ParseScript(script)
	return err == nil
}

// ScriptElement is the semantic value one operation yields when a script is
// viewed as data rather than raw opcodes. Exactly one interpretation
// applies: IsInt is set for the integer-pushing opcodes (OP_0, OP_1NEGATE,
// OP_1..OP_16), Data is non-nil for a data push, and otherwise the opcode
// byte stands alone.
type ScriptElement struct {
	Opcode byte
	Data   []byte
	Int    int64
	IsInt  bool
}

// ScriptElements performs a cooked pass over script: OP_0 yields integer 0,
// a data push yields its payload, OP_1NEGATE and OP_1..OP_16 yield their
// decoded integers, and every other opcode yields itself. Non-minimal push
// encodings are flattened away here; use ParseScript or the tokenizer
// directly when they must be distinguished.
func ScriptElements(script []byte) ([]ScriptElement, error) {
	var elems []ScriptElement
	tok := MakeScriptTokenizer(script)
	for tok.Next() {
		op := tok.Opcode()
		switch {
		case op == OP_0:
			elems = append(elems, ScriptElement{Opcode: op, IsInt: true})
		case tok.Data() != nil:
			elems = append(elems, ScriptElement{Opcode: op, Data: tok.Data()})
		case op == OP_1NEGATE:
			elems = append(elems, ScriptElement{Opcode: op, Int: -1, IsInt: true})
		case isSmallInt(op):
			elems = append(elems, ScriptElement{
				Opcode: op, Int: int64(asSmallInt(op)), IsInt: true,
			})
		default:
			elems = append(elems, ScriptElement{Opcode: op})
		}
	}
	if tok.Err() != nil {
		return nil, tok.Err()
	}
	return elems, nil
}
