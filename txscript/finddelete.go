// Copyright (c) 2013-2020 The btcsuite developers
// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "bytes"

// FindAndDelete returns a copy of script with every occurrence of sub
// removed, where an "occurrence" is anchored to operation boundaries: a
// match is only recognized at an offset where a parsed operation starts,
// never mid-push-data, and a hit deletes the *entire* operation beginning
// there, even when sub is shorter than that operation. This is the historic
// subroutine signature hashing uses to strip the pushed signature data (and,
// in some legacy scripts, OP_CODESEPARATOR) out of the subscript before
// hashing it; naive substring search would also strip byte sequences that
// merely happen to appear inside a larger push's data, and would leave the
// scan desynchronized from operation boundaries after a partial-operation
// match.
//
// Bytes past a truncated push (where operation boundaries no longer exist)
// are retained verbatim. It returns the resulting script and the number of
// operations removed.
func FindAndDelete(script, sub []byte) ([]byte, int) {
	count := 0
	if len(sub) == 0 {
		out := make([]byte, len(script))
		copy(out, script)
		return out, count
	}

	var result []byte
	opStart := 0

	tok := MakeScriptTokenizer(script)
	for tok.Next() {
		opEnd := tok.ByteIndex()
		if opStart+len(sub) <= len(script) &&
			bytes.Equal(script[opStart:opStart+len(sub)], sub) {
			count++
		} else {
			result = append(result, script[opStart:opEnd]...)
		}
		opStart = opEnd
	}

	result = append(result, script[opStart:]...)
	return result, count
}
