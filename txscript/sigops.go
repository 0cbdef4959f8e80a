// Copyright (c) 2013-2020 The btcsuite developers
// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "golang.org/x/sync/errgroup"

// maxPubKeysPerMultiSig is the weight OP_CHECKMULTISIG(VERIFY) contributes
// when accurate counting can't determine the exact pubkey count from a
// preceding small-int opcode.
const maxPubKeysPerMultiSig = 20

// GetSigOpCount returns the number of signature operations script contains.
// In fAccurate mode, an OP_CHECKMULTISIG(VERIFY) immediately preceded by an
// OP_1..OP_16 push is weighted by that int's value rather than the
// conservative maxPubKeysPerMultiSig; every other CHECKMULTISIG (including
// one preceded by OP_0) counts as the conservative maximum.
func GetSigOpCount(script []byte, fAccurate bool) int {
	count := 0
	lastOpcode := byte(OP_INVALIDOPCODE)

	tok := MakeScriptTokenizer(script)
	for tok.Next() {
		op := tok.Opcode()
		switch op {
		case OP_CHECKSIG, OP_CHECKSIGVERIFY:
			count++
		case OP_CHECKMULTISIG, OP_CHECKMULTISIGVERIFY:
			if fAccurate && lastOpcode >= OP_1 && lastOpcode <= OP_16 {
				count += asSmallInt(lastOpcode)
			} else {
				count += maxPubKeysPerMultiSig
			}
		}
		lastOpcode = op
	}
	// A truncated script still contributes whatever sigops were counted
	// before the parse failure; GetSigOpCount does not propagate
	// tokenizer errors because callers use it purely as a cost metric.
	return count
}

// GetP2SHSigOpCount returns the sigop count a P2SH input contributes: zero
// unless scriptSig is push-only and ends in a data push, in which case the
// sigops of that pushed redeem script (in accurate mode) are counted instead
// of the opaque scriptPubKey's own (trivial) sigop count. A redeem script
// that fails to tokenize contributes the sigops counted before the failure.
func GetP2SHSigOpCount(scriptSig []byte) int {
	if !IsPushOnlyScript(scriptSig) {
		return 0
	}
	ops, err := ParseScript(scriptSig)
	if err != nil || len(ops) == 0 {
		return 0
	}
	redeemScript := ops[len(ops)-1].Data
	if redeemScript == nil {
		return 0
	}
	return GetSigOpCount(redeemScript, true)
}

// BatchSigOpCount tallies GetSigOpCount(fAccurate) across many scripts
// concurrently, bounded by errgroup, and returns the per-script counts in
// the same order as scripts. Intended for callers scoring every output in a
// block or a large mempool batch at once; the core's reentrancy guarantee is
// exercised here across goroutines rather than merely asserted.
func BatchSigOpCount(scripts [][]byte, fAccurate bool) ([]int, error) {
	counts := make([]int, len(scripts))
	var g errgroup.Group
	for i := range scripts {
		i := i
		g.Go(func() error {
			counts[i] = GetSigOpCount(scripts[i], fAccurate)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}
