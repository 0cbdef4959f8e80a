package txscript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSigOpCountSimple(t *testing.T) {
	script := []byte{OP_DUP, OP_HASH160, OP_DATA_20}
	script = append(script, make([]byte, 20)...)
	script = append(script, OP_EQUALVERIFY, OP_CHECKSIG)
	require.Equal(t, 1, GetSigOpCount(script, true))
}

func TestGetSigOpCountMultisigAccurate(t *testing.T) {
	script := []byte{OP_2, OP_3, OP_CHECKMULTISIG}
	require.Equal(t, 3, GetSigOpCount(script, true))
	require.Equal(t, maxPubKeysPerMultiSig, GetSigOpCount(script, false))
}

func TestGetSigOpCountMultisigPrecededByOp0(t *testing.T) {
	// Only OP_1..OP_16 participate in accurate weighting; OP_0 still
	// falls back to the conservative maximum.
	script := []byte{OP_0, OP_CHECKMULTISIG}
	require.Equal(t, maxPubKeysPerMultiSig, GetSigOpCount(script, true))
}

func TestGetSigOpCountMultisigWithoutPrecedingSmallInt(t *testing.T) {
	// No preceding small-int opcode to read the count from: even in
	// accurate mode this falls back to the conservative maximum.
	script := []byte{OP_DUP, OP_CHECKMULTISIG}
	require.Equal(t, maxPubKeysPerMultiSig, GetSigOpCount(script, true))
}

func TestGetP2SHSigOpCount(t *testing.T) {
	redeem := []byte{OP_2, OP_3, OP_CHECKMULTISIG}
	enc, err := EncodeOpPushdata(redeem)
	require.NoError(t, err)
	scriptSig := append([]byte{OP_0}, enc...)

	require.Equal(t, 3, GetP2SHSigOpCount(scriptSig))
}

func TestGetP2SHSigOpCountNonPushOnlyIsZero(t *testing.T) {
	scriptSig := []byte{OP_DUP, OP_CHECKSIG}
	require.Equal(t, 0, GetP2SHSigOpCount(scriptSig))
}

func TestBatchSigOpCount(t *testing.T) {
	scripts := [][]byte{
		{OP_CHECKSIG},
		{OP_2, OP_3, OP_CHECKMULTISIG},
		{OP_NOP},
	}
	counts, err := BatchSigOpCount(scripts, true)
	require.NoError(t, err)
	require.Equal(t, []int{1, 3, 0}, counts)
}
