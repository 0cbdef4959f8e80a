package txscript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindAndDeleteRemovesAlignedOccurrence(t *testing.T) {
	sub := []byte{OP_DATA_2, 0xAA, 0xBB}
	script := append(append([]byte{OP_DUP}, sub...), OP_CHECKSIG)

	got, count := FindAndDelete(script, sub)
	require.Equal(t, 1, count)
	require.Equal(t, []byte{OP_DUP, OP_CHECKSIG}, got)
}

func TestFindAndDeleteDoesNotMatchMidPushData(t *testing.T) {
	// The target bytes appear inside a larger push's data, not at an
	// operation boundary, so they must survive untouched.
	sub := []byte{0xAA, 0xBB}
	script := []byte{OP_DATA_3, 0xAA, 0xBB, 0xCC}

	got, count := FindAndDelete(script, sub)
	require.Equal(t, 0, count)
	require.Equal(t, script, got)
}

func TestFindAndDeleteMultipleOccurrences(t *testing.T) {
	sub := []byte{OP_CODESEPARATOR}
	script := []byte{OP_CODESEPARATOR, OP_DUP, OP_CODESEPARATOR, OP_CHECKSIG}

	got, count := FindAndDelete(script, sub)
	require.Equal(t, 2, count)
	require.Equal(t, []byte{OP_DUP, OP_CHECKSIG}, got)
}

func TestFindAndDeleteSubShorterThanOperationDeletesWholeOperation(t *testing.T) {
	// A hit removes the full operation starting at the match, not just
	// len(sub) bytes: matching a push opcode alone must delete the
	// opcode and its attached data, and the scan must stay aligned to
	// operation boundaries afterwards.
	sub := []byte{OP_DATA_2}
	script := []byte{OP_DATA_2, 0xAA, 0xBB, OP_CHECKSIG}

	got, count := FindAndDelete(script, sub)
	require.Equal(t, 1, count)
	require.Equal(t, []byte{OP_CHECKSIG}, got)
}

func TestFindAndDeleteEmptySubReturnsCopyUnchanged(t *testing.T) {
	script := []byte{OP_DUP, OP_CHECKSIG}
	got, count := FindAndDelete(script, nil)
	require.Equal(t, 0, count)
	require.Equal(t, script, got)
}

func TestFindAndDeleteConsecutiveOccurrences(t *testing.T) {
	sub := []byte{OP_NOP}
	script := []byte{OP_NOP, OP_NOP, OP_NOP, OP_CHECKSIG}
	got, count := FindAndDelete(script, sub)
	require.Equal(t, 3, count)
	require.Equal(t, []byte{OP_CHECKSIG}, got)
}
