package cre

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPermutationIsABijection(t *testing.T) {
	key := make([]byte, 16)
	key[0] = 0x11
	p, err := newPRF(key)
	require.NoError(t, err)

	const w = 64
	perm := buildPermutation(p, 1, w)

	seen := make(map[int]bool, w)
	for x := 0; x < w; x++ {
		fx := perm.apply(x)
		require.GreaterOrEqual(t, fx, 0)
		require.Less(t, fx, w)
		require.False(t, seen[fx], "permutation is not injective")
		seen[fx] = true
	}
	require.Len(t, seen, w)
}

func TestPermutationInverseRoundTrips(t *testing.T) {
	key := make([]byte, 16)
	p, err := newPRF(key)
	require.NoError(t, err)

	const w = 100
	perm := buildPermutation(p, 3, w)

	for x := 0; x < w; x++ {
		require.Equal(t, x, perm.applyInverse(perm.apply(x)))
	}
}

func TestPermutationDiffersAcrossBlockIndex(t *testing.T) {
	key := make([]byte, 16)
	p, err := newPRF(key)
	require.NoError(t, err)

	const w = 32
	permA := buildPermutation(p, 1, w)
	permB := buildPermutation(p, 2, w)

	differs := false
	for x := 0; x < w; x++ {
		if permA.apply(x) != permB.apply(x) {
			differs = true
			break
		}
	}
	require.True(t, differs, "distinct block indices should (almost always) yield distinct permutations")
}

func TestEncodePrefixInputTruncatesToMaxDigits(t *testing.T) {
	digits := make([]int, 20)
	for i := range digits {
		digits[i] = i + 1
	}
	in := encodePrefixInput(21, digits)

	// The last maxPrefixDigits digits should be present, oldest ones dropped.
	want := digits[len(digits)-maxPrefixDigits:]
	for i, d := range want {
		require.Equal(t, byte(d), in[2+i])
	}
}
