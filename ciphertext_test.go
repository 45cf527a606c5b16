package cre

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func testCipher(t *testing.T, comparator Comparator, n, w int) *Cipher {
	t.Helper()
	key := make([]byte, 16)
	_, err := rand.Read(key)
	require.NoError(t, err)
	c, err := New(key, comparator, n, w)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestLeftCipherTextRoundTrip(t *testing.T) {
	c := testCipher(t, ORE, 4, 256)
	pt, err := PlaintextFromUint32(42, 4, 256)
	require.NoError(t, err)

	left, err := c.EncryptLeft(pt)
	require.NoError(t, err)

	encoded, err := left.MarshalBinary()
	require.NoError(t, err)

	decoded, err := UnmarshalLeftCipherText(encoded)
	require.NoError(t, err)
	require.Equal(t, left, decoded)
}

func TestRightCipherTextRoundTrip(t *testing.T) {
	c := testCipher(t, ORE, 4, 256)
	pt, err := PlaintextFromUint32(9001, 4, 256)
	require.NoError(t, err)

	right, err := c.EncryptRight(rand.Reader, pt)
	require.NoError(t, err)

	encoded, err := right.MarshalBinary()
	require.NoError(t, err)

	decoded, err := UnmarshalRightCipherText(encoded)
	require.NoError(t, err)
	require.Equal(t, right, decoded)
}

func TestFullCipherTextRoundTrip(t *testing.T) {
	c := testCipher(t, ERE, 1, 256)
	pt, err := PlaintextFromUint8(7, 1, 256)
	require.NoError(t, err)

	full, err := c.EncryptFull(rand.Reader, pt)
	require.NoError(t, err)

	encoded, err := full.MarshalBinary()
	require.NoError(t, err)

	decoded, err := UnmarshalFullCipherText(encoded)
	require.NoError(t, err)
	require.Equal(t, full, decoded)
}

func TestUnmarshalLeftCipherTextRejectsWrongTag(t *testing.T) {
	c := testCipher(t, ORE, 4, 256)
	pt, _ := PlaintextFromUint32(1, 4, 256)
	right, err := c.EncryptRight(rand.Reader, pt)
	require.NoError(t, err)
	encoded, err := right.MarshalBinary()
	require.NoError(t, err)

	_, err = UnmarshalLeftCipherText(encoded)
	require.True(t, IsInvalidCiphertext(err))
}

func TestUnmarshalLeftCipherTextRejectsTruncated(t *testing.T) {
	c := testCipher(t, ORE, 4, 256)
	pt, _ := PlaintextFromUint32(1, 4, 256)
	left, err := c.EncryptLeft(pt)
	require.NoError(t, err)
	encoded, err := left.MarshalBinary()
	require.NoError(t, err)

	_, err = UnmarshalLeftCipherText(encoded[:len(encoded)-1])
	require.True(t, IsInvalidCiphertext(err))
	require.NotPanics(t, func() {
		UnmarshalLeftCipherText(nil)
		UnmarshalRightCipherText(nil)
		UnmarshalFullCipherText(nil)
	})
}

func TestRightCipherTextPacksTwoBitEntriesForORE(t *testing.T) {
	require.Equal(t, 2, bitsForArity(3))
	require.Equal(t, 1, bitsForArity(2))
}
