package cre

import (
	"crypto/rand"
	mrand "math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, 16)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestEncryptLeftIsDeterministic(t *testing.T) {
	c := testCipher(t, ORE, 4, 256)
	pt, err := PlaintextFromUint32(42, 4, 256)
	require.NoError(t, err)

	a, err := c.EncryptLeft(pt)
	require.NoError(t, err)
	b, err := c.EncryptLeft(pt)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestEncryptRightIsRandomized(t *testing.T) {
	c := testCipher(t, ORE, 4, 256)
	pt, err := PlaintextFromUint32(42, 4, 256)
	require.NoError(t, err)

	a, err := c.EncryptRight(rand.Reader, pt)
	require.NoError(t, err)
	b, err := c.EncryptRight(rand.Reader, pt)
	require.NoError(t, err)
	require.NotEqual(t, a.nonce, b.nonce)
}

func TestCompareOREOrdering(t *testing.T) {
	c := testCipher(t, ORE, 4, 256)

	left, err := c.EncryptLeftUint32(42)
	require.NoError(t, err)
	right, err := c.EncryptRightUint32(rand.Reader, 9001)
	require.NoError(t, err)

	got, err := c.Compare(left, right)
	require.NoError(t, err)
	require.Equal(t, 1, got) // 42 < 9001
}

func TestCompareOREReverse(t *testing.T) {
	c := testCipher(t, ORE, 4, 256)

	left, err := c.EncryptLeftUint32(9001)
	require.NoError(t, err)
	right, err := c.EncryptRightUint32(rand.Reader, 42)
	require.NoError(t, err)

	got, err := c.Compare(left, right)
	require.NoError(t, err)
	require.Equal(t, 2, got)
}

func TestCompareOREEqualValues(t *testing.T) {
	c := testCipher(t, ORE, 4, 256)

	left, err := c.EncryptLeftUint32(0xFFFFFFFF)
	require.NoError(t, err)
	right, err := c.EncryptRightUint32(rand.Reader, 0xFFFFFFFF)
	require.NoError(t, err)

	got, err := c.Compare(left, right)
	require.NoError(t, err)
	require.Equal(t, 0, got)
}

func TestCompareZeroVsMax(t *testing.T) {
	c := testCipher(t, ORE, 4, 256)

	left, err := c.EncryptLeftUint32(0)
	require.NoError(t, err)
	right, err := c.EncryptRightUint32(rand.Reader, 0xFFFFFFFF)
	require.NoError(t, err)

	got, err := c.Compare(left, right)
	require.NoError(t, err)
	require.Equal(t, 1, got)
}

func TestCompareEREEqualAndNotEqual(t *testing.T) {
	c := testCipher(t, ERE, 1, 256)

	left, err := c.EncryptLeftUint8(7)
	require.NoError(t, err)

	rightSame, err := c.EncryptRightUint32(rand.Reader, 7)
	require.NoError(t, err)
	rightDiff, err := c.EncryptRightUint32(rand.Reader, 8)
	require.NoError(t, err)

	got, err := c.Compare(left, rightSame)
	require.NoError(t, err)
	require.Equal(t, 0, got)

	got, err = c.Compare(left, rightDiff)
	require.NoError(t, err)
	require.Equal(t, 1, got)
}

func TestCompareReflexive(t *testing.T) {
	c := testCipher(t, ORE, 4, 256)
	mr := mrand.New(mrand.NewSource(1))

	for i := 0; i < 50; i++ {
		v := mr.Uint32()
		left, err := c.EncryptLeftUint32(v)
		require.NoError(t, err)
		right, err := c.EncryptRightUint32(rand.Reader, v)
		require.NoError(t, err)

		got, err := c.Compare(left, right)
		require.NoError(t, err)
		require.Equal(t, 0, got)
	}
}

func TestCompareAntisymmetricAndTransitive(t *testing.T) {
	c := testCipher(t, ORE, 4, 256)
	mr := mrand.New(mrand.NewSource(2))

	for trial := 0; trial < 100; trial++ {
		a := mr.Uint32()
		b := mr.Uint32()

		la, err := c.EncryptLeftUint32(a)
		require.NoError(t, err)
		ra, err := c.EncryptRightUint32(rand.Reader, a)
		require.NoError(t, err)
		lb, err := c.EncryptLeftUint32(b)
		require.NoError(t, err)
		rb, err := c.EncryptRightUint32(rand.Reader, b)
		require.NoError(t, err)

		ab, err := c.Compare(la, rb)
		require.NoError(t, err)
		ba, err := c.Compare(lb, ra)
		require.NoError(t, err)

		switch {
		case a < b:
			require.Equal(t, 1, ab)
			require.Equal(t, 2, ba)
		case a > b:
			require.Equal(t, 2, ab)
			require.Equal(t, 1, ba)
		default:
			require.Equal(t, 0, ab)
			require.Equal(t, 0, ba)
		}
	}
}

func TestSortByComparisonMatchesPlaintextOrder(t *testing.T) {
	c := testCipher(t, ORE, 4, 256)
	mr := mrand.New(mrand.NewSource(3))

	const count = 1000
	values := make([]uint32, count)
	for i := range values {
		values[i] = mr.Uint32()
	}

	type item struct {
		v    uint32
		full FullCipherText
	}
	items := make([]item, count)
	for i, v := range values {
		full, err := c.EncryptFullUint32(rand.Reader, v)
		require.NoError(t, err)
		items[i] = item{v: v, full: full}
	}

	sort.Slice(items, func(i, j int) bool {
		got, err := c.Compare(items[i].full.Left, items[j].full.Right)
		require.NoError(t, err)
		return got == 1
	})

	for i := 1; i < len(items); i++ {
		require.LessOrEqual(t, items[i-1].v, items[i].v)
	}
}

func TestCloseZeroizesAndRejectsFurtherUse(t *testing.T) {
	key := newTestKey(t)
	c, err := New(key, ORE, 4, 256)
	require.NoError(t, err)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close()) // idempotent

	_, err = c.EncryptLeftUint32(1)
	require.ErrorIs(t, err, ErrClosed)
}

func TestCompareRejectsShapeMismatch(t *testing.T) {
	c4 := testCipher(t, ORE, 4, 256)
	c2 := testCipher(t, ORE, 2, 256)

	left, err := c4.EncryptLeftUint32(1)
	require.NoError(t, err)
	right, err := c2.EncryptRightUint32(rand.Reader, 1)
	require.NoError(t, err)

	_, err = c4.Compare(left, right)
	require.True(t, IsShapeMismatch(err))
}

func TestNewRejectsInvalidShape(t *testing.T) {
	key := newTestKey(t)
	_, err := New(key, ORE, 0, 256)
	require.True(t, IsInvalidShape(err))

	_, err = New(key, ORE, 4, 1)
	require.True(t, IsInvalidShape(err))

	_, err = New(key, ORE, 16, 256)
	require.True(t, IsInvalidShape(err))
}

func TestNewRejectsNilComparator(t *testing.T) {
	key := newTestKey(t)
	_, err := New(key, nil, 4, 256)
	require.Error(t, err)
}
