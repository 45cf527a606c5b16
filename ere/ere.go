// Package ere is the equality-revealing encryption facility of the
// comparison-revealing encryption core: a thin Cipher
// wrapper fixed to the ERE comparator (M=2, δ(a,b) = 0 if a=b else 1),
// mapping its residues onto cre.EqualityResult.
package ere

import (
	"io"

	"github.com/lewiwu/cre"
)

// Plaintext is the N-digit base-W decomposition encrypted by a Cipher.
type Plaintext = cre.Plaintext

// FromUint8 decomposes v into a Plaintext<N,W>.
func FromUint8(v uint8, n, w int) (Plaintext, error) { return cre.PlaintextFromUint8(v, n, w) }

// FromUint16 decomposes v into a Plaintext<N,W>.
func FromUint16(v uint16, n, w int) (Plaintext, error) { return cre.PlaintextFromUint16(v, n, w) }

// FromUint32 decomposes v into a Plaintext<N,W>.
func FromUint32(v uint32, n, w int) (Plaintext, error) { return cre.PlaintextFromUint32(v, n, w) }

// FromUint64 decomposes v into a Plaintext<N,W>.
func FromUint64(v uint64, n, w int) (Plaintext, error) { return cre.PlaintextFromUint64(v, n, w) }

// Cipher encrypts and compares values under the ERE relation.
type Cipher struct {
	inner *cre.Cipher
}

// New builds an ERE Cipher over shape (n, w), deriving its keys from rootKey.
func New(rootKey []byte, n, w int) (*Cipher, error) {
	inner, err := cre.New(rootKey, cre.ERE, n, w)
	if err != nil {
		return nil, err
	}
	return &Cipher{inner: inner}, nil
}

// Close zeroizes the Cipher's derived key material. Idempotent.
func (c *Cipher) Close() error { return c.inner.Close() }

// Shape reports the (N, W) this Cipher was constructed with.
func (c *Cipher) Shape() (n, w int) { return c.inner.Shape() }

// LeftCipherText is the deterministic left ciphertext.
type LeftCipherText struct{ inner cre.LeftCipherText }

// RightCipherText is the randomized right ciphertext.
type RightCipherText struct{ inner cre.RightCipherText }

// CipherText pairs a LeftCipherText and RightCipherText from the same plaintext.
type CipherText struct{ inner cre.FullCipherText }

// EncryptLeft produces the deterministic left ciphertext for pt.
func (c *Cipher) EncryptLeft(pt Plaintext) (LeftCipherText, error) {
	l, err := c.inner.EncryptLeft(pt)
	return LeftCipherText{inner: l}, err
}

// EncryptRight produces a randomized right ciphertext for pt, drawing its nonce from rng.
func (c *Cipher) EncryptRight(rng io.Reader, pt Plaintext) (RightCipherText, error) {
	r, err := c.inner.EncryptRight(rng, pt)
	return RightCipherText{inner: r}, err
}

// EncryptFull produces a CipherText for pt usable as either side of a comparison.
func (c *Cipher) EncryptFull(rng io.Reader, pt Plaintext) (CipherText, error) {
	f, err := c.inner.EncryptFull(rng, pt)
	return CipherText{inner: f}, err
}

// EncryptLeftUint32 decomposes v into this Cipher's shape and encrypts it left.
func (c *Cipher) EncryptLeftUint32(v uint32) (LeftCipherText, error) {
	l, err := c.inner.EncryptLeftUint32(v)
	return LeftCipherText{inner: l}, err
}

// EncryptLeftUint64 decomposes v into this Cipher's shape and encrypts it left.
func (c *Cipher) EncryptLeftUint64(v uint64) (LeftCipherText, error) {
	l, err := c.inner.EncryptLeftUint64(v)
	return LeftCipherText{inner: l}, err
}

// EncryptRightUint32 decomposes v into this Cipher's shape and encrypts it right.
func (c *Cipher) EncryptRightUint32(rng io.Reader, v uint32) (RightCipherText, error) {
	r, err := c.inner.EncryptRightUint32(rng, v)
	return RightCipherText{inner: r}, err
}

// EncryptRightUint64 decomposes v into this Cipher's shape and encrypts it right.
func (c *Cipher) EncryptRightUint64(rng io.Reader, v uint64) (RightCipherText, error) {
	r, err := c.inner.EncryptRightUint64(rng, v)
	return RightCipherText{inner: r}, err
}

// EncryptFullUint32 decomposes v into this Cipher's shape and produces a CipherText.
func (c *Cipher) EncryptFullUint32(rng io.Reader, v uint32) (CipherText, error) {
	f, err := c.inner.EncryptFullUint32(rng, v)
	return CipherText{inner: f}, err
}

// EncryptFullUint64 decomposes v into this Cipher's shape and produces a CipherText.
func (c *Cipher) EncryptFullUint64(rng io.Reader, v uint64) (CipherText, error) {
	f, err := c.inner.EncryptFullUint64(rng, v)
	return CipherText{inner: f}, err
}

// Compare reports whether the plaintext behind left equals the
// plaintext behind right.
func (c *Cipher) Compare(left LeftCipherText, right RightCipherText) (cre.EqualityResult, error) {
	residue, err := c.inner.Compare(left.inner, right.inner)
	if err != nil {
		return 0, err
	}
	switch residue {
	case 0:
		return cre.IsEqual, nil
	case 1:
		return cre.IsNotEqual, nil
	default:
		return 0, &cre.InvalidCiphertextError{Reason: "unexpected ERE comparison residue"}
	}
}

// Left returns ct's left half, usable with another ciphertext's right half.
func (ct CipherText) Left() LeftCipherText { return LeftCipherText{inner: ct.inner.Left} }

// Right returns ct's right half, usable with another ciphertext's left half.
func (ct CipherText) Right() RightCipherText { return RightCipherText{inner: ct.inner.Right} }

// MarshalBinary implements encoding.BinaryMarshaler.
func (ct LeftCipherText) MarshalBinary() ([]byte, error) { return ct.inner.MarshalBinary() }

// MarshalBinary implements encoding.BinaryMarshaler.
func (ct RightCipherText) MarshalBinary() ([]byte, error) { return ct.inner.MarshalBinary() }

// MarshalBinary implements encoding.BinaryMarshaler.
func (ct CipherText) MarshalBinary() ([]byte, error) { return ct.inner.MarshalBinary() }

// UnmarshalLeftCipherText decodes bytes produced by LeftCipherText.MarshalBinary.
func UnmarshalLeftCipherText(data []byte) (LeftCipherText, error) {
	inner, err := cre.UnmarshalLeftCipherText(data)
	return LeftCipherText{inner: inner}, err
}

// UnmarshalRightCipherText decodes bytes produced by RightCipherText.MarshalBinary.
func UnmarshalRightCipherText(data []byte) (RightCipherText, error) {
	inner, err := cre.UnmarshalRightCipherText(data)
	return RightCipherText{inner: inner}, err
}

// UnmarshalCipherText decodes bytes produced by CipherText.MarshalBinary.
func UnmarshalCipherText(data []byte) (CipherText, error) {
	inner, err := cre.UnmarshalFullCipherText(data)
	return CipherText{inner: inner}, err
}
