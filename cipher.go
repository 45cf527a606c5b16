package cre

import "io"

// Cipher is the comparison-revealing encryption engine: it
// binds a root key to one (Comparator, N, W) shape and produces
// left/right/full ciphertexts that compare correctly under the
// comparator's δ. A Cipher is safe for concurrent EncryptLeft/Compare;
// EncryptRight/EncryptFull require the caller's io.Reader to be safe
// for the concurrency the caller uses it with.
type Cipher struct {
	comparator Comparator
	n, w, m    int
	keys       *keyHierarchy
	perms      []permutation // index 0 is block 1, ..., index n-1 is block n
	closed     bool
}

// New builds a Cipher over shape (n, w) using comparator, deriving its
// key hierarchy from rootKey. rootKey is not retained by reference
// beyond derivation; the derived subkeys are held in protected memory
// and wiped on Close. This is the generic entry point; the ore and ere
// packages wrap it with their own fixed comparator.
func New(rootKey []byte, comparator Comparator, n, w int) (*Cipher, error) {
	if err := validateShape(n, w); err != nil {
		return nil, err
	}
	if comparator == nil {
		return nil, &InvalidShapeError{N: n, W: w, Message: "comparator must not be nil"}
	}

	compID := comparatorIdentityByte(comparator)
	keys, err := newKeyHierarchy(rootKey, aes128v1, compID, n, w)
	if err != nil {
		return nil, err
	}

	perms := make([]permutation, n)
	for i := 1; i <= n; i++ {
		perms[i-1] = buildPermutation(keys.prfPi, i, w)
	}

	return &Cipher{
		comparator: comparator,
		n:          n,
		w:          w,
		m:          comparator.Arity(),
		keys:       keys,
		perms:      perms,
	}, nil
}

// Close zeroizes the Cipher's derived key material. Idempotent: a
// second and later call is a no-op returning nil, matching the
// closed-handle guards the rest of this package's error design assumes
// (every operation after Close returns ErrClosed instead of panicking).
func (c *Cipher) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.keys.destroy()
	return nil
}

// Shape reports the (N, W) this Cipher was constructed with.
func (c *Cipher) Shape() (n, w int) {
	return c.n, c.w
}

func (c *Cipher) checkShape(pt Plaintext) error {
	if pt.n != c.n || pt.w != c.w {
		return &InvalidShapeError{N: pt.n, W: pt.w, Message: "plaintext shape does not match cipher shape"}
	}
	return nil
}

// computeF evaluates F_i = PRF(K_F, prefix_i(digits)) for every block,
// used identically for left ciphertexts and for the F_i′ term inside
// right ciphertexts.
func (c *Cipher) computeF(digits []int) [][16]byte {
	f := make([][16]byte, c.n)
	for i := 1; i <= c.n; i++ {
		f[i-1] = c.keys.prfF.evaluate(encodePrefixInput(i, digits[:i-1]))
	}
	return f
}

// EncryptLeft produces the deterministic left ciphertext for pt.
func (c *Cipher) EncryptLeft(pt Plaintext) (LeftCipherText, error) {
	if c.closed {
		return LeftCipherText{}, ErrClosed
	}
	if err := c.checkShape(pt); err != nil {
		return LeftCipherText{}, err
	}

	f := c.computeF(pt.digits)
	p := make([]int, c.n)
	for i := 0; i < c.n; i++ {
		p[i] = c.perms[i].apply(pt.digits[i])
	}
	return LeftCipherText{n: c.n, w: c.w, f: f, p: p}, nil
}

// EncryptRight produces a randomized right ciphertext for pt, drawing
// a fresh 16-byte nonce from rng. rng failures are reported as
// RngFailureError, never silently retried.
func (c *Cipher) EncryptRight(rng io.Reader, pt Plaintext) (RightCipherText, error) {
	if c.closed {
		return RightCipherText{}, ErrClosed
	}
	if err := c.checkShape(pt); err != nil {
		return RightCipherText{}, err
	}

	var nonce [16]byte
	if _, err := io.ReadFull(rng, nonce[:]); err != nil {
		return RightCipherText{}, &RngFailureError{Err: err}
	}

	f := c.computeF(pt.digits)
	v := c.buildRightVectors(f, nonce, pt.digits)
	return RightCipherText{n: c.n, w: c.w, m: c.m, nonce: nonce, v: v}, nil
}

// EncryptFull produces a FullCipherText for pt: a LeftCipherText and a
// RightCipherText sharing the same F-values and nonce.
func (c *Cipher) EncryptFull(rng io.Reader, pt Plaintext) (FullCipherText, error) {
	if c.closed {
		return FullCipherText{}, ErrClosed
	}
	if err := c.checkShape(pt); err != nil {
		return FullCipherText{}, err
	}

	var nonce [16]byte
	if _, err := io.ReadFull(rng, nonce[:]); err != nil {
		return FullCipherText{}, &RngFailureError{Err: err}
	}

	f := c.computeF(pt.digits)
	p := make([]int, c.n)
	for i := 0; i < c.n; i++ {
		p[i] = c.perms[i].apply(pt.digits[i])
	}
	v := c.buildRightVectors(f, nonce, pt.digits)

	return FullCipherText{
		Left:  LeftCipherText{n: c.n, w: c.w, f: f, p: p},
		Right: RightCipherText{n: c.n, w: c.w, m: c.m, nonce: nonce, v: v},
	}, nil
}

// buildRightVectors computes v_i[j] = (δ(π_i⁻¹(j), y_i) + H(F_i′, r, i,
// j)) mod M for every block and every j in [0,W).
func (c *Cipher) buildRightVectors(f [][16]byte, nonce [16]byte, digits []int) [][]int {
	v := make([][]int, c.n)
	for i := 1; i <= c.n; i++ {
		perm := c.perms[i-1]
		vec := make([]int, c.w)
		for j := 0; j < c.w; j++ {
			a := perm.applyInverse(j)
			delta := c.comparator.Apply(a, digits[i-1])
			h := c.keys.hashH.evaluate(encodeHashMessage(f[i-1], nonce, i, j), c.m)
			vec[j] = (delta + h) % c.m
		}
		v[i-1] = vec
	}
	return v
}

// Compare implements the comparison algorithm: it walks blocks
// from i=1, recovering δ(x_i,y_i) at each one under the assumption that
// every earlier block's digits matched (which is true until the first
// real difference, since matching digits imply matching prefixes for
// the next block). The first nonzero residue is the answer; if every
// block recovers zero, the plaintexts are equal.
func (c *Cipher) Compare(left LeftCipherText, right RightCipherText) (int, error) {
	if c.closed {
		return 0, ErrClosed
	}
	if left.n != c.n || left.w != c.w || right.n != c.n || right.w != c.w || right.m != c.m {
		return 0, &ShapeMismatchError{
			Left:  shape{N: left.n, W: left.w, M: c.m},
			Right: shape{N: right.n, W: right.w, M: right.m},
		}
	}

	for i := 0; i < c.n; i++ {
		h := c.keys.hashH.evaluate(encodeHashMessage(left.f[i], right.nonce, i+1, left.p[i]), c.m)
		residue := ((right.v[i][left.p[i]] - h) % c.m + c.m) % c.m
		if residue != 0 {
			return residue, nil
		}
	}
	return 0, nil
}

// EncryptLeftUint8 decomposes v into this Cipher's shape and encrypts it left.
func (c *Cipher) EncryptLeftUint8(v uint8) (LeftCipherText, error) {
	pt, err := PlaintextFromUint8(v, c.n, c.w)
	if err != nil {
		return LeftCipherText{}, err
	}
	return c.EncryptLeft(pt)
}

// EncryptLeftUint16 decomposes v into this Cipher's shape and encrypts it left.
func (c *Cipher) EncryptLeftUint16(v uint16) (LeftCipherText, error) {
	pt, err := PlaintextFromUint16(v, c.n, c.w)
	if err != nil {
		return LeftCipherText{}, err
	}
	return c.EncryptLeft(pt)
}

// EncryptLeftUint32 decomposes v into this Cipher's shape and encrypts it left.
func (c *Cipher) EncryptLeftUint32(v uint32) (LeftCipherText, error) {
	pt, err := PlaintextFromUint32(v, c.n, c.w)
	if err != nil {
		return LeftCipherText{}, err
	}
	return c.EncryptLeft(pt)
}

// EncryptLeftUint64 decomposes v into this Cipher's shape and encrypts it left.
func (c *Cipher) EncryptLeftUint64(v uint64) (LeftCipherText, error) {
	pt, err := PlaintextFromUint64(v, c.n, c.w)
	if err != nil {
		return LeftCipherText{}, err
	}
	return c.EncryptLeft(pt)
}

// EncryptRightUint32 decomposes v into this Cipher's shape and encrypts it right.
func (c *Cipher) EncryptRightUint32(rng io.Reader, v uint32) (RightCipherText, error) {
	pt, err := PlaintextFromUint32(v, c.n, c.w)
	if err != nil {
		return RightCipherText{}, err
	}
	return c.EncryptRight(rng, pt)
}

// EncryptRightUint64 decomposes v into this Cipher's shape and encrypts it right.
func (c *Cipher) EncryptRightUint64(rng io.Reader, v uint64) (RightCipherText, error) {
	pt, err := PlaintextFromUint64(v, c.n, c.w)
	if err != nil {
		return RightCipherText{}, err
	}
	return c.EncryptRight(rng, pt)
}

// EncryptFullUint32 decomposes v into this Cipher's shape and produces a full ciphertext.
func (c *Cipher) EncryptFullUint32(rng io.Reader, v uint32) (FullCipherText, error) {
	pt, err := PlaintextFromUint32(v, c.n, c.w)
	if err != nil {
		return FullCipherText{}, err
	}
	return c.EncryptFull(rng, pt)
}

// EncryptFullUint64 decomposes v into this Cipher's shape and produces a full ciphertext.
func (c *Cipher) EncryptFullUint64(rng io.Reader, v uint64) (FullCipherText, error) {
	pt, err := PlaintextFromUint64(v, c.n, c.w)
	if err != nil {
		return FullCipherText{}, err
	}
	return c.EncryptFull(rng, pt)
}
