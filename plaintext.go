package cre

// Plaintext is the N-digit base-W decomposition: digits[0] is
// x_1, the most significant digit; digits[N-1] is x_N, the least
// significant. Every digit is in [0, W).
type Plaintext struct {
	digits []int
	n, w   int
}

// Digits returns the plaintext's digit sequence, x_1 first. The
// returned slice is owned by the caller; mutating it does not affect
// the Plaintext.
func (p Plaintext) Digits() []int {
	out := make([]int, len(p.digits))
	copy(out, p.digits)
	return out
}

// NewPlaintext builds a Plaintext from an explicit digit sequence,
// validating length and range against (n, w).
func NewPlaintext(digits []int, n, w int) (Plaintext, error) {
	if err := validateShape(n, w); err != nil {
		return Plaintext{}, err
	}
	if err := validateDigits(digits, w); err != nil {
		return Plaintext{}, err
	}
	if len(digits) != n {
		return Plaintext{}, &InvalidShapeError{N: n, W: w, Message: "digit count does not match N"}
	}
	out := make([]int, n)
	copy(out, digits)
	return Plaintext{digits: out, n: n, w: w}, nil
}

// decomposeBaseW splits v into n base-w digits, most significant
// first, rejecting any v that does not fit in n digits (v >= w^n).
// The range check is done via the leftover remainder after n
// divisions rather than precomputing w^n, which would overflow
// uint64 for the larger (n, w) shapes this package allows.
func decomposeBaseW(v uint64, n, w int) ([]int, error) {
	digits := make([]int, n)
	rem := v
	wu := uint64(w)
	for i := n - 1; i >= 0; i-- {
		digits[i] = int(rem % wu)
		rem /= wu
	}
	if rem != 0 {
		return nil, &ValueOutOfRangeError{Value: v, N: n, W: w}
	}
	return digits, nil
}

// recomposeBaseW is the inverse of decomposeBaseW: it folds a digit
// sequence back into the integer it encodes. Callers are responsible
// for ensuring the result fits the integer width they want back.
func recomposeBaseW(digits []int, w int) uint64 {
	var v uint64
	wu := uint64(w)
	for _, d := range digits {
		v = v*wu + uint64(d)
	}
	return v
}

// PlaintextFromUint8 decomposes v into a Plaintext<N,W>.
func PlaintextFromUint8(v uint8, n, w int) (Plaintext, error) {
	return plaintextFromUint64(uint64(v), n, w)
}

// PlaintextFromUint16 decomposes v into a Plaintext<N,W>.
func PlaintextFromUint16(v uint16, n, w int) (Plaintext, error) {
	return plaintextFromUint64(uint64(v), n, w)
}

// PlaintextFromUint32 decomposes v into a Plaintext<N,W>.
func PlaintextFromUint32(v uint32, n, w int) (Plaintext, error) {
	return plaintextFromUint64(uint64(v), n, w)
}

// PlaintextFromUint64 decomposes v into a Plaintext<N,W>.
func PlaintextFromUint64(v uint64, n, w int) (Plaintext, error) {
	return plaintextFromUint64(v, n, w)
}

func plaintextFromUint64(v uint64, n, w int) (Plaintext, error) {
	if err := validateShape(n, w); err != nil {
		return Plaintext{}, err
	}
	digits, err := decomposeBaseW(v, n, w)
	if err != nil {
		return Plaintext{}, err
	}
	return Plaintext{digits: digits, n: n, w: w}, nil
}

// Uint64 recomposes the plaintext's digits into an integer by folding
// v*w+digit, the decomposition's inverse. No range check is made: for
// a shape whose values exceed 64 bits the result wraps modulo 2^64.
func (p Plaintext) Uint64() uint64 {
	return recomposeBaseW(p.digits, p.w)
}
