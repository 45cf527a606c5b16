package cre

import "hash/fnv"

// Comparator is the pure, total function δ plus its arity M.
// Implementations MUST be side-effect free: Apply is called once per
// block of every encryption and comparison.
type Comparator interface {
	// Arity returns M, the size of δ's output range {0,...,M-1}.
	Arity() int

	// Apply computes δ(a, b) for two digits in [0, W). Both a and b
	// are guaranteed to be in range by the caller.
	Apply(a, b int) int

	// ID identifies the comparator for subkey domain separation. It is
	// folded to one identity byte (see comparatorIdentityByte), and two
	// Cipher instances at the same (N, W) share subkeys exactly when
	// their comparators' identity bytes are equal: distinct custom IDs
	// can fold to the same byte. The built-in ERE and ORE comparators
	// return stable, reserved IDs whose bytes no custom ID folds to.
	ID() string
}

// ereComparator is the ERE specialization: M=2,
// δ(a,b) = 0 if a=b else 1.
type ereComparator struct{}

func (ereComparator) Arity() int      { return 2 }
func (ereComparator) Apply(a, b int) int {
	if a == b {
		return 0
	}
	return 1
}
func (ereComparator) ID() string { return "ere" }

// oreComparator is the ORE specialization: M=3,
// δ(a,b) = 1 if a<b, 0 if a=b, 2 if a>b.
type oreComparator struct{}

func (oreComparator) Arity() int { return 3 }
func (oreComparator) Apply(a, b int) int {
	switch {
	case a < b:
		return 1
	case a > b:
		return 2
	default:
		return 0
	}
}
func (oreComparator) ID() string { return "ore" }

// ERE is the shared equality comparator instance.
var ERE Comparator = ereComparator{}

// ORE is the shared order comparator instance.
var ORE Comparator = oreComparator{}

// comparatorIdentityByte folds a Comparator's ID into the single byte
// used for subkey domain separation. The two built-in
// comparators get their reserved constants so the wire contract's
// documented tag bytes stay stable across versions of this package;
// any other ID (a custom comparator) is folded down with FNV-1a, which
// is good enough for domain separation (not for cryptographic binding
// — the root key and AES-128 PRF provide that).
func comparatorIdentityByte(c Comparator) byte {
	switch c.ID() {
	case "ere":
		return comparatorIDERE
	case "ore":
		return comparatorIDORE
	default:
		h := fnv.New32a()
		_, _ = h.Write([]byte(c.ID()))
		sum := h.Sum32()
		b := byte(sum)
		if b == comparatorIDERE || b == comparatorIDORE {
			// Avoid accidental collision with the reserved IDs.
			b ^= 0xFF
		}
		return b
	}
}
