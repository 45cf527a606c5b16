package cre

import (
	"bytes"
	"encoding/binary"
	"sort"
)

// permutation is π_{K_π,i} for one block index i: a permutation of
// [0,W) realized by sorting [0,W) under the keyed comparator
// PRF(K_π, encode(i,a)) < PRF(K_π, encode(i,b)). forward[x] is
// π(x); inverse[p] is π^-1(p). Both directions are precomputed once at
// Cipher construction since W is bounded by 256.
type permutation struct {
	forward []int
	inverse []int
}

// buildPermutation derives the permutation for block index i (1-based,
//) under the keyed PRF p, over a domain of size w.
func buildPermutation(p *prf, i int, w int) permutation {
	keys := make([][16]byte, w)
	for x := 0; x < w; x++ {
		keys[x] = p.evaluate(encodePermInput(i, x))
	}

	order := make([]int, w)
	for x := range order {
		order[x] = x
	}
	sort.SliceStable(order, func(a, b int) bool {
		ka, kb := keys[order[a]], keys[order[b]]
		return bytes.Compare(ka[:], kb[:]) < 0
	})

	forward := make([]int, w)
	inverse := make([]int, w)
	for rank, x := range order {
		forward[x] = rank
		inverse[rank] = x
	}
	return permutation{forward: forward, inverse: inverse}
}

// encodePermInput builds the 16-byte PRF input for permutation block i,
// digit x: i as u16LE, x as a single byte (W<=256 so one byte is
// exact), zero-padded for the remaining 13 bytes.
func encodePermInput(i, x int) [16]byte {
	var in [16]byte
	binary.LittleEndian.PutUint16(in[0:2], uint16(i))
	in[2] = byte(x)
	return in
}

func (perm permutation) apply(x int) int        { return perm.forward[x] }
func (perm permutation) applyInverse(p int) int { return perm.inverse[p] }

// maxPrefixDigits is how many preceding digits prefix_i can hold
// losslessly in a 16-byte PRF input block: 2 bytes for i, one byte
// per digit, leaves 14 bytes.
const maxPrefixDigits = 14

// encodePrefixInput builds the 16-byte PRF input for prefix_i(x): i as
// u16LE followed by the most recent maxPrefixDigits of the preceding
// digits, zero-padded. N is capped at maxN=15 at Cipher construction,
// so preceding never actually exceeds maxPrefixDigits; the truncation
// here is a documented fallback, not a silent one.
func encodePrefixInput(i int, preceding []int) [16]byte {
	var in [16]byte
	binary.LittleEndian.PutUint16(in[0:2], uint16(i))
	start := 0
	if len(preceding) > maxPrefixDigits {
		start = len(preceding) - maxPrefixDigits
	}
	for idx, d := range preceding[start:] {
		in[2+idx] = byte(d)
	}
	return in
}
