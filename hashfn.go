package cre

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
)

// hashFn is H: a keyed MAC (CMAC-AES-128) over a canonical byte
// encoding, reduced to {0,...,M-1} by bias-bounded rejection sampling.
// The CMAC machinery (subkey generation, GF(2^128) doubling,
// 10*-padding, CBC-MAC) is the same construction an S2V synthetic-IV
// scheme builds on, repurposed here to mask a comparator payload
// instead of synthesizing an IV.
type hashFn struct {
	block  cipher.Block
	k1, k2 [16]byte // CMAC subkeys, generated once per key
}

// newHashFn builds a hashFn keyed by a 16-byte key.
func newHashFn(key []byte) (*hashFn, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	k1, k2 := cmacSubkeys(block)
	return &hashFn{block: block, k1: k1, k2: k2}, nil
}

// evaluate computes H(key, msg) -> {0,...,m-1} with a uniform
// distribution to within the block cipher's security bound. msg is
// the canonical encoding the caller built (for right-ciphertext block
// i, the 34-byte (F_i', r, i, j) message of the wire contract).
func (h *hashFn) evaluate(msg []byte, m int) int {
	if m <= 0 {
		panic("cre: hashFn arity must be positive")
	}
	// Largest multiple of m that is at most 256, so the retained byte
	// range [0,limit) maps onto {0,...,m-1} with zero bias.
	// m is always small (2 or 3 for the shipped comparators; custom
	// comparators are expected to stay well under 256), so this never
	// degenerates to an always-reject loop.
	limit := 256 - (256 % m)

	buf := make([]byte, len(msg)+1)
	copy(buf, msg)
	var last int
	for attempt := 0; attempt < 256; attempt++ {
		buf[len(msg)] = byte(attempt)
		mac := h.cmac(buf)
		last = int(mac[len(mac)-1])
		if last < limit {
			return last % m
		}
	}
	// Reached only if all 256 attempts are rejected, which has negligible
	// probability since at least half the byte range is always retained;
	// kept as a defensive fallback rather than a panic.
	return last % m
}

// encodeHashMessage builds the 34-byte CMAC message for right-ciphertext
// block i, entry j: F_i′(16B) ‖ r(16B) ‖ i(u8) ‖ j(u8).
func encodeHashMessage(f, nonce [16]byte, i, j int) []byte {
	msg := make([]byte, 34)
	copy(msg[0:16], f[:])
	copy(msg[16:32], nonce[:])
	msg[32] = byte(i)
	msg[33] = byte(j)
	return msg
}

// cmac computes CMAC-AES-128(key, data) per NIST SP 800-38B / RFC 4493.
func (h *hashFn) cmac(data []byte) [16]byte {
	n := (len(data) + 15) / 16
	if n == 0 {
		n = 1
	}

	var lastBlock [16]byte
	if len(data) != 0 && len(data)%16 == 0 {
		copy(lastBlock[:], data[16*(n-1):])
		xorInto(lastBlock[:], h.k1[:])
	} else {
		copy(lastBlock[:], pad10star(data[16*(n-1):]))
		xorInto(lastBlock[:], h.k2[:])
	}

	var mac [16]byte
	for i := 0; i < n-1; i++ {
		chunk := data[i*16 : (i+1)*16]
		xorInto(mac[:], chunk)
		h.block.Encrypt(mac[:], mac[:])
	}
	xorInto(mac[:], lastBlock[:])
	h.block.Encrypt(mac[:], mac[:])
	return mac
}

// cmacSubkeys derives the CMAC subkeys K1, K2 from block per RFC 4493 §2.3.
func cmacSubkeys(block cipher.Block) (k1, k2 [16]byte) {
	var l [16]byte
	block.Encrypt(l[:], l[:])
	k1 = gf128Double(l)
	k2 = gf128Double(k1)
	return k1, k2
}

// gf128Double implements the doubling operation in GF(2^128) (RFC 4493's "dbl").
func gf128Double(in [16]byte) [16]byte {
	var out [16]byte
	carry := uint64(0)
	for i := 0; i < 2; i++ {
		offset := (1 - i) * 8
		val := binary.BigEndian.Uint64(in[offset : offset+8])
		newVal := (val << 1) | carry
		binary.BigEndian.PutUint64(out[offset:offset+8], newVal)
		carry = val >> 63
	}
	if carry != 0 {
		out[15] ^= 0x87
	}
	return out
}

// pad10star applies the 10* padding CMAC uses for incomplete final blocks.
func pad10star(block []byte) []byte {
	out := make([]byte, 16)
	copy(out, block)
	out[len(block)] = 0x80
	return out
}

// xorInto XORs src into dst in place, up to the shorter length.
func xorInto(dst, src []byte) {
	for i := 0; i < len(dst) && i < len(src); i++ {
		dst[i] ^= src[i]
	}
}
