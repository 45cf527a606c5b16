// Package cre implements the Lewi–Wu comparison-revealing encryption
// (CRE) construction: a secret-key scheme whose ciphertexts can be
// compared pairwise under a chosen relation (equality, order, or a
// custom comparator) and yield exactly the comparison of the
// underlying plaintexts, leaking nothing else.
//
// # Overview
//
// A plaintext is a fixed-length sequence of digits in a fixed radix W
// (N digits total). Encrypting it produces either:
//
//   - a LeftCipherText: deterministic, carries a permuted digit and a
//     PRF tag per block;
//   - a RightCipherText: randomized, carries a masked comparator
//     payload per block; or
//   - a FullCipherText: both halves sharing one nonce.
//
// Comparing a LeftCipherText against a RightCipherText recovers the
// comparator's answer at the first position where the two plaintexts
// diverge (or the last position, if they are equal).
//
// This package exposes the generic engine and the building blocks
// (PRF, HashFn, key hierarchy, permutation, comparator interface).
// The ore and ere subpackages wrap it with the two named
// specializations: order-revealing and equality-revealing encryption.
//
// # Basic usage
//
//	rootKey := make([]byte, 16)
//	if _, err := rand.Read(rootKey); err != nil {
//	    panic(err)
//	}
//
//	c, err := ore.New(rootKey, 4, 256) // N=4 digits, W=256 radix
//	if err != nil {
//	    panic(err)
//	}
//	defer c.Close()
//
//	left, _ := c.EncryptLeftUint32(42)
//	right, _ := c.EncryptRightUint32(rand.Reader, 9001)
//	result, _ := c.Compare(left, right) // cre.Less
//
// # Security considerations
//
// Protected against: recovering anything about two plaintexts beyond
// the relation the chosen comparator reveals, assuming the underlying
// block cipher and MAC are secure and nonces are never reused across
// distinct RightCipherText encryptions under the same key.
//
// Not protected against: side channels beyond the block cipher's own
// guarantees, leakage inherent to the comparator itself (an order
// comparison always reveals order), or misuse of the root key outside
// this package (it is the caller's responsibility to generate it with
// a cryptographically secure RNG; Cipher.Close zeroizes the three
// derived subkeys K_F, K_H and K_π, but not the AES key schedules or
// CMAC subkeys built from them).
//
// # Key derivation
//
// All subkeys are derived from the 16-byte root key with the AES-128
// PRF under suite-fixed domain-separation tags. Two Cipher instances
// constructed with different shapes never share subkeys; two with the
// same shape share them exactly when their comparators fold to the same
// identity byte, which ERE, ORE and a custom comparator never do, but
// two distinct custom comparator IDs can.
//
// # Not provided
//
// This package does not encrypt or authenticate arbitrary payload
// bytes (no AEAD), does not perform ordered storage or indexing, and
// does not protect against the leakage inherent to the comparator the
// caller chose.
package cre
