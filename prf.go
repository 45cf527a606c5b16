package cre

import (
	"crypto/aes"
	"crypto/cipher"
)

// prf is the small-domain pseudorandom function: a 128-bit
// block, 128-bit key PRP (AES-128) used as a PRF. It is deterministic,
// returns no error, and never exposes its key through its public
// surface — the only way to use it is evaluate.
type prf struct {
	block cipher.Block
}

// newPRF builds a prf keyed by a 16-byte key. The caller retains
// ownership of key; newPRF does not retain a reference to it.
func newPRF(key []byte) (*prf, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		// aes.NewCipher only fails on bad key length, already checked above.
		return nil, err
	}
	return &prf{block: block}, nil
}

// evaluate computes PRF(key, input) -> a fresh 16-byte output. input
// must be exactly 16 bytes (the block cipher's block size); callers
// build this encoding themselves (prefix_i, permutation inputs, key
// hierarchy tags all fit naturally in one block).
func (p *prf) evaluate(input [16]byte) [16]byte {
	var out [16]byte
	p.block.Encrypt(out[:], input[:])
	return out
}

// evaluateOnce is a convenience for one-shot PRF evaluation without
// retaining a keyed prf instance, used by the key hierarchy where each
// subkey is derived once from the root key.
func evaluateOnce(key []byte, input [16]byte) ([16]byte, error) {
	p, err := newPRF(key)
	if err != nil {
		return [16]byte{}, err
	}
	return p.evaluate(input), nil
}
