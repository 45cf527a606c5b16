package cre

import (
	"encoding/binary"

	"github.com/awnumar/memguard"
)

// keyHierarchy holds the subkeys derived from K_root for one Cipher
// instance. K_F, K_H and K_π are each protected in a
// memguard.LockedBuffer for the Cipher's lifetime and wiped by
// destroy(), which Cipher.Close calls exactly once.
type keyHierarchy struct {
	kF  *memguard.LockedBuffer
	kH  *memguard.LockedBuffer
	kPi *memguard.LockedBuffer

	prfF  *prf
	hashH *hashFn
	prfPi *prf
}

// newKeyHierarchy derives K_F, K_H and K_π from rootKey, bound to
// (comparatorID, n, w) so that no two (comparator, shape) combinations
// ever share subkeys.
func newKeyHierarchy(rootKey []byte, s suite, comparatorID byte, n, w int) (*keyHierarchy, error) {
	if err := validateKey(rootKey); err != nil {
		return nil, err
	}

	fInput := shapedTag(s.tagF, comparatorID, n, w)
	hInput := shapedTag(s.tagH, comparatorID, n, w)
	piInput := shapedTag(s.tagPi, comparatorID, n, w)

	fBytes, err := evaluateOnce(rootKey, fInput)
	if err != nil {
		return nil, err
	}
	hBytes, err := evaluateOnce(rootKey, hInput)
	if err != nil {
		return nil, err
	}
	piBytes, err := evaluateOnce(rootKey, piInput)
	if err != nil {
		return nil, err
	}

	kh := &keyHierarchy{
		kF:  memguard.NewBufferFromBytes(fBytes[:]),
		kH:  memguard.NewBufferFromBytes(hBytes[:]),
		kPi: memguard.NewBufferFromBytes(piBytes[:]),
	}
	memguard.WipeBytes(fBytes[:])
	memguard.WipeBytes(hBytes[:])
	memguard.WipeBytes(piBytes[:])

	kh.prfF, err = newPRF(kh.kF.Bytes())
	if err != nil {
		kh.destroy()
		return nil, err
	}
	kh.hashH, err = newHashFn(kh.kH.Bytes())
	if err != nil {
		kh.destroy()
		return nil, err
	}
	kh.prfPi, err = newPRF(kh.kPi.Bytes())
	if err != nil {
		kh.destroy()
		return nil, err
	}

	return kh, nil
}

// destroy zeroizes the K_F, K_H and K_π buffers this hierarchy holds.
// The AES key schedules inside prfF, hashH and prfPi, and hashH's CMAC
// subkeys, are not wiped. Safe to call more than once.
func (kh *keyHierarchy) destroy() {
	if kh == nil {
		return
	}
	kh.kF.Destroy()
	kh.kH.Destroy()
	kh.kPi.Destroy()
}

// shapedTag binds a suite's base domain-separation tag to a
// (comparator identity, N, W) triple by XORing the identity byte into
// byte 12, N (one byte) into byte 13 and W (u16LE) into bytes 14-15,
// per the wire contract in SPEC_FULL.md. The leading marker byte and
// label bytes 1-11 of the base tag are left intact; the last four
// label bytes are overwritten by the XOR.
func shapedTag(base [16]byte, comparatorID byte, n, w int) [16]byte {
	out := base
	out[12] ^= comparatorID
	out[13] ^= byte(n)
	var wBytes [2]byte
	binary.LittleEndian.PutUint16(wBytes[:], uint16(w))
	out[14] ^= wBytes[0]
	out[15] ^= wBytes[1]
	return out
}
