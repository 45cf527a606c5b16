package cre

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

// HashFunc names a PBKDF2 hash function.
type HashFunc int

const (
	SHA256 HashFunc = iota
	SHA512
)

// Argon2idParams configures Argon2id root-key derivation.
type Argon2idParams struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltSize    int
}

// PBKDF2Params configures PBKDF2 root-key derivation.
type PBKDF2Params struct {
	Iterations int
	HashFunc   HashFunc
	SaltSize   int
}

// PassphraseRootKeyProvider derives a 16-byte K_root from a caller
// passphrase: K_root may always be supplied directly to New, but a
// complete library offers passphrase-based derivation too, the same
// way file keys get derived from a password elsewhere: Argon2id by
// default, PBKDF2 as an explicit alternative. It never reads an
// environment variable for the passphrase itself — env-var-sourced
// key material has no place in this core.
type PassphraseRootKeyProvider struct {
	passphrase   []byte
	useArgon2id  bool
	argon2Params Argon2idParams
	pbkdf2Params PBKDF2Params
}

// NewPassphraseRootKeyProvider builds a provider using Argon2id, the
// recommended default.
func NewPassphraseRootKeyProvider(passphrase []byte, params Argon2idParams) *PassphraseRootKeyProvider {
	if params.Memory == 0 {
		params.Memory = 64 * 1024
	}
	if params.Iterations == 0 {
		params.Iterations = 3
	}
	if params.Parallelism == 0 {
		params.Parallelism = 4
	}
	if params.SaltSize == 0 {
		params.SaltSize = 32
	}
	return &PassphraseRootKeyProvider{
		passphrase:   passphrase,
		useArgon2id:  true,
		argon2Params: params,
	}
}

// NewPassphraseRootKeyProviderPBKDF2 builds a provider using PBKDF2.
func NewPassphraseRootKeyProviderPBKDF2(passphrase []byte, params PBKDF2Params) *PassphraseRootKeyProvider {
	if params.Iterations == 0 {
		params.Iterations = 100000
	}
	if params.SaltSize == 0 {
		params.SaltSize = 32
	}
	return &PassphraseRootKeyProvider{
		passphrase:   passphrase,
		useArgon2id:  false,
		pbkdf2Params: params,
	}
}

// DeriveRootKey derives a 16-byte K_root from the provider's
// passphrase and salt. The returned key is exactly 16 bytes regardless
// of the underlying KDF's native output width.
func (p *PassphraseRootKeyProvider) DeriveRootKey(salt []byte) ([]byte, error) {
	if len(p.passphrase) == 0 {
		return nil, fmt.Errorf("cre: passphrase must not be empty")
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("cre: salt must not be empty")
	}

	if p.useArgon2id {
		return argon2.IDKey(
			p.passphrase,
			salt,
			p.argon2Params.Iterations,
			p.argon2Params.Memory,
			p.argon2Params.Parallelism,
			16,
		), nil
	}

	var hashFunc func() hash.Hash
	switch p.pbkdf2Params.HashFunc {
	case SHA256:
		hashFunc = sha256.New
	case SHA512:
		hashFunc = sha512.New
	default:
		return nil, fmt.Errorf("cre: unsupported hash function %v", p.pbkdf2Params.HashFunc)
	}
	return pbkdf2.Key(p.passphrase, salt, p.pbkdf2Params.Iterations, 16, hashFunc), nil
}

// GenerateSalt returns a fresh random salt sized for this provider's KDF.
func (p *PassphraseRootKeyProvider) GenerateSalt() ([]byte, error) {
	saltSize := p.pbkdf2Params.SaltSize
	if p.useArgon2id {
		saltSize = p.argon2Params.SaltSize
	}
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("cre: failed to generate salt: %w", err)
	}
	return salt, nil
}
