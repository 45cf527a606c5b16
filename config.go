package cre

// Config selects the shape and comparator for a Cipher before it is
// constructed. It holds no key material — that is always supplied
// separately to New.
type Config struct {
	// N is the block count.
	N int
	// W is the block width (radix).
	W int
	// Comparator is the relation to encrypt under. It must not be nil;
	// Validate rejects a Config without one.
	Comparator Comparator
}

// Validate checks that c describes a constructible Cipher.
func (c *Config) Validate() error {
	if err := validateShape(c.N, c.W); err != nil {
		return err
	}
	if c.Comparator == nil {
		return &InvalidShapeError{N: c.N, W: c.W, Message: "comparator must not be nil"}
	}
	return nil
}

// New builds a Cipher from c and rootKey.
func (c *Config) New(rootKey []byte) (*Cipher, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return New(rootKey, c.Comparator, c.N, c.W)
}
