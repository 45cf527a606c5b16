package cre

// Input validation helpers, centralizing the parameter checks the
// Cipher constructor and plaintext adapter require.

const (
	minW = 2
	maxW = 256
	// maxN bounds the block count to what the aes128v1 suite's
	// prefix_i encoding can represent losslessly: prefix_i reserves
	// 2 bytes for i and one byte per preceding digit, in a 16-byte
	// block, leaving room for at most 14 preceding digits.
	maxN = 15
)

// validateKey checks that key is exactly 16 bytes.
func validateKey(key []byte) error {
	if len(key) != 16 {
		return &InvalidKeyLengthError{Got: len(key)}
	}
	return nil
}

// validateShape checks that (N, W) are within the bounds the
// aes128v1 suite requires.
func validateShape(n, w int) error {
	if n < 1 {
		return &InvalidShapeError{N: n, W: w, Message: "N must be >= 1"}
	}
	if n > maxN {
		return &InvalidShapeError{N: n, W: w, Message: "N exceeds the suite's losslessly-encodable prefix length"}
	}
	if w < minW || w > maxW {
		return &InvalidShapeError{N: n, W: w, Message: "W must be in [2, 256]"}
	}
	return nil
}

// validateDigits checks that every digit of a plaintext is in [0, W).
func validateDigits(digits []int, w int) error {
	for _, d := range digits {
		if d < 0 || d >= w {
			return &InvalidShapeError{N: len(digits), W: w, Message: "digit out of range for block width"}
		}
	}
	return nil
}
