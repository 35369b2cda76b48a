package token

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"math/big"
)

// NumericCode returns a uniformly random code of the given number of digits,
// zero padded.
func NumericCode(digits int) (string, error) {
	if digits < 1 || digits > 18 {
		return "", fmt.Errorf("generate code: invalid length %d", digits)
	}
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", digits, n.Int64()), nil
}

// Fingerprint hashes a short-lived secret so it can be held without
// keeping the raw value around.
func Fingerprint(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return sum[:]
}

// Matches compares a submitted secret against a stored fingerprint in
// constant time.
func Matches(fingerprint []byte, submitted string) bool {
	return subtle.ConstantTimeCompare(fingerprint, Fingerprint(submitted)) == 1
}
