package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// NewOTP generates a 6-digit numeric one-time code.
func NewOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("otp randomness unavailable: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
