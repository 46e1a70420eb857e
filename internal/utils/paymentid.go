package utils

import (
	"crypto/rand"  // Cryptographically secure random bytes
	"encoding/hex" // Hex encoding
	"fmt"          // Error wrapping
	"regexp"       // Format check
)

// PaymentIDSuffix is appended to every generated payment identifier
const PaymentIDSuffix = "@fastpay"

var paymentIDPattern = regexp.MustCompile(`^[0-9a-f]{8}@fastpay$`)

// GeneratePaymentID returns 8 random hex characters followed by PaymentIDSuffix.
// Uniqueness is enforced by the store, not here.
func GeneratePaymentID() (string, error) {
	b := make([]byte, 4) // 4 bytes -> 8 hex chars
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate payment id: %w", err)
	}
	return hex.EncodeToString(b) + PaymentIDSuffix, nil
}

// IsPaymentID reports whether s has the payment identifier format
func IsPaymentID(s string) bool {
	return paymentIDPattern.MatchString(s)
}
