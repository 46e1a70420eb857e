package utils

import (
	"fastpay/internal/domain" // Domain errors
	"fmt"                     // Error wrapping
	"time"                    // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// DefaultTokenTTL is how long an issued session token stays valid
const DefaultTokenTTL = time.Hour

// JWT Claims
type Claims struct {
	AccountID            uint   `json:"account_id"` // Store identity of the account
	PaymentID            string `json:"upi_id"`     // Payment identifier of the account
	jwt.RegisteredClaims        // Standard JWT claims
}

// TokenManager issues and validates signed session tokens
type TokenManager struct {
	secret []byte           // HMAC signing secret
	ttl    time.Duration    // Token lifetime
	now    func() time.Time // Clock, replaced in tests
}

// NewTokenManager creates a TokenManager; a non-positive ttl falls back to DefaultTokenTTL
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue creates a token for the given account
func (m *TokenManager) Issue(accountID uint, paymentID string) (string, error) {
	now := m.now()
	claims := Claims{
		AccountID: accountID,
		PaymentID: paymentID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)), // Token expires after ttl
			IssuedAt:  jwt.NewNumericDate(now),            // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	signed, err := token.SignedString(m.secret)                // Sign the token with the secret
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse validates signature and expiry. Every failure is reported as domain.ErrInvalidToken.
func (m *TokenManager) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return m.secret, nil // Return the secret key for validation
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.PaymentID == "" {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
