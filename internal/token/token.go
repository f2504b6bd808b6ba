// Package token encodes and decodes the signed, expiring claim sets used as
// access and refresh credentials.
package token

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token types carried in the "typ" claim. An access token must never be
// accepted where a refresh token is required and vice versa.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// ErrInvalidToken covers malformed, badly signed, expired and wrong-type
// tokens alike.
var ErrInvalidToken = errors.New("invalid or expired token")

const nonceAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Claims is the signed payload of a token.
type Claims struct {
	Type  string `json:"typ"`
	Nonce string `json:"rnd"`
	jwt.RegisteredClaims
}

// Codec signs and verifies claim sets with a process-wide symmetric secret
// and a fixed signing algorithm.
type Codec struct {
	secret   []byte
	method   jwt.SigningMethod
	nonceLen int
}

// NewCodec builds a codec for the given HMAC algorithm identifier (HS256,
// HS384 or HS512).
func NewCodec(secret, algorithm string, nonceLength int) (*Codec, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not HMAC-based", algorithm)
	}
	if nonceLength <= 0 {
		nonceLength = 10
	}
	return &Codec{secret: []byte(secret), method: method, nonceLen: nonceLength}, nil
}

// Issue signs a claim set for the subject that expires after ttl.
func (c *Codec) Issue(subject uuid.UUID, tokenType string, ttl time.Duration) (string, error) {
	nonce, err := randomAlphanumeric(c.nonceLen)
	if err != nil {
		return "", fmt.Errorf("failed to generate token nonce: %w", err)
	}

	claims := Claims{
		Type:  tokenType,
		Nonce: nonce,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// Decode verifies the signature and expiry and returns the claim set.
func (c *Codec) Decode(raw string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{c.method.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Verify decodes the token, checks its type and returns the subject.
func (c *Codec) Verify(raw, expectedType string) (uuid.UUID, error) {
	claims, err := c.Decode(raw)
	if err != nil {
		return uuid.Nil, err
	}
	if claims.Type != expectedType {
		return uuid.Nil, ErrInvalidToken
	}
	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return subject, nil
}

func randomAlphanumeric(n int) (string, error) {
	buf := make([]byte, n)
	max := big.NewInt(int64(len(nonceAlphabet)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = nonceAlphabet[idx.Int64()]
	}
	return string(buf), nil
}
