// Package auth issues and verifies the signed tokens that guard every
// protected route, and owns credential hashing and OTP generation.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"campus-complaint-backend/internal/model"
)

// Roles carried in token claims and checked per route.
const (
	RoleStudent   = "student"
	RoleAuthority = "authority"
	RoleAdmin     = "admin"
)

// Claims is the payload embedded in every access token. Authority tokens
// additionally carry the routing attributes so clients can scope their UI
// without an extra round trip; the server never trusts them and re-fetches
// the account on each request.
type Claims struct {
	ID          uint              `json:"id"`
	Role        string            `json:"role"`
	Designation model.Designation `json:"designation,omitempty"`
	Department  string            `json:"department,omitempty"`
	HostelNo    *int              `json:"hostelNo,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies access tokens with a shared HMAC secret.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a TokenIssuer. The secret must be non-empty.
func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is not configured")
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}, nil
}

// IssueStudent signs a token for a student account.
func (i *TokenIssuer) IssueStudent(s *model.Student) (string, error) {
	return i.sign(Claims{ID: s.ID, Role: RoleStudent})
}

// IssueAuthority signs a token for an authority account, embedding its
// routing attributes.
func (i *TokenIssuer) IssueAuthority(a *model.Authority) (string, error) {
	return i.sign(Claims{
		ID:          a.ID,
		Role:        RoleAuthority,
		Designation: a.Designation,
		Department:  a.Department,
		HostelNo:    a.HostelNo,
	})
}

// IssueAdmin signs a token for an admin account.
func (i *TokenIssuer) IssueAdmin(a *model.Admin) (string, error) {
	return i.sign(Claims{ID: a.ID, Role: RoleAdmin})
}

func (i *TokenIssuer) sign(claims Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		Subject:   fmt.Sprintf("%s:%d", claims.Role, claims.ID),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify parses and validates a token string and returns its claims.
func (i *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return i.secret, nil
		},
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
