// Package token issues and validates the signed bearer tokens services
// present to the platform. A token carries the caller's subject id and a
// permissions claim with the sorted union of permission codes the caller
// holds in at least one scope.
package token

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/contentdeck/contentdeck/internal/config"
	"github.com/contentdeck/contentdeck/internal/uniuri"
)

var (
	// ErrInvalidToken is returned when a token fails signature or time
	// validation.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidIssuer is returned when a token was issued by someone else.
	ErrInvalidIssuer = errors.New("invalid token issuer")
	// ErrUnexpectedSigningMethod is returned when a token is signed with
	// anything other than HMAC.
	ErrUnexpectedSigningMethod = errors.New("unexpected token signing method")
)

// PermissionList is the permissions claim. Some issuers emit a single
// permission as a bare string rather than a one-element array, so both
// forms unmarshal; marshalling always produces an array.
type PermissionList []string

// UnmarshalJSON accepts either a JSON array of strings or a single string.
func (p *PermissionList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*p = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return errors.Wrap(err, "permissions claim is neither string nor array")
	}
	*p = PermissionList{single}

	return nil
}

// Claims is the token payload. The subject is the user id access rules
// reference.
type Claims struct {
	jwt.RegisteredClaims
	Permissions PermissionList `json:"permissions"`
}

// Issue signs a token for a subject carrying its permission codes.
func Issue(cfg config.Token, subjectID string, permissions []string) (string, error) {
	now := time.Now()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uniuri.NewLen(uniuri.TokenIDLen),
			Subject:   subjectID,
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.ExpiryTime)),
		},
		Permissions: permissions,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(cfg.SigningKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}

	return signed, nil
}

// PeekClaims reads a token's claims without verifying its signature.
// The result is advisory only, for display purposes on the client side;
// anything authorization-relevant must go through Validate or a server
// check.
func PeekClaims(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Validate parses a token, checks its signature, validity window, and
// issuer, and returns its claims.
func Validate(cfg config.Token, tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnexpectedSigningMethod
		}
		return []byte(cfg.SigningKey), nil
	})
	if err != nil {
		if errors.Is(err, ErrUnexpectedSigningMethod) {
			return nil, ErrUnexpectedSigningMethod
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Issuer != cfg.Issuer {
		return nil, ErrInvalidIssuer
	}

	return claims, nil
}
