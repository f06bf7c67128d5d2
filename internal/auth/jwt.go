package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/factorg/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the provider token claims the panel relies on. The subject is
// the provider's user id.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// GenerateToken signs an HS256 token for subject/email. The provider issues
// tokens in production; this is used by local fakes.
func GenerateToken(subject, email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Email: email,
	})

	return token.SignedString(secretKey)
}

// Verifier inspects provider access tokens. With a secret the signature is
// checked (HS256); without one the claims are read as-is and only the expiry
// is enforced, since the backend performs the authoritative check.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	v := &Verifier{}
	if secret != "" {
		v.secret = []byte(secret)
	}
	return v
}

// Parse returns the claims of tokenString. Expired tokens yield
// common.ErrTokenExpired, anything else malformed common.ErrInvalidToken.
func (v *Verifier) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	if v.secret == nil {
		if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
			return nil, common.ErrInvalidToken
		}
		if claims.ExpiresAt != nil && !claims.ExpiresAt.After(time.Now()) {
			return nil, common.ErrTokenExpired
		}
		return claims, nil
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// Expired reports whether tokenString expires within leeway. Unparsable
// tokens count as expired.
func (v *Verifier) Expired(tokenString string, leeway time.Duration) bool {
	claims, err := v.Parse(tokenString)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return time.Until(claims.ExpiresAt.Time) < leeway
}
