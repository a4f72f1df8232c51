package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token use markers. Refresh tokens only ever buy a new pair; the HTTP
// middleware rejects them as bearer credentials.
const (
	UseAccess  = "access"
	UseRefresh = "refresh"
)

type Claims struct {
	Sub   string `json:"sub"`
	Role  string `json:"role"`
	Email string `json:"email"`
	Use   string `json:"use"`
	// RefreshID is the paired refresh token's ID, carried on the access
	// token so sign-out can revoke both halves.
	RefreshID string `json:"rjti,omitempty"`
	jwt.RegisteredClaims
}

// NewAccessToken mints a standalone HS256 access token. Each token carries a
// unique ID so it can be individually revoked on sign-out.
func NewAccessToken(secret, sub, role, email string, ttl time.Duration) (string, error) {
	return mint(secret, Claims{Sub: sub, Role: role, Email: email, Use: UseAccess}, uuid.NewString(), ttl)
}

// NewTokenPair mints an access token and its long-lived refresh token. The
// access token records the refresh token's ID, linking the pair for
// revocation.
func NewTokenPair(secret, sub, role, email string, accessTTL, refreshTTL time.Duration) (access, refresh string, err error) {
	refreshID := uuid.NewString()
	refresh, err = mint(secret, Claims{Sub: sub, Role: role, Email: email, Use: UseRefresh}, refreshID, refreshTTL)
	if err != nil {
		return "", "", err
	}
	access, err = mint(secret, Claims{Sub: sub, Role: role, Email: email, Use: UseAccess, RefreshID: refreshID}, uuid.NewString(), accessTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func mint(secret string, claims Claims, id string, ttl time.Duration) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        id,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseValidate(secret, tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, errors.New("invalid token")
	}
	return c, nil
}
