package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wardlink/hospital-system/internal/core/domain"
	"github.com/wardlink/hospital-system/internal/core/ports"
)

// JWTIssuer signs HS256 access and refresh tokens with independent secrets
// and expiry durations.
type JWTIssuer struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewJWTIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTIssuer {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &JWTIssuer{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// Issue signs a fresh access/refresh pair carrying the same claim set.
func (i *JWTIssuer) Issue(claims domain.Claims) (ports.TokenPair, error) {
	access, err := i.sign(claims, i.accessSecret, i.accessTTL)
	if err != nil {
		return ports.TokenPair{}, err
	}
	refresh, err := i.sign(claims, i.refreshSecret, i.refreshTTL)
	if err != nil {
		return ports.TokenPair{}, err
	}
	return ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (i *JWTIssuer) VerifyAccess(token string) (domain.Claims, error) {
	return i.verify(token, i.accessSecret)
}

func (i *JWTIssuer) VerifyRefresh(token string) (domain.Claims, error) {
	return i.verify(token, i.refreshSecret)
}

func (i *JWTIssuer) sign(claims domain.Claims, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":     claims.ID,
		"name":   claims.Name,
		"role":   string(claims.Role),
		"hosId":  claims.HospitalID,
		"wardId": claims.WardID,
		"iat":    now.Unix(),
		"exp":    now.Add(ttl).Unix(),
	})
	return t.SignedString([]byte(secret))
}

// verify parses and validates a token. Every failure mode (wrong algorithm,
// bad signature, expired, malformed) collapses into domain.ErrTokenInvalid.
func (i *JWTIssuer) verify(token, secret string) (domain.Claims, error) {
	mc := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, mc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return domain.Claims{}, domain.ErrTokenInvalid
	}

	str := func(key string) string {
		s, _ := mc[key].(string)
		return s
	}
	return domain.Claims{
		ID:         str("id"),
		Name:       str("name"),
		Role:       domain.Role(str("role")),
		HospitalID: str("hosId"),
		WardID:     str("wardId"),
	}, nil
}
