package ports

import "github.com/wardlink/hospital-system/internal/core/domain"

// TokenPair is one access/refresh credential pair, independently signed.
type TokenPair struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// TokenIssuer signs and verifies the two bearer token classes. Verification
// failures of any kind surface as domain.ErrTokenInvalid.
type TokenIssuer interface {
	Issue(claims domain.Claims) (TokenPair, error)
	VerifyAccess(token string) (domain.Claims, error)
	VerifyRefresh(token string) (domain.Claims, error)
}
