package signettoken

import (
	"encoding/json"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPayload is a read-only view over a verified and validated claim set.
// It is constructed only by a successful Decode and never mutated afterwards.
type TokenPayload struct {
	claims jwt.MapClaims
}

// Subject returns the sub claim.
func (p *TokenPayload) Subject() string { return p.stringClaim(ClaimSubject) }

// Issuer returns the iss claim.
func (p *TokenPayload) Issuer() string { return p.stringClaim(ClaimIssuer) }

// TokenID returns the jti claim, a time-ordered UUIDv7.
func (p *TokenPayload) TokenID() string { return p.stringClaim(ClaimTokenID) }

// SessionID returns the sid claim, a time-ordered UUIDv7 distinct from jti.
func (p *TokenPayload) SessionID() string { return p.stringClaim(ClaimSessionID) }

// TokenType returns the typ claim.
func (p *TokenPayload) TokenType() string { return p.stringClaim(ClaimTokenType) }

// IssuedAt returns the iat claim as unix seconds.
func (p *TokenPayload) IssuedAt() int64 { return p.intClaim(ClaimIssuedAt) }

// ExpiresAt returns the exp claim as unix seconds.
func (p *TokenPayload) ExpiresAt() int64 { return p.intClaim(ClaimExpiresAt) }

// NotBefore returns the nbf claim as unix seconds, or 0 when absent.
func (p *TokenPayload) NotBefore() int64 { return p.intClaim(ClaimNotBefore) }

// Audience returns the aud claim as a string list. A bare string audience is
// wrapped in a singleton list; an absent audience yields nil.
func (p *TokenPayload) Audience() []string { return normalizeAudience(p.claims[ClaimAudience]) }

// Get looks up any claim by name, including custom claims. The second return
// is false when the claim is absent.
func (p *TokenPayload) Get(name string) (any, bool) {
	value, ok := p.claims[name]
	return value, ok
}

func (p *TokenPayload) stringClaim(name string) string {
	s, _ := p.claims[name].(string)
	return s
}

func (p *TokenPayload) intClaim(name string) int64 {
	switch v := p.claims[name].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	}
	return 0
}
