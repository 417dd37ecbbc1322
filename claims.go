package signettoken

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Standard claim names used throughout the package.
const (
	ClaimIssuer    = "iss"
	ClaimSubject   = "sub"
	ClaimIssuedAt  = "iat"
	ClaimExpiresAt = "exp"
	ClaimNotBefore = "nbf"
	ClaimAudience  = "aud"
	ClaimTokenType = "typ"
	ClaimTokenID   = "jti"
	ClaimSessionID = "sid"
)

// AccessTokenType is the only typ value the decode pipeline accepts.
const AccessTokenType = "access"

// notBeforeSkew backdates the default nbf claim to tolerate minor clock drift
// between issuer and verifier.
const notBeforeSkew = 5 * time.Second

// protectedClaims are system-controlled: caller-supplied values under these
// keys never survive into the final token.
var protectedClaims = []string{
	ClaimIssuer, ClaimSubject, ClaimIssuedAt, ClaimExpiresAt, ClaimTokenID, ClaimSessionID,
}

// buildClaims assembles the final claim map for a new access token.
//
// Overlay order gives protected claims unconditional precedence: defaults
// first, then caller-supplied custom claims, then the protected set. A custom
// value under a protected key is silently discarded rather than rejected.
func buildClaims(config SignetTokenConfig, subject string, customClaims map[string]any, now int64, tokenID, sessionID uuid.UUID) jwt.MapClaims {
	claims := jwt.MapClaims{
		ClaimTokenType: AccessTokenType,
		ClaimNotBefore: now - int64(notBeforeSkew.Seconds()),
	}
	if config.Audience != nil {
		claims[ClaimAudience] = config.Audience
	}

	for name, value := range customClaims {
		claims[name] = value
	}

	claims[ClaimIssuer] = config.Issuer
	claims[ClaimSubject] = subject
	claims[ClaimIssuedAt] = now
	claims[ClaimExpiresAt] = now + int64(config.AccessExpiryDuration.Seconds())
	claims[ClaimTokenID] = tokenID.String()
	claims[ClaimSessionID] = sessionID.String()

	return claims
}

// The validate* helpers below are pure functions over a decoded claim map.
// They run only after cryptographic verification has succeeded, so they can
// be unit-tested without any key material, and their failures mean "valid
// token, wrong consumer or purpose" rather than "never valid".

// validateRequiredClaims checks that every required claim is present and
// neither an empty string nor an empty list. All violations are collected so
// the error carries the full list, not just the first.
func validateRequiredClaims(claims jwt.MapClaims, required []string) error {
	var missing []string
	for _, name := range required {
		if isEmptyClaim(claims[name]) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingClaimsError{Claims: missing}
	}
	return nil
}

func isEmptyClaim(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	}
	return false
}

// validateIssuer checks the iss claim against the configured issuer by exact
// string equality.
func validateIssuer(claims jwt.MapClaims, issuer string) error {
	actual, ok := claims[ClaimIssuer].(string)
	if !ok || actual != issuer {
		return &InvalidClaimError{Claim: ClaimIssuer, Actual: claims[ClaimIssuer], Expected: issuer}
	}
	return nil
}

// validateAudience checks the aud claim against the configured audience list.
// A nil configured audience disables the check entirely. A bare string aud is
// normalized to a singleton list; any non-empty intersection passes.
func validateAudience(claims jwt.MapClaims, audience []string) error {
	if audience == nil {
		return nil
	}

	raw, ok := claims[ClaimAudience]
	if !ok || raw == nil {
		return &InvalidClaimError{Claim: ClaimAudience, Expected: audience}
	}

	actual := normalizeAudience(raw)
	for _, want := range audience {
		for _, got := range actual {
			if got == want {
				return nil
			}
		}
	}
	return &InvalidClaimError{Claim: ClaimAudience, Actual: actual, Expected: audience}
}

// normalizeAudience converts the decoded aud value to a string list,
// wrapping a bare string in a singleton.
func normalizeAudience(value any) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// validateTokenType checks that the typ claim is exactly "access".
func validateTokenType(claims jwt.MapClaims) error {
	actual, ok := claims[ClaimTokenType].(string)
	if !ok || actual != AccessTokenType {
		return &InvalidClaimError{Claim: ClaimTokenType, Actual: claims[ClaimTokenType], Expected: AccessTokenType}
	}
	return nil
}
