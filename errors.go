package signettoken

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind is a stable machine-readable key identifying a token failure.
// Callers map kinds to HTTP status codes or i18n messages; the human-readable
// Error() strings are not part of the contract.
type ErrorKind string

const (
	KindExpiredToken     ErrorKind = "expired_token"     // exp is in the past
	KindInvalidSignature ErrorKind = "invalid_signature" // signature verification failed
	KindInvalidToken     ErrorKind = "invalid_token"     // malformed, not yet valid, or otherwise unverifiable
	KindInvalidClaim     ErrorKind = "invalid_claim"     // a claim failed a semantic check
	KindMissingClaims    ErrorKind = "missing_claims"    // required claims absent or empty
	KindSigningError     ErrorKind = "signing_error"     // token creation failed (configuration defect)
)

type kinder interface {
	Kind() ErrorKind
}

// KindOf extracts the machine-readable kind from an error produced by this
// package, looking through any wrapping. The second return is false when the
// error did not originate here.
func KindOf(err error) (ErrorKind, bool) {
	var k kinder
	if errors.As(err, &k) {
		return k.Kind(), true
	}
	return "", false
}

// ExpiredTokenError reports a token whose exp claim is in the past.
type ExpiredTokenError struct {
	Err error // underlying jwt/v5 error
}

func (e *ExpiredTokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token has expired: %v", e.Err)
	}
	return "token has expired"
}

func (e *ExpiredTokenError) Kind() ErrorKind { return KindExpiredToken }
func (e *ExpiredTokenError) Unwrap() error   { return e.Err }

// SignatureError reports a token whose signature does not verify against the
// configured key. Signature failures always take precedence over claim checks:
// a tampered token is never reported as merely expired or invalid.
type SignatureError struct {
	Err error
}

func (e *SignatureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token signature verification failed: %v", e.Err)
	}
	return "token signature verification failed"
}

func (e *SignatureError) Kind() ErrorKind { return KindInvalidSignature }
func (e *SignatureError) Unwrap() error   { return e.Err }

// InvalidTokenError is the catch-all for structurally malformed tokens,
// tokens used before their nbf instant, and any other decode failure that is
// neither an expiry nor a signature mismatch. Not retryable.
type InvalidTokenError struct {
	Reason string
	Err    error
}

func (e *InvalidTokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid token: %s: %v", e.Reason, e.Err)
	}
	return "invalid token: " + e.Reason
}

func (e *InvalidTokenError) Kind() ErrorKind { return KindInvalidToken }
func (e *InvalidTokenError) Unwrap() error   { return e.Err }

// InvalidClaimError reports a single claim whose decoded value failed a
// semantic check. Actual is nil when the claim was absent; Expected is nil
// when there is no single expected value to report, in which case it is
// omitted from the message.
type InvalidClaimError struct {
	Claim    string
	Actual   any
	Expected any
}

func (e *InvalidClaimError) Error() string {
	actual := "(absent)"
	if e.Actual != nil {
		actual = fmt.Sprintf("%v", e.Actual)
	}
	if e.Expected == nil {
		return fmt.Sprintf("invalid %s claim: got %s", e.Claim, actual)
	}
	return fmt.Sprintf("invalid %s claim: got %s, want %v", e.Claim, actual, e.Expected)
}

func (e *InvalidClaimError) Kind() ErrorKind { return KindInvalidClaim }

// MissingClaimsError reports every required claim that was absent, an empty
// string, or an empty list, in the order the configuration listed them.
type MissingClaimsError struct {
	Claims []string
}

func (e *MissingClaimsError) Error() string {
	return "missing required claims: " + strings.Join(e.Claims, ", ")
}

func (e *MissingClaimsError) Kind() ErrorKind { return KindMissingClaims }

// SigningError reports a failure during token creation, typically key
// material structurally incompatible with the configured algorithm. This is
// a configuration defect, not a token defect.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("failed to sign token: %v", e.Err)
}

func (e *SigningError) Kind() ErrorKind { return KindSigningError }
func (e *SigningError) Unwrap() error   { return e.Err }
